package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Роли пользователей
const (
	RoleUser  = "user"
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// Статусы модерации листинга
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// PublicStatuses - статусы, видимые в публичном каталоге
var PublicStatuses = []string{StatusApproved, StatusPending}

// IsValidStatus проверяет, что статус входит в допустимый набор
func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IsPublicStatus проверяет, может ли листинг с таким статусом показываться публично
func IsPublicStatus(status string) bool {
	for _, s := range PublicStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// User - учётная запись (клиент, владелец бизнеса или администратор)
type User struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name              string             `json:"name" bson:"name"`
	Email             string             `json:"email" bson:"email"`
	PasswordHash      string             `json:"-" bson:"password,omitempty"` // не возвращаем в JSON
	EmailVerified     *time.Time         `json:"email_verified,omitempty" bson:"email_verified,omitempty"`
	Image             string             `json:"image,omitempty" bson:"image,omitempty"`
	Phone             string             `json:"phone,omitempty" bson:"phone,omitempty"`
	DateOfBirth       *time.Time         `json:"date_of_birth,omitempty" bson:"date_of_birth,omitempty"`
	Gender            string             `json:"gender,omitempty" bson:"gender,omitempty"`
	Address           UserAddress        `json:"address" bson:"address"`
	Role              string             `json:"role" bson:"role"`
	IsVerified        bool               `json:"is_verified" bson:"is_verified"`
	IsProfileComplete bool               `json:"is_profile_complete" bson:"is_profile_complete"`
	Providers         Providers          `json:"providers" bson:"providers"`
	Preferences       Preferences        `json:"preferences" bson:"preferences"`
	LastLoginAt       *time.Time         `json:"last_login_at,omitempty" bson:"last_login_at,omitempty"`
	CreatedAt         time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" bson:"updated_at"`
}

// CheckProfileCompleteness пересчитывает флаг заполненности профиля:
// профиль полный, когда заданы имя, email и телефон
func (u *User) CheckProfileCompleteness() bool {
	u.IsProfileComplete = u.Name != "" && u.Email != "" && u.Phone != ""
	return u.IsProfileComplete
}

type UserAddress struct {
	Street  string `json:"street,omitempty" bson:"street,omitempty"`
	Area    string `json:"area,omitempty" bson:"area,omitempty"`
	City    string `json:"city,omitempty" bson:"city,omitempty"`
	State   string `json:"state,omitempty" bson:"state,omitempty"`
	Pincode string `json:"pincode,omitempty" bson:"pincode,omitempty"`
}

// Providers - связанные способы входа (внешний OAuth и пароль)
type Providers struct {
	Google      *GoogleProvider     `json:"google,omitempty" bson:"google,omitempty"`
	Credentials CredentialsProvider `json:"credentials" bson:"credentials"`
}

type GoogleProvider struct {
	ID    string `json:"id" bson:"id"`
	Email string `json:"email" bson:"email"`
}

type CredentialsProvider struct {
	HasPassword bool `json:"has_password" bson:"has_password"`
}

type Preferences struct {
	EmailNotifications bool `json:"email_notifications" bson:"email_notifications"`
	SMSNotifications   bool `json:"sms_notifications" bson:"sms_notifications"`
	MarketingEmails    bool `json:"marketing_emails" bson:"marketing_emails"`
}

// DefaultPreferences - настройки уведомлений для новых пользователей
func DefaultPreferences() Preferences {
	return Preferences{EmailNotifications: true}
}

// Category - узел таксономии каталога
type Category struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Slug          string             `json:"slug" bson:"slug"`
	Icon          string             `json:"icon" bson:"icon"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	Subcategories []string           `json:"subcategories" bson:"subcategories"`
	BusinessCount int                `json:"business_count" bson:"business_count"` // поддерживается background worker
	IsActive      bool               `json:"is_active" bson:"is_active"`
}

// Business - листинг организации, принадлежащий одному владельцу
type Business struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	OwnerID     primitive.ObjectID  `json:"owner_id" bson:"owner_id"`
	Name        string              `json:"name" bson:"name"`
	Description string              `json:"description" bson:"description"`
	CategoryID  primitive.ObjectID  `json:"category_id" bson:"category_id"`
	Subcategory string              `json:"subcategory,omitempty" bson:"subcategory,omitempty"`
	Address     Address             `json:"address" bson:"address"`
	Location    *GeoPoint           `json:"location,omitempty" bson:"location,omitempty"`
	Contact     Contact             `json:"contact" bson:"contact"`
	Hours       map[string]DayHours `json:"hours,omitempty" bson:"hours,omitempty"`
	Images      []string            `json:"images" bson:"images"`
	Logo        string              `json:"logo,omitempty" bson:"logo,omitempty"`
	Rating      float64             `json:"rating" bson:"rating"`             // средняя оценка, округлённая до 0.1
	ReviewCount int                 `json:"review_count" bson:"review_count"` // количество отзывов
	IsVerified  bool                `json:"is_verified" bson:"is_verified"`
	IsPremium   bool                `json:"is_premium" bson:"is_premium"`
	Status      string              `json:"status" bson:"status"`
	SocialMedia SocialMedia         `json:"social_media" bson:"social_media"`
	Tags        []string            `json:"tags" bson:"tags"`
	CreatedAt   time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at" bson:"updated_at"`
}

type Address struct {
	Street  string `json:"street" bson:"street"`
	Area    string `json:"area" bson:"area"`
	Pincode string `json:"pincode" bson:"pincode"`
	City    string `json:"city,omitempty" bson:"city,omitempty"`
	State   string `json:"state,omitempty" bson:"state,omitempty"`
}

// GeoPoint - точка GeoJSON, координаты в порядке [долгота, широта]
type GeoPoint struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
}

// NewGeoPoint создает точку GeoJSON
func NewGeoPoint(lng, lat float64) *GeoPoint {
	return &GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

type Contact struct {
	Phone   []string `json:"phone" bson:"phone"`
	Email   string   `json:"email,omitempty" bson:"email,omitempty"`
	Website string   `json:"website,omitempty" bson:"website,omitempty"`
}

type DayHours struct {
	Open     string `json:"open" bson:"open"`
	Close    string `json:"close" bson:"close"`
	IsClosed bool   `json:"is_closed" bson:"is_closed"`
}

type SocialMedia struct {
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
	WhatsApp  string `json:"whatsapp,omitempty" bson:"whatsapp,omitempty"`
}

// Review - отзыв пользователя о бизнесе; не более одного на пару (business, user)
type Review struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	BusinessID primitive.ObjectID `json:"business_id" bson:"business_id"`
	UserID     primitive.ObjectID `json:"user_id" bson:"user_id"`
	Rating     int                `json:"rating" bson:"rating"` // Оценка от 1 до 5
	Comment    string             `json:"comment" bson:"comment"`
	Images     []string           `json:"images" bson:"images"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// Типы событий каталога для Kafka
const (
	EventBusinessCreated       = "BUSINESS_CREATED"
	EventBusinessStatusChanged = "BUSINESS_STATUS_CHANGED"
	EventReviewCreated         = "REVIEW_CREATED"
)

// DirectoryEvent - событие каталога, обрабатываемое background worker
type DirectoryEvent struct {
	EventType  string    `json:"event_type"`
	BusinessID string    `json:"business_id"`
	CategoryID string    `json:"category_id,omitempty"`
	ReviewID   string    `json:"review_id,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	Rating     int       `json:"rating,omitempty"`
	Status     string    `json:"status,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
