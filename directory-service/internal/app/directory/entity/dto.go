package entity

// ===== Категории =====

// CreateCategoryRequest - запрос на создание категории (admin)
type CreateCategoryRequest struct {
	Name          string   `json:"name" validate:"required,min=2,max=100"`
	Slug          string   `json:"slug" validate:"omitempty,max=100"`
	Icon          string   `json:"icon" validate:"required"`
	Description   string   `json:"description" validate:"omitempty,max=500"`
	Subcategories []string `json:"subcategories" validate:"omitempty,dive,min=1,max=100"`
}

// SimpleCategory - короткое представление для выпадающих списков
type SimpleCategory struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ===== Листинги =====

// CreateBusinessRequest - заявка владельца на размещение листинга
type CreateBusinessRequest struct {
	Name        string              `json:"name" validate:"required,min=2,max=100"`
	Description string              `json:"description" validate:"required,min=10,max=1000"`
	Category    string              `json:"category" validate:"required"`
	Subcategory string              `json:"subcategory" validate:"omitempty,max=100"`
	Address     AddressRequest      `json:"address"`
	Location    *LocationRequest    `json:"location" validate:"omitempty"`
	Contact     ContactRequest      `json:"contact"`
	Hours       map[string]DayHours `json:"hours"`
	Images      []string            `json:"images" validate:"omitempty,max=20,dive,url"`
	Logo        string              `json:"logo" validate:"omitempty,url"`
	SocialMedia *SocialMediaRequest `json:"social_media" validate:"omitempty"`
	Tags        []string            `json:"tags" validate:"omitempty,max=20,dive,min=1,max=50"`
}

type AddressRequest struct {
	Street  string `json:"street" validate:"required"`
	Area    string `json:"area" validate:"required"`
	Pincode string `json:"pincode" validate:"required,pincode"`
	City    string `json:"city" validate:"omitempty,max=100"`
	State   string `json:"state" validate:"omitempty,max=100"`
}

// LocationRequest - координаты в порядке [долгота, широта]
type LocationRequest struct {
	Coordinates []float64 `json:"coordinates" validate:"len=2"`
}

type SocialMediaRequest struct {
	Facebook  string `json:"facebook" validate:"omitempty,url"`
	Instagram string `json:"instagram" validate:"omitempty,url"`
	WhatsApp  string `json:"whatsapp" validate:"omitempty,phone"`
}

type ContactRequest struct {
	Phone   []string `json:"phone" validate:"required,min=1,dive,phone"`
	Email   string   `json:"email" validate:"omitempty,email"`
	Website string   `json:"website" validate:"omitempty,url"`
}

// UpdateBusinessStatusRequest - решение модератора по листингу
type UpdateBusinessStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

// ListingParams - параметры выборки листинга из query string
type ListingParams struct {
	Page     int
	Limit    int
	Category string
	Search   string
	Location string
	Status   string
	Owner    string
	SortBy   string
}

// CategoryRef - подставляемая в листинг информация о категории
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// OwnerRef - подставляемая в листинг информация о владельце
type OwnerRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// BusinessView - листинг с подставленными категорией и владельцем
type BusinessView struct {
	Business
	Category *CategoryRef `json:"category"`
	Owner    *OwnerRef    `json:"owner,omitempty"`
}

type ListingPagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	Current int   `json:"current"`
	HasNext bool  `json:"has_next"`
	HasPrev bool  `json:"has_prev"`
}

type ListingFilters struct {
	Search   *string `json:"search"`
	Category *string `json:"category"`
	Location *string `json:"location"`
	SortBy   string  `json:"sort_by"`
}

type ListingResponse struct {
	Businesses []BusinessView    `json:"businesses"`
	Pagination ListingPagination `json:"pagination"`
	Filters    ListingFilters    `json:"filters"`
}

// Suggestion - элемент автодополнения поиска
type Suggestion struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"` // business | category
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
}

// ===== Отзывы =====

// CreateReviewRequest - запрос на создание отзыва
type CreateReviewRequest struct {
	Rating  int      `json:"rating" validate:"required,min=1,max=5"`
	Comment string   `json:"comment" validate:"required,max=2000"`
	Images  []string `json:"images" validate:"omitempty,max=5,dive,url"`
}

// ReviewerRef - подставляемая в отзыв информация об авторе
type ReviewerRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
}

type ReviewView struct {
	Review
	User *ReviewerRef `json:"user"`
}

type ReviewPagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
}

// ReviewListResponse - ответ со списком отзывов
type ReviewListResponse struct {
	Reviews    []ReviewView     `json:"reviews"`
	Pagination ReviewPagination `json:"pagination"`
}

// ===== Статистика =====

type Stats struct {
	TotalBusinesses int64 `json:"total_businesses"`
	TotalReviews    int64 `json:"total_reviews"`
	TotalUsers      int64 `json:"total_users"`
}

// ===== Аккаунты =====

// RegisterRequest - запрос на регистрацию
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=100"`
	Phone    string `json:"phone" validate:"omitempty,phone"`
	Role     string `json:"role" validate:"omitempty,oneof=user owner"`
}

// LoginRequest - запрос на вход
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SetPasswordRequest - установка пароля для аккаунта, созданного через внешний вход
type SetPasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password" validate:"min=6,max=100"`
}

// UpdateProfileRequest - частичное обновление профиля
type UpdateProfileRequest struct {
	Phone       string                 `json:"phone" validate:"omitempty,phone"`
	DateOfBirth string                 `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender      string                 `json:"gender" validate:"omitempty,oneof=male female other"`
	Address     *ProfileAddressRequest `json:"address" validate:"omitempty"`
}

type ProfileAddressRequest struct {
	Street  string `json:"street" validate:"omitempty,max=200"`
	Area    string `json:"area" validate:"omitempty,max=100"`
	City    string `json:"city" validate:"omitempty,max=100"`
	State   string `json:"state" validate:"omitempty,max=100"`
	Pincode string `json:"pincode" validate:"omitempty,pincode"`
}

// AuthResponse - пользователь и access token
type AuthResponse struct {
	User      *User  `json:"user"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"` // время жизни токена в секундах
}

// ===== Общие ответы =====

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse - стандартный ответ об успехе
type SuccessResponse struct {
	Message string `json:"message"`
}
