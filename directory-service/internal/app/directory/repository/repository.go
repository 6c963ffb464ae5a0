package repository

import (
	"context"
	"errors"
	"time"

	"goaguide/directory-service/internal/app/directory/entity"
	"goaguide/pkg/logger"
	"goaguide/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Стандартные ошибки репозитория для обработки в service layer
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("email already registered")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrBusinessNotFound = errors.New("business not found")
	ErrDuplicateReview  = errors.New("review already exists")
)

const (
	usersCollection      = "users"
	categoriesCollection = "categories"
	businessesCollection = "businesses"
	reviewsCollection    = "reviews"

	metricsService = "directory-service"
)

// UserRepository - учетные записи пользователей
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]entity.User, error)
	UpdateProfile(ctx context.Context, user *entity.User) error
	UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error
	SetPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error
	Count(ctx context.Context) (int64, error)
}

// CategoryRepository - таксономия каталога
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error)
	ExistsByNameOrSlug(ctx context.Context, name, slug string) (bool, error)
	ListActive(ctx context.Context) ([]entity.Category, error)
	SearchByName(ctx context.Context, query string, limit int64) ([]entity.Category, error)
	UpsertBySlug(ctx context.Context, category *entity.Category) (bool, error)
}

// BusinessRepository - листинги организаций
type BusinessRepository interface {
	Create(ctx context.Context, business *entity.Business) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Business, error)
	List(ctx context.Context, query ListingQuery, skip, limit int64) ([]entity.Business, int64, error)
	Suggest(ctx context.Context, query string, limit int64) ([]entity.Business, error)
	UpdateRating(ctx context.Context, id primitive.ObjectID, rating float64, reviewCount int) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	Count(ctx context.Context) (int64, error)
}

// ReviewRepository - отзывы о листингах
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	ExistsByBusinessAndUser(ctx context.Context, businessID, userID primitive.ObjectID) (bool, error)
	ListByBusiness(ctx context.Context, businessID primitive.ObjectID, skip, limit int64) ([]entity.Review, error)
	CountByBusiness(ctx context.Context, businessID primitive.ObjectID) (int64, error)
	RatingsByBusiness(ctx context.Context, businessID primitive.ObjectID) ([]int, error)
	Count(ctx context.Context) (int64, error)
}

// observe замеряет операцию над коллекцией: defer observe(op, coll)(&err)
func observe(op metrics.DbOperation, collection string) func(*error) {
	timer := metrics.NewDbTimer(metricsService, op, collection)
	return func(err *error) {
		timer.Done(*err)
	}
}

// ensureIndexes создает индексы коллекции; ошибка только логируется,
// т.к. индекс может уже существовать с другими опциями
func ensureIndexes(collection *mongo.Collection, models []mongo.IndexModel) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, models); err != nil {
		logger.Warn().Err(err).Str("collection", collection.Name()).Msg("Failed to create indexes")
	}
}
