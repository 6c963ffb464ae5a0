package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"goaguide/directory-service/internal/app/directory/entity"
	"goaguide/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userRepository struct {
	collection *mongo.Collection
}

// NewUserRepository создает репозиторий пользователей с уникальным индексом по email
func NewUserRepository(db *mongo.Database) UserRepository {
	collection := db.Collection(usersCollection)

	ensureIndexes(collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_unique").SetUnique(true),
		},
	})

	return &userRepository{collection: collection}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) (err error) {
	defer observe(metrics.DbOpInsert, usersCollection)(&err)

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.CheckProfileCompleteness()

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (user *entity.User, err error) {
	defer observe(metrics.DbOpFind, usersCollection)(&err)

	var u entity.User
	if err := r.collection.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// GetByIDs возвращает пользователей для подстановки в листинги и отзывы
func (r *userRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (users []entity.User, err error) {
	if len(ids) == 0 {
		return []entity.User{}, nil
	}
	defer observe(metrics.DbOpFind, usersCollection)(&err)

	opts := options.Find().SetProjection(bson.M{"name": 1, "email": 1, "image": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	defer cursor.Close(ctx)

	users = []entity.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// UpdateProfile сохраняет редактируемые поля профиля и флаг заполненности
func (r *userRepository) UpdateProfile(ctx context.Context, user *entity.User) (err error) {
	defer observe(metrics.DbOpUpdate, usersCollection)(&err)

	user.UpdatedAt = time.Now()
	user.CheckProfileCompleteness()

	update := bson.M{
		"$set": bson.M{
			"phone":               user.Phone,
			"date_of_birth":       user.DateOfBirth,
			"gender":              user.Gender,
			"address":             user.Address,
			"is_profile_complete": user.IsProfileComplete,
			"updated_at":          user.UpdatedAt,
		},
	}

	return r.updateOne(ctx, user.ID, update)
}

func (r *userRepository) UpdateRole(ctx context.Context, id primitive.ObjectID, role string) (err error) {
	defer observe(metrics.DbOpUpdate, usersCollection)(&err)

	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"role": role, "updated_at": time.Now()}})
}

// SetPassword сохраняет хэш и отмечает, что у аккаунта появился вход по паролю
func (r *userRepository) SetPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) (err error) {
	defer observe(metrics.DbOpUpdate, usersCollection)(&err)

	update := bson.M{
		"$set": bson.M{
			"password":                           passwordHash,
			"providers.credentials.has_password": true,
			"updated_at":                         time.Now(),
		},
	}
	return r.updateOne(ctx, id, update)
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) (err error) {
	defer observe(metrics.DbOpUpdate, usersCollection)(&err)

	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"last_login_at": at}})
}

func (r *userRepository) Count(ctx context.Context) (count int64, err error) {
	defer observe(metrics.DbOpCount, usersCollection)(&err)

	count, err = r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (r *userRepository) updateOne(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
