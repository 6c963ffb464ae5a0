package repository

import (
	"context"
	"fmt"
	"time"

	"goaguide/directory-service/internal/app/directory/entity"
	"goaguide/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type reviewRepository struct {
	collection *mongo.Collection
}

// NewReviewRepository создает репозиторий отзывов
// Уникальный индекс (business_id, user_id) не дает оставить второй отзыв даже при гонке запросов
func NewReviewRepository(db *mongo.Database) ReviewRepository {
	collection := db.Collection(reviewsCollection)

	ensureIndexes(collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "business_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetName("business_user_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "business_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("business_created_idx"),
		},
	})

	return &reviewRepository{collection: collection}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) (err error) {
	defer observe(metrics.DbOpInsert, reviewsCollection)(&err)

	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateReview
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid
	}
	return nil
}

func (r *reviewRepository) ExistsByBusinessAndUser(ctx context.Context, businessID, userID primitive.ObjectID) (exists bool, err error) {
	defer observe(metrics.DbOpCount, reviewsCollection)(&err)

	filter := bson.M{"business_id": businessID, "user_id": userID}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check review: %w", err)
	}
	return count > 0, nil
}

// ListByBusiness возвращает отзывы листинга, новые первыми
func (r *reviewRepository) ListByBusiness(ctx context.Context, businessID primitive.ObjectID, skip, limit int64) (reviews []entity.Review, err error) {
	defer observe(metrics.DbOpFind, reviewsCollection)(&err)

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"business_id": businessID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews = []entity.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

func (r *reviewRepository) CountByBusiness(ctx context.Context, businessID primitive.ObjectID) (int64, error) {
	return r.count(ctx, bson.M{"business_id": businessID})
}

// RatingsByBusiness возвращает оценки всех отзывов листинга
func (r *reviewRepository) RatingsByBusiness(ctx context.Context, businessID primitive.ObjectID) (ratings []int, err error) {
	defer observe(metrics.DbOpFind, reviewsCollection)(&err)

	opts := options.Find().SetProjection(bson.M{"rating": 1, "_id": 0})
	cursor, err := r.collection.Find(ctx, bson.M{"business_id": businessID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Rating int `bson:"rating"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode ratings: %w", err)
	}

	ratings = make([]int, 0, len(docs))
	for _, d := range docs {
		ratings = append(ratings, d.Rating)
	}
	return ratings, nil
}

func (r *reviewRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, bson.M{})
}

func (r *reviewRepository) count(ctx context.Context, filter bson.M) (total int64, err error) {
	defer observe(metrics.DbOpCount, reviewsCollection)(&err)

	total, err = r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return total, nil
}
