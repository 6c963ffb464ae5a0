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

type businessRepository struct {
	collection *mongo.Collection
}

// NewBusinessRepository создает репозиторий листингов
// Индексы: геоиндекс по location, выборки по статусу/категории и по владельцу
func NewBusinessRepository(db *mongo.Database) BusinessRepository {
	collection := db.Collection(businessesCollection)

	ensureIndexes(collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "location", Value: "2dsphere"}},
			Options: options.Index().SetName("location_2dsphere"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "category_id", Value: 1}},
			Options: options.Index().SetName("status_category_idx"),
		},
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}},
			Options: options.Index().SetName("owner_id_idx"),
		},
		{
			Keys:    bson.D{{Key: "is_premium", Value: -1}, {Key: "rating", Value: -1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("featured_sort_idx"),
		},
	})

	return &businessRepository{collection: collection}
}

func (r *businessRepository) Create(ctx context.Context, business *entity.Business) (err error) {
	defer observe(metrics.DbOpInsert, businessesCollection)(&err)

	now := time.Now()
	business.CreatedAt = now
	business.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, business)
	if err != nil {
		return fmt.Errorf("failed to create business: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		business.ID = oid
	}
	return nil
}

func (r *businessRepository) GetByID(ctx context.Context, id primitive.ObjectID) (business *entity.Business, err error) {
	defer observe(metrics.DbOpFind, businessesCollection)(&err)

	var b entity.Business
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("failed to get business: %w", err)
	}
	return &b, nil
}

// List возвращает страницу листинга и общее количество подходящих документов
func (r *businessRepository) List(ctx context.Context, query ListingQuery, skip, limit int64) ([]entity.Business, int64, error) {
	filter := BuildListingFilter(query)

	opts := options.Find().
		SetSort(ListingSort(query.SortBy)).
		SetSkip(skip).
		SetLimit(limit)

	businesses, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return businesses, total, nil
}

// Suggest ищет одобренные листинги для автодополнения
func (r *businessRepository) Suggest(ctx context.Context, query string, limit int64) ([]entity.Business, error) {
	rx := containsRegex(query)
	filter := bson.M{
		"status": entity.StatusApproved,
		"$or": bson.A{
			bson.M{"name": rx},
			bson.M{"description": rx},
			bson.M{"tags": bson.M{"$in": bson.A{rx}}},
			bson.M{"subcategory": rx},
		},
	}

	opts := options.Find().
		SetProjection(bson.M{"name": 1, "category_id": 1, "subcategory": 1}).
		SetLimit(limit)

	return r.find(ctx, filter, opts)
}

func (r *businessRepository) UpdateRating(ctx context.Context, id primitive.ObjectID, rating float64, reviewCount int) (err error) {
	defer observe(metrics.DbOpUpdate, businessesCollection)(&err)

	update := bson.M{"$set": bson.M{
		"rating":       rating,
		"review_count": reviewCount,
		"updated_at":   time.Now(),
	}}
	return r.updateOne(ctx, id, update)
}

func (r *businessRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (err error) {
	defer observe(metrics.DbOpUpdate, businessesCollection)(&err)

	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}})
}

func (r *businessRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, bson.M{})
}

func (r *businessRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) (businesses []entity.Business, err error) {
	defer observe(metrics.DbOpFind, businessesCollection)(&err)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find businesses: %w", err)
	}
	defer cursor.Close(ctx)

	businesses = []entity.Business{}
	if err := cursor.All(ctx, &businesses); err != nil {
		return nil, fmt.Errorf("failed to decode businesses: %w", err)
	}
	return businesses, nil
}

func (r *businessRepository) count(ctx context.Context, filter bson.M) (total int64, err error) {
	defer observe(metrics.DbOpCount, businessesCollection)(&err)

	total, err = r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count businesses: %w", err)
	}
	return total, nil
}

func (r *businessRepository) updateOne(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update business: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrBusinessNotFound
	}
	return nil
}
