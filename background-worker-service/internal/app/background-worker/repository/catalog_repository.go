package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"goaguide/background-worker-service/internal/app/background-worker/entity"
	"goaguide/pkg/metrics"
)

type catalogRepository struct {
	categories *mongo.Collection
	businesses *mongo.Collection
	reviews    *mongo.Collection
	db         *mongo.Database
}

func NewCatalogRepository(db *mongo.Database) CatalogRepository {
	return &catalogRepository{
		categories: db.Collection(categoriesCollection),
		businesses: db.Collection(businessesCollection),
		reviews:    db.Collection(reviewsCollection),
		db:         db,
	}
}

func (r *catalogRepository) RecountCategory(ctx context.Context, categoryID primitive.ObjectID) (int, error) {
	count, err := r.countPublic(ctx, categoryID)
	if err != nil {
		return 0, err
	}

	if err := r.setBusinessCount(ctx, categoryID, int(count)); err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *catalogRepository) countPublic(ctx context.Context, categoryID primitive.ObjectID) (count int64, err error) {
	defer observe(metrics.DbOpCount, businessesCollection)(&err)

	count, err = r.businesses.CountDocuments(ctx, bson.M{
		"category_id": categoryID,
		"status":      bson.M{"$in": entity.PublicStatuses},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count businesses: %w", err)
	}
	return count, nil
}

func (r *catalogRepository) setBusinessCount(ctx context.Context, categoryID primitive.ObjectID, count int) (err error) {
	defer observe(metrics.DbOpUpdate, categoriesCollection)(&err)

	result, err := r.categories.UpdateByID(ctx, categoryID, bson.M{
		"$set": bson.M{"business_count": count},
	})
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *catalogRepository) RecountAllCategories(ctx context.Context) (int, error) {
	counts, err := r.aggregateCategoryCounts(ctx)
	if err != nil {
		return 0, err
	}

	ids, err := r.categoryIDs(ctx)
	if err != nil {
		return 0, err
	}

	byCategory := make(map[primitive.ObjectID]int, len(counts))
	for _, c := range counts {
		byCategory[c.CategoryID] = c.Count
	}

	updated := 0
	for _, id := range ids {
		if err := r.setBusinessCount(ctx, id, byCategory[id]); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

func (r *catalogRepository) aggregateCategoryCounts(ctx context.Context) (counts []entity.CategoryCount, err error) {
	defer observe(metrics.DbOpAggregate, businessesCollection)(&err)

	cursor, err := r.businesses.Aggregate(ctx, categoryCountPipeline(entity.PublicStatuses))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate category counts: %w", err)
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("failed to decode category counts: %w", err)
	}
	return counts, nil
}

func (r *catalogRepository) categoryIDs(ctx context.Context) (ids []primitive.ObjectID, err error) {
	defer observe(metrics.DbOpFind, categoriesCollection)(&err)

	values, err := r.categories.Distinct(ctx, "_id", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	ids = make([]primitive.ObjectID, 0, len(values))
	for _, v := range values {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *catalogRepository) RecalculateRating(ctx context.Context, businessID primitive.ObjectID) (*entity.RatingSummary, error) {
	summary, err := r.aggregateRating(ctx, businessID)
	if err != nil {
		return nil, err
	}

	if err := r.storeRating(ctx, summary); err != nil {
		return nil, err
	}
	return summary, nil
}

func (r *catalogRepository) aggregateRating(ctx context.Context, businessID primitive.ObjectID) (summary *entity.RatingSummary, err error) {
	defer observe(metrics.DbOpAggregate, reviewsCollection)(&err)

	cursor, err := r.reviews.Aggregate(ctx, ratingPipeline(businessID))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Avg   float64 `bson:"avg"`
		Count int     `bson:"count"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode ratings: %w", err)
	}

	summary = &entity.RatingSummary{BusinessID: businessID}
	if len(rows) > 0 {
		summary.Rating = RoundRating(rows[0].Avg)
		summary.ReviewCount = rows[0].Count
	}
	return summary, nil
}

func (r *catalogRepository) storeRating(ctx context.Context, summary *entity.RatingSummary) (err error) {
	defer observe(metrics.DbOpUpdate, businessesCollection)(&err)

	result, err := r.businesses.UpdateByID(ctx, summary.BusinessID, bson.M{
		"$set": bson.M{
			"rating":       summary.Rating,
			"review_count": summary.ReviewCount,
			"updated_at":   time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update business rating: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrBusinessNotFound
	}
	return nil
}

func (r *catalogRepository) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, nil)
}
