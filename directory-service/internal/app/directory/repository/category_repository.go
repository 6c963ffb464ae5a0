package repository

import (
	"context"
	"errors"
	"fmt"

	"goaguide/directory-service/internal/app/directory/entity"
	"goaguide/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type categoryRepository struct {
	collection *mongo.Collection
}

// NewCategoryRepository создает репозиторий категорий с уникальным индексом по slug
func NewCategoryRepository(db *mongo.Database) CategoryRepository {
	collection := db.Collection(categoriesCollection)

	ensureIndexes(collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetName("slug_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "is_active", Value: 1}, {Key: "business_count", Value: -1}},
			Options: options.Index().SetName("active_count_idx"),
		},
	})

	return &categoryRepository{collection: collection}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) (err error) {
	defer observe(metrics.DbOpInsert, categoriesCollection)(&err)

	result, err := r.collection.InsertOne(ctx, category)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrCategoryExists
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		category.ID = oid
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

// GetByName ищет категорию по имени без учета регистра
func (r *categoryRepository) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.findOne(ctx, bson.M{"name": exactRegex(name)})
}

func (r *categoryRepository) findOne(ctx context.Context, filter bson.M) (category *entity.Category, err error) {
	defer observe(metrics.DbOpFind, categoriesCollection)(&err)

	var c entity.Category
	if err := r.collection.FindOne(ctx, filter).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &c, nil
}

func (r *categoryRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]entity.Category, error) {
	if len(ids) == 0 {
		return []entity.Category{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find().SetProjection(bson.M{"name": 1, "slug": 1}))
}

func (r *categoryRepository) ExistsByNameOrSlug(ctx context.Context, name, slug string) (exists bool, err error) {
	defer observe(metrics.DbOpCount, categoriesCollection)(&err)

	filter := bson.M{"$or": bson.A{
		bson.M{"name": exactRegex(name)},
		bson.M{"slug": slug},
	}}

	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check category: %w", err)
	}
	return count > 0, nil
}

// ListActive возвращает активные категории: сначала самые наполненные, затем по имени
func (r *categoryRepository) ListActive(ctx context.Context) ([]entity.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "business_count", Value: -1}, {Key: "name", Value: 1}})
	return r.find(ctx, bson.M{"is_active": true}, opts)
}

func (r *categoryRepository) SearchByName(ctx context.Context, query string, limit int64) ([]entity.Category, error) {
	filter := bson.M{"is_active": true, "name": containsRegex(query)}
	return r.find(ctx, filter, options.Find().SetLimit(limit))
}

// UpsertBySlug создает или обновляет категорию по slug; счетчик листингов не трогает.
// Возвращает true, если категория была создана.
func (r *categoryRepository) UpsertBySlug(ctx context.Context, category *entity.Category) (created bool, err error) {
	defer observe(metrics.DbOpUpdate, categoriesCollection)(&err)

	update := bson.M{
		"$set": bson.M{
			"name":          category.Name,
			"icon":          category.Icon,
			"description":   category.Description,
			"subcategories": category.Subcategories,
			"is_active":     category.IsActive,
		},
		"$setOnInsert": bson.M{"business_count": 0},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"slug": category.Slug}, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, fmt.Errorf("failed to upsert category %s: %w", category.Slug, err)
	}

	if oid, ok := result.UpsertedID.(primitive.ObjectID); ok {
		category.ID = oid
	}
	return result.UpsertedCount > 0, nil
}

func (r *categoryRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) (categories []entity.Category, err error) {
	defer observe(metrics.DbOpFind, categoriesCollection)(&err)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}
	defer cursor.Close(ctx)

	categories = []entity.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}
