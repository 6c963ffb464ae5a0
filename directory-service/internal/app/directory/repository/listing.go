package repository

import (
	"regexp"
	"strings"

	"goaguide/directory-service/internal/app/directory/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Варианты сортировки листинга
const (
	SortFeatured = "featured"
	SortRating   = "rating"
	SortNewest   = "newest"
	SortReviews  = "reviews"
)

// LocationPlaceholder - значение локации по умолчанию в клиенте, фильтром не считается
const LocationPlaceholder = "Coochbehar, West Bengal"

// ListingQuery - нормализованные условия выборки листинга.
// Категория к этому моменту уже разрешена в ID (или отброшена).
type ListingQuery struct {
	CategoryID *primitive.ObjectID
	OwnerID    *primitive.ObjectID
	Status     string
	Search     string
	Location   string
	SortBy     string
}

// BuildListingFilter собирает фильтр MongoDB для выборки листинга
func BuildListingFilter(q ListingQuery) bson.M {
	filter := bson.M{}

	switch {
	case q.OwnerID != nil:
		filter["owner_id"] = *q.OwnerID
	case q.Status != "":
		filter["status"] = q.Status
	default:
		filter["status"] = bson.M{"$in": entity.PublicStatuses}
	}

	if q.CategoryID != nil {
		filter["category_id"] = *q.CategoryID
	}

	var textOr, locationOr bson.A

	if search := strings.TrimSpace(q.Search); search != "" {
		rx := containsRegex(search)
		textOr = bson.A{
			bson.M{"name": rx},
			bson.M{"description": rx},
			bson.M{"tags": bson.M{"$in": bson.A{rx}}},
			bson.M{"subcategory": rx},
			bson.M{"address.street": rx},
			bson.M{"address.area": rx},
		}
	}

	if location := strings.TrimSpace(q.Location); location != "" && location != LocationPlaceholder {
		rx := containsRegex(location)
		locationOr = bson.A{
			bson.M{"address.city": rx},
			bson.M{"address.area": rx},
			bson.M{"address.street": rx},
		}
	}

	switch {
	case textOr != nil && locationOr != nil:
		filter["$and"] = bson.A{
			bson.M{"$or": textOr},
			bson.M{"$or": locationOr},
		}
	case textOr != nil:
		filter["$or"] = textOr
	case locationOr != nil:
		filter["$or"] = locationOr
	}

	return filter
}

// ListingSort возвращает порядок сортировки; премиум-листинги всегда первые
func ListingSort(sortBy string) bson.D {
	switch sortBy {
	case SortRating:
		return bson.D{{Key: "is_premium", Value: -1}, {Key: "rating", Value: -1}, {Key: "review_count", Value: -1}, {Key: "created_at", Value: -1}}
	case SortNewest:
		return bson.D{{Key: "is_premium", Value: -1}, {Key: "created_at", Value: -1}, {Key: "rating", Value: -1}}
	case SortReviews:
		return bson.D{{Key: "is_premium", Value: -1}, {Key: "review_count", Value: -1}, {Key: "rating", Value: -1}, {Key: "created_at", Value: -1}}
	default:
		return bson.D{{Key: "is_premium", Value: -1}, {Key: "rating", Value: -1}, {Key: "created_at", Value: -1}}
	}
}

// NormalizeSort приводит неизвестный вариант сортировки к featured
func NormalizeSort(sortBy string) string {
	switch sortBy {
	case SortRating, SortNewest, SortReviews:
		return sortBy
	}
	return SortFeatured
}

// containsRegex - регистронезависимый поиск подстроки; пользовательский ввод экранируется
func containsRegex(value string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"}
}

// exactRegex - регистронезависимое точное совпадение
func exactRegex(value string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(value) + "$", Options: "i"}
}
