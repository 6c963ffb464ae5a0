package repository

import (
	"math"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ratingPipeline агрегирует оценки листинга: среднее и количество
func ratingPipeline(businessID primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"business_id": businessID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$business_id",
			"avg":   bson.M{"$avg": "$rating"},
			"count": bson.M{"$sum": 1},
		}}},
	}
}

// categoryCountPipeline считает публичные листинги по категориям
func categoryCountPipeline(statuses []string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": bson.M{"$in": statuses}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$category_id",
			"count": bson.M{"$sum": 1},
		}}},
	}
}

// RoundRating округляет среднюю оценку до одного знака после запятой
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
