// Package seed наполняет каталог базовой таксономией категорий Гоа.
package seed

import (
	"context"
	"fmt"

	"goaguide/directory-service/internal/app/directory/entity"
	"goaguide/directory-service/internal/app/directory/repository"
	"goaguide/directory-service/internal/app/directory/util"
	"goaguide/pkg/logger"
)

// DefaultCategories возвращает категории по умолчанию.
// Каждый вызов отдает новый срез, чтобы Run мог проставлять ID.
func DefaultCategories() []entity.Category {
	return []entity.Category{
		{
			Name:        "Tours & Experiences",
			Slug:        "tours-experiences",
			Icon:        "map",
			Description: "Guided tours, cultural experiences, and sightseeing in Goa",
			Subcategories: []string{
				"City Tours", "Heritage Walks", "Beach Tours",
				"Nightlife Tours", "Village Tours", "Food & Drink Tours",
			},
		},
		{
			Name:        "Hotels & Stays",
			Slug:        "hotels-stays",
			Icon:        "hotel",
			Description: "Hotels, resorts, guest houses, and homestays in Goa",
			Subcategories: []string{
				"Luxury Resorts", "Boutique Hotels", "Beach Shacks",
				"Guest Houses", "Homestays", "Budget Stays",
			},
		},
		{
			Name:        "Adventure & Activities",
			Slug:        "adventure-activities",
			Icon:        "sailboat",
			Description: "Thrilling water sports, trekking, and outdoor activities",
			Subcategories: []string{
				"Scuba Diving", "Parasailing", "Jet Ski",
				"Kayaking", "Trekking", "Dolphin Watching",
			},
		},
		{
			Name:        "Food & Nightlife",
			Slug:        "food-nightlife",
			Icon:        "utensils",
			Description: "Goa's vibrant restaurants, bars, cafes, and clubs",
			Subcategories: []string{
				"Beach Shacks", "Fine Dining", "Cafes",
				"Nightclubs", "Bars & Pubs", "Local Cuisine",
			},
		},
		{
			Name:        "Transport & Rentals",
			Slug:        "transport-rentals",
			Icon:        "car",
			Description: "Transport services and vehicle rentals across Goa",
			Subcategories: []string{
				"Taxi Service", "Bike Rentals", "Car Rentals",
				"Airport Transfers", "Bus & Shuttle",
			},
		},
		{
			Name:        "Wellness & Retreats",
			Slug:        "wellness-retreats",
			Icon:        "spa",
			Description: "Yoga, meditation, spas, and wellness retreats",
			Subcategories: []string{
				"Yoga Retreats", "Meditation", "Ayurveda",
				"Spa & Massage", "Detox Programs",
			},
		},
		{
			Name:        "Events & Weddings",
			Slug:        "events-weddings",
			Icon:        "party-popper",
			Description: "Destination weddings, events, and party planning in Goa",
			Subcategories: []string{
				"Wedding Planners", "Beach Weddings", "Event Venues",
				"Party Planners", "Corporate Events",
			},
		},
		{
			Name:        "Shopping & Souvenirs",
			Slug:        "shopping-souvenirs",
			Icon:        "shopping-bag",
			Description: "Markets, boutiques, and souvenir shops in Goa",
			Subcategories: []string{
				"Flea Markets", "Clothing", "Handicrafts",
				"Jewelry", "Souvenir Shops",
			},
		},
	}
}

// Result - итог прогона сидера
type Result struct {
	Created int
	Updated int
}

type Seeder struct {
	repo  repository.CategoryRepository
	cache util.Cache
}

// NewSeeder создает сидер; cache может быть nil
func NewSeeder(repo repository.CategoryRepository, cache util.Cache) *Seeder {
	return &Seeder{repo: repo, cache: cache}
}

// Run upsert-ит категории по slug. Повторный запуск не создает дубликатов
// и не сбрасывает business_count.
func (s *Seeder) Run(ctx context.Context, categories []entity.Category) (Result, error) {
	var result Result

	for i := range categories {
		category := &categories[i]
		category.IsActive = true

		created, err := s.repo.UpsertBySlug(ctx, category)
		if err != nil {
			return result, fmt.Errorf("failed to seed category %s: %w", category.Slug, err)
		}

		if created {
			result.Created++
		} else {
			result.Updated++
		}

		logger.Debug().
			Str("slug", category.Slug).
			Bool("created", created).
			Msg("Category seeded")
	}

	if s.cache != nil {
		if err := s.cache.DeleteCategories(ctx); err != nil {
			logger.Warn().Err(err).Msg("Failed to invalidate categories cache after seeding")
		}
	}

	return result, nil
}
