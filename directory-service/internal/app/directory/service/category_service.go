package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"goaguide/directory-service/internal/app/directory/entity"
	"goaguide/directory-service/internal/app/directory/repository"
	"goaguide/directory-service/internal/app/directory/util"
	"goaguide/pkg/logger"
)

const categoriesCacheTTL = time.Hour

// AllCategories - псевдо-категория для выпадающих списков, снимает фильтр
var AllCategories = entity.SimpleCategory{Name: "All Categories", Slug: "all"}

// CategoryService управляет таксономией и ее кешем в Redis
type CategoryService struct {
	repo  repository.CategoryRepository
	cache util.Cache
}

func NewCategoryService(repo repository.CategoryRepository, cache util.Cache) *CategoryService {
	return &CategoryService{repo: repo, cache: cache}
}

// GetAll возвращает активные категории (по убыванию числа листингов, затем по имени)
func (s *CategoryService) GetAll(ctx context.Context) ([]entity.Category, error) {
	cached, err := s.cache.GetCategories(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to read categories cache")
	} else if cached != nil {
		return cached, nil
	}

	categories, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	if err := s.cache.SetCategories(ctx, categories, categoriesCacheTTL); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache categories")
	}

	return categories, nil
}

// GetSimple возвращает пары (name, slug), отсортированные по имени
func (s *CategoryService) GetSimple(ctx context.Context, includeAll bool) ([]entity.SimpleCategory, error) {
	categories, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	simple := make([]entity.SimpleCategory, 0, len(categories)+1)
	for _, c := range categories {
		simple = append(simple, entity.SimpleCategory{Name: c.Name, Slug: c.Slug})
	}
	sort.SliceStable(simple, func(i, j int) bool {
		return simple[i].Name < simple[j].Name
	})

	if includeAll {
		simple = append([]entity.SimpleCategory{AllCategories}, simple...)
	}
	return simple, nil
}

// Create создает категорию; slug выводится из имени, если не передан
func (s *CategoryService) Create(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error) {
	name := strings.TrimSpace(req.Name)

	slug := util.GenerateSlug(req.Slug)
	if slug == "" {
		slug = util.GenerateSlug(name)
	}
	if slug == "" {
		return nil, ErrInvalidSlug
	}

	exists, err := s.repo.ExistsByNameOrSlug(ctx, name, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check category: %w", err)
	}
	if exists {
		return nil, ErrCategoryExists
	}

	subcategories := make([]string, 0, len(req.Subcategories))
	for _, sub := range req.Subcategories {
		if sub = strings.TrimSpace(sub); sub != "" {
			subcategories = append(subcategories, sub)
		}
	}

	category := &entity.Category{
		Name:          name,
		Slug:          slug,
		Icon:          strings.TrimSpace(req.Icon),
		Description:   strings.TrimSpace(req.Description),
		Subcategories: subcategories,
		BusinessCount: 0,
		IsActive:      true,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrCategoryExists) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	if err := s.cache.DeleteCategories(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate categories cache")
	}

	return category, nil
}
