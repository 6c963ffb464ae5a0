package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"goaguide/directory-service/internal/app/directory/entity"
	"goaguide/directory-service/internal/app/directory/repository"
	"goaguide/directory-service/internal/app/directory/util"
	"goaguide/pkg/logger"
	"goaguide/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultListingLimit = 12
	MaxListingLimit     = 100

	DefaultSuggestionLimit = 8
	maxSuggestionLimit     = 20
	categorySuggestions    = 3
	minSuggestionQuery     = 2

	defaultCity  = "goa"
	defaultState = "goa"
)

// BusinessService - выборка, создание и модерация листингов
type BusinessService struct {
	businessRepo repository.BusinessRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	publisher    util.MessagePublisher
}

func NewBusinessService(
	businessRepo repository.BusinessRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	publisher util.MessagePublisher,
) *BusinessService {
	return &BusinessService{
		businessRepo: businessRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		publisher:    publisher,
	}
}

// List выполняет поиск по каталогу с фильтрами, сортировкой и пагинацией
func (s *BusinessService) List(ctx context.Context, params entity.ListingParams) (*entity.ListingResponse, error) {
	page, limit := normalizePage(params.Page, params.Limit, DefaultListingLimit, MaxListingLimit)

	query := repository.ListingQuery{
		Status:   strings.TrimSpace(params.Status),
		Search:   strings.TrimSpace(params.Search),
		Location: strings.TrimSpace(params.Location),
		SortBy:   repository.NormalizeSort(params.SortBy),
	}

	if params.Owner != "" {
		ownerID, err := primitive.ObjectIDFromHex(params.Owner)
		if err != nil {
			return nil, ErrInvalidID
		}
		query.OwnerID = &ownerID
	}

	if category := strings.TrimSpace(params.Category); category != "" && category != AllCategories.Name {
		resolved, err := s.resolveCategory(ctx, category)
		if err != nil {
			return nil, err
		}
		// Неизвестная категория не сужает выборку
		if resolved != nil {
			query.CategoryID = &resolved.ID
		}
	}

	metrics.ListingSearches.WithLabelValues(query.SortBy, strconv.FormatBool(query.Search != "")).Inc()

	businesses, total, err := s.businessRepo.List(ctx, query, int64((page-1)*limit), int64(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}

	views, err := s.populate(ctx, businesses)
	if err != nil {
		return nil, err
	}

	pages := totalPages(total, limit)

	return &entity.ListingResponse{
		Businesses: views,
		Pagination: entity.ListingPagination{
			Page:    page,
			Limit:   limit,
			Total:   total,
			Pages:   pages,
			Current: page,
			HasNext: page < pages,
			HasPrev: page > 1,
		},
		Filters: entity.ListingFilters{
			Search:   optional(query.Search),
			Category: optional(strings.TrimSpace(params.Category)),
			Location: optional(query.Location),
			SortBy:   query.SortBy,
		},
	}, nil
}

// resolveCategory ищет категорию по slug, затем по имени без учета регистра,
// затем по slug, выведенному из значения. nil, если ничего не найдено.
func (s *BusinessService) resolveCategory(ctx context.Context, value string) (*entity.Category, error) {
	lookups := []func() (*entity.Category, error){
		func() (*entity.Category, error) { return s.categoryRepo.GetBySlug(ctx, value) },
		func() (*entity.Category, error) { return s.categoryRepo.GetByName(ctx, value) },
		func() (*entity.Category, error) { return s.categoryRepo.GetBySlug(ctx, util.DeriveSlug(value)) },
	}

	for _, lookup := range lookups {
		category, err := lookup()
		if err == nil {
			return category, nil
		}
		if !errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, fmt.Errorf("failed to resolve category: %w", err)
		}
	}

	logger.Debug().Str("category", value).Msg("Category filter did not match any category")
	return nil, nil
}

// Get возвращает публично видимый листинг с подставленными категорией и владельцем
func (s *BusinessService) Get(ctx context.Context, id string) (*entity.BusinessView, error) {
	businessID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("failed to get business: %w", err)
	}

	if !entity.IsPublicStatus(business.Status) {
		return nil, ErrBusinessNotFound
	}

	views, err := s.populate(ctx, []entity.Business{*business})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Create сохраняет заявку на листинг со статусом pending.
// Пользователь с ролью user становится владельцем (owner).
func (s *BusinessService) Create(ctx context.Context, callerID, callerRole string, req *entity.CreateBusinessRequest) (*entity.Business, error) {
	ownerID, err := primitive.ObjectIDFromHex(callerID)
	if err != nil {
		return nil, ErrInvalidID
	}

	categoryID, err := primitive.ObjectIDFromHex(req.Category)
	if err != nil {
		return nil, ErrInvalidCategory
	}

	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrInvalidCategory
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	business := newBusiness(ownerID, category.ID, req)

	if err := s.businessRepo.Create(ctx, business); err != nil {
		return nil, fmt.Errorf("failed to create business: %w", err)
	}

	if callerRole == entity.RoleUser {
		if err := s.userRepo.UpdateRole(ctx, ownerID, entity.RoleOwner); err != nil {
			logger.Error().Err(err).Str("user_id", callerID).Msg("Failed to promote user to owner")
		}
	}

	metrics.BusinessesCreated.Inc()

	publishEvent(ctx, s.publisher, entity.DirectoryEvent{
		EventType:  entity.EventBusinessCreated,
		BusinessID: business.ID.Hex(),
		CategoryID: business.CategoryID.Hex(),
		UserID:     callerID,
		Status:     business.Status,
	})

	return business, nil
}

func newBusiness(ownerID, categoryID primitive.ObjectID, req *entity.CreateBusinessRequest) *entity.Business {
	address := entity.Address{
		Street:  strings.TrimSpace(req.Address.Street),
		Area:    strings.TrimSpace(req.Address.Area),
		Pincode: strings.TrimSpace(req.Address.Pincode),
		City:    strings.TrimSpace(req.Address.City),
		State:   strings.TrimSpace(req.Address.State),
	}
	if address.City == "" {
		address.City = defaultCity
	}
	if address.State == "" {
		address.State = defaultState
	}

	business := &entity.Business{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		CategoryID:  categoryID,
		Subcategory: strings.TrimSpace(req.Subcategory),
		Address:     address,
		Contact: entity.Contact{
			Phone:   req.Contact.Phone,
			Email:   strings.ToLower(strings.TrimSpace(req.Contact.Email)),
			Website: strings.TrimSpace(req.Contact.Website),
		},
		Hours:  req.Hours,
		Images: nonNil(req.Images),
		Logo:   req.Logo,
		Rating: 0,
		Status: entity.StatusPending,
		Tags:   []string{},
	}

	if req.Location != nil {
		business.Location = entity.NewGeoPoint(req.Location.Coordinates[0], req.Location.Coordinates[1])
	}

	if req.SocialMedia != nil {
		business.SocialMedia = entity.SocialMedia{
			Facebook:  req.SocialMedia.Facebook,
			Instagram: req.SocialMedia.Instagram,
			WhatsApp:  req.SocialMedia.WhatsApp,
		}
	}

	for _, tag := range req.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			business.Tags = append(business.Tags, tag)
		}
	}

	return business
}

// Suggest подбирает подсказки для строки поиска. Ошибки не пробрасываются:
// автодополнение деградирует до пустого списка.
func (s *BusinessService) Suggest(ctx context.Context, query string, limit int) []entity.Suggestion {
	suggestions := []entity.Suggestion{}

	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSuggestionQuery {
		return suggestions
	}
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	if limit > maxSuggestionLimit {
		limit = maxSuggestionLimit
	}

	businesses, err := s.businessRepo.Suggest(ctx, query, int64(limit))
	if err != nil {
		logger.Error().Err(err).Str("query", query).Msg("Failed to fetch business suggestions")
		return suggestions
	}

	categoryNames, err := s.categoryNames(ctx, businesses)
	if err != nil {
		logger.Error().Err(err).Str("query", query).Msg("Failed to fetch suggestion categories")
		return suggestions
	}

	for _, b := range businesses {
		name, ok := categoryNames[b.CategoryID]
		if !ok {
			name = "Uncategorized"
		}
		suggestions = append(suggestions, entity.Suggestion{
			ID:          b.ID.Hex(),
			Name:        b.Name,
			Type:        "business",
			Category:    name,
			Subcategory: b.Subcategory,
		})
	}

	categories, err := s.categoryRepo.SearchByName(ctx, query, categorySuggestions)
	if err != nil {
		logger.Error().Err(err).Str("query", query).Msg("Failed to fetch category suggestions")
		return []entity.Suggestion{}
	}

	for _, c := range categories {
		suggestions = append(suggestions, entity.Suggestion{
			ID:       c.ID.Hex(),
			Name:     c.Name,
			Type:     "category",
			Category: "Category",
		})
	}

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

// UpdateStatus - решение модератора по листингу
func (s *BusinessService) UpdateStatus(ctx context.Context, id, status string) (*entity.Business, error) {
	if !entity.IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	businessID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("failed to get business: %w", err)
	}

	if business.Status == status {
		return business, nil
	}

	if err := s.businessRepo.UpdateStatus(ctx, businessID, status); err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("failed to update business status: %w", err)
	}
	business.Status = status

	metrics.BusinessStatusChanges.WithLabelValues(status).Inc()

	publishEvent(ctx, s.publisher, entity.DirectoryEvent{
		EventType:  entity.EventBusinessStatusChanged,
		BusinessID: business.ID.Hex(),
		CategoryID: business.CategoryID.Hex(),
		Status:     status,
	})

	return business, nil
}

// populate подставляет в листинги категорию (id, name, slug) и владельца (id, name, email)
func (s *BusinessService) populate(ctx context.Context, businesses []entity.Business) ([]entity.BusinessView, error) {
	views := make([]entity.BusinessView, 0, len(businesses))
	if len(businesses) == 0 {
		return views, nil
	}

	categoryIDs := make([]primitive.ObjectID, 0, len(businesses))
	ownerIDs := make([]primitive.ObjectID, 0, len(businesses))
	seenCategories := map[primitive.ObjectID]bool{}
	seenOwners := map[primitive.ObjectID]bool{}
	for _, b := range businesses {
		if !seenCategories[b.CategoryID] {
			seenCategories[b.CategoryID] = true
			categoryIDs = append(categoryIDs, b.CategoryID)
		}
		if !seenOwners[b.OwnerID] {
			seenOwners[b.OwnerID] = true
			ownerIDs = append(ownerIDs, b.OwnerID)
		}
	}

	categories, err := s.categoryRepo.GetByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	owners, err := s.userRepo.GetByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load owners: %w", err)
	}

	categoryByID := make(map[primitive.ObjectID]*entity.CategoryRef, len(categories))
	for _, c := range categories {
		categoryByID[c.ID] = &entity.CategoryRef{ID: c.ID.Hex(), Name: c.Name, Slug: c.Slug}
	}
	ownerByID := make(map[primitive.ObjectID]*entity.OwnerRef, len(owners))
	for _, u := range owners {
		ownerByID[u.ID] = &entity.OwnerRef{ID: u.ID.Hex(), Name: u.Name, Email: u.Email}
	}

	for _, b := range businesses {
		views = append(views, entity.BusinessView{
			Business: b,
			Category: categoryByID[b.CategoryID],
			Owner:    ownerByID[b.OwnerID],
		})
	}
	return views, nil
}

func (s *BusinessService) categoryNames(ctx context.Context, businesses []entity.Business) (map[primitive.ObjectID]string, error) {
	if len(businesses) == 0 {
		return map[primitive.ObjectID]string{}, nil
	}

	ids := make([]primitive.ObjectID, 0, len(businesses))
	for _, b := range businesses {
		ids = append(ids, b.CategoryID)
	}

	categories, err := s.categoryRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	names := make(map[primitive.ObjectID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}
