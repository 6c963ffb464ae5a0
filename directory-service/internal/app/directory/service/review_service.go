package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"goaguide/directory-service/internal/app/directory/entity"
	"goaguide/directory-service/internal/app/directory/repository"
	"goaguide/directory-service/internal/app/directory/util"
	"goaguide/pkg/logger"
	"goaguide/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultReviewLimit = 10
	MaxReviewLimit     = 50

	MinRating = 1
	MaxRating = 5
)

// ReviewService - отзывы и пересчет рейтинга листинга
type ReviewService struct {
	reviewRepo   repository.ReviewRepository
	businessRepo repository.BusinessRepository
	userRepo     repository.UserRepository
	publisher    util.MessagePublisher
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	businessRepo repository.BusinessRepository,
	userRepo repository.UserRepository,
	publisher util.MessagePublisher,
) *ReviewService {
	return &ReviewService{
		reviewRepo:   reviewRepo,
		businessRepo: businessRepo,
		userRepo:     userRepo,
		publisher:    publisher,
	}
}

// Create сохраняет отзыв и пересчитывает rating/review_count листинга.
// Пересчет читает все оценки и пишет результат без блокировки; возможную потерю
// обновления при параллельных отзывах исправляет background worker по событию REVIEW_CREATED.
func (s *ReviewService) Create(ctx context.Context, businessID, userID string, req *entity.CreateReviewRequest) (*entity.Review, error) {
	comment := strings.TrimSpace(req.Comment)
	if req.Rating == 0 || comment == "" {
		return nil, ErrReviewIncomplete
	}
	if req.Rating < MinRating || req.Rating > MaxRating {
		return nil, ErrInvalidRating
	}

	bid, err := primitive.ObjectIDFromHex(businessID)
	if err != nil {
		return nil, ErrInvalidID
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}

	business, err := s.businessRepo.GetByID(ctx, bid)
	if err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("failed to get business: %w", err)
	}

	if business.OwnerID == uid {
		return nil, ErrOwnBusinessReview
	}

	exists, err := s.reviewRepo.ExistsByBusinessAndUser(ctx, bid, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	review := &entity.Review{
		BusinessID: bid,
		UserID:     uid,
		Rating:     req.Rating,
		Comment:    comment,
		Images:     nonNil(req.Images),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	if err := s.RecalculateRating(ctx, bid); err != nil {
		logger.Error().Err(err).Str("business_id", businessID).Msg("Failed to recalculate business rating")
	}

	metrics.ReviewsCreated.Inc()
	metrics.ReviewsRating.Observe(float64(review.Rating))

	publishEvent(ctx, s.publisher, entity.DirectoryEvent{
		EventType:  entity.EventReviewCreated,
		BusinessID: businessID,
		CategoryID: business.CategoryID.Hex(),
		ReviewID:   review.ID.Hex(),
		UserID:     userID,
		Rating:     review.Rating,
	})

	return review, nil
}

// RecalculateRating пересчитывает среднюю оценку и количество отзывов по всем отзывам листинга
func (s *ReviewService) RecalculateRating(ctx context.Context, businessID primitive.ObjectID) error {
	ratings, err := s.reviewRepo.RatingsByBusiness(ctx, businessID)
	if err != nil {
		return fmt.Errorf("failed to load ratings: %w", err)
	}

	if err := s.businessRepo.UpdateRating(ctx, businessID, AverageRating(ratings), len(ratings)); err != nil {
		return fmt.Errorf("failed to update rating: %w", err)
	}
	return nil
}

// AverageRating - среднее арифметическое, округленное до одного знака после запятой
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}
	mean := float64(sum) / float64(len(ratings))
	return math.Round(mean*10) / 10
}

// List возвращает страницу отзывов листинга (новые первыми) с данными авторов
func (s *ReviewService) List(ctx context.Context, businessID string, page, limit int) (*entity.ReviewListResponse, error) {
	page, limit = normalizePage(page, limit, DefaultReviewLimit, MaxReviewLimit)

	bid, err := primitive.ObjectIDFromHex(businessID)
	if err != nil {
		return nil, ErrInvalidID
	}

	reviews, err := s.reviewRepo.ListByBusiness(ctx, bid, int64((page-1)*limit), int64(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	total, err := s.reviewRepo.CountByBusiness(ctx, bid)
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	views, err := s.populateAuthors(ctx, reviews)
	if err != nil {
		return nil, err
	}

	return &entity.ReviewListResponse{
		Reviews: views,
		Pagination: entity.ReviewPagination{
			Current: page,
			Pages:   totalPages(total, limit),
			Total:   total,
		},
	}, nil
}

func (s *ReviewService) populateAuthors(ctx context.Context, reviews []entity.Review) ([]entity.ReviewView, error) {
	views := make([]entity.ReviewView, 0, len(reviews))
	if len(reviews) == 0 {
		return views, nil
	}

	ids := make([]primitive.ObjectID, 0, len(reviews))
	for _, r := range reviews {
		ids = append(ids, r.UserID)
	}

	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load review authors: %w", err)
	}

	byID := make(map[primitive.ObjectID]*entity.ReviewerRef, len(users))
	for _, u := range users {
		byID[u.ID] = &entity.ReviewerRef{ID: u.ID.Hex(), Name: u.Name, Email: u.Email, Image: u.Image}
	}

	for _, r := range reviews {
		views = append(views, entity.ReviewView{Review: r, User: byID[r.UserID]})
	}
	return views, nil
}
