package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"goaguide/directory-service/internal/app/directory/entity"
	"goaguide/directory-service/internal/app/directory/service"
)

type ReviewHandler struct {
	reviewService service.ReviewServiceInterface
	validator     *validator.Validate
}

func NewReviewHandler(reviewService service.ReviewServiceInterface, v *validator.Validate) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     v,
	}
}

// CreateReview POST /services/:id/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req entity.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	req.Comment = strings.TrimSpace(req.Comment)

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), c.Param("id"), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidID):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID"})
		case errors.Is(err, service.ErrReviewIncomplete):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating and comment are required"})
		case errors.Is(err, service.ErrInvalidRating):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
		case errors.Is(err, service.ErrBusinessNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		case errors.Is(err, service.ErrOwnBusinessReview):
			c.JSON(http.StatusForbidden, gin.H{"error": "You cannot review your own business"})
		case errors.Is(err, service.ErrAlreadyReviewed):
			c.JSON(http.StatusBadRequest, gin.H{"error": "You have already reviewed this business"})
		default:
			respondInternalError(c, err, "Failed to create review")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review created successfully",
		"review":  review,
	})
}

// GetReviews GET /services/:id/reviews?page=&limit=
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	resp, err := h.reviewService.List(c.Request.Context(), c.Param("id"), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID"})
			return
		}
		respondInternalError(c, err, "Failed to fetch reviews")
		return
	}

	c.JSON(http.StatusOK, resp)
}
