package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"goaguide/directory-service/internal/app/directory/entity"
	"goaguide/directory-service/internal/app/directory/service"
)

type BusinessHandler struct {
	businessService service.BusinessServiceInterface
	validator       *validator.Validate
}

func NewBusinessHandler(businessService service.BusinessServiceInterface, v *validator.Validate) *BusinessHandler {
	return &BusinessHandler{
		businessService: businessService,
		validator:       v,
	}
}

// ListBusinesses GET /services
func (h *BusinessHandler) ListBusinesses(c *gin.Context) {
	params := entity.ListingParams{
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Location: c.Query("location"),
		Status:   c.Query("status"),
		Owner:    c.Query("owner"),
		SortBy:   c.Query("sortBy"),
	}

	resp, err := h.businessService.List(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, service.ErrInvalidID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid owner ID"})
			return
		}
		respondInternalError(c, err, "Failed to fetch businesses")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetBusiness GET /businesses/:id
func (h *BusinessHandler) GetBusiness(c *gin.Context) {
	business, err := h.businessService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidID):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID"})
		case errors.Is(err, service.ErrBusinessNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		default:
			respondInternalError(c, err, "Failed to fetch business")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"business": business,
		"success":  true,
	})
}

// CreateBusiness POST /services
func (h *BusinessHandler) CreateBusiness(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req entity.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	business, err := h.businessService.Create(c.Request.Context(), userID, role, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCategory):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		case errors.Is(err, service.ErrInvalidID):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		default:
			respondInternalError(c, err, "Failed to create business")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Business listing submitted for review",
		"business": business,
	})
}

// GetSuggestions GET /services/suggestions?q=&limit=
// Всегда отвечает 200: при ошибке список пуст
func (h *BusinessHandler) GetSuggestions(c *gin.Context) {
	suggestions := h.businessService.Suggest(c.Request.Context(), c.Query("q"), queryInt(c, "limit"))
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// UpdateBusinessStatus PATCH /services/:id/status (admin)
func (h *BusinessHandler) UpdateBusinessStatus(c *gin.Context) {
	var req entity.UpdateBusinessStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	business, err := h.businessService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidID):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID"})
		case errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		case errors.Is(err, service.ErrBusinessNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		default:
			respondInternalError(c, err, "Failed to update business status")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Business status updated",
		"business": business,
	})
}
