package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"goaguide/directory-service/internal/app/directory/entity"
	"goaguide/directory-service/internal/app/directory/service"
)

type CategoryHandler struct {
	categoryService service.CategoryServiceInterface
	validator       *validator.Validate
}

func NewCategoryHandler(categoryService service.CategoryServiceInterface, v *validator.Validate) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		validator:       v,
	}
}

// GetCategories GET /categories?format=simple&includeAll=true
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	if c.Query("format") == "simple" {
		categories, err := h.categoryService.GetSimple(c.Request.Context(), c.Query("includeAll") == "true")
		if err != nil {
			respondInternalError(c, err, "Failed to fetch categories")
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
		return
	}

	categories, err := h.categoryService.GetAll(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to fetch categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory POST /categories (admin)
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req entity.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category with this name or slug already exists"})
		case errors.Is(err, service.ErrInvalidSlug):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category name must contain letters or digits"})
		default:
			respondInternalError(c, err, "Failed to create category")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Category created successfully",
		"category": category,
	})
}
