package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"goaguide/directory-service/internal/app/directory/service"
)

// multipartOverhead - запас на заголовки частей и поле folder
const multipartOverhead = 1 << 20

type UploadHandler struct {
	uploadService service.UploadServiceInterface
	maxBodySize   int64
}

func NewUploadHandler(uploadService service.UploadServiceInterface, maxFiles int, maxFileSize int64) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		maxBodySize:   int64(maxFiles)*maxFileSize + multipartOverhead,
	}
}

// Upload POST /upload/upload-to-cloudinary
// multipart: files (1..N), folder (reviews|businesses|logos)
func (h *UploadHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodySize)

	form, err := c.MultipartForm()
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Upload is too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
		return
	}

	folder := "reviews"
	if values := form.Value["folder"]; len(values) > 0 && values[0] != "" {
		folder = values[0]
	}

	urls, err := h.uploadService.Upload(c.Request.Context(), folder, form.File["files"])
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoFiles):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
		case errors.Is(err, service.ErrTooManyFiles):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Too many files"})
		case errors.Is(err, service.ErrFileTooLarge):
			c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds the limit"})
		case errors.Is(err, service.ErrUnsupportedFileType):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only image files are allowed"})
		case errors.Is(err, service.ErrInvalidFolder):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid upload folder"})
		default:
			respondInternalError(c, err, "Failed to upload files")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"urls": urls})
}
