package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"goaguide/directory-service/internal/app/directory/entity"
	"goaguide/directory-service/internal/app/directory/service"
)

type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) Upload(ctx context.Context, folder string, files []*multipart.FileHeader) ([]string, error) {
	args := m.Called(ctx, folder, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// multipartBody собирает multipart тело с файлами в поле files
func multipartBody(t *testing.T, folder string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, content := range files {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	if folder != "" {
		require.NoError(t, writer.WriteField("folder", folder))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadHandler_Upload_Success(t *testing.T) {
	svc := new(MockUploadService)
	h := NewUploadHandler(svc, 10, 5<<20)

	svc.On("Upload", mock.Anything, "logos", mock.MatchedBy(func(files []*multipart.FileHeader) bool {
		return len(files) == 1 && files[0].Filename == "logo.png"
	})).Return([]string{"http://localhost:9000/goaguide/logos/abc.png"}, nil)

	router := gin.New()
	router.POST("/upload", withUser("user-1", entity.RoleOwner), h.Upload)

	body, contentType := multipartBody(t, "logos", map[string][]byte{"logo.png": []byte("\x89PNG\r\n\x1a\n")})
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"urls":["http://localhost:9000/goaguide/logos/abc.png"]}`, rec.Body.String())
}

func TestUploadHandler_Upload_DefaultFolder(t *testing.T) {
	svc := new(MockUploadService)
	h := NewUploadHandler(svc, 10, 5<<20)

	svc.On("Upload", mock.Anything, "reviews", mock.Anything).Return([]string{"u"}, nil)

	router := gin.New()
	router.POST("/upload", h.Upload)

	body, contentType := multipartBody(t, "", map[string][]byte{"a.jpg": {0xFF, 0xD8, 0xFF}})
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestUploadHandler_Upload_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		expected   int
	}{
		{"no files", service.ErrNoFiles, http.StatusBadRequest},
		{"too many", service.ErrTooManyFiles, http.StatusBadRequest},
		{"too large", service.ErrFileTooLarge, http.StatusBadRequest},
		{"not an image", service.ErrUnsupportedFileType, http.StatusBadRequest},
		{"bad folder", service.ErrInvalidFolder, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockUploadService)
			h := NewUploadHandler(svc, 10, 5<<20)
			svc.On("Upload", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.serviceErr)

			router := gin.New()
			router.POST("/upload", h.Upload)

			body, contentType := multipartBody(t, "reviews", map[string][]byte{"a.txt": []byte("hello")})
			req := httptest.NewRequest(http.MethodPost, "/upload", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestUploadHandler_Upload_NotMultipart(t *testing.T) {
	svc := new(MockUploadService)
	h := NewUploadHandler(svc, 10, 5<<20)

	router := gin.New()
	router.POST("/upload", h.Upload)

	req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}
