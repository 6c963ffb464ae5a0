package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"goaguide/directory-service/internal/app/directory/entity"
	"goaguide/directory-service/internal/app/directory/util"
)

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) Get(ctx context.Context) (*entity.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Stats), args.Error(1)
}

type testServices struct {
	category *MockCategoryService
	business *MockBusinessService
	review   *MockReviewService
	user     *MockUserService
	upload   *MockUploadService
	stats    *MockStatsService
}

func newTestRouter() (*testServices, http.Handler, *util.JWTManager) {
	svc := &testServices{
		category: new(MockCategoryService),
		business: new(MockBusinessService),
		review:   new(MockReviewService),
		user:     new(MockUserService),
		upload:   new(MockUploadService),
		stats:    new(MockStatsService),
	}
	v := NewValidator()
	middleware, jwtManager := newTestAuthMiddleware()

	router := SetupRoutes(Handlers{
		Category: NewCategoryHandler(svc.category, v),
		Business: NewBusinessHandler(svc.business, v),
		Review:   NewReviewHandler(svc.review, v),
		Auth:     NewAuthHandler(svc.user, v),
		Upload:   NewUploadHandler(svc.upload, 10, 5<<20),
		Stats:    NewStatsHandler(svc.stats),
	}, middleware, []string{"*"})

	return svc, router, jwtManager
}

func TestSetupRoutes_Health(t *testing.T) {
	_, router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "directory-service")
}

func TestSetupRoutes_Stats(t *testing.T) {
	svc, router, _ := newTestRouter()
	svc.stats.On("Get", mock.Anything).Return(&entity.Stats{TotalBusinesses: 3, TotalReviews: 7, TotalUsers: 2}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total_businesses":3,"total_reviews":7,"total_users":2}`, rec.Body.String())
}

func TestSetupRoutes_StatsError(t *testing.T) {
	svc, router, _ := newTestRouter()
	svc.stats.On("Get", mock.Anything).Return(nil, errors.New("redis down"))

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSetupRoutes_SuggestionsNotShadowedByID(t *testing.T) {
	svc, router, _ := newTestRouter()
	svc.business.On("Suggest", mock.Anything, "goa", 5).Return([]entity.Suggestion{{Name: "Goa Cafe", Type: "business"}})

	req := httptest.NewRequest(http.MethodGet, "/api/services/suggestions?q=goa&limit=5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Goa Cafe")
}

func TestSetupRoutes_ProtectedEndpoints(t *testing.T) {
	_, router, _ := newTestRouter()

	endpoints := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/services"},
		{http.MethodPost, "/api/services/665f1c2e8f1b2a3c4d5e6f70/reviews"},
		{http.MethodPost, "/api/categories"},
		{http.MethodPatch, "/api/services/665f1c2e8f1b2a3c4d5e6f70/status"},
		{http.MethodPost, "/api/upload/upload-to-cloudinary"},
		{http.MethodPost, "/api/auth/set-password"},
		{http.MethodGet, "/api/auth/me"},
	}

	for _, ep := range endpoints {
		t.Run(ep.method+" "+ep.path, func(t *testing.T) {
			req := httptest.NewRequest(ep.method, ep.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestSetupRoutes_AdminOnlyCategoryCreate(t *testing.T) {
	_, router, jwtManager := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/categories", nil)
	req.Header.Set("Authorization", bearer(t, jwtManager, "user-1", entity.RoleOwner))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
