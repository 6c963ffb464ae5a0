package handler

import (
	"bytes"
	"context"
	"encoding/json"
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

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AuthResponse), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, req *entity.LoginRequest) (*entity.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AuthResponse), args.Error(1)
}

func (m *MockUserService) SetPassword(ctx context.Context, callerID, callerRole string, req *entity.SetPasswordRequest) error {
	args := m.Called(ctx, callerID, callerRole, req)
	return args.Error(0)
}

func (m *MockUserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID string, req *entity.UpdateProfileRequest) (*entity.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// ==================== Register / Login ====================

func TestAuthHandler_Register_Success(t *testing.T) {
	svc := new(MockUserService)
	h := NewAuthHandler(svc, NewValidator())

	svc.On("Register", mock.Anything, mock.AnythingOfType("*entity.RegisterRequest")).Return(&entity.AuthResponse{
		User:  &entity.User{Name: "Priya", Email: "priya@example.com", Role: entity.RoleUser, PasswordHash: "secret-hash"},
		Token: "token",
	}, nil)

	router := gin.New()
	router.POST("/auth/register", h.Register)

	rec := postJSON(router, "/auth/register", `{"name":"Priya","email":"priya@example.com","password":"password123"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret-hash")

	var resp entity.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "token", resp.Token)
}

func TestAuthHandler_Register_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		expected   int
	}{
		{"duplicate email", `{"name":"Priya","email":"priya@example.com","password":"password123"}`, service.ErrUserExists, http.StatusConflict},
		{"short password", `{"name":"Priya","email":"priya@example.com","password":"123"}`, nil, http.StatusBadRequest},
		{"admin role", `{"name":"Priya","email":"priya@example.com","password":"password123","role":"admin"}`, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockUserService)
			h := NewAuthHandler(svc, NewValidator())
			svc.On("Register", mock.Anything, mock.Anything).Return(nil, tt.serviceErr)

			router := gin.New()
			router.POST("/auth/register", h.Register)

			rec := postJSON(router, "/auth/register", tt.body)

			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	svc := new(MockUserService)
	h := NewAuthHandler(svc, NewValidator())

	svc.On("Login", mock.Anything, mock.Anything).Return(nil, service.ErrInvalidCredentials)

	router := gin.New()
	router.POST("/auth/login", h.Login)

	rec := postJSON(router, "/auth/login", `{"email":"priya@example.com","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password")
}

// ==================== SetPassword ====================

func TestAuthHandler_SetPassword(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		expected   int
		message    string
	}{
		{"success", `{"email":"priya@example.com","password":"newpass1"}`, nil, http.StatusOK, "Password set successfully"},
		{"missing email", `{"password":"newpass1"}`, nil, http.StatusBadRequest, "Email and password are required"},
		{"missing password", `{"email":"priya@example.com"}`, nil, http.StatusBadRequest, "Email and password are required"},
		{"short password", `{"email":"priya@example.com","password":"123"}`, nil, http.StatusBadRequest, "Password must be at least 6 characters long"},
		{"unknown email", `{"email":"ghost@example.com","password":"newpass1"}`, service.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"someone else", `{"email":"other@example.com","password":"newpass1"}`, service.ErrForbidden, http.StatusForbidden, "own account"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockUserService)
			h := NewAuthHandler(svc, NewValidator())
			svc.On("SetPassword", mock.Anything, "user-1", entity.RoleUser, mock.AnythingOfType("*entity.SetPasswordRequest")).Return(tt.serviceErr)

			router := gin.New()
			router.POST("/auth/set-password", withUser("user-1", entity.RoleUser), h.SetPassword)

			rec := postJSON(router, "/auth/set-password", tt.body)

			assert.Equal(t, tt.expected, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.message)
		})
	}
}

func TestAuthHandler_SetPassword_RequiresAuth(t *testing.T) {
	middleware, _ := newTestAuthMiddleware()
	svc := new(MockUserService)
	h := NewAuthHandler(svc, NewValidator())

	router := gin.New()
	router.POST("/auth/set-password", middleware.Authenticate(), h.SetPassword)

	rec := postJSON(router, "/auth/set-password", `{"email":"priya@example.com","password":"newpass1"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "SetPassword", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// ==================== Profile ====================

func TestAuthHandler_Me(t *testing.T) {
	svc := new(MockUserService)
	h := NewAuthHandler(svc, NewValidator())

	svc.On("GetProfile", mock.Anything, "user-1").Return(&entity.User{Name: "Priya", Email: "priya@example.com"}, nil)

	router := gin.New()
	router.GET("/auth/me", withUser("user-1", entity.RoleUser), h.Me)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "priya@example.com")
}

func TestAuthHandler_UpdateProfile(t *testing.T) {
	svc := new(MockUserService)
	h := NewAuthHandler(svc, NewValidator())

	svc.On("UpdateProfile", mock.Anything, "user-1", mock.MatchedBy(func(req *entity.UpdateProfileRequest) bool {
		return req.Phone == "9876543210" && req.Address != nil && req.Address.Pincode == "403001"
	})).Return(&entity.User{Name: "Priya", Phone: "9876543210"}, nil)

	router := gin.New()
	router.PUT("/auth/profile", withUser("user-1", entity.RoleUser), h.UpdateProfile)

	body := `{"phone":"9876543210","address":{"city":"Panaji","pincode":"403001"}}`
	req := httptest.NewRequest(http.MethodPut, "/auth/profile", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestAuthHandler_UpdateProfile_InvalidPincode(t *testing.T) {
	svc := new(MockUserService)
	h := NewAuthHandler(svc, NewValidator())

	router := gin.New()
	router.PUT("/auth/profile", withUser("user-1", entity.RoleUser), h.UpdateProfile)

	req := httptest.NewRequest(http.MethodPut, "/auth/profile", bytes.NewBufferString(`{"address":{"pincode":"12"}}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "PIN code must be 6 digits")
}
