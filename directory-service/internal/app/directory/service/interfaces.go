package service

import (
	"context"
	"mime/multipart"

	"goaguide/directory-service/internal/app/directory/entity"
)

type CategoryServiceInterface interface {
	GetAll(ctx context.Context) ([]entity.Category, error)
	GetSimple(ctx context.Context, includeAll bool) ([]entity.SimpleCategory, error)
	Create(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error)
}

type BusinessServiceInterface interface {
	List(ctx context.Context, params entity.ListingParams) (*entity.ListingResponse, error)
	Get(ctx context.Context, id string) (*entity.BusinessView, error)
	Create(ctx context.Context, callerID, callerRole string, req *entity.CreateBusinessRequest) (*entity.Business, error)
	Suggest(ctx context.Context, query string, limit int) []entity.Suggestion
	UpdateStatus(ctx context.Context, id, status string) (*entity.Business, error)
}

type ReviewServiceInterface interface {
	Create(ctx context.Context, businessID, userID string, req *entity.CreateReviewRequest) (*entity.Review, error)
	List(ctx context.Context, businessID string, page, limit int) (*entity.ReviewListResponse, error)
}

type UserServiceInterface interface {
	Register(ctx context.Context, req *entity.RegisterRequest) (*entity.AuthResponse, error)
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.AuthResponse, error)
	SetPassword(ctx context.Context, callerID, callerRole string, req *entity.SetPasswordRequest) error
	GetProfile(ctx context.Context, userID string) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID string, req *entity.UpdateProfileRequest) (*entity.User, error)
}

type StatsServiceInterface interface {
	Get(ctx context.Context) (*entity.Stats, error)
}

type UploadServiceInterface interface {
	Upload(ctx context.Context, folder string, files []*multipart.FileHeader) ([]string, error)
}
