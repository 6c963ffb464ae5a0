package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"goaguide/directory-service/internal/app/directory/entity"
	"goaguide/directory-service/internal/app/directory/repository"
	"goaguide/directory-service/internal/app/directory/util"
	"goaguide/pkg/logger"
	"goaguide/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService - регистрация, вход и профиль пользователя
type UserService struct {
	userRepo   repository.UserRepository
	jwtManager *util.JWTManager
}

func NewUserService(userRepo repository.UserRepository, jwtManager *util.JWTManager) *UserService {
	return &UserService{userRepo: userRepo, jwtManager: jwtManager}
}

func (s *UserService) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		metrics.AuthEvents.WithLabelValues("register", "conflict").Inc()
		return nil, ErrUserExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}

	hash, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = entity.RoleUser
	}

	user := &entity.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(req.Phone),
		Role:         role,
		Providers: entity.Providers{
			Credentials: entity.CredentialsProvider{HasPassword: true},
		},
		Preferences: entity.DefaultPreferences(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			metrics.AuthEvents.WithLabelValues("register", "conflict").Inc()
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	metrics.AuthEvents.WithLabelValues("register", "success").Inc()
	return s.authResponse(user)
}

// Login проверяет пароль; аккаунт без пароля (только внешний вход) войти по паролю не может
func (s *UserService) Login(ctx context.Context, req *entity.LoginRequest) (*entity.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			metrics.AuthEvents.WithLabelValues("login", "failure").Inc()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !util.CheckPassword(req.Password, user.PasswordHash) {
		metrics.AuthEvents.WithLabelValues("login", "failure").Inc()
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		logger.Warn().Err(err).Str("user_id", user.ID.Hex()).Msg("Failed to record last login")
	} else {
		user.LastLoginAt = &now
	}

	metrics.AuthEvents.WithLabelValues("login", "success").Inc()
	return s.authResponse(user)
}

// SetPassword задает пароль аккаунту. Менять можно только свой аккаунт, администратор - любой.
func (s *UserService) SetPassword(ctx context.Context, callerID, callerRole string, req *entity.SetPasswordRequest) error {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if callerRole != entity.RoleAdmin && user.ID.Hex() != callerID {
		metrics.AuthEvents.WithLabelValues("set_password", "forbidden").Inc()
		return ErrForbidden
	}

	hash, err := util.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.SetPassword(ctx, user.ID, hash); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to set password: %w", err)
	}

	metrics.AuthEvents.WithLabelValues("set_password", "success").Inc()
	return nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateProfile применяет переданные поля и пересчитывает заполненность профиля
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *entity.UpdateProfileRequest) (*entity.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if phone := strings.TrimSpace(req.Phone); phone != "" {
		user.Phone = phone
	}
	if req.Gender != "" {
		user.Gender = req.Gender
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("invalid date of birth: %w", err)
		}
		user.DateOfBirth = &dob
	}
	if req.Address != nil {
		user.Address = entity.UserAddress{
			Street:  strings.TrimSpace(req.Address.Street),
			Area:    strings.TrimSpace(req.Address.Area),
			City:    strings.TrimSpace(req.Address.City),
			State:   strings.TrimSpace(req.Address.State),
			Pincode: strings.TrimSpace(req.Address.Pincode),
		}
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	user.CheckProfileCompleteness()

	return user, nil
}

func (s *UserService) authResponse(user *entity.User) (*entity.AuthResponse, error) {
	token, err := s.jwtManager.GenerateToken(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &entity.AuthResponse{
		User:      user,
		Token:     token,
		ExpiresIn: int64(s.jwtManager.TokenDuration().Seconds()),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
