package service

import "errors"

var (
	ErrInvalidID           = errors.New("invalid id")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("user with this email already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrForbidden           = errors.New("access forbidden")
	ErrCategoryExists      = errors.New("category with this name or slug already exists")
	ErrInvalidSlug         = errors.New("category slug could not be derived from name")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrBusinessNotFound    = errors.New("business not found")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrReviewIncomplete    = errors.New("rating and comment are required")
	ErrOwnBusinessReview   = errors.New("owner cannot review own business")
	ErrAlreadyReviewed     = errors.New("business already reviewed by user")
	ErrNoFiles             = errors.New("no files provided")
	ErrTooManyFiles        = errors.New("too many files")
	ErrFileTooLarge        = errors.New("file is too large")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrInvalidFolder       = errors.New("invalid upload folder")
)
