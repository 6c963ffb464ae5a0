package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goaguide/directory-service/internal/app/directory/entity"
)

func validBusinessRequest() entity.CreateBusinessRequest {
	return entity.CreateBusinessRequest{
		Name:        "Fisherman's Wharf",
		Description: "Riverside Goan seafood restaurant",
		Category:    "665f1c2e8f1b2a3c4d5e6f70",
		Address: entity.AddressRequest{
			Street:  "Cavelossim Road",
			Area:    "Mobor",
			Pincode: "403731",
		},
		Contact: entity.ContactRequest{
			Phone: []string{"+919876543210"},
		},
	}
}

func TestValidation_CreateBusinessRequest(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		mutate  func(r *entity.CreateBusinessRequest)
		message string
	}{
		{"valid", func(r *entity.CreateBusinessRequest) {}, ""},
		{"short name", func(r *entity.CreateBusinessRequest) { r.Name = "A" }, "name must be at least 2 characters"},
		{"short description", func(r *entity.CreateBusinessRequest) { r.Description = "short" }, "description must be at least 10 characters"},
		{"missing street", func(r *entity.CreateBusinessRequest) { r.Address.Street = "" }, "address.street is required"},
		{"bad pincode", func(r *entity.CreateBusinessRequest) { r.Address.Pincode = "40373" }, "PIN code must be 6 digits"},
		{"no phones", func(r *entity.CreateBusinessRequest) { r.Contact.Phone = nil }, "contact.phone is required"},
		{"bad phone", func(r *entity.CreateBusinessRequest) { r.Contact.Phone = []string{"12-34"} }, "Invalid phone number"},
		{"bad email", func(r *entity.CreateBusinessRequest) { r.Contact.Email = "nope" }, "Invalid email address"},
		{"bad website", func(r *entity.CreateBusinessRequest) { r.Contact.Website = "not a url" }, "contact.website must be a valid URL"},
		{"bad instagram", func(r *entity.CreateBusinessRequest) {
			r.SocialMedia = &entity.SocialMediaRequest{Instagram: "insta"}
		}, "social_media.instagram must be a valid URL"},
		{"bad coordinates", func(r *entity.CreateBusinessRequest) {
			r.Location = &entity.LocationRequest{Coordinates: []float64{73.9}}
		}, "location.coordinates must contain exactly 2 items"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validBusinessRequest()
			tt.mutate(&req)

			err := v.Struct(req)
			if tt.message == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.message, formatValidationError(err))
		})
	}
}

func TestValidation_CreateReviewRequest(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		req     entity.CreateReviewRequest
		message string
	}{
		{"missing rating", entity.CreateReviewRequest{Comment: "Nice"}, "Rating and comment are required"},
		{"missing comment", entity.CreateReviewRequest{Rating: 4}, "Rating and comment are required"},
		{"rating too high", entity.CreateReviewRequest{Rating: 6, Comment: "Nice"}, "Rating must be between 1 and 5"},
		{"too many images", entity.CreateReviewRequest{
			Rating:  5,
			Comment: "Nice",
			Images: []string{
				"https://cdn.example.com/1.jpg", "https://cdn.example.com/2.jpg",
				"https://cdn.example.com/3.jpg", "https://cdn.example.com/4.jpg",
				"https://cdn.example.com/5.jpg", "https://cdn.example.com/6.jpg",
			},
		}, "Maximum 5 images allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.message, formatValidationError(err))
		})
	}
}

func TestValidation_SetPasswordRequest(t *testing.T) {
	v := NewValidator()

	err := v.Struct(entity.SetPasswordRequest{Email: "a@b.com", Password: "123"})
	require.Error(t, err)
	assert.Equal(t, "Password must be at least 6 characters long", formatValidationError(err))

	assert.NoError(t, v.Struct(entity.SetPasswordRequest{Email: "a@b.com", Password: "123456"}))
}

func TestValidation_UpdateProfileRequest(t *testing.T) {
	v := NewValidator()

	err := v.Struct(entity.UpdateProfileRequest{DateOfBirth: "12/05/1990"})
	require.Error(t, err)
	assert.Equal(t, "date_of_birth must be a date in YYYY-MM-DD format", formatValidationError(err))

	err = v.Struct(entity.UpdateProfileRequest{Gender: "unknown"})
	require.Error(t, err)
	assert.Equal(t, "gender must be one of: male, female, other", formatValidationError(err))
}
