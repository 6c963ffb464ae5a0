package handler

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	phonePattern   = regexp.MustCompile(`^[+]?[0-9]{10,15}$`)
	pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)
)

// fieldMessages - сообщения для конкретных пар поле/правило (ключ: namespace.tag)
var fieldMessages = map[string]string{
	"CreateReviewRequest.rating.required":  "Rating and comment are required",
	"CreateReviewRequest.comment.required": "Rating and comment are required",
	"CreateReviewRequest.rating.min":       "Rating must be between 1 and 5",
	"CreateReviewRequest.rating.max":       "Rating must be between 1 and 5",
	"CreateReviewRequest.images.max":       "Maximum 5 images allowed",
	"SetPasswordRequest.password.min":      "Password must be at least 6 characters long",
}

// NewValidator создает валидатор с правилами phone и pincode.
// В ошибках используются имена полей из json тегов.
func NewValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("pincode", func(fl validator.FieldLevel) bool {
		return pincodePattern.MatchString(fl.Field().String())
	})

	return v
}

// formatValidationError возвращает сообщение для первой ошибки валидации
func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return "Validation failed"
	}

	fe := validationErrors[0]
	if msg, ok := fieldMessages[fe.Namespace()+"."+fe.Tag()]; ok {
		return msg
	}

	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "Invalid email address"
	case "url":
		return field + " must be a valid URL"
	case "phone":
		return "Invalid phone number"
	case "pincode":
		return "PIN code must be 6 digits"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return field + " must be a date in YYYY-MM-DD format"
	case "len":
		return fmt.Sprintf("%s must contain exactly %s items", field, fe.Param())
	case "min":
		return boundMessage(field, "at least", fe)
	case "max":
		return boundMessage(field, "at most", fe)
	}
	return field + " is invalid"
}

func boundMessage(field, bound string, fe validator.FieldError) string {
	switch fe.Kind() {
	case reflect.String:
		return fmt.Sprintf("%s must be %s %s characters", field, bound, fe.Param())
	case reflect.Slice, reflect.Array, reflect.Map:
		return fmt.Sprintf("%s must contain %s %s items", field, bound, fe.Param())
	}
	return fmt.Sprintf("%s must be %s %s", field, bound, fe.Param())
}

// fieldPath - путь поля без имени корневой структуры: "address.pincode"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
