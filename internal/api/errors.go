package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/wordle-solver-api/internal/api/shared"
	"github.com/phrazzld/wordle-solver-api/internal/domain"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var verrs validator.ValidationErrors
	switch {
	// Bad request errors
	case errors.As(err, &verrs),
		errors.Is(err, domain.ErrInvalidWord),
		errors.Is(err, domain.ErrInvalidFeedback),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, shared.ErrEmptyBody):
		return http.StatusBadRequest

	// The request was abandoned or ran out of time while ranking
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var verr *domain.ValidationError
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return SanitizeValidationError(verrs)

	// Validation errors carry only the field name and a fixed message.
	case errors.As(err, &verr):
		return fmt.Sprintf("Invalid %s: %s", verr.Field, verr.Message)

	case errors.Is(err, domain.ErrInvalidWord):
		return "Invalid word"

	case errors.Is(err, domain.ErrInvalidFeedback):
		return "Invalid feedback"

	case errors.Is(err, domain.ErrValidation):
		return "Validation error"

	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"

	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return "Request could not be completed in time"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator output into a short message naming
// the first offending field by its JSON path.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}

	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", fieldPath(fe), getValidationTagMessage(fe.Tag()))
}

// fieldPath strips the request type from the namespace, so
// "SuggestionRequest.history[0].guess" becomes "history[0].guess".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	for i := 0; i < len(ns); i++ {
		if ns[i] == '.' {
			return ns[i+1:]
		}
	}
	return fe.Field()
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required", "required_with":
		return "required field"
	case "wordle_word":
		return "must be exactly 5 letters A-Z"
	case "wordle_feedback":
		return "must be 5 characters of b, y or g"
	case "max":
		return "too many entries"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status and safe message for err, logging the
// full error. fallback replaces the generic message on server errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
