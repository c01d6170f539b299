package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ValidationResult holds the result of request validation
type ValidationResult struct {
	Errors []ErrorDetail
}

// AddError adds a validation error
func (v *ValidationResult) AddError(field, message string) {
	v.Errors = append(v.Errors, ErrorDetail{
		Field:   field,
		Message: message,
		Code:    "VALIDATION_ERROR",
	})
}

// HasErrors returns true if there are validation errors
func (v *ValidationResult) HasErrors() bool {
	return len(v.Errors) > 0
}

// SendValidationError sends a validation error response
func (v *ValidationResult) SendValidationError(c *gin.Context) {
	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed,
		"Request validation failed", v.Errors...)
}

// validateEntityID parses and validates a numeric entity id path parameter
func validateEntityID(raw string, validation *ValidationResult) int64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		validation.AddError("id", "Entity ID cannot be empty")
		return 0
	}

	id, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil || id <= 0 {
		validation.AddError("id", "Entity ID must be a positive integer")
		return 0
	}

	return id
}

// validateSuggestionKeyword validates the keyword query parameter
func validateSuggestionKeyword(keyword string, validation *ValidationResult) string {
	trimmed := strings.TrimSpace(keyword)
	if trimmed == "" {
		validation.AddError("keyword", "Keyword cannot be empty")
		return ""
	}

	if len([]rune(trimmed)) > 100 {
		validation.AddError("keyword", "Keyword cannot exceed 100 characters")
		return ""
	}

	return trimmed
}
