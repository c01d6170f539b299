package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed  ErrorCode = "VALIDATION_FAILED"
	ErrorCodeInvalidCriteria   ErrorCode = "INVALID_CRITERIA"
	ErrorCodeInvalidJSON       ErrorCode = "INVALID_JSON"
	ErrorCodeEntityNotFound    ErrorCode = "ENTITY_NOT_FOUND"
	ErrorCodeResultSetTooLarge ErrorCode = "RESULT_SET_TOO_LARGE"

	// Server Error Codes (5xx)
	ErrorCodeInternalError    ErrorCode = "INTERNAL_ERROR"
	ErrorCodeStoreUnavailable ErrorCode = "CATALOG_STORE_UNAVAILABLE"
)

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string, details ...ErrorDetail) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	errorResponse := APIErrorResponse(code, message, details...)

	// Add request ID if available
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}

	c.JSON(statusCode, errorResponse)
}

// SendInvalidCriteriaError sends a validation failure naming the offending field
func SendInvalidCriteriaError(c *gin.Context, field, message string) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidCriteria, "Filter criteria validation failed",
		ErrorDetail{Field: field, Message: message, Code: "VALIDATION_ERROR"})
}

// SendEntityNotFoundError sends a standardized entity not found error
func SendEntityNotFoundError(c *gin.Context, kind string, id string) {
	SendError(c, http.StatusNotFound, ErrorCodeEntityNotFound,
		kind+" '"+id+"' not found")
}

// SendResultSetTooLargeError instructs the caller to narrow the criteria
func SendResultSetTooLargeError(c *gin.Context, err error) {
	SendError(c, http.StatusUnprocessableEntity, ErrorCodeResultSetTooLarge, err.Error())
}

// SendStoreUnavailableError sends a retryable service error
func SendStoreUnavailableError(c *gin.Context, err error) {
	SendError(c, http.StatusServiceUnavailable, ErrorCodeStoreUnavailable,
		"Catalog store is temporarily unavailable: "+err.Error())
}

// SendInvalidJSONError sends a standardized invalid JSON error
func SendInvalidJSONError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON,
		"Invalid JSON in request body: "+err.Error())
}

// SendInternalError sends a standardized internal server error
func SendInternalError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Internal error during "+operation+": "+err.Error())
}
