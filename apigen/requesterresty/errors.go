package requesterresty

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// APIError is the generic error-response shape Workbrew-style APIs
// commonly use ({"message": "...", "errors": [...]}), carried over from
// the teacher's APIError almost verbatim — only the field set is kept
// domain-agnostic (no Workbrew-specific wording in the default messages).
type APIError struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`

	StatusCode int
	Status     string
	Endpoint   string
	Method     string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("requesterresty: %s %s -> %d %s: %s - %v",
			e.Method, e.Endpoint, e.StatusCode, e.Status, e.Message, e.Errors)
	}
	return fmt.Sprintf("requesterresty: %s %s -> %d %s: %s",
		e.Method, e.Endpoint, e.StatusCode, e.Status, e.Message)
}

// ParseErrorResponse turns a non-2xx response body into an APIError,
// falling back to the raw body as the message when it isn't JSON.
func ParseErrorResponse(body []byte, statusCode int, status, method, endpoint string, logger *zap.Logger) error {
	apiErr := &APIError{
		StatusCode: statusCode,
		Status:     status,
		Endpoint:   endpoint,
		Method:     method,
	}

	if err := json.Unmarshal(body, apiErr); err != nil {
		apiErr.Message = string(body)
		logger.Debug("error response was not JSON, using raw body",
			zap.Error(err), zap.String("body", string(body)))
	}

	if apiErr.Message == "" {
		apiErr.Message = defaultErrorMessage(statusCode)
	}

	logger.Error("API error response",
		zap.Int("status_code", statusCode),
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.String("message", apiErr.Message))

	return apiErr
}

func defaultErrorMessage(statusCode int) string {
	switch statusCode {
	case http.StatusBadRequest:
		return "bad request"
	case http.StatusUnauthorized:
		return "authentication required or invalid credentials"
	case http.StatusForbidden:
		return "access forbidden"
	case http.StatusNotFound:
		return "resource not found"
	case http.StatusConflict:
		return "resource conflict"
	case http.StatusUnprocessableEntity:
		return "validation error"
	case http.StatusTooManyRequests:
		return "rate limit exceeded"
	case http.StatusInternalServerError:
		return "internal server error"
	case http.StatusBadGateway:
		return "bad gateway"
	case http.StatusServiceUnavailable:
		return "service temporarily unavailable"
	case http.StatusGatewayTimeout:
		return "gateway timeout"
	default:
		return "unknown error"
	}
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool { return statusIs(err, http.StatusNotFound) }

// IsUnauthorized reports whether err is an APIError with status 401.
func IsUnauthorized(err error) bool { return statusIs(err, http.StatusUnauthorized) }

// IsForbidden reports whether err is an APIError with status 403.
func IsForbidden(err error) bool { return statusIs(err, http.StatusForbidden) }

// IsConflict reports whether err is an APIError with status 409.
func IsConflict(err error) bool { return statusIs(err, http.StatusConflict) }

// IsValidationError reports whether err is an APIError with status 422.
func IsValidationError(err error) bool { return statusIs(err, http.StatusUnprocessableEntity) }

// IsRateLimited reports whether err is an APIError with status 429.
func IsRateLimited(err error) bool { return statusIs(err, http.StatusTooManyRequests) }

// IsServerError reports whether err is an APIError with a 5xx status.
func IsServerError(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode >= 500 && apiErr.StatusCode < 600
}

// IsTransient reports whether err is a 503 or 504 APIError, both
// generally safe to retry.
func IsTransient(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && (apiErr.StatusCode == http.StatusServiceUnavailable || apiErr.StatusCode == http.StatusGatewayTimeout)
}

func statusIs(err error, code int) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == code
}
