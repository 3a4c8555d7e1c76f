package requesterresty

import (
	"net/http"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name        string
		apiError    *APIError
		wantContain []string
	}{
		{
			name: "message only",
			apiError: &APIError{
				StatusCode: 404,
				Status:     "404 Not Found",
				Method:     "GET",
				Endpoint:   "/widgets/1",
				Message:    "widget not found",
			},
			wantContain: []string{"404", "Not Found", "GET", "/widgets/1", "widget not found"},
		},
		{
			name: "message and errors array",
			apiError: &APIError{
				StatusCode: 422,
				Status:     "422 Unprocessable Entity",
				Method:     "POST",
				Endpoint:   "/widgets",
				Message:    "validation failed",
				Errors:     []string{"name is required"},
			},
			wantContain: []string{"422", "validation failed", "name is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.apiError.Error()
			for _, want := range tt.wantContain {
				if !strings.Contains(got, want) {
					t.Errorf("Error() = %q, want substring %q", got, want)
				}
			}
		})
	}
}

func TestParseErrorResponse_JSON(t *testing.T) {
	logger := zaptest.NewLogger(t)
	body := []byte(`{"message":"validation failed","errors":["name is required"]}`)

	err := ParseErrorResponse(body, http.StatusUnprocessableEntity, "422 Unprocessable Entity", "POST", "/widgets", logger)

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("ParseErrorResponse() returned %T, want *APIError", err)
	}
	if apiErr.Message != "validation failed" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "validation failed")
	}
	if len(apiErr.Errors) != 1 || apiErr.Errors[0] != "name is required" {
		t.Errorf("Errors = %v, want [name is required]", apiErr.Errors)
	}
}

func TestParseErrorResponse_NonJSON(t *testing.T) {
	logger := zaptest.NewLogger(t)
	body := []byte("internal error occurred")

	err := ParseErrorResponse(body, http.StatusInternalServerError, "500 Internal Server Error", "GET", "/widgets", logger)

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("ParseErrorResponse() returned %T, want *APIError", err)
	}
	if apiErr.Message != "internal error occurred" {
		t.Errorf("Message = %q, want raw body", apiErr.Message)
	}
}

func TestErrorStatusHelpers(t *testing.T) {
	notFound := &APIError{StatusCode: http.StatusNotFound}
	if !IsNotFound(notFound) {
		t.Error("IsNotFound() = false, want true")
	}
	if IsForbidden(notFound) {
		t.Error("IsForbidden() = true, want false")
	}

	serverErr := &APIError{StatusCode: http.StatusBadGateway}
	if !IsServerError(serverErr) {
		t.Error("IsServerError() = false, want true")
	}

	unavailable := &APIError{StatusCode: http.StatusServiceUnavailable}
	if !IsTransient(unavailable) {
		t.Error("IsTransient() = false, want true")
	}

	if IsNotFound(nil) {
		t.Error("IsNotFound(nil-typed) = true, want false")
	}
}
