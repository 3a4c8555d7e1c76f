package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPlaceholders(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     []string
	}{
		{"no placeholders", "/ping", nil},
		{"single", "/users/{id}", []string{"id"}},
		{"multiple", "/accounts/{accountId}/users/{id}", []string{"accountId", "id"}},
		{"duplicates preserved", "/{id}/sub/{id}", []string{"id", "id"}},
		{"empty braces ignored as key text", "/{}/x", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPlaceholders(tt.template))
		})
	}
}

func TestPlaceholderSet(t *testing.T) {
	set := PlaceholderSet("/{a}/{b}/{a}")
	assert.Equal(t, map[string]bool{"a": true, "b": true}, set)
}

func TestPlaceholderSet_Empty(t *testing.T) {
	assert.Empty(t, PlaceholderSet("/no/placeholders"))
}

func TestExtractPlaceholders_Concatenation(t *testing.T) {
	a, b := "/{x}/fixed", "/{y}/more"
	got := ExtractPlaceholders(a + b)
	want := append(ExtractPlaceholders(a), ExtractPlaceholders(b)...)
	assert.Equal(t, want, got)
}
