package requesterresty

import (
	"testing"

	"resty.dev/v3"
)

func TestBearerTokenProvider_Apply(t *testing.T) {
	provider := NewBearerTokenProvider("initial-token")
	req := resty.New().R()

	if err := provider.Apply(req); err != nil {
		t.Fatalf("Apply() error = %v, want nil", err)
	}
}

func TestBearerTokenProvider_Apply_EmptyToken(t *testing.T) {
	provider := NewBearerTokenProvider("")
	req := resty.New().R()

	if err := provider.Apply(req); err == nil {
		t.Fatal("Apply() error = nil, want error for empty token")
	}
}

func TestBearerTokenProvider_UpdateToken(t *testing.T) {
	provider := NewBearerTokenProvider("initial-token")

	if err := provider.UpdateToken("rotated-token"); err != nil {
		t.Fatalf("UpdateToken() error = %v, want nil", err)
	}

	req := resty.New().R()
	if err := provider.Apply(req); err != nil {
		t.Fatalf("Apply() after rotation error = %v, want nil", err)
	}
}

func TestBearerTokenProvider_UpdateToken_Empty(t *testing.T) {
	provider := NewBearerTokenProvider("initial-token")

	if err := provider.UpdateToken(""); err == nil {
		t.Fatal("UpdateToken() error = nil, want error for empty token")
	}
}

func TestNoAuth_Apply(t *testing.T) {
	var auth NoAuth
	req := resty.New().R()

	if err := auth.Apply(req); err != nil {
		t.Fatalf("Apply() error = %v, want nil", err)
	}
}
