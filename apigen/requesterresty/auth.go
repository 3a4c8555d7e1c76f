package requesterresty

import (
	"fmt"
	"sync"

	"resty.dev/v3"
)

// AuthProvider applies authentication to an outgoing resty.Request. It is
// the generalization of the teacher's hardcoded bearer-token AuthManager:
// a Requester is not limited to bearer-token APIs, so the provider is
// pluggable rather than a fixed AuthConfig/AuthManager pair.
type AuthProvider interface {
	Apply(req *resty.Request) error
}

// NoAuth is the zero-value AuthProvider: it applies nothing. Useful for
// APIs that authenticate out-of-band (mTLS, a signed proxy in front).
type NoAuth struct{}

// Apply does nothing.
func (NoAuth) Apply(*resty.Request) error { return nil }

// BearerTokenProvider is a thread-safe bearer-token AuthProvider
// supporting runtime token rotation, the generalized form of the
// teacher's AuthManager.
type BearerTokenProvider struct {
	mu    sync.RWMutex
	token string
}

// NewBearerTokenProvider builds a BearerTokenProvider with the given
// initial token.
func NewBearerTokenProvider(token string) *BearerTokenProvider {
	return &BearerTokenProvider{token: token}
}

// Apply sets the request's Authorization header via resty's bearer auth
// scheme, reading the current token under a read lock so a concurrent
// UpdateToken is safe.
func (p *BearerTokenProvider) Apply(req *resty.Request) error {
	p.mu.RLock()
	token := p.token
	p.mu.RUnlock()

	if token == "" {
		return fmt.Errorf("bearer token is not set")
	}
	req.SetAuthScheme("Bearer")
	req.SetAuthToken(token)
	return nil
}

// UpdateToken rotates the token used by subsequent requests without
// recreating the Client.
func (p *BearerTokenProvider) UpdateToken(newToken string) error {
	if newToken == "" {
		return fmt.Errorf("token cannot be empty")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = newToken
	return nil
}
