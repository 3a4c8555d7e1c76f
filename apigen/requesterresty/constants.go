// Package requesterresty is the reference Requester (§6) backed by
// resty.dev/v3. It is one possible collaborator a generated client can be
// wired to — apigen/generate and apigen/emit never import it.
package requesterresty

const (
	// DefaultTimeoutSeconds is the default HTTP client timeout.
	DefaultTimeoutSeconds = 120

	// DefaultRetryCount is the default number of retries on transient
	// failures.
	DefaultRetryCount = 3

	// DefaultRetryWaitSeconds is the initial wait time between retries.
	DefaultRetryWaitSeconds = 2

	// DefaultRetryMaxWaitSeconds is the maximum wait time between
	// retries.
	DefaultRetryMaxWaitSeconds = 10

	// UserAgentBase is the default User-Agent product token.
	UserAgentBase = "go-apigen-client"

	// Version is the reference Requester's own version, reported in the
	// default User-Agent.
	Version = "0.1.0"
)
