// Package request defines the Requester contract (§6): the pluggable,
// injected capability that executes a RequestDescription and returns a
// response in one of several recognized shapes. apigen/generate never
// calls a Requester directly — it only builds RequestDescription values
// and emits operations that, when run by an emit backend, call through
// this interface. apigen/requesterresty is the reference implementation.
package request

import (
	"context"
	"io"
	"net/http"

	"github.com/deploymenttheory/go-apigen/apigen/serialize"
)

// HeaderEntry is one header contributed by a type-, method-, property-,
// or parameter-level header attribute, in the order §4.5/§4.6 requires:
// type-level first, then method-level, then parameter-level.
type HeaderEntry struct {
	Name  string
	Value string
}

// QueryEntry is one query-string contribution, carrying the resolved
// serialization method so the Requester (or a BodySerializer-adjacent
// QueryParamSerializer it holds) knows whether to stringify or delegate.
type QueryEntry struct {
	Key           string
	Value         any
	Serialization serialize.QueryMethod
}

// PathSubstitution fills one `{name}` placeholder in the method's path
// template (or the type's base-path template).
type PathSubstitution struct {
	Key           string
	Value         any
	Serialization serialize.PathMethod
}

// Body is the request body, if the method has one, carrying the resolved
// serialization method the Requester applies before encoding onto the
// wire.
type Body struct {
	Value         any
	Serialization serialize.BodyMethod
}

// RequestDescription is the mutable, builder-shaped record assembled by
// a method's emitted plan at call time and handed to the Requester. Its
// field set mirrors §6 exactly: every emission operation in §4.5
// populates exactly one part of it.
type RequestDescription struct {
	Verb                string
	PathTemplate        string
	BasePathTemplate    string
	Headers             []HeaderEntry
	Query               []QueryEntry
	PathSubstitutions   []PathSubstitution
	MessageProperties   map[string]any
	Body                *Body
	AllowAnyStatusCode  bool
	CancellationToken   context.Context
	MethodInfo          string
}

// NewRequestDescription returns a RequestDescription with its verb and
// path template set and its map field initialized, ready for emission
// operations to populate in order.
func NewRequestDescription(verb, pathTemplate, methodInfo string) *RequestDescription {
	return &RequestDescription{
		Verb:              verb,
		PathTemplate:      pathTemplate,
		MethodInfo:        methodInfo,
		MessageProperties: make(map[string]any),
	}
}

// ResponseMessage is the raw shape returned by
// RequestWithResponseMessage: status, headers, and body bytes,
// without deserialization.
type ResponseMessage struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// Response pairs a deserialized value with its originating
// ResponseMessage, for callers that need both.
type Response[T any] struct {
	Message ResponseMessage
	Value   T
}

// Requester is the external collaborator that turns a
// RequestDescription into an HTTP call and a result in one of the
// recognized return shapes of §4.5 step 7.
type Requester interface {
	// RequestVoid performs the call and discards the body, for methods
	// returning future-of-unit.
	RequestVoid(ctx context.Context, desc *RequestDescription) error

	// RequestWithResponseMessage performs the call and returns the raw
	// response without deserializing the body.
	RequestWithResponseMessage(ctx context.Context, desc *RequestDescription) (ResponseMessage, error)

	// RequestRawBytes performs the call and returns the body bytes
	// verbatim.
	RequestRawBytes(ctx context.Context, desc *RequestDescription) ([]byte, error)

	// RequestRawString performs the call and returns the body decoded as
	// a string.
	RequestRawString(ctx context.Context, desc *RequestDescription) (string, error)

	// RequestRawStream performs the call and returns the body as an open
	// stream the caller is responsible for closing.
	RequestRawStream(ctx context.Context, desc *RequestDescription) (io.ReadCloser, error)

	// Dispose releases resources held by the Requester, for interfaces
	// declaring a dispose method.
	Dispose() error
}

// RequestInto performs the call and deserializes the response body into
// result, for methods returning future-of-T. It is a free function
// rather than a Requester method because T must be supplied by the
// caller — Go interfaces cannot declare a generic method.
func RequestInto[T any](ctx context.Context, r Requester, desc *RequestDescription, into func([]byte, any) error, result *T) (ResponseMessage, error) {
	msg, err := r.RequestWithResponseMessage(ctx, desc)
	if err != nil {
		return msg, err
	}
	if into == nil {
		return msg, nil
	}
	if err := into(msg.Body, result); err != nil {
		return msg, err
	}
	return msg, nil
}
