// Package model describes an annotated service interface: the passive data
// model that apigen/generate consumes. It carries no behavior of its own —
// discovery (reflection, static analysis, or a hand-authored descriptor) is
// an external collaborator that produces a *TypeModel; this package only
// shapes what that collaborator hands over.
package model

import "github.com/deploymenttheory/go-apigen/apigen/serialize"

// TypeRef is an opaque description of a declared Go type, as surfaced by
// whatever discovery mechanism built the TypeModel. apigen never needs to
// resolve a TypeRef to an actual reflect.Type — it only needs to know its
// name (for return-type / cancellation-token / requester recognition) and
// whether it is nullable (a pointer, an interface, or a named type that
// can represent "no value").
type TypeRef struct {
	Name     string
	Nullable bool
}

// TypeModel is one annotated interface: properties, methods, events, and
// the type-level attributes that apply to all of them. It is produced once
// by a discovery collaborator and is never mutated afterward.
type TypeModel struct {
	// Name is the interface's own name, used as the "declaring" interface
	// for attributes defined directly on it.
	Name string

	// Headers are the type-level header attributes (zero or more).
	Headers []HeaderAttribute

	// BasePath is the optional base-path template attribute.
	BasePath *BasePathAttribute

	// AllowAnyStatusCode is the optional type-level override.
	AllowAnyStatusCode *AllowAnyStatusCodeAttribute

	// Serialization is the optional type-level default serialization
	// methods attribute.
	Serialization *SerializationMethodsAttribute

	Properties []PropertyModel
	Methods    []MethodModel

	// Events lists declared events, purely so the validator can reject
	// them (EventNotAllowed) — RestEase-style interfaces never support
	// C#-style events, but TypeModel carries them so discovery can
	// surface the violation uniformly instead of failing to build.
	Events []EventModel
}

// EventModel is a declared event; always invalid (§3 — declared for
// diagnostic purposes only).
type EventModel struct {
	Name string
}

// HeaderAttribute is a header attribute at interface, method, or parameter
// level. Value is nil when no value literal was attached; a non-nil Value
// holds the literal (possibly empty-string) text.
//
// Declaring names the interface on which this attribute was actually
// declared, which may differ from TypeModel.Name when the attribute is
// inherited — needed to enforce "must be defined on the leaf" rules such as
// AllowAnyStatusCodeAttribute's placement.
type HeaderAttribute struct {
	Name      string
	Value     *string
	Declaring string
}

// BasePathAttribute is the optional type-level base-path template.
type BasePathAttribute struct {
	Template  string
	Declaring string
}

// AllowAnyStatusCodeAttribute suppresses non-2xx-is-an-error handling. Legal
// only on the leaf interface being generated (§3 invariant).
type AllowAnyStatusCodeAttribute struct {
	Declaring string
}

// SerializationMethodsAttribute overrides the framework-default
// serialization methods at type or method level. A nil *serialize.XMethod
// field means "not overridden at this level" and resolution falls through
// to the next precedence tier.
type SerializationMethodsAttribute struct {
	Path      *serialize.PathMethod
	Query     *serialize.QueryMethod
	Body      *serialize.BodyMethod
	Declaring string
}

// PropertyRole is the closed set of annotation roles a PropertyModel may
// carry; at most one applies (§3).
type PropertyRole int

const (
	PropertyRoleNone PropertyRole = iota
	PropertyRoleHeader
	PropertyRolePath
	PropertyRoleQuery
	PropertyRoleHTTPRequestMessageProperty
)

func (r PropertyRole) String() string {
	switch r {
	case PropertyRoleHeader:
		return "Header"
	case PropertyRolePath:
		return "Path"
	case PropertyRoleQuery:
		return "Query"
	case PropertyRoleHTTPRequestMessageProperty:
		return "HttpRequestMessageProperty"
	default:
		return "None"
	}
}

// PropertyHeaderAttribute is a property-level header: unlike interface and
// method headers, its Name carries a colon (the "HeaderName: default"
// syntax), and any Default given must back onto a nullable type.
type PropertyHeaderAttribute struct {
	Name    string
	Default *string
}

// PropertyPathAttribute marks a property as a path-template value shared
// across every method of the interface.
type PropertyPathAttribute struct {
	Key string
}

// PropertyQueryAttribute marks a property as an implicit query parameter
// added to every request the interface's methods build.
type PropertyQueryAttribute struct {
	Key           string
	Serialization *serialize.QueryMethod
}

// PropertyHTTPRequestMessageAttribute stashes a property's value into the
// outgoing RequestDescription's message-property map under Key.
type PropertyHTTPRequestMessageAttribute struct {
	Key string
}

// PropertyModel describes one property on the interface.
type PropertyModel struct {
	Name string
	Type TypeRef

	HasGetter bool
	HasSetter bool

	// IsRequester is true when this property's declared type is the
	// injected Requester capability (at most one per TypeModel, §3).
	IsRequester bool

	Role PropertyRole

	Header      *PropertyHeaderAttribute
	Path        *PropertyPathAttribute
	Query       *PropertyQueryAttribute
	HTTPMessage *PropertyHTTPRequestMessageAttribute
}

// RequestAttribute carries the HTTP verb and relative path template for a
// method annotated as a request-producing operation.
type RequestAttribute struct {
	Verb         string
	PathTemplate string
}

// MethodModel describes one method on the interface.
type MethodModel struct {
	Name       string
	ReturnType TypeRef
	Parameters []ParameterModel

	// IsDisposeMethod is true if this method is the interface's
	// resource-release capability.
	IsDisposeMethod bool

	Request            *RequestAttribute
	AllowAnyStatusCode *AllowAnyStatusCodeAttribute
	Serialization      *SerializationMethodsAttribute
	Headers            []HeaderAttribute
}

// ParameterRole is the closed set of annotation roles a ParameterModel may
// carry. ParameterRoleImplicit is not an annotation — it is what a ParameterModel
// gets assigned when none of the explicit roles apply and it is not a
// cancellation token (§3).
type ParameterRole int

const (
	ParameterRoleImplicit ParameterRole = iota
	ParameterRoleCancellationToken
	ParameterRoleHeader
	ParameterRolePath
	ParameterRoleQuery
	ParameterRoleQueryMap
	ParameterRoleRawQueryString
	ParameterRoleBody
	ParameterRoleHTTPRequestMessageProperty
)

func (r ParameterRole) String() string {
	switch r {
	case ParameterRoleCancellationToken:
		return "CancellationToken"
	case ParameterRoleHeader:
		return "Header"
	case ParameterRolePath:
		return "Path"
	case ParameterRoleQuery:
		return "Query"
	case ParameterRoleQueryMap:
		return "QueryMap"
	case ParameterRoleRawQueryString:
		return "RawQueryString"
	case ParameterRoleBody:
		return "Body"
	case ParameterRoleHTTPRequestMessageProperty:
		return "HttpRequestMessageProperty"
	default:
		return "Implicit"
	}
}

// ParameterPathAttribute marks a parameter as filling a path placeholder.
type ParameterPathAttribute struct {
	Key           string
	Serialization *serialize.PathMethod
}

// ParameterQueryAttribute marks a parameter as an explicit query value.
// An empty Key means "use the parameter's own Name".
type ParameterQueryAttribute struct {
	Key           string
	Serialization *serialize.QueryMethod
}

// ParameterQueryMapAttribute marks a parameter as a map of query entries
// to be expanded at call time (TryEmitAddQueryMapParameter, §4.5).
type ParameterQueryMapAttribute struct {
	Serialization *serialize.QueryMethod
}

// ParameterRawQueryStringAttribute marks a parameter as a preformatted raw
// query string appended verbatim.
type ParameterRawQueryStringAttribute struct{}

// ParameterBodyAttribute marks a parameter as the request body.
type ParameterBodyAttribute struct {
	Serialization *serialize.BodyMethod
}

// ParameterHTTPRequestMessageAttribute stashes a parameter's value into the
// outgoing RequestDescription's message-property map under Key.
type ParameterHTTPRequestMessageAttribute struct {
	Key string
}

// ParameterModel describes one parameter of a MethodModel.
//
// Per §3, "multiplicity is a validation concern, not a data constraint":
// more than one of the attribute fields below may be non-nil on a single
// ParameterModel (a malformed interface can declare conflicting
// annotations on one parameter) — apigen/validate is what turns that into
// ParameterMustHaveZeroOrOneAttributes rather than the model forbidding it
// outright.
type ParameterModel struct {
	Name string
	Type TypeRef

	// IsCancellationToken is true if this parameter's declared type is the
	// cooperative-cancellation capability. A cancellation-token parameter
	// must carry none of the attribute fields below
	// (CancellationTokenMustHaveZeroAttributes).
	IsCancellationToken bool

	// Header holds the header name/value. A parameter header must never
	// carry a Value (HeaderParameterMustNotHaveValue).
	Header *HeaderAttribute

	Path           *ParameterPathAttribute
	Query          *ParameterQueryAttribute
	QueryMap       *ParameterQueryMapAttribute
	RawQueryString *ParameterRawQueryStringAttribute
	Body           *ParameterBodyAttribute
	HTTPMessage    *ParameterHTTPRequestMessageAttribute
}

// AttributeCount returns how many of the role-attribute fields are set.
// Zero means the parameter is implicit (plain query, framework-default
// serialization) unless IsCancellationToken is true.
func (p ParameterModel) AttributeCount() int {
	n := 0
	if p.Header != nil {
		n++
	}
	if p.Path != nil {
		n++
	}
	if p.Query != nil {
		n++
	}
	if p.QueryMap != nil {
		n++
	}
	if p.RawQueryString != nil {
		n++
	}
	if p.Body != nil {
		n++
	}
	if p.HTTPMessage != nil {
		n++
	}
	return n
}

// EffectiveRole returns the single role emission should treat this
// parameter as, using a fixed precedence when more than one attribute
// field is set (the validator separately reports that as
// ParameterMustHaveZeroOrOneAttributes; emission still needs a
// deterministic choice so generation can proceed past the diagnostic).
func (p ParameterModel) EffectiveRole() ParameterRole {
	switch {
	case p.IsCancellationToken:
		return ParameterRoleCancellationToken
	case p.Header != nil:
		return ParameterRoleHeader
	case p.Path != nil:
		return ParameterRolePath
	case p.Query != nil:
		return ParameterRoleQuery
	case p.QueryMap != nil:
		return ParameterRoleQueryMap
	case p.RawQueryString != nil:
		return ParameterRoleRawQueryString
	case p.Body != nil:
		return ParameterRoleBody
	case p.HTTPMessage != nil:
		return ParameterRoleHTTPRequestMessageProperty
	default:
		return ParameterRoleImplicit
	}
}
