// Package serialize resolves the effective serialization method for a
// path, query, or body value by precedence — call-site override, then
// method-level default, then type-level default, then the framework
// default — and defines the pluggable serializer interfaces a generated
// client delegates actual encoding to.
//
// apigen never performs serialization itself: it only decides, for each
// value, which of a two-member enum applies. The concrete encoders live in
// apigen/serialize/jsoncodec, one reference implementation among possibly
// many a caller could swap in.
package serialize

// QueryMethod selects how a query value is turned into wire text.
type QueryMethod int

const (
	// QueryToString is the framework default: the value's canonical
	// textual form (fmt.Sprint-equivalent), no serializer involved.
	QueryToString QueryMethod = iota
	// QuerySerialized delegates to the configured QueryParamSerializer.
	QuerySerialized
)

func (m QueryMethod) String() string {
	if m == QuerySerialized {
		return "Serialized"
	}
	return "ToString"
}

// PathMethod selects how a path-placeholder value is turned into wire
// text. The framework default mirrors QueryToString.
type PathMethod int

const (
	PathToString PathMethod = iota
	PathSerialized
)

func (m PathMethod) String() string {
	if m == PathSerialized {
		return "Serialized"
	}
	return "ToString"
}

// BodyMethod selects how a body value is encoded. Unlike path/query there
// is no bare "ToString" option for a request body — the framework default
// is to delegate to the configured BodySerializer; the alternative is a
// raw pass-through for values that are already wire-ready (e.g. []byte,
// io.Reader, string).
type BodyMethod int

const (
	BodySerialize BodyMethod = iota
	BodyRaw
)

func (m BodyMethod) String() string {
	if m == BodyRaw {
		return "Raw"
	}
	return "Serialize"
}

// Defaults holds the framework-wide fallback methods. Resolver falls back
// to these only when no override exists at any precedence tier.
var Defaults = struct {
	Path  PathMethod
	Query QueryMethod
	Body  BodyMethod
}{
	Path:  PathToString,
	Query: QueryToString,
	Body:  BodySerialize,
}

// Resolver resolves effective serialization methods given the optional
// type-level and method-level defaults captured at construction time.
type Resolver struct {
	typePath   *PathMethod
	typeQuery  *QueryMethod
	typeBody   *BodyMethod
	methodPath *PathMethod
	methodQuery *QueryMethod
	methodBody *BodyMethod
}

// TypeDefaults and MethodDefaults describe the optional per-level
// overrides a SerializationMethodsAttribute may carry; nil fields mean
// "not set at this level".
type TypeDefaults struct {
	Path  *PathMethod
	Query *QueryMethod
	Body  *BodyMethod
}

type MethodDefaults struct {
	Path  *PathMethod
	Query *QueryMethod
	Body  *BodyMethod
}

// NewResolver builds a Resolver from the optional type-level and
// method-level defaults. Either argument may be the zero value.
func NewResolver(typeDefaults TypeDefaults, methodDefaults MethodDefaults) *Resolver {
	return &Resolver{
		typePath:    typeDefaults.Path,
		typeQuery:   typeDefaults.Query,
		typeBody:    typeDefaults.Body,
		methodPath:  methodDefaults.Path,
		methodQuery: methodDefaults.Query,
		methodBody:  methodDefaults.Body,
	}
}

// ResolvePath resolves the effective path serialization method: override →
// method → type → framework default.
func (r *Resolver) ResolvePath(override *PathMethod) PathMethod {
	if override != nil {
		return *override
	}
	if r.methodPath != nil {
		return *r.methodPath
	}
	if r.typePath != nil {
		return *r.typePath
	}
	return Defaults.Path
}

// ResolveQuery resolves the effective query serialization method: override
// → method → type → framework default.
func (r *Resolver) ResolveQuery(override *QueryMethod) QueryMethod {
	if override != nil {
		return *override
	}
	if r.methodQuery != nil {
		return *r.methodQuery
	}
	if r.typeQuery != nil {
		return *r.typeQuery
	}
	return Defaults.Query
}

// ResolveBody resolves the effective body serialization method: override →
// method → type → framework default.
func (r *Resolver) ResolveBody(override *BodyMethod) BodyMethod {
	if override != nil {
		return *override
	}
	if r.methodBody != nil {
		return *r.methodBody
	}
	if r.typeBody != nil {
		return *r.typeBody
	}
	return Defaults.Body
}

// BodySerializer encodes an arbitrary Go value into wire bytes plus the
// content type describing them. An external collaborator — apigen never
// implements one inline in the core pipeline, only declares the contract.
type BodySerializer interface {
	SerializeBody(value any) (data []byte, contentType string, err error)
}

// QueryParamSerializer renders a single query value's delegated
// ("Serialized") form.
type QueryParamSerializer interface {
	SerializeQueryParam(value any) (string, error)
}

// PathParamSerializer renders a single path-placeholder value's delegated
// ("Serialized") form.
type PathParamSerializer interface {
	SerializePathParam(value any) (string, error)
}
