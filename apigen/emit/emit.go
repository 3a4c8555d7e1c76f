// Package emit defines the pluggable emitter contract of §4.6: the
// ordered sequence of operations that describe, at generation time, how
// a method's request will be assembled at call time. apigen/generate
// drives an Emitter; it never inspects what a backend does with the
// operations it receives.
//
// Two reference backends are expected to exist against this same
// contract (§9): apigen/emit/runtime materializes a closure-dispatched
// Plan, apigen/emit/sourcetext materializes compilable Go source. Both
// build on the shared Operation tagged union defined here so that
// "identical ordering" (§4.6's closing requirement) is a property of one
// shared data structure rather than two backends independently trying
// to agree.
package emit

import (
	"github.com/deploymenttheory/go-apigen/apigen/model"
	"github.com/deploymenttheory/go-apigen/apigen/serialize"
)

// OpKind is the closed set of emission-operation kinds, one per
// operation named in §4.5/§4.6.
type OpKind int

const (
	OpSetAllowAnyStatusCode OpKind = iota
	OpSetBasePath
	OpAddHeaderProperty
	OpAddPathProperty
	OpAddQueryProperty
	OpAddHTTPRequestMessagePropertyProperty
	OpAddMethodHeader
	OpSetCancellationToken
	OpAddHeaderParameter
	OpAddPathParameter
	OpAddQueryParameter
	OpAddHTTPRequestMessagePropertyParameter
	OpAddRawQueryStringParameter
	OpAddQueryMapParameter
	OpSetBodyParameter
)

func (k OpKind) String() string {
	switch k {
	case OpSetAllowAnyStatusCode:
		return "SetAllowAnyStatusCode"
	case OpSetBasePath:
		return "SetBasePath"
	case OpAddHeaderProperty:
		return "AddHeaderProperty"
	case OpAddPathProperty:
		return "AddPathProperty"
	case OpAddQueryProperty:
		return "AddQueryProperty"
	case OpAddHTTPRequestMessagePropertyProperty:
		return "AddHttpRequestMessagePropertyProperty"
	case OpAddMethodHeader:
		return "AddMethodHeader"
	case OpSetCancellationToken:
		return "SetCancellationToken"
	case OpAddHeaderParameter:
		return "AddHeaderParameter"
	case OpAddPathParameter:
		return "AddPathParameter"
	case OpAddQueryParameter:
		return "AddQueryParameter"
	case OpAddHTTPRequestMessagePropertyParameter:
		return "AddHttpRequestMessagePropertyParameter"
	case OpAddRawQueryStringParameter:
		return "AddRawQueryStringParameter"
	case OpAddQueryMapParameter:
		return "AddQueryMapParameter"
	case OpSetBodyParameter:
		return "SetBodyParameter"
	default:
		return "Unknown"
	}
}

// Operation is one recorded emission operation. Not every field applies
// to every Kind; each backend's executor/renderer reads only the fields
// relevant to its own Kind, exactly as a tagged union's payload would be
// read after a switch on its tag (§9's "Dynamic dispatch over
// annotations" redesign note applies equally well here).
type Operation struct {
	Kind OpKind

	// Name is the property or parameter name this operation was emitted
	// for, when applicable.
	Name string

	// HeaderValue carries a literal header value (Op{Add}HeaderProperty
	// for a property whose header has a Default, OpAddMethodHeader).
	HeaderValue string

	// Key carries the path/query/message-property key.
	Key string

	PathSerialization  serialize.PathMethod
	QuerySerialization serialize.QueryMethod
	BodySerialization  serialize.BodyMethod

	// BasePathTemplate carries the type's base-path template for
	// OpSetBasePath.
	BasePathTemplate string
}

// EmittedProperty is the opaque handle EmitProperty/EmitRequesterProperty
// return (§4.4 step 4) and that method emission (§4.5 step 4) consumes
// without re-deriving a property's shape from the TypeModel a second
// time.
type EmittedProperty struct {
	Name string
	Role model.PropertyRole
	Key  string
}

// Artifact is whatever a TypeEmitter.Generate() finalizes into — a
// runtime Plan for apigen/emit/runtime, Go source text for
// apigen/emit/sourcetext. apigen/generate treats it as opaque and
// returns it straight through to its own caller.
type Artifact any

// ReturnShape is the closed set of recognized method return shapes
// (§4.5 step 7). Go has no Future<T> to pattern-match on, so
// ClassifyReturnType recognizes the shape from the well-known TypeRef
// names a discovery collaborator is expected to produce for a
// synchronous, context.Context-based call returning (T, error).
type ReturnShape int

const (
	// ReturnInvalid is not itself a recognized shape — it is what
	// ClassifyReturnType's second result being false means.
	ReturnInvalid ReturnShape = iota
	ReturnUnit
	ReturnResponseMessage
	ReturnRawBytes
	ReturnRawString
	ReturnRawStream
	ReturnT
)

// well-known return-type names a discovery collaborator produces for
// the non-generic recognized shapes. Any other non-empty name is
// ReturnT (deserialized into the named type).
const (
	returnTypeNameUnit            = ""
	returnTypeNameResponseMessage = "request.ResponseMessage"
	returnTypeNameRawBytes        = "[]byte"
	returnTypeNameRawString       = "string"
	returnTypeNameRawStream       = "io.ReadCloser"
)

// ClassifyReturnType recognizes returnType's shape. It returns
// (_, false) only when returnType describes something that cannot be a
// method's return type at all: an empty Name marked Nullable. Every
// other TypeRef maps to one of the recognized shapes, with an empty,
// non-nullable Name meaning ReturnUnit. Kept as a function rather than
// a fixed table lookup so a future recognized shape is a one-line
// addition, not a contract change.
func ClassifyReturnType(returnType model.TypeRef) (ReturnShape, bool) {
	switch returnType.Name {
	case returnTypeNameUnit:
		if returnType.Nullable {
			// a "nullable nothing" is not a shape any backend can
			// dispatch against.
			return ReturnInvalid, false
		}
		return ReturnUnit, true
	case returnTypeNameResponseMessage:
		return ReturnResponseMessage, true
	case returnTypeNameRawBytes:
		return ReturnRawBytes, true
	case returnTypeNameRawString:
		return ReturnRawString, true
	case returnTypeNameRawStream:
		return ReturnRawStream, true
	default:
		return ReturnT, true
	}
}

// Emitter is polymorphic over the single capability §4.6 names: turning
// a TypeModel into a TypeEmitter.
type Emitter interface {
	EmitType(t *model.TypeModel) TypeEmitter
}

// TypeEmitter emits the per-type operations and method emitters of
// §4.4.
type TypeEmitter interface {
	// SetAllowAnyStatusCode records the type-level override, when the
	// resolved value is true.
	SetAllowAnyStatusCode()

	// EmitRequesterProperty records the type's Requester property.
	EmitRequesterProperty(p model.PropertyModel) EmittedProperty

	// EmitProperty records a non-Requester property and returns the
	// handle later method emission reuses.
	EmitProperty(p model.PropertyModel) EmittedProperty

	// EmitMethod begins emission for one request-producing method.
	EmitMethod(m model.MethodModel) MethodEmitter

	// EmitDisposeMethod records the interface's dispose delegation.
	EmitDisposeMethod(m model.MethodModel)

	// Generate finalizes every operation recorded so far into an
	// Artifact.
	Generate() (Artifact, error)
}

// MethodEmitter emits every operation of §4.5 for one method.
type MethodEmitter interface {
	// EmitRequestInfo records the method's verb and path template
	// (§4.5 step 1).
	EmitRequestInfo(verb, pathTemplate string)

	// SetAllowAnyStatusCode records the method's resolved override
	// (§4.5 step 2).
	SetAllowAnyStatusCode()

	// SetBasePath records the type's base-path template (§4.5 step 3).
	SetBasePath(template string)

	AddHeaderProperty(p EmittedProperty, value string)
	AddPathProperty(p EmittedProperty, serialization serialize.PathMethod)
	AddQueryProperty(p EmittedProperty, serialization serialize.QueryMethod)
	AddHTTPRequestMessagePropertyProperty(p EmittedProperty)

	// AddMethodHeader records one method-level header (§4.5 step 5).
	AddMethodHeader(name, value string)

	SetCancellationToken(paramName string)
	AddHeaderParameter(paramName string)
	AddPathParameter(paramName, key string, serialization serialize.PathMethod)
	AddQueryParameter(paramName, key string, serialization serialize.QueryMethod)
	AddHTTPRequestMessagePropertyParameter(paramName, key string)
	AddRawQueryStringParameter(paramName string)

	// TryEmitAddQueryMapParameter records a query-map parameter's entries
	// being expanded at call time. It returns false if paramType is not
	// a key-value mapping, in which case the caller is responsible for
	// reporting QueryMapParameterIsNotADictionary — TryEmitAddQueryMapParameter
	// itself never touches a Reporter.
	TryEmitAddQueryMapParameter(paramName string, paramType model.TypeRef, serialization serialize.QueryMethod, isDictionary func(model.TypeRef) bool) bool

	SetBodyParameter(paramName string, serialization serialize.BodyMethod)

	// TryEmitRequestMethodInvocation finalizes the method's dispatch
	// (§4.5 step 7). It returns false when returnType is not one of the
	// recognized request shapes; the caller reports
	// MethodMustHaveValidReturnType in that case.
	TryEmitRequestMethodInvocation(returnType model.TypeRef) bool
}
