// Package generate orchestrates the pipeline of §4.4: validate a
// TypeModel, drive an Emitter through type/property/method emission in
// declaration order, and finalize an Artifact. Generator is the single
// entry point a caller (a discovery collaborator, or apigen's own
// cmd/apigen driver) needs.
package generate

import (
	"context"
	"fmt"

	"github.com/deploymenttheory/go-apigen/apigen/diagnostics"
	"github.com/deploymenttheory/go-apigen/apigen/emit"
	"github.com/deploymenttheory/go-apigen/apigen/model"
	"github.com/deploymenttheory/go-apigen/apigen/serialize"
	"github.com/deploymenttheory/go-apigen/apigen/validate"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("github.com/deploymenttheory/go-apigen/apigen/generate")

// StructuralError is raised for a TypeModel malformed in a way the
// Validator's diagnostic codes don't cover — a §7 tier-2 "structural
// impossibility" distinct from a validation diagnostic, because it
// means the TypeModel builder itself produced something the data model
// cannot represent (e.g. a nil TypeModel handed to Generate).
// pkg/errors gives it a stack trace, matching the
// linkerd2/crossplane-contrib-provider-http convention for
// should-never-happen errors.
type StructuralError struct {
	cause error
}

func (e *StructuralError) Error() string { return "structural impossibility: " + e.cause.Error() }
func (e *StructuralError) Unwrap() error { return e.cause }

func structuralf(format string, args ...any) error {
	return &StructuralError{cause: errors.Errorf(format, args...)}
}

// Result is what Generate returns: the finalized Artifact (returned even
// when diagnostics were raised; see HasErrors) alongside every diagnostic
// captured while processing t.
type Result struct {
	Artifact    emit.Artifact
	Diagnostics []diagnostics.Diagnostic
}

// HasErrors reports whether generation raised any diagnostic. Per §7,
// the caller treats any diagnostic as fatal for the interface being
// generated — Generate still returns whatever Artifact the backend
// produced, since emission never aborts early, but callers should not
// treat a non-nil Artifact as usable when HasErrors is true.
func (r Result) HasErrors() bool { return len(r.Diagnostics) > 0 }

// Generator drives an Emitter over a TypeModel.
type Generator struct {
	Emitter emit.Emitter
	Logger  *zap.Logger

	// IsDictionary recognizes whether a TypeRef is a key-value mapping,
	// for QueryMap parameters (§4.5 step 6). New does not set a default;
	// a nil IsDictionary makes validate.Method and the Emitter backends
	// treat every TypeRef as a dictionary, silently disabling
	// QueryMapParameterIsNotADictionary. Callers that care about that
	// diagnostic must set it themselves, e.g. to
	// jsoncodec.IsDictionary.
	IsDictionary func(model.TypeRef) bool
}

// New builds a Generator targeting backend.
func New(backend emit.Emitter, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{Emitter: backend, Logger: logger}
}

// Generate runs the full pipeline over t (§4.4).
func (g *Generator) Generate(ctx context.Context, t *model.TypeModel) (Result, error) {
	if t == nil {
		return Result{}, structuralf("nil TypeModel")
	}

	ctx, span := tracer.Start(ctx, "generate.Generate", trace.WithAttributes(
		attribute.String("apigen.type_name", t.Name),
	))
	defer span.End()

	r := diagnostics.NewReporter(g.Logger)

	// Step 1: type-level validation.
	validate.Type(t, r)

	// Step 2: begin type emission.
	typeEmitter := g.Emitter.EmitType(t)
	if t.AllowAnyStatusCode != nil {
		typeEmitter.SetAllowAnyStatusCode()
	}

	// Step 3: validate properties (including base-path placeholder
	// match).
	validate.Properties(t, r)

	typePathKeys := validate.PathPropertyKeys(t)

	typeDefaults := serialize.TypeDefaults{}
	if t.Serialization != nil {
		typeDefaults = serialize.TypeDefaults{Path: t.Serialization.Path, Query: t.Serialization.Query, Body: t.Serialization.Body}
	}

	// Step 4: emit each property, in declaration order.
	propsByName := make(map[string]model.PropertyModel, len(t.Properties))
	var emittedOrder []emit.EmittedProperty
	for _, p := range t.Properties {
		propsByName[p.Name] = p
		if p.IsRequester {
			typeEmitter.EmitRequesterProperty(p)
			continue
		}
		emittedOrder = append(emittedOrder, typeEmitter.EmitProperty(p))
	}

	isDictionary := g.IsDictionary

	// Step 5: emit each method.
	for _, m := range t.Methods {
		m := m
		if m.IsDisposeMethod {
			typeEmitter.EmitDisposeMethod(m)
			continue
		}

		validate.Method(t, &m, typePathKeys, isDictionary, r)

		if m.Request == nil {
			// already reported MethodMustHaveRequestAttribute; nothing
			// to emit for this method.
			continue
		}

		g.emitMethod(t, &m, typeEmitter, emittedOrder, propsByName, typeDefaults, r, isDictionary)
	}

	// Step 6: finalize.
	artifact, err := typeEmitter.Generate()
	if err != nil {
		return Result{Diagnostics: r.Diagnostics()}, errors.Wrap(err, "finalize emission")
	}

	g.Logger.Info("generation complete",
		zap.String("type", t.Name),
		zap.Int("diagnostics", len(r.Diagnostics())),
	)

	return Result{Artifact: artifact, Diagnostics: r.Diagnostics()}, nil
}

func (g *Generator) emitMethod(
	t *model.TypeModel,
	m *model.MethodModel,
	typeEmitter emit.TypeEmitter,
	emittedProperties []emit.EmittedProperty,
	propsByName map[string]model.PropertyModel,
	typeDefaults serialize.TypeDefaults,
	r *diagnostics.Reporter,
	isDictionary func(model.TypeRef) bool,
) {
	methodDefaults := serialize.MethodDefaults{}
	if m.Serialization != nil {
		methodDefaults = serialize.MethodDefaults{Path: m.Serialization.Path, Query: m.Serialization.Query, Body: m.Serialization.Body}
	}
	resolver := serialize.NewResolver(typeDefaults, methodDefaults)

	me := typeEmitter.EmitMethod(*m)

	// 1. request-info construction.
	me.EmitRequestInfo(m.Request.Verb, m.Request.PathTemplate)

	// 2. resolved AllowAnyStatusCode.
	allowAny := m.AllowAnyStatusCode != nil || t.AllowAnyStatusCode != nil
	if allowAny {
		me.SetAllowAnyStatusCode()
	}

	// 3. base path.
	if t.BasePath != nil {
		me.SetBasePath(t.BasePath.Template)
	}

	// type-level headers, ahead of property and method contributions.
	for _, h := range t.Headers {
		value := ""
		if h.Value != nil {
			value = *h.Value
		}
		me.AddMethodHeader(h.Name, value)
	}

	// 4. previously emitted properties, in declaration order.
	for _, ep := range emittedProperties {
		switch ep.Role {
		case model.PropertyRoleHeader:
			value := ""
			if prop, ok := propsByName[ep.Name]; ok && prop.Header != nil && prop.Header.Default != nil {
				value = *prop.Header.Default
			}
			me.AddHeaderProperty(ep, value)
		case model.PropertyRolePath:
			me.AddPathProperty(ep, resolver.ResolvePath(nil))
		case model.PropertyRoleQuery:
			var override *serialize.QueryMethod
			if prop, ok := propsByName[ep.Name]; ok && prop.Query != nil {
				override = prop.Query.Serialization
			}
			me.AddQueryProperty(ep, resolver.ResolveQuery(override))
		case model.PropertyRoleHTTPRequestMessageProperty:
			me.AddHTTPRequestMessagePropertyProperty(ep)
		}
	}

	// 5. method-level headers.
	for _, h := range m.Headers {
		value := ""
		if h.Value != nil {
			value = *h.Value
		}
		me.AddMethodHeader(h.Name, value)
	}

	// 6. parameters, in declaration order.
	for _, p := range m.Parameters {
		switch {
		case p.IsCancellationToken:
			me.SetCancellationToken(p.Name)
		case p.Header != nil:
			me.AddHeaderParameter(p.Name)
		case p.Path != nil:
			me.AddPathParameter(p.Name, p.Path.Key, resolver.ResolvePath(p.Path.Serialization))
		case p.Query != nil:
			key := p.Query.Key
			if key == "" {
				key = p.Name
			}
			me.AddQueryParameter(p.Name, key, resolver.ResolveQuery(p.Query.Serialization))
		case p.HTTPMessage != nil:
			me.AddHTTPRequestMessagePropertyParameter(p.Name, p.HTTPMessage.Key)
		case p.RawQueryString != nil:
			me.AddRawQueryStringParameter(p.Name)
		case p.QueryMap != nil:
			me.TryEmitAddQueryMapParameter(p.Name, p.Type, resolver.ResolveQuery(p.QueryMap.Serialization), isDictionary)
		case p.Body != nil:
			me.SetBodyParameter(p.Name, resolver.ResolveBody(p.Body.Serialization))
		default:
			me.AddQueryParameter(p.Name, p.Name, serialize.Defaults.Query)
		}
	}

	// 7. finalize dispatch.
	if !me.TryEmitRequestMethodInvocation(m.ReturnType) {
		r.MethodMustHaveValidReturnType(fmt.Sprintf("%s.%s", t.Name, m.Name))
	}
}
