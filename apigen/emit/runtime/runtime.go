// Package runtime is the reference "runtime plan" Emitter backend
// (§4.6): each emission operation appends a tagged record to an ordered
// list, and Generate wraps that list in a closure-dispatched Plan that,
// given a Requester and a method's call-time argument values, walks the
// list to assemble a request.RequestDescription and dispatch it.
//
// Grounded on workbrew/services/brewtaps/crud.go's shape: one function
// per method that builds headers/queryParams maps and calls through an
// HTTPClient. Here the "function body" is data (the recorded
// operations) rather than hand-written Go, and the HTTPClient call is
// replaced by request.Requester.
package runtime

import (
	"context"
	"fmt"
	"io"

	"github.com/deploymenttheory/go-apigen/apigen/emit"
	"github.com/deploymenttheory/go-apigen/apigen/model"
	"github.com/deploymenttheory/go-apigen/apigen/request"
	"github.com/deploymenttheory/go-apigen/apigen/serialize"
)

// Backend is an emit.Emitter that builds a Plan.
type Backend struct{}

// New returns a runtime-plan Backend.
func New() *Backend { return &Backend{} }

// EmitType begins plan construction for t.
func (b *Backend) EmitType(t *model.TypeModel) emit.TypeEmitter {
	return &typeEmitter{
		typeModel: t,
		plan:      &Plan{TypeName: t.Name, Methods: make(map[string]*MethodPlan)},
	}
}

type typeEmitter struct {
	typeModel          *model.TypeModel
	plan               *Plan
	allowAnyStatusCode bool
}

func (e *typeEmitter) SetAllowAnyStatusCode() {
	e.allowAnyStatusCode = true
}

func (e *typeEmitter) EmitRequesterProperty(p model.PropertyModel) emit.EmittedProperty {
	ep := emit.EmittedProperty{Name: p.Name, Role: model.PropertyRoleNone}
	e.plan.RequesterPropertyName = p.Name
	return ep
}

func (e *typeEmitter) EmitProperty(p model.PropertyModel) emit.EmittedProperty {
	ep := emit.EmittedProperty{Name: p.Name, Role: p.Role}
	if p.Path != nil {
		ep.Key = p.Path.Key
	} else if p.Query != nil {
		ep.Key = p.Query.Key
	} else if p.HTTPMessage != nil {
		ep.Key = p.HTTPMessage.Key
	} else if p.Header != nil {
		ep.Key = p.Header.Name
	}
	e.plan.Properties = append(e.plan.Properties, ep)
	return ep
}

func (e *typeEmitter) EmitMethod(m model.MethodModel) emit.MethodEmitter {
	mp := &MethodPlan{Name: m.Name, TypeAllowAnyStatusCode: e.allowAnyStatusCode}
	e.plan.Methods[m.Name] = mp
	return &methodEmitter{plan: mp}
}

func (e *typeEmitter) EmitDisposeMethod(m model.MethodModel) {
	e.plan.DisposeMethodName = m.Name
}

func (e *typeEmitter) Generate() (emit.Artifact, error) {
	return e.plan, nil
}

// methodEmitter records operations for one method's MethodPlan.
type methodEmitter struct {
	plan *MethodPlan
}

func (e *methodEmitter) EmitRequestInfo(verb, pathTemplate string) {
	e.plan.Verb = verb
	e.plan.PathTemplate = pathTemplate
}

func (e *methodEmitter) SetAllowAnyStatusCode() {
	e.plan.MethodAllowAnyStatusCode = true
}

func (e *methodEmitter) SetBasePath(template string) {
	e.plan.BasePathTemplate = template
}

func (e *methodEmitter) AddHeaderProperty(p emit.EmittedProperty, value string) {
	e.plan.Operations = append(e.plan.Operations, emit.Operation{Kind: emit.OpAddHeaderProperty, Name: p.Name, Key: p.Key, HeaderValue: value})
}

func (e *methodEmitter) AddPathProperty(p emit.EmittedProperty, serialization serialize.PathMethod) {
	e.plan.Operations = append(e.plan.Operations, emit.Operation{Kind: emit.OpAddPathProperty, Name: p.Name, Key: p.Key, PathSerialization: serialization})
}

func (e *methodEmitter) AddQueryProperty(p emit.EmittedProperty, serialization serialize.QueryMethod) {
	e.plan.Operations = append(e.plan.Operations, emit.Operation{Kind: emit.OpAddQueryProperty, Name: p.Name, Key: p.Key, QuerySerialization: serialization})
}

func (e *methodEmitter) AddHTTPRequestMessagePropertyProperty(p emit.EmittedProperty) {
	e.plan.Operations = append(e.plan.Operations, emit.Operation{Kind: emit.OpAddHTTPRequestMessagePropertyProperty, Name: p.Name, Key: p.Key})
}

func (e *methodEmitter) AddMethodHeader(name, value string) {
	e.plan.Operations = append(e.plan.Operations, emit.Operation{Kind: emit.OpAddMethodHeader, Name: name, HeaderValue: value})
}

func (e *methodEmitter) SetCancellationToken(paramName string) {
	e.plan.Operations = append(e.plan.Operations, emit.Operation{Kind: emit.OpSetCancellationToken, Name: paramName})
}

func (e *methodEmitter) AddHeaderParameter(paramName string) {
	e.plan.Operations = append(e.plan.Operations, emit.Operation{Kind: emit.OpAddHeaderParameter, Name: paramName})
}

func (e *methodEmitter) AddPathParameter(paramName, key string, serialization serialize.PathMethod) {
	e.plan.Operations = append(e.plan.Operations, emit.Operation{Kind: emit.OpAddPathParameter, Name: paramName, Key: key, PathSerialization: serialization})
}

func (e *methodEmitter) AddQueryParameter(paramName, key string, serialization serialize.QueryMethod) {
	e.plan.Operations = append(e.plan.Operations, emit.Operation{Kind: emit.OpAddQueryParameter, Name: paramName, Key: key, QuerySerialization: serialization})
}

func (e *methodEmitter) AddHTTPRequestMessagePropertyParameter(paramName, key string) {
	e.plan.Operations = append(e.plan.Operations, emit.Operation{Kind: emit.OpAddHTTPRequestMessagePropertyParameter, Name: paramName, Key: key})
}

func (e *methodEmitter) AddRawQueryStringParameter(paramName string) {
	e.plan.Operations = append(e.plan.Operations, emit.Operation{Kind: emit.OpAddRawQueryStringParameter, Name: paramName})
}

func (e *methodEmitter) TryEmitAddQueryMapParameter(paramName string, paramType model.TypeRef, serialization serialize.QueryMethod, isDictionary func(model.TypeRef) bool) bool {
	if isDictionary != nil && !isDictionary(paramType) {
		return false
	}
	e.plan.Operations = append(e.plan.Operations, emit.Operation{Kind: emit.OpAddQueryMapParameter, Name: paramName, QuerySerialization: serialization})
	return true
}

func (e *methodEmitter) SetBodyParameter(paramName string, serialization serialize.BodyMethod) {
	e.plan.Operations = append(e.plan.Operations, emit.Operation{Kind: emit.OpSetBodyParameter, Name: paramName, BodySerialization: serialization})
}

func (e *methodEmitter) TryEmitRequestMethodInvocation(returnType model.TypeRef) bool {
	shape, ok := emit.ClassifyReturnType(returnType)
	if !ok {
		return false
	}
	e.plan.ReturnShape = shape
	return true
}

// Plan is the runtime-executable artifact produced by Backend.Generate.
// It is immutable once returned (§3 "Lifecycles") and may be shared
// across goroutines; Invoke reads it without mutating it.
type Plan struct {
	TypeName              string
	RequesterPropertyName string
	DisposeMethodName     string
	Properties            []emit.EmittedProperty
	Methods               map[string]*MethodPlan
}

// MethodPlan is one method's recorded operations plus its resolved
// dispatch shape.
type MethodPlan struct {
	Name                     string
	Verb                     string
	PathTemplate             string
	BasePathTemplate         string
	TypeAllowAnyStatusCode   bool
	MethodAllowAnyStatusCode bool
	ReturnShape              emit.ReturnShape
	Operations               []emit.Operation
}

// Values supplies the live property and parameter values a Build call
// needs: property values keyed by property name (as recorded in
// Plan.Properties), parameter values keyed by parameter name.
type Values struct {
	Properties map[string]any
	Parameters map[string]any
}

// Build assembles a request.RequestDescription by walking mp's recorded
// operations in order, substituting each operation's live value from
// values. This is the "closure-like dispatcher" §4.6 describes — here a
// plain method rather than an actual closure, since Go's static typing
// makes a data-driven walk clearer than a captured closure chain.
func (mp *MethodPlan) Build(values Values) (*request.RequestDescription, error) {
	desc := request.NewRequestDescription(mp.Verb, mp.PathTemplate, mp.Name)
	desc.BasePathTemplate = mp.BasePathTemplate
	desc.AllowAnyStatusCode = mp.MethodAllowAnyStatusCode || mp.TypeAllowAnyStatusCode

	for _, op := range mp.Operations {
		switch op.Kind {
		case emit.OpAddHeaderProperty:
			v, ok := values.Properties[op.Name]
			if !ok {
				continue
			}
			desc.Headers = append(desc.Headers, request.HeaderEntry{Name: op.Key, Value: fmt.Sprint(v)})
		case emit.OpAddPathProperty:
			v, ok := values.Properties[op.Name]
			if !ok {
				continue
			}
			desc.PathSubstitutions = append(desc.PathSubstitutions, request.PathSubstitution{Key: op.Key, Value: v, Serialization: op.PathSerialization})
		case emit.OpAddQueryProperty:
			v, ok := values.Properties[op.Name]
			if !ok {
				continue
			}
			desc.Query = append(desc.Query, request.QueryEntry{Key: op.Key, Value: v, Serialization: op.QuerySerialization})
		case emit.OpAddHTTPRequestMessagePropertyProperty:
			v, ok := values.Properties[op.Name]
			if !ok {
				continue
			}
			desc.MessageProperties[op.Key] = v
		case emit.OpAddMethodHeader:
			desc.Headers = append(desc.Headers, request.HeaderEntry{Name: op.Name, Value: op.HeaderValue})
		case emit.OpSetCancellationToken:
			if ctx, ok := values.Parameters[op.Name].(context.Context); ok {
				desc.CancellationToken = ctx
			}
		case emit.OpAddHeaderParameter:
			desc.Headers = append(desc.Headers, request.HeaderEntry{Name: op.Name, Value: fmt.Sprint(values.Parameters[op.Name])})
		case emit.OpAddPathParameter:
			desc.PathSubstitutions = append(desc.PathSubstitutions, request.PathSubstitution{Key: op.Key, Value: values.Parameters[op.Name], Serialization: op.PathSerialization})
		case emit.OpAddQueryParameter:
			desc.Query = append(desc.Query, request.QueryEntry{Key: op.Key, Value: values.Parameters[op.Name], Serialization: op.QuerySerialization})
		case emit.OpAddHTTPRequestMessagePropertyParameter:
			desc.MessageProperties[op.Key] = values.Parameters[op.Name]
		case emit.OpAddRawQueryStringParameter:
			if s, ok := values.Parameters[op.Name].(string); ok {
				desc.Query = append(desc.Query, request.QueryEntry{Key: "", Value: s, Serialization: serialize.QueryToString})
			}
		case emit.OpAddQueryMapParameter:
			entries, ok := values.Parameters[op.Name].(map[string]any)
			if !ok {
				continue
			}
			for k, v := range entries {
				desc.Query = append(desc.Query, request.QueryEntry{Key: k, Value: v, Serialization: op.QuerySerialization})
			}
		case emit.OpSetBodyParameter:
			desc.Body = &request.Body{Value: values.Parameters[op.Name], Serialization: op.BodySerialization}
		}
	}

	return desc, nil
}

// Invoke builds mp's request description from values and dispatches it
// against r according to mp.ReturnShape. deserialize is used only when
// ReturnShape is emit.ReturnT — the body is handed to it for decoding
// into result (see request.RequestInto); it is ignored for every other
// shape.
func (mp *MethodPlan) Invoke(ctx context.Context, r request.Requester, values Values, deserialize func([]byte, any) error, result any) (request.ResponseMessage, []byte, string, io.ReadCloser, error) {
	desc, err := mp.Build(values)
	if err != nil {
		return request.ResponseMessage{}, nil, "", nil, err
	}

	switch mp.ReturnShape {
	case emit.ReturnUnit:
		err := r.RequestVoid(ctx, desc)
		return request.ResponseMessage{}, nil, "", nil, err
	case emit.ReturnResponseMessage:
		msg, err := r.RequestWithResponseMessage(ctx, desc)
		return msg, nil, "", nil, err
	case emit.ReturnRawBytes:
		b, err := r.RequestRawBytes(ctx, desc)
		return request.ResponseMessage{}, b, "", nil, err
	case emit.ReturnRawString:
		s, err := r.RequestRawString(ctx, desc)
		return request.ResponseMessage{}, nil, s, nil, err
	case emit.ReturnRawStream:
		stream, err := r.RequestRawStream(ctx, desc)
		return request.ResponseMessage{}, nil, "", stream, err
	default: // emit.ReturnT
		msg, err := r.RequestWithResponseMessage(ctx, desc)
		if err != nil {
			return msg, nil, "", nil, err
		}
		if deserialize != nil && result != nil {
			if err := deserialize(msg.Body, result); err != nil {
				return msg, nil, "", nil, err
			}
		}
		return msg, nil, "", nil, nil
	}
}
