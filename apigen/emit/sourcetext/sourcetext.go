// Package sourcetext is the reference "source-text" Emitter backend
// (§4.6): each emission operation appends a fragment to a text builder,
// and Generate renders the accumulated fragments into compilable Go
// source via text/template, gofmt'd with go/format.Source.
//
// The rendered shape is the structural twin of
// workbrew/services/brewtaps/crud.go: one struct embedding a
// request.Requester, one method per request-producing MethodModel, each
// building a *request.RequestDescription and dispatching it — except
// here the struct and its methods are generated text, not hand-written.
package sourcetext

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"text/template"

	"github.com/deploymenttheory/go-apigen/apigen/emit"
	"github.com/deploymenttheory/go-apigen/apigen/model"
	"github.com/deploymenttheory/go-apigen/apigen/serialize"
)

// Backend is an emit.Emitter that renders Go source text.
type Backend struct {
	// Package is the package clause written at the top of the rendered
	// file. Defaults to "generated" when empty.
	Package string
}

// New returns a source-text Backend targeting the given package name.
func New(pkg string) *Backend {
	if pkg == "" {
		pkg = "generated"
	}
	return &Backend{Package: pkg}
}

// EmitType begins source rendering for t.
func (b *Backend) EmitType(t *model.TypeModel) emit.TypeEmitter {
	return &typeEmitter{pkg: b.Package, typeModel: t}
}

type fieldSpec struct {
	FieldName  string
	PropName   string
	Key        string
	GoType     string
	IsRequester bool
}

type methodSpec struct {
	Name               string
	Verb               string
	PathTemplate       string
	BasePathTemplate   string
	AllowAnyStatusCode bool
	ReturnShape        emit.ReturnShape
	ReturnTypeName     string
	Statements         []string
	Parameters         []string
	IsDispose          bool

	// ReturnDecl and DispatchStmt are filled in by Generate, once every
	// method's ReturnShape is known, from the type's requester field
	// name.
	ReturnDecl  string
	DispatchStmt string
}

type typeEmitter struct {
	pkg                string
	typeModel          *model.TypeModel
	allowAnyStatusCode bool
	fields             []fieldSpec
	methods            []*methodSpec
	requesterField     string
}

func (e *typeEmitter) SetAllowAnyStatusCode() {
	e.allowAnyStatusCode = true
}

func (e *typeEmitter) EmitRequesterProperty(p model.PropertyModel) emit.EmittedProperty {
	e.requesterField = fieldName(p.Name)
	e.fields = append(e.fields, fieldSpec{FieldName: e.requesterField, PropName: p.Name, GoType: "request.Requester", IsRequester: true})
	return emit.EmittedProperty{Name: p.Name, Role: model.PropertyRoleNone}
}

func (e *typeEmitter) EmitProperty(p model.PropertyModel) emit.EmittedProperty {
	ep := emit.EmittedProperty{Name: p.Name, Role: p.Role}
	key := ""
	switch {
	case p.Path != nil:
		key = p.Path.Key
	case p.Query != nil:
		key = p.Query.Key
	case p.HTTPMessage != nil:
		key = p.HTTPMessage.Key
	case p.Header != nil:
		key = p.Header.Name
	}
	ep.Key = key
	e.fields = append(e.fields, fieldSpec{FieldName: fieldName(p.Name), PropName: p.Name, Key: key, GoType: goType(p.Type)})
	return ep
}

func (e *typeEmitter) EmitMethod(m model.MethodModel) emit.MethodEmitter {
	ms := &methodSpec{Name: m.Name, ReturnTypeName: goType(m.ReturnType)}
	for _, p := range m.Parameters {
		if p.IsCancellationToken {
			// folded into the synthesized leading ctx context.Context
			// parameter every generated method carries.
			continue
		}
		ms.Parameters = append(ms.Parameters, fmt.Sprintf("%s %s", p.Name, goType(p.Type)))
	}
	e.methods = append(e.methods, ms)
	return &methodEmitter{typeEmitter: e, spec: ms}
}

func (e *typeEmitter) EmitDisposeMethod(m model.MethodModel) {
	e.methods = append(e.methods, &methodSpec{Name: m.Name, IsDispose: true})
}

func (e *typeEmitter) Generate() (emit.Artifact, error) {
	structName := e.typeModel.Name + "Client"
	requesterField := e.requesterField
	if requesterField == "" {
		requesterField = "requester"
		e.fields = append(e.fields, fieldSpec{FieldName: requesterField, GoType: "request.Requester", IsRequester: true})
	}

	for _, m := range e.methods {
		if m.IsDispose {
			continue
		}
		m.ReturnDecl, m.DispatchStmt = dispatchFor(m, requesterField)
	}

	var buf bytes.Buffer
	if err := sourceTemplate.Execute(&buf, struct {
		Package        string
		StructName     string
		RequesterField string
		Fields         []fieldSpec
		Methods        []*methodSpec
	}{
		Package:        e.pkg,
		StructName:     structName,
		RequesterField: requesterField,
		Fields:         e.fields,
		Methods:        e.methods,
	}); err != nil {
		return nil, fmt.Errorf("render source: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Surface the unformatted text too: a malformed TypeModel that
		// slipped past validation produces source a human can still
		// read to diagnose, rather than only a gofmt error.
		return buf.String(), fmt.Errorf("format generated source: %w", err)
	}
	return string(formatted), nil
}

type methodEmitter struct {
	typeEmitter *typeEmitter
	spec        *methodSpec
}

func (e *methodEmitter) EmitRequestInfo(verb, pathTemplate string) {
	e.spec.Verb = verb
	e.spec.PathTemplate = pathTemplate
}

func (e *methodEmitter) SetAllowAnyStatusCode() {
	e.spec.AllowAnyStatusCode = true
}

func (e *methodEmitter) SetBasePath(template string) {
	e.spec.BasePathTemplate = template
}

func (e *methodEmitter) stmt(format string, args ...any) {
	e.spec.Statements = append(e.spec.Statements, fmt.Sprintf(format, args...))
}

func (e *methodEmitter) AddHeaderProperty(p emit.EmittedProperty, value string) {
	e.stmt("desc.Headers = append(desc.Headers, request.HeaderEntry{Name: %q, Value: fmt.Sprint(c.%s)})", p.Key, fieldName(p.Name))
}

func (e *methodEmitter) AddPathProperty(p emit.EmittedProperty, serialization serialize.PathMethod) {
	e.stmt("desc.PathSubstitutions = append(desc.PathSubstitutions, request.PathSubstitution{Key: %q, Value: c.%s, Serialization: %s})", p.Key, fieldName(p.Name), pathMethodLiteral(serialization))
}

func (e *methodEmitter) AddQueryProperty(p emit.EmittedProperty, serialization serialize.QueryMethod) {
	e.stmt("desc.Query = append(desc.Query, request.QueryEntry{Key: %q, Value: c.%s, Serialization: %s})", p.Key, fieldName(p.Name), queryMethodLiteral(serialization))
}

func (e *methodEmitter) AddHTTPRequestMessagePropertyProperty(p emit.EmittedProperty) {
	e.stmt("desc.MessageProperties[%q] = c.%s", p.Key, fieldName(p.Name))
}

func (e *methodEmitter) AddMethodHeader(name, value string) {
	e.stmt("desc.Headers = append(desc.Headers, request.HeaderEntry{Name: %q, Value: %q})", name, value)
}

func (e *methodEmitter) SetCancellationToken(paramName string) {
	// every generated method already takes a leading ctx
	// context.Context; the cancellation-token parameter folds into it
	// rather than becoming a second Go parameter.
	e.stmt("desc.CancellationToken = ctx")
}

func (e *methodEmitter) AddHeaderParameter(paramName string) {
	e.stmt("desc.Headers = append(desc.Headers, request.HeaderEntry{Name: %q, Value: fmt.Sprint(%s)})", paramName, paramName)
}

func (e *methodEmitter) AddPathParameter(paramName, key string, serialization serialize.PathMethod) {
	e.stmt("desc.PathSubstitutions = append(desc.PathSubstitutions, request.PathSubstitution{Key: %q, Value: %s, Serialization: %s})", key, paramName, pathMethodLiteral(serialization))
}

func (e *methodEmitter) AddQueryParameter(paramName, key string, serialization serialize.QueryMethod) {
	e.stmt("desc.Query = append(desc.Query, request.QueryEntry{Key: %q, Value: %s, Serialization: %s})", key, paramName, queryMethodLiteral(serialization))
}

func (e *methodEmitter) AddHTTPRequestMessagePropertyParameter(paramName, key string) {
	e.stmt("desc.MessageProperties[%q] = %s", key, paramName)
}

func (e *methodEmitter) AddRawQueryStringParameter(paramName string) {
	e.stmt("desc.Query = append(desc.Query, request.QueryEntry{Value: %s, Serialization: %s})", paramName, queryMethodLiteral(serialize.QueryToString))
}

func (e *methodEmitter) TryEmitAddQueryMapParameter(paramName string, paramType model.TypeRef, serialization serialize.QueryMethod, isDictionary func(model.TypeRef) bool) bool {
	if isDictionary != nil && !isDictionary(paramType) {
		return false
	}
	e.stmt("for k, v := range %s { desc.Query = append(desc.Query, request.QueryEntry{Key: k, Value: v, Serialization: %s}) }", paramName, queryMethodLiteral(serialization))
	return true
}

func (e *methodEmitter) SetBodyParameter(paramName string, serialization serialize.BodyMethod) {
	e.stmt("desc.Body = &request.Body{Value: %s, Serialization: %s}", paramName, bodyMethodLiteral(serialization))
}

func (e *methodEmitter) TryEmitRequestMethodInvocation(returnType model.TypeRef) bool {
	shape, ok := emit.ClassifyReturnType(returnType)
	if !ok {
		return false
	}
	e.spec.ReturnShape = shape
	return true
}

// dispatchFor returns the return-type declaration and the dispatch
// statement for m's resolved ReturnShape, calling through the type's
// requesterField.
func dispatchFor(m *methodSpec, requesterField string) (returnDecl, dispatchStmt string) {
	c := "c." + requesterField
	switch m.ReturnShape {
	case emit.ReturnUnit:
		return "error", fmt.Sprintf("return %s.RequestVoid(ctx, desc)", c)
	case emit.ReturnResponseMessage:
		return "(request.ResponseMessage, error)", fmt.Sprintf("return %s.RequestWithResponseMessage(ctx, desc)", c)
	case emit.ReturnRawBytes:
		return "([]byte, error)", fmt.Sprintf("return %s.RequestRawBytes(ctx, desc)", c)
	case emit.ReturnRawString:
		return "(string, error)", fmt.Sprintf("return %s.RequestRawString(ctx, desc)", c)
	case emit.ReturnRawStream:
		return "(io.ReadCloser, error)", fmt.Sprintf("return %s.RequestRawStream(ctx, desc)", c)
	default: // emit.ReturnT
		returnType := m.ReturnTypeName
		if returnType == "" {
			returnType = "any"
		}
		return fmt.Sprintf("(%s, error)", returnType), fmt.Sprintf(
			"msg, err := %s.RequestWithResponseMessage(ctx, desc)\n\tvar result %s\n\tif err != nil {\n\t\treturn result, err\n\t}\n\tif err := json.Unmarshal(msg.Body, &result); err != nil {\n\t\treturn result, err\n\t}\n\treturn result, nil",
			c, returnType)
	}
}

func fieldName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func goType(t model.TypeRef) string {
	if t.Name == "" {
		return ""
	}
	if t.Nullable && !strings.HasPrefix(t.Name, "*") {
		return "*" + t.Name
	}
	return t.Name
}

func pathMethodLiteral(m serialize.PathMethod) string {
	if m == serialize.PathSerialized {
		return "serialize.PathSerialized"
	}
	return "serialize.PathToString"
}

func queryMethodLiteral(m serialize.QueryMethod) string {
	if m == serialize.QuerySerialized {
		return "serialize.QuerySerialized"
	}
	return "serialize.QueryToString"
}

func bodyMethodLiteral(m serialize.BodyMethod) string {
	if m == serialize.BodyRaw {
		return "serialize.BodyRaw"
	}
	return "serialize.BodySerialize"
}

var sourceTemplate = template.Must(template.New("source").Parse(`// Code generated by apigen. DO NOT EDIT.
package {{.Package}}

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/deploymenttheory/go-apigen/apigen/request"
	"github.com/deploymenttheory/go-apigen/apigen/serialize"
)

var (
	_ = io.EOF
	_ = json.Marshal
)

type {{.StructName}} struct {
{{- range .Fields}}
	{{.FieldName}} {{.GoType}}
{{- end}}
}

{{range .Methods}}
{{- if .IsDispose}}
func (c *{{$.StructName}}) {{.Name}}() error {
	return c.{{$.RequesterField}}.Dispose()
}
{{- else}}
func (c *{{$.StructName}}) {{.Name}}(ctx context.Context{{range .Parameters}}, {{.}}{{end}}) {{.ReturnDecl}} {
	desc := request.NewRequestDescription({{printf "%q" .Verb}}, {{printf "%q" .PathTemplate}}, {{printf "%q" .Name}})
	desc.BasePathTemplate = {{printf "%q" .BasePathTemplate}}
	desc.AllowAnyStatusCode = {{.AllowAnyStatusCode}}
{{range .Statements}}	{{.}}
{{end -}}
	{{.DispatchStmt}}
}
{{- end}}
{{end}}
`))
