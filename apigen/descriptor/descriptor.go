// Package descriptor decodes a hand-authored YAML or JSON file into a
// *model.TypeModel. It is the discovery collaborator model.TypeModel's
// doc comment describes as external to the core pipeline — cmd/apigen's
// only mechanism for producing one, since this repo has no reflection or
// static-analysis front end.
//
// The wire format mirrors model.TypeModel's shape directly: one field per
// attribute, using the same string spellings serialize.PathMethod,
// serialize.QueryMethod, and serialize.BodyMethod already print via their
// String() methods ("ToString"/"Serialized", "Serialize"/"Raw") so a
// descriptor author can read generated diagnostics and the descriptor
// format side by side.
package descriptor

import (
	"fmt"

	"github.com/deploymenttheory/go-apigen/apigen/model"
	"github.com/deploymenttheory/go-apigen/apigen/serialize"
	"gopkg.in/yaml.v3"
)

// file is the root of a descriptor document.
type file struct {
	Name               string               `yaml:"name"`
	BasePath           string               `yaml:"basePath"`
	AllowAnyStatusCode bool                 `yaml:"allowAnyStatusCode"`
	Headers            []headerAttr         `yaml:"headers"`
	Serialization      *serializationMethods `yaml:"serialization"`
	Properties         []property           `yaml:"properties"`
	Methods            []method             `yaml:"methods"`
	Events             []string             `yaml:"events"`
}

type headerAttr struct {
	Name  string  `yaml:"name"`
	Value *string `yaml:"value"`
}

type serializationMethods struct {
	Path  string `yaml:"path"`
	Query string `yaml:"query"`
	Body  string `yaml:"body"`
}

type typeRef struct {
	Name     string `yaml:"name"`
	Nullable bool   `yaml:"nullable"`
}

type property struct {
	Name        string   `yaml:"name"`
	Type        typeRef  `yaml:"type"`
	IsRequester bool     `yaml:"isRequester"`
	ReadOnly    bool     `yaml:"readOnly"`

	Header      *propertyHeader `yaml:"header"`
	Path        *propertyPath   `yaml:"path"`
	Query       *propertyQuery  `yaml:"query"`
	HTTPMessage *httpMessage    `yaml:"httpMessageProperty"`
}

type propertyHeader struct {
	Name    string  `yaml:"name"`
	Default *string `yaml:"default"`
}

type propertyPath struct {
	Key string `yaml:"key"`
}

type propertyQuery struct {
	Key           string `yaml:"key"`
	Serialization string `yaml:"serialization"`
}

type httpMessage struct {
	Key string `yaml:"key"`
}

type requestAttr struct {
	Verb         string `yaml:"verb"`
	PathTemplate string `yaml:"path"`
}

type method struct {
	Name               string       `yaml:"name"`
	ReturnType         typeRef      `yaml:"returnType"`
	IsDisposeMethod    bool         `yaml:"isDisposeMethod"`
	Request            *requestAttr `yaml:"request"`
	AllowAnyStatusCode bool         `yaml:"allowAnyStatusCode"`
	Serialization      *serializationMethods `yaml:"serialization"`
	Headers            []headerAttr `yaml:"headers"`
	Parameters         []parameter  `yaml:"parameters"`
}

type parameter struct {
	Name                string  `yaml:"name"`
	Type                typeRef `yaml:"type"`
	IsCancellationToken bool    `yaml:"isCancellationToken"`

	Header         *headerAttr        `yaml:"header"`
	Path           *pathParam         `yaml:"path"`
	Query          *propertyQuery     `yaml:"query"`
	QueryMap       *queryMapParam     `yaml:"queryMap"`
	RawQueryString bool               `yaml:"rawQueryString"`
	Body           *bodyParam         `yaml:"body"`
	HTTPMessage    *httpMessage       `yaml:"httpMessageProperty"`
}

type pathParam struct {
	Key           string `yaml:"key"`
	Serialization string `yaml:"serialization"`
}

type queryMapParam struct {
	Serialization string `yaml:"serialization"`
}

type bodyParam struct {
	Serialization string `yaml:"serialization"`
}

// Decode parses a descriptor document (YAML or JSON — yaml.v3 reads both)
// into a *model.TypeModel ready for generate.Generator.
func Decode(data []byte) (*model.TypeModel, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("descriptor: parse: %w", err)
	}
	return f.toTypeModel()
}

func (f file) toTypeModel() (*model.TypeModel, error) {
	t := &model.TypeModel{Name: f.Name}

	for _, h := range f.Headers {
		t.Headers = append(t.Headers, model.HeaderAttribute{Name: h.Name, Value: h.Value, Declaring: f.Name})
	}

	if f.BasePath != "" {
		t.BasePath = &model.BasePathAttribute{Template: f.BasePath, Declaring: f.Name}
	}

	if f.AllowAnyStatusCode {
		t.AllowAnyStatusCode = &model.AllowAnyStatusCodeAttribute{Declaring: f.Name}
	}

	if f.Serialization != nil {
		sm, err := toSerializationAttr(f.Serialization, f.Name)
		if err != nil {
			return nil, fmt.Errorf("descriptor: type %s: %w", f.Name, err)
		}
		t.Serialization = sm
	}

	for _, ev := range f.Events {
		t.Events = append(t.Events, model.EventModel{Name: ev})
	}

	for _, p := range f.Properties {
		pm, err := p.toPropertyModel()
		if err != nil {
			return nil, fmt.Errorf("descriptor: property %s: %w", p.Name, err)
		}
		t.Properties = append(t.Properties, pm)
	}

	for _, m := range f.Methods {
		mm, err := m.toMethodModel()
		if err != nil {
			return nil, fmt.Errorf("descriptor: method %s: %w", m.Name, err)
		}
		t.Methods = append(t.Methods, mm)
	}

	return t, nil
}

func (p property) toPropertyModel() (model.PropertyModel, error) {
	pm := model.PropertyModel{
		Name:        p.Name,
		Type:        model.TypeRef{Name: p.Type.Name, Nullable: p.Type.Nullable},
		IsRequester: p.IsRequester,
		HasGetter:   true,
		HasSetter:   !p.ReadOnly,
	}

	switch {
	case p.Header != nil:
		pm.Role = model.PropertyRoleHeader
		pm.Header = &model.PropertyHeaderAttribute{Name: p.Header.Name, Default: p.Header.Default}
	case p.Path != nil:
		pm.Role = model.PropertyRolePath
		pm.Path = &model.PropertyPathAttribute{Key: p.Path.Key}
	case p.Query != nil:
		qm, err := parseQueryMethodPtr(p.Query.Serialization)
		if err != nil {
			return model.PropertyModel{}, err
		}
		pm.Role = model.PropertyRoleQuery
		pm.Query = &model.PropertyQueryAttribute{Key: p.Query.Key, Serialization: qm}
	case p.HTTPMessage != nil:
		pm.Role = model.PropertyRoleHTTPRequestMessageProperty
		pm.HTTPMessage = &model.PropertyHTTPRequestMessageAttribute{Key: p.HTTPMessage.Key}
	}

	return pm, nil
}

func (m method) toMethodModel() (model.MethodModel, error) {
	mm := model.MethodModel{
		Name:            m.Name,
		ReturnType:      model.TypeRef{Name: m.ReturnType.Name, Nullable: m.ReturnType.Nullable},
		IsDisposeMethod: m.IsDisposeMethod,
	}

	if m.Request != nil {
		mm.Request = &model.RequestAttribute{Verb: m.Request.Verb, PathTemplate: m.Request.PathTemplate}
	}

	if m.AllowAnyStatusCode {
		mm.AllowAnyStatusCode = &model.AllowAnyStatusCodeAttribute{Declaring: m.Name}
	}

	if m.Serialization != nil {
		sm, err := toSerializationAttr(m.Serialization, m.Name)
		if err != nil {
			return model.MethodModel{}, err
		}
		mm.Serialization = sm
	}

	for _, h := range m.Headers {
		mm.Headers = append(mm.Headers, model.HeaderAttribute{Name: h.Name, Value: h.Value, Declaring: m.Name})
	}

	for _, p := range m.Parameters {
		pm, err := p.toParameterModel()
		if err != nil {
			return model.MethodModel{}, fmt.Errorf("parameter %s: %w", p.Name, err)
		}
		mm.Parameters = append(mm.Parameters, pm)
	}

	return mm, nil
}

func (p parameter) toParameterModel() (model.ParameterModel, error) {
	pm := model.ParameterModel{
		Name:                p.Name,
		Type:                model.TypeRef{Name: p.Type.Name, Nullable: p.Type.Nullable},
		IsCancellationToken: p.IsCancellationToken,
	}

	if p.Header != nil {
		pm.Header = &model.HeaderAttribute{Name: p.Header.Name, Value: p.Header.Value}
	}
	if p.Path != nil {
		pathM, err := parsePathMethodPtr(p.Path.Serialization)
		if err != nil {
			return model.ParameterModel{}, err
		}
		pm.Path = &model.ParameterPathAttribute{Key: p.Path.Key, Serialization: pathM}
	}
	if p.Query != nil {
		qm, err := parseQueryMethodPtr(p.Query.Serialization)
		if err != nil {
			return model.ParameterModel{}, err
		}
		pm.Query = &model.ParameterQueryAttribute{Key: p.Query.Key, Serialization: qm}
	}
	if p.QueryMap != nil {
		qm, err := parseQueryMethodPtr(p.QueryMap.Serialization)
		if err != nil {
			return model.ParameterModel{}, err
		}
		pm.QueryMap = &model.ParameterQueryMapAttribute{Serialization: qm}
	}
	if p.RawQueryString {
		pm.RawQueryString = &model.ParameterRawQueryStringAttribute{}
	}
	if p.Body != nil {
		bm, err := parseBodyMethodPtr(p.Body.Serialization)
		if err != nil {
			return model.ParameterModel{}, err
		}
		pm.Body = &model.ParameterBodyAttribute{Serialization: bm}
	}
	if p.HTTPMessage != nil {
		pm.HTTPMessage = &model.ParameterHTTPRequestMessageAttribute{Key: p.HTTPMessage.Key}
	}

	return pm, nil
}

func toSerializationAttr(sm *serializationMethods, declaring string) (*model.SerializationMethodsAttribute, error) {
	pathM, err := parsePathMethodPtr(sm.Path)
	if err != nil {
		return nil, err
	}
	queryM, err := parseQueryMethodPtr(sm.Query)
	if err != nil {
		return nil, err
	}
	bodyM, err := parseBodyMethodPtr(sm.Body)
	if err != nil {
		return nil, err
	}
	return &model.SerializationMethodsAttribute{Path: pathM, Query: queryM, Body: bodyM, Declaring: declaring}, nil
}

func parsePathMethodPtr(s string) (*serialize.PathMethod, error) {
	if s == "" {
		return nil, nil
	}
	switch s {
	case "ToString":
		m := serialize.PathToString
		return &m, nil
	case "Serialized":
		m := serialize.PathSerialized
		return &m, nil
	default:
		return nil, fmt.Errorf("unknown path serialization %q", s)
	}
}

func parseQueryMethodPtr(s string) (*serialize.QueryMethod, error) {
	if s == "" {
		return nil, nil
	}
	switch s {
	case "ToString":
		m := serialize.QueryToString
		return &m, nil
	case "Serialized":
		m := serialize.QuerySerialized
		return &m, nil
	default:
		return nil, fmt.Errorf("unknown query serialization %q", s)
	}
}

func parseBodyMethodPtr(s string) (*serialize.BodyMethod, error) {
	if s == "" {
		return nil, nil
	}
	switch s {
	case "Serialize":
		m := serialize.BodySerialize
		return &m, nil
	case "Raw":
		m := serialize.BodyRaw
		return &m, nil
	default:
		return nil, fmt.Errorf("unknown body serialization %q", s)
	}
}
