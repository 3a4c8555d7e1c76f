// Package jsoncodec is the reference implementation of
// apigen/serialize's pluggable serializer interfaces: JSON bodies,
// ToString/Serialized query values, and ToString/Serialized path values. It is one
// possible collaborator among many — a caller wiring apigen/requesterresty
// is free to substitute a different BodySerializer without touching the
// generator core.
package jsoncodec

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/deploymenttheory/go-apigen/apigen/model"
)

// JSON is the default BodySerializer: encoding/json, matching the
// teacher's SetBody(body any) call straight through to resty's own
// encoding/json-backed marshaling.
type JSON struct{}

// SerializeBody encodes value as JSON.
func (JSON) SerializeBody(value any) ([]byte, string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, "", err
	}
	return data, "application/json", nil
}

// ToString is a QueryParamSerializer and PathParamSerializer producing
// the ToString form: a value's canonical textual form via fmt.Sprint,
// with no encoding step.
type ToString struct{}

// SerializeQueryParam renders value via fmt.Sprint.
func (ToString) SerializeQueryParam(value any) (string, error) {
	return fmt.Sprint(value), nil
}

// SerializePathParam renders value via fmt.Sprint.
func (ToString) SerializePathParam(value any) (string, error) {
	return fmt.Sprint(value), nil
}

// Serialized is the "Serialized" QueryParamSerializer: it JSON-encodes
// the value and always URL-escapes the result, scalars included. Most callers use it for structured query
// values (slices, maps) where ToString's fmt.Sprint would be
// Go-syntax-shaped rather than wire-shaped.
type Serialized struct{}

// SerializeQueryParam JSON-encodes value and URL-escapes the result.
func (Serialized) SerializeQueryParam(value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return url.QueryEscape(string(data)), nil
}

// SerializePathParam JSON-encodes value for delegated path serialization.
func (Serialized) SerializePathParam(value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// IsDictionary reports whether t describes a key-value mapping type —
// the check the validator needs for QueryMapParameterIsNotADictionary
// (§4.5 step 6). TypeModel carries no runtime reflect.Type and no
// runtime value to inspect, only a static name and nullability, so this
// is a plain string check against the conventional Go map-type name
// shape ("map[K]V") a discovery collaborator is expected to surface.
func IsDictionary(t model.TypeRef) bool {
	if len(t.Name) < 4 || t.Name[:4] != "map[" {
		return false
	}
	return true
}
