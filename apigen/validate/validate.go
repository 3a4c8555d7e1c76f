// Package validate enforces the structural rules of §3 against a
// *model.TypeModel, reporting every violation it finds through a
// diagnostics.Reporter. Validate never aborts early: it is deliberately
// written so that a TypeModel with several independent defects surfaces a
// diagnostic for each of them in one pass, matching apigen/generate's
// expectation that Validate is safe to run to completion regardless of
// what it finds along the way.
package validate

import (
	"fmt"

	"github.com/deploymenttheory/go-apigen/apigen/diagnostics"
	"github.com/deploymenttheory/go-apigen/apigen/model"
)

// Type runs every type-level rule from §4.3/§4.4 step 1: header
// well-formedness, AllowAnyStatusCode placement, event rejection. It does
// not touch properties, methods, or path placeholders — callers run Type
// before emitting the TypeEmitter, then run Properties before emitting
// any property, and Method for each method in turn (§4.4).
func Type(t *model.TypeModel, r *diagnostics.Reporter) {
	for _, h := range t.Headers {
		validateInterfaceHeader(t.Name, h, r)
	}

	if t.AllowAnyStatusCode != nil && t.AllowAnyStatusCode.Declaring != t.Name {
		r.AllowAnyStatusCodeNotAllowedOnParent(t.Name, t.AllowAnyStatusCode.Declaring)
	}

	for _, e := range t.Events {
		r.EventNotAllowed(fmt.Sprintf("%s.%s", t.Name, e.Name))
	}
}

func validateInterfaceHeader(owner string, h model.HeaderAttribute, r *diagnostics.Reporter) {
	entity := fmt.Sprintf("%s[Header %q]", owner, h.Name)
	if containsColon(h.Name) {
		r.HeaderOnInterfaceMustNotHaveColonInName(entity, h.Name)
	}
	if h.Value == nil {
		r.HeaderOnInterfaceMustHaveValue(entity)
	}
}

func containsColon(s string) bool {
	for _, c := range s {
		if c == ':' {
			return true
		}
	}
	return false
}

// Properties runs §4.3's path-property duplicate/placeholder rules and
// §4.1's per-property shape rules (PropertyMustHaveOneAttribute and the
// Requester-property rules). Called once, over the type's full property
// list, before any method is validated — path properties contribute keys
// that method-level placeholder matching (Method) depends on.
func Properties(t *model.TypeModel, r *diagnostics.Reporter) {
	requesterCount := 0
	pathKeys := make(map[string][]int)

	for i, p := range t.Properties {
		entity := fmt.Sprintf("%s.%s", t.Name, p.Name)

		if p.IsRequester {
			requesterCount++
			if p.Header != nil || p.Path != nil || p.Query != nil || p.HTTPMessage != nil {
				r.RequesterPropertyMustHaveZeroAttributes(entity)
			}
			if p.HasSetter {
				r.PropertyMustBeReadOnly(entity)
			}
			continue
		}

		if !p.HasGetter || !p.HasSetter {
			r.PropertyMustBeReadWrite(entity)
		}

		n := propertyAttributeCount(p)
		if n != 1 {
			r.PropertyMustHaveOneAttribute(entity)
		}

		if p.Header != nil && !containsColonRune(p.Header.Name) {
			r.HeaderPropertyNameMustContainColon(entity, p.Header.Name)
		}
		if p.Header != nil && p.Header.Default != nil && !p.Type.Nullable {
			r.HeaderPropertyWithValueMustBeNullable(entity)
		}

		if p.Path != nil {
			pathKeys[p.Path.Key] = append(pathKeys[p.Path.Key], i)
		}
	}

	if requesterCount > 1 {
		r.MultipleRequesterProperties(t.Name)
	}

	for key, idx := range pathKeys {
		if len(idx) > 1 {
			r.MultiplePathPropertiesForKey(t.Name, key)
		}
	}

	if t.BasePath != nil {
		for key := range PlaceholderSet(t.BasePath.Template) {
			if _, ok := pathKeys[key]; !ok {
				r.MissingPathPropertyForBasePathPlaceholder(t.Name, key)
			}
		}
	}
}

func propertyAttributeCount(p model.PropertyModel) int {
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
	if p.HTTPMessage != nil {
		n++
	}
	return n
}

func containsColonRune(s string) bool {
	return containsColon(s)
}

// PathPropertyKeys returns the set of path-property keys declared on t,
// for use by callers (generate.Generator) that need the same set Method
// uses without recomputing it against the raw property list.
func PathPropertyKeys(t *model.TypeModel) map[string]bool {
	keys := make(map[string]bool)
	for _, p := range t.Properties {
		if p.Path != nil {
			keys[p.Path.Key] = true
		}
	}
	return keys
}

// Method runs every method-level rule from §4.1/§4.3/§4.5: request
// attribute presence, method header well-formedness, path-placeholder
// cross-checking against the method's own path parameters plus the
// type's path properties, per-method duplicate-key detection
// (path-parameter keys and HttpRequestMessageProperty keys), parameter
// multiplicity, cancellation-token and body-parameter uniqueness, and
// query-map dictionary-ness (via the supplied isDictionary predicate over
// the parameter's static TypeRef — see
// apigen/serialize/jsoncodec.IsDictionary).
//
// typePathKeys is the type's path-property key set (PathPropertyKeys);
// Method doesn't recompute it so Properties and Method agree on exactly
// one pass over t.Properties.
func Method(t *model.TypeModel, m *model.MethodModel, typePathKeys map[string]bool, isDictionary func(model.TypeRef) bool, r *diagnostics.Reporter) {
	entity := fmt.Sprintf("%s.%s", t.Name, m.Name)

	if m.IsDisposeMethod {
		return
	}

	if m.Request == nil {
		r.MethodMustHaveRequestAttribute(entity)
		return
	}

	for _, h := range m.Headers {
		validateInterfaceHeader(entity, h, r)
	}

	pathParamKeys := make(map[string][]int)
	msgKeys := make(map[string][]int)
	cancellationCount := 0
	bodyCount := 0

	for i, p := range m.Parameters {
		pEntity := fmt.Sprintf("%s(%s)", entity, p.Name)

		if p.IsCancellationToken {
			cancellationCount++
			if p.AttributeCount() != 0 {
				r.CancellationTokenMustHaveZeroAttributes(pEntity)
			}
			continue
		}

		if n := p.AttributeCount(); n > 1 {
			r.ParameterMustHaveZeroOrOneAttributes(pEntity)
		}

		if p.Header != nil && p.Header.Value != nil {
			r.HeaderParameterMustNotHaveValue(pEntity)
		}
		if p.Header != nil && containsColon(p.Header.Name) {
			r.HeaderOnInterfaceMustNotHaveColonInName(pEntity, p.Header.Name)
		}

		if p.Path != nil {
			pathParamKeys[p.Path.Key] = append(pathParamKeys[p.Path.Key], i)
		}

		if p.HTTPMessage != nil {
			msgKeys[p.HTTPMessage.Key] = append(msgKeys[p.HTTPMessage.Key], i)
		}

		if p.QueryMap != nil && isDictionary != nil && !isDictionary(p.Type) {
			r.QueryMapParameterIsNotADictionary(pEntity)
		}

		if p.Body != nil {
			bodyCount++
			if bodyCount > 1 {
				r.MultipleBodyParameters(pEntity)
			}
		}
	}

	if cancellationCount > 1 {
		r.MultipleCancellationTokenParameters(entity)
	}

	for key, idx := range pathParamKeys {
		if len(idx) > 1 {
			r.MultiplePathParametersForKey(entity, key)
		}
	}
	for key, idx := range msgKeys {
		if len(idx) > 1 {
			r.DuplicateHttpRequestMessagePropertyKey(entity, key)
		}
	}

	placeholders := PlaceholderSet(m.Request.PathTemplate)
	for key := range placeholders {
		_, hasParam := pathParamKeys[key]
		_, hasProp := typePathKeys[key]
		if !hasParam && !hasProp {
			r.MissingPathPropertyOrParameterForPlaceholder(entity, key)
		}
	}
	for key := range pathParamKeys {
		if !placeholders[key] {
			r.MissingPlaceholderForPathParameter(entity, key)
		}
	}
}

// ResolveParameterRole returns the role emission and diagnostics should
// treat p as having when exactly zero or one attribute field is set — the
// well-formed case. Callers that need a deterministic choice even when
// ParameterMustHaveZeroOrOneAttributes has fired (so that generation can
// proceed past the diagnostic) should use ParameterModel.EffectiveRole
// instead, which applies the same precedence unconditionally.
func ResolveParameterRole(p model.ParameterModel) model.ParameterRole {
	return p.EffectiveRole()
}
