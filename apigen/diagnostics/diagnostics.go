// Package diagnostics accumulates validation findings raised while
// generating a client from a TypeModel. The Reporter never aborts — the
// whole point of separating diagnostics from Go errors is that emission
// keeps running so every reachable rule violation surfaces in one pass
// (spec §4.1, §7 tier 1). Severity is fixed at Error for every code in the
// closed set; there is no warning tier in this core.
package diagnostics

import "go.uber.org/zap"

// Severity classifies a Diagnostic. The closed code set in this package is
// entirely SeverityError — every rule violation is fatal for the interface
// being generated, by design (§7).
type Severity int

const (
	SeverityError Severity = iota
)

func (s Severity) String() string {
	return "Error"
}

// Code is the closed set of diagnostic codes. Every structural rule in
// spec.md §3 maps to exactly one Code.
type Code string

const (
	HeaderOnInterfaceMustHaveValue              Code = "HeaderOnInterfaceMustHaveValue"
	HeaderOnInterfaceMustNotHaveColonInName      Code = "HeaderOnInterfaceMustNotHaveColonInName"
	HeaderPropertyNameMustContainColon          Code = "HeaderPropertyNameMustContainColon"
	HeaderPropertyWithValueMustBeNullable        Code = "HeaderPropertyWithValueMustBeNullable"
	HeaderParameterMustNotHaveValue              Code = "HeaderParameterMustNotHaveValue"
	AllowAnyStatusCodeNotAllowedOnParent         Code = "AllowAnyStatusCodeNotAllowedOnParent"
	EventNotAllowed                              Code = "EventNotAllowed"
	MethodMustHaveRequestAttribute                Code = "MethodMustHaveRequestAttribute"
	MethodMustHaveValidReturnType                 Code = "MethodMustHaveValidReturnType"
	MultipleRequesterProperties                   Code = "MultipleRequesterProperties"
	RequesterPropertyMustHaveZeroAttributes       Code = "RequesterPropertyMustHaveZeroAttributes"
	PropertyMustBeReadOnly                        Code = "PropertyMustBeReadOnly"
	PropertyMustBeReadWrite                       Code = "PropertyMustBeReadWrite"
	PropertyMustHaveOneAttribute                  Code = "PropertyMustHaveOneAttribute"
	MultiplePathPropertiesForKey                  Code = "MultiplePathPropertiesForKey"
	MissingPathPropertyForBasePathPlaceholder     Code = "MissingPathPropertyForBasePathPlaceholder"
	MultiplePathParametersForKey                  Code = "MultiplePathParametersForKey"
	MissingPathPropertyOrParameterForPlaceholder  Code = "MissingPathPropertyOrParameterForPlaceholder"
	MissingPlaceholderForPathParameter            Code = "MissingPlaceholderForPathParameter"
	MultipleBodyParameters                        Code = "MultipleBodyParameters"
	MultipleCancellationTokenParameters            Code = "MultipleCancellationTokenParameters"
	CancellationTokenMustHaveZeroAttributes        Code = "CancellationTokenMustHaveZeroAttributes"
	ParameterMustHaveZeroOrOneAttributes          Code = "ParameterMustHaveZeroOrOneAttributes"
	QueryMapParameterIsNotADictionary              Code = "QueryMapParameterIsNotADictionary"
	DuplicateHttpRequestMessagePropertyKey          Code = "DuplicateHttpRequestMessagePropertyKey"
)

// Diagnostic is one captured finding: a code, the entity it was raised
// against (a human-readable path such as "IUsersApi.GetUser(id)" or
// "IUsersApi.accountId"), and an optional key (the placeholder/parameter
// key implicated, when the rule is about a specific key).
type Diagnostic struct {
	Code   Code
	Entity string
	Key    string
}

// Reporter is the sink every Validator and MethodEmitter call records
// into. It never panics and never returns an error — that is the entire
// point of a diagnostic tier distinct from Go errors (§7).
type Reporter struct {
	logger      *zap.Logger
	diagnostics []Diagnostic
}

// NewReporter builds a Reporter. A nil logger is replaced with a no-op
// logger, matching the teacher's zap.NewNop() default in tests.
func NewReporter(logger *zap.Logger) *Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reporter{logger: logger}
}

func (r *Reporter) capture(d Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
	r.logger.Debug("diagnostic captured",
		zap.String("code", string(d.Code)),
		zap.String("entity", d.Entity),
		zap.String("key", d.Key))
}

// Diagnostics returns every diagnostic captured so far, in declaration
// order (Open Question in spec.md §9: the reference pipeline preserves
// declaration order and leaves deduplication to the caller).
func (r *Reporter) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(r.diagnostics))
	copy(out, r.diagnostics)
	return out
}

// HasErrors reports whether any diagnostic was captured. Every code in
// this closed set is SeverityError, so "any diagnostic" and "any error"
// coincide.
func (r *Reporter) HasErrors() bool {
	return len(r.diagnostics) > 0
}

// One capture method per code (§4.1), each taking the offending entity's
// description and an optional key.

func (r *Reporter) HeaderOnInterfaceMustHaveValue(entity string) {
	r.capture(Diagnostic{Code: HeaderOnInterfaceMustHaveValue, Entity: entity})
}

func (r *Reporter) HeaderOnInterfaceMustNotHaveColonInName(entity, name string) {
	r.capture(Diagnostic{Code: HeaderOnInterfaceMustNotHaveColonInName, Entity: entity, Key: name})
}

func (r *Reporter) HeaderPropertyNameMustContainColon(entity, name string) {
	r.capture(Diagnostic{Code: HeaderPropertyNameMustContainColon, Entity: entity, Key: name})
}

func (r *Reporter) HeaderPropertyWithValueMustBeNullable(entity string) {
	r.capture(Diagnostic{Code: HeaderPropertyWithValueMustBeNullable, Entity: entity})
}

func (r *Reporter) HeaderParameterMustNotHaveValue(entity string) {
	r.capture(Diagnostic{Code: HeaderParameterMustNotHaveValue, Entity: entity})
}

func (r *Reporter) AllowAnyStatusCodeNotAllowedOnParent(entity, declaringInterface string) {
	r.capture(Diagnostic{Code: AllowAnyStatusCodeNotAllowedOnParent, Entity: entity, Key: declaringInterface})
}

func (r *Reporter) EventNotAllowed(entity string) {
	r.capture(Diagnostic{Code: EventNotAllowed, Entity: entity})
}

func (r *Reporter) MethodMustHaveRequestAttribute(entity string) {
	r.capture(Diagnostic{Code: MethodMustHaveRequestAttribute, Entity: entity})
}

func (r *Reporter) MethodMustHaveValidReturnType(entity string) {
	r.capture(Diagnostic{Code: MethodMustHaveValidReturnType, Entity: entity})
}

func (r *Reporter) MultipleRequesterProperties(entity string) {
	r.capture(Diagnostic{Code: MultipleRequesterProperties, Entity: entity})
}

func (r *Reporter) RequesterPropertyMustHaveZeroAttributes(entity string) {
	r.capture(Diagnostic{Code: RequesterPropertyMustHaveZeroAttributes, Entity: entity})
}

func (r *Reporter) PropertyMustBeReadOnly(entity string) {
	r.capture(Diagnostic{Code: PropertyMustBeReadOnly, Entity: entity})
}

func (r *Reporter) PropertyMustBeReadWrite(entity string) {
	r.capture(Diagnostic{Code: PropertyMustBeReadWrite, Entity: entity})
}

func (r *Reporter) PropertyMustHaveOneAttribute(entity string) {
	r.capture(Diagnostic{Code: PropertyMustHaveOneAttribute, Entity: entity})
}

func (r *Reporter) MultiplePathPropertiesForKey(entity, key string) {
	r.capture(Diagnostic{Code: MultiplePathPropertiesForKey, Entity: entity, Key: key})
}

func (r *Reporter) MissingPathPropertyForBasePathPlaceholder(entity, key string) {
	r.capture(Diagnostic{Code: MissingPathPropertyForBasePathPlaceholder, Entity: entity, Key: key})
}

func (r *Reporter) MultiplePathParametersForKey(entity, key string) {
	r.capture(Diagnostic{Code: MultiplePathParametersForKey, Entity: entity, Key: key})
}

func (r *Reporter) MissingPathPropertyOrParameterForPlaceholder(entity, key string) {
	r.capture(Diagnostic{Code: MissingPathPropertyOrParameterForPlaceholder, Entity: entity, Key: key})
}

func (r *Reporter) MissingPlaceholderForPathParameter(entity, key string) {
	r.capture(Diagnostic{Code: MissingPlaceholderForPathParameter, Entity: entity, Key: key})
}

func (r *Reporter) MultipleBodyParameters(entity string) {
	r.capture(Diagnostic{Code: MultipleBodyParameters, Entity: entity})
}

func (r *Reporter) MultipleCancellationTokenParameters(entity string) {
	r.capture(Diagnostic{Code: MultipleCancellationTokenParameters, Entity: entity})
}

func (r *Reporter) CancellationTokenMustHaveZeroAttributes(entity string) {
	r.capture(Diagnostic{Code: CancellationTokenMustHaveZeroAttributes, Entity: entity})
}

func (r *Reporter) ParameterMustHaveZeroOrOneAttributes(entity string) {
	r.capture(Diagnostic{Code: ParameterMustHaveZeroOrOneAttributes, Entity: entity})
}

func (r *Reporter) QueryMapParameterIsNotADictionary(entity string) {
	r.capture(Diagnostic{Code: QueryMapParameterIsNotADictionary, Entity: entity})
}

func (r *Reporter) DuplicateHttpRequestMessagePropertyKey(entity, key string) {
	r.capture(Diagnostic{Code: DuplicateHttpRequestMessagePropertyKey, Entity: entity, Key: key})
}
