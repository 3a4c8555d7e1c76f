package serialize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMethodStringers(t *testing.T) {
	assert.Equal(t, "ToString", QueryToString.String())
	assert.Equal(t, "Serialized", QuerySerialized.String())
	assert.Equal(t, "ToString", PathToString.String())
	assert.Equal(t, "Serialized", PathSerialized.String())
	assert.Equal(t, "Serialize", BodySerialize.String())
	assert.Equal(t, "Raw", BodyRaw.String())
}

func ptrPath(m PathMethod) *PathMethod   { return &m }
func ptrQuery(m QueryMethod) *QueryMethod { return &m }
func ptrBody(m BodyMethod) *BodyMethod   { return &m }

func TestResolver_Precedence(t *testing.T) {
	typeDefaults := TypeDefaults{Path: ptrPath(PathSerialized), Query: ptrQuery(QuerySerialized), Body: ptrBody(BodyRaw)}
	methodDefaults := MethodDefaults{Path: ptrPath(PathToString)}

	r := NewResolver(typeDefaults, methodDefaults)

	// method-level overrides type-level for Path.
	assert.Equal(t, PathToString, r.ResolvePath(nil))
	// type-level applies when no method-level override exists.
	assert.Equal(t, QuerySerialized, r.ResolveQuery(nil))
	assert.Equal(t, BodyRaw, r.ResolveBody(nil))

	// an explicit call-site override always wins.
	assert.Equal(t, PathSerialized, r.ResolvePath(ptrPath(PathSerialized)))
	assert.Equal(t, QueryToString, r.ResolveQuery(ptrQuery(QueryToString)))
	assert.Equal(t, BodySerialize, r.ResolveBody(ptrBody(BodySerialize)))
}

func TestResolver_FallsBackToFrameworkDefaults(t *testing.T) {
	r := NewResolver(TypeDefaults{}, MethodDefaults{})

	assert.Equal(t, Defaults.Path, r.ResolvePath(nil))
	assert.Equal(t, Defaults.Query, r.ResolveQuery(nil))
	assert.Equal(t, Defaults.Body, r.ResolveBody(nil))
}

func TestResolver_ZeroValueResolverUsesFrameworkDefaults(t *testing.T) {
	var r Resolver
	assert.Equal(t, Defaults.Path, r.ResolvePath(nil))
	assert.Equal(t, Defaults.Query, r.ResolveQuery(nil))
	assert.Equal(t, Defaults.Body, r.ResolveBody(nil))
}
