package descriptor

import (
	"testing"

	"github.com/deploymenttheory/go-apigen/apigen/serialize"
	"github.com/google/go-cmp/cmp"
)

const sampleYAML = `
name: UsersAPI
basePath: "/api/v1/{accountId}"
allowAnyStatusCode: false
headers:
  - name: Accept
    value: application/json
serialization:
  path: ToString
  query: Serialized
  body: Serialize
properties:
  - name: requester
    type:
      name: Requester
    isRequester: true
  - name: AccountID
    type:
      name: string
    path:
      key: accountId
methods:
  - name: GetUser
    returnType:
      name: User
    request:
      verb: GET
      path: "/users/{id}"
    parameters:
      - name: ctx
        type:
          name: context.Context
        isCancellationToken: true
      - name: id
        type:
          name: string
        path:
          key: id
      - name: limit
        type:
          name: int
        query:
          key: limit
          serialization: Serialized
  - name: Close
    isDisposeMethod: true
`

func TestDecode_FullDocument(t *testing.T) {
	tm, err := Decode([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if tm.Name != "UsersAPI" {
		t.Errorf("Name = %q, want UsersAPI", tm.Name)
	}
	if tm.BasePath == nil || tm.BasePath.Template != "/api/v1/{accountId}" {
		t.Errorf("BasePath = %+v, want template /api/v1/{accountId}", tm.BasePath)
	}
	if tm.Serialization == nil || tm.Serialization.Query == nil || *tm.Serialization.Query != serialize.QuerySerialized {
		t.Errorf("Serialization.Query = %v, want QuerySerialized", tm.Serialization)
	}
	if len(tm.Properties) != 2 {
		t.Fatalf("len(Properties) = %d, want 2", len(tm.Properties))
	}
	if !tm.Properties[0].IsRequester {
		t.Error("Properties[0].IsRequester = false, want true")
	}
	if tm.Properties[1].Path == nil || tm.Properties[1].Path.Key != "accountId" {
		t.Errorf("Properties[1].Path = %+v, want key accountId", tm.Properties[1].Path)
	}

	if len(tm.Methods) != 2 {
		t.Fatalf("len(Methods) = %d, want 2", len(tm.Methods))
	}
	get := tm.Methods[0]
	if get.Request == nil || get.Request.Verb != "GET" || get.Request.PathTemplate != "/users/{id}" {
		t.Errorf("GetUser.Request = %+v, want GET /users/{id}", get.Request)
	}
	if len(get.Parameters) != 3 {
		t.Fatalf("len(GetUser.Parameters) = %d, want 3", len(get.Parameters))
	}
	if !get.Parameters[0].IsCancellationToken {
		t.Error("Parameters[0].IsCancellationToken = false, want true")
	}
	if get.Parameters[1].Path == nil || get.Parameters[1].Path.Key != "id" {
		t.Errorf("Parameters[1].Path = %+v, want key id", get.Parameters[1].Path)
	}
	if get.Parameters[2].Query == nil || get.Parameters[2].Query.Serialization == nil ||
		*get.Parameters[2].Query.Serialization != serialize.QuerySerialized {
		t.Errorf("Parameters[2].Query = %+v, want Serialized", get.Parameters[2].Query)
	}

	dispose := tm.Methods[1]
	if !dispose.IsDisposeMethod {
		t.Error("Close.IsDisposeMethod = false, want true")
	}
}

func TestDecode_JSON(t *testing.T) {
	const doc = `{"name":"PingAPI","methods":[{"name":"Ping","request":{"verb":"GET","path":"/ping"}}]}`

	tm, err := Decode([]byte(doc))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if tm.Name != "PingAPI" {
		t.Errorf("Name = %q, want PingAPI", tm.Name)
	}
	if len(tm.Methods) != 1 || tm.Methods[0].Request.PathTemplate != "/ping" {
		t.Errorf("Methods = %+v, want one Ping method", tm.Methods)
	}
}

func TestDecode_UnknownSerializationMethod(t *testing.T) {
	const doc = `
name: Bad
serialization:
  query: NotAThing
`
	if _, err := Decode([]byte(doc)); err == nil {
		t.Fatal("Decode() error = nil, want error for unknown serialization method")
	}
}

func TestDecode_MalformedYAML(t *testing.T) {
	if _, err := Decode([]byte("name: [unterminated")); err == nil {
		t.Fatal("Decode() error = nil, want parse error")
	}
}

func TestDecode_RoundTripsTypeRefs(t *testing.T) {
	const doc = `
name: T
properties:
  - name: P
    type:
      name: string
      nullable: true
`
	tm, err := Decode([]byte(doc))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	want := struct {
		Name     string
		Nullable bool
	}{"string", true}
	got := struct {
		Name     string
		Nullable bool
	}{tm.Properties[0].Type.Name, tm.Properties[0].Type.Nullable}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TypeRef mismatch (-want +got):\n%s", diff)
	}
}
