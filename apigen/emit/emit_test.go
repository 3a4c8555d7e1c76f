package emit

import (
	"testing"

	"github.com/deploymenttheory/go-apigen/apigen/model"
	"github.com/stretchr/testify/assert"
)

func TestOpKind_String(t *testing.T) {
	tests := []struct {
		kind OpKind
		want string
	}{
		{OpSetAllowAnyStatusCode, "SetAllowAnyStatusCode"},
		{OpSetBasePath, "SetBasePath"},
		{OpAddHeaderProperty, "AddHeaderProperty"},
		{OpAddPathProperty, "AddPathProperty"},
		{OpAddQueryProperty, "AddQueryProperty"},
		{OpAddHTTPRequestMessagePropertyProperty, "AddHttpRequestMessagePropertyProperty"},
		{OpAddMethodHeader, "AddMethodHeader"},
		{OpSetCancellationToken, "SetCancellationToken"},
		{OpAddHeaderParameter, "AddHeaderParameter"},
		{OpAddPathParameter, "AddPathParameter"},
		{OpAddQueryParameter, "AddQueryParameter"},
		{OpAddHTTPRequestMessagePropertyParameter, "AddHttpRequestMessagePropertyParameter"},
		{OpAddRawQueryStringParameter, "AddRawQueryStringParameter"},
		{OpAddQueryMapParameter, "AddQueryMapParameter"},
		{OpSetBodyParameter, "SetBodyParameter"},
		{OpKind(999), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestClassifyReturnType(t *testing.T) {
	tests := []struct {
		name      string
		ref       model.TypeRef
		wantShape ReturnShape
		wantOK    bool
	}{
		{"empty name is unit", model.TypeRef{Name: ""}, ReturnUnit, true},
		{"nullable unit is invalid", model.TypeRef{Name: "", Nullable: true}, ReturnInvalid, false},
		{"response message", model.TypeRef{Name: "request.ResponseMessage"}, ReturnResponseMessage, true},
		{"raw bytes", model.TypeRef{Name: "[]byte"}, ReturnRawBytes, true},
		{"raw string", model.TypeRef{Name: "string"}, ReturnRawString, true},
		{"raw stream", model.TypeRef{Name: "io.ReadCloser"}, ReturnRawStream, true},
		{"named type falls through to T", model.TypeRef{Name: "User"}, ReturnT, true},
		{"literal void is not special-cased", model.TypeRef{Name: "void"}, ReturnT, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, ok := ClassifyReturnType(tt.ref)
			assert.Equal(t, tt.wantShape, shape)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}
