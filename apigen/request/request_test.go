package request

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequestDescription(t *testing.T) {
	desc := NewRequestDescription("GET", "/users/{id}", "IUsersApi.GetUser")
	assert.Equal(t, "GET", desc.Verb)
	assert.Equal(t, "/users/{id}", desc.PathTemplate)
	assert.Equal(t, "IUsersApi.GetUser", desc.MethodInfo)
	assert.NotNil(t, desc.MessageProperties)
	assert.Empty(t, desc.MessageProperties)
}

type fakeRequester struct {
	msg ResponseMessage
	err error

	lastDesc *RequestDescription
}

func (f *fakeRequester) RequestVoid(ctx context.Context, desc *RequestDescription) error {
	f.lastDesc = desc
	return f.err
}

func (f *fakeRequester) RequestWithResponseMessage(ctx context.Context, desc *RequestDescription) (ResponseMessage, error) {
	f.lastDesc = desc
	return f.msg, f.err
}

func (f *fakeRequester) RequestRawBytes(ctx context.Context, desc *RequestDescription) ([]byte, error) {
	return f.msg.Body, f.err
}

func (f *fakeRequester) RequestRawString(ctx context.Context, desc *RequestDescription) (string, error) {
	return string(f.msg.Body), f.err
}

func (f *fakeRequester) RequestRawStream(ctx context.Context, desc *RequestDescription) (io.ReadCloser, error) {
	return nil, f.err
}

func (f *fakeRequester) Dispose() error { return nil }

type widget struct {
	Name string `json:"name"`
}

func TestRequestInto_Success(t *testing.T) {
	r := &fakeRequester{msg: ResponseMessage{StatusCode: 200, Body: []byte(`{"name":"sprocket"}`)}}
	desc := NewRequestDescription("GET", "/widgets/1", "IWidgetsApi.Get")

	var result widget
	msg, err := RequestInto(context.Background(), r, desc, json.Unmarshal, &result)

	require.NoError(t, err)
	assert.Equal(t, 200, msg.StatusCode)
	assert.Equal(t, "sprocket", result.Name)
	assert.Same(t, desc, r.lastDesc)
}

func TestRequestInto_RequesterError(t *testing.T) {
	wantErr := errors.New("boom")
	r := &fakeRequester{err: wantErr}
	desc := NewRequestDescription("GET", "/widgets/1", "IWidgetsApi.Get")

	var result widget
	_, err := RequestInto(context.Background(), r, desc, json.Unmarshal, &result)
	assert.ErrorIs(t, err, wantErr)
}

func TestRequestInto_NilIntoSkipsDeserialization(t *testing.T) {
	r := &fakeRequester{msg: ResponseMessage{StatusCode: 204}}
	desc := NewRequestDescription("DELETE", "/widgets/1", "IWidgetsApi.Delete")

	var result widget
	msg, err := RequestInto[widget](context.Background(), r, desc, nil, &result)
	require.NoError(t, err)
	assert.Equal(t, 204, msg.StatusCode)
	assert.Equal(t, widget{}, result)
}

func TestRequestInto_DeserializationError(t *testing.T) {
	r := &fakeRequester{msg: ResponseMessage{StatusCode: 200, Body: []byte(`not json`)}}
	desc := NewRequestDescription("GET", "/widgets/1", "IWidgetsApi.Get")

	var result widget
	_, err := RequestInto(context.Background(), r, desc, json.Unmarshal, &result)
	assert.Error(t, err)
}

func TestRequester_InterfaceSatisfiedByFake(t *testing.T) {
	var _ Requester = (*fakeRequester)(nil)
}
