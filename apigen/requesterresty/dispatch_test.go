package requesterresty

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/deploymenttheory/go-apigen/apigen/request"
	"github.com/deploymenttheory/go-apigen/apigen/serialize"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type widget struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

const testBaseURL = "https://api.example.test"

// newMockClient builds a Client whose underlying *http.Client is
// intercepted by httpmock, the teacher's pattern for exercising a
// service's HTTP calls without a live server
// (workbrew/services/brewtaps/crud_test.go's setupMockClient).
func newMockClient(t *testing.T) *Client {
	t.Helper()
	c, err := NewClient(testBaseURL, NewBearerTokenProvider("test-token"), WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	httpmock.ActivateNonDefault(c.GetHTTPClient().Client())
	t.Cleanup(httpmock.DeactivateAndReset)

	return c
}

func TestRequestWithResponseMessage_Success(t *testing.T) {
	c := newMockClient(t)

	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/widgets/42",
		func(r *http.Request) (*http.Response, error) {
			assert.Equal(t, "10", r.URL.Query().Get("limit"))
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			return httpmock.NewJsonResponse(http.StatusOK, widget{ID: "42", Name: "sprocket"})
		})

	desc := request.NewRequestDescription(http.MethodGet, "/widgets/{id}", "Widgets.Get")
	desc.PathSubstitutions = append(desc.PathSubstitutions, request.PathSubstitution{Key: "id", Value: "42"})
	desc.Query = append(desc.Query, request.QueryEntry{Key: "limit", Value: 10})

	msg, err := c.RequestWithResponseMessage(context.Background(), desc)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, msg.StatusCode)

	var got widget
	require.NoError(t, json.Unmarshal(msg.Body, &got))
	assert.Equal(t, widget{ID: "42", Name: "sprocket"}, got)
}

func TestRequestVoid_ErrorStatus(t *testing.T) {
	c := newMockClient(t)

	httpmock.RegisterResponder(http.MethodDelete, testBaseURL+"/widgets/1",
		func(r *http.Request) (*http.Response, error) {
			return httpmock.NewJsonResponse(http.StatusNotFound, map[string]any{"message": "widget not found"})
		})

	desc := request.NewRequestDescription(http.MethodDelete, "/widgets/1", "Widgets.Delete")

	err := c.RequestVoid(context.Background(), desc)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestRequestVoid_AllowAnyStatusCode(t *testing.T) {
	c := newMockClient(t)

	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/widgets/1",
		httpmock.NewStringResponder(http.StatusNotFound, ""))

	desc := request.NewRequestDescription(http.MethodGet, "/widgets/1", "Widgets.Get")
	desc.AllowAnyStatusCode = true

	require.NoError(t, c.RequestVoid(context.Background(), desc))
}

func TestRequestRawBytesAndString(t *testing.T) {
	c := newMockClient(t)

	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/download",
		httpmock.NewStringResponder(http.StatusOK, "raw payload"))

	desc := request.NewRequestDescription(http.MethodGet, "/download", "Widgets.Download")

	data, err := c.RequestRawBytes(context.Background(), desc)
	require.NoError(t, err)
	assert.Equal(t, "raw payload", string(data))

	str, err := c.RequestRawString(context.Background(), desc)
	require.NoError(t, err)
	assert.Equal(t, "raw payload", str)
}

func TestRequestRawStream(t *testing.T) {
	c := newMockClient(t)

	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/stream",
		httpmock.NewStringResponder(http.StatusOK, "streamed"))

	desc := request.NewRequestDescription(http.MethodGet, "/stream", "Widgets.Stream")

	stream, err := c.RequestRawStream(context.Background(), desc)
	require.NoError(t, err)
	defer stream.Close()

	data, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, "streamed", string(data))
}

func TestDo_BodySerialization(t *testing.T) {
	c := newMockClient(t)

	httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/widgets",
		func(r *http.Request) (*http.Response, error) {
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			var got widget
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			assert.Equal(t, "sprocket", got.Name)
			return httpmock.NewStringResponse(http.StatusCreated, ""), nil
		})

	desc := request.NewRequestDescription(http.MethodPost, "/widgets", "Widgets.Create")
	desc.Body = &request.Body{Value: widget{Name: "sprocket"}, Serialization: serialize.BodySerialize}

	require.NoError(t, c.RequestVoid(context.Background(), desc))
}

func TestApplyHeaders_PerRequestOverridesGlobal(t *testing.T) {
	c, err := NewClient(testBaseURL, NoAuth{}, WithLogger(zaptest.NewLogger(t)), WithGlobalHeader("X-Custom", "global"))
	require.NoError(t, err)
	httpmock.ActivateNonDefault(c.GetHTTPClient().Client())
	t.Cleanup(httpmock.DeactivateAndReset)

	var gotHeader string
	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/widgets",
		func(r *http.Request) (*http.Response, error) {
			gotHeader = r.Header.Get("X-Custom")
			return httpmock.NewStringResponse(http.StatusOK, ""), nil
		})

	desc := request.NewRequestDescription(http.MethodGet, "/widgets", "Widgets.List")
	desc.Headers = append(desc.Headers, request.HeaderEntry{Name: "X-Custom", Value: "per-request"})

	require.NoError(t, c.RequestVoid(context.Background(), desc))
	assert.Equal(t, "per-request", gotHeader)
}
