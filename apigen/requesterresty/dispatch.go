package requesterresty

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"

	"github.com/deploymenttheory/go-apigen/apigen/request"
	"github.com/deploymenttheory/go-apigen/apigen/serialize"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"resty.dev/v3"
)

var _ request.Requester = (*Client)(nil)

var placeholderPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// substitutePlaceholders fills every `{key}` occurrence in template from
// values, whose entries are already rendered; a placeholder with no entry
// is left as is. It is dispatch.go's own tiny
// copy of apigen/validate's placeholder-matching regex — deliberately
// independent, since a Requester is a leaf collaborator that should not
// import the generator core's validation package.
func substitutePlaceholders(template string, values map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		key := match[1 : len(match)-1]
		if v, ok := values[key]; ok {
			return v
		}
		return match
	})
}

// buildPath resolves desc's base path and path template into one request
// path, substituting every path parameter in turn.
func (c *Client) buildPath(ctx context.Context, desc *request.RequestDescription) (string, error) {
	substitutions := make(map[string]string, len(desc.PathSubstitutions))
	for _, sub := range desc.PathSubstitutions {
		rendered, err := c.renderPathValue(sub)
		if err != nil {
			return "", fmt.Errorf("render path parameter %q: %w", sub.Key, err)
		}
		substitutions[sub.Key] = rendered
	}

	full := desc.BasePathTemplate + desc.PathTemplate
	return substitutePlaceholders(full, substitutions), nil
}

func (c *Client) renderPathValue(sub request.PathSubstitution) (string, error) {
	switch sub.Serialization {
	case serialize.PathSerialized:
		if c.pathParamSerializer == nil {
			return "", fmt.Errorf("no PathParamSerializer configured")
		}
		return c.pathParamSerializer.SerializePathParam(sub.Value)
	default:
		return fmt.Sprint(sub.Value), nil
	}
}

func (c *Client) renderQueryValue(entry request.QueryEntry) (string, error) {
	switch entry.Serialization {
	case serialize.QuerySerialized:
		if c.queryParamSerializer == nil {
			return "", fmt.Errorf("no QueryParamSerializer configured")
		}
		return c.queryParamSerializer.SerializeQueryParam(entry.Value)
	default:
		return fmt.Sprint(entry.Value), nil
	}
}

// newRequest builds a resty.Request from desc, in this order: the
// rate-limiter wait (if configured), path, headers, the correlation id
// header (if configured), query, message properties, body.
func (c *Client) newRequest(ctx context.Context, desc *request.RequestDescription) (*resty.Request, string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, "", fmt.Errorf("rate limit wait: %w", err)
		}
	}

	path, err := c.buildPath(ctx, desc)
	if err != nil {
		return nil, "", err
	}

	req := c.client.R().SetContext(ctx)

	headers := make(map[string]string, len(desc.Headers))
	for _, h := range desc.Headers {
		headers[h.Name] = h.Value
	}
	c.applyHeaders(req, headers)

	if c.correlationHeader != "" {
		req.SetHeader(c.correlationHeader, uuid.NewString())
	}

	for _, q := range desc.Query {
		value, err := c.renderQueryValue(q)
		if err != nil {
			return nil, "", fmt.Errorf("render query parameter %q: %w", q.Key, err)
		}
		if value != "" {
			req.SetQueryParam(q.Key, value)
		}
	}

	for key, value := range desc.MessageProperties {
		req.SetHeader(key, fmt.Sprint(value))
	}

	if desc.Body != nil {
		switch desc.Body.Serialization {
		case serialize.BodyRaw:
			req.SetBody(desc.Body.Value)
		default:
			if c.bodySerializer == nil {
				return nil, "", fmt.Errorf("no BodySerializer configured")
			}
			data, contentType, err := c.bodySerializer.SerializeBody(desc.Body.Value)
			if err != nil {
				return nil, "", fmt.Errorf("serialize body: %w", err)
			}
			req.SetHeader("Content-Type", contentType)
			req.SetBody(data)
		}
	}

	return req, path, nil
}

// Do executes desc and returns the raw resty.Response, applying the
// AllowAnyStatusCode override (§4.5 step 2): when false, a response
// resty marked as an error is converted into an *APIError instead of
// being returned alongside a nil error.
func (c *Client) Do(ctx context.Context, desc *request.RequestDescription) (*resty.Response, error) {
	req, path, err := c.newRequest(ctx, desc)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("dispatching request",
		zap.String("method", desc.Verb),
		zap.String("path", path),
		zap.String("method_info", desc.MethodInfo))

	var resp *resty.Response
	switch desc.Verb {
	case http.MethodGet:
		resp, err = req.Get(path)
	case http.MethodPost:
		resp, err = req.Post(path)
	case http.MethodPut:
		resp, err = req.Put(path)
	case http.MethodPatch:
		resp, err = req.Patch(path)
	case http.MethodDelete:
		resp, err = req.Delete(path)
	default:
		resp, err = req.Execute(desc.Verb, path)
	}
	if err != nil {
		return resp, fmt.Errorf("dispatch %s %s: %w", desc.Verb, path, err)
	}

	if !desc.AllowAnyStatusCode && resp.IsError() {
		return resp, ParseErrorResponse([]byte(resp.String()), resp.StatusCode(), resp.Status(), desc.Verb, path, c.logger)
	}

	return resp, nil
}

// RequestVoid performs the call and discards the body.
func (c *Client) RequestVoid(ctx context.Context, desc *request.RequestDescription) error {
	_, err := c.Do(ctx, desc)
	return err
}

// RequestWithResponseMessage performs the call and returns the raw
// response, without deserializing the body.
func (c *Client) RequestWithResponseMessage(ctx context.Context, desc *request.RequestDescription) (request.ResponseMessage, error) {
	resp, err := c.Do(ctx, desc)
	if resp == nil {
		return request.ResponseMessage{}, err
	}
	msg := request.ResponseMessage{
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Header:     resp.Header(),
		Body:       []byte(resp.String()),
	}
	return msg, err
}

// RequestRawBytes performs the call and returns the body bytes verbatim.
func (c *Client) RequestRawBytes(ctx context.Context, desc *request.RequestDescription) ([]byte, error) {
	resp, err := c.Do(ctx, desc)
	if resp == nil {
		return nil, err
	}
	return []byte(resp.String()), err
}

// RequestRawString performs the call and returns the body decoded as a
// string.
func (c *Client) RequestRawString(ctx context.Context, desc *request.RequestDescription) (string, error) {
	resp, err := c.Do(ctx, desc)
	if resp == nil {
		return "", err
	}
	return resp.String(), err
}

// RequestRawStream performs the call and returns the body as an open
// stream the caller must close. resty buffers the full response into
// memory by default, so this wraps the already-read bytes in a
// io.NopCloser rather than a genuine streaming read — documented as a
// known limitation rather than silently pretending otherwise.
func (c *Client) RequestRawStream(ctx context.Context, desc *request.RequestDescription) (io.ReadCloser, error) {
	resp, err := c.Do(ctx, desc)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader([]byte(resp.String()))), nil
}

// Dispose releases the underlying HTTP client's idle connections.
func (c *Client) Dispose() error {
	if httpClient := c.client.Client(); httpClient != nil {
		httpClient.CloseIdleConnections()
	}
	return nil
}
