package requesterresty

import "resty.dev/v3"

// applyHeaders applies global headers first, then the RequestDescription's
// per-request headers, which override a global header carrying the same
// key — the precedence §6 implies for any Requester that supports both a
// client-wide and a per-call header set. Empty values are dropped so a
// caller can't accidentally send a blank header.
func (c *Client) applyHeaders(req *resty.Request, requestHeaders map[string]string) {
	for k, v := range c.globalHeaders {
		if v != "" {
			req.SetHeader(k, v)
		}
	}
	for k, v := range requestHeaders {
		if v != "" {
			req.SetHeader(k, v)
		}
	}
}
