package oauth2

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	xoauth2 "golang.org/x/oauth2"
)

// APIRequest collects the headers, body fields and query params of an
// outgoing provider API call.
type APIRequest struct {
	headers            http.Header
	fields             url.Values
	params             url.Values
	clientAuthInHeader bool
}

func NewAPIRequest() *APIRequest {
	return &APIRequest{
		headers: make(http.Header),
		fields:  make(url.Values),
		params:  make(url.Values),
	}
}

func (r *APIRequest) Header(key, value string) *APIRequest {
	r.headers.Set(key, value)
	return r
}

func (r *APIRequest) ClearHeader(key string) *APIRequest {
	r.headers.Del(key)
	return r
}

// Field sets a form body field.
func (r *APIRequest) Field(key, value string) *APIRequest {
	r.fields.Set(key, value)
	return r
}

func (r *APIRequest) ClearField(key string) *APIRequest {
	r.fields.Del(key)
	return r
}

// Param sets a query string parameter.
func (r *APIRequest) Param(key, value string) *APIRequest {
	r.params.Set(key, value)
	return r
}

// ClientAuthInHeader sends the client id and secret as an HTTP Basic
// Authorization header instead of body fields.
func (r *APIRequest) ClientAuthInHeader() *APIRequest {
	r.clientAuthInHeader = true
	return r
}

func (r *APIRequest) GetHeader(key string) string { return r.headers.Get(key) }
func (r *APIRequest) GetField(key string) string  { return r.fields.Get(key) }
func (r *APIRequest) GetParam(key string) string  { return r.params.Get(key) }
func (r *APIRequest) UsesClientAuthHeader() bool  { return r.clientAuthInHeader }

func (r *APIRequest) authStyle() xoauth2.AuthStyle {
	if r.clientAuthInHeader {
		return xoauth2.AuthStyleInHeader
	}
	return xoauth2.AuthStyleInParams
}

func (r *APIRequest) fieldOptions() []xoauth2.AuthCodeOption {
	opts := make([]xoauth2.AuthCodeOption, 0, len(r.fields))
	for k := range r.fields {
		opts = append(opts, xoauth2.SetAuthURLParam(k, r.fields.Get(k)))
	}
	return opts
}

func (r *APIRequest) withParams(rawURL string) (string, error) {
	if len(r.params) == 0 {
		return rawURL, nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	for k, v := range r.params {
		q[k] = v
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// build turns the request into an *http.Request. Fields are form encoded for
// any method other than GET and HEAD.
func (r *APIRequest) build(ctx context.Context, method, rawURL string, conf Config) (*http.Request, error) {
	target, err := r.withParams(rawURL)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	hasBody := len(r.fields) > 0 && method != http.MethodGet && method != http.MethodHead
	if hasBody {
		body = strings.NewReader(r.fields.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	if hasBody {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if r.clientAuthInHeader {
		req.SetBasicAuth(conf.ClientID, conf.ClientSecret)
	}
	for k, v := range r.headers {
		req.Header[k] = v
	}
	return req, nil
}

// httpClient returns a copy of base whose transport adds the request headers.
// It is handed to golang.org/x/oauth2 through the context so the token
// exchange carries them too.
func (r *APIRequest) httpClient(base *http.Client) *http.Client {
	if len(r.headers) == 0 {
		return base
	}
	cl := *base
	cl.Transport = &headerTransport{base: base.Transport, headers: r.headers.Clone()}
	return &cl
}

type headerTransport struct {
	base    http.RoundTripper
	headers http.Header
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		req.Header[k] = v
	}
	return base.RoundTrip(req)
}
