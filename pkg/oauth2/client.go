package oauth2

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/stringfold/ally/pkg/logger"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	xoauth2 "golang.org/x/oauth2"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	maxResponseBytes   = 1 << 20
)

var ErrStateCookieNotConfigured = errors.New("state cookie is not configured")

// Options configures a Client.
type Options struct {
	// Name identifies the provider in logs and metrics, e.g. "reddit".
	Name      string
	Config    Config
	Endpoints Endpoints
	// Params falls back to DefaultParamNames field by field.
	Params ParamNames
	Hooks  Hooks
	// AccessDeniedCode is the error code sent when the user rejects the
	// consent screen. Defaults to "access_denied".
	AccessDeniedCode string
	// StateCookie is required for stateful drivers.
	StateCookie *StateCookie
	HTTPClient  *http.Client
	Logger      logger.Logger
	Metrics     *Metrics
}

// Client holds everything about a provider that outlives a single request.
// It is safe for concurrent use; per-request state lives in Driver.
type Client struct {
	name             string
	config           Config
	endpoints        Endpoints
	params           ParamNames
	hooks            Hooks
	accessDeniedCode string
	cookies          *StateCookie
	httpClient       *http.Client
	logger           logger.Logger
	metrics          *Metrics
}

func NewClient(opts Options) (*Client, error) {
	if opts.Name == "" {
		return nil, ErrMissingProvider
	}
	if opts.Endpoints.AuthorizeURL == "" || opts.Endpoints.AccessTokenURL == "" {
		return nil, fmt.Errorf("%w: authorize and access token urls", ErrMissingEndpoint)
	}
	if opts.Config.ClientID == "" || opts.Config.ClientSecret == "" {
		return nil, ErrMissingClient
	}

	params := mergeParams(opts.Params, DefaultParamNames())

	hooks := opts.Hooks
	if hooks == nil {
		hooks = noopHooks{}
	}

	accessDenied := opts.AccessDeniedCode
	if accessDenied == "" {
		accessDenied = "access_denied"
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   defaultHTTPTimeout,
		}
	}

	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	cfg := opts.Config
	cfg.Scopes = append([]string(nil), cfg.Scopes...)

	return &Client{
		name:             opts.Name,
		config:           cfg,
		endpoints:        opts.Endpoints,
		params:           params,
		hooks:            hooks,
		accessDeniedCode: accessDenied,
		cookies:          opts.StateCookie,
		httpClient:       httpClient,
		logger:           log.With(logger.Field{Key: "provider", Value: opts.Name}),
		metrics:          opts.Metrics,
	}, nil
}

func mergeParams(p, def ParamNames) ParamNames {
	if p.Code == "" {
		p.Code = def.Code
	}
	if p.Error == "" {
		p.Error = def.Error
	}
	if p.State == "" {
		p.State = def.State
	}
	if p.Scope == "" {
		p.Scope = def.Scope
	}
	if p.ScopesSeparator == "" {
		p.ScopesSeparator = def.ScopesSeparator
	}
	if p.StateCookie == "" {
		p.StateCookie = def.StateCookie
	}
	return p
}

func (c *Client) Name() string { return c.name }

// Config returns a copy of the provider configuration.
func (c *Client) Config() Config {
	cfg := c.config
	cfg.Scopes = append([]string(nil), c.config.Scopes...)
	return cfg
}

func (c *Client) Endpoints() Endpoints     { return c.endpoints }
func (c *Client) Params() ParamNames       { return c.params }
func (c *Client) Logger() logger.Logger    { return c.logger }
func (c *Client) Metrics() *Metrics        { return c.metrics }
func (c *Client) HTTPClient() *http.Client { return c.httpClient }

// UserInfoURL is the configured override, or the provider default.
func (c *Client) UserInfoURL() string {
	if c.config.UserInfoURL != "" {
		return c.config.UserInfoURL
	}
	return c.endpoints.UserInfoURL
}

// NewDriver returns a driver bound to one callback or redirect request.
func (c *Client) NewDriver(w http.ResponseWriter, r *http.Request) *Driver {
	d := &Driver{client: c, w: w, r: r}
	d.loadState()
	return d
}

func (c *Client) oauthConfig(style xoauth2.AuthStyle, tokenURL string) *xoauth2.Config {
	return &xoauth2.Config{
		ClientID:     c.config.ClientID,
		ClientSecret: c.config.ClientSecret,
		RedirectURL:  c.config.CallbackURL,
		Endpoint: xoauth2.Endpoint{
			AuthURL:   c.endpoints.AuthorizeURL,
			TokenURL:  tokenURL,
			AuthStyle: style,
		},
	}
}

// exchange trades an authorization code for a token. Transport errors are
// returned unchanged; provider rejections come back as *xoauth2.RetrieveError.
func (c *Client) exchange(ctx context.Context, code string, req *APIRequest) (*Token, error) {
	tokenURL, err := req.withParams(c.endpoints.AccessTokenURL)
	if err != nil {
		return nil, fmt.Errorf("build access token url: %w", err)
	}
	conf := c.oauthConfig(req.authStyle(), tokenURL)
	ctx = context.WithValue(ctx, xoauth2.HTTPClient, req.httpClient(c.httpClient))

	start := time.Now()
	tok, err := conf.Exchange(ctx, code, req.fieldOptions()...)
	if err != nil {
		status := 0
		var rErr *xoauth2.RetrieveError
		if errors.As(err, &rErr) && rErr.Response != nil {
			status = rErr.Response.StatusCode
		}
		c.metrics.ObserveRequest(c.name, "access_token", status, time.Since(start))
		c.logger.Warn(ctx, "access token exchange failed",
			logger.Field{Key: "status", Value: status},
			logger.Field{Key: "error", Value: err.Error()},
		)
		return nil, err
	}
	c.metrics.ObserveRequest(c.name, "access_token", http.StatusOK, time.Since(start))

	return newToken(tok, c.params.ScopesSeparator), nil
}

// Do sends an API request and returns the body of a 2xx reply. Other replies
// become *ResponseError. op names the call in logs and metrics.
func (c *Client) Do(ctx context.Context, op, method, rawURL string, req *APIRequest) ([]byte, error) {
	if req == nil {
		req = NewAPIRequest()
	}
	httpReq, err := req.build(ctx, method, rawURL, c.config)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", op, err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.ObserveRequest(c.name, op, 0, time.Since(start))
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	c.metrics.ObserveRequest(c.name, op, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn(ctx, "provider request failed",
			logger.Field{Key: "operation", Value: op},
			logger.Field{Key: "status", Value: resp.StatusCode},
		)
		return nil, &ResponseError{Operation: op, StatusCode: resp.StatusCode, Body: body}
	}

	return body, nil
}

type noopHooks struct{}

func (noopHooks) ConfigureRedirectRequest(*Driver, *RedirectRequest) {}
func (noopHooks) ConfigureAccessTokenRequest(*Driver, *APIRequest)   {}
