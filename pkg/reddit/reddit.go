// Package reddit implements Reddit login on top of the generic authorization
// code driver in pkg/oauth2.
package reddit

import (
	"context"
	"net/http"

	"github.com/stringfold/ally/pkg/logger"
	"github.com/stringfold/ally/pkg/oauth2"
)

const (
	ProviderName = "reddit"

	AuthorizeURL   = "https://www.reddit.com/api/v1/authorize"
	AccessTokenURL = "https://www.reddit.com/api/v1/access_token"
	RevokeTokenURL = "https://www.reddit.com/api/v1/revoke_token"
	UserInfoURL    = "https://oauth.reddit.com/api/v1/me"

	StateCookieName = "reddit_oauth_state"
)

// DefaultScopes are requested when the config names none.
var DefaultScopes = []string{"identity"}

// Options configures a Provider. Zero Endpoints fields fall back to the
// Reddit URLs.
type Options struct {
	Config      oauth2.Config
	Endpoints   oauth2.Endpoints
	StateCookie *oauth2.StateCookie
	HTTPClient  *http.Client
	Logger      logger.Logger
	Metrics     *oauth2.Metrics
	// UserAgent is sent on every API call. Reddit rate limits generic
	// agents hard.
	UserAgent string
}

// Provider is the long-lived Reddit driver factory. It is safe for concurrent
// use.
type Provider struct {
	client    *oauth2.Client
	userAgent string
}

func New(opts Options) (*Provider, error) {
	client, err := oauth2.NewClient(oauth2.Options{
		Name:      ProviderName,
		Config:    opts.Config,
		Endpoints: endpoints(opts.Endpoints),
		Params: oauth2.ParamNames{
			Code:            "code",
			Error:           "error",
			State:           "state",
			Scope:           "scope",
			ScopesSeparator: " ",
			StateCookie:     StateCookieName,
		},
		Hooks:            hooks{userAgent: opts.UserAgent},
		AccessDeniedCode: "access_denied",
		StateCookie:      opts.StateCookie,
		HTTPClient:       opts.HTTPClient,
		Logger:           opts.Logger,
		Metrics:          opts.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Provider{client: client, userAgent: opts.UserAgent}, nil
}

func endpoints(e oauth2.Endpoints) oauth2.Endpoints {
	if e.AuthorizeURL == "" {
		e.AuthorizeURL = AuthorizeURL
	}
	if e.AccessTokenURL == "" {
		e.AccessTokenURL = AccessTokenURL
	}
	if e.RevokeTokenURL == "" {
		e.RevokeTokenURL = RevokeTokenURL
	}
	if e.UserInfoURL == "" {
		e.UserInfoURL = UserInfoURL
	}
	return e
}

func (p *Provider) Client() *oauth2.Client { return p.client }

// Driver binds the provider to one request. The state cookie left by a
// previous redirect is read and cleared here.
func (p *Provider) Driver(w http.ResponseWriter, r *http.Request) *Driver {
	return &Driver{Driver: p.client.NewDriver(w, r), provider: p}
}

// UserFromToken looks up the user owning an access token obtained elsewhere.
func (p *Provider) UserFromToken(ctx context.Context, token string, fn func(*oauth2.APIRequest)) (*User, error) {
	user, err := p.userInfo(ctx, token, fn)
	if err != nil {
		return nil, err
	}
	user.Token = oauth2.BearerToken(token)
	return user, nil
}

// RevokeToken invalidates an access or refresh token. hint is
// "access_token", "refresh_token" or empty.
func (p *Provider) RevokeToken(ctx context.Context, token, hint string) error {
	req := oauth2.NewAPIRequest().ClientAuthInHeader().Field("token", token)
	setUserAgent(req, p.userAgent)
	if hint != "" {
		req.Field("token_type_hint", hint)
	}
	_, err := p.client.Do(ctx, "revoke_token", http.MethodPost, p.client.Endpoints().RevokeTokenURL, req)
	return err
}

func (p *Provider) userInfo(ctx context.Context, token string, fn func(*oauth2.APIRequest)) (*User, error) {
	req := oauth2.NewAPIRequest().
		Header("Authorization", "bearer "+token).
		Header("Accept", "application/json")
	setUserAgent(req, p.userAgent)
	if fn != nil {
		fn(req)
	}

	body, err := p.client.Do(ctx, "user_info", http.MethodGet, p.client.UserInfoURL(), req)
	if err != nil {
		return nil, err
	}
	return normalizeUser(body)
}

func setUserAgent(req *oauth2.APIRequest, ua string) {
	if ua != "" {
		req.Header("User-Agent", ua)
	}
}

type hooks struct {
	userAgent string
}

// ConfigureRedirectRequest asks for the configured scopes and a one-hour
// token without a refresh token.
func (hooks) ConfigureRedirectRequest(d *oauth2.Driver, req *oauth2.RedirectRequest) {
	scopes := d.Config().Scopes
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}
	req.Scopes(scopes...)

	req.Param("response_type", "code")
	req.Param("duration", "temporary")
}

// ConfigureAccessTokenRequest sends the client credentials as Basic auth and
// echoes the state when the request is stateful.
func (h hooks) ConfigureAccessTokenRequest(d *oauth2.Driver, req *oauth2.APIRequest) {
	req.ClientAuthInHeader()
	setUserAgent(req, h.userAgent)
	if !d.IsStateless() {
		req.Field("state", d.StateCookieValue())
	}
}

// Driver is the request-scoped Reddit driver. Callback checks (AccessDenied,
// StateMisMatch, HasError, GetError) come from the embedded oauth2.Driver.
type Driver struct {
	*oauth2.Driver
	provider *Provider
}

// Stateless disables the state cookie for this request.
func (d *Driver) Stateless() *Driver {
	d.Driver.Stateless()
	return d
}

// User exchanges the callback code and fetches the authorized user. fn is
// applied to both the token and the profile request.
func (d *Driver) User(ctx context.Context, fn func(*oauth2.APIRequest)) (*User, error) {
	token, err := d.AccessToken(ctx, fn)
	if err != nil {
		return nil, err
	}

	user, err := d.provider.userInfo(ctx, token.Token, fn)
	if err != nil {
		return nil, err
	}
	user.Token = *token
	return user, nil
}

func (d *Driver) UserFromToken(ctx context.Context, token string, fn func(*oauth2.APIRequest)) (*User, error) {
	return d.provider.UserFromToken(ctx, token, fn)
}
