package oauth2

// Config holds the application credentials for one provider. It is set once
// when the provider is built and never mutated afterwards.
type Config struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
	// UserInfoURL overrides the provider's default profile endpoint.
	UserInfoURL string
	Scopes      []string
}

// Endpoints are the fixed provider URLs.
type Endpoints struct {
	AuthorizeURL   string
	AccessTokenURL string
	RevokeTokenURL string
	UserInfoURL    string
}

// ParamNames names the query parameters and cookie a provider uses during the
// authorization code flow.
type ParamNames struct {
	Code            string
	Error           string
	State           string
	Scope           string
	ScopesSeparator string
	StateCookie     string
}

// DefaultParamNames are the RFC 6749 parameter names.
func DefaultParamNames() ParamNames {
	return ParamNames{
		Code:            "code",
		Error:           "error",
		State:           "state",
		Scope:           "scope",
		ScopesSeparator: " ",
		StateCookie:     "oauth_state",
	}
}

// Hooks let a provider shape the outgoing authorize redirect and the access
// token request. Both run before any caller supplied callback.
type Hooks interface {
	ConfigureRedirectRequest(d *Driver, req *RedirectRequest)
	ConfigureAccessTokenRequest(d *Driver, req *APIRequest)
}
