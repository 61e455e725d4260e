package oauth2

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

var testHashKey = []byte("0123456789abcdef0123456789abcdef")

type testHooks struct{}

func (testHooks) ConfigureRedirectRequest(d *Driver, req *RedirectRequest) {
	req.Scopes("identity")
	req.Param("duration", "temporary")
}

func (testHooks) ConfigureAccessTokenRequest(d *Driver, req *APIRequest) {
	req.ClientAuthInHeader()
	if !d.IsStateless() {
		req.Field("state", d.StateCookieValue())
	}
}

func newTestCookie(t *testing.T) *StateCookie {
	t.Helper()
	sc, err := NewStateCookie(StateCookieOptions{HashKey: testHashKey})
	require.NoError(t, err)
	return sc
}

func newTestClient(t *testing.T, tokenURL string) *Client {
	t.Helper()
	c, err := NewClient(Options{
		Name: "test",
		Config: Config{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			CallbackURL:  "http://localhost:3333/test/callback",
		},
		Endpoints: Endpoints{
			AuthorizeURL:   "https://provider.example/authorize",
			AccessTokenURL: tokenURL,
			UserInfoURL:    "https://provider.example/me",
		},
		Params:      ParamNames{StateCookie: "test_oauth_state"},
		Hooks:       testHooks{},
		StateCookie: newTestCookie(t),
		HTTPClient:  http.DefaultClient,
	})
	require.NoError(t, err)
	return c
}

// issueState runs a redirect and returns the state and the cookie carrying
// it.
func issueState(t *testing.T, c *Client) (string, *http.Cookie) {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/redirect", nil)

	require.NoError(t, c.NewDriver(w, r).Redirect(nil))

	loc, err := w.Result().Location()
	require.NoError(t, err)

	var cookie *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "test_oauth_state" {
			cookie = ck
		}
	}
	require.NotNil(t, cookie, "state cookie not set")
	return loc.Query().Get("state"), cookie
}

func callbackRequest(query string, cookie *http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/callback?"+query, nil)
	if cookie != nil {
		r.AddCookie(cookie)
	}
	return r
}
