package oauth2

import (
	"context"
	"crypto/subtle"
	"net/http"

	xoauth2 "golang.org/x/oauth2"
)

// unknownError is reported when the callback carries neither an error nor a
// code.
const unknownError = "unknown_error"

// Driver runs the authorization code flow for a single HTTP request. Build a
// new one per request with Client.NewDriver.
type Driver struct {
	client           *Client
	w                http.ResponseWriter
	r                *http.Request
	stateless        bool
	stateCookieValue string
}

// loadState reads the state set by the redirect request and clears the
// cookie right away. A state is valid for one callback only.
func (d *Driver) loadState() {
	if d.stateless || d.client.cookies == nil {
		return
	}
	name := d.client.params.StateCookie
	if _, err := d.r.Cookie(name); err != nil {
		return
	}
	d.stateCookieValue = d.client.cookies.Read(d.r, name)
	d.client.cookies.Clear(d.w, name)
}

// Stateless disables the state cookie for this request.
func (d *Driver) Stateless() *Driver {
	d.stateless = true
	return d
}

func (d *Driver) IsStateless() bool { return d.stateless }

// StateCookieValue is the state read from the cookie when the driver was
// built.
func (d *Driver) StateCookieValue() string { return d.stateCookieValue }

func (d *Driver) Client() *Client { return d.client }
func (d *Driver) Config() Config  { return d.client.Config() }

// RedirectURL builds the authorize URL. In stateful mode it also stores a
// fresh state in the cookie.
func (d *Driver) RedirectURL(fn func(*RedirectRequest)) (string, error) {
	c := d.client
	req := newRedirectRequest(c.oauthConfig(xoauth2.AuthStyleInParams, c.endpoints.AccessTokenURL), c.params)
	c.hooks.ConfigureRedirectRequest(d, req)
	if fn != nil {
		fn(req)
	}

	if !d.stateless {
		state, err := d.persistState()
		if err != nil {
			return "", err
		}
		req.Param(c.params.State, state)
	}

	c.metrics.RecordRedirect(c.name)
	return req.URL(), nil
}

// Redirect replies with a 302 to the authorize URL.
func (d *Driver) Redirect(fn func(*RedirectRequest)) error {
	target, err := d.RedirectURL(fn)
	if err != nil {
		return err
	}
	http.Redirect(d.w, d.r, target, http.StatusFound)
	return nil
}

func (d *Driver) persistState() (string, error) {
	if d.client.cookies == nil {
		return "", ErrStateCookieNotConfigured
	}
	state, err := NewState()
	if err != nil {
		return "", err
	}
	if err := d.client.cookies.Write(d.w, d.client.params.StateCookie, state); err != nil {
		return "", err
	}
	return state, nil
}

func (d *Driver) input(name string) string {
	return d.r.FormValue(name)
}

// GetCode returns the authorization code from the callback.
func (d *Driver) GetCode() string {
	return d.input(d.client.params.Code)
}

// GetState returns the state echoed back by the provider.
func (d *Driver) GetState() string {
	return d.input(d.client.params.State)
}

// GetError returns the provider error code, "unknown_error" when the
// callback has neither an error nor a code, and "" otherwise.
func (d *Driver) GetError() string {
	if e := d.input(d.client.params.Error); e != "" {
		return e
	}
	if d.GetCode() == "" {
		return unknownError
	}
	return ""
}

func (d *Driver) HasError() bool {
	return d.GetError() != ""
}

// AccessDenied reports whether the user rejected the consent screen.
func (d *Driver) AccessDenied() bool {
	err := d.GetError()
	if err == "" {
		return false
	}
	return err == d.client.accessDeniedCode
}

// StateMisMatch reports whether the echoed state differs from the one stored
// in the cookie. A missing cookie counts as a mismatch.
func (d *Driver) StateMisMatch() bool {
	if d.stateless {
		return false
	}
	if d.stateCookieValue == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(d.stateCookieValue), []byte(d.GetState())) != 1
}

// Outcome classifies the callback in the order callers are expected to check
// it.
func (d *Driver) Outcome() string {
	switch {
	case d.AccessDenied():
		return OutcomeAccessDenied
	case d.StateMisMatch():
		return OutcomeStateMisMatch
	case d.HasError():
		return OutcomeError
	}
	return OutcomeOK
}

// AccessToken exchanges the callback code for an access token. It refuses to
// call the provider when the callback reports access denial, a state mismatch
// or any other error.
func (d *Driver) AccessToken(ctx context.Context, fn func(*APIRequest)) (*Token, error) {
	switch d.Outcome() {
	case OutcomeAccessDenied:
		return nil, ErrAccessDenied
	case OutcomeStateMisMatch:
		return nil, ErrStateMisMatch
	case OutcomeError:
		return nil, &CallbackError{Code: d.GetError()}
	}

	req := NewAPIRequest()
	d.client.hooks.ConfigureAccessTokenRequest(d, req)
	if fn != nil {
		fn(req)
	}

	return d.client.exchange(ctx, d.GetCode(), req)
}
