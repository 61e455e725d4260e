package oauth2

import (
	"strings"

	xoauth2 "golang.org/x/oauth2"
)

// RedirectRequest builds the authorize URL the user agent is sent to.
type RedirectRequest struct {
	conf       *xoauth2.Config
	scopeParam string
	separator  string
	scopes     []string
	params     map[string]string
	order      []string
}

func newRedirectRequest(conf *xoauth2.Config, params ParamNames) *RedirectRequest {
	return &RedirectRequest{
		conf:       conf,
		scopeParam: params.Scope,
		separator:  params.ScopesSeparator,
		params:     make(map[string]string),
	}
}

// Scopes replaces the requested scopes.
func (r *RedirectRequest) Scopes(scopes ...string) *RedirectRequest {
	r.scopes = append([]string(nil), scopes...)
	return r
}

// MergeScopes appends scopes to the ones already requested.
func (r *RedirectRequest) MergeScopes(scopes ...string) *RedirectRequest {
	r.scopes = append(r.scopes, scopes...)
	return r
}

func (r *RedirectRequest) ClearScopes() *RedirectRequest {
	r.scopes = nil
	return r
}

// GetScopes returns a copy of the requested scopes.
func (r *RedirectRequest) GetScopes() []string {
	return append([]string(nil), r.scopes...)
}

// Param sets a query parameter on the authorize URL.
func (r *RedirectRequest) Param(key, value string) *RedirectRequest {
	if _, ok := r.params[key]; !ok {
		r.order = append(r.order, key)
	}
	r.params[key] = value
	return r
}

func (r *RedirectRequest) ClearParam(key string) *RedirectRequest {
	if _, ok := r.params[key]; !ok {
		return r
	}
	delete(r.params, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return r
}

// URL renders the authorize URL.
func (r *RedirectRequest) URL() string {
	opts := make([]xoauth2.AuthCodeOption, 0, len(r.order)+1)
	if len(r.scopes) > 0 {
		opts = append(opts, xoauth2.SetAuthURLParam(r.scopeParam, strings.Join(r.scopes, r.separator)))
	}
	for _, k := range r.order {
		opts = append(opts, xoauth2.SetAuthURLParam(k, r.params[k]))
	}
	// state is carried as a regular param so providers can rename it
	return r.conf.AuthCodeURL("", opts...)
}
