package oauth2

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIRequest_Builders(t *testing.T) {
	req := NewAPIRequest().
		Header("Accept", "application/json").
		Field("token", "abc").
		Param("raw_json", "1").
		ClientAuthInHeader()

	assert.Equal(t, "application/json", req.GetHeader("Accept"))
	assert.Equal(t, "abc", req.GetField("token"))
	assert.Equal(t, "1", req.GetParam("raw_json"))
	assert.True(t, req.UsesClientAuthHeader())

	req.ClearHeader("Accept").ClearField("token")
	assert.Empty(t, req.GetHeader("Accept"))
	assert.Empty(t, req.GetField("token"))
}

func TestClient_Do_Get(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		_, _ = w.Write([]byte(`{"id":"1"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, "https://provider.example/token")
	req := NewAPIRequest().
		Header("Authorization", "bearer tok").
		Param("raw_json", "1").
		Field("ignored", "on-get")

	body, err := c.Do(context.Background(), "user_info", http.MethodGet, srv.URL+"/me?a=b", req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1"}`, string(body))

	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "bearer tok", got.Header.Get("Authorization"))
	assert.Equal(t, "1", got.URL.Query().Get("raw_json"))
	assert.Equal(t, "b", got.URL.Query().Get("a"))
	assert.Empty(t, got.Header.Get("Content-Type"))
}

func TestClient_Do_PostForm(t *testing.T) {
	var body string
	var user, pass string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, _ = r.BasicAuth()
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := newTestClient(t, "https://provider.example/token")
	req := NewAPIRequest().ClientAuthInHeader().Field("token", "abc")

	_, err := c.Do(context.Background(), "revoke_token", http.MethodPost, srv.URL, req)
	require.NoError(t, err)
	assert.Equal(t, "client-id", user)
	assert.Equal(t, "client-secret", pass)
	assert.Equal(t, "token=abc", body)
}

func TestClient_Do_ResponseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Unauthorized","error":401}`))
	}))
	defer srv.Close()

	c := newTestClient(t, "https://provider.example/token")
	_, err := c.Do(context.Background(), "user_info", http.MethodGet, srv.URL, nil)

	var respErr *ResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Equal(t, http.StatusUnauthorized, respErr.StatusCode)
	assert.Equal(t, "user_info", respErr.Operation)
	assert.Contains(t, respErr.Error(), "Unauthorized")
}

func TestNewClient_Validation(t *testing.T) {
	base := Options{
		Name:      "test",
		Config:    Config{ClientID: "id", ClientSecret: "secret"},
		Endpoints: Endpoints{AuthorizeURL: "https://a", AccessTokenURL: "https://t"},
	}

	opts := base
	opts.Name = ""
	_, err := NewClient(opts)
	assert.ErrorIs(t, err, ErrMissingProvider)

	opts = base
	opts.Endpoints.AccessTokenURL = ""
	_, err = NewClient(opts)
	assert.ErrorIs(t, err, ErrMissingEndpoint)

	opts = base
	opts.Config.ClientSecret = ""
	_, err = NewClient(opts)
	assert.ErrorIs(t, err, ErrMissingClient)

	c, err := NewClient(base)
	require.NoError(t, err)
	assert.Equal(t, DefaultParamNames(), c.Params())
	assert.NotNil(t, c.HTTPClient())
}

func TestClient_UserInfoURL(t *testing.T) {
	c := newTestClient(t, "https://provider.example/token")
	assert.Equal(t, "https://provider.example/me", c.UserInfoURL())

	c.config.UserInfoURL = "https://override.example/me"
	assert.Equal(t, "https://override.example/me", c.UserInfoURL())
}
