package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeReddit(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"42","username":"nelly","discriminator":"3","verified":false}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeConfig(t *testing.T, userInfoURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reddit.yaml")
	body := "scopes: [identity]\nuser_info_url: " + userInfoURL + "\nhttp_timeout_seconds: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// --config exports REDDIT_CONFIG_FILE; restore it after the test.
	t.Setenv("REDDIT_CONFIG_FILE", "")
	var out bytes.Buffer
	err := newApp(&out).RunContext(context.Background(), append([]string{"reddit-user"}, args...))
	return out.String(), err
}

func TestUserCommand(t *testing.T) {
	f := newFakeReddit(t)
	t.Setenv("REDDIT_CLIENT_ID", "id")
	t.Setenv("REDDIT_CLIENT_SECRET", "secret")
	config := writeConfig(t, f.URL+"/api/v1/me")

	out, err := run(t, "--config", config, "user", "good-token")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "nelly#3"`)
	assert.Contains(t, out, `"email_verification_state": "unverified"`)

	_, err = run(t, "--config", config, "user", "bad-token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestUserCommand_Errors(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		_, err := run(t, "user")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "need to provide a token")
	})

	t.Run("bad revoke hint", func(t *testing.T) {
		_, err := run(t, "revoke", "--hint", "id_token", "tok")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid token type hint")
	})

	t.Run("missing credentials", func(t *testing.T) {
		t.Setenv("REDDIT_CLIENT_ID", "")
		t.Setenv("REDDIT_CLIENT_SECRET", "")
		config := writeConfig(t, "http://127.0.0.1:1/me")

		_, err := run(t, "--config", config, "user", "tok")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing env: REDDIT_CLIENT_ID")
	})
}
