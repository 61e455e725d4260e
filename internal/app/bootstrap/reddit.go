package bootstrap

import (
	"fmt"
	"net/http"

	"github.com/stringfold/ally/internal/cfg"
	"github.com/stringfold/ally/pkg/logger"
	"github.com/stringfold/ally/pkg/oauth2"
	"github.com/stringfold/ally/pkg/reddit"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// InitReddit builds the Reddit provider. cookieCfg may be nil for callers
// that only look up users by token.
func InitReddit(config *cfg.RedditConfig, cookieCfg *cfg.StateCookieConfig, log logger.Logger, metrics *oauth2.Metrics) (*reddit.Provider, error) {
	var cookies *oauth2.StateCookie
	if cookieCfg != nil {
		var err error
		cookies, err = oauth2.NewStateCookie(oauth2.StateCookieOptions{
			HashKey:  cookieCfg.HashKey,
			BlockKey: cookieCfg.BlockKey,
			TTL:      config.StateTTL,
			Secure:   cookieCfg.Secure,
		})
		if err != nil {
			return nil, fmt.Errorf("state cookie: %w", err)
		}
	}

	var httpClient *http.Client
	if config.HTTPTimeout > 0 {
		httpClient = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   config.HTTPTimeout,
		}
	}

	provider, err := reddit.New(reddit.Options{
		Config: oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			CallbackURL:  config.CallbackURL,
			UserInfoURL:  config.UserInfoURL,
			Scopes:       config.Scopes,
		},
		StateCookie: cookies,
		HTTPClient:  httpClient,
		Logger:      log,
		Metrics:     metrics,
		UserAgent:   config.UserAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize reddit provider: %w", err)
	}

	return provider, nil
}
