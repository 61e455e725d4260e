package cfg

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/stringfold/ally/pkg/validator"

	"github.com/goccy/go-yaml"
)

// Reddit YAML config file path, relative to the working directory.
const redditYAMLPath = "internal/cfg/reddit.yaml"

// Environment variable names for Reddit settings
const (
	envRedditConfigFile   = "REDDIT_CONFIG_FILE"
	envRedditClientID     = "REDDIT_CLIENT_ID"
	envRedditClientSecret = "REDDIT_CLIENT_SECRET"
	envRedditCallbackURL  = "REDDIT_CALLBACK_URL"

	envStateCookieHashKey  = "STATE_COOKIE_HASH_KEY"
	envStateCookieBlockKey = "STATE_COOKIE_BLOCK_KEY"
	envStateCookieSecure   = "STATE_COOKIE_SECURE"
)

const minHashKeyLength = 32

// RedditConfig holds the provider credentials and driver defaults.
type RedditConfig struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
	Scopes       []string
	UserInfoURL  string
	UserAgent    string
	HTTPTimeout  time.Duration
	StateTTL     time.Duration
}

// StateCookieConfig holds the keys protecting the anti-CSRF state cookie.
type StateCookieConfig struct {
	HashKey  []byte
	BlockKey []byte
	Secure   bool
}

// RedditYAMLConfig represents the YAML configuration structure
type RedditYAMLConfig struct {
	Scopes             []string `yaml:"scopes"`
	UserInfoURL        string   `yaml:"user_info_url"`
	UserAgent          string   `yaml:"user_agent"`
	StateTTLSeconds    int      `yaml:"state_ttl_seconds"`
	HTTPTimeoutSeconds int      `yaml:"http_timeout_seconds"`
}

func (l *Loader) loadReddit() RedditConfig {
	yamlCfg, err := loadRedditYAML(l.getEnvWithDefault(envRedditConfigFile, redditYAMLPath))
	if err != nil {
		l.fail("failed to load reddit yaml config: %w", err)
		return RedditConfig{}
	}

	return RedditConfig{
		ClientID:     l.requireEnv(envRedditClientID),
		ClientSecret: l.requireEnv(envRedditClientSecret),
		CallbackURL:  os.Getenv(envRedditCallbackURL),
		Scopes:       yamlCfg.Scopes,
		UserInfoURL:  yamlCfg.UserInfoURL,
		UserAgent:    yamlCfg.UserAgent,
		HTTPTimeout:  time.Duration(yamlCfg.HTTPTimeoutSeconds) * time.Second,
		StateTTL:     time.Duration(yamlCfg.StateTTLSeconds) * time.Second,
	}
}

func (l *Loader) loadStateCookie() StateCookieConfig {
	hashKey := l.requireEnv(envStateCookieHashKey)
	if hashKey != "" && len(hashKey) < minHashKeyLength {
		l.fail("%s must be at least %d characters", envStateCookieHashKey, minHashKeyLength)
	}

	var blockKey []byte
	if v := os.Getenv(envStateCookieBlockKey); v != "" {
		switch len(v) {
		case 16, 24, 32:
			blockKey = []byte(v)
		default:
			l.fail("%s must be 16, 24 or 32 characters", envStateCookieBlockKey)
		}
	}

	return StateCookieConfig{
		HashKey:  []byte(hashKey),
		BlockKey: blockKey,
		Secure:   l.getEnvBoolWithDefault(envStateCookieSecure, false),
	}
}

func loadRedditYAML(path string) (*RedditYAMLConfig, error) {
	yamlData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var cfg RedditYAMLConfig
	if err := yaml.Unmarshal(yamlData, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	scopes := cfg.Scopes[:0]
	for _, s := range cfg.Scopes {
		if s = strings.TrimSpace(s); s != "" {
			scopes = append(scopes, s)
		}
	}
	cfg.Scopes = scopes
	if err := validator.ValidateScopes(cfg.Scopes); err != nil {
		return nil, fmt.Errorf("invalid scopes in %s: %w", path, err)
	}

	return &cfg, nil
}
