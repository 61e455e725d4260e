package cfg

import (
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv          string
	Reddit          RedditConfig
	StateCookie     StateCookieConfig
	Observability   OtelConfig
	HTTPServer      HTTPServerConfig
	ShutdownTimeout time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load() // ignore if .env missing (local only)
	l := NewLoader()

	cfg := &Config{
		AppEnv:          l.requireEnv("APP_ENV"),
		Reddit:          l.loadReddit(),
		StateCookie:     l.loadStateCookie(),
		Observability:   l.loadOtel(),
		HTTPServer:      l.loadHTTPServer(),
		ShutdownTimeout: l.getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if l.HasErrors() {
		return nil, l.Error()
	}

	return cfg, nil
}

// LoadReddit loads only the provider settings. Used by tools that never
// serve the redirect leg and so need no cookie keys.
func LoadReddit() (RedditConfig, error) {
	_ = godotenv.Load()
	l := NewLoader()

	cfg := l.loadReddit()
	if l.HasErrors() {
		return RedditConfig{}, l.Error()
	}
	return cfg, nil
}
