package cfg

import "time"

type HTTPServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func (l *Loader) loadHTTPServer() HTTPServerConfig {
	return HTTPServerConfig{
		Port:         l.getEnvWithDefault("HTTP_PORT", "3333"),
		ReadTimeout:  l.getEnvDurationOrDefault("HTTP_READ_TIMEOUT", 10*time.Second),
		WriteTimeout: l.getEnvDurationOrDefault("HTTP_WRITE_TIMEOUT", 10*time.Second),
	}
}
