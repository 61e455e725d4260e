package cfg

type OtelConfig struct {
	OTLPEndpoint string
	ServiceName  string
	SamplerRatio float64
}

// Enabled reports whether traces should be exported.
func (c OtelConfig) Enabled() bool {
	return c.OTLPEndpoint != ""
}

func (l *Loader) loadOtel() OtelConfig {
	return OtelConfig{
		OTLPEndpoint: l.getEnvWithDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName:  l.getEnvWithDefault("OTEL_SERVICE_NAME", "ally-reddit"),
		SamplerRatio: l.getEnvFloat64OrDefault("OTEL_SAMPLER_RATIO", 1.0),
	}
}
