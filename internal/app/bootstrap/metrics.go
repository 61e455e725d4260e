package bootstrap

import (
	"net/http"

	"github.com/stringfold/ally/pkg/oauth2"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// InitMetrics creates a registry holding the Go runtime collectors and the
// OAuth2 flow metrics, and the handler that exposes it.
func InitMetrics() (*prometheus.Registry, *oauth2.Metrics, http.Handler) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	metrics := oauth2.NewMetrics(reg)
	handler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})

	return reg, metrics, handler
}
