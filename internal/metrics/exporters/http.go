// Package exporters exposes collected metrics over HTTP.
package exporters

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPHandler returns the Prometheus metrics HTTP handler.
// It serves every promauto-registered metric plus the Go runtime collectors.
func HTTPHandler() http.Handler {
	return promhttp.Handler()
}
