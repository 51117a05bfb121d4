package http

import (
	_ "embed"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"
)

const openAPIPath = "/api-docs/openapi.json"

//go:embed openapi.json
var openAPIDoc []byte

// NewMux creates router for app's http server
func NewMux(service Service, timeout time.Duration, l logrus.FieldLogger) http.Handler {
	timeoutMiddleware := NewTimeoutMiddleware(timeout)

	contributorsHandler := NewContributorsHandler(
		func(r *http.Request) string {
			return chi.URLParam(r, "org_name")
		},
		service,
		l,
	)
	contributorsHandler = timeoutMiddleware(contributorsHandler)

	m := chi.NewRouter()
	m.Use(NewRequestLogMiddleware(l))

	m.Get("/", NewRootHandler())
	m.Get("/org/{org_name}/contributors", contributorsHandler)
	m.Get(openAPIPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-type", "application/json; charset=utf-8")
		_, _ = w.Write(openAPIDoc)
	})
	m.Get("/swagger-ui/*", httpSwagger.Handler(httpSwagger.URL(openAPIPath)))
	m.Handle("/metrics", promhttp.Handler())

	return m
}
