package router

import (
	"net/http"

	"github.com/api-sage/bank-portal/src/internal/adapter/http/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type RouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authorize middleware.Authorizer)
}

// New mounts every registrar at the root and again under /api, then wraps
// the result with CORS and request tracing.
func New(authorize middleware.Authorizer, allowedOrigin string, registrars ...RouteRegistrar) http.Handler {
	mux := http.NewServeMux()
	registerSwaggerRoutes(mux)

	for _, registrar := range registrars {
		if registrar != nil {
			registrar.RegisterRoutes(mux, authorize)
		}
	}

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", mux))
	root.Handle("/", mux)

	return otelhttp.NewHandler(middleware.CORS(allowedOrigin)(root), "bank-portal")
}
