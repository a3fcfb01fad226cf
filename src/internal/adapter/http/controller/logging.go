package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/bank-portal/src/internal/adapter/http/middleware"
	"github.com/api-sage/bank-portal/src/internal/logger"
)

// requestFields describes the request and, behind the auth middleware, who made it.
func requestFields(r *http.Request) logger.Fields {
	fields := logger.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}
	if principal, ok := middleware.PrincipalFromContext(r.Context()); ok {
		fields["userId"] = principal.UserID
		fields["role"] = principal.Role
	}
	return fields
}

func logRequest(r *http.Request, payload any) {
	fields := requestFields(r)
	if r.URL.RawQuery != "" {
		fields["query"] = r.URL.RawQuery
	}
	if payload != nil {
		fields["payload"] = logger.SanitizePayload(payload)
	}
	logger.Info("http request", fields)
}

func logResponse(r *http.Request, status int, payload any, start time.Time) {
	fields := requestFields(r)
	fields["status"] = status
	fields["durationMs"] = time.Since(start).Milliseconds()
	if status >= http.StatusBadRequest {
		fields["response"] = logger.SanitizePayload(payload)
	}
	logger.Info("http response", fields)
}

func logError(r *http.Request, err error, extra logger.Fields) {
	fields := requestFields(r)
	for k, v := range extra {
		fields[k] = v
	}
	logger.Error("http handler error", err, fields)
}
