package controller

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/api-sage/bank-portal/src/internal/commons"
	"github.com/api-sage/bank-portal/src/internal/domain"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respond(w http.ResponseWriter, r *http.Request, status int, payload any, start time.Time) {
	writeJSON(w, status, payload)
	logResponse(r, status, payload, start)
}

// respondError maps err to its status and body. Server errors are logged
// with detail while the client only sees the generic message.
func respondError(w http.ResponseWriter, r *http.Request, err error, start time.Time) {
	status, body := commons.ResolveError(err)
	if status >= http.StatusInternalServerError {
		logError(r, err, nil)
	}
	respond(w, r, status, body, start)
}

// decodeBody reads a JSON request body of at most maxBodyBytes. An empty
// body decodes to the zero value.
func decodeBody(r *http.Request, dst any) error {
	err := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes)).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return domain.NewValidationError("Invalid request body")
}
