package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/katalvlaran/stepwise/apikey"
	"github.com/katalvlaran/stepwise/catalog"
	"github.com/katalvlaran/stepwise/frame"
	"github.com/katalvlaran/stepwise/replay"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, replay.ErrNoSession), errors.Is(err, replay.ErrBoundary), errors.Is(err, replay.ErrStaleSession):
		return http.StatusConflict
	case errors.Is(err, catalog.ErrUnknownScenario):
		return http.StatusNotFound
	case errors.Is(err, frame.ErrConfiguration), errors.Is(err, apikey.ErrEmpty):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	msg := err.Error()
	if errors.Is(err, replay.ErrNoSession) {
		msg = "no session loaded"
	}
	if code == http.StatusInternalServerError {
		s.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		msg = http.StatusText(code)
	}
	writeJSON(w, code, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
