package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"

	"shoulders/internal/platform"
	"shoulders/pkg/logging"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Warn("Dashboard", "Failed to write response: %v", err)
	}
}

// statusFor maps an error onto an HTTP status.
func statusFor(err error) int {
	switch platform.Classify(err).Kind {
	case platform.KindInvalidInput:
		return http.StatusBadRequest
	case platform.KindNotFound:
		return http.StatusNotFound
	case platform.KindConflict:
		return http.StatusConflict
	case platform.KindEnvironment:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// writeError writes {"error": message} plus any extra fields.
func writeError(w http.ResponseWriter, err error, extra map[string]any) {
	body := map[string]any{"error": platform.Classify(err).Message}
	for k, v := range extra {
		body[k] = v
	}
	writeJSON(w, statusFor(err), body)
}

// decodeBody reads a JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return platform.InvalidInput("request body exceeds %d bytes", tooLarge.Limit)
		}
		return platform.InvalidInput("invalid JSON body: %v", err)
	}
	return nil
}
