package app

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/sublime-music/subsonic-source/pkg/catalog"
	"github.com/sublime-music/subsonic-source/pkg/subsonic"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(payload)
}

// statusFor maps an error from the catalog to an HTTP status.
func statusFor(err error) int {
	var subsonicErr *subsonic.SubsonicError
	switch {
	case errors.Is(err, ErrNotReady):
		return http.StatusServiceUnavailable
	case errors.Is(err, catalog.ErrNotResolvable):
		return http.StatusNotFound
	case errors.Is(err, subsonic.ErrTransportTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, subsonic.ErrTransportUnavailable),
		errors.Is(err, subsonic.ErrDecode),
		errors.As(err, &subsonicErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	log := hlog.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("Request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("Request failed")
	}
	_ = writeJSON(w, status, errorResponse{
		Error:     err.Error(),
		RequestID: GetRequestID(r),
	})
}
