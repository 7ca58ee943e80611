package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// HTTPError is an error with a status code and a message safe to show clients.
type HTTPError struct {
	Code    int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%d %s", e.Code, e.Message)
}

func (e *HTTPError) Unwrap() error { return e.Err }

func badRequest(err error) *HTTPError {
	return &HTTPError{Code: http.StatusBadRequest, Message: err.Error(), Err: err}
}

// appHandler is a handler that reports failure by returning an error.
type appHandler func(w http.ResponseWriter, r *http.Request) error

// makeHandler adapts an appHandler, turning returned errors into JSON error
// responses. Unknown errors become a 500 without leaking details.
func (s *Server) makeHandler(h appHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.Code >= http.StatusInternalServerError {
				s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
			} else {
				s.logger.Debug("rejected request", zap.String("path", r.URL.Path), zap.Error(err))
			}
			respondJSON(w, httpErr.Code, map[string]string{"error": httpErr.Message})
			return
		}

		s.logger.Error("unhandled error", zap.String("path", r.URL.Path), zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
