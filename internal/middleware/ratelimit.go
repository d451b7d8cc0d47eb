package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/ayush/todo-webapp/internal/auth"
	"github.com/ayush/todo-webapp/internal/response"
)

// Window is the minimum spacing enforced between accepted requests from the
// same session.
const Window = 1 * time.Second

// AccessStore tracks the last accepted request time per session.
type AccessStore interface {
	LastRequest(ctx context.Context, sessionID string) (time.Time, bool, error)
	Touch(ctx context.Context, sessionID string, t time.Time) error
}

// RateLimit rejects requests arriving within Window of the session's last
// accepted request. The first request from a session is always allowed. A
// rejected request does not touch the stored timestamp, so a burst of
// rejections never pushes back the next legitimate slot. Must run after
// RequireAuth.
func RateLimit(access AccessStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := auth.SessionFrom(r.Context())
			if sess == nil {
				response.Write(w, 401, "Session Expired. Please Login Again")
				return
			}

			now := time.Now()
			last, found, err := access.LastRequest(r.Context(), sess.ID)
			if err != nil {
				response.WriteError(w, err)
				return
			}

			if found && now.Sub(last) < Window {
				response.Write(w, 400, "Too many requests")
				return
			}

			if err := access.Touch(r.Context(), sess.ID, now); err != nil {
				response.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
