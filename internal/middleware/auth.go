package middleware

import (
	"errors"
	"net/http"

	"github.com/ayush/todo-webapp/internal/auth"
	"github.com/ayush/todo-webapp/internal/response"
)

// RequireAuth validates the session cookie against the session store and
// attaches the session to the request context. Unauthenticated requests are
// short-circuited with no side effects; the session is re-fetched on every
// request so the store stays authoritative.
func RequireAuth(sessions auth.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.SessionCookie)
			if err != nil {
				response.Write(w, 401, "Session Expired. Please Login Again")
				return
			}

			sess, err := sessions.Get(r.Context(), cookie.Value)
			if errors.Is(err, auth.ErrSessionNotFound) {
				response.Write(w, 401, "Session Expired. Please Login Again")
				return
			}
			if err != nil {
				response.WriteError(w, err)
				return
			}
			if !sess.Authenticated {
				response.Write(w, 401, "Session Expired. Please Login Again")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), sess)))
		})
	}
}
