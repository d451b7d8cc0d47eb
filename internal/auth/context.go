package auth

import (
	"context"

	"github.com/ayush/todo-webapp/internal/models"
)

type ctxKey int

const sessionKey ctxKey = iota

// WithSession attaches the request's session record to the context.
func WithSession(ctx context.Context, sess *models.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// SessionFrom returns the session attached by the auth gate, or nil when
// the request never passed through it.
func SessionFrom(ctx context.Context) *models.Session {
	sess, _ := ctx.Value(sessionKey).(*models.Session)
	return sess
}
