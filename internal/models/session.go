package models

import "time"

// UserSnapshot is the slice of user identity embedded in a session at login
// time. Todos are keyed by username, so the snapshot is what ties a request
// to its items.
type UserSnapshot struct {
	Username string `json:"username" bson:"username"`
	Email    string `json:"email"    bson:"email"`
	UserID   string `json:"userId"   bson:"user_id"`
}

// Session is a server-side login record stored in MongoDB, keyed by the
// opaque identifier the browser holds in its cookie.
type Session struct {
	ID            string       `json:"id"            bson:"_id"`
	Authenticated bool         `json:"authenticated" bson:"authenticated"`
	User          UserSnapshot `json:"user"          bson:"user"`
	CreatedAt     time.Time    `json:"created_at"    bson:"created_at"`
	ExpiresAt     time.Time    `json:"expires_at"    bson:"expires_at"`
}
