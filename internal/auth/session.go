package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayush/todo-webapp/internal/models"
)

const (
	SessionTTL    = 14 * 24 * time.Hour
	SessionCookie = "session_id"
)

// ErrSessionNotFound is returned when a session id matches no stored record.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore is the contract the auth gate and handlers depend on.
// Sessions are always read from and written back to the store; no session
// state is cached across requests.
type SessionStore interface {
	Create(ctx context.Context, user models.UserSnapshot) (*models.Session, error)
	Get(ctx context.Context, sessionID string) (*models.Session, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteByUsername(ctx context.Context, username string) (int64, error)
}

// MongoSessionStore persists sessions in a MongoDB collection, keyed by the
// server-generated session id the browser holds in its cookie.
type MongoSessionStore struct {
	col *mongo.Collection
}

func NewMongoSessionStore(db *mongo.Database) *MongoSessionStore {
	return &MongoSessionStore{col: db.Collection("sessions")}
}

// EnsureIndexes creates the expiry TTL index and the username index used by
// logout-from-all-devices.
func (s *MongoSessionStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
		{
			Keys: bson.D{{Key: "user.username", Value: 1}},
		},
	})
	return err
}

// Create stores a new authenticated session for the given user snapshot.
func (s *MongoSessionStore) Create(ctx context.Context, user models.UserSnapshot) (*models.Session, error) {
	now := time.Now().UTC()
	sess := &models.Session{
		ID:            uuid.New().String(),
		Authenticated: true,
		User:          user,
		CreatedAt:     now,
		ExpiresAt:     now.Add(SessionTTL),
	}
	if _, err := s.col.InsertOne(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *MongoSessionStore) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	var sess models.Session
	err := s.col.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&sess)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	// The TTL monitor deletes lazily; an expired record is still a miss.
	if !sess.ExpiresAt.IsZero() && sess.ExpiresAt.Before(time.Now().UTC()) {
		return nil, ErrSessionNotFound
	}
	return &sess, nil
}

func (s *MongoSessionStore) Delete(ctx context.Context, sessionID string) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": sessionID})
	return err
}

// DeleteByUsername removes every session whose embedded user snapshot
// matches the username and reports how many were deleted.
func (s *MongoSessionStore) DeleteByUsername(ctx context.Context, username string) (int64, error) {
	res, err := s.col.DeleteMany(ctx, bson.M{"user.username": username})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
