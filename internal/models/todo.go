package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Todo is a single to-do item stored in MongoDB. Username is the owner;
// every read/update/delete is checked against it.
type Todo struct {
	ID        primitive.ObjectID `json:"_id"        bson:"_id,omitempty"`
	Todo      string             `json:"todo"       bson:"todo"`
	Username  string             `json:"username"   bson:"username"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
