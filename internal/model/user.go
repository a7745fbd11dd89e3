package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role is the closed set of user roles known to the system.
type Role string

const (
	RoleGuest Role = "guest"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered account.
type User struct {
	ID            bson.ObjectID `bson:"_id,omitempty"  json:"id"`
	Email         string        `bson:"email"          json:"email"`
	PasswordHash  string        `bson:"password_hash"  json:"-"`
	Role          Role          `bson:"role"           json:"role"`
	EmailVerified bool          `bson:"email_verified" json:"emailVerified"`
	Active        bool          `bson:"active"         json:"active"`
	CreatedAt     time.Time     `bson:"created_at"     json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updated_at"     json:"updatedAt"`
}
