package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// TokenPurpose distinguishes what a stored user token may be redeemed for.
type TokenPurpose string

const (
	TokenPurposeVerifyEmail   TokenPurpose = "verify_email"
	TokenPurposeResetPassword TokenPurpose = "reset_password"
)

// UserToken is a single-use token backing email verification and password
// reset. It is deleted when consumed; expired tokens age out via TTL index.
type UserToken struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    bson.ObjectID `bson:"user_id"       json:"userId"`
	Token     string        `bson:"token"         json:"-"`
	Purpose   TokenPurpose  `bson:"purpose"       json:"purpose"`
	ExpiresAt time.Time     `bson:"expires_at"    json:"expiresAt"`
	CreatedAt time.Time     `bson:"created_at"    json:"createdAt"`
}
