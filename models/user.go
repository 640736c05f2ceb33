package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Role string

const (
	RoleAdmin Role = "ADMIN"
)

// User is a back-office account allowed to review submissions.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty"         json:"id"`
	Email        string        `bson:"email"                 json:"email"`
	PasswordHash string        `bson:"passwordHash"          json:"-"`
	Role         Role          `bson:"role"                  json:"role"`
	IsActive     bool          `bson:"isActive"              json:"isActive"`
	LastLoginAt  *time.Time    `bson:"lastLoginAt,omitempty" json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time     `bson:"createdAt"             json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updatedAt"             json:"updatedAt"`
}

type RefreshToken struct {
	ID         bson.ObjectID `bson:"_id,omitempty"`
	UserID     bson.ObjectID `bson:"userId"`
	TokenHash  string        `bson:"tokenHash"`
	UserAgent  string        `bson:"userAgent,omitempty"`
	ExpiresAt  time.Time     `bson:"expiresAt"`
	CreatedAt  time.Time     `bson:"createdAt"`
	RevokedAt  *time.Time    `bson:"revokedAt,omitempty"`
	ReplacedBy *string       `bson:"replacedBy,omitempty"`
}

// Usable reports whether the token can still be exchanged at now.
func (t RefreshToken) Usable(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}
