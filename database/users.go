package database

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/wingsengineering/wingsweb/models"
	"github.com/wingsengineering/wingsweb/utils"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
)

// HashToken is the form a refresh token is stored in.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Accounts stores admin users and their refresh tokens.
type Accounts struct {
	users  *mongo.Collection
	tokens *mongo.Collection
}

func NewAccounts(m *Mongo) *Accounts {
	return &Accounts{
		users:  m.Collection(CollectionUsers),
		tokens: m.Collection(CollectionRefreshTokens),
	}
}

// SeedAdminUser creates the admin account when it does not exist yet. An
// existing account keeps its password.
func (a *Accounts) SeedAdminUser(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return errors.New("admin email and password are required")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now().UTC()
	_, err = a.users.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$setOnInsert": bson.M{
			"email":        email,
			"passwordHash": hash,
			"role":         models.RoleAdmin,
			"isActive":     true,
			"createdAt":    now,
			"updatedAt":    now,
		}},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil && !utils.IsDuplicateKey(err) {
		return fmt.Errorf("seed admin user: %w", err)
	}
	return nil
}

func (a *Accounts) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return a.findUser(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (a *Accounts) FindUserByID(ctx context.Context, id bson.ObjectID) (models.User, error) {
	return a.findUser(ctx, bson.M{"_id": id})
}

func (a *Accounts) findUser(ctx context.Context, filter bson.M) (models.User, error) {
	var u models.User
	err := a.users.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return u, ErrUserNotFound
	}
	return u, err
}

func (a *Accounts) TouchLastLogin(ctx context.Context, id bson.ObjectID) error {
	now := time.Now().UTC()
	_, err := a.users.UpdateByID(ctx, id, bson.M{"$set": bson.M{"lastLoginAt": now, "updatedAt": now}})
	return err
}

// StoreRefreshToken records token (hashed) for userID.
func (a *Accounts) StoreRefreshToken(ctx context.Context, userID bson.ObjectID, token, userAgent string, ttl time.Duration) error {
	now := time.Now().UTC()
	_, err := a.tokens.InsertOne(ctx, models.RefreshToken{
		UserID:    userID,
		TokenHash: HashToken(token),
		UserAgent: userAgent,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	})
	return err
}

// FindRefreshToken returns the stored token if it is neither revoked nor
// expired.
func (a *Accounts) FindRefreshToken(ctx context.Context, token string) (models.RefreshToken, error) {
	var rt models.RefreshToken
	err := a.tokens.FindOne(ctx, bson.M{
		"tokenHash": HashToken(token),
		"revokedAt": bson.M{"$exists": false},
		"expiresAt": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&rt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return rt, ErrRefreshTokenNotFound
	}
	return rt, err
}

// RotateRefreshToken revokes old and stores next in its place.
func (a *Accounts) RotateRefreshToken(ctx context.Context, old models.RefreshToken, next, userAgent string, ttl time.Duration) error {
	now := time.Now().UTC()
	nextHash := HashToken(next)
	res, err := a.tokens.UpdateOne(ctx,
		bson.M{"_id": old.ID, "revokedAt": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"revokedAt": now, "replacedBy": nextHash}},
	)
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrRefreshTokenNotFound
	}
	return a.StoreRefreshToken(ctx, old.UserID, next, userAgent, ttl)
}

// RevokeRefreshToken is best effort; an unknown token is not an error.
func (a *Accounts) RevokeRefreshToken(ctx context.Context, token string) error {
	_, err := a.tokens.UpdateOne(ctx, bson.M{
		"tokenHash": HashToken(token),
		"revokedAt": bson.M{"$exists": false},
	}, bson.M{
		"$set": bson.M{"revokedAt": time.Now().UTC()},
	})
	return err
}

func (a *Accounts) RevokeAll(ctx context.Context, userID bson.ObjectID) error {
	_, err := a.tokens.UpdateMany(ctx, bson.M{
		"userId":    userID,
		"revokedAt": bson.M{"$exists": false},
	}, bson.M{
		"$set": bson.M{"revokedAt": time.Now().UTC()},
	})
	return err
}

func (a *Accounts) UpdatePassword(ctx context.Context, id bson.ObjectID, passwordHash string) error {
	res, err := a.users.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"passwordHash": passwordHash,
			"updatedAt":    time.Now().UTC(),
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
