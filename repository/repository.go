package repository

import (
	"context"
	"time"
)

// User is a row of the users table. PasswordHash is opaque to this package;
// the engine's password verifier interprets it.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	IsActive     bool
	Gender       string
	Email        string
	CreatedAt    time.Time
}

// TokenRecord is the durable copy of a user credential token. ExpiresAt is
// authoritative: the record may outlive its cache shadow and is only valid
// while ExpiresAt lies in the future.
type TokenRecord struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Repository is the durable-store contract the engine depends on.
type Repository interface {
	// FindUserByID returns the user or (nil, nil) when absent.
	FindUserByID(ctx context.Context, id string) (*User, error)
	// SaveToken inserts a token record.
	SaveToken(ctx context.Context, rec *TokenRecord) error
	// FindTokenByValue returns the token record or (nil, nil) when absent.
	FindTokenByValue(ctx context.Context, token string) (*TokenRecord, error)
	// DeleteToken removes a token record, reporting whether a row existed.
	DeleteToken(ctx context.Context, token string) (bool, error)
}
