package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Registers the pgx database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"
)

var _ Repository = (*Postgres)(nil)

// Postgres implements Repository over database/sql with the pgx driver.
type Postgres struct {
	db *sql.DB
}

// NewPostgres wraps an existing database handle.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Open connects to dsn with the pgx driver and verifies the connection.
func Open(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Postgres{db: db}, nil
}

// Close releases the underlying connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}

func (p *Postgres) FindUserByID(ctx context.Context, id string) (*User, error) {
	row := p.db.QueryRowContext(ctx,
		`select user_id, username, password_hash, is_active, gender, email, created_at
		   from users where user_id = $1`, id)

	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsActive, &u.Gender, &u.Email, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user %s: %w", id, err)
	}
	return &u, nil
}

func (p *Postgres) SaveToken(ctx context.Context, rec *TokenRecord) error {
	_, err := p.db.ExecContext(ctx,
		`insert into user_tokens(token, user_id, created_at, expires_at) values($1, $2, $3, $4)`,
		rec.Token, rec.UserID, rec.CreatedAt, rec.ExpiresAt)
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (p *Postgres) FindTokenByValue(ctx context.Context, token string) (*TokenRecord, error) {
	row := p.db.QueryRowContext(ctx,
		`select token, user_id, created_at, expires_at from user_tokens where token = $1`, token)

	var rec TokenRecord
	if err := row.Scan(&rec.Token, &rec.UserID, &rec.CreatedAt, &rec.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find token: %w", err)
	}
	return &rec, nil
}

func (p *Postgres) DeleteToken(ctx context.Context, token string) (bool, error) {
	res, err := p.db.ExecContext(ctx, `delete from user_tokens where token = $1`, token)
	if err != nil {
		return false, fmt.Errorf("delete token: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete token rows: %w", err)
	}
	return affected > 0, nil
}
