package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newPostgresTest(t *testing.T) (*Postgres, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	return NewPostgres(db), mock, func() { db.Close() }
}

func TestFindUserByID(t *testing.T) {
	repo, mock, done := newPostgresTest(t)
	defer done()

	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`select user_id, username, password_hash, is_active, gender, email, created_at`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(
			[]string{"user_id", "username", "password_hash", "is_active", "gender", "email", "created_at"}).
			AddRow("u-1", "alice", "hash-val", true, "f", "alice@example.com", created))

	u, err := repo.FindUserByID(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if u == nil || u.Username != "alice" || !u.IsActive {
		t.Fatalf("unexpected user %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestFindUserByIDAbsent(t *testing.T) {
	repo, mock, done := newPostgresTest(t)
	defer done()

	mock.ExpectQuery(`select user_id, username, password_hash`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "username", "password_hash", "is_active", "gender", "email", "created_at"}))

	u, err := repo.FindUserByID(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("absent user must not error: %v", err)
	}
	if u != nil {
		t.Fatalf("expected nil user, got %+v", u)
	}
}

func TestSaveAndFindToken(t *testing.T) {
	repo, mock, done := newPostgresTest(t)
	defer done()

	now := time.Now().UTC().Truncate(time.Second)
	rec := &TokenRecord{
		Token:     "tok-abc",
		UserID:    "u-1",
		CreatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
	}

	mock.ExpectExec(`insert into user_tokens`).
		WithArgs(rec.Token, rec.UserID, rec.CreatedAt, rec.ExpiresAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SaveToken(context.Background(), rec); err != nil {
		t.Fatalf("save token: %v", err)
	}

	mock.ExpectQuery(`select token, user_id, created_at, expires_at from user_tokens`).
		WithArgs("tok-abc").
		WillReturnRows(sqlmock.NewRows([]string{"token", "user_id", "created_at", "expires_at"}).
			AddRow(rec.Token, rec.UserID, rec.CreatedAt, rec.ExpiresAt))

	got, err := repo.FindTokenByValue(context.Background(), "tok-abc")
	if err != nil {
		t.Fatalf("find token: %v", err)
	}
	if got == nil || got.UserID != "u-1" || !got.ExpiresAt.Equal(rec.ExpiresAt) {
		t.Fatalf("unexpected record %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDeleteTokenReportsExistence(t *testing.T) {
	repo, mock, done := newPostgresTest(t)
	defer done()

	mock.ExpectExec(`delete from user_tokens`).
		WithArgs("tok-abc").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`delete from user_tokens`).
		WithArgs("tok-abc").
		WillReturnResult(sqlmock.NewResult(0, 0))

	existed, err := repo.DeleteToken(context.Background(), "tok-abc")
	if err != nil || !existed {
		t.Fatalf("first delete: existed=%v err=%v", existed, err)
	}
	existed, err = repo.DeleteToken(context.Background(), "tok-abc")
	if err != nil {
		t.Fatalf("second delete must not error: %v", err)
	}
	if existed {
		t.Fatal("second delete reported a row")
	}
}
