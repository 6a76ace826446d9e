package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// Sentinel errors reported by Store implementations. Callers translate these
// into application errors; the store itself stays transport-agnostic.
var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateUsername is returned when an insert violates username uniqueness.
	ErrDuplicateUsername = errors.New("username already exists")
)

// Store is the storage contract the rest of the application depends on.
// Username uniqueness is enforced by the implementation.
type Store interface {
	// Create inserts a new user and returns the record with its
	// storage-assigned id. Returns ErrDuplicateUsername when the username
	// is already taken.
	Create(ctx context.Context, user *User) (*User, error)
	// FindByUsername returns the user with the given username, or ErrNotFound.
	FindByUsername(ctx context.Context, username string) (*User, error)
}

// PostgresStore implements Store on top of a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, user *User) (*User, error) {
	query := `INSERT INTO users (username, password)
	          VALUES ($1, $2)
	          RETURNING id`
	err := s.pool.QueryRow(ctx, query, user.Username, user.PasswordHash).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	return user, nil
}

func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	query := `SELECT id, username, password FROM users WHERE username = $1`
	err := s.pool.QueryRow(ctx, query, username).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
