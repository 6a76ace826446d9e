package resources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

// Sentinel errors reported by Store implementations.
var (
	// ErrNotFound is returned when no resource matches the mutation target.
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicateID is returned when an insert violates id uniqueness.
	ErrDuplicateID = errors.New("resource id already exists")
)

// Store is the storage contract for resources. Update and SoftDelete are
// atomic find-and-update operations: the service never holds a resource in
// memory across two storage calls for the same mutation.
type Store interface {
	// Create inserts a new resource. Returns ErrDuplicateID when the id is taken.
	Create(ctx context.Context, res *Resource) (*Resource, error)
	// FindAll returns every stored resource, soft-deleted ones included.
	FindAll(ctx context.Context) ([]Resource, error)
	// UpdateData atomically replaces data and modified on the resource with
	// the given id, returning the updated record or ErrNotFound.
	UpdateData(ctx context.Context, id string, data []any, modified int64) (*Resource, error)
	// SoftDelete atomically clears data and stamps modified/deleted on the
	// resource with the given id, but only when it is not already
	// soft-deleted. Returns ErrNotFound when no row matched, which makes a
	// repeated soft-deletion a no-op that cannot move the deleted timestamp.
	SoftDelete(ctx context.Context, id string, now int64) (*Resource, error)
}

// PostgresStore implements Store on top of a pgx connection pool. The data
// array is held in a JSONB column.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, res *Resource) (*Resource, error) {
	raw, err := json.Marshal(res.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode resource data: %w", err)
	}

	query := `INSERT INTO resources (id, data, created, modified)
	          VALUES ($1, $2, $3, $4)`
	_, err = s.pool.Exec(ctx, query, res.ID, raw, res.Created, res.Modified)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrDuplicateID
		}
		return nil, err
	}
	return res, nil
}

func (s *PostgresStore) FindAll(ctx context.Context) ([]Resource, error) {
	query := `SELECT id, data, created, modified, deleted FROM resources ORDER BY created`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resources := []Resource{}
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, *res)
	}
	return resources, rows.Err()
}

func (s *PostgresStore) UpdateData(ctx context.Context, id string, data []any, modified int64) (*Resource, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode resource data: %w", err)
	}

	query := `UPDATE resources SET data = $2, modified = $3
	          WHERE id = $1
	          RETURNING id, data, created, modified, deleted`
	res, err := scanResource(s.pool.QueryRow(ctx, query, id, raw, modified))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

func (s *PostgresStore) SoftDelete(ctx context.Context, id string, now int64) (*Resource, error) {
	query := `UPDATE resources SET data = '[]'::jsonb, modified = $2, deleted = $2
	          WHERE id = $1 AND deleted IS NULL
	          RETURNING id, data, created, modified, deleted`
	res, err := scanResource(s.pool.QueryRow(ctx, query, id, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

// scanResource reads one resource row, decoding the JSONB data column.
func scanResource(row pgx.Row) (*Resource, error) {
	var (
		res Resource
		raw []byte
	)
	if err := row.Scan(&res.ID, &raw, &res.Created, &res.Modified, &res.Deleted); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &res.Data); err != nil {
		return nil, fmt.Errorf("failed to decode resource data: %w", err)
	}
	return &res, nil
}
