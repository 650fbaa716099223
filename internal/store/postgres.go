package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateEmail reports a visitor insert that hit the unique email index.
var ErrDuplicateEmail = errors.New("email already exists")

const uniqueViolation = "23505"

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) DB() *sql.DB {
	return s.db
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) CountPortfolios(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM portfolios`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count portfolios: %w", err)
	}
	return count, nil
}

// GetPortfolio returns the one portfolio row. There is no handle or id at the
// call site: the repository itself resolves "the record of this type".
func (s *PostgresStore) GetPortfolio(ctx context.Context) (Portfolio, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT data || jsonb_build_object('createdAt', created_at, 'updatedAt', updated_at)
		FROM portfolios
		ORDER BY created_at
		LIMIT 1
	`).Scan(&raw)
	if err != nil {
		return Portfolio{}, err
	}
	var portfolio Portfolio
	if err := json.Unmarshal(raw, &portfolio); err != nil {
		return Portfolio{}, fmt.Errorf("decode portfolio: %w", err)
	}
	return portfolio, nil
}

func (s *PostgresStore) InsertPortfolio(ctx context.Context, id string, portfolio Portfolio) error {
	data, err := json.Marshal(portfolio)
	if err != nil {
		return fmt.Errorf("encode portfolio: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO portfolios (id, data)
		VALUES ($1, $2)
	`, id, data); err != nil {
		return fmt.Errorf("insert portfolio: %w", err)
	}
	return nil
}

// MergePortfolioFields replaces the named top-level fields of the singleton
// document wholesale. The jsonb concatenation assigns each key as a unit, so
// nested structures are overwritten, never deep-merged, and no per-field
// dirty-flagging is needed. Returns sql.ErrNoRows when no portfolio exists.
func (s *PostgresStore) MergePortfolioFields(ctx context.Context, fields map[string]json.RawMessage) (Portfolio, error) {
	patch, err := json.Marshal(fields)
	if err != nil {
		return Portfolio{}, fmt.Errorf("encode update: %w", err)
	}
	var raw []byte
	err = s.db.QueryRowContext(ctx, `
		UPDATE portfolios
		SET data = data || $1::jsonb, updated_at = NOW()
		WHERE id = (SELECT id FROM portfolios ORDER BY created_at LIMIT 1)
		RETURNING data || jsonb_build_object('createdAt', created_at, 'updatedAt', updated_at)
	`, patch).Scan(&raw)
	if err != nil {
		return Portfolio{}, err
	}
	var portfolio Portfolio
	if err := json.Unmarshal(raw, &portfolio); err != nil {
		return Portfolio{}, fmt.Errorf("decode portfolio: %w", err)
	}
	return portfolio, nil
}

// InsertVisitor relies on the unique index for de-duplication rather than a
// read-then-write check, so concurrent captures of the same email cannot race.
func (s *PostgresStore) InsertVisitor(ctx context.Context, visitor Visitor) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (id, email, date_visited)
		VALUES ($1, $2, $3)
	`, visitor.ID, visitor.Email, visitor.DateVisited)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert visitor: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListVisitors(ctx context.Context) ([]Visitor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, email, date_visited
		FROM visitors
		ORDER BY date_visited DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list visitors: %w", err)
	}
	defer rows.Close()

	visitors := []Visitor{}
	for rows.Next() {
		var visitor Visitor
		if err := rows.Scan(&visitor.ID, &visitor.Email, &visitor.DateVisited); err != nil {
			return nil, fmt.Errorf("scan visitor: %w", err)
		}
		visitors = append(visitors, visitor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate visitors: %w", err)
	}
	return visitors, nil
}
