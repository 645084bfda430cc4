package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetBylogin(ctx context.Context, login string) (int, string, error)
}

// DesignStore keeps the calculations a user ran.
type DesignStore interface {
	SaveDesign(ctx context.Context, d Design) (int64, error)
	ListDesigns(ctx context.Context, userID, limit int) ([]DesignSummary, error)
	GetDesign(ctx context.Context, userID int, id int64) (Design, error)
}

type Design struct {
	ID        int64           `json:"id"`
	UserID    int             `json:"user_id"`
	Kind      string          `json:"kind"`
	Input     json.RawMessage `json:"input"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

type DesignSummary struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	login TEXT UNIQUE NOT NULL,
	email TEXT UNIQUE NOT NULL,
	password TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS designs (
	id BIGSERIAL PRIMARY KEY,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	kind TEXT NOT NULL,
	input JSONB NOT NULL,
	result JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS designs_user_created ON designs (user_id, created_at DESC);
`

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserDB(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Migrate creates the tables if they do not exist yet.
func (r *PostgresUserRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, Schema)
	return err
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

func (r *PostgresUserRepository) GetBylogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresUserRepository) SaveDesign(ctx context.Context, d Design) (int64, error) {
	var id int64
	query := "INSERT INTO designs (user_id, kind, input, result) VALUES ($1, $2, $3, $4) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, d.UserID, d.Kind, []byte(d.Input), []byte(d.Result)).Scan(&id)
	return id, err
}

func (r *PostgresUserRepository) ListDesigns(ctx context.Context, userID, limit int) ([]DesignSummary, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	query := "SELECT id, kind, created_at FROM designs WHERE user_id=$1 ORDER BY created_at DESC, id DESC LIMIT $2"
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DesignSummary{}
	for rows.Next() {
		var s DesignSummary
		if err := rows.Scan(&s.ID, &s.Kind, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetDesign returns ErrNotFound for ids that are missing or owned by another user.
func (r *PostgresUserRepository) GetDesign(ctx context.Context, userID int, id int64) (Design, error) {
	var d Design
	var input, result []byte
	query := "SELECT id, user_id, kind, input, result, created_at FROM designs WHERE id=$1 AND user_id=$2"
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&d.ID, &d.UserID, &d.Kind, &input, &result, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Design{}, ErrNotFound
	}
	if err != nil {
		return Design{}, err
	}
	d.Input, d.Result = input, result
	return d, nil
}
