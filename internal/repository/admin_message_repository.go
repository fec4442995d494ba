package repository

import (
	"context"
	"time"

	"skillswap/internal/database"

	"github.com/google/uuid"
)

type AdminMessage struct {
	ID        uuid.UUID
	Title     string
	Body      string
	CreatedAt time.Time
}

type AdminMessageRepository interface {
	Create(ctx context.Context, title, body string) (AdminMessage, error)
	List(ctx context.Context) ([]AdminMessage, error)
}

type PostgresAdminMessageRepository struct {
	db database.DB
}

func NewPostgresAdminMessageRepository(db database.DB) *PostgresAdminMessageRepository {
	return &PostgresAdminMessageRepository{db: db}
}

func (r *PostgresAdminMessageRepository) Create(ctx context.Context, title, body string) (AdminMessage, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO admin_messages (title, body) VALUES ($1, $2)
		 RETURNING id, title, body, created_at`,
		title, body,
	)

	var m AdminMessage
	if err := row.Scan(&m.ID, &m.Title, &m.Body, &m.CreatedAt); err != nil {
		return AdminMessage{}, err
	}
	return m, nil
}

func (r *PostgresAdminMessageRepository) List(ctx context.Context) ([]AdminMessage, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, body, created_at FROM admin_messages ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AdminMessage, 0)
	for rows.Next() {
		var m AdminMessage
		if err := rows.Scan(&m.ID, &m.Title, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
