package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"skillswap/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrSkillNotFound = errors.New("skill not found")
	// ErrSkillInUse is returned when a delete is refused because the skill is
	// referenced by a pending or accepted swap request.
	ErrSkillInUse = errors.New("skill referenced by an active swap request")
)

type Skill struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description *string
	Type        string
	IsApproved  bool
	CreatedAt   time.Time
}

type PendingSkill struct {
	Skill
	OwnerName string
}

type SkillRepository interface {
	Create(ctx context.Context, s Skill) (Skill, error)
	FindByID(ctx context.Context, id uuid.UUID) (Skill, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Skill, error)
	ListPublicApproved(ctx context.Context, ownerID uuid.UUID) ([]Skill, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Approve(ctx context.Context, id uuid.UUID) error
	ListPending(ctx context.Context) ([]PendingSkill, error)
	CountPending(ctx context.Context) (int, error)
	Count(ctx context.Context) (int, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

const skillColumns = `id, user_id, name, description, type, is_approved, created_at`

func scanSkill(row database.Row) (Skill, error) {
	var s Skill
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Description, &s.Type, &s.IsApproved, &s.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Skill{}, ErrSkillNotFound
		}
		return Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) Create(ctx context.Context, s Skill) (Skill, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO skills (user_id, name, description, type)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+skillColumns,
		s.UserID, s.Name, s.Description, s.Type,
	)
	return scanSkill(row)
}

func (r *PostgresSkillRepository) FindByID(ctx context.Context, id uuid.UUID) (Skill, error) {
	row := r.db.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = $1`, id)
	return scanSkill(row)
}

func (r *PostgresSkillRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Skill, error) {
	return r.list(ctx,
		`SELECT `+skillColumns+` FROM skills WHERE user_id = $1 ORDER BY created_at DESC`,
		ownerID,
	)
}

// ListPublicApproved is the only cross-user view: unapproved skills and
// skills of banned or non-public owners never appear here.
func (r *PostgresSkillRepository) ListPublicApproved(ctx context.Context, ownerID uuid.UUID) ([]Skill, error) {
	return r.list(ctx,
		`SELECT s.id, s.user_id, s.name, s.description, s.type, s.is_approved, s.created_at
		 FROM skills s
		 JOIN profiles p ON p.id = s.user_id
		 WHERE s.user_id = $1 AND s.is_approved AND p.is_public AND NOT p.is_banned
		 ORDER BY s.created_at DESC`,
		ownerID,
	)
}

func (r *PostgresSkillRepository) list(ctx context.Context, query string, args ...any) ([]Skill, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Skill, 0)
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Description, &s.Type, &s.IsApproved, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete refuses to remove a skill referenced by a pending or accepted swap
// request. The guard is part of the statement itself, so a request created
// concurrently cannot slip between a check and the delete.
func (r *PostgresSkillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM skills
		 WHERE id = $1
		   AND NOT EXISTS (
		       SELECT 1 FROM swap_requests
		       WHERE (offered_skill_id = $1 OR requested_skill_id = $1)
		         AND status IN ('pending', 'accepted'))`,
		id,
	)
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM skills WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrSkillInUse
	}
	return ErrSkillNotFound
}

func (r *PostgresSkillRepository) Approve(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `UPDATE skills SET is_approved = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSkillNotFound
	}
	return nil
}

func (r *PostgresSkillRepository) ListPending(ctx context.Context) ([]PendingSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.user_id, s.name, s.description, s.type, s.is_approved, s.created_at, p.name
		 FROM skills s
		 JOIN profiles p ON p.id = s.user_id
		 WHERE NOT s.is_approved
		 ORDER BY s.created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PendingSkill, 0)
	for rows.Next() {
		var ps PendingSkill
		if err := rows.Scan(&ps.ID, &ps.UserID, &ps.Name, &ps.Description, &ps.Type, &ps.IsApproved, &ps.CreatedAt, &ps.OwnerName); err != nil {
			return nil, err
		}
		out = append(out, ps)
	}
	return out, rows.Err()
}

func (r *PostgresSkillRepository) CountPending(ctx context.Context) (int, error) {
	var n int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM skills WHERE NOT is_approved`)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresSkillRepository) Count(ctx context.Context) (int, error) {
	var n int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM skills`)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
