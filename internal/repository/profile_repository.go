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

var ErrProfileNotFound = errors.New("profile not found")

type Profile struct {
	ID           uuid.UUID
	Name         string
	Location     *string
	ProfilePhoto *string
	Availability *string
	IsPublic     bool
	IsAdmin      bool
	IsBanned     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UpdateProfileParams carries owner-editable fields only. Nil means "leave
// unchanged". is_admin and is_banned are deliberately absent: no SQL built
// from these params ever touches those columns.
type UpdateProfileParams struct {
	Name         *string
	Location     *string
	ProfilePhoto *string
	Availability *string
	IsPublic     *bool
}

type BrowseProfile struct {
	ID           uuid.UUID
	Name         string
	Location     *string
	ProfilePhoto *string
	Availability *string
	Skills       []Skill
}

type ProfileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (Profile, error)
	Ensure(ctx context.Context, id uuid.UUID, name string) (Profile, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateProfileParams) (Profile, error)
	SetBanned(ctx context.Context, id uuid.UUID, banned bool) error
	IsAdmin(ctx context.Context, id uuid.UUID) (bool, error)
	ListAll(ctx context.Context) ([]Profile, error)
	Browse(ctx context.Context, viewerID uuid.UUID, search string) ([]BrowseProfile, error)
	Count(ctx context.Context) (int, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

const profileColumns = `id, name, location, profile_photo, availability, is_public, is_admin, is_banned, created_at, updated_at`

func scanProfile(row database.Row) (Profile, error) {
	var p Profile
	err := row.Scan(&p.ID, &p.Name, &p.Location, &p.ProfilePhoto, &p.Availability,
		&p.IsPublic, &p.IsAdmin, &p.IsBanned, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrProfileNotFound
		}
		return Profile{}, err
	}
	return p, nil
}

func (r *PostgresProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	return scanProfile(row)
}

// Ensure creates the profile row on first sign-in. The insert is a no-op when
// the row already exists, so repeated calls are idempotent.
func (r *PostgresProfileRepository) Ensure(ctx context.Context, id uuid.UUID, name string) (Profile, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO profiles (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
		id, name,
	)
	if err != nil {
		return Profile{}, err
	}
	return r.FindByID(ctx, id)
}

func (r *PostgresProfileRepository) Update(ctx context.Context, id uuid.UUID, params UpdateProfileParams) (Profile, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE profiles
		 SET name = COALESCE($2, name),
		     location = COALESCE($3, location),
		     profile_photo = COALESCE($4, profile_photo),
		     availability = COALESCE($5, availability),
		     is_public = COALESCE($6, is_public),
		     updated_at = now()
		 WHERE id = $1
		 RETURNING `+profileColumns,
		id, params.Name, params.Location, params.ProfilePhoto, params.Availability, params.IsPublic,
	)
	return scanProfile(row)
}

func (r *PostgresProfileRepository) SetBanned(ctx context.Context, id uuid.UUID, banned bool) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE profiles SET is_banned = $2, updated_at = now() WHERE id = $1`,
		id, banned,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *PostgresProfileRepository) IsAdmin(ctx context.Context, id uuid.UUID) (bool, error) {
	var isAdmin bool
	row := r.db.QueryRow(ctx, `SELECT is_admin FROM profiles WHERE id = $1`, id)
	if err := row.Scan(&isAdmin); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return false, ErrProfileNotFound
		}
		return false, err
	}
	return isAdmin, nil
}

func (r *PostgresProfileRepository) ListAll(ctx context.Context) ([]Profile, error) {
	rows, err := r.db.Query(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Profile, 0)
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.Name, &p.Location, &p.ProfilePhoto, &p.Availability,
			&p.IsPublic, &p.IsAdmin, &p.IsBanned, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Browse lists public, un-banned profiles other than the viewer together with
// their approved skills. The search term matches profile name, location, or
// any approved skill name, case-insensitively.
func (r *PostgresProfileRepository) Browse(ctx context.Context, viewerID uuid.UUID, search string) ([]BrowseProfile, error) {
	pattern := "%" + search + "%"
	rows, err := r.db.Query(ctx,
		`SELECT p.id, p.name, p.location, p.profile_photo, p.availability
		 FROM profiles p
		 WHERE p.is_public AND NOT p.is_banned AND p.id <> $1
		   AND ($2 = '' OR p.name ILIKE $3 OR p.location ILIKE $3 OR EXISTS (
		        SELECT 1 FROM skills s
		        WHERE s.user_id = p.id AND s.is_approved AND s.name ILIKE $3))
		 ORDER BY p.created_at DESC`,
		viewerID, search, pattern,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]BrowseProfile, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var p BrowseProfile
		if err := rows.Scan(&p.ID, &p.Name, &p.Location, &p.ProfilePhoto, &p.Availability); err != nil {
			return nil, err
		}
		p.Skills = []Skill{}
		profiles = append(profiles, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return profiles, nil
	}

	skillRows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, description, type, is_approved, created_at
		 FROM skills
		 WHERE is_approved AND user_id = ANY($1)
		 ORDER BY name ASC`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer skillRows.Close()

	byOwner := make(map[uuid.UUID][]Skill, len(profiles))
	for skillRows.Next() {
		var s Skill
		if err := skillRows.Scan(&s.ID, &s.UserID, &s.Name, &s.Description, &s.Type, &s.IsApproved, &s.CreatedAt); err != nil {
			return nil, err
		}
		byOwner[s.UserID] = append(byOwner[s.UserID], s)
	}
	if err := skillRows.Err(); err != nil {
		return nil, err
	}

	for i := range profiles {
		if skills, ok := byOwner[profiles[i].ID]; ok {
			profiles[i].Skills = skills
		}
	}
	return profiles, nil
}

func (r *PostgresProfileRepository) Count(ctx context.Context) (int, error) {
	var n int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
