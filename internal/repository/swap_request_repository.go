package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"skillswap/internal/database"
	"skillswap/internal/domain/swap"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrSwapRequestNotFound = errors.New("swap request not found")
	// ErrSwapPreconditionFailed is returned when the guarded insert matched no
	// rows: a referenced skill is missing, unapproved, wrong type, owned by
	// the wrong side, or the provider is not visible.
	ErrSwapPreconditionFailed = errors.New("swap request preconditions not met")
)

type SwapRequest struct {
	ID               uuid.UUID
	RequesterID      uuid.UUID
	ProviderID       uuid.UUID
	RequestedSkillID uuid.UUID
	OfferedSkillID   uuid.UUID
	Status           swap.Status
	Message          *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type CreateSwapRequestParams struct {
	RequesterID      uuid.UUID
	ProviderID       uuid.UUID
	RequestedSkillID uuid.UUID
	OfferedSkillID   uuid.UUID
	Message          *string
}

// SwapRequestDetail is the nested listing view: the request plus both party
// names, both skill names, and whether the viewer already rated it.
type SwapRequestDetail struct {
	SwapRequest
	RequesterName      string
	ProviderName       string
	RequestedSkillName string
	OfferedSkillName   string
	RatedByViewer      bool
}

type SwapRequestRepository interface {
	Create(ctx context.Context, params CreateSwapRequestParams) (SwapRequest, error)
	FindByID(ctx context.Context, id uuid.UUID) (SwapRequest, error)
	UpdateStatusCAS(ctx context.Context, id uuid.UUID, from, to swap.Status) (bool, error)
	DeleteOwned(ctx context.Context, id uuid.UUID, requesterID uuid.UUID) (bool, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]SwapRequestDetail, error)
	ListAll(ctx context.Context) ([]SwapRequestDetail, error)
	Count(ctx context.Context) (int, error)
}

type PostgresSwapRequestRepository struct {
	db database.DB
}

func NewPostgresSwapRequestRepository(db database.DB) *PostgresSwapRequestRepository {
	return &PostgresSwapRequestRepository{db: db}
}

const swapRequestColumns = `id, requester_id, provider_id, requested_skill_id, offered_skill_id, status, message, created_at, updated_at`

func scanSwapRequest(row database.Row) (SwapRequest, error) {
	var sr SwapRequest
	err := row.Scan(&sr.ID, &sr.RequesterID, &sr.ProviderID, &sr.RequestedSkillID,
		&sr.OfferedSkillID, &sr.Status, &sr.Message, &sr.CreatedAt, &sr.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return SwapRequest{}, ErrSwapRequestNotFound
		}
		return SwapRequest{}, err
	}
	return sr, nil
}

// Create inserts a pending request with every precondition folded into the
// statement: both skills approved, offered-type, owned by the right side, and
// the provider public and un-banned. No rows selected means a precondition
// failed, and nothing was written.
func (r *PostgresSwapRequestRepository) Create(ctx context.Context, params CreateSwapRequestParams) (SwapRequest, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO swap_requests (requester_id, provider_id, requested_skill_id, offered_skill_id, message)
		 SELECT $1, $2, $3, $4, $5
		 FROM skills mine
		 JOIN skills theirs ON theirs.id = $3
		 JOIN profiles prov ON prov.id = $2
		 WHERE mine.id = $4
		   AND mine.user_id = $1 AND mine.type = 'offered' AND mine.is_approved
		   AND theirs.user_id = $2 AND theirs.type = 'offered' AND theirs.is_approved
		   AND prov.is_public AND NOT prov.is_banned
		   AND $1::uuid <> $2::uuid
		 RETURNING `+swapRequestColumns,
		params.RequesterID, params.ProviderID, params.RequestedSkillID, params.OfferedSkillID, params.Message,
	)

	sr, err := scanSwapRequest(row)
	if err != nil {
		if errors.Is(err, ErrSwapRequestNotFound) {
			return SwapRequest{}, ErrSwapPreconditionFailed
		}
		return SwapRequest{}, err
	}
	return sr, nil
}

func (r *PostgresSwapRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (SwapRequest, error) {
	row := r.db.QueryRow(ctx, `SELECT `+swapRequestColumns+` FROM swap_requests WHERE id = $1`, id)
	return scanSwapRequest(row)
}

// UpdateStatusCAS performs the compare-and-swap on status. It reports whether
// the row was updated; false means the stored status no longer matches `from`
// (concurrent transition won) or the row does not exist.
func (r *PostgresSwapRequestRepository) UpdateStatusCAS(ctx context.Context, id uuid.UUID, from, to swap.Status) (bool, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE swap_requests SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
		id, from, to,
	)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// DeleteOwned removes a request only while the requester may still withdraw
// it. It reports whether a row was deleted.
func (r *PostgresSwapRequestRepository) DeleteOwned(ctx context.Context, id uuid.UUID, requesterID uuid.UUID) (bool, error) {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM swap_requests
		 WHERE id = $1 AND requester_id = $2 AND status IN ('pending', 'rejected')`,
		id, requesterID,
	)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

const swapRequestDetailSelect = `
SELECT sr.id, sr.requester_id, sr.provider_id, sr.requested_skill_id, sr.offered_skill_id,
       sr.status, sr.message, sr.created_at, sr.updated_at,
       req.name, prov.name, rs.name, os.name,
       EXISTS(SELECT 1 FROM ratings rt WHERE rt.swap_request_id = sr.id AND rt.rater_id = $1)
FROM swap_requests sr
JOIN profiles req ON req.id = sr.requester_id
JOIN profiles prov ON prov.id = sr.provider_id
JOIN skills rs ON rs.id = sr.requested_skill_id
JOIN skills os ON os.id = sr.offered_skill_id`

func (r *PostgresSwapRequestRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]SwapRequestDetail, error) {
	return r.listDetails(ctx,
		swapRequestDetailSelect+`
		 WHERE sr.requester_id = $1 OR sr.provider_id = $1
		 ORDER BY sr.created_at DESC`,
		userID,
	)
}

func (r *PostgresSwapRequestRepository) ListAll(ctx context.Context) ([]SwapRequestDetail, error) {
	return r.listDetails(ctx,
		swapRequestDetailSelect+` ORDER BY sr.created_at DESC`,
		uuid.Nil,
	)
}

func (r *PostgresSwapRequestRepository) listDetails(ctx context.Context, query string, viewerID uuid.UUID) ([]SwapRequestDetail, error) {
	rows, err := r.db.Query(ctx, query, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SwapRequestDetail, 0)
	for rows.Next() {
		var d SwapRequestDetail
		if err := rows.Scan(&d.ID, &d.RequesterID, &d.ProviderID, &d.RequestedSkillID, &d.OfferedSkillID,
			&d.Status, &d.Message, &d.CreatedAt, &d.UpdatedAt,
			&d.RequesterName, &d.ProviderName, &d.RequestedSkillName, &d.OfferedSkillName,
			&d.RatedByViewer); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *PostgresSwapRequestRepository) Count(ctx context.Context) (int, error) {
	var n int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM swap_requests`)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
