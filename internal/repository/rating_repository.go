package repository

import (
	"context"
	"errors"
	"time"

	"skillswap/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrRatingDuplicate is returned when the (swap_request_id, rater_id) unique
// constraint rejects a second rating of the same swap by the same rater.
var ErrRatingDuplicate = errors.New("rating already submitted for this swap")

type Rating struct {
	ID            uuid.UUID
	SwapRequestID uuid.UUID
	RaterID       uuid.UUID
	RatedID       uuid.UUID
	Rating        int
	Feedback      *string
	CreatedAt     time.Time
}

type RatingWithRater struct {
	Rating
	RaterName string
}

type RatingAggregate struct {
	Average float64
	Count   int
}

type RatingRepository interface {
	Create(ctx context.Context, rt Rating) (Rating, error)
	AggregateFor(ctx context.Context, profileID uuid.UUID) (RatingAggregate, error)
	ListFor(ctx context.Context, profileID uuid.UUID) ([]RatingWithRater, error)
}

type PostgresRatingRepository struct {
	db database.DB
}

func NewPostgresRatingRepository(db database.DB) *PostgresRatingRepository {
	return &PostgresRatingRepository{db: db}
}

// Create relies on the unique constraint for duplicate detection instead of a
// read-then-insert, so two concurrent submissions cannot both land.
func (r *PostgresRatingRepository) Create(ctx context.Context, rt Rating) (Rating, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO ratings (swap_request_id, rater_id, rated_id, rating, feedback)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, swap_request_id, rater_id, rated_id, rating, feedback, created_at`,
		rt.SwapRequestID, rt.RaterID, rt.RatedID, rt.Rating, rt.Feedback,
	)

	var created Rating
	err := row.Scan(&created.ID, &created.SwapRequestID, &created.RaterID, &created.RatedID,
		&created.Rating, &created.Feedback, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Rating{}, ErrRatingDuplicate
		}
		return Rating{}, err
	}
	return created, nil
}

// AggregateFor never divides: AVG over zero rows coalesces to 0.
func (r *PostgresRatingRepository) AggregateFor(ctx context.Context, profileID uuid.UUID) (RatingAggregate, error) {
	var agg RatingAggregate
	row := r.db.QueryRow(ctx,
		`SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM ratings WHERE rated_id = $1`,
		profileID,
	)
	if err := row.Scan(&agg.Average, &agg.Count); err != nil {
		return RatingAggregate{}, err
	}
	return agg, nil
}

func (r *PostgresRatingRepository) ListFor(ctx context.Context, profileID uuid.UUID) ([]RatingWithRater, error) {
	rows, err := r.db.Query(ctx,
		`SELECT rt.id, rt.swap_request_id, rt.rater_id, rt.rated_id, rt.rating, rt.feedback, rt.created_at, p.name
		 FROM ratings rt
		 JOIN profiles p ON p.id = rt.rater_id
		 WHERE rt.rated_id = $1
		 ORDER BY rt.created_at DESC`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RatingWithRater, 0)
	for rows.Next() {
		var rwr RatingWithRater
		if err := rows.Scan(&rwr.ID, &rwr.SwapRequestID, &rwr.RaterID, &rwr.RatedID,
			&rwr.Rating, &rwr.Feedback, &rwr.CreatedAt, &rwr.RaterName); err != nil {
			return nil, err
		}
		out = append(out, rwr)
	}
	return out, rows.Err()
}
