package usecase

import (
	"context"
	"errors"
	"time"

	"skillswap/internal/domain/swap"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

const ratingCacheTTL = 60 * time.Second

type SubmitRatingInput struct {
	SwapRequestID uuid.UUID
	Rating        int
	Feedback      *string
}

type RatingUsecase interface {
	SubmitRating(ctx context.Context, raterID uuid.UUID, in SubmitRatingInput) (repository.Rating, error)
	AverageRating(ctx context.Context, profileID uuid.UUID) (repository.RatingAggregate, error)
	ListRatingsFor(ctx context.Context, profileID uuid.UUID) ([]repository.RatingWithRater, error)
}

type Rating struct {
	ratings  repository.RatingRepository
	requests repository.SwapRequestRepository
	cache    Cache
}

func NewRatingUsecase(ratings repository.RatingRepository, requests repository.SwapRequestRepository, cache Cache) *Rating {
	return &Rating{ratings: ratings, requests: requests, cache: cache}
}

// SubmitRating records feedback on a completed swap. The rated party is
// always derived as the other participant, never taken from the caller, and
// the per-(swap, rater) uniqueness is the database's to enforce.
func (u *Rating) SubmitRating(ctx context.Context, raterID uuid.UUID, in SubmitRatingInput) (repository.Rating, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return repository.Rating{}, ErrValidation
	}
	if in.SwapRequestID == uuid.Nil {
		return repository.Rating{}, ErrValidation
	}

	req, err := u.requests.FindByID(ctx, in.SwapRequestID)
	if err != nil {
		if errors.Is(err, repository.ErrSwapRequestNotFound) {
			return repository.Rating{}, ErrNotFound
		}
		return repository.Rating{}, ErrInternal
	}

	var ratedID uuid.UUID
	switch raterID {
	case req.RequesterID:
		ratedID = req.ProviderID
	case req.ProviderID:
		ratedID = req.RequesterID
	default:
		return repository.Rating{}, ErrPermission
	}

	if req.Status != swap.StatusCompleted {
		return repository.Rating{}, ErrValidation
	}

	created, err := u.ratings.Create(ctx, repository.Rating{
		SwapRequestID: in.SwapRequestID,
		RaterID:       raterID,
		RatedID:       ratedID,
		Rating:        in.Rating,
		Feedback:      in.Feedback,
	})
	if err != nil {
		if errors.Is(err, repository.ErrRatingDuplicate) {
			return repository.Rating{}, ErrConflict
		}
		return repository.Rating{}, ErrInternal
	}

	if u.cache != nil {
		_ = u.cache.Delete(ctx, ratingCacheKey(ratedID))
	}
	return created, nil
}

// AverageRating returns {0, 0} when the profile has no ratings; there is no
// division anywhere on the path.
func (u *Rating) AverageRating(ctx context.Context, profileID uuid.UUID) (repository.RatingAggregate, error) {
	key := ratingCacheKey(profileID)
	if u.cache != nil {
		var cached repository.RatingAggregate
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	agg, err := u.ratings.AggregateFor(ctx, profileID)
	if err != nil {
		return repository.RatingAggregate{}, ErrInternal
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, agg, ratingCacheTTL)
	}
	return agg, nil
}

func (u *Rating) ListRatingsFor(ctx context.Context, profileID uuid.UUID) ([]repository.RatingWithRater, error) {
	out, err := u.ratings.ListFor(ctx, profileID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func ratingCacheKey(profileID uuid.UUID) string {
	return "ratings:avg:" + profileID.String()
}
