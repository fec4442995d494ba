package dto

import (
	"time"

	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type RatingResponse struct {
	ID            uuid.UUID `json:"id"`
	SwapRequestID uuid.UUID `json:"swap_request_id"`
	RaterID       uuid.UUID `json:"rater_id"`
	RaterName     string    `json:"rater_name,omitempty"`
	RatedID       uuid.UUID `json:"rated_id"`
	Rating        int       `json:"rating"`
	Feedback      *string   `json:"feedback"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromRating(r repository.Rating) RatingResponse {
	return RatingResponse{
		ID:            r.ID,
		SwapRequestID: r.SwapRequestID,
		RaterID:       r.RaterID,
		RatedID:       r.RatedID,
		Rating:        r.Rating,
		Feedback:      r.Feedback,
		CreatedAt:     r.CreatedAt,
	}
}

func FromRatingsWithRater(ratings []repository.RatingWithRater) []RatingResponse {
	out := make([]RatingResponse, 0, len(ratings))
	for _, r := range ratings {
		resp := FromRating(r.Rating)
		resp.RaterName = r.RaterName
		out = append(out, resp)
	}
	return out
}

// RatingSummary reports count alongside average so consumers can tell "no
// data" apart from a genuine zero.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

func FromAggregate(agg repository.RatingAggregate) RatingSummary {
	return RatingSummary{Average: agg.Average, Count: agg.Count}
}
