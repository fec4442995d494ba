package dto

import (
	"time"

	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type ProfileResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Location     *string   `json:"location"`
	ProfilePhoto *string   `json:"profile_photo"`
	Availability *string   `json:"availability"`
	IsPublic     bool      `json:"is_public"`
	IsAdmin      bool      `json:"is_admin"`
	IsBanned     bool      `json:"is_banned"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func FromProfile(p repository.Profile) ProfileResponse {
	return ProfileResponse{
		ID:           p.ID,
		Name:         p.Name,
		Location:     p.Location,
		ProfilePhoto: p.ProfilePhoto,
		Availability: p.Availability,
		IsPublic:     p.IsPublic,
		IsAdmin:      p.IsAdmin,
		IsBanned:     p.IsBanned,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// PublicProfileResponse is the cross-user view: moderation flags stay private.
type PublicProfileResponse struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Location     *string          `json:"location"`
	ProfilePhoto *string          `json:"profile_photo"`
	Availability *string          `json:"availability"`
	Skills       []SkillResponse  `json:"skills"`
	Rating       RatingSummary    `json:"rating"`
	Reviews      []RatingResponse `json:"reviews"`
}
