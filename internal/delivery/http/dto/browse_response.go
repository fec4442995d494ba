package dto

import (
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type BrowseProfileResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Location     *string         `json:"location"`
	ProfilePhoto *string         `json:"profile_photo"`
	Availability *string         `json:"availability"`
	Skills       []SkillResponse `json:"skills"`
}

func FromBrowseProfiles(profiles []repository.BrowseProfile) []BrowseProfileResponse {
	out := make([]BrowseProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, BrowseProfileResponse{
			ID:           p.ID,
			Name:         p.Name,
			Location:     p.Location,
			ProfilePhoto: p.ProfilePhoto,
			Availability: p.Availability,
			Skills:       FromSkills(p.Skills),
		})
	}
	return out
}
