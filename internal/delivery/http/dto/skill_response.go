package dto

import (
	"time"

	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type SkillResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Type        string    `json:"type"`
	IsApproved  bool      `json:"is_approved"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromSkill(s repository.Skill) SkillResponse {
	return SkillResponse{
		ID:          s.ID,
		UserID:      s.UserID,
		Name:        s.Name,
		Description: s.Description,
		Type:        s.Type,
		IsApproved:  s.IsApproved,
		CreatedAt:   s.CreatedAt,
	}
}

func FromSkills(skills []repository.Skill) []SkillResponse {
	out := make([]SkillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, FromSkill(s))
	}
	return out
}

type PendingSkillResponse struct {
	SkillResponse
	OwnerName string `json:"owner_name"`
}

func FromPendingSkills(skills []repository.PendingSkill) []PendingSkillResponse {
	out := make([]PendingSkillResponse, 0, len(skills))
	for _, ps := range skills {
		out = append(out, PendingSkillResponse{SkillResponse: FromSkill(ps.Skill), OwnerName: ps.OwnerName})
	}
	return out
}
