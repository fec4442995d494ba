package dto

import (
	"time"

	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type AdminMessageResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func FromAdminMessage(m repository.AdminMessage) AdminMessageResponse {
	return AdminMessageResponse{ID: m.ID, Title: m.Title, Body: m.Body, CreatedAt: m.CreatedAt}
}

func FromAdminMessages(msgs []repository.AdminMessage) []AdminMessageResponse {
	out := make([]AdminMessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, FromAdminMessage(m))
	}
	return out
}

func FromProfiles(profiles []repository.Profile) []ProfileResponse {
	out := make([]ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, FromProfile(p))
	}
	return out
}
