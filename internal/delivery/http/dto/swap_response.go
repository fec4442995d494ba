package dto

import (
	"time"

	"skillswap/internal/domain/swap"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type SwapRequestResponse struct {
	ID               uuid.UUID   `json:"id"`
	RequesterID      uuid.UUID   `json:"requester_id"`
	ProviderID       uuid.UUID   `json:"provider_id"`
	RequestedSkillID uuid.UUID   `json:"requested_skill_id"`
	OfferedSkillID   uuid.UUID   `json:"offered_skill_id"`
	Status           swap.Status `json:"status"`
	Message          *string     `json:"message"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

func FromSwapRequest(sr repository.SwapRequest) SwapRequestResponse {
	return SwapRequestResponse{
		ID:               sr.ID,
		RequesterID:      sr.RequesterID,
		ProviderID:       sr.ProviderID,
		RequestedSkillID: sr.RequestedSkillID,
		OfferedSkillID:   sr.OfferedSkillID,
		Status:           sr.Status,
		Message:          sr.Message,
		CreatedAt:        sr.CreatedAt,
		UpdatedAt:        sr.UpdatedAt,
	}
}

type SwapRequestDetailResponse struct {
	SwapRequestResponse
	RequesterName      string `json:"requester_name"`
	ProviderName       string `json:"provider_name"`
	RequestedSkillName string `json:"requested_skill_name"`
	OfferedSkillName   string `json:"offered_skill_name"`
	RatedByViewer      bool   `json:"rated_by_viewer"`
}

func FromSwapRequestDetails(details []repository.SwapRequestDetail) []SwapRequestDetailResponse {
	out := make([]SwapRequestDetailResponse, 0, len(details))
	for _, d := range details {
		out = append(out, SwapRequestDetailResponse{
			SwapRequestResponse: FromSwapRequest(d.SwapRequest),
			RequesterName:       d.RequesterName,
			ProviderName:        d.ProviderName,
			RequestedSkillName:  d.RequestedSkillName,
			OfferedSkillName:    d.OfferedSkillName,
			RatedByViewer:       d.RatedByViewer,
		})
	}
	return out
}
