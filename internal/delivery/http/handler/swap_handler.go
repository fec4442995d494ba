package handler

import (
	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/domain/swap"
	"skillswap/internal/pkg/response"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SwapHandler struct {
	uc usecase.SwapUsecase
}

type createSwapRequest struct {
	ProviderID       uuid.UUID `json:"provider_id"`
	OfferedSkillID   uuid.UUID `json:"offered_skill_id"`
	RequestedSkillID uuid.UUID `json:"requested_skill_id"`
	Message          *string   `json:"message"`
}

func NewSwapHandler(uc usecase.SwapUsecase) *SwapHandler {
	return &SwapHandler{uc: uc}
}

func (h *SwapHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/swaps")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Post("/:id/accept", h.transitionTo(swap.StatusAccepted))
	grp.Post("/:id/reject", h.transitionTo(swap.StatusRejected))
	grp.Post("/:id/cancel", h.transitionTo(swap.StatusCancelled))
	grp.Post("/:id/complete", h.transitionTo(swap.StatusCompleted))
	grp.Delete("/:id", h.Delete)
}

func (h *SwapHandler) List(c fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized()
	}

	items, err := h.uc.ListRequests(c.Context(), callerID)
	if err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromSwapRequestDetails(items))
}

func (h *SwapHandler) Create(c fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized()
	}

	var req createSwapRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	created, err := h.uc.CreateRequest(c.Context(), callerID, usecase.CreateSwapRequestInput{
		ProviderID:       req.ProviderID,
		OfferedSkillID:   req.OfferedSkillID,
		RequestedSkillID: req.RequestedSkillID,
		Message:          req.Message,
	})
	if err != nil {
		return mapUsecaseError(err, "Both skills must be approved, offered by their owners, and the provider visible")
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.FromSwapRequest(created))
}

func (h *SwapHandler) transitionTo(target swap.Status) fiber.Handler {
	return func(c fiber.Ctx) error {
		callerID, ok := middleware.CallerID(c)
		if !ok {
			return unauthorized()
		}

		requestID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return badRequest(err)
		}

		updated, err := h.uc.Transition(c.Context(), requestID, callerID, target)
		if err != nil {
			return mapUsecaseError(err, "Transition to "+string(target)+" is not allowed from the current status")
		}
		return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromSwapRequest(updated))
	}
}

func (h *SwapHandler) Delete(c fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized()
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(err)
	}

	if err := h.uc.DeleteRequest(c.Context(), requestID, callerID); err != nil {
		return mapUsecaseError(err, "Only the requester may withdraw a pending or rejected request")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
