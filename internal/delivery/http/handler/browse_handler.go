package handler

import (
	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/pkg/response"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type BrowseHandler struct {
	uc usecase.BrowseUsecase
}

func NewBrowseHandler(uc usecase.BrowseUsecase) *BrowseHandler {
	return &BrowseHandler{uc: uc}
}

func (h *BrowseHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/browse", h.Browse)
}

func (h *BrowseHandler) Browse(c fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized()
	}

	profiles, err := h.uc.Browse(c.Context(), callerID, c.Query("q"))
	if err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromBrowseProfiles(profiles))
}
