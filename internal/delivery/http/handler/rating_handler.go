package handler

import (
	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/pkg/response"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RatingHandler struct {
	uc usecase.RatingUsecase
}

type submitRatingRequest struct {
	SwapRequestID uuid.UUID `json:"swap_request_id"`
	Rating        int       `json:"rating"`
	Feedback      *string   `json:"feedback"`
}

func NewRatingHandler(uc usecase.RatingUsecase) *RatingHandler {
	return &RatingHandler{uc: uc}
}

func (h *RatingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/ratings", h.Submit)
	r.Get("/users/:id/ratings", h.ListFor)
}

func (h *RatingHandler) Submit(c fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized()
	}

	var req submitRatingRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	created, err := h.uc.SubmitRating(c.Context(), callerID, usecase.SubmitRatingInput{
		SwapRequestID: req.SwapRequestID,
		Rating:        req.Rating,
		Feedback:      req.Feedback,
	})
	if err != nil {
		return mapUsecaseError(err, "Ratings require a completed swap you took part in, once per participant")
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.FromRating(created))
}

func (h *RatingHandler) ListFor(c fiber.Ctx) error {
	if _, ok := middleware.CallerID(c); !ok {
		return unauthorized()
	}

	profileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(err)
	}

	ratings, err := h.uc.ListRatingsFor(c.Context(), profileID)
	if err != nil {
		return mapUsecaseError(err, "")
	}
	agg, err := h.uc.AverageRating(c.Context(), profileID)
	if err != nil {
		return mapUsecaseError(err, "")
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"summary": dto.FromAggregate(agg),
		"ratings": dto.FromRatingsWithRater(ratings),
	})
}
