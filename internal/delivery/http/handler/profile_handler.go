package handler

import (
	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/pkg/response"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

type ensureProfileRequest struct {
	Name string `json:"name"`
}

type updateProfileRequest struct {
	Name         *string `json:"name"`
	Location     *string `json:"location"`
	ProfilePhoto *string `json:"profile_photo"`
	Availability *string `json:"availability"`
	IsPublic     *bool   `json:"is_public"`
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	me := r.Group("/me")
	me.Get("/", h.Me)
	me.Post("/", h.Ensure)
	me.Put("/", h.Update)

	r.Get("/users/:id", h.PublicProfile)
}

func (h *ProfileHandler) Me(c fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized()
	}

	p, err := h.uc.GetProfile(c.Context(), callerID)
	if err != nil {
		return mapUsecaseError(err, "Profile not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromProfile(p))
}

func (h *ProfileHandler) Ensure(c fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized()
	}

	var req ensureProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	p, err := h.uc.EnsureProfile(c.Context(), callerID, req.Name)
	if err != nil {
		return mapUsecaseError(err, "Name is required")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromProfile(p))
}

func (h *ProfileHandler) Update(c fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized()
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	p, err := h.uc.UpdateProfile(c.Context(), callerID, usecase.UpdateProfileInput{
		Name:         req.Name,
		Location:     req.Location,
		ProfilePhoto: req.ProfilePhoto,
		Availability: req.Availability,
		IsPublic:     req.IsPublic,
	})
	if err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromProfile(p))
}

func (h *ProfileHandler) PublicProfile(c fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized()
	}

	profileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(err)
	}

	view, err := h.uc.PublicProfile(c.Context(), callerID, profileID)
	if err != nil {
		return mapUsecaseError(err, "Profile not found")
	}

	res := dto.PublicProfileResponse{
		ID:           view.Profile.ID,
		Name:         view.Profile.Name,
		Location:     view.Profile.Location,
		ProfilePhoto: view.Profile.ProfilePhoto,
		Availability: view.Profile.Availability,
		Skills:       dto.FromSkills(view.Skills),
		Rating:       dto.FromAggregate(view.Rating),
		Reviews:      dto.FromRatingsWithRater(view.Reviews),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}
