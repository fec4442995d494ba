package handler

import (
	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/pkg/response"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SkillHandler struct {
	uc usecase.SkillUsecase
}

type addSkillRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Type        string  `json:"type"`
}

func NewSkillHandler(uc usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/skills")
	grp.Get("/", h.List)
	grp.Post("/", h.Add)
	grp.Delete("/:id", h.Remove)
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized()
	}

	items, err := h.uc.ListSkills(c.Context(), callerID)
	if err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromSkills(items))
}

func (h *SkillHandler) Add(c fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized()
	}

	var req addSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	created, err := h.uc.AddSkill(c.Context(), callerID, usecase.AddSkillInput{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		return mapUsecaseError(err, "Skill name and a valid type are required")
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.FromSkill(created))
}

func (h *SkillHandler) Remove(c fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized()
	}

	skillID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(err)
	}

	if err := h.uc.RemoveSkill(c.Context(), callerID, skillID); err != nil {
		return mapUsecaseError(err, "Skill is part of an active swap request")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
