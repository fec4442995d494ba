package handler

import (
	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/pkg/response"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// AdminHandler serves the moderation surface. Every route except
// Announcements sits behind the admin gate middleware; the usecases
// re-verify the admin flag on their own as well.
type AdminHandler struct {
	admin    usecase.AdminUsecase
	skills   usecase.SkillUsecase
	profiles usecase.ProfileUsecase
}

type banRequest struct {
	Banned bool `json:"banned"`
}

type moderateRequest struct {
	Approve bool `json:"approve"`
}

type broadcastRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func NewAdminHandler(admin usecase.AdminUsecase, skills usecase.SkillUsecase, profiles usecase.ProfileUsecase) *AdminHandler {
	return &AdminHandler{admin: admin, skills: skills, profiles: profiles}
}

func (h *AdminHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/stats", h.Stats)
	r.Get("/users", h.ListUsers)
	r.Put("/users/:id/ban", h.SetBanned)
	r.Get("/skills/pending", h.PendingSkills)
	r.Post("/skills/:id/moderate", h.ModerateSkill)
	r.Get("/swaps", h.ListSwaps)
	r.Post("/messages", h.Broadcast)
}

// RegisterPublicRoutes exposes the announcement feed to every
// authenticated user.
func (h *AdminHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/announcements", h.Announcements)
}

func (h *AdminHandler) Stats(c fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized()
	}

	stats, err := h.admin.Stats(c.Context(), callerID)
	if err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, stats)
}

func (h *AdminHandler) ListUsers(c fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized()
	}

	profiles, err := h.admin.ListProfiles(c.Context(), callerID)
	if err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromProfiles(profiles))
}

func (h *AdminHandler) SetBanned(c fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized()
	}

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(err)
	}

	var req banRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	if err := h.profiles.SetBanned(c.Context(), callerID, targetID, req.Banned); err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *AdminHandler) PendingSkills(c fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized()
	}

	pending, err := h.skills.ListPendingSkills(c.Context(), callerID)
	if err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromPendingSkills(pending))
}

func (h *AdminHandler) ModerateSkill(c fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized()
	}

	skillID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(err)
	}

	var req moderateRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	if err := h.skills.Moderate(c.Context(), callerID, skillID, req.Approve); err != nil {
		return mapUsecaseError(err, "Skill is part of an active swap request")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *AdminHandler) ListSwaps(c fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized()
	}

	items, err := h.admin.ListAllRequests(c.Context(), callerID)
	if err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromSwapRequestDetails(items))
}

func (h *AdminHandler) Broadcast(c fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized()
	}

	var req broadcastRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	created, err := h.admin.BroadcastMessage(c.Context(), callerID, req.Title, req.Body)
	if err != nil {
		return mapUsecaseError(err, "Announcement title and body must not be blank")
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.FromAdminMessage(created))
}

func (h *AdminHandler) Announcements(c fiber.Ctx) error {
	if _, ok := middleware.CallerID(c); !ok {
		return unauthorized()
	}

	msgs, err := h.admin.Announcements(c.Context())
	if err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromAdminMessages(msgs))
}
