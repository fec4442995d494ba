package middleware

import (
	"context"
	"errors"

	"skillswap/internal/repository"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type adminChecker interface {
	IsAdmin(ctx context.Context, id uuid.UUID) (bool, error)
}

// AdminMiddleware gates the /admin route group: the caller's profile must
// carry is_admin. Usecases re-verify on their own, so this check is the
// boundary, not the only line.
type AdminMiddleware struct {
	profiles adminChecker
}

func NewAdminMiddleware(profiles adminChecker) *AdminMiddleware {
	return &AdminMiddleware{profiles: profiles}
}

func (m *AdminMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		callerID, ok := CallerID(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		isAdmin, err := m.profiles.IsAdmin(c.Context(), callerID)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				return NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
			}
			return NewAppError(fiber.StatusInternalServerError, "", nil, err)
		}
		if !isAdmin {
			return NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
		}

		return c.Next()
	}
}
