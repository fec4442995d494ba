package handler

import (
	"errors"

	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/pkg/response"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// mapUsecaseError translates the shared usecase sentinels into transport
// errors. Every handler funnels through here so a given failure kind always
// yields the same status.
func mapUsecaseError(err error, message string) error {
	if err == nil {
		return nil
	}

	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrValidation):
		status = fiber.StatusBadRequest
	case errors.Is(err, usecase.ErrPermission):
		status = fiber.StatusForbidden
	case errors.Is(err, usecase.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, usecase.ErrInvalidTransition), errors.Is(err, usecase.ErrConflict):
		status = fiber.StatusConflict
	}

	if status == fiber.StatusInternalServerError {
		return middleware.NewAppError(status, response.MessageInternalServerError, nil, err)
	}
	if message == "" {
		message = response.DefaultMessageForStatus(status)
	}
	return middleware.NewAppError(status, message, nil, err)
}

func unauthorized() error {
	return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
}

func badRequest(cause error) error {
	return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, cause)
}
