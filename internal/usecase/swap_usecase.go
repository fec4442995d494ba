package usecase

import (
	"context"
	"errors"

	"skillswap/internal/domain/swap"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type CreateSwapRequestInput struct {
	ProviderID       uuid.UUID
	OfferedSkillID   uuid.UUID
	RequestedSkillID uuid.UUID
	Message          *string
}

type SwapUsecase interface {
	CreateRequest(ctx context.Context, requesterID uuid.UUID, in CreateSwapRequestInput) (repository.SwapRequest, error)
	Transition(ctx context.Context, requestID, callerID uuid.UUID, target swap.Status) (repository.SwapRequest, error)
	DeleteRequest(ctx context.Context, requestID, callerID uuid.UUID) error
	ListRequests(ctx context.Context, callerID uuid.UUID) ([]repository.SwapRequestDetail, error)
}

type Swap struct {
	requests repository.SwapRequestRepository
}

func NewSwapUsecase(requests repository.SwapRequestRepository) *Swap {
	return &Swap{requests: requests}
}

func (u *Swap) CreateRequest(ctx context.Context, requesterID uuid.UUID, in CreateSwapRequestInput) (repository.SwapRequest, error) {
	if in.ProviderID == uuid.Nil || in.OfferedSkillID == uuid.Nil || in.RequestedSkillID == uuid.Nil {
		return repository.SwapRequest{}, ErrValidation
	}
	if in.ProviderID == requesterID {
		return repository.SwapRequest{}, ErrValidation
	}

	created, err := u.requests.Create(ctx, repository.CreateSwapRequestParams{
		RequesterID:      requesterID,
		ProviderID:       in.ProviderID,
		RequestedSkillID: in.RequestedSkillID,
		OfferedSkillID:   in.OfferedSkillID,
		Message:          in.Message,
	})
	if err != nil {
		if errors.Is(err, repository.ErrSwapPreconditionFailed) {
			return repository.SwapRequest{}, ErrValidation
		}
		return repository.SwapRequest{}, ErrInternal
	}
	return created, nil
}

// Transition drives one edge of the lifecycle. Authority comes from the
// domain table; the write is a compare-and-swap on the observed status, so
// two racing callers get exactly one success and one conflict.
func (u *Swap) Transition(ctx context.Context, requestID, callerID uuid.UUID, target swap.Status) (repository.SwapRequest, error) {
	if !swap.ValidStatus(target) {
		return repository.SwapRequest{}, ErrValidation
	}

	req, err := u.requests.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrSwapRequestNotFound) {
			return repository.SwapRequest{}, ErrNotFound
		}
		return repository.SwapRequest{}, ErrInternal
	}

	edgeOK, roleOK := swap.Authorize(req.Status, target, roleOf(req, callerID))
	if !edgeOK {
		return repository.SwapRequest{}, ErrInvalidTransition
	}
	if !roleOK {
		return repository.SwapRequest{}, ErrPermission
	}

	swapped, err := u.requests.UpdateStatusCAS(ctx, requestID, req.Status, target)
	if err != nil {
		return repository.SwapRequest{}, ErrInternal
	}
	if !swapped {
		// The status moved between our read and the CAS.
		if _, err := u.requests.FindByID(ctx, requestID); errors.Is(err, repository.ErrSwapRequestNotFound) {
			return repository.SwapRequest{}, ErrNotFound
		}
		return repository.SwapRequest{}, ErrConflict
	}

	updated, err := u.requests.FindByID(ctx, requestID)
	if err != nil {
		return repository.SwapRequest{}, ErrInternal
	}
	return updated, nil
}

// DeleteRequest lets the requester withdraw while the request is pending or
// rejected. Nobody else deletes, ever.
func (u *Swap) DeleteRequest(ctx context.Context, requestID, callerID uuid.UUID) error {
	req, err := u.requests.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrSwapRequestNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}

	if req.RequesterID != callerID {
		return ErrPermission
	}
	if !swap.Deletable(req.Status) {
		return ErrInvalidTransition
	}

	deleted, err := u.requests.DeleteOwned(ctx, requestID, callerID)
	if err != nil {
		return ErrInternal
	}
	if !deleted {
		// A transition raced the delete out of the withdrawable window.
		if _, err := u.requests.FindByID(ctx, requestID); errors.Is(err, repository.ErrSwapRequestNotFound) {
			return ErrNotFound
		}
		return ErrConflict
	}
	return nil
}

func (u *Swap) ListRequests(ctx context.Context, callerID uuid.UUID) ([]repository.SwapRequestDetail, error) {
	out, err := u.requests.ListForUser(ctx, callerID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func roleOf(req repository.SwapRequest, callerID uuid.UUID) swap.Role {
	switch callerID {
	case req.RequesterID:
		return swap.RoleRequester
	case req.ProviderID:
		return swap.RoleProvider
	}
	return swap.RoleNone
}
