package usecase

import (
	"context"
	"errors"
	"testing"

	"skillswap/internal/domain/swap"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type mockSwapRepo struct {
	req       repository.SwapRequest
	findErr   error
	createErr error

	casOK     bool
	casErr    error
	deleteOK  bool
	deleteErr error

	casCalls    int
	deleteCalls int
}

func (m *mockSwapRepo) Create(_ context.Context, p repository.CreateSwapRequestParams) (repository.SwapRequest, error) {
	if m.createErr != nil {
		return repository.SwapRequest{}, m.createErr
	}
	return repository.SwapRequest{
		ID:               uuid.New(),
		RequesterID:      p.RequesterID,
		ProviderID:       p.ProviderID,
		RequestedSkillID: p.RequestedSkillID,
		OfferedSkillID:   p.OfferedSkillID,
		Status:           swap.StatusPending,
		Message:          p.Message,
	}, nil
}

func (m *mockSwapRepo) FindByID(context.Context, uuid.UUID) (repository.SwapRequest, error) {
	if m.findErr != nil {
		return repository.SwapRequest{}, m.findErr
	}
	return m.req, nil
}

func (m *mockSwapRepo) UpdateStatusCAS(_ context.Context, _ uuid.UUID, _, to swap.Status) (bool, error) {
	m.casCalls++
	if m.casErr != nil {
		return false, m.casErr
	}
	if m.casOK {
		m.req.Status = to
	}
	return m.casOK, nil
}

func (m *mockSwapRepo) DeleteOwned(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	m.deleteCalls++
	if m.deleteErr != nil {
		return false, m.deleteErr
	}
	return m.deleteOK, nil
}

func (m *mockSwapRepo) ListForUser(context.Context, uuid.UUID) ([]repository.SwapRequestDetail, error) {
	return nil, nil
}
func (m *mockSwapRepo) ListAll(context.Context) ([]repository.SwapRequestDetail, error) {
	return nil, nil
}
func (m *mockSwapRepo) Count(context.Context) (int, error) { return 0, nil }

func pendingRequest(requester, provider uuid.UUID) repository.SwapRequest {
	return repository.SwapRequest{
		ID:               uuid.New(),
		RequesterID:      requester,
		ProviderID:       provider,
		RequestedSkillID: uuid.New(),
		OfferedSkillID:   uuid.New(),
		Status:           swap.StatusPending,
	}
}

func TestSwapUsecase_CreateRequest_RejectsMissingIDs(t *testing.T) {
	uc := NewSwapUsecase(&mockSwapRepo{})
	requester := uuid.New()

	cases := []CreateSwapRequestInput{
		{ProviderID: uuid.Nil, OfferedSkillID: uuid.New(), RequestedSkillID: uuid.New()},
		{ProviderID: uuid.New(), OfferedSkillID: uuid.Nil, RequestedSkillID: uuid.New()},
		{ProviderID: uuid.New(), OfferedSkillID: uuid.New(), RequestedSkillID: uuid.Nil},
	}
	for i, in := range cases {
		if _, err := uc.CreateRequest(context.Background(), requester, in); !errors.Is(err, ErrValidation) {
			t.Fatalf("case %d: expected ErrValidation, got %v", i, err)
		}
	}
}

func TestSwapUsecase_CreateRequest_RejectsSelfSwap(t *testing.T) {
	uc := NewSwapUsecase(&mockSwapRepo{})
	requester := uuid.New()

	_, err := uc.CreateRequest(context.Background(), requester, CreateSwapRequestInput{
		ProviderID:       requester,
		OfferedSkillID:   uuid.New(),
		RequestedSkillID: uuid.New(),
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for self swap, got %v", err)
	}
}

func TestSwapUsecase_CreateRequest_PreconditionFailure(t *testing.T) {
	uc := NewSwapUsecase(&mockSwapRepo{createErr: repository.ErrSwapPreconditionFailed})

	_, err := uc.CreateRequest(context.Background(), uuid.New(), CreateSwapRequestInput{
		ProviderID:       uuid.New(),
		OfferedSkillID:   uuid.New(),
		RequestedSkillID: uuid.New(),
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSwapUsecase_CreateRequest_StartsPending(t *testing.T) {
	uc := NewSwapUsecase(&mockSwapRepo{})

	created, err := uc.CreateRequest(context.Background(), uuid.New(), CreateSwapRequestInput{
		ProviderID:       uuid.New(),
		OfferedSkillID:   uuid.New(),
		RequestedSkillID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.Status != swap.StatusPending {
		t.Fatalf("new request must start pending, got %s", created.Status)
	}
}

func TestSwapUsecase_Transition_AuthorityMatrix(t *testing.T) {
	requester := uuid.New()
	provider := uuid.New()
	stranger := uuid.New()

	cases := []struct {
		name    string
		from    swap.Status
		target  swap.Status
		caller  uuid.UUID
		wantErr error
	}{
		{"provider accepts pending", swap.StatusPending, swap.StatusAccepted, provider, nil},
		{"provider rejects pending", swap.StatusPending, swap.StatusRejected, provider, nil},
		{"requester cancels pending", swap.StatusPending, swap.StatusCancelled, requester, nil},
		{"requester completes accepted", swap.StatusAccepted, swap.StatusCompleted, requester, nil},
		{"provider completes accepted", swap.StatusAccepted, swap.StatusCompleted, provider, nil},

		{"requester cannot accept own request", swap.StatusPending, swap.StatusAccepted, requester, ErrPermission},
		{"provider cannot cancel", swap.StatusPending, swap.StatusCancelled, provider, ErrPermission},
		{"stranger cannot accept", swap.StatusPending, swap.StatusAccepted, stranger, ErrPermission},

		{"cannot complete pending", swap.StatusPending, swap.StatusCompleted, requester, ErrInvalidTransition},
		{"cannot accept accepted", swap.StatusAccepted, swap.StatusAccepted, provider, ErrInvalidTransition},
		{"completed is terminal", swap.StatusCompleted, swap.StatusCancelled, requester, ErrInvalidTransition},
		{"rejected is terminal", swap.StatusRejected, swap.StatusAccepted, provider, ErrInvalidTransition},
		{"cancelled is terminal", swap.StatusCancelled, swap.StatusCompleted, requester, ErrInvalidTransition},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockSwapRepo{req: pendingRequest(requester, provider), casOK: true}
			repo.req.Status = tc.from

			updated, err := NewSwapUsecase(repo).Transition(context.Background(), repo.req.ID, tc.caller, tc.target)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				if repo.casCalls != 0 {
					t.Fatalf("denied transition must not reach storage")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if updated.Status != tc.target {
				t.Fatalf("expected status %s, got %s", tc.target, updated.Status)
			}
		})
	}
}

func TestSwapUsecase_Transition_LostRaceIsConflict(t *testing.T) {
	requester := uuid.New()
	provider := uuid.New()
	repo := &mockSwapRepo{req: pendingRequest(requester, provider), casOK: false}

	_, err := NewSwapUsecase(repo).Transition(context.Background(), repo.req.ID, provider, swap.StatusAccepted)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict when the CAS misses, got %v", err)
	}
}

func TestSwapUsecase_Transition_UnknownRequest(t *testing.T) {
	repo := &mockSwapRepo{findErr: repository.ErrSwapRequestNotFound}

	_, err := NewSwapUsecase(repo).Transition(context.Background(), uuid.New(), uuid.New(), swap.StatusAccepted)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSwapUsecase_DeleteRequest_RequesterOnly(t *testing.T) {
	requester := uuid.New()
	provider := uuid.New()
	repo := &mockSwapRepo{req: pendingRequest(requester, provider), deleteOK: true}
	uc := NewSwapUsecase(repo)

	if err := uc.DeleteRequest(context.Background(), repo.req.ID, provider); !errors.Is(err, ErrPermission) {
		t.Fatalf("provider delete: expected ErrPermission, got %v", err)
	}
	if repo.deleteCalls != 0 {
		t.Fatalf("denied delete must not reach storage")
	}
	if err := uc.DeleteRequest(context.Background(), repo.req.ID, requester); err != nil {
		t.Fatalf("requester delete: unexpected err: %v", err)
	}
}

func TestSwapUsecase_DeleteRequest_StatusWindow(t *testing.T) {
	requester := uuid.New()
	provider := uuid.New()

	for _, st := range []swap.Status{swap.StatusAccepted, swap.StatusCompleted, swap.StatusCancelled} {
		repo := &mockSwapRepo{req: pendingRequest(requester, provider), deleteOK: true}
		repo.req.Status = st

		err := NewSwapUsecase(repo).DeleteRequest(context.Background(), repo.req.ID, requester)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("status %s: expected ErrInvalidTransition, got %v", st, err)
		}
	}

	for _, st := range []swap.Status{swap.StatusPending, swap.StatusRejected} {
		repo := &mockSwapRepo{req: pendingRequest(requester, provider), deleteOK: true}
		repo.req.Status = st

		if err := NewSwapUsecase(repo).DeleteRequest(context.Background(), repo.req.ID, requester); err != nil {
			t.Fatalf("status %s: unexpected err: %v", st, err)
		}
	}
}

func TestSwapUsecase_DeleteRequest_LostRaceIsConflict(t *testing.T) {
	requester := uuid.New()
	repo := &mockSwapRepo{req: pendingRequest(requester, uuid.New()), deleteOK: false}

	err := NewSwapUsecase(repo).DeleteRequest(context.Background(), repo.req.ID, requester)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}
