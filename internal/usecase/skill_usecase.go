package usecase

import (
	"context"
	"errors"
	"strings"

	"skillswap/internal/repository"

	"github.com/google/uuid"
)

const (
	SkillTypeOffered = "offered"
	SkillTypeWanted  = "wanted"
)

type AddSkillInput struct {
	Name        string
	Description *string
	Type        string
}

type SkillUsecase interface {
	AddSkill(ctx context.Context, callerID uuid.UUID, in AddSkillInput) (repository.Skill, error)
	RemoveSkill(ctx context.Context, callerID, skillID uuid.UUID) error
	ListSkills(ctx context.Context, ownerID uuid.UUID) ([]repository.Skill, error)
	ListPublicApprovedSkills(ctx context.Context, ownerID uuid.UUID) ([]repository.Skill, error)
	Moderate(ctx context.Context, adminID, skillID uuid.UUID, approve bool) error
	ListPendingSkills(ctx context.Context, adminID uuid.UUID) ([]repository.PendingSkill, error)
}

type Skill struct {
	skills   repository.SkillRepository
	profiles repository.ProfileRepository
}

func NewSkillUsecase(skills repository.SkillRepository, profiles repository.ProfileRepository) *Skill {
	return &Skill{skills: skills, profiles: profiles}
}

func (u *Skill) AddSkill(ctx context.Context, callerID uuid.UUID, in AddSkillInput) (repository.Skill, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return repository.Skill{}, ErrValidation
	}
	if in.Type != SkillTypeOffered && in.Type != SkillTypeWanted {
		return repository.Skill{}, ErrValidation
	}

	created, err := u.skills.Create(ctx, repository.Skill{
		UserID:      callerID,
		Name:        name,
		Description: in.Description,
		Type:        in.Type,
	})
	if err != nil {
		return repository.Skill{}, ErrInternal
	}
	return created, nil
}

// RemoveSkill succeeds for the owner or an admin. A skill referenced by a
// pending or accepted swap request is frozen and cannot be removed until the
// request reaches a terminal state.
func (u *Skill) RemoveSkill(ctx context.Context, callerID, skillID uuid.UUID) error {
	s, err := u.skills.FindByID(ctx, skillID)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}

	if s.UserID != callerID {
		isAdmin, err := u.profiles.IsAdmin(ctx, callerID)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				return ErrPermission
			}
			return ErrInternal
		}
		if !isAdmin {
			return ErrPermission
		}
	}

	return u.deleteSkill(ctx, skillID)
}

func (u *Skill) deleteSkill(ctx context.Context, skillID uuid.UUID) error {
	switch err := u.skills.Delete(ctx, skillID); {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrSkillInUse):
		return ErrConflict
	case errors.Is(err, repository.ErrSkillNotFound):
		return ErrNotFound
	default:
		return ErrInternal
	}
}

func (u *Skill) ListSkills(ctx context.Context, ownerID uuid.UUID) ([]repository.Skill, error) {
	out, err := u.skills.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Skill) ListPublicApprovedSkills(ctx context.Context, ownerID uuid.UUID) ([]repository.Skill, error) {
	out, err := u.skills.ListPublicApproved(ctx, ownerID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// Moderate approves or rejects a pending skill. Approval sets the flag;
// rejection deletes the row (no tombstone). Rejection honors the same freeze
// guard as owner deletes.
func (u *Skill) Moderate(ctx context.Context, adminID, skillID uuid.UUID, approve bool) error {
	if err := u.requireAdmin(ctx, adminID); err != nil {
		return err
	}

	if approve {
		switch err := u.skills.Approve(ctx, skillID); {
		case err == nil:
			return nil
		case errors.Is(err, repository.ErrSkillNotFound):
			return ErrNotFound
		default:
			return ErrInternal
		}
	}
	return u.deleteSkill(ctx, skillID)
}

func (u *Skill) ListPendingSkills(ctx context.Context, adminID uuid.UUID) ([]repository.PendingSkill, error) {
	if err := u.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	out, err := u.skills.ListPending(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Skill) requireAdmin(ctx context.Context, callerID uuid.UUID) error {
	isAdmin, err := u.profiles.IsAdmin(ctx, callerID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return ErrPermission
		}
		return ErrInternal
	}
	if !isAdmin {
		return ErrPermission
	}
	return nil
}
