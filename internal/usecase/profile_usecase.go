package usecase

import (
	"context"
	"errors"
	"strings"

	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type UpdateProfileInput struct {
	Name         *string
	Location     *string
	ProfilePhoto *string
	Availability *string
	IsPublic     *bool
}

// PublicProfileView is the cross-user profile page: the visible profile, its
// approved skills, the rating aggregate and the individual ratings.
type PublicProfileView struct {
	Profile repository.Profile
	Skills  []repository.Skill
	Rating  repository.RatingAggregate
	Reviews []repository.RatingWithRater
}

type ProfileUsecase interface {
	GetProfile(ctx context.Context, id uuid.UUID) (repository.Profile, error)
	EnsureProfile(ctx context.Context, callerID uuid.UUID, name string) (repository.Profile, error)
	UpdateProfile(ctx context.Context, callerID uuid.UUID, in UpdateProfileInput) (repository.Profile, error)
	SetBanned(ctx context.Context, adminID, targetID uuid.UUID, banned bool) error
	PublicProfile(ctx context.Context, viewerID, profileID uuid.UUID) (PublicProfileView, error)
}

type Profile struct {
	profiles repository.ProfileRepository
	skills   repository.SkillRepository
	ratings  repository.RatingRepository
}

func NewProfileUsecase(
	profiles repository.ProfileRepository,
	skills repository.SkillRepository,
	ratings repository.RatingRepository,
) *Profile {
	return &Profile{profiles: profiles, skills: skills, ratings: ratings}
}

func (u *Profile) GetProfile(ctx context.Context, id uuid.UUID) (repository.Profile, error) {
	p, err := u.profiles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return repository.Profile{}, ErrNotFound
		}
		return repository.Profile{}, ErrInternal
	}
	return p, nil
}

func (u *Profile) EnsureProfile(ctx context.Context, callerID uuid.UUID, name string) (repository.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return repository.Profile{}, ErrValidation
	}
	p, err := u.profiles.Ensure(ctx, callerID, name)
	if err != nil {
		return repository.Profile{}, ErrInternal
	}
	return p, nil
}

// UpdateProfile mutates only owner-editable fields: the params type has no
// admin or ban flags, so a caller cannot promote or unban themself here.
func (u *Profile) UpdateProfile(ctx context.Context, callerID uuid.UUID, in UpdateProfileInput) (repository.Profile, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return repository.Profile{}, ErrValidation
	}

	p, err := u.profiles.Update(ctx, callerID, repository.UpdateProfileParams{
		Name:         in.Name,
		Location:     in.Location,
		ProfilePhoto: in.ProfilePhoto,
		Availability: in.Availability,
		IsPublic:     in.IsPublic,
	})
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return repository.Profile{}, ErrNotFound
		}
		return repository.Profile{}, ErrInternal
	}
	return p, nil
}

// SetBanned is admin-only. The admin gate middleware already checked the
// caller, but the usecase verifies again so no other entry point can skip it.
func (u *Profile) SetBanned(ctx context.Context, adminID, targetID uuid.UUID, banned bool) error {
	isAdmin, err := u.profiles.IsAdmin(ctx, adminID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return ErrPermission
		}
		return ErrInternal
	}
	if !isAdmin {
		return ErrPermission
	}

	if err := u.profiles.SetBanned(ctx, targetID, banned); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	return nil
}

// PublicProfile applies the read-time visibility filter: banned or non-public
// profiles resolve as not found for everyone but their owner.
func (u *Profile) PublicProfile(ctx context.Context, viewerID, profileID uuid.UUID) (PublicProfileView, error) {
	p, err := u.profiles.FindByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return PublicProfileView{}, ErrNotFound
		}
		return PublicProfileView{}, ErrInternal
	}
	if viewerID != profileID && (!p.IsPublic || p.IsBanned) {
		return PublicProfileView{}, ErrNotFound
	}

	skills, err := u.skills.ListPublicApproved(ctx, profileID)
	if err != nil {
		return PublicProfileView{}, ErrInternal
	}
	agg, err := u.ratings.AggregateFor(ctx, profileID)
	if err != nil {
		return PublicProfileView{}, ErrInternal
	}
	reviews, err := u.ratings.ListFor(ctx, profileID)
	if err != nil {
		return PublicProfileView{}, ErrInternal
	}

	return PublicProfileView{Profile: p, Skills: skills, Rating: agg, Reviews: reviews}, nil
}
