package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"skillswap/internal/repository"

	"github.com/google/uuid"
)

const statsCacheTTL = 30 * time.Second

// PlatformStats mirrors the admin dashboard counters.
type PlatformStats struct {
	TotalProfiles     int `json:"total_profiles"`
	TotalSkills       int `json:"total_skills"`
	TotalSwapRequests int `json:"total_swap_requests"`
	PendingSkills     int `json:"pending_skills"`
}

type AdminUsecase interface {
	Stats(ctx context.Context, adminID uuid.UUID) (PlatformStats, error)
	ListProfiles(ctx context.Context, adminID uuid.UUID) ([]repository.Profile, error)
	ListAllRequests(ctx context.Context, adminID uuid.UUID) ([]repository.SwapRequestDetail, error)
	BroadcastMessage(ctx context.Context, adminID uuid.UUID, title, body string) (repository.AdminMessage, error)
	Announcements(ctx context.Context) ([]repository.AdminMessage, error)
}

type Admin struct {
	profiles repository.ProfileRepository
	skills   repository.SkillRepository
	requests repository.SwapRequestRepository
	messages repository.AdminMessageRepository
	cache    Cache
}

func NewAdminUsecase(
	profiles repository.ProfileRepository,
	skills repository.SkillRepository,
	requests repository.SwapRequestRepository,
	messages repository.AdminMessageRepository,
	cache Cache,
) *Admin {
	return &Admin{profiles: profiles, skills: skills, requests: requests, messages: messages, cache: cache}
}

func (u *Admin) Stats(ctx context.Context, adminID uuid.UUID) (PlatformStats, error) {
	if err := u.requireAdmin(ctx, adminID); err != nil {
		return PlatformStats{}, err
	}

	const key = "admin:stats"
	if u.cache != nil {
		var cached PlatformStats
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	var stats PlatformStats
	var err error
	if stats.TotalProfiles, err = u.profiles.Count(ctx); err != nil {
		return PlatformStats{}, ErrInternal
	}
	if stats.TotalSkills, err = u.skills.Count(ctx); err != nil {
		return PlatformStats{}, ErrInternal
	}
	if stats.TotalSwapRequests, err = u.requests.Count(ctx); err != nil {
		return PlatformStats{}, ErrInternal
	}
	if stats.PendingSkills, err = u.skills.CountPending(ctx); err != nil {
		return PlatformStats{}, ErrInternal
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, stats, statsCacheTTL)
	}
	return stats, nil
}

func (u *Admin) ListProfiles(ctx context.Context, adminID uuid.UUID) ([]repository.Profile, error) {
	if err := u.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	out, err := u.profiles.ListAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// ListAllRequests is observe-only: admins see every request but transitions
// remain with the two participants.
func (u *Admin) ListAllRequests(ctx context.Context, adminID uuid.UUID) ([]repository.SwapRequestDetail, error) {
	if err := u.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	out, err := u.requests.ListAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// BroadcastMessage persists the announcement; delivery to end users happens
// elsewhere.
func (u *Admin) BroadcastMessage(ctx context.Context, adminID uuid.UUID, title, body string) (repository.AdminMessage, error) {
	if err := u.requireAdmin(ctx, adminID); err != nil {
		return repository.AdminMessage{}, err
	}

	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		return repository.AdminMessage{}, ErrValidation
	}

	msg, err := u.messages.Create(ctx, title, body)
	if err != nil {
		return repository.AdminMessage{}, ErrInternal
	}
	return msg, nil
}

func (u *Admin) Announcements(ctx context.Context) ([]repository.AdminMessage, error) {
	out, err := u.messages.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Admin) requireAdmin(ctx context.Context, callerID uuid.UUID) error {
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
