package usecase

import (
	"context"
	"strings"
	"time"

	"skillswap/internal/repository"

	"github.com/google/uuid"
)

const browseCacheTTL = 60 * time.Second

type BrowseUsecase interface {
	Browse(ctx context.Context, callerID uuid.UUID, search string) ([]repository.BrowseProfile, error)
}

type Browse struct {
	profiles repository.ProfileRepository
	cache    Cache
}

func NewBrowseUsecase(profiles repository.ProfileRepository, cache Cache) *Browse {
	return &Browse{profiles: profiles, cache: cache}
}

// Browse lists discoverable counterparts for the caller. The search term
// matches name, location, or approved skill name; banned and non-public
// profiles are filtered at read time, and the caller never sees themself.
func (u *Browse) Browse(ctx context.Context, callerID uuid.UUID, search string) ([]repository.BrowseProfile, error) {
	search = strings.ToLower(strings.TrimSpace(search))

	key := "browse:" + callerID.String() + ":" + search
	if u.cache != nil {
		var cached []repository.BrowseProfile
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	out, err := u.profiles.Browse(ctx, callerID, search)
	if err != nil {
		return nil, ErrInternal
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, out, browseCacheTTL)
	}
	return out, nil
}
