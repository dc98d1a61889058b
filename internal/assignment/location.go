package assignment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/domain"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/repository"
)

// LocationStrategy routes by geography: an explicit mapping from location keys
// to user ids, tried against country code, region, location name, then
// location id, with an optional fallback user.
type LocationStrategy struct {
	users repository.UserRepository
}

// NewLocationStrategy creates the strategy.
func NewLocationStrategy(users repository.UserRepository) *LocationStrategy {
	return &LocationStrategy{users: users}
}

func (s *LocationStrategy) Type() domain.StrategyType {
	return domain.StrategyLocation
}

func (s *LocationStrategy) Resolve(ctx context.Context, actx Context, cfg domain.StrategyConfig) (*Result, error) {
	lc, ok := cfg.(domain.LocationConfig)
	if !ok {
		return nil, nil
	}

	if actx.Location != nil {
		keys := []struct {
			value string
			label string
		}{
			{actx.Location.Country, "country"},
			{actx.Location.Region, "region"},
			{actx.Location.Name, "name"},
			{actx.Location.ID, "id"},
		}
		for _, key := range keys {
			if key.value == "" {
				continue
			}
			userID, found := lc.Mapping[key.value]
			if !found {
				continue
			}
			active, err := s.isActiveInTenant(ctx, userID, actx.TenantID)
			if err != nil {
				return nil, err
			}
			if !active {
				continue
			}
			return &Result{
				UserID: userID,
				Reason: fmt.Sprintf("location match on %s %q", key.label, key.value),
			}, nil
		}
	}

	if lc.FallbackUserID != nil {
		active, err := s.isActiveInTenant(ctx, *lc.FallbackUserID, actx.TenantID)
		if err != nil {
			return nil, err
		}
		if active {
			return &Result{
				UserID: *lc.FallbackUserID,
				Reason: "location fallback assignee",
			}, nil
		}
	}
	return nil, nil
}

func (s *LocationStrategy) isActiveInTenant(ctx context.Context, userID, tenantID string) (bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return user.Active && user.TenantID == tenantID, nil
}
