package assignment

import (
	"context"
	"fmt"
	"sort"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/domain"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/repository"
)

// LoadAwareStrategy picks the least-loaded eligible user, optionally capped by
// a maximum open-item load.
type LoadAwareStrategy struct {
	users repository.UserRepository
}

// NewLoadAwareStrategy creates the strategy.
func NewLoadAwareStrategy(users repository.UserRepository) *LoadAwareStrategy {
	return &LoadAwareStrategy{users: users}
}

func (s *LoadAwareStrategy) Type() domain.StrategyType {
	return domain.StrategyLoadAware
}

func (s *LoadAwareStrategy) Resolve(ctx context.Context, actx Context, cfg domain.StrategyConfig) (*Result, error) {
	roles := domain.DefaultAssignmentRoles
	var teamID *string
	var maxLoad *int
	if lc, ok := cfg.(domain.LoadAwareConfig); ok {
		if len(lc.Roles) > 0 {
			roles = lc.Roles
		}
		teamID = lc.TeamID
		maxLoad = lc.MaxLoad
	}

	pool, err := s.users.ListEligible(ctx, repository.EligibleUserFilter{
		TenantID: actx.TenantID,
		Roles:    roles,
		TeamID:   teamID,
	})
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, nil
	}

	type loadedUser struct {
		user domain.User
		load int
	}
	loaded := make([]loadedUser, 0, len(pool))
	for i := range pool {
		count, err := s.users.CountOpenItems(ctx, pool[i].ID)
		if err != nil {
			return nil, err
		}
		loaded = append(loaded, loadedUser{user: pool[i], load: count})
	}

	// Stable sort keeps the creation-order tie break from ListEligible.
	sort.SliceStable(loaded, func(i, j int) bool {
		return loaded[i].load < loaded[j].load
	})

	for _, candidate := range loaded {
		if maxLoad != nil && candidate.load >= *maxLoad {
			// Sorted ascending: everyone after this is at or above the cap.
			return nil, nil
		}
		return &Result{
			UserID: candidate.user.ID,
			Reason: fmt.Sprintf("least loaded (%d open items)", candidate.load),
		}, nil
	}
	return nil, nil
}
