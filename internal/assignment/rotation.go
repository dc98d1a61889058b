package assignment

import (
	"context"
	"fmt"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/domain"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/repository"
)

// RotationStrategy implements fairness round-robin. The cursor is implicit:
// it is derived from the most recent assignment record for the same tenant and
// entity type, so concurrent resolutions can observe the same "last assignee"
// and pick the same next user. Accepted legacy behavior; the caller records
// outcomes, this strategy only reads history.
type RotationStrategy struct {
	users   repository.UserRepository
	records repository.AssignmentRecordRepository
}

// NewRotationStrategy creates the strategy.
func NewRotationStrategy(users repository.UserRepository, records repository.AssignmentRecordRepository) *RotationStrategy {
	return &RotationStrategy{users: users, records: records}
}

func (s *RotationStrategy) Type() domain.StrategyType {
	return domain.StrategyRotation
}

func (s *RotationStrategy) Resolve(ctx context.Context, actx Context, cfg domain.StrategyConfig) (*Result, error) {
	roles := domain.DefaultAssignmentRoles
	if rc, ok := cfg.(domain.RotationConfig); ok && len(rc.Roles) > 0 {
		roles = rc.Roles
	}

	pool, err := s.users.ListEligible(ctx, repository.EligibleUserFilter{
		TenantID: actx.TenantID,
		Roles:    roles,
	})
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, nil
	}

	last, err := s.records.FindLast(ctx, actx.TenantID, actx.EntityType)
	if err != nil {
		return nil, err
	}

	index := 0
	if last != nil {
		for i := range pool {
			if pool[i].ID == last.UserID {
				index = (i + 1) % len(pool)
				break
			}
		}
	}

	chosen := pool[index]
	return &Result{
		UserID: chosen.ID,
		Reason: fmt.Sprintf("round robin rotation (%d of %d eligible)", index+1, len(pool)),
	}, nil
}
