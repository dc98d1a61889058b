package assignment

import (
	"context"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/domain"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/repository"
)

type fakeUserRepo struct {
	users     []domain.User
	counts    map[string]int
	listErr   error
	countErr  error
	getErrFor map[string]error
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if err, ok := f.getErrFor[id]; ok {
		return nil, err
	}
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) ListEligible(ctx context.Context, filter repository.EligibleUserFilter) ([]domain.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []domain.User
	for _, u := range f.users {
		if !u.Active || u.TenantID != filter.TenantID {
			continue
		}
		if len(filter.Roles) > 0 && !roleIn(u.Role, filter.Roles) {
			continue
		}
		if filter.TeamID != nil && (u.TeamID == nil || *u.TeamID != *filter.TeamID) {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeUserRepo) CountOpenItems(ctx context.Context, userID string) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.counts[userID], nil
}

func roleIn(role domain.UserRole, roles []domain.UserRole) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

type fakeRecordRepo struct {
	last    *domain.AssignmentRecord
	lastErr error
	created []domain.AssignmentRecord
}

func (f *fakeRecordRepo) Create(ctx context.Context, record *domain.AssignmentRecord) error {
	f.created = append(f.created, *record)
	return nil
}

func (f *fakeRecordRepo) FindLast(ctx context.Context, tenantID, entityType string) (*domain.AssignmentRecord, error) {
	if f.lastErr != nil {
		return nil, f.lastErr
	}
	return f.last, nil
}

type fakeCategoryRepo struct {
	routing map[string]*domain.CategoryRouting
	err     error
}

func (f *fakeCategoryRepo) GetRoutingConfig(ctx context.Context, categoryID string) (*domain.CategoryRouting, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.routing[categoryID], nil
}

var baseTime = time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

func investigator(id string, createdOffset time.Duration) domain.User {
	return domain.User{
		ID:        id,
		TenantID:  "tenant-1",
		Name:      "user " + id,
		Email:     id + "@example.com",
		Role:      domain.UserRoleInvestigator,
		Active:    true,
		CreatedAt: baseTime.Add(createdOffset),
	}
}

func testContext() Context {
	return Context{
		TenantID:   "tenant-1",
		EntityType: "CASE",
		EntityID:   "entity-1",
	}
}
