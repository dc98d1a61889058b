package assignment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/domain"
)

func rotationPool() *fakeUserRepo {
	return &fakeUserRepo{users: []domain.User{
		investigator("user-a", 0),
		investigator("user-b", time.Hour),
		investigator("user-c", 2*time.Hour),
	}}
}

func TestRotationStartsAtFirstUserWithoutHistory(t *testing.T) {
	strategy := NewRotationStrategy(rotationPool(), &fakeRecordRepo{})

	result, err := strategy.Resolve(context.Background(), testContext(), nil)

	require.NoError(t, err)
	require.NotNil(t, result)
	require.Equal(t, "user-a", result.UserID)
}

func TestRotationAdvancesPastLastAssignee(t *testing.T) {
	records := &fakeRecordRepo{last: &domain.AssignmentRecord{UserID: "user-a"}}
	strategy := NewRotationStrategy(rotationPool(), records)

	result, err := strategy.Resolve(context.Background(), testContext(), nil)

	require.NoError(t, err)
	require.NotNil(t, result)
	require.Equal(t, "user-b", result.UserID)
}

func TestRotationWrapsAround(t *testing.T) {
	records := &fakeRecordRepo{last: &domain.AssignmentRecord{UserID: "user-c"}}
	strategy := NewRotationStrategy(rotationPool(), records)

	result, err := strategy.Resolve(context.Background(), testContext(), nil)

	require.NoError(t, err)
	require.Equal(t, "user-a", result.UserID)
}

func TestRotationResetsWhenLastAssigneeLeftPool(t *testing.T) {
	records := &fakeRecordRepo{last: &domain.AssignmentRecord{UserID: "user-gone"}}
	strategy := NewRotationStrategy(rotationPool(), records)

	result, err := strategy.Resolve(context.Background(), testContext(), nil)

	require.NoError(t, err)
	require.Equal(t, "user-a", result.UserID)
}

func TestRotationReturnsNilForEmptyPool(t *testing.T) {
	strategy := NewRotationStrategy(&fakeUserRepo{}, &fakeRecordRepo{})

	result, err := strategy.Resolve(context.Background(), testContext(), nil)

	require.NoError(t, err)
	require.Nil(t, result)
}

func TestRotationHonorsRoleFilterConfig(t *testing.T) {
	users := rotationPool()
	users.users[0].Role = domain.UserRoleViewer
	strategy := NewRotationStrategy(users, &fakeRecordRepo{})

	result, err := strategy.Resolve(context.Background(), testContext(), domain.RotationConfig{
		Roles: []domain.UserRole{domain.UserRoleInvestigator},
	})

	require.NoError(t, err)
	require.Equal(t, "user-b", result.UserID, "viewer must be filtered out")
}

func TestRotationPropagatesHistoryError(t *testing.T) {
	records := &fakeRecordRepo{lastErr: errors.New("db down")}
	strategy := NewRotationStrategy(rotationPool(), records)

	_, err := strategy.Resolve(context.Background(), testContext(), nil)

	require.Error(t, err)
}
