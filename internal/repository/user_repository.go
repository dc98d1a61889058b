package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/domain"
)

// UserRepository handles persistence for platform operators.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ListEligible(ctx context.Context, filter EligibleUserFilter) ([]domain.User, error)
	CountOpenItems(ctx context.Context, userID string) (int, error)
}

// EligibleUserFilter defines query params for the assignment pool. Results are
// always active users ordered by creation time so rotation has a stable order.
type EligibleUserFilter struct {
	TenantID string
	Roles    []domain.UserRole
	TeamID   *string
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository instantiates the repository.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, tenant_id, name, email, role, team_id, active_flag, created_at, updated_at`

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM users WHERE id=$1`
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.TenantID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.TeamID,
		&user.Active,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ListEligible(ctx context.Context, filter EligibleUserFilter) ([]domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users`
	args := []any{filter.TenantID}
	clauses := []string{"tenant_id=$1", "active_flag=TRUE"}

	if len(filter.Roles) > 0 {
		placeholders := make([]string, len(filter.Roles))
		for i, role := range filter.Roles {
			args = append(args, role)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("role IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.TeamID != nil {
		args = append(args, *filter.TeamID)
		clauses = append(clauses, fmt.Sprintf("team_id=$%d", len(args)))
	}

	query += " WHERE " + strings.Join(clauses, " AND ")
	query += " ORDER BY created_at ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.TenantID,
			&user.Name,
			&user.Email,
			&user.Role,
			&user.TeamID,
			&user.Active,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}

// CountOpenItems returns the user's current open assigned workload.
func (r *userRepository) CountOpenItems(ctx context.Context, userID string) (int, error) {
	const query = `
        SELECT COUNT(*) FROM work_items
        WHERE assignee_user_id=$1 AND lifecycle_status IN ('ACTIVE','PAUSED')`
	var count int
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
