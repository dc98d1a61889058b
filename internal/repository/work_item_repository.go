package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/domain"
)

// WorkItemRepository encapsulates workflow-instance persistence.
type WorkItemRepository interface {
	ListActiveTimed(ctx context.Context) ([]domain.WorkItem, error)
	UpdateSlaStatus(ctx context.Context, id string, status domain.SlaStatus, breachedAt *time.Time) error
	GetByID(ctx context.Context, id string) (*domain.WorkItem, error)
}

type workItemRepository struct {
	pool *pgxpool.Pool
}

// NewWorkItemRepository instantiates repository.
func NewWorkItemRepository(pool *pgxpool.Pool) WorkItemRepository {
	return &workItemRepository{pool: pool}
}

const workItemColumns = `id, tenant_id, entity_type, entity_id, stage, lifecycle_status,
               due_date, sla_status, sla_breached_at, assignee_user_id, created_at, updated_at`

// ListActiveTimed returns every item eligible for SLA evaluation: lifecycle
// ACTIVE and a non-null due date.
func (r *workItemRepository) ListActiveTimed(ctx context.Context) ([]domain.WorkItem, error) {
	const query = `
        SELECT ` + workItemColumns + `
        FROM work_items
        WHERE lifecycle_status='ACTIVE' AND due_date IS NOT NULL
        ORDER BY due_date ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanWorkItems(rows)
}

// UpdateSlaStatus persists a status transition. The breach timestamp is only
// written when provided, so it keeps the first-breach time across later sweeps.
func (r *workItemRepository) UpdateSlaStatus(ctx context.Context, id string, status domain.SlaStatus, breachedAt *time.Time) error {
	const query = `
        UPDATE work_items
        SET sla_status=$1, sla_breached_at=COALESCE($2, sla_breached_at), updated_at=NOW()
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, status, breachedAt, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *workItemRepository) GetByID(ctx context.Context, id string) (*domain.WorkItem, error) {
	const query = `
        SELECT ` + workItemColumns + `
        FROM work_items WHERE id=$1`
	var item domain.WorkItem
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.TenantID,
		&item.EntityType,
		&item.EntityID,
		&item.Stage,
		&item.Lifecycle,
		&item.DueDate,
		&item.SlaStatus,
		&item.SlaBreachedAt,
		&item.AssigneeID,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func scanWorkItems(rows pgx.Rows) ([]domain.WorkItem, error) {
	var result []domain.WorkItem
	for rows.Next() {
		var item domain.WorkItem
		if err := rows.Scan(
			&item.ID,
			&item.TenantID,
			&item.EntityType,
			&item.EntityID,
			&item.Stage,
			&item.Lifecycle,
			&item.DueDate,
			&item.SlaStatus,
			&item.SlaBreachedAt,
			&item.AssigneeID,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
