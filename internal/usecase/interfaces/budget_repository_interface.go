package interfaces

import (
	"context"

	"presupuesto_obra/internal/domain/entities"
)

// IBudgetRepository abstracts DynamoDB persistence for Budget.
//
// The service must be able to:
//   - store a freshly calculated budget (one per project reference)
//   - update budget status by project reference (approve/reject/cancel)
//   - read a budget back by id or project reference

type IBudgetRepository interface {
	Create(ctx context.Context, b entities.Budget) (entities.Budget, error)
	GetByID(ctx context.Context, id string) (entities.Budget, error)
	GetByProjectRef(ctx context.Context, projectRef string) (entities.Budget, error)
	UpdateStatusByProjectRef(ctx context.Context, projectRef string, status entities.BudgetStatus) (entities.Budget, error)
}
