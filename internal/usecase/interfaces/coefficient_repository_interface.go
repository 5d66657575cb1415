package interfaces

import (
	"context"

	"presupuesto_obra/internal/domain/entities"
)

// ICoefficientRepository abstracts the read-only coefficient tables.
//
// Both lookups follow the repository convention of returning the zero value
// (empty StageSlug) when no row exists, reserving the error for backend
// failures.

type ICoefficientRepository interface {
	GetByStageAndVariant(ctx context.Context, stageSlug, variantKey string) (entities.Coefficient, error)
	GetBaseline(ctx context.Context, stageSlug string) (entities.Coefficient, error)
}
