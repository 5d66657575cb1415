package interfaces

import (
	"context"

	"presupuesto_obra/internal/domain/entities"
)

// IStageCatalogRepository abstracts the read-only stage catalog.
//
// ListStages returns every stage ordered by its catalog order index. Selection
// filtering lives in the engine so catalog order is always preserved and
// unknown slugs can be reported rather than silently ignored.

type IStageCatalogRepository interface {
	ListStages(ctx context.Context) ([]entities.Stage, error)
}
