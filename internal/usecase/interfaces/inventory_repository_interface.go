package interfaces

import (
	"context"

	"github.com/shopspring/decimal"
)

// IInventoryRepository abstracts the organization-scoped price list.
//
// PriceFor returns (price, true) when the item exists in the organization's
// live catalog; (zero, false) when it does not. Errors are backend failures —
// the engine treats them as latent I/O and falls back to the coefficient's
// embedded price. An empty price list is a valid state, never an error.

type IInventoryRepository interface {
	PriceFor(ctx context.Context, organizationID, itemRef string) (decimal.Decimal, bool, error)
	CountItemsForStage(ctx context.Context, organizationID, stageSlug string) (int, error)
}
