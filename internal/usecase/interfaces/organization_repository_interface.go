package interfaces

import "context"

// IOrganizationRepository abstracts the organization registry.
//
// Exists answers whether the identifier belongs to a registered organization.
// Registration is independent of inventory ownership: an organization with an
// empty price list is still valid and calculates with the coefficients'
// embedded prices.

type IOrganizationRepository interface {
	Exists(ctx context.Context, organizationID string) (bool, error)
}
