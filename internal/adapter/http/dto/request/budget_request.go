package request

import (
	"strings"

	"github.com/shopspring/decimal"

	"presupuesto_obra/internal/usecase"
)

// BudgetCalculationRequest is the payload accepted by the calculation
// endpoint. Decimal fields accept both JSON numbers and strings; validation of
// ranges (positive area, positive exchange rate) belongs to the use case, so
// the binding layer only enforces presence of the identifiers.
type BudgetCalculationRequest struct {
	ProjectRef     string          `json:"project_ref" binding:"required"`
	OrganizationID string          `json:"organization_id" binding:"required"`
	AreaM2         decimal.Decimal `json:"area_m2"`
	Tier           string          `json:"tier"`
	Etapas         []string        `json:"etapas"`
	TipoCambio     decimal.Decimal `json:"tipo_cambio"`
}

func (r BudgetCalculationRequest) ToInput() usecase.CalculateBudgetInput {
	return usecase.CalculateBudgetInput{
		ProjectRef:     strings.TrimSpace(r.ProjectRef),
		OrganizationID: strings.TrimSpace(r.OrganizationID),
		AreaM2:         r.AreaM2,
		Tier:           strings.TrimSpace(r.Tier),
		SelectedStages: r.Etapas,
		ExchangeRate:   r.TipoCambio,
	}
}

// BudgetStatusRequest drives the approve/reject/cancel endpoints.
type BudgetStatusRequest struct {
	ProjectRef string `json:"project_ref" binding:"required"`
}

func (r BudgetStatusRequest) ResolveProjectRef() string {
	return strings.TrimSpace(r.ProjectRef)
}
