package response

import (
	"time"

	"github.com/shopspring/decimal"

	"presupuesto_obra/internal/domain/entities"
)

// BudgetResponse is the outward shape of a stored budget. The itemized result
// keeps the entity structure: its field tags already match the published
// contract (resumen / etapas / totales with {ars, usd} pairs).
type BudgetResponse struct {
	BudgetID       string                    `json:"budget_id"`
	ID             string                    `json:"id"`
	ProjectRef     string                    `json:"project_ref"`
	OrganizationID string                    `json:"organization_id"`
	AreaM2         decimal.Decimal           `json:"area_m2"`
	Tier           string                    `json:"tier"`
	TipoCambio     decimal.Decimal           `json:"tipo_cambio"`
	Status         string                    `json:"status"`
	Resumen        entities.Resumen          `json:"resumen"`
	Etapas         []entities.StageBreakdown `json:"etapas"`
	Totales        entities.Totales          `json:"totales"`
	CreatedAt      time.Time                 `json:"created_at"`
	UpdatedAt      time.Time                 `json:"updated_at"`
}

func FromBudget(b entities.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:       b.ID,
		ID:             b.ID,
		ProjectRef:     b.ProjectRef,
		OrganizationID: b.OrganizationID,
		AreaM2:         b.AreaM2,
		Tier:           b.Tier,
		TipoCambio:     b.TipoCambio,
		Status:         string(b.Status),
		Resumen:        b.Result.Resumen,
		Etapas:         b.Result.Etapas,
		Totales:        b.Result.Totales,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}
