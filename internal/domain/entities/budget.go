package entities

import (
	"time"

	"github.com/shopspring/decimal"

	"presupuesto_obra/internal/domain/money"
)

// BudgetStatus represents the lifecycle of a calculated budget (presupuesto).
//
// Domain notes:
//   - This service is the source of truth for budget/payment state.
//   - Transitions are driven by the client application (approve/reject/cancel).

type BudgetStatus string

const (
	BudgetStatusPendiente BudgetStatus = "pendiente"
	BudgetStatusAprobado  BudgetStatus = "aprobado"
	BudgetStatusRechazado BudgetStatus = "rechazado"
	BudgetStatusCancelado BudgetStatus = "cancelado"
)

// StageBreakdown is one row of the per-stage result. A skipped stage keeps its
// catalog identity and weight but contributes zero to every pool.
type StageBreakdown struct {
	Slug             string          `json:"slug"`
	Nombre           string          `json:"nombre"`
	Orden            int             `json:"orden"`
	PorcentajeObra   decimal.Decimal `json:"porcentaje_obra"`
	ItemsDisponibles int             `json:"items_disponibles"`
	Materiales       decimal.Decimal `json:"materiales"`
	ManoObra         decimal.Decimal `json:"mano_obra"`
	Equipos          decimal.Decimal `json:"equipos"`
	Skipped          bool            `json:"skipped"`
	SkipReason       string          `json:"skip_reason,omitempty"`
}

// Resumen aggregates calculation-wide counters. PorcentajeCubierto is
// advisory: the sum of the selected stages' catalog weights, surfaced so the
// caller can tell a partial budget from a full one. The engine never enforces
// it.
type Resumen struct {
	CantidadEtapas       int             `json:"cantidad_etapas"`
	TotalItemsInventario int             `json:"total_items_inventario"`
	PorcentajeCubierto   decimal.Decimal `json:"porcentaje_cubierto"`
}

// Totales holds every monetary figure of the result in both reporting
// currencies. All values are already converted; deriving one from another
// never reconverts.
type Totales struct {
	Materiales      money.Bimonetario `json:"materiales"`
	ManoObra        money.Bimonetario `json:"mano_obra"`
	Equipos         money.Bimonetario `json:"equipos"`
	Subtotal        money.Bimonetario `json:"subtotal"`
	GastosGenerales money.Bimonetario `json:"gastos_generales"`
	Beneficio       money.Bimonetario `json:"beneficio"`
	IVA             money.Bimonetario `json:"iva"`
	Total           money.Bimonetario `json:"total"`
	CostoM2         money.Bimonetario `json:"costo_m2"`
}

// BudgetResult is the full itemized output of one calculation. It is built
// fresh per call and never mutated afterwards.
type BudgetResult struct {
	Resumen Resumen          `json:"resumen"`
	Etapas  []StageBreakdown `json:"etapas"`
	Totales Totales          `json:"totales"`
}

// Budget is the persisted calculation plus its lifecycle state.
//
// Storage model (DynamoDB):
//   - PK: id
//
// We purposely use the project reference as PK to guarantee one budget per
// project, which keeps the approve/reject/cancel operations simple.
type Budget struct {
	ID             string          `json:"id"`
	ProjectRef     string          `json:"project_ref"`
	OrganizationID string          `json:"organization_id"`
	AreaM2         decimal.Decimal `json:"area_m2"`
	Tier           string          `json:"tier"`
	TipoCambio     decimal.Decimal `json:"tipo_cambio"`
	Result         BudgetResult    `json:"resultado"`
	Status         BudgetStatus    `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
