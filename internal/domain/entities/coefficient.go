package entities

import "github.com/shopspring/decimal"

// Coefficient is the per-unit consumption record for a (stage, variant) pair.
// A row with an empty VariantKey and IsBaseline set is the stage's fallback
// when the requested variant has no record of its own.
//
// Storage model (DynamoDB):
//   - PK: stage_slug
//   - SK: variant_key ("base" for the baseline row)
//
// CantidadPorM2 is the declared quantity metric: it maps the input floor area
// to the countable quantity for the stage (1 for a strict per-m2 stage,
// a fixed ratio otherwise). It is catalog data, never inferred.
type Coefficient struct {
	StageSlug           string          `json:"stage_slug"`
	VariantKey          string          `json:"variant_key"`
	Unidad              string          `json:"unidad"`
	CantidadPorM2       decimal.Decimal `json:"cantidad_por_m2"`
	MaterialesPorUnidad decimal.Decimal `json:"materiales_por_unidad"`
	ManoObraPorUnidad   decimal.Decimal `json:"mano_obra_por_unidad"`
	EquiposPorUnidad    decimal.Decimal `json:"equipos_por_unidad"`
	Moneda              string          `json:"moneda"`
	IsBaseline          bool            `json:"is_baseline"`

	// ItemRef optionally links the material component to an inventory item so
	// the organization's live price list can refine the embedded price.
	ItemRef string `json:"item_ref,omitempty"`
}

// ResolutionKind states which lookup path produced a coefficient.
type ResolutionKind string

const (
	ResolutionExact    ResolutionKind = "exact"
	ResolutionBaseline ResolutionKind = "baseline"
	ResolutionMissing  ResolutionKind = "missing"
)

// Resolution is the typed outcome of resolving a stage's coefficient. A
// missing resolution carries the reason the stage will be reported as skipped;
// it is never a silent zero-fill.
type Resolution struct {
	Kind        ResolutionKind
	Coefficient Coefficient
	Reason      string
}
