package entities

import "github.com/shopspring/decimal"

// Stage is one construction phase (etapa) from the catalog. The catalog is
// maintained by a separate back-office process; during a calculation the
// engine treats the listing as an immutable snapshot.
//
// Storage model (DynamoDB):
//   - PK: slug
type Stage struct {
	Slug           string          `json:"slug"`
	Nombre         string          `json:"nombre"`
	Orden          int             `json:"orden"`
	PorcentajeObra decimal.Decimal `json:"porcentaje_obra"`
}

// Variant is a quality/technology option within a stage (e.g. "estandar",
// "premium"). At most one variant per stage carries IsDefault.
type Variant struct {
	StageSlug string `json:"stage_slug"`
	Key       string `json:"key"`
	Nombre    string `json:"nombre"`
	IsDefault bool   `json:"is_default"`
}

// StageSummary is the read-only reporting row returned without running a full
// calculation.
type StageSummary struct {
	Slug             string          `json:"slug"`
	Nombre           string          `json:"nombre"`
	Orden            int             `json:"orden"`
	ItemsDisponibles int             `json:"items_disponibles"`
	PorcentajeObra   decimal.Decimal `json:"porcentaje_obra"`
}
