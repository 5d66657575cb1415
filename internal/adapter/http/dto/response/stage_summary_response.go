package response

import (
	"github.com/shopspring/decimal"

	"presupuesto_obra/internal/domain/entities"
)

type StageSummaryResponse struct {
	Slug             string          `json:"slug"`
	Nombre           string          `json:"nombre"`
	Orden            int             `json:"orden"`
	ItemsDisponibles int             `json:"items_disponibles"`
	PorcentajeObra   decimal.Decimal `json:"porcentaje_obra"`
}

func FromStageSummaries(summaries []entities.StageSummary) []StageSummaryResponse {
	out := make([]StageSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, StageSummaryResponse{
			Slug:             s.Slug,
			Nombre:           s.Nombre,
			Orden:            s.Orden,
			ItemsDisponibles: s.ItemsDisponibles,
			PorcentajeObra:   s.PorcentajeObra,
		})
	}
	return out
}
