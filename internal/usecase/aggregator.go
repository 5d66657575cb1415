package usecase

import (
	"github.com/shopspring/decimal"

	"presupuesto_obra/internal/domain/entities"
	"presupuesto_obra/internal/domain/money"
)

// stageSubtotal is one stage's contribution before folding into the pools.
// Amounts are in ARS and already rounded per line item.
type stageSubtotal struct {
	Stage            entities.Stage
	ItemsDisponibles int
	Materiales       decimal.Decimal
	ManoObra         decimal.Decimal
	Equipos          decimal.Decimal
	Skipped          bool
	SkipReason       string
}

// accumulateStage turns a resolved coefficient into the stage's three cost
// lines. Each line is rounded immediately after the multiplication, before any
// summation, matching the accumulated-rounding behavior of the catalog system
// this service replaces. matOverrideARS, when non-nil, is a live inventory
// price (price lists are kept in ARS) that replaces the coefficient's embedded
// material price; labor and equipment always come from the coefficient.
func accumulateStage(
	stage entities.Stage,
	coef entities.Coefficient,
	quantity decimal.Decimal,
	exchangeRate decimal.Decimal,
	matOverrideARS *decimal.Decimal,
) (stageSubtotal, error) {
	mat, err := money.ToARS(money.NewLocal(coef.MaterialesPorUnidad, coef.Moneda), exchangeRate)
	if err != nil {
		return stageSubtotal{}, err
	}
	if matOverrideARS != nil {
		mat = *matOverrideARS
	}
	mo, err := money.ToARS(money.NewLocal(coef.ManoObraPorUnidad, coef.Moneda), exchangeRate)
	if err != nil {
		return stageSubtotal{}, err
	}
	eq, err := money.ToARS(money.NewLocal(coef.EquiposPorUnidad, coef.Moneda), exchangeRate)
	if err != nil {
		return stageSubtotal{}, err
	}

	return stageSubtotal{
		Stage:      stage,
		Materiales: money.Round2(mat.Mul(quantity)),
		ManoObra:   money.Round2(mo.Mul(quantity)),
		Equipos:    money.Round2(eq.Mul(quantity)),
	}, nil
}

// foldAll sums the pre-rounded stage values into the three cost pools.
// Skipped stages contribute nothing by construction (their lines are zero).
func foldAll(subtotals []stageSubtotal) (materiales, manoObra, equipos decimal.Decimal) {
	for _, s := range subtotals {
		if s.Skipped {
			continue
		}
		materiales = materiales.Add(s.Materiales)
		manoObra = manoObra.Add(s.ManoObra)
		equipos = equipos.Add(s.Equipos)
	}
	return materiales, manoObra, equipos
}
