package usecase

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"presupuesto_obra/internal/domain/entities"
	"presupuesto_obra/internal/domain/money"
)

var ErrAreaNoPositiva = errors.New("area must be positive")

// Rates are the percentage layers applied on top of the aggregated subtotal.
// They are business policy, injectable per calculation; the defaults are the
// values the catalog system has always used.
type Rates struct {
	GastosGenerales decimal.Decimal
	Beneficio       decimal.Decimal
	IVA             decimal.Decimal
}

func DefaultRates() Rates {
	return Rates{
		GastosGenerales: decimal.NewFromFloat(0.08),
		Beneficio:       decimal.NewFromFloat(0.10),
		IVA:             decimal.NewFromFloat(0.21),
	}
}

// RatesFromEnv reads RATE_GASTOS_GENERALES, RATE_BENEFICIO and RATE_IVA,
// falling back to the defaults for anything absent or unparseable.
func RatesFromEnv() Rates {
	r := DefaultRates()
	r.GastosGenerales = rateFromEnv("RATE_GASTOS_GENERALES", r.GastosGenerales)
	r.Beneficio = rateFromEnv("RATE_BENEFICIO", r.Beneficio)
	r.IVA = rateFromEnv("RATE_IVA", r.IVA)
	return r
}

func rateFromEnv(key string, def decimal.Decimal) decimal.Decimal {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		log.Printf("[presupuesto][config] ignoring invalid %s=%q", key, v)
		return def
	}
	return d
}

// totalize runs the fixed overhead/profit/tax pipeline over the three
// converted pools. The step order is part of the contract: every intermediate
// value is rounded before feeding the next step, so reordering changes the
// final total. All inputs are already in both currencies; no step reconverts.
func totalize(materiales, manoObra, equipos money.Bimonetario, area decimal.Decimal, rates Rates) (entities.Totales, error) {
	if area.LessThanOrEqual(decimal.Zero) {
		return entities.Totales{}, ErrAreaNoPositiva
	}

	subtotal := materiales.Add(manoObra).Add(equipos)
	gastosGenerales := subtotal.MulRate(rates.GastosGenerales)
	beneficio := subtotal.MulRate(rates.Beneficio)
	baseConMargen := subtotal.Add(gastosGenerales).Add(beneficio)
	iva := baseConMargen.MulRate(rates.IVA)
	total := baseConMargen.Add(iva)
	costoM2 := total.DivBy(area)

	return entities.Totales{
		Materiales:      materiales,
		ManoObra:        manoObra,
		Equipos:         equipos,
		Subtotal:        subtotal,
		GastosGenerales: gastosGenerales,
		Beneficio:       beneficio,
		IVA:             iva,
		Total:           total,
		CostoM2:         costoM2,
	}, nil
}
