package usecase

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"presupuesto_obra/internal/domain/entities"
	"presupuesto_obra/internal/domain/money"
)

func TestAccumulateStage(t *testing.T) {
	stage := entities.Stage{Slug: "estructura", Nombre: "Estructura", Orden: 1, PorcentajeObra: dec(t, "40")}
	rate := dec(t, "1200")

	t.Run("ars coefficient", func(t *testing.T) {
		coef := entities.Coefficient{
			StageSlug:           "estructura",
			Unidad:              "m2",
			CantidadPorM2:       decimal.NewFromInt(1),
			MaterialesPorUnidad: dec(t, "120.50"),
			ManoObraPorUnidad:   dec(t, "80"),
			EquiposPorUnidad:    dec(t, "15.25"),
			Moneda:              money.CurrencyARS,
		}

		sub, err := accumulateStage(stage, coef, dec(t, "150"), rate, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !sub.Materiales.Equal(dec(t, "18075.00")) {
			t.Fatalf("materiales = %s, want 18075.00", sub.Materiales)
		}
		if !sub.ManoObra.Equal(dec(t, "12000")) {
			t.Fatalf("mano_obra = %s, want 12000", sub.ManoObra)
		}
		if !sub.Equipos.Equal(dec(t, "2287.50")) {
			t.Fatalf("equipos = %s, want 2287.50", sub.Equipos)
		}
		if sub.Skipped {
			t.Fatalf("unexpected skipped")
		}
	})

	t.Run("usd coefficient normalized before multiplying", func(t *testing.T) {
		coef := entities.Coefficient{
			StageSlug:           "instalaciones",
			CantidadPorM2:       dec(t, "0.2"),
			MaterialesPorUnidad: dec(t, "1.5"),
			ManoObraPorUnidad:   dec(t, "0.8"),
			EquiposPorUnidad:    dec(t, "0.1"),
			Moneda:              money.CurrencyUSD,
		}

		// qty 30; 1.5 USD * 1200 = 1800 ARS per unit.
		sub, err := accumulateStage(stage, coef, dec(t, "30"), rate, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !sub.Materiales.Equal(dec(t, "54000")) {
			t.Fatalf("materiales = %s, want 54000", sub.Materiales)
		}
		if !sub.ManoObra.Equal(dec(t, "28800")) {
			t.Fatalf("mano_obra = %s, want 28800", sub.ManoObra)
		}
		if !sub.Equipos.Equal(dec(t, "3600")) {
			t.Fatalf("equipos = %s, want 3600", sub.Equipos)
		}
	})

	t.Run("line rounded right after multiplication", func(t *testing.T) {
		coef := entities.Coefficient{
			StageSlug:           "estructura",
			CantidadPorM2:       decimal.NewFromInt(1),
			MaterialesPorUnidad: dec(t, "0.335"),
			Moneda:              money.CurrencyARS,
		}

		// 0.335 * 1.5 = 0.5025 -> 0.50 before any summation.
		sub, err := accumulateStage(stage, coef, dec(t, "1.5"), rate, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !sub.Materiales.Equal(dec(t, "0.50")) {
			t.Fatalf("materiales = %s, want 0.50", sub.Materiales)
		}
	})

	t.Run("material override replaces only materials", func(t *testing.T) {
		coef := entities.Coefficient{
			StageSlug:           "estructura",
			CantidadPorM2:       decimal.NewFromInt(1),
			MaterialesPorUnidad: dec(t, "120.50"),
			ManoObraPorUnidad:   dec(t, "80"),
			EquiposPorUnidad:    dec(t, "15.25"),
			Moneda:              money.CurrencyARS,
			ItemRef:             "mat-001",
		}
		override := dec(t, "130")

		sub, err := accumulateStage(stage, coef, dec(t, "10"), rate, &override)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !sub.Materiales.Equal(dec(t, "1300")) {
			t.Fatalf("materiales = %s, want 1300", sub.Materiales)
		}
		if !sub.ManoObra.Equal(dec(t, "800")) {
			t.Fatalf("mano_obra = %s, want 800", sub.ManoObra)
		}
	})

	t.Run("unsupported currency is fatal", func(t *testing.T) {
		coef := entities.Coefficient{
			StageSlug:           "estructura",
			CantidadPorM2:       decimal.NewFromInt(1),
			MaterialesPorUnidad: dec(t, "10"),
			Moneda:              "EUR",
		}

		_, err := accumulateStage(stage, coef, dec(t, "10"), rate, nil)
		if !errors.Is(err, money.ErrUnsupportedCurrency) {
			t.Fatalf("expected ErrUnsupportedCurrency, got %v", err)
		}
	})
}

func TestFoldAll(t *testing.T) {
	subtotals := []stageSubtotal{
		{Materiales: dec(t, "18075.00"), ManoObra: dec(t, "12000"), Equipos: dec(t, "2287.50")},
		{Materiales: dec(t, "13500"), ManoObra: dec(t, "9000"), Equipos: dec(t, "1500")},
		{Skipped: true, SkipReason: "no baseline coefficient"},
	}

	materiales, manoObra, equipos := foldAll(subtotals)
	if !materiales.Equal(dec(t, "31575.00")) {
		t.Fatalf("materiales = %s, want 31575.00", materiales)
	}
	if !manoObra.Equal(dec(t, "21000")) {
		t.Fatalf("mano_obra = %s, want 21000", manoObra)
	}
	if !equipos.Equal(dec(t, "3787.50")) {
		t.Fatalf("equipos = %s, want 3787.50", equipos)
	}
}
