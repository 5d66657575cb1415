package usecase

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"presupuesto_obra/internal/domain/money"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func bi(t *testing.T, ars, usd string) money.Bimonetario {
	t.Helper()
	return money.Bimonetario{ARS: dec(t, ars), USD: dec(t, usd)}
}

func assertBi(t *testing.T, name string, got, want money.Bimonetario) {
	t.Helper()
	if !got.Equal(want) {
		t.Fatalf("%s = {ars=%s usd=%s}, want {ars=%s usd=%s}", name, got.ARS, got.USD, want.ARS, want.USD)
	}
}

func TestTotalize(t *testing.T) {
	t.Run("pipeline with default rates", func(t *testing.T) {
		materiales := bi(t, "31575", "26.31")
		manoObra := bi(t, "21000", "17.50")
		equipos := bi(t, "3787.50", "3.16")

		got, err := totalize(materiales, manoObra, equipos, dec(t, "150"), DefaultRates())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		assertBi(t, "subtotal", got.Subtotal, bi(t, "56362.50", "46.97"))
		assertBi(t, "gastos_generales", got.GastosGenerales, bi(t, "4509.00", "3.76"))
		assertBi(t, "beneficio", got.Beneficio, bi(t, "5636.25", "4.70"))
		assertBi(t, "iva", got.IVA, bi(t, "13966.63", "11.64"))
		assertBi(t, "total", got.Total, bi(t, "80474.38", "67.07"))
		assertBi(t, "costo_m2", got.CostoM2, bi(t, "536.50", "0.45"))

		// The pools pass through untouched.
		assertBi(t, "materiales", got.Materiales, materiales)
		assertBi(t, "mano_obra", got.ManoObra, manoObra)
		assertBi(t, "equipos", got.Equipos, equipos)
	})

	t.Run("each step feeds the next already rounded", func(t *testing.T) {
		// Subtotal chosen so the 8% step produces a half cent: the 10%
		// step must see the rounded value, not the raw product.
		sub := bi(t, "100.0625", "0")
		got, err := totalize(sub, bi(t, "0", "0"), bi(t, "0", "0"), decimal.NewFromInt(1), DefaultRates())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// 100.0625*0.08 = 8.005 -> 8.01 (half up), not 8.00.
		if !got.GastosGenerales.ARS.Equal(dec(t, "8.01")) {
			t.Fatalf("gastos = %s, want 8.01", got.GastosGenerales.ARS)
		}
		// base = 100.0625 + 8.01 + 10.01 = 118.0825; iva = 24.797325 -> 24.80
		if !got.IVA.ARS.Equal(dec(t, "24.80")) {
			t.Fatalf("iva = %s, want 24.80", got.IVA.ARS)
		}
		if !got.Total.ARS.Equal(dec(t, "142.8825")) {
			t.Fatalf("total = %s, want 142.8825", got.Total.ARS)
		}
	})

	t.Run("zero pools still totalize", func(t *testing.T) {
		got, err := totalize(bi(t, "0", "0"), bi(t, "0", "0"), bi(t, "0", "0"), dec(t, "80"), DefaultRates())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Total.ARS.IsZero() || !got.Total.USD.IsZero() {
			t.Fatalf("expected zero total, got ars=%s usd=%s", got.Total.ARS, got.Total.USD)
		}
	})

	t.Run("non positive area", func(t *testing.T) {
		for _, area := range []string{"0", "-10"} {
			_, err := totalize(bi(t, "1", "1"), bi(t, "0", "0"), bi(t, "0", "0"), dec(t, area), DefaultRates())
			if !errors.Is(err, ErrAreaNoPositiva) {
				t.Fatalf("area=%s: expected ErrAreaNoPositiva, got %v", area, err)
			}
		}
	})
}

func TestRatesFromEnv(t *testing.T) {
	t.Run("defaults when unset", func(t *testing.T) {
		t.Setenv("RATE_GASTOS_GENERALES", "")
		t.Setenv("RATE_BENEFICIO", "")
		t.Setenv("RATE_IVA", "")

		r := RatesFromEnv()
		if !r.GastosGenerales.Equal(dec(t, "0.08")) || !r.Beneficio.Equal(dec(t, "0.10")) || !r.IVA.Equal(dec(t, "0.21")) {
			t.Fatalf("unexpected defaults: %+v", r)
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("RATE_GASTOS_GENERALES", "0.12")
		t.Setenv("RATE_BENEFICIO", "0.15")
		t.Setenv("RATE_IVA", "0.105")

		r := RatesFromEnv()
		if !r.GastosGenerales.Equal(dec(t, "0.12")) || !r.Beneficio.Equal(dec(t, "0.15")) || !r.IVA.Equal(dec(t, "0.105")) {
			t.Fatalf("unexpected rates: %+v", r)
		}
	})

	t.Run("invalid values fall back", func(t *testing.T) {
		t.Setenv("RATE_IVA", "not-a-number")
		t.Setenv("RATE_BENEFICIO", "-0.10")

		r := RatesFromEnv()
		if !r.IVA.Equal(dec(t, "0.21")) {
			t.Fatalf("IVA = %s, want default 0.21", r.IVA)
		}
		if !r.Beneficio.Equal(dec(t, "0.10")) {
			t.Fatalf("Beneficio = %s, want default 0.10", r.Beneficio)
		}
	})
}
