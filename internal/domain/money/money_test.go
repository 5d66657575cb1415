package money

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2.344", "2.34"},
		{"2.345", "2.35"}, // half rounds up
		{"2.346", "2.35"},
		{"2.005", "2.01"},
		{"10", "10"},
		{"0.004999", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got := Round2(dec(t, tc.in))
			if !got.Equal(dec(t, tc.want)) {
				t.Fatalf("Round2(%s) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestConvert(t *testing.T) {
	rate := dec(t, "1200")

	t.Run("ars amount", func(t *testing.T) {
		b, err := Convert(NewLocal(dec(t, "31575"), CurrencyARS), rate)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !b.ARS.Equal(dec(t, "31575")) {
			t.Fatalf("ARS leg = %s", b.ARS)
		}
		if !b.USD.Equal(dec(t, "26.31")) {
			t.Fatalf("USD leg = %s, want 26.31", b.USD)
		}
	})

	t.Run("usd amount", func(t *testing.T) {
		b, err := Convert(NewLocal(dec(t, "10.005"), CurrencyUSD), rate)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !b.ARS.Equal(dec(t, "12006")) {
			t.Fatalf("ARS leg = %s, want 12006", b.ARS)
		}
		if !b.USD.Equal(dec(t, "10.01")) {
			t.Fatalf("USD leg = %s, want 10.01", b.USD)
		}
	})

	t.Run("zero rate", func(t *testing.T) {
		_, err := Convert(NewLocal(dec(t, "1"), CurrencyARS), decimal.Zero)
		if !errors.Is(err, ErrInvalidExchangeRate) {
			t.Fatalf("expected ErrInvalidExchangeRate, got %v", err)
		}
	})

	t.Run("negative rate", func(t *testing.T) {
		_, err := Convert(NewLocal(dec(t, "1"), CurrencyARS), dec(t, "-5"))
		if !errors.Is(err, ErrInvalidExchangeRate) {
			t.Fatalf("expected ErrInvalidExchangeRate, got %v", err)
		}
	})

	t.Run("unsupported currency", func(t *testing.T) {
		_, err := Convert(NewLocal(dec(t, "1"), "EUR"), rate)
		if !errors.Is(err, ErrUnsupportedCurrency) {
			t.Fatalf("expected ErrUnsupportedCurrency, got %v", err)
		}
	})

	t.Run("rate one makes both legs equal", func(t *testing.T) {
		b, err := Convert(NewLocal(dec(t, "537.25"), CurrencyARS), decimal.NewFromInt(1))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !b.ARS.Equal(b.USD) {
			t.Fatalf("legs differ at rate 1: ars=%s usd=%s", b.ARS, b.USD)
		}
	})
}

func TestToARS(t *testing.T) {
	rate := dec(t, "1200")

	t.Run("ars passthrough", func(t *testing.T) {
		got, err := ToARS(NewLocal(dec(t, "120.505"), CurrencyARS), rate)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// Normalization does not round; rounding happens at the
		// aggregation boundary.
		if !got.Equal(dec(t, "120.505")) {
			t.Fatalf("got %s, want 120.505", got)
		}
	})

	t.Run("usd converted", func(t *testing.T) {
		got, err := ToARS(NewLocal(dec(t, "0.5"), CurrencyUSD), rate)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Equal(dec(t, "600")) {
			t.Fatalf("got %s, want 600", got)
		}
	})

	t.Run("unsupported currency", func(t *testing.T) {
		_, err := ToARS(NewLocal(dec(t, "1"), "BRL"), rate)
		if !errors.Is(err, ErrUnsupportedCurrency) {
			t.Fatalf("expected ErrUnsupportedCurrency, got %v", err)
		}
	})

	t.Run("invalid rate", func(t *testing.T) {
		_, err := ToARS(NewLocal(dec(t, "1"), CurrencyUSD), decimal.Zero)
		if !errors.Is(err, ErrInvalidExchangeRate) {
			t.Fatalf("expected ErrInvalidExchangeRate, got %v", err)
		}
	})
}

func TestBimonetarioArithmetic(t *testing.T) {
	a := Bimonetario{ARS: dec(t, "100.10"), USD: dec(t, "0.08")}
	b := Bimonetario{ARS: dec(t, "0.05"), USD: dec(t, "0.02")}

	t.Run("add", func(t *testing.T) {
		got := a.Add(b)
		if !got.ARS.Equal(dec(t, "100.15")) || !got.USD.Equal(dec(t, "0.10")) {
			t.Fatalf("got ars=%s usd=%s", got.ARS, got.USD)
		}
	})

	t.Run("mulrate rounds each leg", func(t *testing.T) {
		got := a.MulRate(dec(t, "0.21"))
		// 100.10*0.21 = 21.021 -> 21.02; 0.08*0.21 = 0.0168 -> 0.02
		if !got.ARS.Equal(dec(t, "21.02")) || !got.USD.Equal(dec(t, "0.02")) {
			t.Fatalf("got ars=%s usd=%s", got.ARS, got.USD)
		}
	})

	t.Run("divby rounds each leg", func(t *testing.T) {
		got := Bimonetario{ARS: dec(t, "80474.38"), USD: dec(t, "67.07")}.DivBy(dec(t, "150"))
		if !got.ARS.Equal(dec(t, "536.50")) || !got.USD.Equal(dec(t, "0.45")) {
			t.Fatalf("got ars=%s usd=%s", got.ARS, got.USD)
		}
	})

	t.Run("equal", func(t *testing.T) {
		if !a.Equal(Bimonetario{ARS: dec(t, "100.1"), USD: dec(t, "0.080")}) {
			t.Fatalf("expected equal across representations")
		}
		if a.Equal(b) {
			t.Fatalf("expected not equal")
		}
	})
}
