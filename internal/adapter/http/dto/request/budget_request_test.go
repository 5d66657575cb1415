package request

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestBudgetCalculationRequest_ToInput(t *testing.T) {
	r := BudgetCalculationRequest{
		ProjectRef:     " obra-42 ",
		OrganizationID: " org-1 ",
		AreaM2:         decimal.NewFromInt(150),
		Tier:           " estandar ",
		Etapas:         []string{"estructura", "mamposteria"},
		TipoCambio:     decimal.NewFromInt(1200),
	}

	in := r.ToInput()
	if in.ProjectRef != "obra-42" || in.OrganizationID != "org-1" || in.Tier != "estandar" {
		t.Fatalf("identifiers not trimmed: %+v", in)
	}
	if !in.AreaM2.Equal(decimal.NewFromInt(150)) || !in.ExchangeRate.Equal(decimal.NewFromInt(1200)) {
		t.Fatalf("unexpected decimals: area=%s rate=%s", in.AreaM2, in.ExchangeRate)
	}
	if len(in.SelectedStages) != 2 {
		t.Fatalf("unexpected stages: %v", in.SelectedStages)
	}
}

func TestBudgetCalculationRequest_DecimalJSON(t *testing.T) {
	// Clients send the exchange rate as a number or a string; both must
	// decode to the same decimal.
	var asNumber, asString BudgetCalculationRequest
	if err := json.Unmarshal([]byte(`{"project_ref":"p","organization_id":"o","area_m2":150.5,"tipo_cambio":1200}`), &asNumber); err != nil {
		t.Fatalf("number form: %v", err)
	}
	if err := json.Unmarshal([]byte(`{"project_ref":"p","organization_id":"o","area_m2":"150.5","tipo_cambio":"1200"}`), &asString); err != nil {
		t.Fatalf("string form: %v", err)
	}
	if !asNumber.AreaM2.Equal(asString.AreaM2) || !asNumber.TipoCambio.Equal(asString.TipoCambio) {
		t.Fatalf("number/string forms differ: %+v vs %+v", asNumber, asString)
	}
}

func TestBudgetStatusRequest_ResolveProjectRef(t *testing.T) {
	r := BudgetStatusRequest{ProjectRef: " obra-42 "}
	if got := r.ResolveProjectRef(); got != "obra-42" {
		t.Fatalf("expected obra-42, got %q", got)
	}

	r2 := BudgetStatusRequest{ProjectRef: "   "}
	if got := r2.ResolveProjectRef(); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
