package response

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"presupuesto_obra/internal/domain/entities"
	"presupuesto_obra/internal/domain/money"
)

func TestFromBudget(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	b := entities.Budget{
		ID:             "obra-42",
		ProjectRef:     "obra-42",
		OrganizationID: "org-1",
		AreaM2:         decimal.NewFromInt(150),
		Tier:           "estandar",
		TipoCambio:     decimal.NewFromInt(1200),
		Status:         entities.BudgetStatusPendiente,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	b.Result.Resumen = entities.Resumen{CantidadEtapas: 2, TotalItemsInventario: 8, PorcentajeCubierto: decimal.NewFromInt(100)}
	b.Result.Totales.Total = money.Bimonetario{
		ARS: decimal.RequireFromString("80474.38"),
		USD: decimal.RequireFromString("67.07"),
	}

	resp := FromBudget(b)
	if resp.BudgetID != "obra-42" || resp.ID != "obra-42" {
		t.Fatalf("unexpected ids: %+v", resp)
	}
	if resp.Status != "pendiente" {
		t.Fatalf("status = %q", resp.Status)
	}
	if resp.Resumen.CantidadEtapas != 2 {
		t.Fatalf("resumen not carried: %+v", resp.Resumen)
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	totales, ok := m["totales"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing totales: %s", raw)
	}
	total, ok := totales["total"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing total: %s", raw)
	}
	if _, ok := total["ars"]; !ok {
		t.Fatalf("total leg tags wrong: %s", raw)
	}
	if _, ok := total["usd"]; !ok {
		t.Fatalf("total leg tags wrong: %s", raw)
	}
}
