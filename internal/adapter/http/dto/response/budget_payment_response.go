package response

import (
	"time"

	"github.com/shopspring/decimal"

	"presupuesto_obra/internal/domain/entities"
)

type BudgetPaymentResponse struct {
	PaymentID   string          `json:"payment_id"`
	ID          string          `json:"id"`
	BudgetID    string          `json:"budget_id"`
	Monto       decimal.Decimal `json:"monto"`
	PaymentDate time.Time       `json:"payment_date"`
	Status      string          `json:"status"`

	MPPayloadRaw string                 `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}

func FromBudgetPayment(p entities.BudgetPayment) BudgetPaymentResponse {
	return BudgetPaymentResponse{
		PaymentID:    p.ID,
		ID:           p.ID,
		BudgetID:     p.BudgetID,
		Monto:        p.Monto,
		PaymentDate:  p.Date,
		Status:       string(p.Status),
		MPPayloadRaw: string(p.MPPayloadRaw),
		MPPayload:    p.MPPayload,
	}
}
