package entities

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the down-payment processing outcome.
//
// In the current scope we only create/process and persist an approved down
// payment (seña). The type supports a denied status for completeness.

type PaymentStatus string

const (
	PaymentStatusPendiente PaymentStatus = "pendiente"
	PaymentStatusAprobado  PaymentStatus = "aprobado"
	PaymentStatusNegado    PaymentStatus = "negado"
)

// BudgetPayment is a down payment collected against an approved budget.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (budget_id-index): budget_id
//
// MercadoPago payload:
//   - MPPayloadRaw keeps the original body (JSON) for traceability/audit.
//   - MPPayload is an optional parsed representation, useful for debugging.
//     (We persist both because different MP integrations may vary in schema.)

type BudgetPayment struct {
	ID       string          `json:"id"`
	BudgetID string          `json:"budget_id"`
	Monto    decimal.Decimal `json:"monto"`
	Date     time.Time       `json:"date"`
	Status   PaymentStatus   `json:"status"`

	MPPayloadRaw json.RawMessage        `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}
