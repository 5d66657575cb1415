package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"presupuesto_obra/internal/domain/entities"
	"presupuesto_obra/internal/domain/money"
	"presupuesto_obra/internal/usecase/interfaces"
)

var (
	ErrBudgetPaymentNotFound          = errors.New("budget payment not found")
	ErrInvalidPaymentBudgetID         = errors.New("invalid budget_id")
	ErrInvalidMPPayload               = errors.New("invalid mercado pago payload")
	ErrBudgetNotApproved              = errors.New("budget not approved")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// IBudgetPaymentUseCase encapsulates collecting the down payment (seña) for an
// approved budget: create an item in the payments table and approve it as
// paid.

type IBudgetPaymentUseCase interface {
	CreateAndApprove(ctx context.Context, budgetID string, mpPayload json.RawMessage) (entities.BudgetPayment, error)
	GetByID(ctx context.Context, id string) (entities.BudgetPayment, error)
	ListByBudgetID(ctx context.Context, budgetID string) ([]entities.BudgetPayment, error)
}

type BudgetPaymentUseCase struct {
	repo       interfaces.IBudgetPaymentRepository
	budgetRepo interfaces.IBudgetRepository
	gateway    interfaces.IPaymentGateway
}

var _ IBudgetPaymentUseCase = (*BudgetPaymentUseCase)(nil)

func NewBudgetPaymentUseCase(repo interfaces.IBudgetPaymentRepository, budgetRepo interfaces.IBudgetRepository, gateway interfaces.IPaymentGateway) *BudgetPaymentUseCase {
	return &BudgetPaymentUseCase{repo: repo, budgetRepo: budgetRepo, gateway: gateway}
}

// SenaPercentFromEnv reads SENA_PERCENT (fraction of the budget total charged
// as down payment), defaulting to 0.30.
func SenaPercentFromEnv() decimal.Decimal {
	def := decimal.NewFromFloat(0.30)
	v := strings.TrimSpace(os.Getenv("SENA_PERCENT"))
	if v == "" {
		return def
	}
	d, err := decimal.NewFromString(v)
	if err != nil || d.LessThanOrEqual(decimal.Zero) || d.GreaterThan(decimal.NewFromInt(1)) {
		log.Printf("[pago][config] ignoring invalid SENA_PERCENT=%q", v)
		return def
	}
	return d
}

func (u *BudgetPaymentUseCase) CreateAndApprove(ctx context.Context, budgetID string, mpPayload json.RawMessage) (entities.BudgetPayment, error) {
	log.Printf("[pago][usecase] create-and-approve start raw_budget_id=%q payload_len=%d", budgetID, len(mpPayload))
	mockMode := isPaymentGatewayMockEnabled()
	budgetID = strings.TrimSpace(budgetID)
	if budgetID == "" {
		return entities.BudgetPayment{}, ErrInvalidPaymentBudgetID
	}
	if len(mpPayload) == 0 || !json.Valid(mpPayload) {
		if !mockMode {
			log.Printf("[pago][usecase] invalid payload budget_id=%s", budgetID)
			return entities.BudgetPayment{}, ErrInvalidMPPayload
		}
		mpPayload = json.RawMessage("{}")
	}
	if u.gateway == nil {
		return entities.BudgetPayment{}, errors.New("payment gateway not configured")
	}
	if u.budgetRepo == nil {
		return entities.BudgetPayment{}, errors.New("budget repository not configured")
	}

	b, err := u.budgetRepo.GetByID(ctx, budgetID)
	if err != nil {
		log.Printf("[pago][usecase] failed loading budget budget_id=%s err=%v", budgetID, err)
		return entities.BudgetPayment{}, err
	}
	if b.ID == "" {
		return entities.BudgetPayment{}, ErrBudgetNotFound
	}
	if !mockMode && b.Status != entities.BudgetStatusAprobado {
		log.Printf("[pago][usecase] budget not approved budget_id=%s status=%s", budgetID, b.Status)
		return entities.BudgetPayment{}, ErrBudgetNotApproved
	}

	// The source of truth for the charged amount is the stored budget total;
	// the seña is a configured fraction of it, in ARS.
	sena := money.Round2(b.Result.Totales.Total.ARS.Mul(SenaPercentFromEnv()))
	log.Printf("[pago][usecase] budget loaded budget_id=%s status=%s total_ars=%s sena=%s", budgetID, b.Status, b.Result.Totales.Total.ARS, sena)

	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err == nil {
		if !mockMode {
			if !hasNonEmptyString(reqMap, "payment_method_id") {
				return entities.BudgetPayment{}, ErrInvalidMPPayload
			}
			ensurePayerDefaults(reqMap)
			if !hasPayer(reqMap) {
				return entities.BudgetPayment{}, ErrInvalidMPPayload
			}
		}

		// external_reference helps Mercado Pago reconcile events with the
		// budget that originated the charge.
		if _, ok := reqMap["external_reference"]; !ok {
			reqMap["external_reference"] = budgetID
		}
		if _, ok := reqMap["description"]; !ok {
			reqMap["description"] = fmt.Sprintf("Seña presupuesto %s", budgetID)
		}
		reqMap["transaction_amount"], _ = sena.Float64()
		if enriched, err := json.Marshal(reqMap); err == nil {
			mpPayload = enriched
		}
	}

	providerPaymentID := ""
	providerResp := json.RawMessage(nil)

	if mockMode {
		log.Printf("[pago][usecase] mock mode enabled; skipping external payment gateway budget_id=%s", budgetID)
		providerPaymentID = strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
		now := time.Now().UTC().Format(time.RFC3339Nano)
		mockResp := map[string]any{}
		if len(mpPayload) > 0 && json.Valid(mpPayload) {
			_ = json.Unmarshal(mpPayload, &mockResp)
		}
		mockResp["id"] = providerPaymentID
		mockResp["status"] = "approved"
		mockResp["status_detail"] = "accredited"
		mockResp["date_created"] = now
		mockResp["date_approved"] = now
		if _, ok := mockResp["external_reference"]; !ok {
			mockResp["external_reference"] = budgetID
		}
		if _, ok := mockResp["transaction_amount"]; !ok {
			mockResp["transaction_amount"], _ = sena.Float64()
		}
		mockBody, mErr := json.Marshal(mockResp)
		if mErr != nil {
			return entities.BudgetPayment{}, mErr
		}
		providerResp = mockBody
	} else {
		log.Printf("[pago][usecase] calling payment gateway budget_id=%s", budgetID)
		var providerStatus string
		providerPaymentID, providerStatus, providerResp, err = u.gateway.CreatePayment(ctx, mpPayload)
		if err != nil {
			log.Printf("[pago][usecase] payment gateway failed budget_id=%s err=%v", budgetID, err)
			return entities.BudgetPayment{}, classifyGatewayError(err)
		}
		log.Printf("[pago][usecase] payment gateway success budget_id=%s provider_payment_id=%s provider_status=%s", budgetID, providerPaymentID, providerStatus)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Printf("[pago][usecase] provider response unmarshal failed budget_id=%s err=%v", budgetID, err)
	}

	if providerPaymentID == "" {
		// Some providers answer without an id on edge statuses; the record
		// still needs a stable PK.
		providerPaymentID = uuid.NewString()
	}

	p := entities.BudgetPayment{
		ID:           providerPaymentID,
		BudgetID:     budgetID,
		Monto:        sena,
		Date:         time.Now().UTC(),
		Status:       entities.PaymentStatusAprobado,
		MPPayloadRaw: providerResp,
		MPPayload:    parsed,
	}

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[pago][usecase] payment repository create failed budget_id=%s payment_id=%s err=%v", budgetID, p.ID, err)
		return entities.BudgetPayment{}, err
	}
	log.Printf("[pago][usecase] create-and-approve success budget_id=%s payment_id=%s status=%s", budgetID, created.ID, created.Status)
	return created, nil
}

func (u *BudgetPaymentUseCase) GetByID(ctx context.Context, id string) (entities.BudgetPayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.BudgetPayment{}, errors.New("invalid payment id")
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.BudgetPayment{}, err
	}
	if p.ID == "" {
		return entities.BudgetPayment{}, ErrBudgetPaymentNotFound
	}
	return p, nil
}

func (u *BudgetPaymentUseCase) ListByBudgetID(ctx context.Context, budgetID string) ([]entities.BudgetPayment, error) {
	budgetID = strings.TrimSpace(budgetID)
	if budgetID == "" {
		return nil, ErrInvalidPaymentBudgetID
	}
	return u.repo.ListByBudgetID(ctx, budgetID)
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

func ensurePayerDefaults(m map[string]any) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}

	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}

	// In sandbox, either payer.id or payer.email may be used. Fill email only
	// when both are missing.
	if !hasPayerID(payer) && !hasNonEmptyString(payer, "email") {
		if email := strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL")); email != "" {
			payer["email"] = email
		} else if strings.HasPrefix(strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN")), "TEST-") {
			// Sandbox-safe fallback recommended by Mercado Pago examples.
			payer["email"] = "test_user_ar@testuser.com"
		}
	}
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}

// classifyGatewayError maps the provider's opaque error body onto the sentinel
// errors the handler layer knows how to answer.
func classifyGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002"):
		return ErrPaymentGatewayCustomerNotFound
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034"):
		return ErrPaymentGatewayInvalidUsers
	case strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401"):
		return ErrPaymentGatewayUnauthorized
	case strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400"):
		return ErrPaymentGatewayBadRequest
	default:
		return err
	}
}
