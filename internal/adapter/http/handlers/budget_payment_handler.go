package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	response "presupuesto_obra/internal/adapter/http/dto/response"
	"presupuesto_obra/internal/usecase"
	"presupuesto_obra/pkg"
)

// BudgetPaymentHandler handles HTTP requests for budget down payments.

type BudgetPaymentHandler struct {
	usecase usecase.IBudgetPaymentUseCase
}

func NewBudgetPaymentHandler(uc usecase.IBudgetPaymentUseCase) *BudgetPaymentHandler {
	return &BudgetPaymentHandler{usecase: uc}
}

// CreatePaymentByBudgetID creates/approves a down payment using budget_id in
// path.
func (h *BudgetPaymentHandler) CreatePaymentByBudgetID(c *gin.Context) {
	budgetID := c.Param("budget_id")
	log.Printf("[pago][handler] create start budget_id=%s", budgetID)
	mockMode := isPaymentGatewayMockEnabled()
	mpPayload, err := readMPPayload(c)
	if err != nil {
		if mockMode {
			log.Printf("[pago][handler] payload invalid in mock mode; fallback to empty payload budget_id=%s err=%v", budgetID, err)
			mpPayload = json.RawMessage("{}")
		} else {
			log.Printf("[pago][handler] invalid payload budget_id=%s err=%v", budgetID, err)
			appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
	}

	created, err := h.usecase.CreateAndApprove(c.Request.Context(), budgetID, mpPayload)
	if err != nil {
		log.Printf("[pago][handler] create failed budget_id=%s err=%v", budgetID, err)
		appErr := mapBudgetPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[pago][handler] create success budget_id=%s payment_id=%s status=%s", budgetID, created.ID, created.Status)

	c.JSON(http.StatusOK, response.FromBudgetPayment(created))
}

// GetPaymentByBudgetID returns the latest down payment for a budget.
func (h *BudgetPaymentHandler) GetPaymentByBudgetID(c *gin.Context) {
	budgetID := c.Param("budget_id")

	payments, err := h.usecase.ListByBudgetID(c.Request.Context(), budgetID)
	if err != nil {
		appErr := mapBudgetPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if len(payments) == 0 {
		appErr := pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	latest := payments[0]
	for _, p := range payments[1:] {
		if p.Date.After(latest.Date) {
			latest = p
		}
	}

	c.JSON(http.StatusOK, response.FromBudgetPayment(latest))
}

func readMPPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["mp_payload"]; ok {
			if len(strings.TrimSpace(string(wrapped))) == 0 || strings.TrimSpace(string(wrapped)) == "null" {
				return nil, errors.New("mp_payload cannot be empty")
			}
			return wrapped, nil
		}
	}

	return json.RawMessage(raw), nil
}

func mapBudgetPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPaymentBudgetID), errors.Is(err, usecase.ErrInvalidMPPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrBudgetNotFound):
		return pkg.NewDomainErrorSimple("BUDGET_NOT_FOUND", "Budget not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrBudgetNotApproved):
		return pkg.NewDomainErrorSimple("BUDGET_NOT_APPROVED", "Budget not approved", http.StatusConflict)
	case errors.Is(err, usecase.ErrBudgetPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
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
