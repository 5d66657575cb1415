package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"presupuesto_obra/internal/adapter/http/handlers/mocks"
	"presupuesto_obra/internal/domain/entities"
	"presupuesto_obra/internal/usecase"
)

func newPaymentRouter(t *testing.T) (*gin.Engine, *mocks.MockIBudgetPaymentUseCase, *BudgetPaymentHandler) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	uc := mocks.NewMockIBudgetPaymentUseCase(ctrl)
	h := NewBudgetPaymentHandler(uc)
	r := gin.New()
	return r, uc, h
}

func TestBudgetPaymentHandler_CreatePaymentByBudgetID(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("MERCADOPAGO_MOCK", "")

	t.Run("invalid json body", func(t *testing.T) {
		r, _, h := newPaymentRouter(t)
		r.POST("/v1/pagos/:budget_id", h.CreatePaymentByBudgetID)

		req := httptest.NewRequest(http.MethodPost, "/v1/pagos/obra-42", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unwraps mp_payload envelope", func(t *testing.T) {
		r, uc, h := newPaymentRouter(t)
		r.POST("/v1/pagos/:budget_id", h.CreatePaymentByBudgetID)

		uc.EXPECT().CreateAndApprove(gomock.Any(), "obra-42", gomock.Any()).DoAndReturn(
			func(_ context.Context, budgetID string, payload json.RawMessage) (entities.BudgetPayment, error) {
				var m map[string]any
				if err := json.Unmarshal(payload, &m); err != nil {
					t.Fatalf("payload is not json: %v", err)
				}
				if m["payment_method_id"] != "master" {
					t.Fatalf("envelope not unwrapped: %s", payload)
				}
				return entities.BudgetPayment{ID: "mp-1", BudgetID: budgetID, Status: entities.PaymentStatusAprobado}, nil
			},
		)

		body := `{"mp_payload":{"payment_method_id":"master","payer":{"email":"x@test.com"}}}`
		req := httptest.NewRequest(http.MethodPost, "/v1/pagos/obra-42", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("budget not approved maps to 409", func(t *testing.T) {
		r, uc, h := newPaymentRouter(t)
		r.POST("/v1/pagos/:budget_id", h.CreatePaymentByBudgetID)

		uc.EXPECT().CreateAndApprove(gomock.Any(), "obra-42", gomock.Any()).
			Return(entities.BudgetPayment{}, usecase.ErrBudgetNotApproved)

		req := httptest.NewRequest(http.MethodPost, "/v1/pagos/obra-42", bytes.NewBufferString(`{"payment_method_id":"master"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("budget not found maps to 404", func(t *testing.T) {
		r, uc, h := newPaymentRouter(t)
		r.POST("/v1/pagos/:budget_id", h.CreatePaymentByBudgetID)

		uc.EXPECT().CreateAndApprove(gomock.Any(), "obra-99", gomock.Any()).
			Return(entities.BudgetPayment{}, usecase.ErrBudgetNotFound)

		req := httptest.NewRequest(http.MethodPost, "/v1/pagos/obra-99", bytes.NewBufferString(`{"payment_method_id":"master"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("gateway unauthorized maps to 401", func(t *testing.T) {
		r, uc, h := newPaymentRouter(t)
		r.POST("/v1/pagos/:budget_id", h.CreatePaymentByBudgetID)

		uc.EXPECT().CreateAndApprove(gomock.Any(), "obra-42", gomock.Any()).
			Return(entities.BudgetPayment{}, usecase.ErrPaymentGatewayUnauthorized)

		req := httptest.NewRequest(http.MethodPost, "/v1/pagos/obra-42", bytes.NewBufferString(`{"payment_method_id":"master"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}

func TestBudgetPaymentHandler_GetPaymentByBudgetID(t *testing.T) {
	t.Run("returns latest payment", func(t *testing.T) {
		r, uc, h := newPaymentRouter(t)
		r.GET("/v1/pagos/:budget_id", h.GetPaymentByBudgetID)

		older := entities.BudgetPayment{
			ID:       "pay-1",
			BudgetID: "obra-42",
			Monto:    decimal.RequireFromString("24142.31"),
			Date:     time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
			Status:   entities.PaymentStatusAprobado,
		}
		newer := older
		newer.ID = "pay-2"
		newer.Date = older.Date.Add(time.Hour)

		uc.EXPECT().ListByBudgetID(gomock.Any(), "obra-42").
			Return([]entities.BudgetPayment{older, newer}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/pagos/obra-42", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("bad response body: %v", err)
		}
		if resp["payment_id"] != "pay-2" {
			t.Fatalf("expected latest payment, got %v", resp["payment_id"])
		}
	})

	t.Run("no payments maps to 404", func(t *testing.T) {
		r, uc, h := newPaymentRouter(t)
		r.GET("/v1/pagos/:budget_id", h.GetPaymentByBudgetID)

		uc.EXPECT().ListByBudgetID(gomock.Any(), "obra-42").Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/pagos/obra-42", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("invalid budget id maps to 400", func(t *testing.T) {
		r, uc, h := newPaymentRouter(t)
		r.GET("/v1/pagos/:budget_id", h.GetPaymentByBudgetID)

		uc.EXPECT().ListByBudgetID(gomock.Any(), " ").
			Return(nil, usecase.ErrInvalidPaymentBudgetID)

		req := httptest.NewRequest(http.MethodGet, "/v1/pagos/%20", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}
