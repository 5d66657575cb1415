package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	request "presupuesto_obra/internal/adapter/http/dto/request"
	response "presupuesto_obra/internal/adapter/http/dto/response"
	"presupuesto_obra/internal/domain/entities"
	"presupuesto_obra/internal/usecase"
	"presupuesto_obra/pkg"
)

var (
	errInvalidBudgetPayload = pkg.NewDomainErrorSimple("INVALID_BUDGET_INPUT", "Invalid budget payload", http.StatusBadRequest)
)

// BudgetHandler handles HTTP requests for budget calculation and lifecycle.

type BudgetHandler struct {
	usecase usecase.IBudgetUseCase
}

func NewBudgetHandler(uc usecase.IBudgetUseCase) *BudgetHandler {
	return &BudgetHandler{usecase: uc}
}

// CalculateBudget runs the full stage-based calculation and stores the result
// as a pending budget.
func (h *BudgetHandler) CalculateBudget(c *gin.Context) {
	var payload request.BudgetCalculationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidBudgetPayload.HTTPStatus, errInvalidBudgetPayload.ToHTTPError())
		return
	}

	budget, err := h.usecase.CalculateBudget(c.Request.Context(), payload.ToInput())
	if err != nil {
		appErr := mapBudgetError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromBudget(budget))
}

func (h *BudgetHandler) ApproveBudget(c *gin.Context) {
	h.patchBudgetStatusByRequest(c, h.usecase.ApproveByProjectRef)
}

func (h *BudgetHandler) RejectBudget(c *gin.Context) {
	h.patchBudgetStatusByRequest(c, h.usecase.RejectByProjectRef)
}

func (h *BudgetHandler) CancelBudget(c *gin.Context) {
	h.patchBudgetStatusByRequest(c, h.usecase.CancelByProjectRef)
}

// GetBudgetByID returns a stored budget by id (= project reference).
func (h *BudgetHandler) GetBudgetByID(c *gin.Context) {
	budget, err := h.usecase.GetByID(c.Request.Context(), c.Param("budget_id"))
	if err != nil {
		appErr := mapBudgetError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromBudget(budget))
}

func (h *BudgetHandler) patchBudgetStatusByRequest(
	c *gin.Context,
	updater func(ctx context.Context, projectRef string) (entities.Budget, error),
) {
	var payload request.BudgetStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidBudgetPayload.HTTPStatus, errInvalidBudgetPayload.ToHTTPError())
		return
	}

	projectRef := payload.ResolveProjectRef()
	if projectRef == "" {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	budget, err := updater(c.Request.Context(), projectRef)
	if err != nil {
		appErr := mapBudgetError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromBudget(budget))
}

func mapBudgetError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidProjectRef),
		errors.Is(err, usecase.ErrInvalidBudgetID),
		errors.Is(err, usecase.ErrInvalidOrganization),
		errors.Is(err, usecase.ErrInvalidArea),
		errors.Is(err, usecase.ErrInvalidExchangeRate):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUnsupportedCurrency):
		return pkg.NewDomainErrorSimple("UNSUPPORTED_CURRENCY", "Unsupported currency code in catalog data", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrUnknownOrganization):
		return pkg.NewDomainErrorSimple("UNKNOWN_ORGANIZATION", "Unknown organization", http.StatusNotFound)
	case errors.Is(err, usecase.ErrBudgetAlreadyExists):
		return pkg.NewDomainErrorSimple("BUDGET_ALREADY_EXISTS", "Budget already exists for this project", http.StatusConflict)
	case errors.Is(err, usecase.ErrBudgetNotFound):
		return pkg.NewDomainErrorSimple("BUDGET_NOT_FOUND", "Budget not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
