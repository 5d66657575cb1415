package routes

import (
	"github.com/gin-gonic/gin"

	"presupuesto_obra/internal/adapter/http/handlers"
)

const (
	PathPresupuestos = "/presupuestos"
	PathEtapas       = "/etapas"
	PathPagos        = "/pagos"
)

func addPresupuestoRoutes(rg *gin.RouterGroup, budgetHandler *handlers.BudgetHandler, stageHandler *handlers.StageHandler, paymentHandler *handlers.BudgetPaymentHandler) {
	presupuestos := rg.Group(PathPresupuestos)
	{
		presupuestos.POST("", budgetHandler.CalculateBudget)
		presupuestos.GET("/:budget_id", budgetHandler.GetBudgetByID)
		presupuestos.PATCH("/approve", budgetHandler.ApproveBudget)
		presupuestos.PATCH("/reject", budgetHandler.RejectBudget)
		presupuestos.PATCH("/cancel", budgetHandler.CancelBudget)
	}

	etapas := rg.Group(PathEtapas)
	{
		etapas.GET("", stageHandler.ListStageSummary)
	}

	pagos := rg.Group(PathPagos)
	{
		pagos.POST("/:budget_id", paymentHandler.CreatePaymentByBudgetID)
		pagos.GET("/:budget_id", paymentHandler.GetPaymentByBudgetID)
	}
}
