package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	response "presupuesto_obra/internal/adapter/http/dto/response"
	"presupuesto_obra/internal/usecase"
)

// StageHandler serves the read-only stage summary used by reporting screens.

type StageHandler struct {
	usecase usecase.IBudgetUseCase
}

func NewStageHandler(uc usecase.IBudgetUseCase) *StageHandler {
	return &StageHandler{usecase: uc}
}

// ListStageSummary returns every catalog stage with its order, weight and the
// organization's item availability, without running a calculation.
func (h *StageHandler) ListStageSummary(c *gin.Context) {
	summaries, err := h.usecase.ListStageSummary(c.Request.Context(), c.Query("organization_id"))
	if err != nil {
		appErr := mapBudgetError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromStageSummaries(summaries))
}
