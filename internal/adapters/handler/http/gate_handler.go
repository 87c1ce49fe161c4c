package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/warehouse-weeks/internal/core/services"
)

type GateHandler struct {
	gate *services.GateService
}

func NewGateHandler(gate *services.GateService) *GateHandler {
	return &GateHandler{gate: gate}
}

func (h *GateHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/operations/decision", h.Decide)
}

// Decide godoc
// @Summary      May receiving or packing write right now
// @Description  Always answers 200; a denial carries the reason to show the operator.
// @Tags         operations
// @Produce      json
// @Param        warehouse_id  query     string  false  "Warehouse id"
// @Param        season_id     query     string  false  "Season id"
// @Param        window_id     query     string  false  "Selected window id"
// @Success      200           {object}  domain.Decision
// @Security     BearerAuth
// @Router       /operations/decision [get]
func (h *GateHandler) Decide(c *gin.Context) {
	decision := h.gate.DecideForWindowID(
		c.Request.Context(),
		c.Query("warehouse_id"),
		c.Query("season_id"),
		c.Query("window_id"),
	)
	c.JSON(http.StatusOK, decision)
}
