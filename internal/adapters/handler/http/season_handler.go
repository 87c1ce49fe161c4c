package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/warehouse-weeks/internal/core/services"
)

type SeasonHandler struct {
	seasons *services.SeasonService
}

func NewSeasonHandler(seasons *services.SeasonService) *SeasonHandler {
	return &SeasonHandler{seasons: seasons}
}

func (h *SeasonHandler) RegisterRoutes(router *gin.RouterGroup) {
	seasons := router.Group("/seasons")
	{
		seasons.GET("/:id", h.Get)
		seasons.POST("/:id/finalize", h.Finalize)
	}
}

// Get godoc
// @Summary      Season finalization flag
// @Tags         seasons
// @Produce      json
// @Param        id   path      string  true  "Season id"
// @Success      200  {object}  domain.Season
// @Failure      503  {object}  errorResponse
// @Security     BearerAuth
// @Router       /seasons/{id} [get]
func (h *SeasonHandler) Get(c *gin.Context) {
	season, err := h.seasons.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, season)
}

// Finalize godoc
// @Summary      Close all open weeks and make the season read-only
// @Tags         seasons
// @Produce      json
// @Param        id   path      string  true  "Season id"
// @Success      200  {object}  domain.Season
// @Failure      503  {object}  errorResponse
// @Security     BearerAuth
// @Router       /seasons/{id}/finalize [post]
func (h *SeasonHandler) Finalize(c *gin.Context) {
	season, err := h.seasons.Finalize(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, season)
}
