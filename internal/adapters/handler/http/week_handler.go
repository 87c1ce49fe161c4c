package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/warehouse-weeks/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/warehouse-weeks/internal/core/domain"
	"github.com/comitanigiacomo/warehouse-weeks/internal/core/isoweek"
	"github.com/comitanigiacomo/warehouse-weeks/internal/core/services"
)

type WeekHandler struct {
	lifecycle *services.LifecycleService
	navigator *services.NavigatorService
	location  *time.Location
}

func NewWeekHandler(lifecycle *services.LifecycleService, navigator *services.NavigatorService, location *time.Location) *WeekHandler {
	if location == nil {
		location = time.UTC
	}
	return &WeekHandler{
		lifecycle: lifecycle,
		navigator: navigator,
		location:  location,
	}
}

type startWeekRequest struct {
	WarehouseID string `json:"warehouse_id" binding:"required"`
	SeasonID    string `json:"season_id" binding:"required"`
	StartDate   string `json:"start_date" binding:"required"`
}

type finishWeekRequest struct {
	EndDate string `json:"end_date" binding:"required"`
}

// windowResponse adds display-only fields to a window.
type windowResponse struct {
	*domain.Window
	IsOpen  bool   `json:"is_open"`
	Overdue bool   `json:"overdue"`
	Label   string `json:"label"`
}

type navigationResponse struct {
	Windows    []windowResponse `json:"windows"`
	Selected   *windowResponse  `json:"selected"`
	Index      int              `json:"index"`
	Position   int              `json:"position"`
	Total      int              `json:"total"`
	PreviousID string           `json:"previous_id,omitempty"`
	NextID     string           `json:"next_id,omitempty"`
}

type weekRangeResponse struct {
	Key       string `json:"key"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Label     string `json:"label"`
}

func (h *WeekHandler) RegisterRoutes(router *gin.RouterGroup) {
	weeks := router.Group("/weeks")
	{
		weeks.POST("/start", h.Start)
		weeks.POST("/:id/finish", h.Finish)
		weeks.GET("", h.List)
		weeks.GET("/current", h.Current)
		weeks.GET("/navigation", h.Navigation)
		weeks.GET("/key/:key", h.ByKey)
	}
}

func (h *WeekHandler) present(w *domain.Window) windowResponse {
	return windowResponse{
		Window:  w,
		IsOpen:  w.IsOpen(),
		Overdue: w.Overdue(isoweek.Today(h.location)),
		Label:   isoweek.Format(isoweek.Week{Start: w.StartDate, End: w.LastDay()}),
	}
}

func (h *WeekHandler) presentAll(windows []*domain.Window) []windowResponse {
	out := make([]windowResponse, 0, len(windows))
	for _, w := range windows {
		out = append(out, h.present(w))
	}
	return out
}

// Start godoc
// @Summary      Open a week
// @Tags         weeks
// @Accept       json
// @Produce      json
// @Param        body  body      startWeekRequest  true  "Week to open"
// @Success      201   {object}  windowResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      423   {object}  errorResponse
// @Security     BearerAuth
// @Router       /weeks/start [post]
func (h *WeekHandler) Start(c *gin.Context) {
	var req startWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	startDate, err := isoweek.ParseDate(req.StartDate)
	if err != nil {
		writeError(c, err)
		return
	}

	window, err := h.lifecycle.StartWeek(c.Request.Context(), services.StartWeekInput{
		WarehouseID: req.WarehouseID,
		SeasonID:    req.SeasonID,
		StartDate:   startDate,
		OperatorID:  operatorID(c),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.present(window))
}

// Finish godoc
// @Summary      Close the open week
// @Tags         weeks
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Window id"
// @Param        body  body      finishWeekRequest  true  "Closing date"
// @Success      200   {object}  windowResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      423   {object}  errorResponse
// @Security     BearerAuth
// @Router       /weeks/{id}/finish [post]
func (h *WeekHandler) Finish(c *gin.Context) {
	var req finishWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	endDate, err := isoweek.ParseDate(req.EndDate)
	if err != nil {
		writeError(c, err)
		return
	}

	window, err := h.lifecycle.FinishWeek(c.Request.Context(), services.FinishWeekInput{
		WindowID:   c.Param("id"),
		EndDate:    endDate,
		OperatorID: operatorID(c),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.present(window))
}

// List godoc
// @Summary      Weeks of a warehouse and season, oldest first
// @Tags         weeks
// @Produce      json
// @Param        warehouse_id  query     string  true  "Warehouse id"
// @Param        season_id     query     string  true  "Season id"
// @Success      200           {array}   windowResponse
// @Failure      400           {object}  errorResponse
// @Security     BearerAuth
// @Router       /weeks [get]
func (h *WeekHandler) List(c *gin.Context) {
	windows, err := h.lifecycle.ListWindows(c.Request.Context(), c.Query("warehouse_id"), c.Query("season_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.presentAll(windows))
}

// Current godoc
// @Summary      Open week, else the latest closed one
// @Tags         weeks
// @Produce      json
// @Param        warehouse_id  query     string  true  "Warehouse id"
// @Param        season_id     query     string  true  "Season id"
// @Success      200           {object}  windowResponse
// @Success      204
// @Failure      400           {object}  errorResponse
// @Security     BearerAuth
// @Router       /weeks/current [get]
func (h *WeekHandler) Current(c *gin.Context) {
	window, err := h.lifecycle.CurrentWindow(c.Request.Context(), c.Query("warehouse_id"), c.Query("season_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if window == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, h.present(window))
}

// Navigation godoc
// @Summary      Week selector state
// @Tags         weeks
// @Produce      json
// @Param        warehouse_id  query     string  true   "Warehouse id"
// @Param        season_id     query     string  true   "Season id"
// @Param        selected      query     string  false  "Requested window id"
// @Param        date          query     string  false  "Jump to the week of this date (YYYY-MM-DD)"
// @Success      200           {object}  navigationResponse
// @Failure      400           {object}  errorResponse
// @Security     BearerAuth
// @Router       /weeks/navigation [get]
func (h *WeekHandler) Navigation(c *gin.Context) {
	input := services.NavigateInput{
		WarehouseID: c.Query("warehouse_id"),
		SeasonID:    c.Query("season_id"),
		RequestedID: c.Query("selected"),
	}

	if raw := c.Query("date"); raw != "" {
		d, err := isoweek.ParseDate(raw)
		if err != nil {
			writeError(c, err)
			return
		}
		input.Date = &d
	}

	view, err := h.navigator.Navigate(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := navigationResponse{
		Windows:    h.presentAll(view.Windows),
		Index:      view.Index,
		Position:   view.Position,
		Total:      view.Total,
		PreviousID: view.PreviousID,
		NextID:     view.NextID,
	}
	if view.Selected != nil {
		selected := h.present(view.Selected)
		resp.Selected = &selected
	}

	c.JSON(http.StatusOK, resp)
}

// ByKey godoc
// @Summary      Date range of an ISO week key
// @Tags         weeks
// @Produce      json
// @Param        key  path      string  true  "ISO week key, e.g. 2025-W23"
// @Success      200  {object}  weekRangeResponse
// @Failure      400  {object}  errorResponse
// @Security     BearerAuth
// @Router       /weeks/key/{key} [get]
func (h *WeekHandler) ByKey(c *gin.Context) {
	key, err := isoweek.ParseKey(c.Param("key"))
	if err != nil {
		writeError(c, err)
		return
	}

	week := isoweek.FromKey(key)
	c.JSON(http.StatusOK, weekRangeResponse{
		Key:       key.String(),
		StartDate: week.Start.Format(isoweek.DateLayout),
		EndDate:   week.End.Format(isoweek.DateLayout),
		Label:     isoweek.Format(week),
	})
}

func operatorID(c *gin.Context) string {
	id, _ := middleware.GetOperatorID(c)
	return id
}
