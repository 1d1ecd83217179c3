package controllers

import (
	"net/http"
	"time"

	"moodbite/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	Svc *services.AnalyticsService
	// calendar days are cut in this location
	Loc *time.Location
	Now func() time.Time
}

func NewAnalyticsController(svc *services.AnalyticsService, loc *time.Location) *AnalyticsController {
	if loc == nil {
		loc = time.UTC
	}
	return &AnalyticsController{Svc: svc, Loc: loc, Now: time.Now}
}

// GET /api/analytics/summary?from=YYYY-MM-DD&to=YYYY-MM-DD&includeMissingDays=true
func (h *AnalyticsController) GetAnalyticsSummary(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	now := h.Now().In(h.Loc)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, h.Loc)
	last := first.AddDate(0, 1, -1)

	fromStr := c.DefaultQuery("from", first.Format("2006-01-02"))
	toStr := c.DefaultQuery("to", last.Format("2006-01-02"))
	includeMissing := c.DefaultQuery("includeMissingDays", "false") == "true"

	from, err := time.ParseInLocation("2006-01-02", fromStr, h.Loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
		return
	}
	to, err := time.ParseInLocation("2006-01-02", toStr, h.Loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "`to` must be on/after `from`"})
		return
	}

	out, err := h.Svc.Summary(c.Request.Context(), userID, from, to, includeMissing)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/analytics/weekly?week_start=YYYY-MM-DD
func (h *AnalyticsController) GetWeeklyOverview(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	weekStart := services.StartOfWeek(h.Now().In(h.Loc))
	if v := c.Query("week_start"); v != "" {
		ws, err := time.ParseInLocation("2006-01-02", v, h.Loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid week_start"})
			return
		}
		weekStart = services.StartOfWeek(ws)
	}

	out, err := h.Svc.WeeklyOverview(c.Request.Context(), userID, weekStart)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
