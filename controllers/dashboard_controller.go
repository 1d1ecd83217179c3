package controllers

import (
	"net/http"

	"moodbite/models"
	"moodbite/services"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Auth     *services.AuthService
	Entries  *services.EntryService
	Insights *services.InsightService
	Recent   int
}

func NewDashboardController(auth *services.AuthService, entries *services.EntryService, insights *services.InsightService, recent int) *DashboardController {
	return &DashboardController{Auth: auth, Entries: entries, Insights: insights, Recent: recent}
}

// GET /api/dashboard
func (h *DashboardController) Get(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	user, err := h.Auth.CurrentUser(ctx, uid)
	if err != nil {
		respondError(c, err)
		return
	}
	foods, err := h.Entries.RecentFood(ctx, uid, h.Recent)
	if err != nil {
		respondError(c, err)
		return
	}
	moods, err := h.Entries.RecentMood(ctx, uid, h.Recent)
	if err != nil {
		respondError(c, err)
		return
	}
	insights, err := h.Insights.ForUser(ctx, uid)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":     user.Username,
		"recent_foods": foods,
		"recent_moods": moods,
		"insights":     insights,
		"mood_emojis":  models.MoodEmojis(),
	})
}
