package controllers

import (
	"net/http"
	"time"

	"moodbite/models"
	"moodbite/services"

	"github.com/gin-gonic/gin"
)

type FoodEntryInput struct {
	FoodName  string     `json:"food_name" binding:"required,max=100"`
	Calories  *int       `json:"calories" binding:"omitempty,min=0"`
	Timestamp *time.Time `json:"timestamp"`
}

type MoodEntryInput struct {
	Mood      string     `json:"mood" binding:"required,moodlabel"`
	Intensity int        `json:"intensity" binding:"required,min=1,max=5"`
	Timestamp *time.Time `json:"timestamp"`
}

type EntryController struct {
	Svc          *services.EntryService
	DefaultLimit int
}

func NewEntryController(svc *services.EntryService, defaultLimit int) *EntryController {
	return &EntryController{Svc: svc, DefaultLimit: defaultLimit}
}

// POST /api/food
func (h *EntryController) LogFood(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var input FoodEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.Svc.LogFood(c.Request.Context(), uid, services.FoodInput{
		FoodName:  input.FoodName,
		Calories:  input.Calories,
		Timestamp: input.Timestamp,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GET /api/food?limit=
func (h *EntryController) ListFood(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	limit, ok := queryLimit(c, h.DefaultLimit)
	if !ok {
		return
	}
	entries, err := h.Svc.RecentFood(c.Request.Context(), uid, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// POST /api/mood
func (h *EntryController) LogMood(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var input MoodEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.Svc.LogMood(c.Request.Context(), uid, services.MoodInput{
		Mood:      models.MoodLabel(input.Mood),
		Intensity: input.Intensity,
		Timestamp: input.Timestamp,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GET /api/mood?limit=
func (h *EntryController) ListMood(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	limit, ok := queryLimit(c, h.DefaultLimit)
	if !ok {
		return
	}
	entries, err := h.Svc.RecentMood(c.Request.Context(), uid, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

type moodOption struct {
	Label models.MoodLabel `json:"label"`
	Emoji string           `json:"emoji"`
}

// GET /api/moods lists the selectable labels for the mood form.
func (h *EntryController) MoodOptions(c *gin.Context) {
	out := make([]moodOption, 0, len(models.MoodLabels))
	for _, l := range models.MoodLabels {
		out = append(out, moodOption{Label: l, Emoji: l.Emoji()})
	}
	c.JSON(http.StatusOK, gin.H{
		"moods":         out,
		"min_intensity": services.MinIntensity,
		"max_intensity": services.MaxIntensity,
	})
}
