package controllers

import (
	"net/http"

	"moodbite/services"

	"github.com/gin-gonic/gin"
)

type InsightController struct {
	Svc *services.InsightService
}

func NewInsightController(svc *services.InsightService) *InsightController {
	return &InsightController{Svc: svc}
}

// GET /api/insights
func (h *InsightController) List(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	insights, err := h.Svc.ForUser(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"insights": insights})
}

// GET /api/insights/details
func (h *InsightController) Details(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	details, err := h.Svc.DetailsForUser(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"correlations": details})
}
