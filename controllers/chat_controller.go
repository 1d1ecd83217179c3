package controllers

import (
	"net/http"

	"moodbite/services"

	"github.com/gin-gonic/gin"
)

type ChatInput struct {
	Message string `json:"message" binding:"required,max=2000"`
}

type ChatController struct {
	Svc *services.ChatService
}

func NewChatController(svc *services.ChatService) *ChatController {
	return &ChatController{Svc: svc}
}

// POST /api/chat
func (h *ChatController) Send(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var input ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.Svc.Reply(c.Request.Context(), uid, input.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

// GET /api/chat/history
func (h *ChatController) History(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	logs, err := h.Svc.History(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
