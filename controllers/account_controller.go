package controllers

import (
	"net/http"

	"moodbite/middlewares"
	"moodbite/services"

	"github.com/gin-gonic/gin"
)

type AccountController struct {
	Svc *services.AuthService
}

func NewAccountController(svc *services.AuthService) *AccountController {
	return &AccountController{Svc: svc}
}

// GET /api/me
func (h *AccountController) GetProfile(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	user, err := h.Svc.CurrentUser(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DELETE /api/account removes the user with all food, mood and chat logs.
func (h *AccountController) DeleteAccount(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteAccount(c.Request.Context(), uid); err != nil {
		respondError(c, err)
		return
	}
	c.SetCookie(middlewares.TokenCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}
