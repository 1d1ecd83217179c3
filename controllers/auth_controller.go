package controllers

import (
	"net/http"

	"moodbite/middlewares"
	"moodbite/services"

	"github.com/gin-gonic/gin"
)

type SignupInput struct {
	Username string `json:"username" binding:"required,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	Svc *services.AuthService
	// seconds the token cookie stays valid
	CookieMaxAge int
	SecureCookie bool
}

func NewAuthController(svc *services.AuthService, cookieMaxAge int, secure bool) *AuthController {
	return &AuthController{Svc: svc, CookieMaxAge: cookieMaxAge, SecureCookie: secure}
}

func (h *AuthController) Signup(c *gin.Context) {
	var input SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Svc.Register(c.Request.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "registration successful", "user": user})
}

func (h *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := h.Svc.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.TokenCookie, token, h.CookieMaxAge, "/", "", h.SecureCookie, true)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (h *AuthController) Logout(c *gin.Context) {
	c.SetCookie(middlewares.TokenCookie, "", -1, "/", "", h.SecureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
