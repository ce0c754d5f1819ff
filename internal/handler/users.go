package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"

	"daycare/internal/apperr"
	"daycare/internal/auth"
	"daycare/internal/user"
)

type userHandler struct {
	svc    *user.Service
	logger log.Logger
}

type registerRequest struct {
	Name          string `json:"name" binding:"required,max=255"`
	Email         string `json:"email" binding:"required,email,max=255"`
	ContactNumber string `json:"contact_number" binding:"required"`
	Address       string `json:"address" binding:"required"`
	Password      string `json:"password" binding:"required"`
	Role          string `json:"role" binding:"omitempty,oneof=admin teacher parent"`
}

func (h *userHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, h.logger, bindError(err))
		return
	}
	u, err := h.svc.Register(c.Request.Context(), user.RegisterInput{
		Name:          req.Name,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
		Password:      req.Password,
		Role:          user.Role(req.Role),
	})
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusCreated, "User registered successfully", u)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *userHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, h.logger, bindError(err))
		return
	}
	s, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusOK, "Login successful", gin.H{
		"user":          s.User,
		"token_type":    "Bearer",
		"access_token":  s.Tokens.AccessToken,
		"refresh_token": s.Tokens.RefreshToken,
		"expires_at":    s.Tokens.AccessExp.Unix(),
	})
}

func (h *userHandler) logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, h.logger, bindError(err))
		return
	}
	id, err := currentUser(c)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	if err := h.svc.Logout(c.Request.Context(), id, req.RefreshToken); err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusOK, "Logged out", nil)
}

func (h *userHandler) me(c *gin.Context) {
	id, err := currentUser(c)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	u, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusOK, "", u)
}

func (h *userHandler) teachers(c *gin.Context) {
	list, err := h.svc.Teachers(c.Request.Context())
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusOK, "", list)
}

func currentUser(c *gin.Context) (int64, error) {
	claims, found := auth.FromContext(c)
	if !found {
		return 0, apperr.NotFound("User not found")
	}
	id, err := claims.UserID()
	if err != nil {
		return 0, apperr.NotFound("User not found")
	}
	return id, nil
}
