package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/airbnb-listing-service/internal/application"
	"github.com/oksasatya/airbnb-listing-service/internal/interface/middleware"
	"github.com/oksasatya/airbnb-listing-service/pkg/helpers"
	"github.com/oksasatya/airbnb-listing-service/pkg/response"
	"github.com/oksasatya/airbnb-listing-service/pkg/validation"
)

type UserHandler struct {
	Svc     *application.UserService
	Logger  logrus.FieldLogger
	Cookies *helpers.Manager
}

func NewUserHandler(svc *application.UserService, logger logrus.FieldLogger, cookies *helpers.Manager) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, Cookies: cookies}
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required,username"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,pwd"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	APIKey    string    `json:"apiKey"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	key, err := h.Svc.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, h.Logger, "user", err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"apiKey": key}, "user registered", nil)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, h.Logger, "user", err)
		return
	}
	h.Cookies.SetSession(c, res.Token, res.ExpiresAt)
	response.Success(c, http.StatusOK, loginResponse{
		Token:     res.Token,
		APIKey:    res.User.APIKey,
		ExpiresAt: res.ExpiresAt,
	}, "login successful", nil)
}

// Logout clears the session cookie; issued tokens stay valid until they expire
func (h *UserHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.ChangePassword(c.Request.Context(), uid, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(c, h.Logger, "user", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true}, "password updated", nil)
}

func (h *UserHandler) Me(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":         u.ID,
		"username":   u.Username,
		"roles":      u.Roles,
		"created_at": u.CreatedAt,
	}, "profile", nil)
}
