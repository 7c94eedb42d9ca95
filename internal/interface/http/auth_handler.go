package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-devconnector/internal/application"
	"github.com/oksasatya/go-devconnector/internal/interface/middleware"
	"github.com/oksasatya/go-devconnector/pkg/response"
)

type AuthHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.UserService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

func clientIP(c *gin.Context) string {
	if ip := c.GetString(middleware.CtxRealIPKey); ip != "" {
		return ip
	}
	return c.ClientIP()
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeViolations(c, err, loginMessages)
		return
	}
	token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.Logger.WithFields(logrus.Fields{"ip": clientIP(c)}).Info("login rejected")
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tokenResponse{Token: token}, "login successful", nil)
}

// Me returns the identity behind the presented token.
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.Svc.Me(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "current user", nil)
}
