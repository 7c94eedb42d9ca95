package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-devconnector/internal/application"
	"github.com/oksasatya/go-devconnector/internal/interface/middleware"
	"github.com/oksasatya/go-devconnector/pkg/response"
)

type ProfileHandler struct {
	Svc    *application.ProfileService
	Logger *logrus.Logger
}

func NewProfileHandler(svc *application.ProfileService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Svc: svc, Logger: logger}
}

func (h *ProfileHandler) Me(c *gin.Context) {
	v, err := h.Svc.Mine(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, v, "profile", nil)
}

// Upsert creates or updates the caller's profile.
func (h *ProfileHandler) Upsert(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeViolations(c, err, profileMessages)
		return
	}
	v, err := h.Svc.Upsert(c.Request.Context(), middleware.UserID(c), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, v, "profile saved", nil)
}

func (h *ProfileHandler) List(c *gin.Context) {
	views, err := h.Svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, views, "profiles", map[string]any{"count": len(views)})
}

func (h *ProfileHandler) ByUser(c *gin.Context) {
	v, err := h.Svc.GetByUserID(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, v, "profile", nil)
}

func (h *ProfileHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "0"))
	views, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, views, "search results", map[string]any{"count": len(views)})
}

// Delete removes the caller's profile and account.
func (h *ProfileHandler) Delete(c *gin.Context) {
	uid := middleware.UserID(c)
	if err := h.Svc.DeleteOwnedBy(c.Request.Context(), uid); err != nil {
		writeError(c, err)
		return
	}
	h.Logger.WithField("user_id", uid).Info("user deleted")
	response.Success(c, http.StatusOK, gin.H{"msg": "User deleted"}, "User deleted", nil)
}

func (h *ProfileHandler) AddExperience(c *gin.Context) {
	var req experienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeViolations(c, err, experienceMessages)
		return
	}
	v, err := h.Svc.AddExperience(c.Request.Context(), middleware.UserID(c), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, v, "experience added", nil)
}

func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	v, err := h.Svc.RemoveExperience(c.Request.Context(), middleware.UserID(c), c.Param("exp_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, v, "experience removed", nil)
}

func (h *ProfileHandler) AddEducation(c *gin.Context) {
	var req educationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeViolations(c, err, educationMessages)
		return
	}
	v, err := h.Svc.AddEducation(c.Request.Context(), middleware.UserID(c), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, v, "education added", nil)
}

func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	v, err := h.Svc.RemoveEducation(c.Request.Context(), middleware.UserID(c), c.Param("edu_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, v, "education removed", nil)
}
