package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-devconnector/pkg/apperror"
	"github.com/oksasatya/go-devconnector/pkg/response"
	"github.com/oksasatya/go-devconnector/pkg/validation"
)

const msgValidationFailed = "Validation failed"

// writeError maps an application error onto its status and client-safe message.
func writeError(c *gin.Context, err error) {
	response.Error(c, apperror.ToHTTPStatus(err), apperror.Message(err), nil)
}

func writeViolations(c *gin.Context, err error, msgs validation.Messages) {
	response.Error(c, http.StatusBadRequest, msgValidationFailed, validation.ToViolations(err, msgs))
}
