package controllers

import (
	"aiva/errors"
	"aiva/response"
	"aiva/services/logger"

	"github.com/gin-gonic/gin"
)

var errLog logger.Logger = logger.NewDefaultLogger(logger.InfoLevel)

// handleServiceError maps an application error to its HTTP response.
// Anything unclassified is logged and hidden behind a generic 500 body.
func handleServiceError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		errLog.Error("unexpected error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		response.ServerError(c)
		return
	}

	switch appErr.Code {
	case errors.ErrCodeNotFound, errors.ErrCodeDBNotFound:
		response.NotFound(c)
	case errors.ErrCodeForbidden:
		response.Forbidden(c)
	case errors.ErrCodeUnauthorized, errors.ErrCodeInvalidToken, errors.ErrCodeMissingToken:
		response.Unauthorized(c, appErr.Message)
	case errors.ErrCodeUserExists, errors.ErrCodeEmailExists:
		response.BadRequest(c, appErr.Message)
	case errors.ErrCodeValidation, errors.ErrCodeRequiredField, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidEmail:
		response.BadRequest(c, appErr.Message)
	case errors.ErrCodeUserNotFound, errors.ErrCodeInvalidPassword:
		response.Unauthorized(c, appErr.Message)
	default:
		errLog.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		response.ServerError(c)
	}
}
