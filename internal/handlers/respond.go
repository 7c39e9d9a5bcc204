package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/catalog-backend/internal/apperrors"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

// respondError maps the service error taxonomy onto HTTP status codes.
// Internal faults get a generic body so storage details never leak out.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := apperrors.CodeInternal
	message := "internal server error"

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		code = appErr.Code
		switch appErr.Code {
		case apperrors.CodeValidation:
			status = http.StatusBadRequest
			message = appErr.Message
		case apperrors.CodeNotFound:
			status = http.StatusNotFound
			message = appErr.Message
		case apperrors.CodeConflict:
			status = http.StatusConflict
			message = appErr.Message
		}
	}

	c.JSON(status, errorEnvelope{Error: apiError{Code: string(code), Message: message}})
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, errorEnvelope{Error: apiError{
			Code:    string(apperrors.CodeValidation),
			Message: "invalid id parameter: " + raw,
		}})
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, out interface{}) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope{Error: apiError{
			Code:    string(apperrors.CodeValidation),
			Message: "invalid request body: " + err.Error(),
		}})
		return false
	}
	return true
}
