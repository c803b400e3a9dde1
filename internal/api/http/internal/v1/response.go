package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/taskhive/backend/internal/service"
	"github.com/taskhive/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	validatorPkg "github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// response is the envelope every endpoint answers with. The embedded
// status_code mirrors the HTTP status of the reply.
type response struct {
	StatusCode int         `json:"status_code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationErrorsResponse struct {
	StatusCode int          `json:"status_code"`
	Message    string       `json:"message"`
	Errors     []fieldError `json:"errors"`
}

func successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, response{
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	})
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	logger.Error(message, zap.Int("status_code", statusCode), zap.String("path", c.FullPath()))
	c.AbortWithStatusJSON(statusCode, response{
		StatusCode: statusCode,
		Message:    message,
	})
}

// serviceErrorResponse translates service sentinels into HTTP replies.
// Anything unrecognized is treated as an internal failure and not leaked
// to the client.
func serviceErrorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, service.ErrActiveOTPExists):
		errorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTaskNotFound):
		errorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUserNotVerified):
		errorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		errorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrUserAlreadyVerified),
		errors.Is(err, service.ErrInvalidOTP),
		errors.Is(err, service.ErrOTPExpired),
		errors.Is(err, service.ErrPhoneNumberRequired),
		errors.Is(err, service.ErrMaxCompletionsRequired),
		errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, service.ErrPasswordConfirmMismatch),
		errors.Is(err, service.ErrPasswordUnchanged):
		errorResponse(c, http.StatusBadRequest, err.Error())
	default:
		logger.Error("unexpected service error", zap.Error(err), zap.String("path", c.FullPath()))
		errorResponse(c, http.StatusInternalServerError, "internal server error")
	}
}

// validationResponse unpacks binding failures into per-field messages.
func validationResponse(c *gin.Context, err error) {
	var validationErrors validatorPkg.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	fields := make([]fieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, fieldError{
			Field:   fe.Field(),
			Message: messageForTag(fe),
		})
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, validationErrorsResponse{
		StatusCode: http.StatusBadRequest,
		Message:    "validation failed",
		Errors:     fields,
	})
}

func messageForTag(fe validatorPkg.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "phonenumber":
		return "must be a valid phone number"
	case "otp":
		return "must be a 6-digit code"
	default:
		return fmt.Sprintf("failed on the %s rule", fe.Tag())
	}
}
