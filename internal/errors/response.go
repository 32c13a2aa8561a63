package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse estructura estándar de error
type ErrorResponse struct {
	Error   string `json:"error"`   // código (ver codes.go)
	Message string `json:"message"` // mensaje para el usuario final
}

// RespondWithError responde con un código de error y un mensaje en español
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Debes iniciar sesión"
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "No tienes permiso para realizar esta acción"
	}
	RespondWithError(c, http.StatusForbidden, AuthzForbidden, message)
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func Conflict(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusConflict, errorCode, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Ocurrió un error en el servidor. Inténtalo nuevamente"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

// ValidationError error de validación con mensajes por campo
type ValidationError struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// RespondWithValidationError responde 400 con los mensajes de cada campo
func RespondWithValidationError(c *gin.Context, errorCode string, fields map[string]string) {
	if errorCode == "" {
		errorCode = ValidationInvalidInput
	}
	c.JSON(http.StatusBadRequest, ValidationError{
		Error:   errorCode,
		Message: "Hay datos del formulario que no son válidos",
		Fields:  fields,
	})
}
