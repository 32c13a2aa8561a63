package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo código y mensaje listos para responder
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError convierte errores de gorm/postgres en mensajes para el usuario.
// Nunca expone el texto original del error.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Ocurrió un error en el servidor",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// Unique constraint (23505); sqlite reporta "UNIQUE constraint failed"
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStrLower)
	}

	// Foreign key (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStrLower, context)
	}

	// Not null (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return parseNotNullError(errStrLower)
	}

	// Check constraint (23514)
	if strings.Contains(errStrLower, "check constraint") {
		return ErrorInfo{
			Code:    ValidationInvalidInput,
			Message: "Los datos ingresados no son válidos",
		}
	}

	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "No fue posible conectar con un servicio externo. Inténtalo más tarde",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "rut") {
		return ErrorInfo{
			Code:    AuthRUTAlreadyExists,
			Message: "Ya existe una cuenta registrada con este RUT",
		}
	}

	if strings.Contains(errLower, "email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "Este email ya está en uso",
		}
	}

	if strings.Contains(errLower, "sku") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "Ya existe un producto con este SKU",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "El registro ya existe",
	}
}

func parseForeignKeyError(errLower string, context string) ErrorInfo {
	if strings.Contains(errLower, "still referenced") {
		if strings.Contains(context, "product") {
			return ErrorInfo{
				Code:    ResourceConflict,
				Message: "El producto tiene pedidos o cotizaciones asociadas y no puede eliminarse",
			}
		}
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "Existen datos asociados y no es posible eliminar el registro",
		}
	}

	if strings.Contains(errLower, "product_id") {
		return ErrorInfo{Code: ProductNotFound, Message: "El producto no existe"}
	}
	if strings.Contains(errLower, "user_id") {
		return ErrorInfo{Code: ResourceNotFound, Message: "El usuario no existe"}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "No se encontró un dato relacionado",
	}
}

func parseNotNullError(errLower string) ErrorInfo {
	switch {
	case strings.Contains(errLower, "rut"):
		return ErrorInfo{Code: ValidationRUTEmpty, Message: "El RUT es obligatorio"}
	case strings.Contains(errLower, "email"):
		return ErrorInfo{Code: ValidationRequired, Message: "El email es obligatorio"}
	case strings.Contains(errLower, "name"):
		return ErrorInfo{Code: ValidationRequired, Message: "El nombre es obligatorio"}
	}
	return ErrorInfo{
		Code:    ValidationRequired,
		Message: "Falta un campo obligatorio",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "user"):
		return "No se encontró el usuario"
	case strings.Contains(contextLower, "product"):
		return "No se encontró el producto"
	case strings.Contains(contextLower, "order"):
		return "No se encontró el pedido"
	case strings.Contains(contextLower, "quote"):
		return "No se encontró la cotización"
	}
	return "No se encontró el recurso solicitado"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "create") || strings.Contains(contextLower, "register"):
		return "Ocurrió un error al registrar. Inténtalo nuevamente"
	case strings.Contains(contextLower, "update"):
		return "Ocurrió un error al actualizar. Inténtalo nuevamente"
	case strings.Contains(contextLower, "delete"):
		return "Ocurrió un error al eliminar. Inténtalo nuevamente"
	}
	return "Ocurrió un error en el servidor. Inténtalo nuevamente"
}

// ParseAndRespond parsea el error y responde con el código HTTP indicado
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}
