package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/4ndreams/GPS-sub000/internal/app/service"
	apperrors "github.com/4ndreams/GPS-sub000/internal/errors"
	"github.com/4ndreams/GPS-sub000/internal/metrics"
	"github.com/4ndreams/GPS-sub000/internal/middleware"
	"github.com/4ndreams/GPS-sub000/pkg/rut"
	"github.com/4ndreams/GPS-sub000/pkg/util"
	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// serviceErrors maps domain errors to responses; first match wins.
var serviceErrors = []errorMapping{
	{service.ErrEmailAlreadyExists, http.StatusConflict, apperrors.AuthEmailAlreadyExists, "Este email ya está en uso"},
	{service.ErrRUTAlreadyExists, http.StatusConflict, apperrors.AuthRUTAlreadyExists, "Este RUT ya está registrado"},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Email o contraseña incorrectos"},
	{util.ErrExpiredToken, http.StatusUnauthorized, apperrors.AuthTokenExpired, "Tu sesión expiró, vuelve a iniciar sesión"},
	{util.ErrInvalidToken, http.StatusUnauthorized, apperrors.AuthTokenInvalid, "Token de autenticación inválido"},
	{service.ErrUserNotFound, http.StatusNotFound, apperrors.ResourceNotFound, "Usuario no encontrado"},
	{service.ErrInvalidRole, http.StatusBadRequest, apperrors.ValidationInvalidInput, "Rol inválido"},
	{service.ErrProductNotFound, http.StatusNotFound, apperrors.ProductNotFound, "Producto no encontrado"},
	{service.ErrInvalidCategory, http.StatusBadRequest, apperrors.ProductInvalidCategory, "Categoría inválida"},
	{service.ErrInvalidProductPrice, http.StatusBadRequest, apperrors.ValidationInvalidRange, "El precio debe ser mayor a cero"},
	{service.ErrInvalidStock, http.StatusBadRequest, apperrors.ValidationInvalidRange, "El stock no puede ser negativo"},
	{service.ErrInvalidCatalogue, http.StatusBadRequest, apperrors.ValidationInvalidFormat, "No se pudo leer el archivo. Debe ser una planilla .xlsx"},
	{service.ErrInsufficientStock, http.StatusConflict, apperrors.ProductInsufficientStock, "No hay stock suficiente"},
	{service.ErrInvalidSize, http.StatusBadRequest, apperrors.ValidationInvalidInput, "La medida seleccionada no está disponible"},
	{service.ErrInvalidQuantity, http.StatusBadRequest, apperrors.ValidationInvalidRange, "La cantidad debe ser mayor a cero"},
	{service.ErrOrderNotFound, http.StatusNotFound, apperrors.OrderNotFound, "Pedido no encontrado"},
	{service.ErrEmptyOrder, http.StatusBadRequest, apperrors.OrderEmpty, "El pedido no tiene productos"},
	{service.ErrMissingShippingInfo, http.StatusBadRequest, apperrors.ValidationRequired, "Debes ingresar una dirección de despacho"},
	{service.ErrInvalidDocument, http.StatusBadRequest, apperrors.OrderInvalidDocument, "Para factura debes ingresar RUT y razón social de la empresa"},
	{service.ErrInvalidOrderStatus, http.StatusBadRequest, apperrors.OrderInvalidStatus, "Cambio de estado no permitido"},
	{service.ErrQuoteNotFound, http.StatusNotFound, apperrors.QuoteNotFound, "Cotización no encontrada"},
	{service.ErrEmptyQuote, http.StatusBadRequest, apperrors.QuoteEmpty, "La cotización no tiene ítems"},
	{service.ErrInvalidQuoteStatus, http.StatusBadRequest, apperrors.QuoteInvalidStatus, "Cambio de estado no permitido"},
	{service.ErrQuoteAmountRequired, http.StatusBadRequest, apperrors.ValidationInvalidRange, "Debes indicar un monto mayor a cero"},
}

// respondServiceError writes the response for an error returned by a service.
// Unknown errors go through the database error parser as 500.
func respondServiceError(c *gin.Context, err error, context string) {
	var quoteErr *service.QuoteRUTError
	if errors.As(err, &quoteErr) {
		apperrors.RespondWithValidationError(c, apperrors.RUTErrorCode(quoteErr.Result.Kind), map[string]string{
			"rut": quoteErr.Result.UserMessage(),
		})
		return
	}

	var fieldErr *service.RUTFieldError
	if errors.As(err, &fieldErr) {
		apperrors.RespondWithRUTError(c, fieldErr.Field, fieldErr.Err)
		return
	}

	for _, m := range serviceErrors {
		if errors.Is(err, m.target) {
			apperrors.RespondWithError(c, m.status, m.code, m.message)
			return
		}
	}

	middleware.GetLoggerFromContext(c).Error("Unhandled service error", err, map[string]interface{}{
		"context": context,
	})
	apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, context)
}

// observeRUT records the verdict of a RUT-bearing request.
func observeRUT(surface string, err error) {
	var quoteErr *service.QuoteRUTError
	switch {
	case err == nil:
		metrics.ObserveRUT(surface, rut.KindNone)
	case errors.As(err, &quoteErr):
		metrics.ObserveRUT(surface, quoteErr.Result.Kind)
	case errors.Is(err, service.ErrInvalidRUT):
		metrics.ObserveRUT(surface, rut.KindOf(err))
	}
}

// parseIDParam reads a positive integer path parameter or answers 400.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID inválido")
		return 0, false
	}
	return uint(id), true
}

// requireUserID returns the authenticated user or answers 401.
func requireUserID(c *gin.Context) (uint, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return 0, false
	}
	return userID, true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil {
		return v
	}
	return fallback
}
