package controller

import (
	"net/http"
	"strconv"

	apperrors "github.com/4ndreams/GPS-sub000/internal/errors"
	"github.com/4ndreams/GPS-sub000/internal/metrics"
	"github.com/4ndreams/GPS-sub000/pkg/rut"
	"github.com/gin-gonic/gin"
)

// RUTController serves per-keystroke RUT checks for the storefront forms.
type RUTController struct{}

func NewRUTController() *RUTController {
	return &RUTController{}
}

type ValidateRUTRequest struct {
	RUT string `json:"rut"`
}

// Validate explains whether a typed RUT is acceptable
// POST /api/v1/rut/validate
func (ctrl *RUTController) Validate(c *gin.Context) {
	var req ValidateRUTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Los datos enviados no son válidos")
		return
	}

	verdict := rut.Describe(req.RUT)
	metrics.ObserveRUT(metrics.SurfaceCheckEndpoint, verdict.Kind)

	resp := gin.H{
		"valid": verdict.Valid,
		"kind":  verdict.Kind.String(),
	}
	if verdict.Valid {
		resp["formatted"] = verdict.Formatted
	} else {
		resp["message"] = verdict.UserMessage()
	}
	c.JSON(http.StatusOK, resp)
}

// CheckDigit computes the check character for a numeric body
// GET /api/v1/rut/check-digit/:body
func (ctrl *RUTController) CheckDigit(c *gin.Context) {
	body := c.Param("body")
	if len(body) == 0 || len(body) > rut.MaxBodyDigits || !isDigits(body) {
		apperrors.BadRequest(c, apperrors.ValidationRUTMalformed, "El cuerpo del RUT debe tener entre 1 y 8 dígitos")
		return
	}

	n, err := strconv.Atoi(body)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRUTMalformed, "El cuerpo del RUT debe tener entre 1 y 8 dígitos")
		return
	}

	id := rut.Identifier{Body: body, Check: rut.CheckDigit(n)}
	c.JSON(http.StatusOK, gin.H{
		"body":        body,
		"check_digit": string(id.Check),
		"formatted":   id.String(),
	})
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
