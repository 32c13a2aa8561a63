package controller

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/4ndreams/GPS-sub000/internal/app/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupQuoteControllerTest(t *testing.T) (*gin.Engine, *testApp) {
	app := newTestApp(t)
	ctrl := NewQuoteController(app.quotes)

	router := gin.New()
	router.POST("/quotes", app.auth.OptionalAuthenticate(), ctrl.CreateQuote)
	router.GET("/quotes/mine", app.auth.Authenticate(), ctrl.GetMyQuotes)

	admin := router.Group("/admin", app.auth.Authenticate(), app.auth.RequireRole(model.RoleAdmin))
	admin.GET("/quotes", ctrl.ListQuotes)
	admin.GET("/quotes/:id", ctrl.GetQuote)
	admin.PUT("/quotes/:id", ctrl.UpdateQuote)

	return router, app
}

func quoteRequest(rut string) CreateQuoteRequest {
	width, height := 75.0, 205.0
	return CreateQuoteRequest{
		ContactName: "Javiera Muñoz",
		Email:       "javiera@gps.cl",
		RUT:         rut,
		Comuna:      "Providencia",
		Message:     "Puerta a medida para baño",
		Items: []QuoteItemRequest{
			{Description: "Puerta MDF lisa", Quantity: 1, WidthCm: &width, HeightCm: &height},
		},
	}
}

func TestQuoteController_CreateQuote_RUT(t *testing.T) {
	tests := []struct {
		name        string
		rut         string
		wantStatus  int
		wantCode    string
		wantMessage string
		wantStored  string
	}{
		{name: "Dotted form", rut: "12.345.678-5", wantStatus: http.StatusCreated, wantStored: "12.345.678-5"},
		{name: "Dashed form is formatted", rut: "18765432-7", wantStatus: http.StatusCreated, wantStored: "18.765.432-7"},
		{name: "Empty", rut: "", wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_RUT_EMPTY", wantMessage: "Debes ingresar tu RUT"},
		{
			name:        "Valid digits without dash",
			rut:         "123456785",
			wantStatus:  http.StatusBadRequest,
			wantCode:    "VALIDATION_RUT_SEPARATOR",
			wantMessage: "Ingresa el RUT con guion antes del dígito verificador (ej: 12345678-5)",
		},
		{name: "Wrong check digit", rut: "12.345.678-0", wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_RUT_INVALID", wantMessage: "El RUT ingresado no es válido"},
		{name: "Letters in body", rut: "12.3A5.678-5", wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_RUT_INVALID", wantMessage: "El RUT ingresado no es válido"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := setupQuoteControllerTest(t)

			w := doJSON(router, http.MethodPost, "/quotes", quoteRequest(tt.rut), "")
			assert.Equal(t, tt.wantStatus, w.Code)
			body := decodeBody(t, w)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, body["error"])
				fields := body["fields"].(map[string]interface{})
				assert.Equal(t, tt.wantMessage, fields["rut"])
				return
			}
			quote := body["quote"].(map[string]interface{})
			assert.Equal(t, tt.wantStored, quote["rut"])
			assert.Equal(t, "pending", quote["status"])
			assert.Nil(t, quote["user_id"])
		})
	}
}

func TestQuoteController_SessionAndAdmin(t *testing.T) {
	router, app := setupQuoteControllerTest(t)
	_, bearer := app.tokenFor(t, "javiera@gps.cl", "18.765.432-7", model.RoleUser)
	_, adminBearer := app.tokenFor(t, "admin@gps.cl", "9.876.543-3", model.RoleAdmin)

	w := doJSON(router, http.MethodPost, "/quotes", quoteRequest("18.765.432-7"), bearer)
	require.Equal(t, http.StatusCreated, w.Code)
	quote := decodeBody(t, w)["quote"].(map[string]interface{})
	assert.NotNil(t, quote["user_id"])
	path := "/admin/quotes/" + strconv.FormatUint(uint64(quote["id"].(float64)), 10)

	w = doJSON(router, http.MethodGet, "/quotes/mine", nil, bearer)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["count"])

	w = doJSON(router, http.MethodGet, "/admin/quotes", nil, bearer)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, http.MethodGet, "/admin/quotes?status=pending", nil, adminBearer)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["count"])

	// Answering needs an amount.
	w = doJSON(router, http.MethodPut, path, AdminQuoteUpdateRequest{Status: "answered"}, adminBearer)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	amount := int64(250000)
	note := "Incluye instalación"
	w = doJSON(router, http.MethodPut, path, AdminQuoteUpdateRequest{Status: "answered", QuotedAmount: &amount, AdminNote: &note}, adminBearer)
	require.Equal(t, http.StatusOK, w.Code)
	answered := decodeBody(t, w)["quote"].(map[string]interface{})
	assert.Equal(t, "answered", answered["status"])
	assert.Equal(t, float64(47500), answered["tax_amount"])
	assert.NotNil(t, answered["expires_at"])

	w = doJSON(router, http.MethodGet, "/admin/quotes/999", nil, adminBearer)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "QUOTE_NOT_FOUND", decodeBody(t, w)["error"])
}
