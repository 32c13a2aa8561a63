package controller

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/4ndreams/GPS-sub000/internal/app/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func setupProductControllerTest(t *testing.T) (*gin.Engine, *testApp) {
	app := newTestApp(t)
	ctrl := NewProductController(app.products)

	router := gin.New()
	router.GET("/products", ctrl.ListProducts)
	router.GET("/products/:id", ctrl.GetProductByID)

	admin := router.Group("/products", app.auth.Authenticate(), app.auth.RequireRole(model.RoleAdmin))
	admin.POST("", ctrl.CreateProduct)
	admin.POST("/import", ctrl.ImportCatalogue)
	admin.PUT("/:id", ctrl.UpdateProduct)
	admin.PUT("/:id/image", ctrl.SetImage)
	admin.DELETE("/:id", ctrl.DeleteProduct)

	return router, app
}

func TestProductController_PublicCatalogue(t *testing.T) {
	router, app := setupProductControllerTest(t)
	door := app.seedProduct(t, "Puerta Roble", 89990, 5)
	app.seedProduct(t, "Puerta Pino", 45990, 2)

	tests := []struct {
		name      string
		path      string
		wantTotal float64
	}{
		{name: "All", path: "/products", wantTotal: 2},
		{name: "By category", path: "/products?category=puerta", wantTotal: 2},
		{name: "Other category", path: "/products?category=moldura", wantTotal: 0},
		{name: "Search", path: "/products?search=roble", wantTotal: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, http.MethodGet, tt.path, nil, "")
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantTotal, decodeBody(t, w)["total"])
		})
	}

	w := doJSON(router, http.MethodGet, "/products/"+strconv.FormatUint(uint64(door.ID), 10), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Puerta Roble", decodeBody(t, w)["product"].(map[string]interface{})["name"])

	w = doJSON(router, http.MethodGet, "/products/999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PRODUCT_NOT_FOUND", decodeBody(t, w)["error"])
}

func TestProductController_AdminCRUD(t *testing.T) {
	router, app := setupProductControllerTest(t)
	_, customer := app.tokenFor(t, "camila@gps.cl", "12.345.678-5", model.RoleUser)
	_, admin := app.tokenFor(t, "admin@gps.cl", "9.876.543-3", model.RoleAdmin)

	req := ProductRequest{
		Name:          "Moldura Pino 3cm",
		Category:      "moldura",
		Material:      "Pino",
		Price:         2990,
		StockQuantity: 100,
	}

	w := doJSON(router, http.MethodPost, "/products", req, customer)
	assert.Equal(t, http.StatusForbidden, w.Code)

	bad := req
	bad.Category = "ventana"
	w = doJSON(router, http.MethodPost, "/products", bad, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, "/products", req, admin)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)["product"].(map[string]interface{})
	assert.NotEmpty(t, created["sku"])
	path := "/products/" + strconv.FormatUint(uint64(created["id"].(float64)), 10)

	req.Price = 3490
	w = doJSON(router, http.MethodPut, path, req, admin)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody(t, w)["product"].(map[string]interface{})
	assert.Equal(t, float64(3490), updated["price"])
	assert.Equal(t, created["sku"], updated["sku"])

	w = doJSON(router, http.MethodPut, path+"/image", SetImageRequest{ImageURL: "https://cdn.gps.cl/products/a.jpg"}, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://cdn.gps.cl/products/a.jpg", decodeBody(t, w)["product"].(map[string]interface{})["image_url"])

	w = doJSON(router, http.MethodDelete, path, nil, admin)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(router, http.MethodDelete, path, nil, admin)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductController_ImportCatalogue(t *testing.T) {
	router, app := setupProductControllerTest(t)
	_, admin := app.tokenFor(t, "admin@gps.cl", "9.876.543-3", model.RoleAdmin)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"nombre", "categoria", "material", "medidas", "precio", "stock"},
		{"Puerta Lenga", "puerta", "Lenga", "70x200", 129990, 2},
		{"Guardapolvo", "moldura", "MDF", "", "$4.590", 50},
		{"", "", "", "", "", ""},
		{"Sin precio", "accesorio", "", "", "", 1},
	}
	for i, row := range rows {
		row := row
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	xlsx, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	upload := func(name string, content []byte) *httptest.ResponseRecorder {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		part, err := mw.CreateFormFile("file", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/products/import", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", admin)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := upload("catalogo.xlsx", xlsx.Bytes())
	require.Equal(t, http.StatusOK, w.Code)
	result := decodeBody(t, w)
	assert.Equal(t, float64(2), result["imported"])
	assert.Len(t, result["skipped"], 1)

	w = upload("catalogo.csv", []byte("nombre,precio\n"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_INVALID_FORMAT", decodeBody(t, w)["error"])
}
