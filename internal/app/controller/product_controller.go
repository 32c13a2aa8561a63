package controller

import (
	"net/http"

	"github.com/4ndreams/GPS-sub000/internal/app/model"
	"github.com/4ndreams/GPS-sub000/internal/app/service"
	apperrors "github.com/4ndreams/GPS-sub000/internal/errors"
	"github.com/4ndreams/GPS-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// maxImportSize caps catalogue uploads at 10 MB.
const maxImportSize = 10 << 20

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

type ProductRequest struct {
	SKU           string   `json:"sku"`
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Category      string   `json:"category" binding:"required,oneof=puerta moldura accesorio"`
	Material      string   `json:"material"`
	Sizes         []string `json:"sizes"`
	Price         int64    `json:"price" binding:"required,gt=0"`
	StockQuantity int      `json:"stock_quantity" binding:"gte=0"`
	ImageURL      string   `json:"image_url"`
}

type SetImageRequest struct {
	ImageURL string `json:"image_url" binding:"required,url"`
}

func (r ProductRequest) toModel() *model.Product {
	return &model.Product{
		SKU:           r.SKU,
		Name:          r.Name,
		Description:   r.Description,
		Category:      model.ProductCategory(r.Category),
		Material:      r.Material,
		Sizes:         model.StringList(r.Sizes),
		Price:         r.Price,
		StockQuantity: r.StockQuantity,
		ImageURL:      r.ImageURL,
	}
}

// ListProducts lists the catalogue
// GET /api/v1/products?category=&search=&page=&page_size=
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	opts := service.ProductListOptions{
		Category: model.ProductCategory(c.Query("category")),
		Search:   c.Query("search"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}

	products, total, err := ctrl.productService.ListProducts(opts)
	if err != nil {
		respondServiceError(c, err, "list products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":  products,
		"count":     len(products),
		"total":     total,
		"page":      opts.Page,
		"page_size": opts.PageSize,
	})
}

// GetProductByID returns a single product
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProductByID(id)
	if err != nil {
		respondServiceError(c, err, "get product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// CreateProduct adds a product (admin)
// POST /api/v1/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithBindingError(c, err)
		return
	}

	product := req.toModel()
	if err := ctrl.productService.CreateProduct(product); err != nil {
		respondServiceError(c, err, "create product")
		return
	}

	log.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"sku":        product.SKU,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Producto creado",
		"product": product,
	})
}

// UpdateProduct replaces a product's editable fields (admin)
// PUT /api/v1/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithBindingError(c, err)
		return
	}

	product := req.toModel()
	product.ID = id
	if err := ctrl.productService.UpdateProduct(product); err != nil {
		respondServiceError(c, err, "update product")
		return
	}

	updated, err := ctrl.productService.GetProductByID(id)
	if err != nil {
		respondServiceError(c, err, "get product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Producto actualizado",
		"product": updated,
	})
}

// DeleteProduct removes a product (admin)
// DELETE /api/v1/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		respondServiceError(c, err, "delete product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Producto eliminado"})
}

// SetImage stores the URL of an image uploaded through a presigned URL (admin)
// PUT /api/v1/products/:id/image
func (ctrl *ProductController) SetImage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SetImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithBindingError(c, err)
		return
	}

	product, err := ctrl.productService.SetImage(id, req.ImageURL)
	if err != nil {
		respondServiceError(c, err, "set product image")
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// ImportCatalogue loads products from an uploaded xlsx file (admin)
// POST /api/v1/products/import (multipart field "file")
func (ctrl *ProductController) ImportCatalogue(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	header, err := c.FormFile("file")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Debes adjuntar el archivo del catálogo")
		return
	}
	if header.Size > maxImportSize {
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "El archivo supera los 10 MB")
		return
	}

	file, err := header.Open()
	if err != nil {
		log.Error("Failed to open catalogue upload", err)
		apperrors.InternalError(c, "")
		return
	}
	defer file.Close()

	result, err := ctrl.productService.ImportCatalogue(file)
	if err != nil {
		log.Warn("Catalogue import failed", map[string]interface{}{
			"filename": header.Filename,
			"error":    err.Error(),
		})
		respondServiceError(c, err, "import catalogue")
		return
	}

	log.Info("Catalogue imported", map[string]interface{}{
		"filename": header.Filename,
		"imported": result.Imported,
		"skipped":  len(result.Skipped),
	})

	c.JSON(http.StatusOK, result)
}
