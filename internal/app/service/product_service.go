package service

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/4ndreams/GPS-sub000/internal/app/model"
	"github.com/4ndreams/GPS-sub000/internal/app/repository"
	"github.com/4ndreams/GPS-sub000/internal/spreadsheet"
	"github.com/4ndreams/GPS-sub000/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInvalidCategory     = errors.New("invalid product category")
	ErrInvalidProductPrice = errors.New("product price must be positive")
	ErrInvalidStock        = errors.New("stock cannot be negative")
	ErrInvalidCatalogue    = errors.New("catalogue file is not a readable xlsx workbook")
)

const importBatchSize = 500

type ProductListOptions struct {
	Category model.ProductCategory
	Search   string
	Page     int
	PageSize int
}

// ImportResult summarises a catalogue upload.
type ImportResult struct {
	Imported int                    `json:"imported"`
	Skipped  []spreadsheet.RowError `json:"skipped"`
}

type ProductService interface {
	ListProducts(opts ProductListOptions) ([]model.Product, int64, error)
	GetProductByID(id uint) (*model.Product, error)
	CreateProduct(product *model.Product) error
	UpdateProduct(product *model.Product) error
	DeleteProduct(id uint) error
	SetImage(id uint, url string) (*model.Product, error)
	ImportCatalogue(r io.Reader) (*ImportResult, error)
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) ListProducts(opts ProductListOptions) ([]model.Product, int64, error) {
	if opts.Category != "" && !model.ValidCategory(opts.Category) {
		return nil, 0, ErrInvalidCategory
	}

	return s.productRepo.FindAll(repository.ProductFilter{
		Category: opts.Category,
		Search:   strings.TrimSpace(opts.Search),
		Page:     opts.Page,
		PageSize: opts.PageSize,
	})
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) CreateProduct(product *model.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	if strings.TrimSpace(product.SKU) == "" {
		product.SKU = spreadsheet.GenerateSKU(product.Category, product.Name)
	}

	if err := s.productRepo.Create(product); err != nil {
		return err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"sku":        product.SKU,
		"category":   product.Category,
	})
	return nil
}

func (s *productService) UpdateProduct(product *model.Product) error {
	existing, err := s.GetProductByID(product.ID)
	if err != nil {
		return err
	}
	if err := validateProduct(product); err != nil {
		return err
	}

	if strings.TrimSpace(product.SKU) == "" {
		product.SKU = existing.SKU
	}
	product.CreatedAt = existing.CreatedAt

	if err := s.productRepo.Update(product); err != nil {
		return err
	}

	logger.Info("Product updated", map[string]interface{}{
		"product_id": product.ID,
	})
	return nil
}

func (s *productService) DeleteProduct(id uint) error {
	if err := s.productRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	logger.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func (s *productService) SetImage(id uint, url string) (*model.Product, error) {
	product, err := s.GetProductByID(id)
	if err != nil {
		return nil, err
	}

	product.ImageURL = url
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// ImportCatalogue loads products from an xlsx workbook in batches.
func (s *productService) ImportCatalogue(r io.Reader) (*ImportResult, error) {
	products, skipped, err := spreadsheet.ReadProducts(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalogue, err)
	}

	result := &ImportResult{Skipped: skipped}
	if len(products) == 0 {
		return result, nil
	}

	if err := s.productRepo.BulkCreate(products, importBatchSize); err != nil {
		return nil, err
	}
	result.Imported = len(products)

	logger.Info("Catalogue imported", map[string]interface{}{
		"imported": result.Imported,
		"skipped":  len(skipped),
	})
	return result, nil
}

func validateProduct(p *model.Product) error {
	if !model.ValidCategory(p.Category) {
		return ErrInvalidCategory
	}
	if p.Price <= 0 {
		return ErrInvalidProductPrice
	}
	if p.StockQuantity < 0 {
		return ErrInvalidStock
	}
	return nil
}
