package service

import (
	"errors"
	"strings"

	"github.com/4ndreams/GPS-sub000/internal/app/model"
	"github.com/4ndreams/GPS-sub000/internal/app/repository"
	"github.com/4ndreams/GPS-sub000/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrEmptyOrder          = errors.New("order has no items")
	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrInvalidSize         = errors.New("size not offered for product")
	ErrInvalidDocument     = errors.New("invalid tax document")
	ErrInvalidOrderStatus  = errors.New("invalid order status")
	ErrMissingShippingInfo = errors.New("shipping address is required")
)

type OrderItemInput struct {
	ProductID uint
	Quantity  int
	Size      string
}

// CreateOrderInput is the checkout form. RUTs may be typed in any accepted form.
type CreateOrderInput struct {
	Items           []OrderItemInput
	ShippingAddress string
	Comuna          string
	CustomerRUT     string
	DocumentType    model.DocumentType
	CompanyRUT      string
	CompanyName     string
}

type OrderService interface {
	CreateOrder(userID uint, input CreateOrderInput) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	GetOrderByID(userID, orderID uint) (*model.Order, error)
	UpdateOrderStatus(orderID uint, status model.OrderStatus) (*model.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	db        *gorm.DB
	taxRate   decimal.Decimal
}

func NewOrderService(orderRepo repository.OrderRepository, db *gorm.DB, taxRate float64) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		db:        db,
		taxRate:   decimal.NewFromFloat(taxRate),
	}
}

// checkoutDocument validates the RUTs and tax document of a checkout and
// returns them in canonical form.
func checkoutDocument(input CreateOrderInput) (customerRUT string, doc model.DocumentType, companyRUT string, err error) {
	customerRUT, err = parseRUTField("customer_rut", input.CustomerRUT)
	if err != nil {
		return "", "", "", err
	}

	doc = input.DocumentType
	if doc == "" {
		doc = model.DocumentBoleta
	}

	switch doc {
	case model.DocumentBoleta:
		return customerRUT, doc, "", nil
	case model.DocumentFactura:
		if strings.TrimSpace(input.CompanyName) == "" {
			return "", "", "", ErrInvalidDocument
		}
		companyRUT, err = parseRUTField("company_rut", input.CompanyRUT)
		if err != nil {
			return "", "", "", err
		}
		return customerRUT, doc, companyRUT, nil
	default:
		return "", "", "", ErrInvalidDocument
	}
}

func (s *orderService) CreateOrder(userID uint, input CreateOrderInput) (*model.Order, error) {
	logger.Info("Creating order", map[string]interface{}{
		"user_id":       userID,
		"item_count":    len(input.Items),
		"document_type": input.DocumentType,
	})

	if len(input.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if strings.TrimSpace(input.ShippingAddress) == "" {
		return nil, ErrMissingShippingInfo
	}

	customerRUT, doc, companyRUT, err := checkoutDocument(input)
	if err != nil {
		logger.Warn("Order rejected at checkout", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, err
	}

	order := &model.Order{
		UserID:          userID,
		CustomerRUT:     customerRUT,
		DocumentType:    doc,
		CompanyRUT:      companyRUT,
		Status:          model.OrderStatusPending,
		ShippingAddress: strings.TrimSpace(input.ShippingAddress),
		Comuna:          strings.TrimSpace(input.Comuna),
	}
	if doc == model.DocumentFactura {
		order.CompanyName = strings.TrimSpace(input.CompanyName)
	}

	// Every query inside the closure must go through tx.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var net int64
		for _, item := range input.Items {
			if item.Quantity <= 0 {
				return ErrInvalidQuantity
			}

			var product model.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return err
			}

			size := strings.ToLower(strings.TrimSpace(item.Size))
			if !offersSize(product, size) {
				return ErrInvalidSize
			}

			// Conditional decrement: concurrent checkouts cannot oversell.
			result := tx.Model(&model.Product{}).
				Where("id = ? AND stock_quantity >= ?", product.ID, item.Quantity).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				logger.Warn("Insufficient stock", map[string]interface{}{
					"product_id": product.ID,
					"requested":  item.Quantity,
					"available":  product.StockQuantity,
				})
				return ErrInsufficientStock
			}

			net += lineNet(product.Price, item.Quantity)
			order.OrderItems = append(order.OrderItems, model.OrderItem{
				ProductID: product.ID,
				Quantity:  item.Quantity,
				UnitPrice: product.Price,
				Size:      size,
			})
		}

		totals := computeTotals(net, s.taxRate)
		order.NetAmount = totals.Net
		order.TaxAmount = totals.Tax
		order.TotalAmount = totals.Total

		return tx.Create(order).Error
	})
	if err != nil {
		if !isDomainError(err) {
			logger.Error("Order transaction failed", err, map[string]interface{}{
				"user_id": userID,
			})
		}
		return nil, err
	}

	logger.Info("Order created successfully", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"customer_rut": order.CustomerRUT,
		"total_amount": order.TotalAmount,
	})

	return s.orderRepo.FindByID(order.ID)
}

func offersSize(p model.Product, size string) bool {
	if len(p.Sizes) == 0 {
		return size == ""
	}
	for _, s := range p.Sizes {
		if strings.EqualFold(s, size) {
			return true
		}
	}
	return false
}

func isDomainError(err error) bool {
	for _, target := range []error{ErrProductNotFound, ErrInsufficientStock, ErrInvalidSize, ErrInvalidQuantity} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	return s.orderRepo.FindByUserID(userID)
}

// GetOrderByID hides orders of other users behind ErrOrderNotFound.
func (s *orderService) GetOrderByID(userID, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if order.UserID != userID {
		logger.Warn("Order access denied: ownership mismatch", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		})
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateOrderStatus moves an order forward. Delivered and cancelled orders are
// final, and cancelling returns the items to stock.
func (s *orderService) UpdateOrderStatus(orderID uint, status model.OrderStatus) (*model.Order, error) {
	logger.Info("Updating order status", map[string]interface{}{
		"order_id":   orderID,
		"new_status": status,
	})

	if !model.ValidOrderStatus(status) {
		return nil, ErrInvalidOrderStatus
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order model.Order
		if err := tx.Preload("OrderItems").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if order.Status == model.OrderStatusDelivered || order.Status == model.OrderStatusCancelled {
			return ErrInvalidOrderStatus
		}

		if status == model.OrderStatusCancelled {
			for _, item := range order.OrderItems {
				if err := tx.Model(&model.Product{}).
					Where("id = ?", item.ProductID).
					UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity)).Error; err != nil {
					return err
				}
			}
		}

		return tx.Model(&order).Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Order status updated successfully", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})
	return s.orderRepo.FindByID(orderID)
}
