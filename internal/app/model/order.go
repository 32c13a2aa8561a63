package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string  // estado del pedido
type DocumentType string // documento tributario

const (
	OrderStatusPending   OrderStatus = "pending"   // recibido
	OrderStatusConfirmed OrderStatus = "confirmed" // confirmado
	OrderStatusShipping  OrderStatus = "shipping"  // en despacho
	OrderStatusDelivered OrderStatus = "delivered" // entregado
	OrderStatusCancelled OrderStatus = "cancelled" // anulado

	DocumentBoleta  DocumentType = "boleta"  // consumidor final
	DocumentFactura DocumentType = "factura" // empresa, requiere RUT de empresa
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipping, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                     // ID de pedido
	UserID          uint           `gorm:"not null;index" json:"user_id"`                            // comprador
	CustomerRUT     string         `gorm:"column:customer_rut;size:12;not null" json:"customer_rut"` // RUT del comprador, canónico
	DocumentType    DocumentType   `gorm:"type:varchar(10);default:'boleta'" json:"document_type"`
	CompanyRUT      string         `gorm:"column:company_rut;size:12" json:"company_rut,omitempty"` // RUT empresa (factura)
	CompanyName     string         `json:"company_name,omitempty"`                                  // razón social (factura)
	NetAmount       int64          `gorm:"not null" json:"net_amount"`                              // neto CLP
	TaxAmount       int64          `gorm:"not null" json:"tax_amount"`                              // IVA CLP
	TotalAmount     int64          `gorm:"not null" json:"total_amount"`                            // total CLP
	Status          OrderStatus    `gorm:"type:varchar(20);default:'pending'" json:"status"`
	ShippingAddress string         `gorm:"type:text" json:"shipping_address"`
	Comuna          string         `gorm:"size:80" json:"comuna"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	User       User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	OrderID   uint           `gorm:"not null;index" json:"order_id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	UnitPrice int64          `gorm:"not null" json:"unit_price"` // precio neto al momento de la compra
	Size      string         `gorm:"size:20" json:"size,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
