package model

import (
	"time"

	"gorm.io/gorm"
)

type QuoteStatus string // estado de la cotización

const (
	QuoteStatusPending  QuoteStatus = "pending"  // esperando respuesta
	QuoteStatusAnswered QuoteStatus = "answered" // respondida con monto
	QuoteStatusAccepted QuoteStatus = "accepted" // aceptada por el cliente
	QuoteStatusRejected QuoteStatus = "rejected" // rechazada
	QuoteStatusExpired  QuoteStatus = "expired"  // vencida
)

// Quote is a custom-size request (doors cut to measure, molding runs)
// answered manually from the dashboard.
type Quote struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	UserID       *uint          `gorm:"index" json:"user_id,omitempty"` // nil si fue enviada sin sesión
	ContactName  string         `gorm:"not null" json:"contact_name"`
	Email        string         `gorm:"not null;index" json:"email"`
	Phone        string         `json:"phone"`
	RUT          string         `gorm:"column:rut;size:12;not null;index" json:"rut"` // canónico
	Comuna       string         `gorm:"size:80" json:"comuna"`
	Message      string         `gorm:"type:text" json:"message"`
	Status       QuoteStatus    `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	QuotedAmount int64          `json:"quoted_amount"` // neto CLP
	TaxAmount    int64          `json:"tax_amount"`
	AdminNote    string         `gorm:"type:text" json:"admin_note,omitempty"`
	AnsweredAt   *time.Time     `json:"answered_at,omitempty"`
	ExpiresAt    *time.Time     `gorm:"index" json:"expires_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Items []QuoteItem `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Quote) TableName() string {
	return "quotes"
}

type QuoteItem struct {
	ID          uint     `gorm:"primarykey" json:"id"`
	QuoteID     uint     `gorm:"not null;index" json:"quote_id"`
	ProductID   *uint    `gorm:"index" json:"product_id,omitempty"`
	Description string   `gorm:"type:text" json:"description"`
	Quantity    int      `gorm:"not null" json:"quantity"`
	WidthCm     *float64 `json:"width_cm,omitempty"`
	HeightCm    *float64 `json:"height_cm,omitempty"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (QuoteItem) TableName() string {
	return "quote_items"
}
