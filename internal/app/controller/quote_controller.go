package controller

import (
	"net/http"

	"github.com/4ndreams/GPS-sub000/internal/app/model"
	"github.com/4ndreams/GPS-sub000/internal/app/service"
	apperrors "github.com/4ndreams/GPS-sub000/internal/errors"
	"github.com/4ndreams/GPS-sub000/internal/metrics"
	"github.com/4ndreams/GPS-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

type QuoteController struct {
	quoteService service.QuoteService
}

func NewQuoteController(quoteService service.QuoteService) *QuoteController {
	return &QuoteController{quoteService: quoteService}
}

type QuoteItemRequest struct {
	ProductID   *uint    `json:"product_id"`
	Description string   `json:"description"`
	Quantity    int      `json:"quantity" binding:"required,gt=0"`
	WidthCm     *float64 `json:"width_cm" binding:"omitempty,gt=0"`
	HeightCm    *float64 `json:"height_cm" binding:"omitempty,gt=0"`
}

// CreateQuoteRequest leaves the RUT unchecked at binding time; the service
// applies the form rules, dash included.
type CreateQuoteRequest struct {
	ContactName string             `json:"contact_name" binding:"required"`
	Email       string             `json:"email" binding:"required,email"`
	Phone       string             `json:"phone"`
	RUT         string             `json:"rut"`
	Comuna      string             `json:"comuna"`
	Message     string             `json:"message"`
	Items       []QuoteItemRequest `json:"items" binding:"required,min=1,dive"`
}

type AdminQuoteUpdateRequest struct {
	Status       string  `json:"status" binding:"omitempty,oneof=pending answered accepted rejected expired"`
	QuotedAmount *int64  `json:"quoted_amount" binding:"omitempty,gt=0"`
	AdminNote    *string `json:"admin_note"`
}

// CreateQuote receives a custom-size request, with or without a session
// POST /api/v1/quotes
func (ctrl *QuoteController) CreateQuote(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithBindingError(c, err)
		return
	}

	input := service.CreateQuoteInput{
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		RUT:         req.RUT,
		Comuna:      req.Comuna,
		Message:     req.Message,
	}
	if userID, ok := middleware.GetUserID(c); ok {
		input.UserID = &userID
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.QuoteItemInput{
			ProductID:   item.ProductID,
			Description: item.Description,
			Quantity:    item.Quantity,
			WidthCm:     item.WidthCm,
			HeightCm:    item.HeightCm,
		})
	}

	quote, err := ctrl.quoteService.CreateQuote(input)
	observeRUT(metrics.SurfaceQuote, err)
	if err != nil {
		log.Warn("Quote request rejected", map[string]interface{}{
			"email": req.Email,
			"error": err.Error(),
		})
		respondServiceError(c, err, "create quote")
		return
	}

	log.Info("Quote created", map[string]interface{}{
		"quote_id": quote.ID,
		"rut":      quote.RUT,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Recibimos tu solicitud de cotización",
		"quote":   quote,
	})
}

// GetMyQuotes lists the current user's quotes
// GET /api/v1/quotes/mine
func (ctrl *QuoteController) GetMyQuotes(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	quotes, err := ctrl.quoteService.GetUserQuotes(userID)
	if err != nil {
		respondServiceError(c, err, "list quotes")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quotes": quotes,
		"count":  len(quotes),
	})
}

// ListQuotes lists quotes for the dashboard (admin)
// GET /api/v1/admin/quotes?status=
func (ctrl *QuoteController) ListQuotes(c *gin.Context) {
	quotes, err := ctrl.quoteService.ListQuotes(model.QuoteStatus(c.Query("status")))
	if err != nil {
		respondServiceError(c, err, "list quotes")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quotes": quotes,
		"count":  len(quotes),
	})
}

// GetQuote returns one quote (admin)
// GET /api/v1/admin/quotes/:id
func (ctrl *QuoteController) GetQuote(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	quote, err := ctrl.quoteService.GetQuote(id)
	if err != nil {
		respondServiceError(c, err, "get quote")
		return
	}

	c.JSON(http.StatusOK, gin.H{"quote": quote})
}

// UpdateQuote answers or closes a quote (admin)
// PUT /api/v1/admin/quotes/:id
func (ctrl *QuoteController) UpdateQuote(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AdminQuoteUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithBindingError(c, err)
		return
	}

	quote, err := ctrl.quoteService.AdminUpdate(id, service.AdminQuoteUpdate{
		Status:       model.QuoteStatus(req.Status),
		QuotedAmount: req.QuotedAmount,
		AdminNote:    req.AdminNote,
	})
	if err != nil {
		respondServiceError(c, err, "update quote")
		return
	}

	log.Info("Quote updated", map[string]interface{}{
		"quote_id": quote.ID,
		"status":   quote.Status,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Cotización actualizada",
		"quote":   quote,
	})
}
