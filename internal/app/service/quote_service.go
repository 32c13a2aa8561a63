package service

import (
	"errors"
	"strings"
	"time"

	"github.com/4ndreams/GPS-sub000/internal/app/model"
	"github.com/4ndreams/GPS-sub000/internal/app/repository"
	"github.com/4ndreams/GPS-sub000/pkg/logger"
	"github.com/4ndreams/GPS-sub000/pkg/rut"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrQuoteNotFound       = errors.New("quote not found")
	ErrEmptyQuote          = errors.New("quote has no items")
	ErrInvalidQuoteStatus  = errors.New("invalid quote status")
	ErrQuoteAmountRequired = errors.New("answered quote needs a positive amount")
)

// QuoteRUTError carries the form verdict for a rejected quote RUT.
type QuoteRUTError struct {
	Result rut.Result
}

func (e *QuoteRUTError) Error() string {
	return "rut: " + e.Result.Message
}

func (e *QuoteRUTError) Unwrap() error {
	return ErrInvalidRUT
}

type QuoteItemInput struct {
	ProductID   *uint
	Description string
	Quantity    int
	WidthCm     *float64
	HeightCm    *float64
}

type CreateQuoteInput struct {
	UserID      *uint
	ContactName string
	Email       string
	Phone       string
	RUT         string
	Comuna      string
	Message     string
	Items       []QuoteItemInput
}

// AdminQuoteUpdate is a partial update from the dashboard.
type AdminQuoteUpdate struct {
	Status       model.QuoteStatus
	QuotedAmount *int64
	AdminNote    *string
}

type QuoteService interface {
	CreateQuote(input CreateQuoteInput) (*model.Quote, error)
	GetUserQuotes(userID uint) ([]model.Quote, error)
	ListQuotes(status model.QuoteStatus) ([]model.Quote, error)
	GetQuote(id uint) (*model.Quote, error)
	AdminUpdate(id uint, update AdminQuoteUpdate) (*model.Quote, error)
	ExpireStale(now time.Time) (int64, error)
}

type quoteService struct {
	quoteRepo   repository.QuoteRepository
	productRepo repository.ProductRepository
	taxRate     decimal.Decimal
	validity    time.Duration
	now         func() time.Time
}

func NewQuoteService(
	quoteRepo repository.QuoteRepository,
	productRepo repository.ProductRepository,
	taxRate float64,
	validity time.Duration,
) QuoteService {
	return &quoteService{
		quoteRepo:   quoteRepo,
		productRepo: productRepo,
		taxRate:     decimal.NewFromFloat(taxRate),
		validity:    validity,
		now:         time.Now,
	}
}

func (s *quoteService) CreateQuote(input CreateQuoteInput) (*model.Quote, error) {
	logger.Info("Creating quote request", map[string]interface{}{
		"email":      input.Email,
		"item_count": len(input.Items),
		"has_user":   input.UserID != nil,
	})

	// Quote forms require the dash before the check character.
	verdict := rut.Describe(input.RUT)
	if !verdict.Valid {
		logger.Warn("Quote rejected: invalid RUT", map[string]interface{}{
			"email":  input.Email,
			"reason": verdict.Kind.String(),
		})
		return nil, &QuoteRUTError{Result: verdict}
	}
	// Format leaves short bodies as typed; Parse gives the stored form.
	id, _ := rut.Parse(input.RUT)

	if len(input.Items) == 0 {
		return nil, ErrEmptyQuote
	}

	quote := &model.Quote{
		UserID:      input.UserID,
		ContactName: strings.TrimSpace(input.ContactName),
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:       strings.TrimSpace(input.Phone),
		RUT:         id.String(),
		Comuna:      strings.TrimSpace(input.Comuna),
		Message:     strings.TrimSpace(input.Message),
		Status:      model.QuoteStatusPending,
	}

	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if item.ProductID != nil {
			if _, err := s.productRepo.FindByID(*item.ProductID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrProductNotFound
				}
				return nil, err
			}
		}
		quote.Items = append(quote.Items, model.QuoteItem{
			ProductID:   item.ProductID,
			Description: strings.TrimSpace(item.Description),
			Quantity:    item.Quantity,
			WidthCm:     item.WidthCm,
			HeightCm:    item.HeightCm,
		})
	}

	if err := s.quoteRepo.Create(quote); err != nil {
		return nil, err
	}

	logger.Info("Quote request created", map[string]interface{}{
		"quote_id": quote.ID,
		"rut":      quote.RUT,
	})
	return quote, nil
}

func (s *quoteService) GetUserQuotes(userID uint) ([]model.Quote, error) {
	return s.quoteRepo.FindByUserID(userID)
}

func (s *quoteService) ListQuotes(status model.QuoteStatus) ([]model.Quote, error) {
	if status != "" && !validQuoteStatus(status) {
		return nil, ErrInvalidQuoteStatus
	}
	return s.quoteRepo.FindAll(status)
}

func (s *quoteService) GetQuote(id uint) (*model.Quote, error) {
	quote, err := s.quoteRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}
	return quote, nil
}

// AdminUpdate applies a dashboard change. Answering prices the quote with IVA
// and starts its validity window; expired quotes are read-only.
func (s *quoteService) AdminUpdate(id uint, update AdminQuoteUpdate) (*model.Quote, error) {
	quote, err := s.GetQuote(id)
	if err != nil {
		return nil, err
	}

	if quote.Status == model.QuoteStatusExpired {
		return nil, ErrInvalidQuoteStatus
	}
	if update.Status != "" && !validQuoteStatus(update.Status) {
		return nil, ErrInvalidQuoteStatus
	}

	if update.AdminNote != nil {
		quote.AdminNote = strings.TrimSpace(*update.AdminNote)
	}
	if update.QuotedAmount != nil {
		if *update.QuotedAmount <= 0 {
			return nil, ErrQuoteAmountRequired
		}
		totals := computeTotals(*update.QuotedAmount, s.taxRate)
		quote.QuotedAmount = totals.Net
		quote.TaxAmount = totals.Tax
	}

	if update.Status != "" && update.Status != quote.Status {
		if update.Status == model.QuoteStatusAnswered {
			if quote.QuotedAmount <= 0 {
				return nil, ErrQuoteAmountRequired
			}
			now := s.now()
			expires := now.Add(s.validity)
			quote.AnsweredAt = &now
			quote.ExpiresAt = &expires
		}
		quote.Status = update.Status
	}

	if err := s.quoteRepo.Update(quote); err != nil {
		return nil, err
	}

	logger.Info("Quote updated by admin", map[string]interface{}{
		"quote_id":      quote.ID,
		"status":        quote.Status,
		"quoted_amount": quote.QuotedAmount,
	})
	return quote, nil
}

// ExpireStale expires answered quotes past their deadline and pending quotes
// left unanswered for longer than the validity window.
func (s *quoteService) ExpireStale(now time.Time) (int64, error) {
	n, err := s.quoteRepo.ExpireStale(now, now.Add(-s.validity))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.Info("Expired stale quotes", map[string]interface{}{
			"count": n,
		})
	}
	return n, nil
}

func validQuoteStatus(s model.QuoteStatus) bool {
	switch s {
	case model.QuoteStatusPending, model.QuoteStatusAnswered, model.QuoteStatusAccepted,
		model.QuoteStatusRejected, model.QuoteStatusExpired:
		return true
	}
	return false
}
