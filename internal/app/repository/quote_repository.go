package repository

import (
	"time"

	"github.com/4ndreams/GPS-sub000/internal/app/model"
	"github.com/4ndreams/GPS-sub000/pkg/logger"
	"gorm.io/gorm"
)

type QuoteRepository interface {
	Create(quote *model.Quote) error
	FindByID(id uint) (*model.Quote, error)
	FindByUserID(userID uint) ([]model.Quote, error)
	FindAll(status model.QuoteStatus) ([]model.Quote, error)
	Update(quote *model.Quote) error
	ExpireStale(now time.Time, pendingBefore time.Time) (int64, error)
	CountByStatus(status model.QuoteStatus) (int64, error)
}

type quoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) QuoteRepository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) Create(quote *model.Quote) error {
	logger.Debug("Creating quote in database", map[string]interface{}{
		"rut":        quote.RUT,
		"item_count": len(quote.Items),
	})

	if err := r.db.Create(quote).Error; err != nil {
		logger.Error("Failed to create quote in database", err, map[string]interface{}{
			"rut": quote.RUT,
		})
		return err
	}
	return nil
}

func (r *quoteRepository) FindByID(id uint) (*model.Quote, error) {
	var quote model.Quote
	if err := r.db.Preload("Items.Product").First(&quote, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find quote by ID", err, map[string]interface{}{
				"quote_id": id,
			})
		}
		return nil, err
	}
	return &quote, nil
}

func (r *quoteRepository) FindByUserID(userID uint) ([]model.Quote, error) {
	var quotes []model.Quote
	if err := r.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&quotes).Error; err != nil {
		logger.Error("Failed to find quotes by user", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return quotes, nil
}

func (r *quoteRepository) FindAll(status model.QuoteStatus) ([]model.Quote, error) {
	query := r.db.Preload("Items")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var quotes []model.Quote
	if err := query.Order("created_at DESC").Find(&quotes).Error; err != nil {
		logger.Error("Failed to list quotes", err, map[string]interface{}{
			"status": status,
		})
		return nil, err
	}
	return quotes, nil
}

func (r *quoteRepository) Update(quote *model.Quote) error {
	logger.Debug("Updating quote in database", map[string]interface{}{
		"quote_id": quote.ID,
		"status":   quote.Status,
	})

	if err := r.db.Omit("Items").Save(quote).Error; err != nil {
		logger.Error("Failed to update quote", err, map[string]interface{}{
			"quote_id": quote.ID,
		})
		return err
	}
	return nil
}

// ExpireStale marks answered quotes past ExpiresAt and pending quotes created
// before pendingBefore as expired.
func (r *quoteRepository) ExpireStale(now time.Time, pendingBefore time.Time) (int64, error) {
	result := r.db.Model(&model.Quote{}).
		Where("((status = ? AND expires_at IS NOT NULL AND expires_at < ?) OR (status = ? AND created_at < ?))",
			model.QuoteStatusAnswered, now,
			model.QuoteStatusPending, pendingBefore).
		Update("status", model.QuoteStatusExpired)
	if result.Error != nil {
		logger.Error("Failed to expire stale quotes", result.Error)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *quoteRepository) CountByStatus(status model.QuoteStatus) (int64, error) {
	var count int64
	err := r.db.Model(&model.Quote{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
