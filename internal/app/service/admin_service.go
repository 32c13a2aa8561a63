package service

import (
	"bytes"
	"errors"
	"strings"

	"github.com/4ndreams/GPS-sub000/internal/app/model"
	"github.com/4ndreams/GPS-sub000/internal/app/repository"
	"github.com/4ndreams/GPS-sub000/internal/spreadsheet"
	"github.com/4ndreams/GPS-sub000/pkg/logger"
	"github.com/4ndreams/GPS-sub000/pkg/rut"
	"gorm.io/gorm"
)

var ErrInvalidRole = errors.New("invalid role")

type UserListOptions struct {
	Search   string
	Role     model.UserRole
	Page     int
	PageSize int
}

// AdminUserUpdate edits a customer from the dashboard. Nil fields are kept.
type AdminUserUpdate struct {
	Name  *string
	Phone *string
	Role  *model.UserRole
	RUT   *string
}

type Dashboard struct {
	Users         int64 `json:"users"`
	Orders        int64 `json:"orders"`
	PendingOrders int64 `json:"pending_orders"`
	PendingQuotes int64 `json:"pending_quotes"`
	Revenue       int64 `json:"revenue"`
}

type AdminService interface {
	ListUsers(opts UserListOptions) ([]model.User, int64, error)
	UpdateUser(id uint, update AdminUserUpdate) (*model.User, error)
	ExportQuotes(status model.QuoteStatus) (*bytes.Buffer, error)
	Dashboard() (*Dashboard, error)
}

type adminService struct {
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
	quoteRepo repository.QuoteRepository
	quotes    QuoteService
}

func NewAdminService(
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	quoteRepo repository.QuoteRepository,
	quotes QuoteService,
) AdminService {
	return &adminService{
		userRepo:  userRepo,
		orderRepo: orderRepo,
		quoteRepo: quoteRepo,
		quotes:    quotes,
	}
}

// ListUsers searches by name or email. A search term that reads as a RUT
// matches the stored canonical RUT exactly.
func (s *adminService) ListUsers(opts UserListOptions) ([]model.User, int64, error) {
	if opts.Role != "" && opts.Role != model.RoleUser && opts.Role != model.RoleAdmin {
		return nil, 0, ErrInvalidRole
	}

	filter := repository.UserFilter{
		Role:     opts.Role,
		Page:     opts.Page,
		PageSize: opts.PageSize,
	}

	search := strings.TrimSpace(opts.Search)
	if id, ok := searchRUT(search); ok {
		filter.RUT = id.String()
	} else {
		filter.Query = search
	}

	return s.userRepo.Search(filter)
}

func (s *adminService) UpdateUser(id uint, update AdminUserUpdate) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if update.Name != nil && strings.TrimSpace(*update.Name) != "" {
		user.Name = strings.TrimSpace(*update.Name)
	}
	if update.Phone != nil {
		user.Phone = strings.TrimSpace(*update.Phone)
	}
	if update.Role != nil {
		if *update.Role != model.RoleUser && *update.Role != model.RoleAdmin {
			return nil, ErrInvalidRole
		}
		user.Role = *update.Role
	}
	if update.RUT != nil {
		canonical, err := canonicalUniqueRUT(s.userRepo, user.ID, *update.RUT)
		if err != nil {
			return nil, err
		}
		user.RUT = canonical
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	logger.Info("User updated by admin", map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
		"rut":     user.RUT,
	})
	return user, nil
}

func (s *adminService) ExportQuotes(status model.QuoteStatus) (*bytes.Buffer, error) {
	quotes, err := s.quotes.ListQuotes(status)
	if err != nil {
		return nil, err
	}
	return spreadsheet.WriteQuotes(quotes)
}

func (s *adminService) Dashboard() (*Dashboard, error) {
	users, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}
	stats, err := s.orderRepo.Stats()
	if err != nil {
		return nil, err
	}
	pendingQuotes, err := s.quoteRepo.CountByStatus(model.QuoteStatusPending)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Users:         users,
		Orders:        stats.TotalOrders,
		PendingOrders: stats.PendingOrders,
		PendingQuotes: pendingQuotes,
		Revenue:       stats.Revenue,
	}, nil
}

// searchRUT treats a term as a RUT only when it is valid and either carries a
// dash or has a full 7-8 digit body, so short numbers stay text searches.
func searchRUT(term string) (rut.Identifier, bool) {
	id, err := rut.Parse(term)
	if err != nil {
		return rut.Identifier{}, false
	}
	if !strings.Contains(term, "-") && len(id.Body) < 7 {
		return rut.Identifier{}, false
	}
	return id, true
}
