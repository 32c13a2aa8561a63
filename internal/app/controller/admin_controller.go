package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/4ndreams/GPS-sub000/internal/app/model"
	"github.com/4ndreams/GPS-sub000/internal/app/service"
	apperrors "github.com/4ndreams/GPS-sub000/internal/errors"
	"github.com/4ndreams/GPS-sub000/internal/metrics"
	"github.com/4ndreams/GPS-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminController struct {
	adminService service.AdminService
}

func NewAdminController(adminService service.AdminService) *AdminController {
	return &AdminController{adminService: adminService}
}

type AdminUserUpdateRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Role  *string `json:"role" binding:"omitempty,oneof=user admin"`
	RUT   *string `json:"rut"`
}

// ListUsers searches customers by name, email or RUT
// GET /api/v1/admin/users?search=&role=&page=&page_size=
func (ctrl *AdminController) ListUsers(c *gin.Context) {
	opts := service.UserListOptions{
		Search:   c.Query("search"),
		Role:     model.UserRole(c.Query("role")),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}

	users, total, err := ctrl.adminService.ListUsers(opts)
	if err != nil {
		respondServiceError(c, err, "list users")
		return
	}

	items := make([]gin.H, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"users":     items,
		"total":     total,
		"page":      opts.Page,
		"page_size": opts.PageSize,
	})
}

// UpdateUser edits a customer from the dashboard
// PUT /api/v1/admin/users/:id
func (ctrl *AdminController) UpdateUser(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AdminUserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithBindingError(c, err)
		return
	}

	update := service.AdminUserUpdate{
		Name:  req.Name,
		Phone: req.Phone,
		RUT:   req.RUT,
	}
	if req.Role != nil {
		role := model.UserRole(*req.Role)
		update.Role = &role
	}

	user, err := ctrl.adminService.UpdateUser(id, update)
	if req.RUT != nil {
		observeRUT(metrics.SurfaceAdmin, err)
	}
	if err != nil {
		log.Warn("Admin user update failed", map[string]interface{}{
			"user_id": id,
			"error":   err.Error(),
		})
		respondServiceError(c, err, "update user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Usuario actualizado",
		"user":    userResponse(user),
	})
}

// ExportQuotes downloads quotes as an xlsx workbook
// GET /api/v1/admin/quotes/export?status=
func (ctrl *AdminController) ExportQuotes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	buf, err := ctrl.adminService.ExportQuotes(model.QuoteStatus(c.Query("status")))
	if err != nil {
		log.Error("Quote export failed", err)
		respondServiceError(c, err, "export quotes")
		return
	}

	filename := fmt.Sprintf("cotizaciones-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Dashboard returns the summary counters
// GET /api/v1/admin/dashboard
func (ctrl *AdminController) Dashboard(c *gin.Context) {
	dashboard, err := ctrl.adminService.Dashboard()
	if err != nil {
		respondServiceError(c, err, "dashboard")
		return
	}

	c.JSON(http.StatusOK, gin.H{"dashboard": dashboard})
}
