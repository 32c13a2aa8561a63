package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/4ndreams/GPS-sub000/internal/app/model"
	"github.com/4ndreams/GPS-sub000/internal/app/repository"
	"github.com/4ndreams/GPS-sub000/internal/app/service"
	"github.com/4ndreams/GPS-sub000/internal/db"
	"github.com/4ndreams/GPS-sub000/internal/middleware"
	"github.com/4ndreams/GPS-sub000/internal/validation"
	"github.com/4ndreams/GPS-sub000/pkg/logger"
	"github.com/4ndreams/GPS-sub000/pkg/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testJWTSecret = "gps-controller-test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Initialize(logger.Config{Level: "error", Format: "json"})
	util.BcryptCost = bcrypt.MinCost
	if err := validation.Register(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// testApp wires the real services over an in-memory database.
type testApp struct {
	db       *gorm.DB
	auth     *middleware.AuthMiddleware
	authSv   service.AuthService
	products service.ProductService
	orders   service.OrderService
	quotes   service.QuoteService
	admin    service.AdminService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	quoteRepo := repository.NewQuoteRepository(testDB)

	quotes := service.NewQuoteService(quoteRepo, productRepo, 0.19, 30*24*time.Hour)
	return &testApp{
		db:       testDB,
		auth:     middleware.NewAuthMiddleware(testJWTSecret),
		authSv:   service.NewAuthService(userRepo, testJWTSecret, 15*time.Minute, 7*24*time.Hour),
		products: service.NewProductService(productRepo),
		orders:   service.NewOrderService(orderRepo, testDB, 0.19),
		quotes:   quotes,
		admin:    service.NewAdminService(userRepo, orderRepo, quoteRepo, quotes),
	}
}

// tokenFor seeds a user and returns a bearer header for it.
func (a *testApp) tokenFor(t *testing.T, email, rut string, role model.UserRole) (*model.User, string) {
	t.Helper()

	user, err := db.SeedTestUser(a.db, email, rut, role)
	require.NoError(t, err)
	tokens, err := util.GenerateTokenPair(user.ID, user.Email, string(user.Role), testJWTSecret, 15*time.Minute, time.Hour)
	require.NoError(t, err)
	return user, "Bearer " + tokens.AccessToken
}

func (a *testApp) seedProduct(t *testing.T, name string, price int64, stock int) *model.Product {
	t.Helper()

	p := &model.Product{
		Name:          name,
		Category:      model.CategoryDoor,
		Material:      "MDF",
		Sizes:         model.StringList{"70x200", "80x200"},
		Price:         price,
		StockQuantity: stock,
	}
	require.NoError(t, a.products.CreateProduct(p))
	return p
}

func doJSON(router http.Handler, method, path string, body interface{}, authHeader string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
