package router

import (
	"github.com/4ndreams/GPS-sub000/config"
	"github.com/4ndreams/GPS-sub000/internal/app/controller"
	"github.com/4ndreams/GPS-sub000/internal/app/model"
	"github.com/4ndreams/GPS-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	authController    *controller.AuthController
	productController *controller.ProductController
	orderController   *controller.OrderController
	quoteController   *controller.QuoteController
	adminController   *controller.AdminController
	rutController     *controller.RUTController
	uploadController  *controller.UploadController
	authMiddleware    *middleware.AuthMiddleware
	config            *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	orderController *controller.OrderController,
	quoteController *controller.QuoteController,
	adminController *controller.AdminController,
	rutController *controller.RUTController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:    authController,
		productController: productController,
		orderController:   orderController,
		quoteController:   quoteController,
		adminController:   adminController,
		rutController:     rutController,
		uploadController:  uploadController,
		authMiddleware:    authMiddleware,
		config:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.Metrics())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "GPS API is running",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authenticated := r.authMiddleware.Authenticate()
	adminOnly := r.authMiddleware.RequireRole(model.RoleAdmin)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.Refresh)
			auth.POST("/logout", authenticated, r.authController.Logout)
			auth.GET("/me", authenticated, r.authController.GetMe)
			auth.PUT("/me", authenticated, r.authController.UpdateMe)
		}

		rut := v1.Group("/rut")
		{
			rut.POST("/validate", r.rutController.Validate)
			rut.GET("/check-digit/:body", r.rutController.CheckDigit)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
			products.GET("/:id", r.productController.GetProductByID)

			products.POST("", authenticated, adminOnly, r.productController.CreateProduct)
			products.POST("/import", authenticated, adminOnly, r.productController.ImportCatalogue)
			products.PUT("/:id", authenticated, adminOnly, r.productController.UpdateProduct)
			products.PUT("/:id/image", authenticated, adminOnly, r.productController.SetImage)
			products.DELETE("/:id", authenticated, adminOnly, r.productController.DeleteProduct)
		}

		orders := v1.Group("/orders", authenticated)
		{
			orders.POST("", r.orderController.CreateOrder)
			orders.GET("", r.orderController.GetOrders)
			orders.GET("/:id", r.orderController.GetOrderByID)
			orders.PUT("/:id/status", adminOnly, r.orderController.UpdateOrderStatus)
		}

		quotes := v1.Group("/quotes")
		{
			quotes.POST("", r.authMiddleware.OptionalAuthenticate(), r.quoteController.CreateQuote)
			quotes.GET("/mine", authenticated, r.quoteController.GetMyQuotes)
		}

		admin := v1.Group("/admin", authenticated, adminOnly)
		{
			admin.GET("/dashboard", r.adminController.Dashboard)
			admin.GET("/users", r.adminController.ListUsers)
			admin.PUT("/users/:id", r.adminController.UpdateUser)
			admin.GET("/quotes", r.quoteController.ListQuotes)
			admin.GET("/quotes/export", r.adminController.ExportQuotes)
			admin.GET("/quotes/:id", r.quoteController.GetQuote)
			admin.PUT("/quotes/:id", r.quoteController.UpdateQuote)
		}

		upload := v1.Group("/upload", authenticated, adminOnly)
		{
			upload.POST("/presigned-url", r.uploadController.GeneratePresignedURL)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
