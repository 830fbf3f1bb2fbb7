package routes

import (
	"customer-purchases/docs"
	"customer-purchases/internal/handlers"
	"customer-purchases/internal/middlewares"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-openapi/runtime/middleware"
	"net/http"
	"time"
)

type Handlers struct {
	Purchase *handlers.PurchaseHandler
	Customer *handlers.CustomerHandler
	Health   *handlers.HealthHandler
}

type Middlewares struct {
	Auth        *middlewares.AuthMiddleware
	Idempotency *middlewares.IdempotencyMiddleware
}

func InitRoutes(h Handlers, m Middlewares, allowOrigins []string) *gin.Engine {
	router := gin.Default()

	_ = router.SetTrustedProxies(nil)

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middlewares.IdempotencyKeyHeader},
		ExposeHeaders:    []string{"Content-Length", middlewares.IdempotentReplayHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	opts := middleware.SwaggerUIOpts{SpecURL: "/swagger/doc.json", Path: "swagger/index.html"}
	sh := middleware.SwaggerUI(opts, nil)

	router.GET("/swagger/*any", func(c *gin.Context) {
		switch c.Param("any") {
		case "/doc.json":
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(docs.SwaggerInfo.ReadDoc()))
		case "/", "":
			c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
		default:
			sh.ServeHTTP(c.Writer, c.Request)
		}
	})

	api := router.Group("/api")

	// public
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	api.GET("/health", h.Health.Health)

	// protected
	api.Use(m.Auth.Handle())
	{
		api.POST("/purchases", m.Idempotency.Handle(), h.Purchase.SubmitPurchase)
		api.GET("/customers/:id", h.Customer.GetCustomer)
		api.GET("/customers/:id/purchases", h.Customer.GetCustomerPurchases)
	}

	return router
}
