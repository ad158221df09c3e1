package router

import (
	"github.com/zemenu6/dbrand-backend/internal/handlers"
	"github.com/zemenu6/dbrand-backend/internal/middleware"
	"github.com/zemenu6/dbrand-backend/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Deps struct {
	Auth     *service.AuthService
	Shoes    service.ShoeService
	Orders   service.OrderService
	Users    *service.UserService
	Payments *service.PaymentService
	Tokens   service.TokenProvider
	Log      *zap.Logger
}

func Router(d Deps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	authHandler := handlers.NewAuthHandler(d.Auth, d.Log)
	shoeHandler := handlers.NewShoeHandler(d.Shoes, d.Log)
	orderHandler := handlers.NewOrderHandler(d.Orders, d.Log)
	adminHandler := handlers.NewAdminHandler(d.Users, d.Payments, d.Shoes, d.Orders, d.Log)

	api := r.Group("/api")

	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)

	api.GET("/shoes", shoeHandler.List)
	api.GET("/shoes/:id", shoeHandler.Get)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(d.Tokens, d.Log))
	{
		authed.POST("/orders", orderHandler.Create)
		authed.GET("/orders/my", orderHandler.My)
		authed.GET("/orders/:id", orderHandler.Get)
	}

	// Админские операции каталога и заказов живут на общих путях,
	// роль проверяется middleware.
	adminOps := authed.Group("", middleware.RequireAdmin())
	{
		adminOps.GET("/orders", orderHandler.ListAll)
		adminOps.PUT("/orders/:id/status", orderHandler.UpdateStatus)

		adminOps.POST("/shoes", shoeHandler.Create)
		adminOps.PUT("/shoes/:id", shoeHandler.Update)
		adminOps.DELETE("/shoes/:id", shoeHandler.Delete)
		adminOps.PUT("/shoes/:id/sizes", shoeHandler.UpsertSize)
		adminOps.DELETE("/shoes/:id/sizes/:size", shoeHandler.DeleteSize)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(d.Tokens, d.Log), middleware.RequireAdmin())
	{
		admin.GET("/shoes", shoeHandler.ListAdmin)
		admin.GET("/shoes/count", adminHandler.ShoeCount)
		admin.GET("/shoes/:id", shoeHandler.GetAdmin)

		admin.GET("/orders/count", adminHandler.OrderCount)

		admin.GET("/users", adminHandler.ListUsers)
		admin.GET("/users/count", adminHandler.UserCount)
		admin.GET("/users/:id", adminHandler.GetUser)
		admin.PUT("/users/:id", adminHandler.UpdateUser)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)

		admin.GET("/payments", adminHandler.ListPayments)
		admin.GET("/payments/total", adminHandler.TotalRevenue)
		admin.GET("/payments/:id", adminHandler.GetPayment)
	}

	return r
}
