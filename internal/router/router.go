package router

import (
	"fmt"
	"strings"

	"github.com/digistock/internal/cache"
	"github.com/digistock/internal/config"
	adminhandlers "github.com/digistock/internal/http/handlers/admin"
	"github.com/digistock/internal/logger"
	"github.com/digistock/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "ds"
	}
	redisClient := cache.Client()
	writeRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:write", redisPrefix),
		WindowSeconds: cfg.Security.WriteRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.WriteRateLimit.MaxAttempts,
		Message:       "写入请求过于频繁",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 仪表盘
		apiV1.GET("/dashboard/summary", adminHandler.GetDashboardSummary)

		// 商品管理
		apiV1.GET("/products", adminHandler.GetProducts)
		apiV1.GET("/products/low-stock", adminHandler.GetLowStockProducts)
		apiV1.GET("/products/:id", adminHandler.GetProduct)
		apiV1.GET("/stock-movements", adminHandler.GetStockMovements)

		// 平台管理
		apiV1.GET("/platforms", adminHandler.GetPlatforms)
		apiV1.GET("/platforms/low-balance", adminHandler.GetLowBalancePlatforms)
		apiV1.GET("/platforms/:id", adminHandler.GetPlatform)
		apiV1.GET("/credit-movements", adminHandler.GetCreditMovements)

		// 订阅客户
		apiV1.GET("/subscribers", adminHandler.GetSubscribers)
		apiV1.GET("/subscribers/:id", adminHandler.GetSubscriber)

		// 销售与进货
		apiV1.GET("/sales", adminHandler.GetSales)
		apiV1.GET("/sales/:id", adminHandler.GetSale)
		apiV1.GET("/purchases", adminHandler.GetPurchases)
		apiV1.GET("/purchases/:id", adminHandler.GetPurchase)

		// 写接口（统一限流）
		writes := apiV1.Group("")
		writes.Use(RateLimitMiddleware(redisClient, writeRule, KeyByIP))
		{
			writes.POST("/products", adminHandler.CreateProduct)
			writes.PUT("/products/:id", adminHandler.UpdateProduct)
			writes.DELETE("/products/:id", adminHandler.DeleteProduct)

			writes.POST("/platforms", adminHandler.CreatePlatform)
			writes.PUT("/platforms/:id", adminHandler.UpdatePlatform)
			writes.POST("/platforms/:id/credits", adminHandler.AddPlatformCredit)

			writes.POST("/subscribers", adminHandler.CreateSubscriber)
			writes.PUT("/subscribers/:id", adminHandler.UpdateSubscriber)
			writes.DELETE("/subscribers/:id", adminHandler.DeleteSubscriber)

			writes.POST("/sales", adminHandler.RecordSale)
			writes.PUT("/sales/:id", adminHandler.UpdateSalePayment)
			writes.POST("/sales/:id/payments", adminHandler.RecordSalePayment)
			writes.POST("/sales/:id/mark-paid", adminHandler.MarkSaleFullyPaid)
			writes.POST("/sales/:id/reset-payment", adminHandler.ResetSalePayment)

			writes.POST("/purchases", adminHandler.RecordPurchase)
			writes.PUT("/purchases/:id", adminHandler.UpdatePurchasePayment)
		}
	}

	return r
}
