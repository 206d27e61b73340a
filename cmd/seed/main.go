package main

import (
	"fmt"

	"github.com/digistock/internal/config"
	"github.com/digistock/internal/logger"
	"github.com/digistock/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加平台账户
	platforms := []models.Platform{
		{
			Name:                "GamePort",
			CreditBalance:       models.NewMoneyFromDecimal(decimal.NewFromInt(500)),
			LowBalanceThreshold: models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
			Note:                "游戏点卡供货平台",
			IsActive:            true,
		},
		{
			Name:                "StreamHub",
			CreditBalance:       models.NewMoneyFromDecimal(decimal.NewFromInt(300)),
			LowBalanceThreshold: models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
			Note:                "流媒体会员供货平台",
			IsActive:            true,
		},
	}

	platformIDs := map[string]uint{}
	for _, platform := range platforms {
		var existing models.Platform
		if err := models.DB.Where("name = ?", platform.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&platform).Error; err != nil {
				stdLog.Printf("Failed to create platform %s: %v", platform.Name, err)
				continue
			}
			stdLog.Printf("Created platform: %s", platform.Name)
			platformIDs[platform.Name] = platform.ID
		} else {
			stdLog.Printf("Platform already exists: %s", existing.Name)
			platformIDs[existing.Name] = existing.ID
		}
	}

	// 添加商品
	gamePortID := platformIDs["GamePort"]
	streamHubID := platformIDs["StreamHub"]
	products := []models.Product{
		{
			Name:                "Steam 充值卡 50",
			Category:            "game-card",
			MinStockAlert:       5,
			SuggestedSellPrice:  models.NewMoneyFromDecimal(decimal.NewFromFloat(52.00)),
			PlatformBuyingPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(46.50)),
			IsActive:            true,
		},
		{
			Name:                "流媒体会员月卡",
			Category:            "subscription",
			MinStockAlert:       10,
			SuggestedSellPrice:  models.NewMoneyFromDecimal(decimal.NewFromFloat(25.00)),
			PlatformBuyingPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(18.00)),
			IsActive:            true,
		},
		{
			Name:               "独立供货激活码",
			Category:           "license",
			MinStockAlert:      3,
			SuggestedSellPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(99.00)),
			IsActive:           true,
		},
	}
	if gamePortID != 0 {
		products[0].PlatformID = &gamePortID
	}
	if streamHubID != 0 {
		products[1].PlatformID = &streamHubID
	}

	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("name = ?", product.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Name, err)
			} else {
				stdLog.Printf("Created product: %s", product.Name)
			}
		} else {
			stdLog.Printf("Product already exists: %s", existing.Name)
		}
	}

	// 添加订阅客户
	subscribers := []models.Subscriber{
		{Name: "张明", Email: "zhangming@example.com", Phone: "13800000001", IsActive: true},
		{Name: "李华", Email: "lihua@example.com", Phone: "13800000002", IsActive: true},
	}
	for _, subscriber := range subscribers {
		var existing models.Subscriber
		if err := models.DB.Where("email = ?", subscriber.Email).First(&existing).Error; err != nil {
			if err := models.DB.Create(&subscriber).Error; err != nil {
				stdLog.Printf("Failed to create subscriber %s: %v", subscriber.Name, err)
			} else {
				stdLog.Printf("Created subscriber: %s", subscriber.Name)
			}
		} else {
			stdLog.Printf("Subscriber already exists: %s", existing.Name)
		}
	}

	fmt.Println("\n✅ Seed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 2 Platforms")
	fmt.Println("- 3 Products")
	fmt.Println("- 2 Subscribers")
}
