package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/digistock/internal/constants"
	"github.com/digistock/internal/models"
	"github.com/digistock/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (*ProductService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:product_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Platform{},
		&models.Product{},
		&models.StockPurchase{},
		&models.StockSale{},
		&models.StockMovement{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	svc := NewProductService(
		repository.NewProductRepository(db),
		repository.NewPlatformRepository(db),
		repository.NewStockMovementRepository(db),
	)
	svc.now = func() time.Time {
		return time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc, db
}

func TestCreateProduct(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	platform := createTestPlatform(t, db, "GamePort", "100.00")

	product, err := svc.CreateProduct(ProductInput{
		Name:                "Steam 充值卡 50",
		Category:            "game-card",
		MinStockAlert:       5,
		SuggestedSellPrice:  mustMoney("52.00"),
		PlatformID:          platform.ID,
		PlatformBuyingPrice: mustMoney("46.50"),
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if product.CurrentStock != 0 {
		t.Fatalf("initial stock = %d, want 0 (库存只能通过进货进入)", product.CurrentStock)
	}
	if !product.AveragePurchasePrice.Decimal.Equal(decimal.Zero) {
		t.Fatalf("initial average price = %s, want 0", product.AveragePurchasePrice)
	}
	if product.PlatformID == nil || *product.PlatformID != platform.ID {
		t.Fatal("product should link the platform")
	}

	t.Run("名称必填", func(t *testing.T) {
		_, err := svc.CreateProduct(ProductInput{Name: " "})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("归属平台必须存在", func(t *testing.T) {
		_, err := svc.CreateProduct(ProductInput{Name: "x", PlatformID: 9999})
		if !errors.Is(err, ErrPlatformNotFound) {
			t.Fatalf("expected ErrPlatformNotFound, got %v", err)
		}
	})

	t.Run("阈值不能为负", func(t *testing.T) {
		_, err := svc.CreateProduct(ProductInput{Name: "x", MinStockAlert: -1})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})
}

func TestUpdateProductKeepsStockAndAverage(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	product := createTestProduct(t, db, "商品", 12, "8.50", "10.00", nil)

	updated, err := svc.UpdateProduct(product.ID, ProductInput{
		Name:               "改名商品",
		Category:           "license",
		MinStockAlert:      3,
		SuggestedSellPrice: mustMoney("30.00"),
	})
	if err != nil {
		t.Fatalf("update product failed: %v", err)
	}

	if updated.Name != "改名商品" || updated.Category != "license" {
		t.Fatalf("fields not updated: %+v", updated)
	}
	if updated.CurrentStock != 12 {
		t.Fatalf("stock mutated by update: %d", updated.CurrentStock)
	}
	if !updated.AveragePurchasePrice.Decimal.Equal(decimal.RequireFromString("8.50")) {
		t.Fatalf("average price mutated by update: %s", updated.AveragePurchasePrice)
	}
}

func TestUpdateProductClearsPlatform(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	platform := createTestPlatform(t, db, "GamePort", "100.00")
	product := createTestProduct(t, db, "商品", 0, "0", "5.00", &platform.ID)

	updated, err := svc.UpdateProduct(product.ID, ProductInput{Name: "商品"})
	if err != nil {
		t.Fatalf("update product failed: %v", err)
	}
	if updated.PlatformID != nil {
		t.Fatal("platform link should be cleared when omitted")
	}
}

func TestDeleteProduct(t *testing.T) {
	svc, db := setupProductServiceTest(t)

	t.Run("未被引用可删除", func(t *testing.T) {
		product := createTestProduct(t, db, "孤立商品", 0, "0", "0", nil)
		if err := svc.DeleteProduct(product.ID); err != nil {
			t.Fatalf("delete product failed: %v", err)
		}
		if _, err := svc.GetProduct(product.ID); !errors.Is(err, ErrProductNotFound) {
			t.Fatalf("expected ErrProductNotFound after delete, got %v", err)
		}
	})

	t.Run("已被销售单引用不可删除", func(t *testing.T) {
		product := createTestProduct(t, db, "在售商品", 10, "5.00", "0", nil)
		sale := &models.StockSale{
			SaleNo:             generateSaleNo(),
			ProductID:          product.ID,
			Quantity:           1,
			PaymentStatus:      constants.PaymentStatusPending,
			PaymentType:        constants.PaymentTypeOneTime,
			SubscriptionStatus: constants.SubscriptionStatusNone,
			SoldAt:             time.Now(),
		}
		if err := db.Create(sale).Error; err != nil {
			t.Fatalf("create sale failed: %v", err)
		}
		if err := svc.DeleteProduct(product.ID); !errors.Is(err, ErrProductInUse) {
			t.Fatalf("expected ErrProductInUse, got %v", err)
		}
	})

	t.Run("已被进货单引用不可删除", func(t *testing.T) {
		product := createTestProduct(t, db, "已进货商品", 5, "5.00", "0", nil)
		purchase := &models.StockPurchase{
			PurchaseNo:    generatePurchaseNo(),
			ProductID:     product.ID,
			Quantity:      5,
			PaymentStatus: constants.PaymentStatusPaid,
			PurchasedAt:   time.Now(),
		}
		if err := db.Create(purchase).Error; err != nil {
			t.Fatalf("create purchase failed: %v", err)
		}
		if err := svc.DeleteProduct(product.ID); !errors.Is(err, ErrProductInUse) {
			t.Fatalf("expected ErrProductInUse, got %v", err)
		}
	})
}

func TestListLowStock(t *testing.T) {
	svc, db := setupProductServiceTest(t)

	low := createTestProduct(t, db, "低库存", 2, "0", "0", nil)
	low.MinStockAlert = 5
	if err := db.Save(low).Error; err != nil {
		t.Fatalf("save product failed: %v", err)
	}
	ok := createTestProduct(t, db, "库存充足", 20, "0", "0", nil)
	ok.MinStockAlert = 5
	if err := db.Save(ok).Error; err != nil {
		t.Fatalf("save product failed: %v", err)
	}
	// 阈值为 0 表示不参与预警
	createTestProduct(t, db, "无阈值", 0, "0", "0", nil)

	products, err := svc.ListLowStock()
	if err != nil {
		t.Fatalf("list low stock failed: %v", err)
	}
	if len(products) != 1 || products[0].ID != low.ID {
		t.Fatalf("low stock products = %+v, want only %q", products, low.Name)
	}
}
