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

func setupPurchaseServiceTest(t *testing.T) (*PurchaseService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:purchase_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Platform{},
		&models.Product{},
		&models.StockPurchase{},
		&models.StockMovement{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	svc := NewPurchaseService(
		repository.NewPurchaseRepository(db),
		repository.NewProductRepository(db),
		repository.NewStockMovementRepository(db),
	)
	svc.now = func() time.Time {
		return time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc, db
}

func TestRecordPurchaseWeightedAverage(t *testing.T) {
	svc, db := setupPurchaseServiceTest(t)
	product := createTestProduct(t, db, "Steam 充值卡", 10, "8.00", "0", nil)

	purchase, err := svc.RecordPurchase(RecordPurchaseInput{
		ProductID: product.ID,
		Quantity:  5,
		UnitCost:  mustMoney("14.00"),
	})
	if err != nil {
		t.Fatalf("record purchase failed: %v", err)
	}

	if purchase.PurchaseNo == "" {
		t.Fatal("purchase no should be generated")
	}
	if !purchase.TotalCost.Decimal.Equal(decimal.RequireFromString("70.00")) {
		t.Fatalf("total cost = %s, want 70.00", purchase.TotalCost)
	}
	if purchase.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("payment status = %s, want paid (default)", purchase.PaymentStatus)
	}

	var gotProduct models.Product
	if err := db.First(&gotProduct, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if gotProduct.CurrentStock != 15 {
		t.Fatalf("current stock = %d, want 15", gotProduct.CurrentStock)
	}
	// (8.00×10 + 70.00) / 15 = 10.00
	if !gotProduct.AveragePurchasePrice.Decimal.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("average price = %s, want 10.00", gotProduct.AveragePurchasePrice)
	}

	var movement models.StockMovement
	if err := db.Where("product_id = ?", product.ID).First(&movement).Error; err != nil {
		t.Fatalf("load stock movement failed: %v", err)
	}
	if movement.Type != constants.StockMovementTypePurchase {
		t.Fatalf("movement type = %s, want purchase", movement.Type)
	}
	if movement.Quantity != 5 || movement.PreviousStock != 10 || movement.NewStock != 15 {
		t.Fatalf("movement = %+v, want quantity 5, previous 10, new 15", movement)
	}
	if movement.Reference != purchase.PurchaseNo {
		t.Fatalf("movement reference = %s, want %s", movement.Reference, purchase.PurchaseNo)
	}
}

func TestRecordPurchaseFirstStock(t *testing.T) {
	svc, db := setupPurchaseServiceTest(t)
	product := createTestProduct(t, db, "新商品", 0, "0", "0", nil)

	_, err := svc.RecordPurchase(RecordPurchaseInput{
		ProductID: product.ID,
		Quantity:  4,
		UnitCost:  mustMoney("9.50"),
	})
	if err != nil {
		t.Fatalf("record purchase failed: %v", err)
	}

	var gotProduct models.Product
	if err := db.First(&gotProduct, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if gotProduct.CurrentStock != 4 {
		t.Fatalf("current stock = %d, want 4", gotProduct.CurrentStock)
	}
	if !gotProduct.AveragePurchasePrice.Decimal.Equal(decimal.RequireFromString("9.50")) {
		t.Fatalf("average price = %s, want 9.50 (first purchase sets unit cost)", gotProduct.AveragePurchasePrice)
	}
}

func TestRecordPurchaseValidation(t *testing.T) {
	svc, db := setupPurchaseServiceTest(t)
	product := createTestProduct(t, db, "商品", 10, "5.00", "0", nil)

	t.Run("数量必须为正", func(t *testing.T) {
		_, err := svc.RecordPurchase(RecordPurchaseInput{ProductID: product.ID, Quantity: 0, UnitCost: mustMoney("5.00")})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("付款状态不合法", func(t *testing.T) {
		_, err := svc.RecordPurchase(RecordPurchaseInput{
			ProductID:     product.ID,
			Quantity:      1,
			UnitCost:      mustMoney("5.00"),
			PaymentStatus: "partial",
		})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("商品不存在", func(t *testing.T) {
		_, err := svc.RecordPurchase(RecordPurchaseInput{ProductID: 9999, Quantity: 1, UnitCost: mustMoney("5.00")})
		if !errors.Is(err, ErrProductNotFound) {
			t.Fatalf("expected ErrProductNotFound, got %v", err)
		}
	})

	t.Run("商品已下架", func(t *testing.T) {
		inactive := createTestProduct(t, db, "下架商品", 0, "0", "0", nil)
		if err := db.Model(&models.Product{}).Where("id = ?", inactive.ID).Update("is_active", false).Error; err != nil {
			t.Fatalf("deactivate product failed: %v", err)
		}
		_, err := svc.RecordPurchase(RecordPurchaseInput{ProductID: inactive.ID, Quantity: 1, UnitCost: mustMoney("5.00")})
		if !errors.Is(err, ErrProductInactive) {
			t.Fatalf("expected ErrProductInactive, got %v", err)
		}
	})
}

func TestUpdatePurchasePayment(t *testing.T) {
	svc, db := setupPurchaseServiceTest(t)
	product := createTestProduct(t, db, "商品", 10, "5.00", "0", nil)

	purchase, err := svc.RecordPurchase(RecordPurchaseInput{
		ProductID:     product.ID,
		Quantity:      2,
		UnitCost:      mustMoney("6.00"),
		PaymentStatus: constants.PaymentStatusPending,
	})
	if err != nil {
		t.Fatalf("record purchase failed: %v", err)
	}

	updated, err := svc.UpdatePurchasePayment(purchase.ID, UpdatePurchasePaymentInput{
		PaymentStatus: constants.PaymentStatusPaid,
		PaymentMethod: "bank_transfer",
		Note:          "已转账",
	})
	if err != nil {
		t.Fatalf("update purchase payment failed: %v", err)
	}
	if updated.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("payment status = %s, want paid", updated.PaymentStatus)
	}
	if updated.PaymentMethod != "bank_transfer" || updated.Note != "已转账" {
		t.Fatalf("payment fields not updated: %+v", updated)
	}

	// 数量与成本不随更新变化
	if updated.Quantity != 2 || !updated.TotalCost.Decimal.Equal(decimal.RequireFromString("12.00")) {
		t.Fatalf("quantity/cost mutated: %+v", updated)
	}

	t.Run("状态不合法", func(t *testing.T) {
		_, err := svc.UpdatePurchasePayment(purchase.ID, UpdatePurchasePaymentInput{PaymentStatus: "partial"})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})
}
