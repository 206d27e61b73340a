package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/digistock/internal/constants"
	"github.com/digistock/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupSaleRepositoryTest(t *testing.T) (*GormSaleRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:sale_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Platform{},
		&models.Product{},
		&models.StockSale{},
		&models.PaymentRecord{},
	); err != nil {
		t.Fatalf("migrate sale tables failed: %v", err)
	}
	return NewSaleRepository(db), db
}

func createRepoSale(t *testing.T, repo *GormSaleRepository, saleNo string, paymentStatus string, soldAt time.Time) *models.StockSale {
	t.Helper()
	sale := &models.StockSale{
		SaleNo:             saleNo,
		ProductID:          1,
		Quantity:           1,
		UnitPrice:          models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		TotalPrice:         models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		PaymentStatus:      paymentStatus,
		PaymentType:        constants.PaymentTypeOneTime,
		SubscriptionStatus: constants.SubscriptionStatusNone,
		SoldAt:             soldAt,
	}
	if err := repo.Create(sale); err != nil {
		t.Fatalf("create sale failed: %v", err)
	}
	return sale
}

func TestSaleListFilters(t *testing.T) {
	repo, _ := setupSaleRepositoryTest(t)

	day1 := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)
	day3 := time.Date(2025, time.May, 20, 0, 0, 0, 0, time.UTC)

	createRepoSale(t, repo, "DS-A", constants.PaymentStatusPending, day1)
	createRepoSale(t, repo, "DS-B", constants.PaymentStatusPaid, day2)
	createRepoSale(t, repo, "DS-C", constants.PaymentStatusPaid, day3)

	t.Run("按付款状态过滤", func(t *testing.T) {
		sales, total, err := repo.List(SaleListFilter{PaymentStatus: constants.PaymentStatusPaid})
		if err != nil {
			t.Fatalf("list sales failed: %v", err)
		}
		if total != 2 || len(sales) != 2 {
			t.Fatalf("total = %d, len = %d, want 2", total, len(sales))
		}
	})

	t.Run("按单号过滤", func(t *testing.T) {
		sales, total, err := repo.List(SaleListFilter{SaleNo: "DS-B"})
		if err != nil {
			t.Fatalf("list sales failed: %v", err)
		}
		if total != 1 || sales[0].SaleNo != "DS-B" {
			t.Fatalf("want only DS-B, got total %d", total)
		}
	})

	t.Run("按时间区间过滤", func(t *testing.T) {
		from := time.Date(2025, time.May, 5, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC)
		sales, total, err := repo.List(SaleListFilter{SoldFrom: &from, SoldTo: &to})
		if err != nil {
			t.Fatalf("list sales failed: %v", err)
		}
		if total != 1 || sales[0].SaleNo != "DS-B" {
			t.Fatalf("range filter want only DS-B, got total %d", total)
		}
	})

	t.Run("分页", func(t *testing.T) {
		sales, total, err := repo.List(SaleListFilter{Page: 1, PageSize: 2})
		if err != nil {
			t.Fatalf("list sales failed: %v", err)
		}
		if total != 3 || len(sales) != 2 {
			t.Fatalf("total = %d, len = %d, want 3 / 2", total, len(sales))
		}
		// 倒序返回，第一页应为最新两单
		if sales[0].SaleNo != "DS-C" || sales[1].SaleNo != "DS-B" {
			t.Fatalf("page order = %s, %s, want DS-C, DS-B", sales[0].SaleNo, sales[1].SaleNo)
		}
	})
}

func TestListExpiredSubscriptions(t *testing.T) {
	repo, db := setupSaleRepositoryTest(t)
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, -1, 0)
	future := now.AddDate(0, 1, 0)

	mkSub := func(saleNo string, status string, endsAt time.Time) {
		sale := &models.StockSale{
			SaleNo:             saleNo,
			ProductID:          1,
			Quantity:           1,
			PaymentStatus:      constants.PaymentStatusPaid,
			PaymentType:        constants.PaymentTypeRecurring,
			SubscriptionStatus: status,
			SubscriptionEndsAt: &endsAt,
			SoldAt:             past,
		}
		if err := db.Create(sale).Error; err != nil {
			t.Fatalf("create sale failed: %v", err)
		}
	}
	mkSub("DS-DUE", constants.SubscriptionStatusActive, past)
	mkSub("DS-FUTURE", constants.SubscriptionStatusActive, future)
	mkSub("DS-DONE", constants.SubscriptionStatusExpired, past)

	sales, err := repo.ListExpiredSubscriptions(now)
	if err != nil {
		t.Fatalf("list expired subscriptions failed: %v", err)
	}
	if len(sales) != 1 || sales[0].SaleNo != "DS-DUE" {
		t.Fatalf("expired = %+v, want only DS-DUE", sales)
	}
}

func TestPaymentRecordLifecycle(t *testing.T) {
	repo, db := setupSaleRepositoryTest(t)
	sale := createRepoSale(t, repo, "DS-PAY", constants.PaymentStatusPending, time.Now())

	for _, amount := range []int64{30, 70} {
		record := &models.PaymentRecord{
			SaleID: sale.ID,
			Amount: models.NewMoneyFromDecimal(decimal.NewFromInt(amount)),
			PaidAt: time.Now(),
		}
		if err := repo.CreatePaymentRecord(record); err != nil {
			t.Fatalf("create payment record failed: %v", err)
		}
	}

	got, err := repo.GetByID(sale.ID)
	if err != nil {
		t.Fatalf("get sale failed: %v", err)
	}
	if len(got.PaymentRecords) != 2 {
		t.Fatalf("payment records = %d, want 2", len(got.PaymentRecords))
	}

	if err := repo.DeletePaymentRecords(sale.ID); err != nil {
		t.Fatalf("delete payment records failed: %v", err)
	}
	var count int64
	db.Model(&models.PaymentRecord{}).Where("sale_id = ?", sale.ID).Count(&count)
	if count != 0 {
		t.Fatalf("payment records remain after delete: %d", count)
	}
}

func TestSaleGetByIDMissing(t *testing.T) {
	repo, _ := setupSaleRepositoryTest(t)

	sale, err := repo.GetByID(9999)
	if err != nil {
		t.Fatalf("get missing sale failed: %v", err)
	}
	if sale != nil {
		t.Fatalf("missing sale should be nil, got %+v", sale)
	}
}
