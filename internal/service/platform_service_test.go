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

func setupPlatformServiceTest(t *testing.T) (*PlatformService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:platform_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Platform{},
		&models.PlatformCreditMovement{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	svc := NewPlatformService(
		repository.NewPlatformRepository(db),
		repository.NewCreditMovementRepository(db),
	)
	svc.now = func() time.Time {
		return time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc, db
}

func TestCreatePlatform(t *testing.T) {
	svc, _ := setupPlatformServiceTest(t)

	platform, err := svc.CreatePlatform(PlatformInput{
		Name:                "GamePort",
		LowBalanceThreshold: mustMoney("100.00"),
		Note:                "游戏点卡供货",
	})
	if err != nil {
		t.Fatalf("create platform failed: %v", err)
	}
	if !platform.CreditBalance.Decimal.Equal(decimal.Zero) {
		t.Fatalf("new platform balance = %s, want 0 (余额只能通过充值进入)", platform.CreditBalance)
	}
	if !platform.IsActive {
		t.Fatal("new platform should default to active")
	}

	t.Run("名称必填", func(t *testing.T) {
		_, err := svc.CreatePlatform(PlatformInput{Name: "  "})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})
}

func TestAddCredit(t *testing.T) {
	svc, db := setupPlatformServiceTest(t)
	seed := createTestPlatform(t, db, "StreamHub", "50.00")

	platform, movement, err := svc.AddCredit(AddCreditInput{
		PlatformID: seed.ID,
		Amount:     mustMoney("200.00"),
		Reference:  "invoice-2025-001",
	})
	if err != nil {
		t.Fatalf("add credit failed: %v", err)
	}

	if !platform.CreditBalance.Decimal.Equal(decimal.RequireFromString("250.00")) {
		t.Fatalf("balance = %s, want 250.00", platform.CreditBalance)
	}
	if movement.Type != constants.CreditMovementTypeAdded {
		t.Fatalf("movement type = %s, want credit_added", movement.Type)
	}
	if !movement.Amount.Decimal.Equal(decimal.RequireFromString("200.00")) {
		t.Fatalf("movement amount = %s, want 200.00", movement.Amount)
	}
	if !movement.PreviousBalance.Decimal.Equal(decimal.RequireFromString("50.00")) ||
		!movement.NewBalance.Decimal.Equal(decimal.RequireFromString("250.00")) {
		t.Fatalf("movement balances = %s -> %s, want 50.00 -> 250.00",
			movement.PreviousBalance, movement.NewBalance)
	}
	if movement.Reference != "invoice-2025-001" {
		t.Fatalf("movement reference = %s, want invoice-2025-001", movement.Reference)
	}

	var gotPlatform models.Platform
	if err := db.First(&gotPlatform, seed.ID).Error; err != nil {
		t.Fatalf("reload platform failed: %v", err)
	}
	if !gotPlatform.CreditBalance.Decimal.Equal(decimal.RequireFromString("250.00")) {
		t.Fatalf("persisted balance = %s, want 250.00", gotPlatform.CreditBalance)
	}
}

func TestAddCreditRejectsNonPositiveAmount(t *testing.T) {
	svc, db := setupPlatformServiceTest(t)
	seed := createTestPlatform(t, db, "GamePort", "50.00")

	for _, amount := range []string{"0", "-10.00"} {
		if _, _, err := svc.AddCredit(AddCreditInput{PlatformID: seed.ID, Amount: mustMoney(amount)}); !errors.Is(err, ErrValidation) {
			t.Fatalf("amount %s: expected ErrValidation, got %v", amount, err)
		}
	}

	var count int64
	db.Model(&models.PlatformCreditMovement{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected top-ups left movements behind: %d", count)
	}
}

func TestAddCreditGeneratesReference(t *testing.T) {
	svc, db := setupPlatformServiceTest(t)
	seed := createTestPlatform(t, db, "GamePort", "0")

	_, movement, err := svc.AddCredit(AddCreditInput{PlatformID: seed.ID, Amount: mustMoney("10.00")})
	if err != nil {
		t.Fatalf("add credit failed: %v", err)
	}
	if movement.Reference == "" {
		t.Fatal("reference should be generated when omitted")
	}
}

func TestUpdatePlatformKeepsBalance(t *testing.T) {
	svc, db := setupPlatformServiceTest(t)
	seed := createTestPlatform(t, db, "GamePort", "120.00")

	inactive := false
	updated, err := svc.UpdatePlatform(seed.ID, PlatformInput{
		Name:                "GamePort Pro",
		LowBalanceThreshold: mustMoney("30.00"),
		IsActive:            &inactive,
	})
	if err != nil {
		t.Fatalf("update platform failed: %v", err)
	}
	if updated.Name != "GamePort Pro" || updated.IsActive {
		t.Fatalf("platform fields not updated: %+v", updated)
	}
	if !updated.CreditBalance.Decimal.Equal(decimal.RequireFromString("120.00")) {
		t.Fatalf("balance mutated by update: %s", updated.CreditBalance)
	}

	t.Run("平台不存在", func(t *testing.T) {
		_, err := svc.UpdatePlatform(9999, PlatformInput{Name: "x"})
		if !errors.Is(err, ErrPlatformNotFound) {
			t.Fatalf("expected ErrPlatformNotFound, got %v", err)
		}
	})
}
