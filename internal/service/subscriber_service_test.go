package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/digistock/internal/models"
	"github.com/digistock/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupSubscriberServiceTest(t *testing.T) (*SubscriberService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:subscriber_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Subscriber{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	svc := NewSubscriberService(repository.NewSubscriberRepository(db))
	svc.now = func() time.Time {
		return time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc, db
}

func TestSubscriberLifecycle(t *testing.T) {
	svc, _ := setupSubscriberServiceTest(t)

	subscriber, err := svc.CreateSubscriber(SubscriberInput{
		Name:  "张明",
		Email: "zhangming@example.com",
		Phone: "13800000001",
	})
	if err != nil {
		t.Fatalf("create subscriber failed: %v", err)
	}
	if !subscriber.IsActive {
		t.Fatal("new subscriber should default to active")
	}

	inactive := false
	updated, err := svc.UpdateSubscriber(subscriber.ID, SubscriberInput{
		Name:     "张明",
		Email:    "mzhang@example.com",
		IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("update subscriber failed: %v", err)
	}
	if updated.Email != "mzhang@example.com" || updated.IsActive {
		t.Fatalf("subscriber not updated: %+v", updated)
	}

	if err := svc.DeleteSubscriber(subscriber.ID); err != nil {
		t.Fatalf("delete subscriber failed: %v", err)
	}
	if _, err := svc.GetSubscriber(subscriber.ID); !errors.Is(err, ErrSubscriberNotFound) {
		t.Fatalf("expected ErrSubscriberNotFound after delete, got %v", err)
	}
}

func TestSubscriberValidation(t *testing.T) {
	svc, _ := setupSubscriberServiceTest(t)

	t.Run("名称必填", func(t *testing.T) {
		_, err := svc.CreateSubscriber(SubscriberInput{Name: "  "})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("客户不存在", func(t *testing.T) {
		_, err := svc.UpdateSubscriber(9999, SubscriberInput{Name: "x"})
		if !errors.Is(err, ErrSubscriberNotFound) {
			t.Fatalf("expected ErrSubscriberNotFound, got %v", err)
		}
	})
}
