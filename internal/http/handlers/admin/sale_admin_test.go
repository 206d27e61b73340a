package admin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/digistock/internal/constants"
	"github.com/digistock/internal/models"
	"github.com/digistock/internal/provider"
	"github.com/digistock/internal/repository"
	"github.com/digistock/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupSaleHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:sale_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Platform{},
		&models.Product{},
		&models.Subscriber{},
		&models.StockSale{},
		&models.PaymentRecord{},
		&models.StockMovement{},
		&models.PlatformCreditMovement{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	saleRepo := repository.NewSaleRepository(db)
	saleService := service.NewSaleService(
		saleRepo,
		repository.NewProductRepository(db),
		repository.NewPlatformRepository(db),
		repository.NewSubscriberRepository(db),
		repository.NewStockMovementRepository(db),
		repository.NewCreditMovementRepository(db),
		nil,
	)
	h := &Handler{Container: &provider.Container{
		SaleService:    saleService,
		PaymentService: service.NewPaymentService(saleRepo),
	}}
	return h, db
}

func seedSaleHandlerProduct(t *testing.T, db *gorm.DB, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:                 "Steam 充值卡",
		CurrentStock:         stock,
		AveragePurchasePrice: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		IsActive:             true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func performJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRecordSaleHandler(t *testing.T) {
	h, db := setupSaleHandlerTest(t)
	product := seedSaleHandlerProduct(t, db, 10)

	r := gin.New()
	r.POST("/sales", h.RecordSale)

	body := fmt.Sprintf(`{"product_id":%d,"quantity":3,"unit_price":"25.00"}`, product.ID)
	w := performJSON(t, r, http.MethodPost, "/sales", body)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int `json:"status_code"`
		Data       struct {
			SaleNo        string `json:"sale_no"`
			TotalPrice    string `json:"total_price"`
			PaymentStatus string `json:"payment_status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	if resp.Data.SaleNo == "" {
		t.Fatal("sale_no should be present")
	}
	if resp.Data.TotalPrice != "75.00" {
		t.Fatalf("total_price want 75.00 got %s", resp.Data.TotalPrice)
	}
	if resp.Data.PaymentStatus != constants.PaymentStatusPending {
		t.Fatalf("payment_status want pending got %s", resp.Data.PaymentStatus)
	}
}

func TestRecordSaleHandlerInsufficientStock(t *testing.T) {
	h, db := setupSaleHandlerTest(t)
	product := seedSaleHandlerProduct(t, db, 2)

	r := gin.New()
	r.POST("/sales", h.RecordSale)

	body := fmt.Sprintf(`{"product_id":%d,"quantity":5,"unit_price":"25.00"}`, product.ID)
	w := performJSON(t, r, http.MethodPost, "/sales", body)

	var resp struct {
		StatusCode int `json:"status_code"`
		Data       struct {
			Available int `json:"available"`
			Requested int `json:"requested"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 409 {
		t.Fatalf("status_code want 409 got %d", resp.StatusCode)
	}
	if resp.Data.Available != 2 || resp.Data.Requested != 5 {
		t.Fatalf("conflict data = %+v, want available 2, requested 5", resp.Data)
	}
}

func TestRecordSaleHandlerBadMoneyField(t *testing.T) {
	h, _ := setupSaleHandlerTest(t)

	r := gin.New()
	r.POST("/sales", h.RecordSale)

	w := performJSON(t, r, http.MethodPost, "/sales", `{"product_id":1,"quantity":1,"unit_price":"abc"}`)

	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("status_code want 400 got %d", resp.StatusCode)
	}
}

func TestGetSaleHandlerNotFound(t *testing.T) {
	h, _ := setupSaleHandlerTest(t)

	r := gin.New()
	r.GET("/sales/:id", h.GetSale)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sales/9999", nil)
	r.ServeHTTP(w, req)

	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("status_code want 404 got %d", resp.StatusCode)
	}
}

func TestMarkSaleFullyPaidHandler(t *testing.T) {
	h, db := setupSaleHandlerTest(t)
	product := seedSaleHandlerProduct(t, db, 10)

	r := gin.New()
	r.POST("/sales", h.RecordSale)
	r.POST("/sales/:id/mark-paid", h.MarkSaleFullyPaid)

	body := fmt.Sprintf(`{"product_id":%d,"quantity":2,"unit_price":"30.00"}`, product.ID)
	w := performJSON(t, r, http.MethodPost, "/sales", body)
	var created struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal create response failed: %v", err)
	}

	w2 := performJSON(t, r, http.MethodPost, fmt.Sprintf("/sales/%d/mark-paid", created.Data.ID), "")
	var resp struct {
		StatusCode int `json:"status_code"`
		Data       struct {
			PaymentStatus   string `json:"payment_status"`
			RemainingAmount string `json:"remaining_amount"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w2.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal mark-paid response failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	if resp.Data.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("payment_status want paid got %s", resp.Data.PaymentStatus)
	}
	if resp.Data.RemainingAmount != "0.00" {
		t.Fatalf("remaining_amount want 0.00 got %s", resp.Data.RemainingAmount)
	}
}
