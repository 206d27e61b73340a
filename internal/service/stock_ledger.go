package service

import (
	"time"

	"github.com/digistock/internal/models"
	"github.com/digistock/internal/repository"

	"gorm.io/gorm"
)

// applyStockMovement 库存流水引擎：在同一事务内更新商品库存并追加流水。
// 调用方必须已对商品行加锁（GetByIDForUpdate），商品更新与流水写入要么同时生效要么都不生效。
func applyStockMovement(
	tx *gorm.DB,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	product *models.Product,
	movementType string,
	quantityDelta int,
	reference string,
	now time.Time,
) (*models.StockMovement, error) {
	previous := product.CurrentStock
	next := previous + quantityDelta
	if next < 0 {
		return nil, &InsufficientStockError{
			ProductID: product.ID,
			Product:   product.Name,
			Available: previous,
			Requested: -quantityDelta,
		}
	}

	product.CurrentStock = next
	product.UpdatedAt = now
	if err := productRepo.WithTx(tx).Update(product); err != nil {
		return nil, ErrProductUpdateFailed
	}

	movement := &models.StockMovement{
		ProductID:     product.ID,
		Type:          movementType,
		Quantity:      quantityDelta,
		PreviousStock: previous,
		NewStock:      next,
		Reference:     reference,
		CreatedAt:     now,
	}
	if err := movementRepo.WithTx(tx).Create(movement); err != nil {
		return nil, ErrMovementCreateFailed
	}
	return movement, nil
}
