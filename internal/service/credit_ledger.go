package service

import (
	"time"

	"github.com/digistock/internal/models"
	"github.com/digistock/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// applyCreditMovement 平台额度流水引擎：在同一事务内更新平台余额并追加流水。
// 调用方必须已对平台行加锁（GetByIDForUpdate）。余额任何时刻不允许为负：
// 扣减导致余额为负时返回 InsufficientCreditError，不产生任何写入。
func applyCreditMovement(
	tx *gorm.DB,
	platformRepo repository.PlatformRepository,
	creditMovementRepo repository.CreditMovementRepository,
	platform *models.Platform,
	delta decimal.Decimal,
	movementType string,
	reference string,
	now time.Time,
) (*models.PlatformCreditMovement, error) {
	before := platform.CreditBalance.Decimal.Round(2)
	after := before.Add(delta).Round(2)
	if after.LessThan(decimal.Zero) {
		return nil, &InsufficientCreditError{
			PlatformID: platform.ID,
			Platform:   platform.Name,
			Balance:    before,
			Required:   delta.Neg().Round(2),
		}
	}

	platform.CreditBalance = models.NewMoneyFromDecimal(after)
	platform.UpdatedAt = now
	if err := platformRepo.WithTx(tx).Update(platform); err != nil {
		return nil, ErrPlatformUpdateFailed
	}

	movement := &models.PlatformCreditMovement{
		PlatformID:      platform.ID,
		Type:            movementType,
		Amount:          models.NewMoneyFromDecimal(delta),
		PreviousBalance: models.NewMoneyFromDecimal(before),
		NewBalance:      models.NewMoneyFromDecimal(after),
		Reference:       reference,
		CreatedAt:       now,
	}
	if err := creditMovementRepo.WithTx(tx).Create(movement); err != nil {
		return nil, ErrMovementCreateFailed
	}
	return movement, nil
}
