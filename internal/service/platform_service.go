package service

import (
	"strings"
	"time"

	"github.com/digistock/internal/constants"
	"github.com/digistock/internal/models"
	"github.com/digistock/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PlatformService 平台账户服务（额度台账）
type PlatformService struct {
	platformRepo       repository.PlatformRepository
	creditMovementRepo repository.CreditMovementRepository
	now                func() time.Time
}

// NewPlatformService 创建平台服务
func NewPlatformService(
	platformRepo repository.PlatformRepository,
	creditMovementRepo repository.CreditMovementRepository,
) *PlatformService {
	return &PlatformService{
		platformRepo:       platformRepo,
		creditMovementRepo: creditMovementRepo,
		now:                time.Now,
	}
}

// PlatformInput 平台创建/更新输入
type PlatformInput struct {
	Name                string
	LowBalanceThreshold models.Money
	Note                string
	IsActive            *bool
}

// AddCreditInput 平台充值输入
type AddCreditInput struct {
	PlatformID uint
	Amount     models.Money
	Reference  string
}

// GetPlatform 按ID获取平台
func (s *PlatformService) GetPlatform(id uint) (*models.Platform, error) {
	platform, err := s.platformRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if platform == nil {
		return nil, ErrPlatformNotFound
	}
	return platform, nil
}

// ListPlatforms 分页查询平台
func (s *PlatformService) ListPlatforms(filter repository.PlatformListFilter) ([]models.Platform, int64, error) {
	return s.platformRepo.List(filter)
}

// ListLowBalance 查询低额度平台
func (s *PlatformService) ListLowBalance() ([]models.Platform, error) {
	return s.platformRepo.ListLowBalance()
}

// ListCreditMovements 分页查询平台额度流水
func (s *PlatformService) ListCreditMovements(filter repository.CreditMovementListFilter) ([]models.PlatformCreditMovement, int64, error) {
	return s.creditMovementRepo.List(filter)
}

// CreatePlatform 创建平台
func (s *PlatformService) CreatePlatform(input PlatformInput) (*models.Platform, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrValidation
	}
	now := s.now()
	platform := &models.Platform{
		Name:                name,
		CreditBalance:       models.ZeroMoney(),
		LowBalanceThreshold: input.LowBalanceThreshold,
		Note:                strings.TrimSpace(input.Note),
		IsActive:            true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if input.IsActive != nil {
		platform.IsActive = *input.IsActive
	}
	if err := s.platformRepo.Create(platform); err != nil {
		return nil, ErrPlatformCreateFailed
	}
	return platform, nil
}

// UpdatePlatform 更新平台基础信息（余额只能通过额度流水变更）
func (s *PlatformService) UpdatePlatform(id uint, input PlatformInput) (*models.Platform, error) {
	platform, err := s.GetPlatform(id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		platform.Name = name
	}
	platform.LowBalanceThreshold = input.LowBalanceThreshold
	platform.Note = strings.TrimSpace(input.Note)
	if input.IsActive != nil {
		platform.IsActive = *input.IsActive
	}
	platform.UpdatedAt = s.now()
	if err := s.platformRepo.Update(platform); err != nil {
		return nil, ErrPlatformUpdateFailed
	}
	return platform, nil
}

// AddCredit 平台充值（存入总是成功，金额必须为正）
func (s *PlatformService) AddCredit(input AddCreditInput) (*models.Platform, *models.PlatformCreditMovement, error) {
	amount := input.Amount.Decimal.Round(2)
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, ErrValidation
	}
	reference := strings.TrimSpace(input.Reference)
	if reference == "" {
		reference = generateReference("topup")
	}

	var platformResult *models.Platform
	var movementResult *models.PlatformCreditMovement
	if err := s.platformRepo.Transaction(func(tx *gorm.DB) error {
		platform, err := s.platformRepo.WithTx(tx).GetByIDForUpdate(input.PlatformID)
		if err != nil {
			return err
		}
		if platform == nil {
			return ErrPlatformNotFound
		}
		movement, err := applyCreditMovement(
			tx, s.platformRepo, s.creditMovementRepo,
			platform, amount, constants.CreditMovementTypeAdded, reference, s.now(),
		)
		if err != nil {
			return err
		}
		platformResult = platform
		movementResult = movement
		return nil
	}); err != nil {
		return nil, nil, err
	}
	return platformResult, movementResult, nil
}
