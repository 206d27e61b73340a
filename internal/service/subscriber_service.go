package service

import (
	"strings"
	"time"

	"github.com/digistock/internal/models"
	"github.com/digistock/internal/repository"
)

// SubscriberService 订阅客户服务
type SubscriberService struct {
	subscriberRepo repository.SubscriberRepository
	now            func() time.Time
}

// NewSubscriberService 创建订阅客户服务
func NewSubscriberService(subscriberRepo repository.SubscriberRepository) *SubscriberService {
	return &SubscriberService{
		subscriberRepo: subscriberRepo,
		now:            time.Now,
	}
}

// SubscriberInput 订阅客户创建/更新输入
type SubscriberInput struct {
	Name     string
	Email    string
	Phone    string
	Note     string
	IsActive *bool
}

// GetSubscriber 按ID获取订阅客户
func (s *SubscriberService) GetSubscriber(id uint) (*models.Subscriber, error) {
	subscriber, err := s.subscriberRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if subscriber == nil {
		return nil, ErrSubscriberNotFound
	}
	return subscriber, nil
}

// ListSubscribers 分页查询订阅客户
func (s *SubscriberService) ListSubscribers(filter repository.SubscriberListFilter) ([]models.Subscriber, int64, error) {
	return s.subscriberRepo.List(filter)
}

// CreateSubscriber 创建订阅客户
func (s *SubscriberService) CreateSubscriber(input SubscriberInput) (*models.Subscriber, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrValidation
	}
	now := s.now()
	subscriber := &models.Subscriber{
		Name:      name,
		Email:     strings.TrimSpace(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		Note:      strings.TrimSpace(input.Note),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.IsActive != nil {
		subscriber.IsActive = *input.IsActive
	}
	if err := s.subscriberRepo.Create(subscriber); err != nil {
		return nil, err
	}
	return subscriber, nil
}

// UpdateSubscriber 更新订阅客户
func (s *SubscriberService) UpdateSubscriber(id uint, input SubscriberInput) (*models.Subscriber, error) {
	subscriber, err := s.GetSubscriber(id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrValidation
	}
	subscriber.Name = name
	subscriber.Email = strings.TrimSpace(input.Email)
	subscriber.Phone = strings.TrimSpace(input.Phone)
	subscriber.Note = strings.TrimSpace(input.Note)
	if input.IsActive != nil {
		subscriber.IsActive = *input.IsActive
	}
	subscriber.UpdatedAt = s.now()
	if err := s.subscriberRepo.Update(subscriber); err != nil {
		return nil, err
	}
	return subscriber, nil
}

// DeleteSubscriber 软删除订阅客户（历史销售单仍保留其引用）
func (s *SubscriberService) DeleteSubscriber(id uint) error {
	if _, err := s.GetSubscriber(id); err != nil {
		return err
	}
	return s.subscriberRepo.Delete(id)
}
