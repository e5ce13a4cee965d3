// Package order は注文管理のドメインロジックを提供する。
package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/hitoshi/sitedesk/internal/model"
	"github.com/hitoshi/sitedesk/internal/repository"
)

// CreateInput は注文作成の入力。
type CreateInput struct {
	Email     string
	ServiceID int64
	Total     string
}

// Service は注文管理のサービス層。
type Service struct {
	orderRepo   repository.OrderRepository
	serviceRepo repository.ServiceRepository
}

// NewService はServiceを生成する。
func NewService(orderRepo repository.OrderRepository, serviceRepo repository.ServiceRepository) *Service {
	return &Service{
		orderRepo:   orderRepo,
		serviceRepo: serviceRepo,
	}
}

// List は全注文をサービスタイトル付きで作成日時の降順で返す。
func (s *Service) List(ctx context.Context) ([]*model.OrderWithService, error) {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// Create は注文を作成する。参照先サービスが存在しない場合はエラーを返す。
func (s *Service) Create(ctx context.Context, input CreateInput) (int64, error) {
	if input.Email == "" || input.ServiceID == 0 || input.Total == "" {
		return 0, model.NewMissingFieldsError("email", "service_id", "total")
	}

	svc, err := s.serviceRepo.FindByID(ctx, input.ServiceID)
	if err != nil {
		return 0, fmt.Errorf("failed to find service: %w", err)
	}
	if svc == nil {
		return 0, model.NewServiceNotFoundError(input.ServiceID)
	}

	id, err := s.orderRepo.Create(ctx, &model.Order{
		Email:     input.Email,
		ServiceID: input.ServiceID,
		Total:     input.Total,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create order: %w", err)
	}

	return id, nil
}

// UpdateStatus は注文のステータスを更新する。
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	if status == "" {
		return model.NewMissingFieldsError("status")
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.NewOrderNotFoundError(id)
		}
		return fmt.Errorf("failed to update order status: %w", err)
	}

	return nil
}

// Delete は指定IDの注文を削除する。
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.NewOrderNotFoundError(id)
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}
