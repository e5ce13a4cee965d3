// Package catalog はサービス・プロジェクトのカタログ管理ロジックを提供する。
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/hitoshi/sitedesk/internal/model"
	"github.com/hitoshi/sitedesk/internal/repository"
)

// ServiceInput はサービスの作成・更新入力。
type ServiceInput struct {
	Title       string
	Description string
	Items       []string
}

// ProjectInput はプロジェクトの作成・更新入力。
type ProjectInput struct {
	Title    string
	Category string
}

// Service はカタログ管理のサービス層。
// アイコン・画像はハンドラー側でアップロード検証を通過したアセットとして渡される。
type Service struct {
	serviceRepo repository.ServiceRepository
	projectRepo repository.ProjectRepository
}

// NewService はServiceを生成する。
func NewService(serviceRepo repository.ServiceRepository, projectRepo repository.ProjectRepository) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		projectRepo: projectRepo,
	}
}

// ListServices は全サービスを返す。公開エンドポイント用。
func (s *Service) ListServices(ctx context.Context) ([]*model.Service, error) {
	services, err := s.serviceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

// CreateService はサービスを作成する。iconはnil可（アイコンなしで作成）。
func (s *Service) CreateService(ctx context.Context, input ServiceInput, icon *model.UploadedAsset) (int64, error) {
	if input.Title == "" || input.Description == "" || len(input.Items) == 0 {
		return 0, model.NewMissingFieldsError("title", "description", "items")
	}

	svc := &model.Service{
		Title:       input.Title,
		Description: input.Description,
		Items:       input.Items,
	}
	if icon != nil {
		svc.Icon = icon.PublicPath
	}

	id, err := s.serviceRepo.Create(ctx, svc)
	if err != nil {
		return 0, fmt.Errorf("failed to create service: %w", err)
	}

	return id, nil
}

// UpdateService はサービスを更新する。
// iconがnilの場合は既存のアイコンパスをそのまま維持する（部分更新セマンティクス）。
func (s *Service) UpdateService(ctx context.Context, id int64, input ServiceInput, icon *model.UploadedAsset) error {
	if input.Title == "" || input.Description == "" || len(input.Items) == 0 {
		return model.NewMissingFieldsError("title", "description", "items")
	}

	existing, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find service: %w", err)
	}
	if existing == nil {
		return model.NewServiceNotFoundError(id)
	}

	iconPath := existing.Icon
	if icon != nil {
		iconPath = icon.PublicPath
	}

	svc := &model.Service{
		ID:          id,
		Title:       input.Title,
		Icon:        iconPath,
		Description: input.Description,
		Items:       input.Items,
	}

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.NewServiceNotFoundError(id)
		}
		return fmt.Errorf("failed to update service: %w", err)
	}

	return nil
}

// DeleteService は指定IDのサービスを削除する。
// 参照されていたアップロード済みアセットは回収しない（既知のギャップ）。
func (s *Service) DeleteService(ctx context.Context, id int64) error {
	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.NewServiceNotFoundError(id)
		}
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return nil
}

// ListProjects は全プロジェクトを返す。公開エンドポイント用。
func (s *Service) ListProjects(ctx context.Context) ([]*model.Project, error) {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// CreateProject はプロジェクトを作成する。新規作成時は画像が必須。
func (s *Service) CreateProject(ctx context.Context, input ProjectInput, image *model.UploadedAsset) (int64, error) {
	if input.Title == "" || input.Category == "" || image == nil {
		return 0, model.NewMissingFieldsError("title", "category", "image")
	}

	p := &model.Project{
		Title:    input.Title,
		Category: input.Category,
		Image:    image.PublicPath,
	}

	id, err := s.projectRepo.Create(ctx, p)
	if err != nil {
		return 0, fmt.Errorf("failed to create project: %w", err)
	}

	return id, nil
}

// UpdateProject はプロジェクトを更新する。
// imageがnilの場合は既存の画像パスをそのまま維持する（部分更新セマンティクス）。
func (s *Service) UpdateProject(ctx context.Context, id int64, input ProjectInput, image *model.UploadedAsset) error {
	if input.Title == "" || input.Category == "" {
		return model.NewMissingFieldsError("title", "category")
	}

	existing, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find project: %w", err)
	}
	if existing == nil {
		return model.NewProjectNotFoundError(id)
	}

	imagePath := existing.Image
	if image != nil {
		imagePath = image.PublicPath
	}

	p := &model.Project{
		ID:       id,
		Title:    input.Title,
		Category: input.Category,
		Image:    imagePath,
	}

	if err := s.projectRepo.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.NewProjectNotFoundError(id)
		}
		return fmt.Errorf("failed to update project: %w", err)
	}

	return nil
}

// DeleteProject は指定IDのプロジェクトを削除する。
func (s *Service) DeleteProject(ctx context.Context, id int64) error {
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.NewProjectNotFoundError(id)
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}
