package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/sitedesk/internal/model"
	"github.com/hitoshi/sitedesk/internal/repository"
)

// --- モック定義 ---

type mockServiceRepo struct {
	listFn     func(ctx context.Context) ([]*model.Service, error)
	findByIDFn func(ctx context.Context, id int64) (*model.Service, error)
	createFn   func(ctx context.Context, svc *model.Service) (int64, error)
	updateFn   func(ctx context.Context, svc *model.Service) error
	deleteFn   func(ctx context.Context, id int64) error
}

func (m *mockServiceRepo) List(ctx context.Context) ([]*model.Service, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockServiceRepo) FindByID(ctx context.Context, id int64) (*model.Service, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockServiceRepo) Create(ctx context.Context, svc *model.Service) (int64, error) {
	if m.createFn != nil {
		return m.createFn(ctx, svc)
	}
	return 1, nil
}

func (m *mockServiceRepo) Update(ctx context.Context, svc *model.Service) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, svc)
	}
	return nil
}

func (m *mockServiceRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockProjectRepo struct {
	listFn     func(ctx context.Context) ([]*model.Project, error)
	findByIDFn func(ctx context.Context, id int64) (*model.Project, error)
	createFn   func(ctx context.Context, p *model.Project) (int64, error)
	updateFn   func(ctx context.Context, p *model.Project) error
	deleteFn   func(ctx context.Context, id int64) error
}

func (m *mockProjectRepo) List(ctx context.Context) ([]*model.Project, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockProjectRepo) FindByID(ctx context.Context, id int64) (*model.Project, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockProjectRepo) Create(ctx context.Context, p *model.Project) (int64, error) {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	return 1, nil
}

func (m *mockProjectRepo) Update(ctx context.Context, p *model.Project) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, p)
	}
	return nil
}

func (m *mockProjectRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

var _ repository.ServiceRepository = (*mockServiceRepo)(nil)
var _ repository.ProjectRepository = (*mockProjectRepo)(nil)

func validServiceInput() ServiceInput {
	return ServiceInput{
		Title:       "Webサイト制作",
		Description: "コーポレートサイトの設計・実装",
		Items:       []string{"設計", "実装"},
	}
}

// --- サービスCRUDテスト ---

func TestCreateService_WithIcon_SetsIconPath(t *testing.T) {
	var created *model.Service
	svcRepo := &mockServiceRepo{
		createFn: func(ctx context.Context, svc *model.Service) (int64, error) {
			created = svc
			return 42, nil
		},
	}
	s := NewService(svcRepo, &mockProjectRepo{})

	icon := &model.UploadedAsset{PublicPath: "/uploads/1700000000000-123.png"}
	id, err := s.CreateService(context.Background(), validServiceInput(), icon)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if id != 42 {
		t.Errorf("id = %d, want 42", id)
	}
	if created.Icon != "/uploads/1700000000000-123.png" {
		t.Errorf("Icon = %q, want icon public path", created.Icon)
	}
}

func TestCreateService_WithoutIcon_EmptyIconPath(t *testing.T) {
	var created *model.Service
	svcRepo := &mockServiceRepo{
		createFn: func(ctx context.Context, svc *model.Service) (int64, error) {
			created = svc
			return 1, nil
		},
	}
	s := NewService(svcRepo, &mockProjectRepo{})

	if _, err := s.CreateService(context.Background(), validServiceInput(), nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.Icon != "" {
		t.Errorf("Icon = %q, want empty", created.Icon)
	}
}

func TestCreateService_MissingFields_ReturnsValidationError(t *testing.T) {
	s := NewService(&mockServiceRepo{}, &mockProjectRepo{})

	_, err := s.CreateService(context.Background(), ServiceInput{Title: "only title"}, nil)
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeMissingFields {
		t.Fatalf("expected MISSING_FIELDS, got %v", err)
	}
}

// 新しいアイコンなしの更新では既存のアイコンパスが維持されること
func TestUpdateService_NoNewIcon_RetainsStoredPath(t *testing.T) {
	var updated *model.Service
	svcRepo := &mockServiceRepo{
		findByIDFn: func(ctx context.Context, id int64) (*model.Service, error) {
			return &model.Service{
				ID:   id,
				Icon: "/uploads/1690000000000-555.png",
			}, nil
		},
		updateFn: func(ctx context.Context, svc *model.Service) error {
			updated = svc
			return nil
		},
	}
	s := NewService(svcRepo, &mockProjectRepo{})

	if err := s.UpdateService(context.Background(), 7, validServiceInput(), nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Icon != "/uploads/1690000000000-555.png" {
		t.Errorf("Icon = %q, want stored path retained", updated.Icon)
	}
}

func TestUpdateService_NewIcon_ReplacesPath(t *testing.T) {
	var updated *model.Service
	svcRepo := &mockServiceRepo{
		findByIDFn: func(ctx context.Context, id int64) (*model.Service, error) {
			return &model.Service{ID: id, Icon: "/uploads/old.png"}, nil
		},
		updateFn: func(ctx context.Context, svc *model.Service) error {
			updated = svc
			return nil
		},
	}
	s := NewService(svcRepo, &mockProjectRepo{})

	icon := &model.UploadedAsset{PublicPath: "/uploads/1700000000000-999.png"}
	if err := s.UpdateService(context.Background(), 7, validServiceInput(), icon); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Icon != "/uploads/1700000000000-999.png" {
		t.Errorf("Icon = %q, want new path", updated.Icon)
	}
}

func TestUpdateService_NotFound_ReturnsNotFoundError(t *testing.T) {
	svcRepo := &mockServiceRepo{
		findByIDFn: func(ctx context.Context, id int64) (*model.Service, error) {
			return nil, nil
		},
	}
	s := NewService(svcRepo, &mockProjectRepo{})

	err := s.UpdateService(context.Background(), 404, validServiceInput(), nil)
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeServiceNotFound {
		t.Fatalf("expected SERVICE_NOT_FOUND, got %v", err)
	}
}

func TestDeleteService_NotFound_ReturnsNotFoundError(t *testing.T) {
	svcRepo := &mockServiceRepo{
		deleteFn: func(ctx context.Context, id int64) error {
			return repository.ErrNotFound
		},
	}
	s := NewService(svcRepo, &mockProjectRepo{})

	err := s.DeleteService(context.Background(), 404)
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeServiceNotFound {
		t.Fatalf("expected SERVICE_NOT_FOUND, got %v", err)
	}
}

// --- プロジェクトCRUDテスト ---

func TestCreateProject_WithoutImage_ReturnsValidationError(t *testing.T) {
	s := NewService(&mockServiceRepo{}, &mockProjectRepo{})

	_, err := s.CreateProject(context.Background(), ProjectInput{Title: "LP制作", Category: "web"}, nil)
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeMissingFields {
		t.Fatalf("expected MISSING_FIELDS, got %v", err)
	}
}

// 新しい画像なしの更新では既存の画像パスが維持されること
func TestUpdateProject_NoNewImage_RetainsStoredPath(t *testing.T) {
	var updated *model.Project
	projRepo := &mockProjectRepo{
		findByIDFn: func(ctx context.Context, id int64) (*model.Project, error) {
			return &model.Project{
				ID:    id,
				Image: "/uploads/1690000000000-777.jpg",
			}, nil
		},
		updateFn: func(ctx context.Context, p *model.Project) error {
			updated = p
			return nil
		},
	}
	s := NewService(&mockServiceRepo{}, projRepo)

	input := ProjectInput{Title: "ECサイト構築", Category: "web"}
	if err := s.UpdateProject(context.Background(), 3, input, nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Image != "/uploads/1690000000000-777.jpg" {
		t.Errorf("Image = %q, want stored path retained", updated.Image)
	}
}

func TestUpdateProject_NotFound_ReturnsNotFoundError(t *testing.T) {
	projRepo := &mockProjectRepo{
		findByIDFn: func(ctx context.Context, id int64) (*model.Project, error) {
			return nil, nil
		},
	}
	s := NewService(&mockServiceRepo{}, projRepo)

	err := s.UpdateProject(context.Background(), 404, ProjectInput{Title: "t", Category: "c"}, nil)
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeProjectNotFound {
		t.Fatalf("expected PROJECT_NOT_FOUND, got %v", err)
	}
}

func TestDeleteProject_NotFound_ReturnsNotFoundError(t *testing.T) {
	projRepo := &mockProjectRepo{
		deleteFn: func(ctx context.Context, id int64) error {
			return repository.ErrNotFound
		},
	}
	s := NewService(&mockServiceRepo{}, projRepo)

	err := s.DeleteProject(context.Background(), 404)
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeProjectNotFound {
		t.Fatalf("expected PROJECT_NOT_FOUND, got %v", err)
	}
}
