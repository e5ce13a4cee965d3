package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/hitoshi/sitedesk/internal/catalog"
	"github.com/hitoshi/sitedesk/internal/model"
)

// ProjectCatalogInterface はプロジェクトハンドラーが必要とするサービスインターフェース。
type ProjectCatalogInterface interface {
	// ListProjects は全プロジェクトを返す。
	ListProjects(ctx context.Context) ([]*model.Project, error)
	// CreateProject はプロジェクトを作成し、採番されたIDを返す。新規作成時は画像が必須。
	CreateProject(ctx context.Context, input catalog.ProjectInput, image *model.UploadedAsset) (int64, error)
	// UpdateProject はプロジェクトを更新する。imageがnilの場合は既存の画像を維持する。
	UpdateProject(ctx context.Context, id int64, input catalog.ProjectInput, image *model.UploadedAsset) error
	// DeleteProject は指定IDのプロジェクトを削除する。
	DeleteProject(ctx context.Context, id int64) error
}

// ProjectHandler はプロジェクト管理のHTTPハンドラー。
type ProjectHandler struct {
	service  ProjectCatalogInterface
	acceptor UploadAcceptor
}

// NewProjectHandler はProjectHandlerを生成する。
func NewProjectHandler(service ProjectCatalogInterface, acceptor UploadAcceptor) *ProjectHandler {
	return &ProjectHandler{
		service:  service,
		acceptor: acceptor,
	}
}

// projectResponse はプロジェクト情報のAPIレスポンス。
type projectResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Image     string `json:"image"`
	CreatedAt string `json:"created_at"`
}

// ListProjects は全プロジェクトを返す。
// GET /api/projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.ListProjects(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, toProjectResponse(p))
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreateProject はプロジェクトを作成する。
// POST /api/projects （multipart/form-data、imageフィールドは必須）
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	input, image, err := h.parseProjectForm(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	id, err := h.service.CreateProject(r.Context(), input, image)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

// UpdateProject はプロジェクトを更新する。
// PUT /api/projects/{id} （imageフィールドがない場合は既存画像を維持）
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	input, image, err := h.parseProjectForm(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if err := h.service.UpdateProject(r.Context(), id, input, image); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteProject はプロジェクトを削除する。
// DELETE /api/projects/{id}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if err := h.service.DeleteProject(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseProjectForm はマルチパートフォームからプロジェクト入力と画像を取り出す。
func (h *ProjectHandler) parseProjectForm(r *http.Request) (catalog.ProjectInput, *model.UploadedAsset, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return catalog.ProjectInput{}, nil, model.NewInvalidRequestError()
	}

	input := catalog.ProjectInput{
		Title:    r.FormValue("title"),
		Category: r.FormValue("category"),
	}

	image, err := acceptOptionalFile(r, "image", h.acceptor)
	if err != nil {
		return catalog.ProjectInput{}, nil, err
	}

	return input, image, nil
}

// toProjectResponse はmodel.ProjectからAPIレスポンスに変換する。
func toProjectResponse(p *model.Project) projectResponse {
	return projectResponse{
		ID:        p.ID,
		Title:     p.Title,
		Category:  p.Category,
		Image:     p.Image,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}
