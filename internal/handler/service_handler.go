package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/hitoshi/sitedesk/internal/catalog"
	"github.com/hitoshi/sitedesk/internal/model"
)

// ServiceCatalogInterface はサービスハンドラーが必要とするサービスインターフェース。
type ServiceCatalogInterface interface {
	// ListServices は全サービスを返す。
	ListServices(ctx context.Context) ([]*model.Service, error)
	// CreateService はサービスを作成し、採番されたIDを返す。iconはnil可。
	CreateService(ctx context.Context, input catalog.ServiceInput, icon *model.UploadedAsset) (int64, error)
	// UpdateService はサービスを更新する。iconがnilの場合は既存のアイコンを維持する。
	UpdateService(ctx context.Context, id int64, input catalog.ServiceInput, icon *model.UploadedAsset) error
	// DeleteService は指定IDのサービスを削除する。
	DeleteService(ctx context.Context, id int64) error
}

// ServiceHandler はサービス管理のHTTPハンドラー。
type ServiceHandler struct {
	service  ServiceCatalogInterface
	acceptor UploadAcceptor
}

// NewServiceHandler はServiceHandlerを生成する。
func NewServiceHandler(service ServiceCatalogInterface, acceptor UploadAcceptor) *ServiceHandler {
	return &ServiceHandler{
		service:  service,
		acceptor: acceptor,
	}
}

// serviceResponse はサービス情報のAPIレスポンス。
type serviceResponse struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Icon        string   `json:"icon"`
	Description string   `json:"description"`
	Items       []string `json:"items"`
	CreatedAt   string   `json:"created_at"`
}

// createdResponse は作成成功時のレスポンス。
type createdResponse struct {
	ID int64 `json:"id"`
}

// ListServices は全サービスを返す。
// GET /api/services
func (h *ServiceHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.service.ListServices(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]serviceResponse, 0, len(services))
	for _, svc := range services {
		resp = append(resp, toServiceResponse(svc))
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreateService はサービスを作成する。
// POST /api/services （multipart/form-data、iconフィールドは任意）
func (h *ServiceHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	input, icon, err := h.parseServiceForm(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	id, err := h.service.CreateService(r.Context(), input, icon)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

// UpdateService はサービスを更新する。
// PUT /api/services/{id} （iconフィールドがない場合は既存アイコンを維持）
func (h *ServiceHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	input, icon, err := h.parseServiceForm(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if err := h.service.UpdateService(r.Context(), id, input, icon); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteService はサービスを削除する。
// DELETE /api/services/{id}
func (h *ServiceHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if err := h.service.DeleteService(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseServiceForm はマルチパートフォームからサービス入力とアイコンを取り出す。
func (h *ServiceHandler) parseServiceForm(r *http.Request) (catalog.ServiceInput, *model.UploadedAsset, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return catalog.ServiceInput{}, nil, model.NewInvalidRequestError()
	}

	items, err := parseItems(r)
	if err != nil {
		return catalog.ServiceInput{}, nil, err
	}

	input := catalog.ServiceInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Items:       items,
	}

	icon, err := acceptOptionalFile(r, "icon", h.acceptor)
	if err != nil {
		return catalog.ServiceInput{}, nil, err
	}

	return input, icon, nil
}

// toServiceResponse はmodel.ServiceからAPIレスポンスに変換する。
func toServiceResponse(svc *model.Service) serviceResponse {
	return serviceResponse{
		ID:          svc.ID,
		Title:       svc.Title,
		Icon:        svc.Icon,
		Description: svc.Description,
		Items:       svc.Items,
		CreatedAt:   svc.CreatedAt.Format(time.RFC3339),
	}
}
