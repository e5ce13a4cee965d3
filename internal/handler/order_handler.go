package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hitoshi/sitedesk/internal/model"
	"github.com/hitoshi/sitedesk/internal/order"
)

// OrderServiceInterface は注文ハンドラーが必要とするサービスインターフェース。
type OrderServiceInterface interface {
	// List は全注文をサービスタイトル付きで返す。
	List(ctx context.Context) ([]*model.OrderWithService, error)
	// Create は注文を作成し、採番されたIDを返す。
	Create(ctx context.Context, input order.CreateInput) (int64, error)
	// UpdateStatus は注文のステータスを更新する。
	UpdateStatus(ctx context.Context, id int64, status string) error
	// Delete は指定IDの注文を削除する。
	Delete(ctx context.Context, id int64) error
}

// OrderHandler は注文管理のHTTPハンドラー。
type OrderHandler struct {
	service OrderServiceInterface
}

// NewOrderHandler はOrderHandlerを生成する。
func NewOrderHandler(service OrderServiceInterface) *OrderHandler {
	return &OrderHandler{service: service}
}

// createOrderRequest は注文作成リクエストのボディ。
type createOrderRequest struct {
	Email     string `json:"email"`
	ServiceID int64  `json:"service_id"`
	Total     string `json:"total"`
}

// updateOrderStatusRequest はステータス更新リクエストのボディ。
type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// orderResponse は注文情報のAPIレスポンス。
type orderResponse struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	ServiceID    int64  `json:"service_id"`
	ServiceTitle string `json:"service_title"`
	Status       string `json:"status"`
	Total        string `json:"total"`
	CreatedAt    string `json:"created_at"`
}

// ListOrders は全注文をサービスタイトル付きで返す。
// GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, orderResponse{
			ID:           o.ID,
			Email:        o.Email,
			ServiceID:    o.ServiceID,
			ServiceTitle: o.ServiceTitle,
			Status:       o.Status,
			Total:        o.Total,
			CreatedAt:    o.CreatedAt.Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreateOrder は注文を作成する。
// POST /api/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	id, err := h.service.Create(r.Context(), order.CreateInput{
		Email:     req.Email,
		ServiceID: req.ServiceID,
		Total:     req.Total,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

// UpdateOrderStatus は注文のステータスを更新する。
// PUT /api/orders/{id}
func (h *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	var req updateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	if err := h.service.UpdateStatus(r.Context(), id, req.Status); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteOrder は注文を削除する。
// DELETE /api/orders/{id}
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
