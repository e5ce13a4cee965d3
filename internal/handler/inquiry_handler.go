package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hitoshi/sitedesk/internal/inquiry"
	"github.com/hitoshi/sitedesk/internal/model"
)

// InquiryServiceInterface は問い合わせハンドラーが必要とするサービスインターフェース。
type InquiryServiceInterface interface {
	// SubmitQuote は見積もり依頼を受け付け、採番されたIDを返す。
	SubmitQuote(ctx context.Context, input inquiry.QuoteInput) (int64, error)
	// ListQuotes は全見積もり依頼を送信日時の降順で返す。
	ListQuotes(ctx context.Context) ([]*model.QuoteRequest, error)
	// SubmitContact は問い合わせを受け付け、採番されたIDを返す。
	SubmitContact(ctx context.Context, input inquiry.ContactInput) (int64, error)
	// ListContacts は全問い合わせを送信日時の降順で返す。
	ListContacts(ctx context.Context) ([]*model.ContactSubmission, error)
}

// IntakeMetrics は公開フォーム受付数の記録インターフェース。
type IntakeMetrics interface {
	RecordIntakeSubmission(kind string)
}

// InquiryHandler は見積もり依頼・問い合わせのHTTPハンドラー。
// 受付（POST）は公開、一覧（GET）は管理者専用ルートに配置される。
type InquiryHandler struct {
	service InquiryServiceInterface
	metrics IntakeMetrics
}

// NewInquiryHandler はInquiryHandlerを生成する。metricsはnil可。
func NewInquiryHandler(service InquiryServiceInterface, metrics IntakeMetrics) *InquiryHandler {
	return &InquiryHandler{
		service: service,
		metrics: metrics,
	}
}

// quoteRequestBody は見積もり依頼のリクエストボディ。
type quoteRequestBody struct {
	Budget          string `json:"budget"`
	Timeline        string `json:"timeline"`
	ApplicationType string `json:"application_type"`
	Description     string `json:"description"`
}

// quoteResponse は見積もり依頼のAPIレスポンス。
type quoteResponse struct {
	ID              int64  `json:"id"`
	Budget          string `json:"budget"`
	Timeline        string `json:"timeline"`
	ApplicationType string `json:"application_type"`
	Description     string `json:"description"`
	SubmittedAt     string `json:"submitted_at"`
}

// contactRequestBody は問い合わせのリクエストボディ。
type contactRequestBody struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// contactResponse は問い合わせのAPIレスポンス。
type contactResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Message     string `json:"message"`
	SubmittedAt string `json:"submitted_at"`
}

// SubmitQuote は見積もり依頼を受け付ける。
// POST /api/quote-requests
func (h *InquiryHandler) SubmitQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	id, err := h.service.SubmitQuote(r.Context(), inquiry.QuoteInput{
		Budget:          req.Budget,
		Timeline:        req.Timeline,
		ApplicationType: req.ApplicationType,
		Description:     req.Description,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.recordIntake("quote")
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

// ListQuotes は全見積もり依頼を返す。
// GET /api/quote-requests
func (h *InquiryHandler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.service.ListQuotes(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]quoteResponse, 0, len(quotes))
	for _, q := range quotes {
		resp = append(resp, quoteResponse{
			ID:              q.ID,
			Budget:          q.Budget,
			Timeline:        q.Timeline,
			ApplicationType: q.ApplicationType,
			Description:     q.Description,
			SubmittedAt:     q.SubmittedAt.Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// SubmitContact は問い合わせを受け付ける。
// POST /api/contact-submissions
func (h *InquiryHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	id, err := h.service.SubmitContact(r.Context(), inquiry.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.recordIntake("contact")
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

// ListContacts は全問い合わせを返す。
// GET /api/contact-submissions
func (h *InquiryHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.service.ListContacts(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]contactResponse, 0, len(contacts))
	for _, c := range contacts {
		resp = append(resp, contactResponse{
			ID:          c.ID,
			Name:        c.Name,
			Email:       c.Email,
			Phone:       c.Phone,
			Message:     c.Message,
			SubmittedAt: c.SubmittedAt.Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *InquiryHandler) recordIntake(kind string) {
	if h.metrics != nil {
		h.metrics.RecordIntakeSubmission(kind)
	}
}
