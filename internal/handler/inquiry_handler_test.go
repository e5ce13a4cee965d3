package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hitoshi/sitedesk/internal/inquiry"
	"github.com/hitoshi/sitedesk/internal/model"
)

type mockInquiryService struct {
	submitQuoteFn   func(ctx context.Context, input inquiry.QuoteInput) (int64, error)
	listQuotesFn    func(ctx context.Context) ([]*model.QuoteRequest, error)
	submitContactFn func(ctx context.Context, input inquiry.ContactInput) (int64, error)
	listContactsFn  func(ctx context.Context) ([]*model.ContactSubmission, error)
}

func (m *mockInquiryService) SubmitQuote(ctx context.Context, input inquiry.QuoteInput) (int64, error) {
	if m.submitQuoteFn != nil {
		return m.submitQuoteFn(ctx, input)
	}
	return 1, nil
}

func (m *mockInquiryService) ListQuotes(ctx context.Context) ([]*model.QuoteRequest, error) {
	if m.listQuotesFn != nil {
		return m.listQuotesFn(ctx)
	}
	return nil, nil
}

func (m *mockInquiryService) SubmitContact(ctx context.Context, input inquiry.ContactInput) (int64, error) {
	if m.submitContactFn != nil {
		return m.submitContactFn(ctx, input)
	}
	return 1, nil
}

func (m *mockInquiryService) ListContacts(ctx context.Context) ([]*model.ContactSubmission, error) {
	if m.listContactsFn != nil {
		return m.listContactsFn(ctx)
	}
	return nil, nil
}

var _ InquiryServiceInterface = (*mockInquiryService)(nil)

type recordingIntakeMetrics struct {
	kinds []string
}

func (m *recordingIntakeMetrics) RecordIntakeSubmission(kind string) {
	m.kinds = append(m.kinds, kind)
}

func TestSubmitQuote_Valid_Returns201AndRecordsMetric(t *testing.T) {
	var gotInput inquiry.QuoteInput
	svc := &mockInquiryService{
		submitQuoteFn: func(ctx context.Context, input inquiry.QuoteInput) (int64, error) {
			gotInput = input
			return 11, nil
		},
	}
	rec := &recordingIntakeMetrics{}
	h := NewInquiryHandler(svc, rec)

	body := `{"budget":"50万円","timeline":"3ヶ月","application_type":"EC","description":"リニューアル希望"}`
	req := httptest.NewRequest(http.MethodPost, "/api/quote-requests", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.SubmitQuote(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d\nbody: %s", w.Code, http.StatusCreated, w.Body.String())
	}
	if gotInput.ApplicationType != "EC" {
		t.Errorf("application_type = %q", gotInput.ApplicationType)
	}
	if len(rec.kinds) != 1 || rec.kinds[0] != "quote" {
		t.Errorf("recorded kinds = %v, want [quote]", rec.kinds)
	}
}

func TestSubmitQuote_MissingFields_Returns400AndNoMetric(t *testing.T) {
	svc := &mockInquiryService{
		submitQuoteFn: func(ctx context.Context, input inquiry.QuoteInput) (int64, error) {
			return 0, model.NewMissingFieldsError("budget")
		},
	}
	rec := &recordingIntakeMetrics{}
	h := NewInquiryHandler(svc, rec)

	req := httptest.NewRequest(http.MethodPost, "/api/quote-requests", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	h.SubmitQuote(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if len(rec.kinds) != 0 {
		t.Errorf("recorded kinds = %v, want none on failure", rec.kinds)
	}
}

func TestSubmitContact_Valid_Returns201(t *testing.T) {
	rec := &recordingIntakeMetrics{}
	h := NewInquiryHandler(&mockInquiryService{}, rec)

	body := `{"name":"山田太郎","email":"taro@example.com","message":"相談したい"}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact-submissions", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.SubmitContact(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	if len(rec.kinds) != 1 || rec.kinds[0] != "contact" {
		t.Errorf("recorded kinds = %v, want [contact]", rec.kinds)
	}
}

func TestSubmitContact_MalformedBody_Returns400(t *testing.T) {
	h := NewInquiryHandler(&mockInquiryService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/contact-submissions", strings.NewReader("not json"))
	w := httptest.NewRecorder()

	h.SubmitContact(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestListQuotes_ReturnsNewestFirst(t *testing.T) {
	now := time.Now()
	svc := &mockInquiryService{
		listQuotesFn: func(ctx context.Context) ([]*model.QuoteRequest, error) {
			return []*model.QuoteRequest{
				{ID: 2, Budget: "100万円", SubmittedAt: now},
				{ID: 1, Budget: "50万円", SubmittedAt: now.Add(-time.Hour)},
			}, nil
		},
	}
	h := NewInquiryHandler(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/quote-requests", nil)
	w := httptest.NewRecorder()

	h.ListQuotes(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp []quoteResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 2 || resp[0].ID != 2 {
		t.Errorf("resp = %+v, want repository order preserved", resp)
	}
}

func TestListContacts_Empty_ReturnsEmptyArrayNotNull(t *testing.T) {
	h := NewInquiryHandler(&mockInquiryService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/contact-submissions", nil)
	w := httptest.NewRecorder()

	h.ListContacts(w, req)

	body := w.Body.String()
	if strings.TrimSpace(body) == "null" {
		t.Fatalf("body = %q, want empty JSON array", body)
	}
}
