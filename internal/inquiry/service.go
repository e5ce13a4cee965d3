// Package inquiry は見積もり依頼・問い合わせの受付と管理ロジックを提供する。
package inquiry

import (
	"context"
	"fmt"

	"github.com/hitoshi/sitedesk/internal/model"
	"github.com/hitoshi/sitedesk/internal/repository"
	"github.com/hitoshi/sitedesk/internal/security"
)

// QuoteInput は見積もり依頼フォームの入力。
type QuoteInput struct {
	Budget          string
	Timeline        string
	ApplicationType string
	Description     string
}

// ContactInput は問い合わせフォームの入力。
type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// Service は公開フォーム受付と管理画面向け一覧のサービス層。
// 自由記述フィールドは保存前にサニタイズする。
type Service struct {
	quoteRepo   repository.QuoteRepository
	contactRepo repository.ContactRepository
	sanitizer   security.TextSanitizerService
}

// NewService はServiceを生成する。
func NewService(
	quoteRepo repository.QuoteRepository,
	contactRepo repository.ContactRepository,
	sanitizer security.TextSanitizerService,
) *Service {
	return &Service{
		quoteRepo:   quoteRepo,
		contactRepo: contactRepo,
		sanitizer:   sanitizer,
	}
}

// SubmitQuote は見積もり依頼を受け付ける。
func (s *Service) SubmitQuote(ctx context.Context, input QuoteInput) (int64, error) {
	if input.Budget == "" || input.Timeline == "" || input.ApplicationType == "" || input.Description == "" {
		return 0, model.NewMissingFieldsError("budget", "timeline", "application_type", "description")
	}

	q := &model.QuoteRequest{
		Budget:          s.sanitizer.Sanitize(input.Budget),
		Timeline:        s.sanitizer.Sanitize(input.Timeline),
		ApplicationType: s.sanitizer.Sanitize(input.ApplicationType),
		Description:     s.sanitizer.Sanitize(input.Description),
	}

	id, err := s.quoteRepo.Create(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("failed to create quote request: %w", err)
	}

	return id, nil
}

// ListQuotes は全見積もり依頼を送信日時の降順で返す。管理画面用。
func (s *Service) ListQuotes(ctx context.Context) ([]*model.QuoteRequest, error) {
	quotes, err := s.quoteRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quote requests: %w", err)
	}
	return quotes, nil
}

// SubmitContact は問い合わせを受け付ける。電話番号は任意。
func (s *Service) SubmitContact(ctx context.Context, input ContactInput) (int64, error) {
	if input.Name == "" || input.Email == "" || input.Message == "" {
		return 0, model.NewMissingFieldsError("name", "email", "message")
	}

	c := &model.ContactSubmission{
		Name:    s.sanitizer.Sanitize(input.Name),
		Email:   s.sanitizer.Sanitize(input.Email),
		Phone:   s.sanitizer.Sanitize(input.Phone),
		Message: s.sanitizer.Sanitize(input.Message),
	}

	id, err := s.contactRepo.Create(ctx, c)
	if err != nil {
		return 0, fmt.Errorf("failed to create contact submission: %w", err)
	}

	return id, nil
}

// ListContacts は全問い合わせを送信日時の降順で返す。管理画面用。
func (s *Service) ListContacts(ctx context.Context) ([]*model.ContactSubmission, error) {
	contacts, err := s.contactRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact submissions: %w", err)
	}
	return contacts, nil
}
