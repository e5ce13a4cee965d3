// Package auth は管理者認証とアクセストークン発行を提供する。
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/sitedesk/internal/model"
	"github.com/hitoshi/sitedesk/internal/repository"
)

// BcryptCost はパスワードダイジェストの生成コスト。
const BcryptCost = 10

// dummyDigest はユーザー名が存在しない場合の比較対象となる固定のコスト10ダイジェスト。
// 存在有無で応答時間に差が出ないよう、未知ユーザーでも必ず1回bcrypt比較を行う。
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Metrics はログイン結果の記録に必要なメトリクスインターフェース。
type Metrics interface {
	RecordLoginSuccess()
	RecordLoginFailure()
}

// Service は管理者認証のビジネスロジックを提供する。
// 資格情報ストアの照合とトークン発行のみを行い、
// 監査ログ・試行回数制限は持たない（既知の強化ギャップとして文書化済み）。
type Service struct {
	adminRepo repository.AdminRepository
	issuer    *TokenIssuer
	metrics   Metrics
}

// NewService はServiceを生成する。metricsはnilでもよい。
func NewService(adminRepo repository.AdminRepository, issuer *TokenIssuer, metrics Metrics) *Service {
	return &Service{
		adminRepo: adminRepo,
		issuer:    issuer,
		metrics:   metrics,
	}
}

// Login はユーザー名とパスワードを検証し、アクセストークンを発行する。
// ユーザー名・パスワードのいずれかが空の場合はバリデーションエラー、
// ユーザー名不明とパスワード不一致はいずれも同一の認証エラーを返す。
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", model.NewMissingFieldsError("username", "password")
	}

	admin, err := s.adminRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("failed to find admin: %w", err)
	}

	digest := dummyDigest
	if admin != nil {
		digest = admin.PasswordDigest
	}

	// 未知ユーザーでもダミーダイジェストに対して比較を実行する
	compareErr := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	if admin == nil || compareErr != nil {
		s.recordFailure()
		slog.Warn("login failed", slog.String("username", username))
		return "", model.NewInvalidCredentialsError()
	}

	token, err := s.issuer.Issue(admin)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.recordSuccess()
	slog.Info("admin logged in", slog.String("username", username))
	return token, nil
}

// Verify はトークンを検証し、認証主体を返す。
// ミドルウェア層から利用する薄い委譲。
func (s *Service) Verify(tokenString string) (*model.Principal, error) {
	return s.issuer.Verify(tokenString)
}

func (s *Service) recordSuccess() {
	if s.metrics != nil {
		s.metrics.RecordLoginSuccess()
	}
}

func (s *Service) recordFailure() {
	if s.metrics != nil {
		s.metrics.RecordLoginFailure()
	}
}

// HashPassword はパスワードのbcryptダイジェストを生成する。
// hashpwサブコマンドによる管理者の事前プロビジョニングで使用する。
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}
