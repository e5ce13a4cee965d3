// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"errors"

	"github.com/hitoshi/sitedesk/internal/model"
)

// ErrNotFound は更新・削除対象のレコードが存在しない場合に返す。
// サービス層で呼び出し元リソースに応じたAPIErrorへ変換する。
var ErrNotFound = errors.New("record not found")

// AdminRepository は管理者アカウントの読み取りインターフェース。
// レコードの作成はマイグレーションとhashpwによる事前プロビジョニングのみで、
// 稼働中のシステムから書き込むメソッドは提供しない。
type AdminRepository interface {
	// FindByUsername はユーザー名の完全一致で管理者を取得する。見つからない場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.Admin, error)
}

// ServiceRepository はサービスデータの永続化インターフェース。
type ServiceRepository interface {
	// List は全サービスを返す。
	List(ctx context.Context) ([]*model.Service, error)

	// FindByID は指定IDのサービスを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.Service, error)

	// Create はサービスを作成し、採番されたIDを返す。
	Create(ctx context.Context, svc *model.Service) (int64, error)

	// Update はサービスを更新する。対象が存在しない場合はErrNotFoundを返す。
	Update(ctx context.Context, svc *model.Service) error

	// Delete は指定IDのサービスを削除する。対象が存在しない場合はErrNotFoundを返す。
	Delete(ctx context.Context, id int64) error
}

// ProjectRepository はプロジェクトデータの永続化インターフェース。
type ProjectRepository interface {
	// List は全プロジェクトを返す。
	List(ctx context.Context) ([]*model.Project, error)

	// FindByID は指定IDのプロジェクトを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.Project, error)

	// Create はプロジェクトを作成し、採番されたIDを返す。
	Create(ctx context.Context, p *model.Project) (int64, error)

	// Update はプロジェクトを更新する。対象が存在しない場合はErrNotFoundを返す。
	Update(ctx context.Context, p *model.Project) error

	// Delete は指定IDのプロジェクトを削除する。対象が存在しない場合はErrNotFoundを返す。
	Delete(ctx context.Context, id int64) error
}

// QuoteRepository は見積もり依頼の永続化インターフェース。
type QuoteRepository interface {
	// Create は見積もり依頼を作成し、採番されたIDを返す。
	Create(ctx context.Context, q *model.QuoteRequest) (int64, error)

	// List は全見積もり依頼を送信日時の降順で返す。
	List(ctx context.Context) ([]*model.QuoteRequest, error)
}

// ContactRepository は問い合わせの永続化インターフェース。
type ContactRepository interface {
	// Create は問い合わせを作成し、採番されたIDを返す。
	Create(ctx context.Context, c *model.ContactSubmission) (int64, error)

	// List は全問い合わせを送信日時の降順で返す。
	List(ctx context.Context) ([]*model.ContactSubmission, error)
}

// OrderRepository は注文データの永続化インターフェース。
type OrderRepository interface {
	// List は全注文をサービスタイトル付きで作成日時の降順で返す。
	List(ctx context.Context) ([]*model.OrderWithService, error)

	// Create は注文を作成し、採番されたIDを返す。
	Create(ctx context.Context, o *model.Order) (int64, error)

	// UpdateStatus は注文のステータスのみを更新する。対象が存在しない場合はErrNotFoundを返す。
	UpdateStatus(ctx context.Context, id int64, status string) error

	// Delete は指定IDの注文を削除する。対象が存在しない場合はErrNotFoundを返す。
	Delete(ctx context.Context, id int64) error
}
