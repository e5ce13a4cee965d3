package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/sitedesk/internal/model"
)

// PostgresAdminRepo はPostgreSQLを使用した管理者リポジトリ。
type PostgresAdminRepo struct {
	db *sql.DB
}

// NewPostgresAdminRepo はPostgresAdminRepoを生成する。
func NewPostgresAdminRepo(db *sql.DB) *PostgresAdminRepo {
	return &PostgresAdminRepo{db: db}
}

// FindByUsername はユーザー名の完全一致で管理者を取得する。見つからない場合はnilを返す。
func (r *PostgresAdminRepo) FindByUsername(ctx context.Context, username string) (*model.Admin, error) {
	admin := &model.Admin{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_digest, created_at FROM admins WHERE username = $1`,
		username,
	).Scan(&admin.ID, &admin.Username, &admin.PasswordDigest, &admin.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find admin by username: %w", err)
	}

	return admin, nil
}

// compile-time interface check
var _ AdminRepository = (*PostgresAdminRepo)(nil)
