package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/sitedesk/internal/model"
)

// PostgresProjectRepo はPostgreSQLを使用したプロジェクトリポジトリ。
type PostgresProjectRepo struct {
	db *sql.DB
}

// NewPostgresProjectRepo はPostgresProjectRepoを生成する。
func NewPostgresProjectRepo(db *sql.DB) *PostgresProjectRepo {
	return &PostgresProjectRepo{db: db}
}

// List は全プロジェクトを返す。
func (r *PostgresProjectRepo) List(ctx context.Context) ([]*model.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, category, image, created_at FROM projects ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*model.Project
	for rows.Next() {
		p := &model.Project{}
		if err := rows.Scan(&p.ID, &p.Title, &p.Category, &p.Image, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}

	return projects, nil
}

// FindByID は指定IDのプロジェクトを取得する。見つからない場合はnilを返す。
func (r *PostgresProjectRepo) FindByID(ctx context.Context, id int64) (*model.Project, error) {
	p := &model.Project{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, category, image, created_at FROM projects WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Title, &p.Category, &p.Image, &p.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find project by ID: %w", err)
	}

	return p, nil
}

// Create はプロジェクトを作成し、採番されたIDを返す。
func (r *PostgresProjectRepo) Create(ctx context.Context, p *model.Project) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO projects (title, category, image, created_at)
		 VALUES ($1, $2, $3, now())
		 RETURNING id`,
		p.Title, p.Category, p.Image,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert project: %w", err)
	}

	return id, nil
}

// Update はプロジェクトを更新する。対象が存在しない場合はErrNotFoundを返す。
func (r *PostgresProjectRepo) Update(ctx context.Context, p *model.Project) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE projects SET title = $1, category = $2, image = $3 WHERE id = $4`,
		p.Title, p.Category, p.Image, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	return requireRowsAffected(result)
}

// Delete は指定IDのプロジェクトを削除する。対象が存在しない場合はErrNotFoundを返す。
func (r *PostgresProjectRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM projects WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return requireRowsAffected(result)
}

// compile-time interface check
var _ ProjectRepository = (*PostgresProjectRepo)(nil)
