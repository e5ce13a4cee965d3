package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/hitoshi/sitedesk/internal/model"
)

// PostgresServiceRepo はPostgreSQLを使用したサービスリポジトリ。
// itemsカラムはJSONBで、[]stringとの間でJSONラウンドトリップを行う。
type PostgresServiceRepo struct {
	db *sql.DB
}

// NewPostgresServiceRepo はPostgresServiceRepoを生成する。
func NewPostgresServiceRepo(db *sql.DB) *PostgresServiceRepo {
	return &PostgresServiceRepo{db: db}
}

// List は全サービスを返す。
func (r *PostgresServiceRepo) List(ctx context.Context) ([]*model.Service, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, icon, description, items, created_at FROM services ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	var services []*model.Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate services: %w", err)
	}

	return services, nil
}

// FindByID は指定IDのサービスを取得する。見つからない場合はnilを返す。
func (r *PostgresServiceRepo) FindByID(ctx context.Context, id int64) (*model.Service, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, icon, description, items, created_at FROM services WHERE id = $1`,
		id,
	)

	svc, err := scanService(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find service by ID: %w", err)
	}

	return svc, nil
}

// Create はサービスを作成し、採番されたIDを返す。
func (r *PostgresServiceRepo) Create(ctx context.Context, svc *model.Service) (int64, error) {
	items, err := marshalItems(svc.Items)
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.db.QueryRowContext(ctx,
		`INSERT INTO services (title, icon, description, items, created_at)
		 VALUES ($1, $2, $3, $4, now())
		 RETURNING id`,
		svc.Title, svc.Icon, svc.Description, items,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert service: %w", err)
	}

	return id, nil
}

// Update はサービスを更新する。対象が存在しない場合はErrNotFoundを返す。
func (r *PostgresServiceRepo) Update(ctx context.Context, svc *model.Service) error {
	items, err := marshalItems(svc.Items)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE services SET title = $1, icon = $2, description = $3, items = $4 WHERE id = $5`,
		svc.Title, svc.Icon, svc.Description, items, svc.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}

	return requireRowsAffected(result)
}

// Delete は指定IDのサービスを削除する。対象が存在しない場合はErrNotFoundを返す。
func (r *PostgresServiceRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM services WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	return requireRowsAffected(result)
}

// rowScanner はsql.Rowとsql.Rowsの共通Scanインターフェース。
type rowScanner interface {
	Scan(dest ...any) error
}

// scanService は1行をmodel.Serviceに読み取る。
func scanService(row rowScanner) (*model.Service, error) {
	svc := &model.Service{}
	var items []byte
	if err := row.Scan(&svc.ID, &svc.Title, &svc.Icon, &svc.Description, &items, &svc.CreatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &svc.Items); err != nil {
		return nil, fmt.Errorf("failed to decode service items: %w", err)
	}
	if svc.Items == nil {
		svc.Items = []string{}
	}

	return svc, nil
}

// marshalItems は順序付き文字列リストをJSONBカラム用にエンコードする。
func marshalItems(items []string) ([]byte, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode service items: %w", err)
	}
	return b, nil
}

// requireRowsAffected は影響行数が0の場合にErrNotFoundを返す。
func requireRowsAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// compile-time interface check
var _ ServiceRepository = (*PostgresServiceRepo)(nil)
