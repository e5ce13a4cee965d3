package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/sitedesk/internal/model"
)

// PostgresOrderRepo はPostgreSQLを使用した注文リポジトリ。
type PostgresOrderRepo struct {
	db *sql.DB
}

// NewPostgresOrderRepo はPostgresOrderRepoを生成する。
func NewPostgresOrderRepo(db *sql.DB) *PostgresOrderRepo {
	return &PostgresOrderRepo{db: db}
}

// List は全注文をサービスタイトル付きで作成日時の降順で返す。
func (r *PostgresOrderRepo) List(ctx context.Context) ([]*model.OrderWithService, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT o.id, o.email, o.service_id, o.status, o.total, o.created_at, s.title
		 FROM orders o
		 JOIN services s ON o.service_id = s.id
		 ORDER BY o.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*model.OrderWithService
	for rows.Next() {
		o := &model.OrderWithService{}
		if err := rows.Scan(&o.ID, &o.Email, &o.ServiceID, &o.Status, &o.Total, &o.CreatedAt, &o.ServiceTitle); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	return orders, nil
}

// Create は注文を作成し、採番されたIDを返す。ステータスは'pending'で開始する。
func (r *PostgresOrderRepo) Create(ctx context.Context, o *model.Order) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO orders (email, service_id, total, created_at)
		 VALUES ($1, $2, $3, now())
		 RETURNING id`,
		o.Email, o.ServiceID, o.Total,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert order: %w", err)
	}

	return id, nil
}

// UpdateStatus は注文のステータスのみを更新する。対象が存在しない場合はErrNotFoundを返す。
func (r *PostgresOrderRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	return requireRowsAffected(result)
}

// Delete は指定IDの注文を削除する。対象が存在しない場合はErrNotFoundを返す。
func (r *PostgresOrderRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM orders WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	return requireRowsAffected(result)
}

// compile-time interface check
var _ OrderRepository = (*PostgresOrderRepo)(nil)
