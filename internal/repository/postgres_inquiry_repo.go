package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/sitedesk/internal/model"
)

// PostgresQuoteRepo はPostgreSQLを使用した見積もり依頼リポジトリ。
type PostgresQuoteRepo struct {
	db *sql.DB
}

// NewPostgresQuoteRepo はPostgresQuoteRepoを生成する。
func NewPostgresQuoteRepo(db *sql.DB) *PostgresQuoteRepo {
	return &PostgresQuoteRepo{db: db}
}

// Create は見積もり依頼を作成し、採番されたIDを返す。
func (r *PostgresQuoteRepo) Create(ctx context.Context, q *model.QuoteRequest) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO quote_requests (budget, timeline, application_type, description, submitted_at)
		 VALUES ($1, $2, $3, $4, now())
		 RETURNING id`,
		q.Budget, q.Timeline, q.ApplicationType, q.Description,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert quote request: %w", err)
	}

	return id, nil
}

// List は全見積もり依頼を送信日時の降順で返す。
func (r *PostgresQuoteRepo) List(ctx context.Context) ([]*model.QuoteRequest, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, budget, timeline, application_type, description, submitted_at
		 FROM quote_requests ORDER BY submitted_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list quote requests: %w", err)
	}
	defer rows.Close()

	var quotes []*model.QuoteRequest
	for rows.Next() {
		q := &model.QuoteRequest{}
		if err := rows.Scan(&q.ID, &q.Budget, &q.Timeline, &q.ApplicationType, &q.Description, &q.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan quote request: %w", err)
		}
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quote requests: %w", err)
	}

	return quotes, nil
}

// PostgresContactRepo はPostgreSQLを使用した問い合わせリポジトリ。
type PostgresContactRepo struct {
	db *sql.DB
}

// NewPostgresContactRepo はPostgresContactRepoを生成する。
func NewPostgresContactRepo(db *sql.DB) *PostgresContactRepo {
	return &PostgresContactRepo{db: db}
}

// Create は問い合わせを作成し、採番されたIDを返す。
func (r *PostgresContactRepo) Create(ctx context.Context, c *model.ContactSubmission) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO contact_submissions (name, email, phone, message, submitted_at)
		 VALUES ($1, $2, $3, $4, now())
		 RETURNING id`,
		c.Name, c.Email, c.Phone, c.Message,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert contact submission: %w", err)
	}

	return id, nil
}

// List は全問い合わせを送信日時の降順で返す。
func (r *PostgresContactRepo) List(ctx context.Context) ([]*model.ContactSubmission, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, phone, message, submitted_at
		 FROM contact_submissions ORDER BY submitted_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact submissions: %w", err)
	}
	defer rows.Close()

	var contacts []*model.ContactSubmission
	for rows.Next() {
		c := &model.ContactSubmission{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Message, &c.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact submission: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contact submissions: %w", err)
	}

	return contacts, nil
}

// compile-time interface checks
var (
	_ QuoteRepository   = (*PostgresQuoteRepo)(nil)
	_ ContactRepository = (*PostgresContactRepo)(nil)
)
