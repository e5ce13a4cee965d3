package model

import "time"

// QuoteRequest は公開フォームから送信された見積もり依頼を表す。
type QuoteRequest struct {
	ID              int64
	Budget          string
	Timeline        string
	ApplicationType string
	Description     string
	SubmittedAt     time.Time
}

// ContactSubmission は公開フォームから送信された問い合わせを表す。
type ContactSubmission struct {
	ID          int64
	Name        string
	Email       string
	Phone       string
	Message     string
	SubmittedAt time.Time
}
