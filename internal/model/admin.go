// Package model はドメインモデルを定義する。
package model

import "time"

// Admin は管理者アカウントを表す。
// パスワードはbcryptダイジェストのみ保持し、平文は一切保存しない。
// レコードはhashpwサブコマンドによる事前プロビジョニングで作成され、
// 稼働中のシステムから変更・削除されることはない。
type Admin struct {
	ID             int64
	Username       string
	PasswordDigest string
	CreatedAt      time.Time
}

// Principal は検証済みトークンから復元された認証主体を表す。
// 管理者ロールは単一のため、有効なトークンはすべての特権操作を許可する。
type Principal struct {
	ID       int64
	Username string
}
