package model

import "time"

// Order はサービスに対する注文を表す。
type Order struct {
	ID        int64
	Email     string
	ServiceID int64
	Status    string
	Total     string
	CreatedAt time.Time
}

// OrderWithService は注文とサービスタイトルを結合した読み取り用オブジェクト。
// 管理画面の注文一覧で使用する。
type OrderWithService struct {
	Order
	ServiceTitle string
}
