package model

import "time"

// Service は提供サービスを表す。
// Itemsは順序付きの文字列リストで、DB上はJSONBカラムに格納される。
// Iconはアップロード済みアセットへの公開パス参照のみを保持する。
// レコード削除時にアセットは回収されない（既知のギャップ）。
type Service struct {
	ID          int64
	Title       string
	Icon        string
	Description string
	Items       []string
	CreatedAt   time.Time
}

// Project は制作実績を表す。
// Imageはアップロード済みアセットへの公開パス参照。
type Project struct {
	ID        int64
	Title     string
	Category  string
	Image     string
	CreatedAt time.Time
}
