package model

// UploadedAsset は検証を通過して永続化されたアップロードファイルを表す。
// GeneratedFilenameはサーバーが生成した衝突しない名前で、
// ユーザー指定のファイル名がパスに混入することはない。
type UploadedAsset struct {
	GeneratedFilename string // 例: 1700000000000-123456789.png
	StoragePath       string // ファイルシステム上の保存先
	PublicPath        string // 例: /uploads/1700000000000-123456789.png
	OriginalExtension string
	SizeBytes         int64
}
