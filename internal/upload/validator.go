// Package upload はアップロードファイルの検証と永続化を提供する。
//
// 検証は拡張子と申告されたContent-Typeの許可リスト照合、およびサイズ上限のみで、
// ファイル内容のスニッフィングは行わない（申告タイプを信頼する既知のギャップ）。
// 保存名はサーバーが生成するため、ユーザー指定のファイル名が
// ストレージパスに混入することはない。
package upload

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hitoshi/sitedesk/internal/model"
)

// allowedExtensions は受け入れる拡張子の許可リスト（小文字で照合）。
var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

// allowedMediaTypes は受け入れる申告Content-Typeの許可リスト。
var allowedMediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

// randomSuffixMax は保存名に付与する乱数サフィックスの上限（9桁）。
var randomSuffixMax = big.NewInt(1_000_000_000)

// Metrics はアップロード結果の記録に必要なメトリクスインターフェース。
type Metrics interface {
	RecordUploadAccepted()
	RecordUploadRejected(reason string)
}

// Validator はアップロードファイルの検証と保存を行う。
type Validator struct {
	dir      string
	maxBytes int64
	metrics  Metrics
}

// NewValidator はValidatorを生成する。metricsはnilでもよい。
// dirは保存先ディレクトリ、maxBytesはサイズ上限（バイト）。
func NewValidator(dir string, maxBytes int64, metrics Metrics) *Validator {
	return &Validator{
		dir:      dir,
		maxBytes: maxBytes,
		metrics:  metrics,
	}
}

// Accept はアップロードファイルを検証し、合格したものを保存先に永続化する。
// 検証順序: 拡張子 → 申告Content-Type → サイズ。いずれかの不合格で
// ファイルは一切書き込まれない。
// 保存名は {unixミリ秒}-{乱数9桁}{元の拡張子} 形式で衝突しない。
func (v *Validator) Accept(file multipart.File, header *multipart.FileHeader) (*model.UploadedAsset, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		v.recordRejected("extension")
		return nil, model.NewUnsupportedMediaTypeError(header.Filename)
	}

	declared := header.Header.Get("Content-Type")
	if !allowedMediaTypes[declared] {
		v.recordRejected("media_type")
		return nil, model.NewUnsupportedMediaTypeError(header.Filename)
	}

	if header.Size > v.maxBytes {
		v.recordRejected("size")
		return nil, model.NewPayloadTooLargeError(v.maxBytes)
	}

	filename, err := v.generateFilename(ext)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(v.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	storagePath := filepath.Join(v.dir, filename)
	dst, err := os.Create(storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, file)
	if err != nil {
		// 書き込み途中で失敗した場合は不完全なファイルを残さない
		os.Remove(storagePath)
		return nil, fmt.Errorf("failed to write upload file: %w", err)
	}

	v.recordAccepted()
	return &model.UploadedAsset{
		GeneratedFilename: filename,
		StoragePath:       storagePath,
		PublicPath:        "/uploads/" + filename,
		OriginalExtension: ext,
		SizeBytes:         written,
	}, nil
}

// generateFilename は衝突しない保存名を生成する。
func (v *Validator) generateFilename(ext string) (string, error) {
	n, err := rand.Int(rand.Reader, randomSuffixMax)
	if err != nil {
		return "", fmt.Errorf("failed to generate random suffix: %w", err)
	}
	return fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), n.Int64(), ext), nil
}

func (v *Validator) recordAccepted() {
	if v.metrics != nil {
		v.metrics.RecordUploadAccepted()
	}
}

func (v *Validator) recordRejected(reason string) {
	if v.metrics != nil {
		v.metrics.RecordUploadRejected(reason)
	}
}
