package handler

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/sitedesk/internal/model"
)

// multipartメモリ上限。超過分はテンポラリファイルへ書き出される。
const maxMultipartMemory = 8 << 20

// UploadAcceptor はマルチパートで受信した画像の検証と保存のインターフェース。
type UploadAcceptor interface {
	// Accept はファイルを検証し、通過した場合のみ保存してアセットを返す。
	Accept(file multipart.File, header *multipart.FileHeader) (*model.UploadedAsset, error)
}

// acceptOptionalFile は指定フィールドのファイルを検証・保存する。
// フィールドが存在しない場合は (nil, nil) を返す（部分更新用）。
func acceptOptionalFile(r *http.Request, field string, acceptor UploadAcceptor) (*model.UploadedAsset, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, model.NewInvalidRequestError()
	}
	defer file.Close()

	return acceptor.Accept(file, header)
}

// parseItems はitemsフィールドを解析する。
// JSON配列文字列（`["a","b"]`）と繰り返しフィールドの両方を受け付ける。
func parseItems(r *http.Request) ([]string, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	values := r.MultipartForm.Value["items"]
	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var items []string
		if err := json.Unmarshal([]byte(values[0]), &items); err != nil {
			return nil, model.NewInvalidRequestError()
		}
		return items, nil
	}
	return values, nil
}

// idFromURL はURLパラメータ{id}を数値IDとして解析する。
func idFromURL(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, model.NewInvalidRequestError()
	}
	return id, nil
}
