package webutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go_4_vocab_trainer/internal/model"
)

// DecodeJSONBody はリクエストボディをデコードします。未知のフィールドはエラー。
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.ErrInvalidInput
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディが空です。", "", model.ErrInvalidInput)
		}
		return model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", errors.Join(model.ErrInvalidInput, err))
	}
	return nil
}
