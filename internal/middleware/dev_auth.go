// internal/middleware/dev_auth.go
package middleware

import (
	"context"
	"net/http"

	"go_4_vocab_trainer/internal/model"
	"go_4_vocab_trainer/internal/webutil"

	"github.com/google/uuid"
)

// OwnerHeader は開発時に所有者IDを渡すヘッダー
const OwnerHeader = "X-Owner-ID"

// DevOwnerContextMiddleware は開発・テスト用ミドルウェアです。
// X-Owner-ID ヘッダーからUUIDを抽出し、コンテキストに設定します。
// 所有者の存在チェックは行いません。
func DevOwnerContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())

		ownerIDStr := r.Header.Get(OwnerHeader)
		if ownerIDStr == "" {
			logger.Warn("[DEV AUTH] Failed: X-Owner-ID header missing")
			appErr := model.NewAppError("UNAUTHORIZED", "[DEV] X-Owner-IDヘッダーが必要です。", "", model.ErrForbidden)
			webutil.HandleError(w, logger, appErr)
			return
		}

		ownerID, err := uuid.Parse(ownerIDStr)
		if err != nil {
			logger.Warn("[DEV AUTH] Failed: Invalid X-Owner-ID format", "owner_id", ownerIDStr)
			appErr := model.NewAppError("UNAUTHORIZED", "[DEV] X-Owner-IDの形式が正しくありません。", "", model.ErrForbidden)
			webutil.HandleError(w, logger, appErr)
			return
		}

		logger.Debug("[DEV AUTH] Owner ID set to context (no validation)", "owner_id", ownerID)
		ctx := context.WithValue(r.Context(), model.OwnerIDKey, ownerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
