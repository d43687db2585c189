package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

func traceID(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// RespondError writes the {error} shape used by the routing endpoints.
func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Error: message, TraceID: traceID(c)})
}

// RespondFailure writes the {success:false, message} shape used by uploads.
func RespondFailure(c *gin.Context, code int, message string) {
	ok := false
	c.JSON(code, ErrorResponse{Success: &ok, Message: message, TraceID: traceID(c)})
}

// UploadMessage maps upload errors to the walker-facing text.
func UploadMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingFile):
		return "ファイルが見つかりません"
	case errors.Is(err, ErrNotAnImage):
		return "画像ファイルのみアップロード可能です"
	case errors.Is(err, ErrFileTooLarge):
		var limit *SizeLimitError
		if errors.As(err, &limit) && limit.Limit > 0 {
			return fmt.Sprintf("ファイルサイズは%s以下にしてください", HumanSize(limit.Limit))
		}
		return "ファイルサイズが大きすぎます"
	case errors.Is(err, ErrImageStoreNotConfigured):
		return "サーバー設定エラー: 画像ストレージの設定が不足しています"
	default:
		return "アップロードに失敗しました"
	}
}

func HandleServiceError(c *gin.Context, err error) {
	var notFound *AddressNotFoundError

	switch {
	case errors.As(err, &notFound):
		RespondError(c, http.StatusBadRequest, notFound.UserMessage())
	case errors.Is(err, ErrRoutingNotConfigured):
		RespondError(c, http.StatusInternalServerError, "Mapbox token not configured")
	case errors.Is(err, ErrRouteTooLong), errors.Is(err, ErrNoRoute):
		RespondError(c, http.StatusBadRequest, "ルートを取得できませんでした")
	case errors.Is(err, ErrMissingFile), errors.Is(err, ErrNotAnImage), errors.Is(err, ErrFileTooLarge):
		RespondFailure(c, http.StatusBadRequest, UploadMessage(err))
	case errors.Is(err, ErrImageStoreNotConfigured), errors.Is(err, ErrUploadFailed):
		RespondFailure(c, http.StatusInternalServerError, UploadMessage(err))
	case errors.Is(err, ErrNoLocation):
		RespondError(c, http.StatusBadRequest, "ミッションを選択して位置情報を取得してください")
	case errors.Is(err, ErrMissionNotFound):
		RespondError(c, http.StatusNotFound, "ミッションが見つかりません")
	case errors.Is(err, ErrMissionCompleted):
		RespondError(c, http.StatusConflict, "このミッションは完了しています")
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrRequestInFlight):
		RespondError(c, http.StatusConflict, "リクエストを処理中です")
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, err.Error())
	default:
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
