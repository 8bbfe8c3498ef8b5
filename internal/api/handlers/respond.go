package handlers

import (
	"errors"
	"net/http"

	"dinedecide/internal/core/session"
	"dinedecide/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionKey gin context 中 Session 的鍵
const SessionKey = "session"

// RequestID 取得請求 ID
func RequestID(c *gin.Context) string {
	if id := requestid.Get(c); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// SessionFrom 取得中間件注入的 Session
func SessionFrom(c *gin.Context) (*session.Session, bool) {
	v, exists := c.Get(SessionKey)
	if !exists {
		return nil, false
	}
	s, ok := v.(*session.Session)
	return s, ok && s != nil
}

// RespondError 依錯誤類型回傳對應的狀態碼與 ErrorResponse
func RespondError(c *gin.Context, err error) {
	status := common.StatusOf(err)
	resp := common.ErrorResponse{
		Code:    common.ErrCodeInternalError,
		Message: common.ErrInternalError.Message,
	}

	var ce *common.CustomError
	switch {
	case common.IsValidationError(err):
		resp.Code = common.ErrCodeInvalidRequest
		resp.Message = err.Error()
	case errors.As(err, &ce):
		resp.Code = ce.Code
		resp.Message = ce.Message
	}
	if gin.Mode() == gin.DebugMode && resp.Message != err.Error() {
		resp.Details = err.Error()
	}

	fields := []zap.Field{
		zap.Error(err),
		zap.Int("status", status),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", RequestID(c)),
	}
	if status >= http.StatusInternalServerError {
		common.LogError("請求處理失敗", fields...)
	} else {
		common.LogDebug("請求被拒絕", fields...)
	}

	c.AbortWithStatusJSON(status, resp)
}

// RespondBadRequest 回傳 400 與訊息
func RespondBadRequest(c *gin.Context, message string) {
	RespondError(c, common.NewValidationError(message))
}
