package api

import (
	"riskassess/config"
	"riskassess/middleware"
	"riskassess/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionHandler 会话处理器
type SessionHandler struct {
	manager *service.SessionManager
	cfg     config.SessionConfig
	log     *zap.Logger
}

// NewSessionHandler 创建会话处理器
func NewSessionHandler(manager *service.SessionManager, cfg config.SessionConfig, log *zap.Logger) *SessionHandler {
	return &SessionHandler{manager: manager, cfg: cfg, log: log}
}

// SessionData 会话信息
type SessionData struct {
	SessionID string `json:"session_id"`
	Records   int    `json:"records"`
}

// Current 当前会话信息
// @Summary 当前会话
// @Tags 会话
// @Produce json
// @Success 200 {object} Response{data=SessionData} "获取成功"
// @Router /api/v1/session [get]
func (h *SessionHandler) Current(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	Success(c, SessionData{SessionID: sess.ID, Records: len(sess.History())})
}

// Reset 结束当前会话并开启新会话，历史随之清空
// @Summary 重置会话
// @Tags 会话
// @Produce json
// @Success 200 {object} Response{data=SessionData} "重置成功"
// @Router /api/v1/session/reset [post]
func (h *SessionHandler) Reset(c *gin.Context) {
	old := middleware.CurrentSession(c)
	h.manager.End(old.ID)

	sess, err := middleware.IssueSession(c, h.manager, h.cfg)
	if err != nil {
		h.log.Error("重置会话失败", zap.Error(err))
		InternalError(c, "failed to start session")
		return
	}
	h.log.Info("会话已重置", zap.String("old", old.ID), zap.String("new", sess.ID))
	SuccessWithMessage(c, "session reset", SessionData{SessionID: sess.ID})
}
