package api

import (
	"errors"
	"net/http"

	"riskassess/middleware"
	"riskassess/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MessageNoReport 会话内尚无评估
const MessageNoReport = "No evaluation in this session yet."

// ReportHandler 评估报告处理器
type ReportHandler struct {
	email *service.EmailService
	log   *zap.Logger
}

// NewReportHandler 创建报告处理器
func NewReportHandler(email *service.EmailService, log *zap.Logger) *ReportHandler {
	return &ReportHandler{email: email, log: log}
}

// Download 下载最近一次评估的文本报告
// @Summary 下载报告
// @Description 最近一次评估的纯文本报告
// @Tags 报告
// @Produce plain
// @Success 200 {file} file "报告文件"
// @Failure 404 {object} Response "尚无评估"
// @Router /api/v1/report [get]
func (h *ReportHandler) Download(c *gin.Context) {
	last, ok := middleware.CurrentSession(c).Last()
	if !ok {
		NotFound(c, MessageNoReport)
		return
	}
	report := service.RenderReport(last.Input, last.Result)
	c.Header("Content-Disposition", "attachment; filename=diabetes_report.txt")
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(report))
}

// EmailReportRequest 发送报告请求
type EmailReportRequest struct {
	Email string `json:"email" binding:"required,email" example:"ann@example.com"`
}

// Email 通过邮件发送最近一次评估报告
// @Summary 邮件发送报告
// @Tags 报告
// @Accept json
// @Produce json
// @Param request body EmailReportRequest true "收件人"
// @Success 200 {object} Response "发送成功"
// @Failure 400 {object} Response "参数错误或邮件服务未启用"
// @Failure 404 {object} Response "尚无评估"
// @Router /api/v1/report/email [post]
func (h *ReportHandler) Email(c *gin.Context) {
	var req EmailReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "a valid email is required")
		return
	}

	sess := middleware.CurrentSession(c)
	last, ok := sess.Last()
	if !ok {
		NotFound(c, MessageNoReport)
		return
	}

	report := service.RenderReport(last.Input, last.Result)
	if err := h.email.SendReportEmail(req.Email, last.Input.Name, report); err != nil {
		if errors.Is(err, service.ErrEmailDisabled) {
			BadRequest(c, "email delivery is not enabled")
			return
		}
		h.log.Error("发送报告邮件失败", zap.String("session", sess.ID), zap.Error(err))
		InternalError(c, SafeErrorMessage(err, "failed to send email"))
		return
	}

	SuccessWithMessage(c, "report sent", nil)
}
