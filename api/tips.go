package api

import (
	"riskassess/middleware"
	"riskassess/service"

	"github.com/gin-gonic/gin"
)

// TipsHandler 健康建议与输入说明
type TipsHandler struct{}

// NewTipsHandler 创建处理器
func NewTipsHandler() *TipsHandler {
	return &TipsHandler{}
}

// Tips 个性化健康建议
// @Summary 健康建议
// @Description 根据最近一次评估给出建议，附带励志语录和通用建议
// @Tags 建议
// @Produce json
// @Success 200 {object} Response{data=service.Tips} "获取成功"
// @Router /api/v1/tips [get]
func (h *TipsHandler) Tips(c *gin.Context) {
	last, ok := middleware.CurrentSession(c).Last()
	tips := service.BuildTips(last, ok, nil)
	if !ok {
		SuccessWithMessage(c, tips.Message, tips)
		return
	}
	Success(c, tips)
}

// Guidelines 输入范围说明
// @Summary 输入说明
// @Tags 建议
// @Produce json
// @Success 200 {object} Response{data=[]service.Guideline} "获取成功"
// @Router /api/v1/guidelines [get]
func (h *TipsHandler) Guidelines(c *gin.Context) {
	Success(c, service.Guidelines())
}
