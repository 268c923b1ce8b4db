package api

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"riskassess/middleware"
	"riskassess/models"
	"riskassess/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MessageNoHistory 历史为空时的提示，导出接口不会返回空文件
const MessageNoHistory = "No predictions yet."

// HistoryHandler 会话历史与导出处理器
type HistoryHandler struct {
	log *zap.Logger
}

// NewHistoryHandler 创建历史处理器
func NewHistoryHandler(log *zap.Logger) *HistoryHandler {
	return &HistoryHandler{log: log}
}

// HistoryData 历史列表
type HistoryData struct {
	Total   int                    `json:"total"`
	Records []models.HistoryRecord `json:"records"`
}

// List 获取会话历史
// @Summary 评估历史
// @Description 按评估顺序返回当前会话的历史记录，最新的在最后
// @Tags 历史
// @Produce json
// @Success 200 {object} Response{data=HistoryData} "获取成功"
// @Router /api/v1/history [get]
func (h *HistoryHandler) List(c *gin.Context) {
	records := middleware.CurrentSession(c).History()
	if len(records) == 0 {
		SuccessWithMessage(c, MessageNoHistory, HistoryData{Records: []models.HistoryRecord{}})
		return
	}
	Success(c, HistoryData{Total: len(records), Records: records})
}

// ExportCSV 导出历史为 CSV
// @Summary 导出历史 CSV
// @Description 每条评估一行，数值保留完整精度；历史为空时返回提示
// @Tags 历史
// @Produce text/csv
// @Success 200 {file} file "CSV 文件"
// @Router /api/v1/history/export/csv [get]
func (h *HistoryHandler) ExportCSV(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	buf := new(bytes.Buffer)
	// 添加 BOM 以支持 Excel 正确显示
	buf.WriteString(service.UTF8BOM)

	empty := false
	err := sess.WithHistory(func(hs *service.HistoryStore) error {
		if hs.Empty() {
			empty = true
			return nil
		}
		return hs.ExportCSV(buf)
	})
	if err != nil {
		h.log.Error("生成 CSV 失败", zap.String("session", sess.ID), zap.Error(err))
		InternalError(c, "failed to generate CSV")
		return
	}
	if empty {
		SuccessWithMessage(c, MessageNoHistory, nil)
		return
	}

	filename := fmt.Sprintf("diabetes_history_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportExcel 导出历史为 Excel
// @Summary 导出历史 Excel
// @Description 带样式的 xlsx，高风险行标红；历史为空时返回提示
// @Tags 历史
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "Excel 文件"
// @Router /api/v1/history/export/excel [get]
func (h *HistoryHandler) ExportExcel(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	buf := new(bytes.Buffer)
	empty := false
	err := sess.WithHistory(func(hs *service.HistoryStore) error {
		if hs.Empty() {
			empty = true
			return nil
		}
		return hs.ExportExcel(buf)
	})
	if err != nil {
		h.log.Error("生成 Excel 失败", zap.String("session", sess.ID), zap.Error(err))
		InternalError(c, "failed to generate Excel")
		return
	}
	if empty {
		SuccessWithMessage(c, MessageNoHistory, nil)
		return
	}

	filename := fmt.Sprintf("diabetes_history_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ExportJSON 导出历史为 JSON
// @Summary 导出历史 JSON
// @Tags 历史
// @Produce json
// @Success 200 {object} Response{data=HistoryData} "导出成功"
// @Router /api/v1/history/export/json [get]
func (h *HistoryHandler) ExportJSON(c *gin.Context) {
	records := middleware.CurrentSession(c).History()
	if len(records) == 0 {
		SuccessWithMessage(c, MessageNoHistory, nil)
		return
	}

	filename := fmt.Sprintf("diabetes_history_%s.json", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	Success(c, HistoryData{Total: len(records), Records: records})
}
