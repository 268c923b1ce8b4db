package api

import (
	"riskassess/middleware"
	"riskassess/models"
	"riskassess/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EvaluateHandler 风险评估处理器
type EvaluateHandler struct {
	engine *service.Engine
	log    *zap.Logger
}

// NewEvaluateHandler 创建评估处理器
func NewEvaluateHandler(engine *service.Engine, log *zap.Logger) *EvaluateHandler {
	return &EvaluateHandler{engine: engine, log: log}
}

// EvaluateRequest 评估请求
type EvaluateRequest struct {
	Name          string   `json:"name" example:"Ann"`
	Glucose       *float64 `json:"glucose" binding:"required" example:"100"`
	BloodPressure *float64 `json:"blood_pressure" binding:"required" example:"70"`
	Weight        *float64 `json:"weight" binding:"required" example:"70"`
	HeightCm      *float64 `json:"height_cm" binding:"required" example:"170"`
	Age           *int     `json:"age" binding:"required" example:"30"`
	Threshold     *float64 `json:"threshold" example:"50"`
}

func (r EvaluateRequest) toInput() (models.PatientInput, float64) {
	threshold := models.DefaultThreshold
	if r.Threshold != nil {
		threshold = *r.Threshold
	}
	return models.PatientInput{
		Name:          r.Name,
		Glucose:       *r.Glucose,
		BloodPressure: *r.BloodPressure,
		Weight:        *r.Weight,
		HeightCm:      *r.HeightCm,
		Age:           *r.Age,
	}, threshold
}

// EvaluateResponse 评估结果
type EvaluateResponse struct {
	Result     models.EvaluationResult `json:"result"`
	Record     models.HistoryRecord    `json:"record"`
	Prediction string                  `json:"prediction"`
	Confidence float64                 `json:"confidence"`
	Message    string                  `json:"message"`
}

// Evaluate 执行一次风险评估并写入会话历史
// @Summary 风险评估
// @Description 校验输入、调用分类模型并返回预测、置信度、风险等级和建议
// @Tags 评估
// @Accept json
// @Produce json
// @Param request body EvaluateRequest true "健康指标"
// @Success 200 {object} Response{data=EvaluateResponse} "评估成功"
// @Failure 400 {object} Response "请求格式错误"
// @Failure 422 {object} Response{data=ValidationData} "输入超出范围"
// @Failure 429 {object} Response "请求过于频繁"
// @Router /api/v1/evaluate [post]
func (h *EvaluateHandler) Evaluate(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "glucose, blood_pressure, weight, height_cm and age are required")
		return
	}

	sess := middleware.CurrentSession(c)
	if sess == nil {
		InternalError(c, "session unavailable")
		return
	}

	in, threshold := req.toInput()
	res, rec, err := sess.Evaluate(h.engine, in, threshold)
	if err != nil {
		if msgs, ok := service.AsValidationErrors(err); ok {
			h.log.Debug("评估输入校验失败", zap.String("session", sess.ID), zap.Strings("errors", msgs))
			ValidationFailed(c, msgs)
			return
		}
		h.log.Error("评估失败", zap.String("session", sess.ID), zap.Error(err))
		InternalError(c, SafeErrorMessage(err, "evaluation failed"))
		return
	}

	h.log.Info("评估完成",
		zap.String("session", sess.ID),
		zap.Int("seq", rec.Seq),
		zap.Float64("probability", res.ProbabilityPositive),
		zap.Float64("threshold", threshold),
		zap.Stringer("risk", res.RiskTier))

	Success(c, EvaluateResponse{
		Result:     res,
		Record:     rec,
		Prediction: res.PredictionLabel(),
		Confidence: res.VerdictConfidence(),
		Message:    service.VerdictMessage(res),
	})
}
