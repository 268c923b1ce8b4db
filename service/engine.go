package service

import (
	"riskassess/models"
)

// Engine 风险评估决策引擎
type Engine struct {
	classifier Classifier
	validator  *InputValidator
	rules      AdviceRules
}

// EngineOption 引擎选项
type EngineOption func(*Engine)

// WithValidator 替换默认校验器
func WithValidator(v *InputValidator) EngineOption {
	return func(e *Engine) {
		e.validator = v
	}
}

// WithAdviceRules 替换默认建议规则表
func WithAdviceRules(rules AdviceRules) EngineOption {
	return func(e *Engine) {
		e.rules = rules
	}
}

// NewEngine 创建引擎，classifier 在进程启动时加载一次并在所有会话间共享
func NewEngine(classifier Classifier, opts ...EngineOption) *Engine {
	e := &Engine{
		classifier: classifier,
		validator:  NewInputValidator(),
		rules:      DefaultAdviceRules,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Validate 仅做输入校验
func (e *Engine) Validate(in models.PatientInput, threshold float64) error {
	return e.validator.Validate(in, threshold)
}

// Evaluate 对已通过校验的输入计算结果
func (e *Engine) Evaluate(in models.PatientInput, threshold float64) models.EvaluationResult {
	bmi := ComputeBMI(in.Weight, in.HeightCm)
	category := ClassifyBMI(bmi)

	prob := e.classifier.PredictPositiveProbability(NewFeatures(in.Glucose, in.BloodPressure, bmi, in.Age)) * 100

	return models.EvaluationResult{
		BMI:                 bmi,
		BMICategory:         category,
		ProbabilityPositive: prob,
		Threshold:           threshold,
		PredictedPositive:   prob >= threshold,
		RiskTier:            ClassifyRisk(prob),
		Advice:              e.rules.Generate(AdviceContext{Input: in, BMI: bmi, BMICategory: category}),
	}
}

// Submit 校验 -> 评估 -> 写入历史。校验失败时返回 ValidationErrors，历史不变
func (e *Engine) Submit(history *HistoryStore, in models.PatientInput, threshold float64) (models.EvaluationResult, models.HistoryRecord, error) {
	if err := e.Validate(in, threshold); err != nil {
		return models.EvaluationResult{}, models.HistoryRecord{}, err
	}
	res := e.Evaluate(in, threshold)
	rec := history.Append(models.NewHistoryRecord(in, res))
	return res, rec, nil
}
