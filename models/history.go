package models

import "time"

// HistoryRecord 一次成功评估的扁平快照，会话内只追加不修改
type HistoryRecord struct {
	Seq                 int         `json:"seq"`
	EvaluatedAt         time.Time   `json:"evaluated_at"`
	Name                string      `json:"name,omitempty"`
	Glucose             float64     `json:"glucose"`
	BloodPressure       float64     `json:"blood_pressure"`
	Weight              float64     `json:"weight"`
	HeightCm            float64     `json:"height_cm"`
	BMI                 float64     `json:"bmi"`
	BMICategory         BMICategory `json:"bmi_category"`
	Age                 int         `json:"age"`
	Threshold           float64     `json:"threshold"`
	ProbabilityPositive float64     `json:"probability_positive"`
	PredictedPositive   bool        `json:"predicted_positive"`
	RiskTier            RiskTier    `json:"risk_level"`
	Advice              []string    `json:"advice"`
}

// NewHistoryRecord 由输入与结果组装记录，Seq 与 EvaluatedAt 由存储在追加时填写
func NewHistoryRecord(in PatientInput, res EvaluationResult) HistoryRecord {
	advice := make([]string, len(res.Advice))
	copy(advice, res.Advice)
	return HistoryRecord{
		Name:                in.Name,
		Glucose:             in.Glucose,
		BloodPressure:       in.BloodPressure,
		Weight:              in.Weight,
		HeightCm:            in.HeightCm,
		BMI:                 res.BMI,
		BMICategory:         res.BMICategory,
		Age:                 in.Age,
		Threshold:           res.Threshold,
		ProbabilityPositive: res.ProbabilityPositive,
		PredictedPositive:   res.PredictedPositive,
		RiskTier:            res.RiskTier,
		Advice:              advice,
	}
}

// PredictionLabel 返回 "Likely" / "Not Likely"
func (r HistoryRecord) PredictionLabel() string {
	if r.PredictedPositive {
		return LabelLikely
	}
	return LabelNotLikely
}
