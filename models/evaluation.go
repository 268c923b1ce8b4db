package models

import "fmt"

// BMICategory BMI 分级
type BMICategory int

const (
	BMIUnderweight BMICategory = iota
	BMINormal
	BMIOverweight
	BMIObese
	BMISeverelyObese
)

var bmiCategoryNames = []string{"Underweight", "Normal", "Overweight", "Obese", "Severely Obese"}

func (c BMICategory) String() string {
	if c < BMIUnderweight || c > BMISeverelyObese {
		return fmt.Sprintf("BMICategory(%d)", int(c))
	}
	return bmiCategoryNames[c]
}

// MarshalText 以名称形式序列化
func (c BMICategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText 从名称解析
func (c *BMICategory) UnmarshalText(b []byte) error {
	v, err := ParseBMICategory(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseBMICategory 名称 -> BMICategory
func ParseBMICategory(s string) (BMICategory, error) {
	for i, name := range bmiCategoryNames {
		if name == s {
			return BMICategory(i), nil
		}
	}
	return 0, fmt.Errorf("unknown bmi category %q", s)
}

// RiskTier 风险等级
type RiskTier int

const (
	RiskLow RiskTier = iota
	RiskMedium
	RiskHigh
)

var riskTierNames = []string{"Low", "Medium", "High"}

func (r RiskTier) String() string {
	if r < RiskLow || r > RiskHigh {
		return fmt.Sprintf("RiskTier(%d)", int(r))
	}
	return riskTierNames[r]
}

// MarshalText 以名称形式序列化
func (r RiskTier) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText 从名称解析
func (r *RiskTier) UnmarshalText(b []byte) error {
	v, err := ParseRiskTier(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// ParseRiskTier 名称 -> RiskTier
func ParseRiskTier(s string) (RiskTier, error) {
	for i, name := range riskTierNames {
		if name == s {
			return RiskTier(i), nil
		}
	}
	return 0, fmt.Errorf("unknown risk tier %q", s)
}

// 预测标签
const (
	LabelLikely    = "Likely"
	LabelNotLikely = "Not Likely"
)

// EvaluationResult 单次评估结果，生成后不再修改
type EvaluationResult struct {
	BMI                 float64     `json:"bmi"`
	BMICategory         BMICategory `json:"bmi_category"`
	ProbabilityPositive float64     `json:"probability_positive"` // 0-100
	Threshold           float64     `json:"threshold"`
	PredictedPositive   bool        `json:"predicted_positive"`
	RiskTier            RiskTier    `json:"risk_tier"`
	Advice              []string    `json:"advice"`
}

// PredictionLabel 返回 "Likely" / "Not Likely"
func (r EvaluationResult) PredictionLabel() string {
	if r.PredictedPositive {
		return LabelLikely
	}
	return LabelNotLikely
}

// VerdictConfidence 结论本身的置信度：阳性取阳性概率，阴性取其补
func (r EvaluationResult) VerdictConfidence() float64 {
	if r.PredictedPositive {
		return r.ProbabilityPositive
	}
	return 100 - r.ProbabilityPositive
}
