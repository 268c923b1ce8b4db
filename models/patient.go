package models

// PatientInput 一次评估的原始输入
type PatientInput struct {
	Name          string  `json:"name,omitempty"`
	Glucose       float64 `json:"glucose"`
	BloodPressure float64 `json:"blood_pressure"`
	Weight        float64 `json:"weight"`
	HeightCm      float64 `json:"height_cm"`
	Age           int     `json:"age"`
}

// 阈值取值范围（百分比）
const (
	MinThreshold     = 0.0
	MaxThreshold     = 100.0
	DefaultThreshold = 50.0
)
