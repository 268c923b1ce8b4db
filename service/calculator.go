package service

import "riskassess/models"

// ComputeBMI 计算 BMI = 体重(kg) / 身高(m)^2，不做取整
// heightCm > 0 由输入校验保证
func ComputeBMI(weightKg, heightCm float64) float64 {
	m := heightCm / 100
	return weightKg / (m * m)
}

// ClassifyBMI BMI 分级，各档下界包含在本档内
func ClassifyBMI(bmi float64) models.BMICategory {
	switch {
	case bmi < 18.5:
		return models.BMIUnderweight
	case bmi < 25:
		return models.BMINormal
	case bmi < 30:
		return models.BMIOverweight
	case bmi < 35:
		return models.BMIObese
	default:
		return models.BMISeverelyObese
	}
}

// ClassifyRisk 概率(%) -> 风险等级，边界值归入上一档
func ClassifyRisk(percent float64) models.RiskTier {
	switch {
	case percent < 30:
		return models.RiskLow
	case percent < 70:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}
