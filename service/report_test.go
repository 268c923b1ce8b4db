package service

import (
	"strings"
	"testing"

	"riskassess/models"

	"github.com/stretchr/testify/assert"
)

func TestRenderReport(t *testing.T) {
	in := validInput()
	in.Name = " Ann "
	res := NewEngine(stubClassifier(0.62)).Evaluate(in, 50)

	report := RenderReport(in, res)
	assert.True(t, strings.HasPrefix(report, "AI Diabetes Risk Report\n"))
	assert.Contains(t, report, "Name: Ann\n")
	assert.Contains(t, report, "Glucose: 100\n")
	assert.Contains(t, report, "Blood Pressure: 70\n")
	assert.Contains(t, report, "BMI: 24.22 (Normal)\n")
	assert.Contains(t, report, "Age: 30\n")
	assert.Contains(t, report, "Decision Threshold: 50%\n")
	assert.Contains(t, report, "Prediction: Likely\n")
	assert.Contains(t, report, "Confidence: 62.00%\n")
	assert.Contains(t, report, "Risk Level: Medium\n")
	assert.Contains(t, report, "Advice:\n- "+HealthyMessage+"\n")
}

func TestRenderReport_NoName(t *testing.T) {
	res := NewEngine(stubClassifier(0.1)).Evaluate(validInput(), 50)
	report := RenderReport(validInput(), res)
	assert.NotContains(t, report, "Name:")
	assert.Contains(t, report, "Prediction: Not Likely\n")
}

func TestVerdictMessage(t *testing.T) {
	pos := models.EvaluationResult{ProbabilityPositive: 62, Threshold: 50, PredictedPositive: true, RiskTier: models.RiskMedium}
	assert.Equal(t, "Likely diabetic. Confidence: 62.00% (Threshold: 50%) Risk: Medium", VerdictMessage(pos))

	neg := models.EvaluationResult{ProbabilityPositive: 20, Threshold: 50, RiskTier: models.RiskLow}
	assert.Equal(t, "Not likely diabetic. Confidence: 80.00% (Threshold: 50%) Risk: Low", VerdictMessage(neg))
}

func TestBuildTips(t *testing.T) {
	tips := BuildTips(LastEvaluation{}, false, nil)
	assert.Equal(t, MessageNoPrediction, tips.Message)
	assert.Empty(t, tips.Quote)

	last := LastEvaluation{Result: models.EvaluationResult{Advice: []string{"Over 50? Get screened regularly."}}}
	tips = BuildTips(last, true, func(int) int { return 1 })
	assert.Equal(t, quotes[1], tips.Quote)
	assert.Equal(t, []string{"Over 50? Get screened regularly."}, tips.Advice)
	assert.Len(t, tips.Wellness, len(WellnessTips))

	// 默认随机源
	tips = BuildTips(last, true, nil)
	assert.Contains(t, quotes, tips.Quote)
}

func TestGuidelines(t *testing.T) {
	g := Guidelines()
	assert.Len(t, g, 4)
	assert.Equal(t, "glucose", g[0].Field)
	assert.Equal(t, 40.0, g[0].Min)
	assert.Equal(t, 300.0, g[0].Max)
}
