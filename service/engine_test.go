package service

import (
	"testing"

	"riskassess/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubClassifier(p float64) Classifier {
	return ClassifierFunc(func(Features) float64 { return p })
}

func TestEngine_Evaluate(t *testing.T) {
	e := NewEngine(stubClassifier(0.62))
	res := e.Evaluate(validInput(), 50)

	assert.InDelta(t, 62.0, res.ProbabilityPositive, 1e-9)
	assert.True(t, res.PredictedPositive)
	assert.Equal(t, models.RiskMedium, res.RiskTier)
	assert.Equal(t, models.BMINormal, res.BMICategory)
	assert.InDelta(t, 24.22, res.BMI, 0.005)
	assert.Equal(t, 50.0, res.Threshold)
	assert.Equal(t, []string{HealthyMessage}, res.Advice)
}

func TestEngine_ThresholdInclusive(t *testing.T) {
	e := NewEngine(stubClassifier(0.5))
	assert.True(t, e.Evaluate(validInput(), 50).PredictedPositive)
	assert.False(t, e.Evaluate(validInput(), 50.0001).PredictedPositive)
	assert.True(t, e.Evaluate(validInput(), 0).PredictedPositive)
}

func TestEngine_FeatureOrderContract(t *testing.T) {
	var got Features
	e := NewEngine(ClassifierFunc(func(f Features) float64 {
		got = f
		return 0.1
	}))

	in := models.PatientInput{Glucose: 111, BloodPressure: 77, Weight: 80, HeightCm: 180, Age: 44}
	e.Evaluate(in, 50)

	assert.Equal(t, Features{111, 77, ComputeBMI(80, 180), 44}, got)
}

func TestEngine_RiskTierFromProbability(t *testing.T) {
	assert.Equal(t, models.RiskLow, NewEngine(stubClassifier(0.1)).Evaluate(validInput(), 50).RiskTier)
	assert.Equal(t, models.RiskHigh, NewEngine(stubClassifier(0.9)).Evaluate(validInput(), 50).RiskTier)
}

func TestEngine_Submit(t *testing.T) {
	e := NewEngine(stubClassifier(0.62))
	h := NewHistoryStore()

	in := validInput()
	in.Name = "Ann"
	res, rec, err := e.Submit(h, in, 50)
	require.NoError(t, err)

	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 1, rec.Seq)
	assert.Equal(t, "Ann", rec.Name)
	assert.Equal(t, res.ProbabilityPositive, rec.ProbabilityPositive)
	assert.Equal(t, res.RiskTier, rec.RiskTier)
	assert.Equal(t, 50.0, rec.Threshold)
	assert.Equal(t, h.All()[0], rec)
}

func TestEngine_SubmitInvalidLeavesHistoryUntouched(t *testing.T) {
	called := false
	e := NewEngine(ClassifierFunc(func(Features) float64 {
		called = true
		return 0.5
	}))
	h := NewHistoryStore()

	in := validInput()
	in.Glucose = 500
	in.Age = -5
	_, _, err := e.Submit(h, in, 50)

	msgs, ok := AsValidationErrors(err)
	require.True(t, ok)
	assert.Len(t, msgs, 2)
	assert.True(t, h.Empty())
	assert.False(t, called)
}

func TestEngine_WithOptions(t *testing.T) {
	rules := AdviceRules{{MetricAge, SeverityInfo, "custom", func(AdviceContext) bool { return true }}}
	e := NewEngine(stubClassifier(0.2), WithAdviceRules(rules), WithValidator(NewInputValidator(RequireName())))

	assert.Equal(t, []string{"custom"}, e.Evaluate(validInput(), 50).Advice)
	assert.Error(t, e.Validate(validInput(), 50))
}
