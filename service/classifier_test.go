package service

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const plainArtifact = `{
	"model_type": "logistic_regression",
	"version": "test-1",
	"features": ["glucose", "blood_pressure", "bmi", "age"],
	"coefficients": [0.01, 0.02, 0.03, 0.04],
	"intercept": -5
}`

func TestLoadClassifier(t *testing.T) {
	m, err := LoadClassifier(writeArtifact(t, plainArtifact))
	require.NoError(t, err)
	assert.Equal(t, "test-1", m.Version())

	f := NewFeatures(100, 70, 24, 30)
	z := -5 + 0.01*100 + 0.02*70 + 0.03*24 + 0.04*30
	assert.InDelta(t, 1/(1+math.Exp(-z)), m.PredictPositiveProbability(f), 1e-12)
}

func TestLoadClassifier_Scaler(t *testing.T) {
	body := `{
		"model_type": "logistic_regression",
		"features": ["glucose", "blood_pressure", "bmi", "age"],
		"coefficients": [1, 0, 0, 0],
		"intercept": 0,
		"scaler": {"mean": [100, 0, 0, 0], "scale": [10, 1, 1, 1]}
	}`
	m, err := LoadClassifier(writeArtifact(t, body))
	require.NoError(t, err)

	// glucose 等于均值 -> z=0 -> 0.5
	assert.InDelta(t, 0.5, m.PredictPositiveProbability(NewFeatures(100, 1, 1, 1)), 1e-12)
	assert.InDelta(t, 1/(1+math.Exp(-1)), m.PredictPositiveProbability(NewFeatures(110, 1, 1, 1)), 1e-12)
}

func TestLoadClassifier_Unavailable(t *testing.T) {
	cases := map[string]string{
		"bad json":     `{"model_type":`,
		"unknown type": `{"model_type":"random_forest","features":["glucose","blood_pressure","bmi","age"],"coefficients":[1,1,1,1]}`,
		"wrong order":  `{"model_type":"logistic_regression","features":["glucose","bmi","blood_pressure","age"],"coefficients":[1,1,1,1]}`,
		"wrong arity":  `{"model_type":"logistic_regression","features":["glucose","blood_pressure","bmi"],"coefficients":[1,1,1]}`,
		"coef arity":   `{"model_type":"logistic_regression","features":["glucose","blood_pressure","bmi","age"],"coefficients":[1,1]}`,
		"zero scale":   `{"model_type":"logistic_regression","features":["glucose","blood_pressure","bmi","age"],"coefficients":[1,1,1,1],"scaler":{"mean":[0,0,0,0],"scale":[1,0,1,1]}}`,
		"scaler arity": `{"model_type":"logistic_regression","features":["glucose","blood_pressure","bmi","age"],"coefficients":[1,1,1,1],"scaler":{"mean":[0],"scale":[1]}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadClassifier(writeArtifact(t, body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrModelUnavailable))
		})
	}

	_, err := LoadClassifier(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestLoadClassifier_BundledArtifact(t *testing.T) {
	m, err := LoadClassifier(filepath.Join("..", "assets", "diabetes_model.json"))
	require.NoError(t, err)

	low := m.PredictPositiveProbability(NewFeatures(90, 70, 22, 25))
	high := m.PredictPositiveProbability(NewFeatures(220, 80, 38, 60))
	assert.Greater(t, low, 0.0)
	assert.Less(t, high, 1.0)
	assert.Less(t, low, 0.3)
	assert.Greater(t, high, 0.7)
}

func TestNewFeatures_Order(t *testing.T) {
	f := NewFeatures(1, 2, 3, 4)
	assert.Equal(t, Features{1, 2, 3, 4}, f)
	assert.Equal(t, [4]string{"glucose", "blood_pressure", "bmi", "age"}, FeatureNames)
}
