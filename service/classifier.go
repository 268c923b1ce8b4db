package service

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/goccy/go-json"
)

// ErrModelUnavailable 模型文件无法加载，属于启动期的致命错误
var ErrModelUnavailable = errors.New("model unavailable")

// FeatureNames 模型训练时的特征顺序，不可调整
var FeatureNames = [4]string{"glucose", "blood_pressure", "bmi", "age"}

// Features 喂给分类器的固定四维特征 [glucose, blood_pressure, bmi, age]
type Features [4]float64

// NewFeatures 按固定顺序构造特征向量
func NewFeatures(glucose, bloodPressure, bmi float64, age int) Features {
	return Features{glucose, bloodPressure, bmi, float64(age)}
}

// Classifier 预训练二分类器，只读，可被多个会话并发调用
type Classifier interface {
	// PredictPositiveProbability 返回阳性概率，取值 [0,1]
	PredictPositiveProbability(f Features) float64
}

// ClassifierFunc 用函数实现 Classifier，便于测试替换
type ClassifierFunc func(f Features) float64

func (fn ClassifierFunc) PredictPositiveProbability(f Features) float64 {
	return fn(f)
}

// ModelArtifact 模型文件格式
type ModelArtifact struct {
	ModelType    string    `json:"model_type"`
	Version      string    `json:"version"`
	Features     []string  `json:"features"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	Scaler       *Scaler   `json:"scaler,omitempty"`
}

// Scaler 标准化参数 (x - mean) / scale
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

const modelTypeLogistic = "logistic_regression"

// LogisticModel 逻辑回归分类器，加载后不可变
type LogisticModel struct {
	version string
	coef    [4]float64
	mean    [4]float64
	scale   [4]float64
	bias    float64
}

// LoadClassifier 从文件加载模型，失败时返回包装了 ErrModelUnavailable 的错误
func LoadClassifier(path string) (*LogisticModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	var art ModelArtifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrModelUnavailable, path, err)
	}

	m, err := NewLogisticModel(art)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrModelUnavailable, path, err)
	}
	return m, nil
}

// NewLogisticModel 校验模型参数并构造分类器
func NewLogisticModel(art ModelArtifact) (*LogisticModel, error) {
	if art.ModelType != modelTypeLogistic {
		return nil, fmt.Errorf("unsupported model type %q", art.ModelType)
	}
	if len(art.Features) != len(FeatureNames) {
		return nil, fmt.Errorf("expected %d features, got %d", len(FeatureNames), len(art.Features))
	}
	for i, name := range FeatureNames {
		if art.Features[i] != name {
			return nil, fmt.Errorf("feature %d is %q, expected %q", i, art.Features[i], name)
		}
	}
	if len(art.Coefficients) != len(FeatureNames) {
		return nil, fmt.Errorf("expected %d coefficients, got %d", len(FeatureNames), len(art.Coefficients))
	}

	m := &LogisticModel{version: art.Version, bias: art.Intercept}
	copy(m.coef[:], art.Coefficients)
	for i := range m.scale {
		m.scale[i] = 1
	}
	if art.Scaler != nil {
		if len(art.Scaler.Mean) != len(FeatureNames) || len(art.Scaler.Scale) != len(FeatureNames) {
			return nil, errors.New("scaler arity mismatch")
		}
		for i := range FeatureNames {
			if art.Scaler.Scale[i] == 0 {
				return nil, fmt.Errorf("scaler scale for %q is zero", FeatureNames[i])
			}
			m.mean[i] = art.Scaler.Mean[i]
			m.scale[i] = art.Scaler.Scale[i]
		}
	}
	return m, nil
}

// PredictPositiveProbability 实现 Classifier
func (m *LogisticModel) PredictPositiveProbability(f Features) float64 {
	z := m.bias
	for i, x := range f {
		z += m.coef[i] * (x - m.mean[i]) / m.scale[i]
	}
	return 1 / (1 + math.Exp(-z))
}

// Version 模型版本
func (m *LogisticModel) Version() string {
	return m.version
}
