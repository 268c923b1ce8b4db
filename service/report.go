package service

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"riskassess/models"
)

// RenderReport 生成纯文本评估报告，仅用于展示和下载
func RenderReport(in models.PatientInput, res models.EvaluationResult) string {
	var b strings.Builder
	b.WriteString("AI Diabetes Risk Report\n")
	b.WriteString("-----------------------\n")
	if name := strings.TrimSpace(in.Name); name != "" {
		fmt.Fprintf(&b, "Name: %s\n", name)
	}
	fmt.Fprintf(&b, "Glucose: %s\n", formatFloat(in.Glucose))
	fmt.Fprintf(&b, "Blood Pressure: %s\n", formatFloat(in.BloodPressure))
	fmt.Fprintf(&b, "BMI: %.2f (%s)\n", res.BMI, res.BMICategory)
	fmt.Fprintf(&b, "Age: %d\n", in.Age)
	fmt.Fprintf(&b, "Decision Threshold: %s%%\n", formatFloat(res.Threshold))
	fmt.Fprintf(&b, "Prediction: %s\n", res.PredictionLabel())
	fmt.Fprintf(&b, "Confidence: %.2f%%\n", res.ProbabilityPositive)
	fmt.Fprintf(&b, "Risk Level: %s\n", res.RiskTier)
	b.WriteString("\nAdvice:\n")
	for _, a := range res.Advice {
		fmt.Fprintf(&b, "- %s\n", a)
	}
	return b.String()
}

// VerdictMessage 结论提示语
func VerdictMessage(res models.EvaluationResult) string {
	if res.PredictedPositive {
		return fmt.Sprintf("Likely diabetic. Confidence: %.2f%% (Threshold: %s%%) Risk: %s",
			res.VerdictConfidence(), formatFloat(res.Threshold), res.RiskTier)
	}
	return fmt.Sprintf("Not likely diabetic. Confidence: %.2f%% (Threshold: %s%%) Risk: %s",
		res.VerdictConfidence(), formatFloat(res.Threshold), res.RiskTier)
}

var quotes = []string{
	"“Take care of your body. It’s the only place you have to live.” – Jim Rohn",
	"“Health is not valued until sickness comes.” – Thomas Fuller",
	"“It is health that is real wealth and not pieces of gold and silver.” – Mahatma Gandhi",
	"“Your body hears everything your mind says.” – Naomi Judd",
	"“A fit body, a calm mind, a house full of love. These things cannot be bought – they must be earned.” – Naval Ravikant",
	"“An ounce of prevention is worth a pound of cure.” – Benjamin Franklin",
	"“The greatest wealth is health.” – Virgil",
	"“Don’t dig your grave with your own knife and fork.” – English Proverb",
	"“Discipline is the bridge between goals and accomplishment.” – Jim Rohn",
	"“Self-care is not a luxury, it is a necessity.” – Audre Lorde",
}

// WellnessTips 通用健康建议
var WellnessTips = []string{
	"Stay hydrated",
	"Exercise 150 minutes/week",
	"Sleep 7–8 hours/night",
	"Eat fibre-rich foods",
	"Avoid sugary drinks",
	"Don’t skip meals",
	"Manage stress",
	"Take breaks from screens",
	"Practise mindful eating",
	"Control portion sizes",
	"Know your family health history",
	"Get regular check-ups",
}

// MessageNoPrediction 尚未评估时的提示
const MessageNoPrediction = "Make a prediction to get personalised tips."

// Tips 健康建议页数据
type Tips struct {
	Message  string   `json:"message,omitempty"`
	Quote    string   `json:"quote,omitempty"`
	Advice   []string `json:"advice,omitempty"`
	Wellness []string `json:"wellness,omitempty"`
}

// BuildTips 根据最近一次评估生成建议，ok=false 表示会话内还没有评估
func BuildTips(last LastEvaluation, ok bool, pick func(n int) int) Tips {
	if !ok {
		return Tips{Message: MessageNoPrediction}
	}
	if pick == nil {
		pick = rand.IntN
	}
	return Tips{
		Quote:    quotes[pick(len(quotes))],
		Advice:   cloneStrings(last.Result.Advice),
		Wellness: cloneStrings(WellnessTips),
	}
}

// Guideline 单项输入的参考说明
type Guideline struct {
	Field       string  `json:"field"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	HealthyMin  float64 `json:"healthy_min"`
	HealthyMax  float64 `json:"healthy_max"`
	Unit        string  `json:"unit,omitempty"`
	Explanation string  `json:"explanation"`
}

// Guidelines 输入范围（可接受范围 + 一般健康范围）
func Guidelines() []Guideline {
	return []Guideline{
		{"glucose", 40, 300, 70, 140, "mg/dL", "Elevated glucose may indicate diabetes."},
		{"blood_pressure", 20, 200, 60, 120, "mmHg", "High BP increases diabetes complications."},
		{"bmi", 10, 70, 18.5, 24.9, "kg/m²", "Obesity is a strong diabetes risk factor."},
		{"age", 1, 120, 1, 120, "years", "Risk increases after age 45."},
	}
}
