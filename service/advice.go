package service

import "riskassess/models"

// Severity 建议的严重程度，同一指标只取最高的一条
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityUrgent
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityUrgent:
		return "urgent"
	default:
		return "unknown"
	}
}

// Metric 建议所针对的指标
type Metric string

const (
	MetricGlucose       Metric = "glucose"
	MetricBloodPressure Metric = "blood_pressure"
	MetricBMI           Metric = "bmi"
	MetricAge           Metric = "age"
)

// HealthyMessage 没有任何规则命中时的提示
const HealthyMessage = "All your metrics are within a healthy range. Keep it up!"

// AdviceContext 规则判断所需的数据
type AdviceContext struct {
	Input       models.PatientInput
	BMI         float64
	BMICategory models.BMICategory
}

// AdviceRule 一条建议规则
type AdviceRule struct {
	Metric   Metric
	Severity Severity
	Message  string
	Match    func(AdviceContext) bool
}

// AdviceRules 有序规则表，指标按首次出现的顺序输出
type AdviceRules []AdviceRule

func glucoseAbove(v float64) func(AdviceContext) bool {
	return func(c AdviceContext) bool { return c.Input.Glucose > v }
}

func glucoseBelow(v float64) func(AdviceContext) bool {
	return func(c AdviceContext) bool { return c.Input.Glucose < v }
}

func pressureAbove(v float64) func(AdviceContext) bool {
	return func(c AdviceContext) bool { return c.Input.BloodPressure > v }
}

func pressureBelow(v float64) func(AdviceContext) bool {
	return func(c AdviceContext) bool { return c.Input.BloodPressure < v }
}

func bmiIs(cat models.BMICategory) func(AdviceContext) bool {
	return func(c AdviceContext) bool { return c.BMICategory == cat }
}

// DefaultAdviceRules 分级规则表
var DefaultAdviceRules = AdviceRules{
	{MetricGlucose, SeverityUrgent, "Very High Glucose: Consult a doctor.", glucoseAbove(180)},
	{MetricGlucose, SeverityWarning, "High Glucose: Limit sugar and carbs.", glucoseAbove(140)},
	{MetricGlucose, SeverityInfo, "Low Glucose: Eat a healthy snack.", glucoseBelow(70)},

	{MetricBloodPressure, SeverityUrgent, "Very High Blood Pressure: Requires medical attention.", pressureAbove(140)},
	{MetricBloodPressure, SeverityWarning, "High Blood Pressure: Reduce sodium and stress.", pressureAbove(130)},
	{MetricBloodPressure, SeverityInfo, "Low Blood Pressure: Stay hydrated.", pressureBelow(60)},

	{MetricBMI, SeverityUrgent, "Severely Obese: Consult a specialist.", bmiIs(models.BMISeverelyObese)},
	{MetricBMI, SeverityWarning, "Obese: Improve diet and exercise.", bmiIs(models.BMIObese)},
	{MetricBMI, SeverityInfo, "Overweight: Start light workouts.", bmiIs(models.BMIOverweight)},
	{MetricBMI, SeverityInfo, "Underweight: Increase nutritious calorie intake.", bmiIs(models.BMIUnderweight)},

	{MetricAge, SeverityInfo, "Over 50? Get screened regularly.", func(c AdviceContext) bool { return c.Input.Age > 50 }},
}

// Generate 每个指标取一条最严重的命中规则；同级时取表中靠前的
func (rules AdviceRules) Generate(ctx AdviceContext) []string {
	var order []Metric
	best := make(map[Metric]int)
	for i, r := range rules {
		if _, seen := best[r.Metric]; !seen {
			order = append(order, r.Metric)
			best[r.Metric] = -1
		}
		if !r.Match(ctx) {
			continue
		}
		if j := best[r.Metric]; j < 0 || r.Severity > rules[j].Severity {
			best[r.Metric] = i
		}
	}

	var advice []string
	for _, m := range order {
		if i := best[m]; i >= 0 {
			advice = append(advice, rules[i].Message)
		}
	}
	if len(advice) == 0 {
		return []string{HealthyMessage}
	}
	return advice
}
