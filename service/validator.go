package service

import (
	"errors"
	"strings"

	"riskassess/models"

	"github.com/go-playground/validator/v10"
)

// ValidationErrors 输入校验失败的全部提示，每条可直接展示给用户
type ValidationErrors []string

func (e ValidationErrors) Error() string {
	return "validation failed: " + strings.Join(e, " ")
}

// AsValidationErrors 从 err 中取出 ValidationErrors
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// 字段顺序即提示顺序
type checkedInput struct {
	Glucose       float64 `validate:"gte=40,lte=300"`
	BloodPressure float64 `validate:"gte=20,lte=200"`
	Weight        float64 `validate:"gte=20,lte=200"`
	HeightCm      float64 `validate:"gte=100,lte=220"`
	BMI           float64 `validate:"gte=10,lte=70"`
	Age           int     `validate:"gte=1,lte=120"`
	Threshold     float64 `validate:"gte=0,lte=100"`
}

var fieldMessages = map[string]string{
	"Glucose":       "Glucose must be between 40–300.",
	"BloodPressure": "Blood Pressure must be between 20–200.",
	"Weight":        "Weight must be between 20–200 kg.",
	"HeightCm":      "Height must be between 100–220 cm.",
	"BMI":           "BMI must be between 10–70.",
	"Age":           "Age must be between 1–120.",
	"Threshold":     "Decision threshold must be between 0–100.",
}

// MessageNameRequired 要求填写姓名时的提示
const MessageNameRequired = "Name is required."

// InputValidator 评估前的范围校验，所有规则都会执行，不提前返回
type InputValidator struct {
	validate    *validator.Validate
	requireName bool
}

// ValidatorOption 校验器选项
type ValidatorOption func(*InputValidator)

// RequireName 要求 Name 去除空白后非空
func RequireName() ValidatorOption {
	return func(v *InputValidator) {
		v.requireName = true
	}
}

// NewInputValidator 创建校验器
func NewInputValidator(opts ...ValidatorOption) *InputValidator {
	v := &InputValidator{validate: validator.New()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate 校验输入与阈值，通过返回 nil，否则返回 ValidationErrors
func (v *InputValidator) Validate(in models.PatientInput, threshold float64) error {
	checked := checkedInput{
		Glucose:       in.Glucose,
		BloodPressure: in.BloodPressure,
		Weight:        in.Weight,
		HeightCm:      in.HeightCm,
		BMI:           ComputeBMI(in.Weight, in.HeightCm),
		Age:           in.Age,
		Threshold:     threshold,
	}

	var msgs ValidationErrors
	if err := v.validate.Struct(checked); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			msg, ok := fieldMessages[fe.StructField()]
			if !ok {
				msg = fe.StructField() + " is invalid."
			}
			msgs = append(msgs, msg)
		}
	}

	if v.requireName {
		if err := v.validate.Var(strings.TrimSpace(in.Name), "required"); err != nil {
			msgs = append(msgs, MessageNameRequired)
		}
	}

	if len(msgs) > 0 {
		return msgs
	}
	return nil
}
