package cmd

import (
	"errors"
	"fmt"

	"riskassess/config"
	"riskassess/models"
	"riskassess/service"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// errInvalidInput 校验提示已输出，只需以非零状态退出
var errInvalidInput = errors.New("invalid input")

type evaluateOptions struct {
	input     models.PatientInput
	threshold float64
	modelPath string
	asJSON    bool
}

func newEvaluateCmd() *cobra.Command {
	opts := &evaluateOptions{}
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate one set of metrics and print the report",
		Example: "  riskassess evaluate --glucose 148 --blood-pressure 72 " +
			"--weight 80 --height 170 --age 50",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd, opts)
		},
		SilenceUsage: true,
	}

	f := cmd.Flags()
	f.StringVar(&opts.input.Name, "name", "", "姓名（可选）")
	f.Float64Var(&opts.input.Glucose, "glucose", 0, "血糖 mg/dL")
	f.Float64Var(&opts.input.BloodPressure, "blood-pressure", 0, "血压 mmHg")
	f.Float64Var(&opts.input.Weight, "weight", 0, "体重 kg")
	f.Float64Var(&opts.input.HeightCm, "height", 0, "身高 cm")
	f.IntVar(&opts.input.Age, "age", 0, "年龄")
	f.Float64Var(&opts.threshold, "threshold", models.DefaultThreshold, "判定阈值 0-100")
	f.StringVar(&opts.modelPath, "model", "", "模型文件路径，默认取配置 model.path")
	f.BoolVar(&opts.asJSON, "json", false, "以 JSON 输出评估结果")
	for _, name := range []string{"glucose", "blood-pressure", "weight", "height", "age"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func runEvaluate(cmd *cobra.Command, opts *evaluateOptions) error {
	path := opts.modelPath
	if path == "" {
		configFile, _ := cmd.Flags().GetString("config")
		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}
		path = cfg.Model.Path
	}

	model, err := service.LoadClassifier(path)
	if err != nil {
		return err
	}
	engine := service.NewEngine(model)

	if err := engine.Validate(opts.input, opts.threshold); err != nil {
		if msgs, ok := service.AsValidationErrors(err); ok {
			for _, msg := range msgs {
				fmt.Fprintln(cmd.ErrOrStderr(), msg)
			}
			return errInvalidInput
		}
		return err
	}

	res := engine.Evaluate(opts.input, opts.threshold)
	out := cmd.OutOrStdout()
	if opts.asJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintln(out, service.VerdictMessage(res))
	fmt.Fprintln(out)
	fmt.Fprint(out, service.RenderReport(opts.input, res))
	return nil
}
