package main

import (
	"os"

	"riskassess/cmd"
)

// @title AI 糖尿病风险评估 API
// @version 1.0
// @description 根据血糖、血压、BMI 和年龄评估糖尿病风险，记录会话历史并导出报告
// @host localhost:8080
// @BasePath /

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
