package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "riskassess",
	Short: "AI diabetes risk assessment",
	Long:  "riskassess 根据血糖、血压、BMI 和年龄评估糖尿病风险，提供 HTTP 服务和命令行评估。",
	// 不带子命令时直接启动服务
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
	SilenceUsage: true,
}

// Execute 执行根命令
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "外部配置文件路径（可选）")
	rootCmd.Flags().StringP("port", "p", "", "监听端口，如: 8080 或 :8080")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newEvaluateCmd())
	rootCmd.AddCommand(versionCmd)
}
