package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"riskassess/config"
	"riskassess/logger"
	"riskassess/middleware"
	"riskassess/router"
	"riskassess/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const sweepInterval = 5 * time.Minute

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
	cmd.Flags().StringP("port", "p", "", "监听端口，如: 8080 或 :8080")
	return cmd
}

// normalizePort 自动添加冒号前缀
func normalizePort(port string) string {
	if port == "" || strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func runServe(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString("config")

	// 加载配置（内置配置 + 可选的外部配置覆盖）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	// 命令行参数覆盖端口配置
	if port, _ := cmd.Flags().GetString("port"); port != "" {
		cfg.Server.Port = normalizePort(port)
	}

	config.PrintConfig()

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return err
	}
	defer log.Sync()

	// 模型不可用时拒绝启动
	model, err := service.LoadClassifier(cfg.Model.Path)
	if err != nil {
		log.Error("加载分类模型失败", zap.String("path", cfg.Model.Path), zap.Error(err))
		return err
	}
	log.Info("分类模型已加载", zap.String("path", cfg.Model.Path), zap.String("version", model.Version()))

	// 初始化 JWT
	middleware.InitJWT(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessions := service.NewSessionManager(cfg.Session.ExpireTime)
	go sessions.Run(ctx, sweepInterval, func(removed int) {
		log.Debug("清理过期会话", zap.Int("removed", removed))
	})

	email := service.NewEmailService(&cfg.Email)

	r := router.SetupRouter(cfg, router.Deps{
		Engine:       service.NewEngine(model),
		Sessions:     sessions,
		Email:        email,
		Log:          log,
		ModelVersion: model.Version(),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("服务已启动",
			zap.String("api", fmt.Sprintf("http://localhost%s/api/v1", cfg.Server.Port)),
			zap.String("swagger", fmt.Sprintf("http://localhost%s/swagger/index.html", cfg.Server.Port)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("服务器启动失败: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("正在关闭服务")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
