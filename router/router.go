package router

import (
	"net/http"
	"strings"

	"riskassess/api"
	"riskassess/config"
	_ "riskassess/docs"
	"riskassess/middleware"
	"riskassess/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Deps 路由依赖的服务
type Deps struct {
	Engine       *service.Engine
	Sessions     *service.SessionManager
	Email        *service.EmailService
	Log          *zap.Logger
	ModelVersion string
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	// 限流按客户端 IP 计数，只信任配置的代理转发的 X-Forwarded-For
	if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		log.Warn("可信代理配置无效，不信任任何代理", zap.Strings("trusted_proxies", cfg.Server.TrustedProxies), zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(middleware.RequestLogger(log), gin.Recovery())

	// CORS 中间件
	r.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.SessionAuth(deps.Sessions, cfg.Session))
	{
		evaluateHandler := api.NewEvaluateHandler(deps.Engine, log)
		v1.POST("/evaluate",
			middleware.RateLimit(cfg.RateLimit.MaxAttempts, cfg.RateLimit.Window),
			evaluateHandler.Evaluate)

		// 历史与导出
		historyHandler := api.NewHistoryHandler(log)
		history := v1.Group("/history")
		{
			history.GET("", historyHandler.List)
			history.GET("/export/csv", historyHandler.ExportCSV)
			history.GET("/export/excel", historyHandler.ExportExcel)
			history.GET("/export/json", historyHandler.ExportJSON)
		}

		// 报告
		reportHandler := api.NewReportHandler(deps.Email, log)
		v1.GET("/report", reportHandler.Download)
		v1.POST("/report/email", reportHandler.Email)

		// 建议与说明
		tipsHandler := api.NewTipsHandler()
		v1.GET("/tips", tipsHandler.Tips)
		v1.GET("/guidelines", tipsHandler.Guidelines)

		// 会话
		sessionHandler := api.NewSessionHandler(deps.Sessions, cfg.Session, log)
		v1.GET("/session", sessionHandler.Current)
		v1.POST("/session/reset", sessionHandler.Reset)
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":        "ok",
			"model_version": deps.ModelVersion,
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件，只对白名单内的来源返回跨域头
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimRight(o, "/")] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}

		c.Writer.Header().Add("Vary", "Origin")
		if _, ok := allowed[origin]; !ok {
			if c.Request.Method == http.MethodOptions {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			c.Next()
			return
		}

		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
