package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"riskassess/config"
	"riskassess/middleware"
	"riskassess/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// testClient 携带会话 Cookie 的测试客户端
type testClient struct {
	t       *testing.T
	router  *gin.Engine
	cookies []*http.Cookie
}

func (tc *testClient) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range tc.cookies {
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}
	w := httptest.NewRecorder()
	tc.router.ServeHTTP(w, req)
	if set := w.Result().Cookies(); len(set) > 0 {
		tc.cookies = set[len(set)-1:]
	}
	return w
}

type testEnv struct {
	manager *service.SessionManager
	email   *service.EmailService
	router  *gin.Engine
}

func setupTestEnv(t *testing.T, probability float64) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: "debug"},
		Session: config.SessionConfig{Secret: "test-secret", CookieName: "risk_session", ExpireTime: time.Hour},
	}
	config.GlobalConfig = cfg
	middleware.InitJWT(cfg)
	t.Cleanup(func() { config.GlobalConfig = nil })

	engine := service.NewEngine(service.ClassifierFunc(func(service.Features) float64 { return probability }))
	manager := service.NewSessionManager(time.Hour)
	email := service.NewEmailService(&config.EmailConfig{})
	log := zap.NewNop()

	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.Use(middleware.SessionAuth(manager, cfg.Session))
	{
		v1.POST("/evaluate", NewEvaluateHandler(engine, log).Evaluate)

		history := NewHistoryHandler(log)
		v1.GET("/history", history.List)
		v1.GET("/history/export/csv", history.ExportCSV)
		v1.GET("/history/export/excel", history.ExportExcel)
		v1.GET("/history/export/json", history.ExportJSON)

		report := NewReportHandler(email, log)
		v1.GET("/report", report.Download)
		v1.POST("/report/email", report.Email)

		tips := NewTipsHandler()
		v1.GET("/tips", tips.Tips)
		v1.GET("/guidelines", tips.Guidelines)

		sessions := NewSessionHandler(manager, cfg.Session, log)
		v1.GET("/session", sessions.Current)
		v1.POST("/session/reset", sessions.Reset)
	}

	return &testEnv{manager: manager, email: email, router: r}
}

func (e *testEnv) client(t *testing.T) *testClient {
	return &testClient{t: t, router: e.router}
}

const validBody = `{"glucose":100,"blood_pressure":70,"weight":70,"height_cm":170,"age":30,"threshold":50}`
