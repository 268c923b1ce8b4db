package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"riskassess/config"
	"riskassess/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initSessionTestConfig(mode string) config.SessionConfig {
	config.GlobalConfig = &config.Config{
		Server:  config.ServerConfig{Mode: mode},
		Session: config.SessionConfig{Secret: "test-session-secret", CookieName: "risk_session", ExpireTime: time.Hour},
	}
	InitJWT(config.GlobalConfig)
	return config.GlobalConfig.Session
}

func TestGenerateAndParseToken(t *testing.T) {
	initSessionTestConfig("debug")
	defer func() { config.GlobalConfig = nil }()

	token, err := GenerateToken("sid-1", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", claims.SessionID)

	_, err = ParseToken("")
	assert.Error(t, err)
	_, err = ParseToken("not.a.valid.jwt")
	assert.Error(t, err)

	// 过期令牌
	expired, err := GenerateToken("sid-2", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(expired)
	assert.Error(t, err)

	// 换密钥后旧令牌失效
	InitJWT(&config.Config{Session: config.SessionConfig{Secret: "other"}})
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestInitJWT_DefaultSecret(t *testing.T) {
	InitJWT(&config.Config{})
	token, err := GenerateToken("sid", time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(token)
	assert.NoError(t, err)
}

func newSessionRouter(manager *service.SessionManager, cfg config.SessionConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SessionAuth(manager, cfg))
	router.GET("/whoami", func(c *gin.Context) {
		c.String(200, CurrentSession(c).ID)
	})
	return router
}

func TestSessionAuth_IssuesAndReuses(t *testing.T) {
	cfg := initSessionTestConfig("debug")
	defer func() { config.GlobalConfig = nil }()
	manager := service.NewSessionManager(time.Hour)
	router := newSessionRouter(manager, cfg)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/whoami", nil))
	require.Equal(t, 200, w.Code)
	first := w.Body.String()
	assert.NotEmpty(t, first)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "risk_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.False(t, cookies[0].Secure)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: cookies[0].Name, Value: cookies[0].Value})
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, first, w2.Body.String())
	assert.Equal(t, 1, manager.Len())

	// 每次访问都续期令牌，会话不变
	refreshed := w2.Result().Cookies()
	require.Len(t, refreshed, 1)
	assert.Equal(t, int(time.Hour.Seconds()), refreshed[0].MaxAge)
	claims, err := ParseToken(refreshed[0].Value)
	require.NoError(t, err)
	assert.Equal(t, first, claims.SessionID)
}

func TestSessionAuth_TokenSlidesWithActivity(t *testing.T) {
	cfg := initSessionTestConfig("debug")
	defer func() { config.GlobalConfig = nil }()
	manager := service.NewSessionManager(time.Hour)
	router := newSessionRouter(manager, cfg)

	sess := manager.Start()
	// 令牌签发于 50 分钟前，剩余 10 分钟
	old := SessionClaims{
		SessionID: sess.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-50 * time.Minute)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(10 * time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, old).SignedString(jwtSecret)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "risk_session", Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, sess.ID, w.Body.String())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	claims, err := ParseToken(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, claims.SessionID)
	assert.True(t, claims.ExpiresAt.After(time.Now().Add(50*time.Minute)))
}

func TestSessionAuth_InvalidOrUnknown(t *testing.T) {
	cfg := initSessionTestConfig("release")
	defer func() { config.GlobalConfig = nil }()
	manager := service.NewSessionManager(time.Hour)
	router := newSessionRouter(manager, cfg)

	// 篡改令牌
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "risk_session", Value: "tampered.token.value"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)

	// 合法令牌但会话已结束
	token, err := GenerateToken("gone", time.Hour)
	require.NoError(t, err)
	req2 := httptest.NewRequest("GET", "/whoami", nil)
	req2.AddCookie(&http.Cookie{Name: "risk_session", Value: token})
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req2)
	assert.NotEqual(t, "gone", w2.Body.String())
	assert.Len(t, w2.Result().Cookies(), 1)
	assert.Equal(t, 2, manager.Len())
}

func TestCurrentSession_Missing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, CurrentSession(c))
}
