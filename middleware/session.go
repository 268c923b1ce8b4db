package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"riskassess/config"
	"riskassess/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextSessionKey gin.Context 中保存当前会话的 key
const ContextSessionKey = "session"

const defaultSessionSecret = "riskassess-default-session-secret"

var jwtSecret []byte

// SessionClaims 会话令牌声明
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// InitJWT 初始化会话令牌签名密钥
func InitJWT(cfg *config.Config) {
	secret := cfg.Session.Secret
	if secret == "" {
		secret = defaultSessionSecret
	}
	jwtSecret = []byte(secret)
}

// GenerateToken 为会话签发令牌
func GenerateToken(sessionID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "riskassess",
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
}

// ParseToken 校验并解析会话令牌
func ParseToken(tokenString string) (*SessionClaims, error) {
	if tokenString == "" {
		return nil, errors.New("empty token")
	}
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// SessionAuth 从 Cookie 恢复会话，令牌无效、过期或会话已不存在时开启新会话
func SessionAuth(manager *service.SessionManager, cfg config.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sess *service.Session
		if raw, err := c.Cookie(cfg.CookieName); err == nil {
			if claims, err := ParseToken(raw); err == nil {
				sess, _ = manager.Get(claims.SessionID)
			}
		}
		if sess != nil {
			// 会话按空闲时间过期，令牌与 Cookie 随每次访问续期
			if err := setSessionCookie(c, sess.ID, cfg); err != nil {
				sess = nil
			}
		}
		if sess == nil {
			var err error
			sess, err = IssueSession(c, manager, cfg)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"code":    http.StatusInternalServerError,
					"message": "failed to start session",
				})
				return
			}
		}
		c.Set(ContextSessionKey, sess)
		c.Next()
	}
}

// IssueSession 开启新会话并写入 Cookie
func IssueSession(c *gin.Context, manager *service.SessionManager, cfg config.SessionConfig) (*service.Session, error) {
	sess := manager.Start()
	if err := setSessionCookie(c, sess.ID, cfg); err != nil {
		manager.End(sess.ID)
		return nil, err
	}
	c.Set(ContextSessionKey, sess)
	return sess, nil
}

// setSessionCookie 签发令牌并写入 Cookie，有效期从现在起算
func setSessionCookie(c *gin.Context, sessionID string, cfg config.SessionConfig) error {
	token, err := GenerateToken(sessionID, cfg.ExpireTime)
	if err != nil {
		return err
	}
	secure, sameSite := getCookieOptions()
	c.SetSameSite(sameSite)
	c.SetCookie(cfg.CookieName, token, int(cfg.ExpireTime.Seconds()), "/", "", secure, true)
	return nil
}

// CurrentSession 获取当前请求的会话
func CurrentSession(c *gin.Context) *service.Session {
	if v, ok := c.Get(ContextSessionKey); ok {
		if sess, ok := v.(*service.Session); ok {
			return sess
		}
	}
	return nil
}

// getCookieOptions 根据运行模式返回 Cookie 的安全选项
// release 模式下启用 Secure（仅 HTTPS 传输），SameSite=Lax
func getCookieOptions() (secure bool, sameSite http.SameSite) {
	if cfg := config.GlobalConfig; cfg != nil && cfg.Server.Mode == "release" {
		secure = true
	}
	sameSite = http.SameSiteLaxMode
	return
}
