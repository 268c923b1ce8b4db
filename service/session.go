package service

import (
	"context"
	"sync"
	"time"

	"riskassess/models"

	"github.com/google/uuid"
)

// LastEvaluation 会话中最近一次成功的评估，用于报告和健康建议
type LastEvaluation struct {
	Input  models.PatientInput
	Result models.EvaluationResult
}

// Session 单个用户会话，独占自己的历史
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	history  *HistoryStore
	last     *LastEvaluation
	lastSeen time.Time
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		CreatedAt: now,
		history:   NewHistoryStore(),
		lastSeen:  now,
	}
}

// Evaluate 在会话内执行一次评估，同一会话的请求串行处理
func (s *Session) Evaluate(e *Engine, in models.PatientInput, threshold float64) (models.EvaluationResult, models.HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, rec, err := e.Submit(s.history, in, threshold)
	if err != nil {
		return res, rec, err
	}
	s.last = &LastEvaluation{Input: in, Result: res}
	return res, rec, nil
}

// Last 最近一次评估
func (s *Session) Last() (LastEvaluation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return LastEvaluation{}, false
	}
	return *s.last, true
}

// History 历史记录副本
func (s *Session) History() []models.HistoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.All()
}

// WithHistory 在会话锁内访问历史，用于导出
func (s *Session) WithHistory(fn func(h *HistoryStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.history)
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// SessionManager 管理所有会话，会话之间互不可见
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionManager ttl 为空闲过期时间，<=0 表示不过期
func NewSessionManager(ttl time.Duration) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Start 开启新会话
func (m *SessionManager) Start() *Session {
	s := newSession(uuid.NewString(), m.now())
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get 获取会话并刷新活跃时间，已过期的会话会被移除
func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}

	now := m.now()
	if m.expired(s, now) {
		m.End(id)
		return nil, false
	}
	s.touch(now)
	return s, true
}

// End 结束会话，历史随之丢弃
func (m *SessionManager) End(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// Sweep 清理过期会话，返回清理数量
func (m *SessionManager) Sweep() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if m.expired(s, now) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Run 定期清理，直到 ctx 结束
func (m *SessionManager) Run(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}

// Len 当前会话数
func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *SessionManager) expired(s *Session, now time.Time) bool {
	return m.ttl > 0 && now.Sub(s.idleSince()) > m.ttl
}
