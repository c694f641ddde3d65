package service

import (
	"errors"
	"sync"
	"time"

	"github.com/bucketpro/bucketpro-go/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 心跳参数
const (
	HeartbeatInterval = 30 * time.Second
	HeartbeatTimeout  = 60 * time.Second
)

var (
	ErrSessionNotFound = errors.New("会话不存在")
)

// SessionService 聊天会话管理服务
type SessionService struct {
	sessions map[string]*model.ChatSession // sessionId -> session
	mu       sync.RWMutex                  // 读写锁保护
	stop     chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

// NewSessionService 创建会话管理服务并启动心跳检测
func NewSessionService(logger *zap.Logger) *SessionService {
	s := &SessionService{
		sessions: make(map[string]*model.ChatSession),
		stop:     make(chan struct{}),
		logger:   logger,
	}

	go s.heartbeatChecker()

	return s
}

// Register 为新连接注册会话
func (s *SessionService) Register(conn model.Conn, clientIP string) *model.ChatSession {
	session := model.NewChatSession(uuid.New().String(), clientIP, conn)

	s.mu.Lock()
	s.sessions[session.SessionID] = session
	s.mu.Unlock()

	s.logger.Info("聊天会话注册成功",
		zap.String("sessionId", session.SessionID),
		zap.String("clientIp", clientIP))

	return session
}

// Get 获取会话
func (s *SessionService) Get(sessionID string) (*model.ChatSession, error) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Send 向指定会话推送帧
func (s *SessionService) Send(sessionID string, frame interface{}) error {
	session, err := s.Get(sessionID)
	if err != nil {
		s.logger.Warn("会话不在线，消息发送失败", zap.String("sessionId", sessionID))
		return err
	}

	if err := session.WriteMessage(frame); err != nil {
		s.logger.Error("消息发送失败",
			zap.String("sessionId", sessionID),
			zap.Error(err))
		// 异步清理无效连接
		go s.Remove(sessionID)
		return err
	}

	s.logger.Debug("消息发送成功", zap.String("sessionId", sessionID))
	return nil
}

// UpdateHeartbeat 更新心跳时间
func (s *SessionService) UpdateHeartbeat(sessionID string) bool {
	session, err := s.Get(sessionID)
	if err != nil {
		return false
	}

	session.UpdateHeartbeat()
	s.logger.Debug("心跳已更新", zap.String("sessionId", sessionID))
	return true
}

// Remove 移除并关闭会话，进行中的回复随之取消
func (s *SessionService) Remove(sessionID string) {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if ok {
		session.Close()
		s.logger.Info("聊天会话已移除", zap.String("sessionId", sessionID))
	}
}

// OnlineCount 在线会话数
func (s *SessionService) OnlineCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close 停止心跳检测并关闭所有会话
func (s *SessionService) Close() {
	s.stopOnce.Do(func() { close(s.stop) })

	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*model.ChatSession)
	s.mu.Unlock()

	for _, session := range sessions {
		session.Close()
	}
}

// heartbeatChecker 心跳检测器
func (s *SessionService) heartbeatChecker() {
	ticker := time.NewTicker(HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.checkHeartbeats(now)
		}
	}
}

// checkHeartbeats 超时会话累计丢失心跳，达到上限后清理
func (s *SessionService) checkHeartbeats(now time.Time) {
	var expired []*model.ChatSession

	s.mu.Lock()
	for sessionID, session := range s.sessions {
		if session.SinceHeartbeat(now) <= HeartbeatTimeout {
			continue
		}

		missed := session.IncrementMissedBeats()
		if session.ShouldBeCleaned() {
			s.logger.Info("清理无效会话",
				zap.String("sessionId", sessionID),
				zap.Int("missedBeats", missed))
			delete(s.sessions, sessionID)
			expired = append(expired, session)
		} else {
			s.logger.Warn("会话心跳丢失",
				zap.String("sessionId", sessionID),
				zap.Int("missedBeats", missed))
		}
	}
	s.mu.Unlock()

	for _, session := range expired {
		session.Close()
	}
}
