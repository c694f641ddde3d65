package model

import (
	"sync"
	"time"

	"github.com/bucketpro/bucketpro-go/internal/intent"
)

// Conn 会话使用的连接，*websocket.Conn 满足该接口
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// ChatSession 聊天组件会话
type ChatSession struct {
	SessionID string
	ClientIP  string
	Conn      Conn

	LastHeartbeat time.Time
	MissedBeats   int

	conversation intent.Context
	transcript   []Message
	busy         bool
	done         chan struct{}
	closeOnce    sync.Once

	mu      sync.RWMutex // 保护会话字段
	writeMu sync.Mutex   // 串行化连接写入
}

// NewChatSession 创建会话
func NewChatSession(sessionID, clientIP string, conn Conn) *ChatSession {
	return &ChatSession{
		SessionID:     sessionID,
		ClientIP:      clientIP,
		Conn:          conn,
		LastHeartbeat: time.Now(),
		conversation:  intent.NewContext(),
		done:          make(chan struct{}),
	}
}

// UpdateHeartbeat 更新心跳时间
func (s *ChatSession) UpdateHeartbeat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastHeartbeat = time.Now()
	s.MissedBeats = 0
}

// SinceHeartbeat 距上次心跳的时长
func (s *ChatSession) SinceHeartbeat(now time.Time) time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return now.Sub(s.LastHeartbeat)
}

// IncrementMissedBeats 增加丢失心跳次数，返回当前次数
func (s *ChatSession) IncrementMissedBeats() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.MissedBeats++
	return s.MissedBeats
}

// ShouldBeCleaned 判断是否应该清理
func (s *ChatSession) ShouldBeCleaned() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.MissedBeats >= 3
}

// Conversation 当前对话上下文
func (s *ChatSession) Conversation() intent.Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conversation
}

// SetConversation 更新对话上下文
func (s *ChatSession) SetConversation(ctx intent.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversation = ctx
}

// Append 追加一条消息到聊天记录
func (s *ChatSession) Append(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = append(s.transcript, msg)
}

// Transcript 聊天记录副本
func (s *ChatSession) Transcript() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// TryBegin 标记回复进行中；已有回复进行中时返回 false
func (s *ChatSession) TryBegin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return false
	}
	s.busy = true
	return true
}

// End 清除回复进行中标记
func (s *ChatSession) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
}

// Busy 是否有回复进行中
func (s *ChatSession) Busy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.busy
}

// Done 会话关闭时关闭的通道
func (s *ChatSession) Done() <-chan struct{} {
	return s.done
}

// Close 关闭会话和连接，可重复调用
func (s *ChatSession) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		if s.Conn != nil {
			s.Conn.Close()
		}
	})
}

// WriteMessage 向连接写入帧（线程安全）
func (s *ChatSession) WriteMessage(message interface{}) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.Conn.WriteJSON(message)
}
