package model

import "time"

// 消息发送方
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// 客户端帧类型
const (
	FrameChat       = "CHAT"
	FrameQuickReply = "QUICK_REPLY"
	FrameHeartbeat  = "HEARTBEAT"
)

// 服务端帧类型
const (
	FrameMessage = "MESSAGE"
	FrameTyping  = "TYPING"
	FrameError   = "ERROR"
)

// Message 聊天记录中的一条消息，追加后不再修改
type Message struct {
	ID           string    `json:"id"`
	Text         string    `json:"text"`
	Sender       string    `json:"sender"` // user, bot
	Timestamp    time.Time `json:"timestamp"`
	QuickReplies []string  `json:"quickReplies,omitempty"`
}

// ClientFrame 客户端发来的 WebSocket 帧
type ClientFrame struct {
	Type    string `json:"type"` // CHAT, QUICK_REPLY, HEARTBEAT
	Content string `json:"content,omitempty"`
}

// ServerFrame 推送给客户端的 WebSocket 帧
type ServerFrame struct {
	Type    string   `json:"type"` // MESSAGE, TYPING, ERROR
	Message *Message `json:"message,omitempty"`
	Typing  *bool    `json:"typing,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// MessageFrame 消息帧
func MessageFrame(msg Message) ServerFrame {
	return ServerFrame{Type: FrameMessage, Message: &msg}
}

// TypingFrame 输入状态帧
func TypingFrame(typing bool) ServerFrame {
	return ServerFrame{Type: FrameTyping, Typing: &typing}
}

// ErrorFrame 错误帧
func ErrorFrame(err string) ServerFrame {
	return ServerFrame{Type: FrameError, Error: err}
}
