package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bucketpro/bucketpro-go/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrBusy 上一条回复尚未发出
var ErrBusy = errors.New("busy")

// WelcomeText 会话开始时的欢迎语
const WelcomeText = "Hello! I'm Alex from BucketPro Solutions. I'm here to help you find the perfect packaging solution. What can I do for you today?"

// WelcomeQuickReplies 欢迎语的快捷回复
var WelcomeQuickReplies = []string{"View Products", "Get Quote", "Learn About Quality", "Custom Solutions"}

// ChatService 聊天服务
type ChatService struct {
	sessionService    *SessionService
	classifierService *ClassifierService
	typingDelay       time.Duration
	now               func() time.Time
	logger            *zap.Logger
}

// NewChatService 创建聊天服务
func NewChatService(sessionService *SessionService, classifierService *ClassifierService, typingDelay time.Duration, logger *zap.Logger) *ChatService {
	return &ChatService{
		sessionService:    sessionService,
		classifierService: classifierService,
		typingDelay:       typingDelay,
		now:               time.Now,
		logger:            logger,
	}
}

// Welcome 记录并推送欢迎语
func (s *ChatService) Welcome(sessionID string) error {
	session, err := s.sessionService.Get(sessionID)
	if err != nil {
		return err
	}

	msg := s.newMessage(WelcomeText, model.SenderBot, WelcomeQuickReplies)
	session.Append(msg)
	return s.sessionService.Send(sessionID, model.MessageFrame(msg))
}

// HandleUserMessage 处理用户消息：空输入忽略，回复进行中返回 ErrBusy，否则在输入延迟后推送回复
func (s *ChatService) HandleUserMessage(ctx context.Context, sessionID, content string) error {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	session, err := s.sessionService.Get(sessionID)
	if err != nil {
		return err
	}

	if !session.TryBegin() {
		s.logger.Debug("回复进行中，拒绝新消息", zap.String("sessionId", sessionID))
		return ErrBusy
	}

	s.logger.Info("处理用户消息",
		zap.String("sessionId", sessionID),
		zap.Int("length", len(content)))

	session.Append(s.newMessage(content, model.SenderUser, nil))

	turn := s.classifierService.Converse(content, session.Conversation())
	session.SetConversation(turn.Context)

	if err := s.sessionService.Send(sessionID, model.TypingFrame(true)); err != nil {
		session.End()
		return err
	}

	go s.deliver(ctx, session, s.newMessage(turn.Text, model.SenderBot, turn.QuickReplies))
	return nil
}

// deliver 等待输入延迟后推送回复；会话关闭或 ctx 取消时放弃
func (s *ChatService) deliver(ctx context.Context, session *model.ChatSession, reply model.Message) {
	defer session.End()

	timer := time.NewTimer(s.typingDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-session.Done():
		s.logger.Debug("会话已关闭，取消回复", zap.String("sessionId", session.SessionID))
		return
	case <-ctx.Done():
		s.logger.Debug("回复已取消", zap.String("sessionId", session.SessionID), zap.Error(ctx.Err()))
		return
	}

	session.Append(reply)
	if err := s.sessionService.Send(session.SessionID, model.MessageFrame(reply)); err != nil {
		return
	}
	s.sessionService.Send(session.SessionID, model.TypingFrame(false))
}

func (s *ChatService) newMessage(text, sender string, quickReplies []string) model.Message {
	msg := model.Message{
		ID:        uuid.New().String(),
		Text:      text,
		Sender:    sender,
		Timestamp: s.now(),
	}
	if len(quickReplies) > 0 {
		msg.QuickReplies = append([]string(nil), quickReplies...)
	}
	return msg
}
