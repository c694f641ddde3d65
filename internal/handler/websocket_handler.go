package handler

import (
	"errors"
	"net/http"

	"github.com/bucketpro/bucketpro-go/internal/model"
	"github.com/bucketpro/bucketpro-go/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WebSocketHandler 聊天组件 WebSocket 处理器
type WebSocketHandler struct {
	upgrader       websocket.Upgrader
	sessionService *service.SessionService
	chatService    *service.ChatService
	logger         *zap.Logger
}

// NewWebSocketHandler 创建 WebSocket 处理器；allowOrigins 为空时不检查 Origin
func NewWebSocketHandler(sessionService *service.SessionService, chatService *service.ChatService, allowOrigins []string, logger *zap.Logger) *WebSocketHandler {
	allowed := make(map[string]bool, len(allowOrigins))
	for _, o := range allowOrigins {
		allowed[o] = true
	}

	return &WebSocketHandler{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || origin == "" || allowed[origin]
			},
		},
		sessionService: sessionService,
		chatService:    chatService,
		logger:         logger,
	}
}

// HandleWebSocket WebSocket 连接入口
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("WebSocket 升级失败", zap.Error(err))
		return
	}

	session := h.sessionService.Register(conn, c.ClientIP())
	defer h.sessionService.Remove(session.SessionID)

	h.logger.Info("WebSocket 连接建立", zap.String("sessionId", session.SessionID))

	if err := h.chatService.Welcome(session.SessionID); err != nil {
		h.logger.Error("发送欢迎语失败", zap.String("sessionId", session.SessionID), zap.Error(err))
		return
	}

	// 消息循环
	for {
		var frame model.ClientFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				h.logger.Error("WebSocket 读取错误", zap.Error(err))
			}
			break
		}

		h.handleFrame(c, session.SessionID, &frame)
	}

	h.logger.Info("WebSocket 连接断开", zap.String("sessionId", session.SessionID))
}

// handleFrame 处理客户端帧
func (h *WebSocketHandler) handleFrame(c *gin.Context, sessionID string, frame *model.ClientFrame) {
	switch frame.Type {
	case model.FrameChat, model.FrameQuickReply:
		err := h.chatService.HandleUserMessage(c.Request.Context(), sessionID, frame.Content)
		if errors.Is(err, service.ErrBusy) {
			h.sessionService.Send(sessionID, model.ErrorFrame(service.ErrBusy.Error()))
		} else if err != nil {
			h.logger.Error("处理用户消息失败", zap.String("sessionId", sessionID), zap.Error(err))
		}

	case model.FrameHeartbeat:
		h.sessionService.UpdateHeartbeat(sessionID)

	default:
		h.logger.Warn("未知消息类型",
			zap.String("sessionId", sessionID),
			zap.String("type", frame.Type))
		h.sessionService.Send(sessionID, model.ErrorFrame("unknown frame type"))
	}
}
