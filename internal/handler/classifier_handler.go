package handler

import (
	"net/http"
	"strings"

	"github.com/bucketpro/bucketpro-go/internal/intent"
	"github.com/bucketpro/bucketpro-go/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ClassifierHandler 分类和无状态对话处理器
type ClassifierHandler struct {
	classifierService *service.ClassifierService
	logger            *zap.Logger
}

// NewClassifierHandler 创建分类处理器
func NewClassifierHandler(classifierService *service.ClassifierService, logger *zap.Logger) *ClassifierHandler {
	return &ClassifierHandler{
		classifierService: classifierService,
		logger:            logger,
	}
}

// Classify 问题分类接口
func (h *ClassifierHandler) Classify(c *gin.Context) {
	question := c.Query("question")
	if strings.TrimSpace(question) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	c.JSON(http.StatusOK, h.classifierService.Classify(question, c.Query("lastIntent")))
}

// ChatRequest 无状态对话请求，context 由调用方保存并在下一轮带回
type ChatRequest struct {
	Message string         `json:"message"`
	Context intent.Context `json:"context"`
}

// ChatResponse 无状态对话响应
type ChatResponse struct {
	Reply        string         `json:"reply"`
	QuickReplies []string       `json:"quickReplies,omitempty"`
	Intent       string         `json:"intent"`
	Score        float64        `json:"score"`
	Context      intent.Context `json:"context"`
}

// Chat 无状态对话接口
func (h *ClassifierHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}
	if req.Context.History == nil {
		req.Context.History = []string{}
	}

	turn := h.classifierService.Converse(req.Message, req.Context)

	c.JSON(http.StatusOK, ChatResponse{
		Reply:        turn.Text,
		QuickReplies: turn.QuickReplies,
		Intent:       turn.Intent,
		Score:        turn.Score,
		Context:      turn.Context,
	})
}
