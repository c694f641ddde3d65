package handler

import (
	"errors"
	"net/http"

	"github.com/bucketpro/bucketpro-go/internal/model"
	"github.com/bucketpro/bucketpro-go/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIHandler 健康检查和表单提交处理器
type APIHandler struct {
	serviceName    string
	sessionService *service.SessionService
	leadService    *service.LeadService
	logger         *zap.Logger
}

// NewAPIHandler 创建 API 处理器
func NewAPIHandler(serviceName string, sessionService *service.SessionService, leadService *service.LeadService, logger *zap.Logger) *APIHandler {
	return &APIHandler{
		serviceName:    serviceName,
		sessionService: sessionService,
		leadService:    leadService,
		logger:         logger,
	}
}

// Health 健康检查
func (h *APIHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "UP",
		"service":         h.serviceName,
		"online_sessions": h.sessionService.OnlineCount(),
	})
}

// SubmitQuoteLead 询价表单提交
func (h *APIHandler) SubmitQuoteLead(c *gin.Context) {
	var req model.QuoteLead
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("询价表单校验失败", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	lead, err := h.leadService.SubmitQuote(c.Request.Context(), req)
	if errors.Is(err, service.ErrInvalidLead) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit quote request"})
		return
	}

	c.JSON(http.StatusCreated, model.LeadResponse{
		Success: true,
		ID:      lead.ID,
		Message: service.QuoteLeadMessage,
	})
}

// SubmitContactLead 联系表单提交
func (h *APIHandler) SubmitContactLead(c *gin.Context) {
	var req model.ContactLead
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("联系表单校验失败", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	lead, err := h.leadService.SubmitContact(c.Request.Context(), req)
	if errors.Is(err, service.ErrInvalidLead) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message"})
		return
	}

	c.JSON(http.StatusCreated, model.LeadResponse{
		Success: true,
		ID:      lead.ID,
		Message: service.ContactLeadMessage,
	})
}
