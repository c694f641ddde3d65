package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bucketpro/bucketpro-go/internal/quote"
	"github.com/bucketpro/bucketpro-go/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// QuoteHandler 报价处理器
type QuoteHandler struct {
	quoteService *service.QuoteService
	now          func() time.Time
	logger       *zap.Logger
}

// NewQuoteHandler 创建报价处理器
func NewQuoteHandler(quoteService *service.QuoteService, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
		now:          time.Now,
		logger:       logger,
	}
}

// Pricing 价目数据
func (h *QuoteHandler) Pricing(c *gin.Context) {
	c.JSON(http.StatusOK, h.quoteService.Pricing())
}

// Estimate 计算报价
func (h *QuoteHandler) Estimate(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	est, err := h.quoteService.Estimate(req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, est)
}

// Document 下载报价文档
func (h *QuoteHandler) Document(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	doc, err := h.quoteService.Document(req, h.now())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.Filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(doc.Content))
}

func (h *QuoteHandler) bind(c *gin.Context) (quote.Request, bool) {
	var req quote.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return quote.Request{}, false
	}
	return req, true
}

func (h *QuoteHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, quote.ErrUnknownProductType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logger.Error("报价失败", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "quote failed"})
}
