package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/bucketpro/bucketpro-go/internal/catalog"
	"github.com/bucketpro/bucketpro-go/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler 产品目录处理器
type CatalogHandler struct {
	catalogService *service.CatalogService
	logger         *zap.Logger
}

// NewCatalogHandler 创建产品目录处理器
func NewCatalogHandler(catalogService *service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// Products 产品列表，支持 category 和 q 参数
func (h *CatalogHandler) Products(c *gin.Context) {
	category := c.DefaultQuery("category", catalog.CategoryAll)
	products := h.catalogService.Products(category, c.Query("q"))

	c.JSON(http.StatusOK, gin.H{
		"categories": catalog.Categories,
		"products":   products,
	})
}

// Product 单个产品
func (h *CatalogHandler) Product(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	p, err := h.catalogService.Product(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// Models 可对比的型号
func (h *CatalogHandler) Models(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"models": h.catalogService.Models()})
}

// Compare 型号对比，ids 以逗号分隔
func (h *CatalogHandler) Compare(c *gin.Context) {
	var ids []string
	for _, id := range strings.Split(c.Query("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	cmp, err := h.catalogService.Compare(ids)
	switch {
	case errors.Is(err, catalog.ErrComparisonSize):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case err != nil:
		h.logger.Error("型号对比失败", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "comparison failed"})
	default:
		c.JSON(http.StatusOK, cmp)
	}
}
