package service

import (
	"fmt"
	"time"

	"github.com/bucketpro/bucketpro-go/internal/quote"
	"go.uber.org/zap"
)

// Estimate 报价结果及展示字段
type Estimate struct {
	quote.Result
	DiscountPercent string `json:"discountPercent"`
}

// QuantityBounds 数量滑块范围
type QuantityBounds struct {
	Min  int `json:"min"`
	Max  int `json:"max"`
	Step int `json:"step"`
}

// PricingInfo 报价器页面所需的价目数据
type PricingInfo struct {
	ProductTypes   []quote.ProductType   `json:"productTypes"`
	Customizations []quote.Customization `json:"customizations"`
	Tiers          []quote.DiscountTier  `json:"tiers"`
	Quantity       QuantityBounds        `json:"quantity"`
	BulkTable      []quote.BulkRow       `json:"bulkTable"`
}

// QuoteDocument 可下载的报价文档
type QuoteDocument struct {
	Filename string
	Content  string
}

// QuoteService 报价服务
type QuoteService struct {
	engine *quote.Engine
	logger *zap.Logger
}

// NewQuoteService 创建报价服务
func NewQuoteService(engine *quote.Engine, logger *zap.Logger) *QuoteService {
	return &QuoteService{
		engine: engine,
		logger: logger,
	}
}

// Pricing 价目数据
func (s *QuoteService) Pricing() PricingInfo {
	book := s.engine.PriceBook()
	return PricingInfo{
		ProductTypes:   book.ProductTypes,
		Customizations: book.Customizations,
		Tiers:          book.Tiers,
		Quantity: QuantityBounds{
			Min:  quote.MinQuantity,
			Max:  quote.MaxQuantity,
			Step: quote.QuantityStep,
		},
		BulkTable: book.BulkTable(),
	}
}

// Estimate 计算报价
func (s *QuoteService) Estimate(req quote.Request) (Estimate, error) {
	res, err := s.engine.Quote(req)
	if err != nil {
		s.logger.Warn("报价失败", zap.String("productType", req.ProductType), zap.Error(err))
		return Estimate{}, fmt.Errorf("计算报价失败: %w", err)
	}

	s.logger.Debug("报价完成",
		zap.String("productType", req.ProductType),
		zap.String("size", req.Size),
		zap.Int("quantity", req.Quantity),
		zap.Float64("totalPrice", res.TotalPrice))

	return Estimate{
		Result:          res,
		DiscountPercent: quote.DiscountPercent(res.DiscountRate),
	}, nil
}

// Document 生成报价文档
func (s *QuoteService) Document(req quote.Request, now time.Time) (QuoteDocument, error) {
	res, err := s.engine.Quote(req)
	if err != nil {
		return QuoteDocument{}, fmt.Errorf("计算报价失败: %w", err)
	}

	doc := QuoteDocument{
		Filename: quote.DocumentFilename(now),
		Content:  s.engine.RenderDocument(req, res, now),
	}

	s.logger.Info("报价文档已生成",
		zap.String("filename", doc.Filename),
		zap.String("productType", req.ProductType))

	return doc, nil
}
