package service

import (
	"strings"

	"github.com/bucketpro/bucketpro-go/internal/catalog"
	"go.uber.org/zap"
)

// CatalogService 产品目录服务
type CatalogService struct {
	store    *catalog.MemoryStore
	comparer *catalog.Comparer
	logger   *zap.Logger
}

// NewCatalogService 创建产品目录服务
func NewCatalogService(store *catalog.MemoryStore, comparer *catalog.Comparer, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		store:    store,
		comparer: comparer,
		logger:   logger,
	}
}

// Products 按类别列出产品；query 非空时按名称模糊搜索，相关度高的在前
func (s *CatalogService) Products(category, query string) []catalog.Product {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.store.List(category)
	}

	results := s.store.Search(query, category, 0)
	products := make([]catalog.Product, 0, len(results))
	for _, r := range results {
		products = append(products, r.Product)
	}
	return products
}

// Product 获取单个产品
func (s *CatalogService) Product(id int) (catalog.Product, error) {
	return s.store.GetProduct(id)
}

// Models 可对比的型号
func (s *CatalogService) Models() []catalog.Model {
	return s.comparer.Models()
}

// Compare 对比型号
func (s *CatalogService) Compare(ids []string) (catalog.Comparison, error) {
	cmp, err := s.comparer.Compare(ids)
	if err != nil {
		s.logger.Debug("型号对比失败", zap.Strings("ids", ids), zap.Error(err))
		return catalog.Comparison{}, err
	}
	return cmp, nil
}
