package catalog

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"
)

// ErrProductNotFound 产品不存在
var ErrProductNotFound = errors.New("product not found")

// CategoryAll 不按类别过滤
const CategoryAll = "all"

// Product 目录中的产品
type Product struct {
	ID           int      `json:"id" yaml:"id"`
	Category     string   `json:"category" yaml:"category"`
	Name         string   `json:"name" yaml:"name"`
	Capacity     string   `json:"capacity" yaml:"capacity"`
	Features     []string `json:"features" yaml:"features"`
	Applications string   `json:"applications" yaml:"applications"`
}

// SearchResult 搜索结果
type SearchResult struct {
	Product Product `json:"product"`
	Score   int     `json:"score"` // 模糊匹配得分，越高越相关
}

// MemoryStore 内存产品目录
type MemoryStore struct {
	products map[int]*Product
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewMemoryStore 创建内存产品目录
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		products: make(map[int]*Product),
		logger:   logger,
	}
}

// AddProduct 添加产品
func (s *MemoryStore) AddProduct(p Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID <= 0 {
		return fmt.Errorf("product ID must be positive")
	}
	if p.Category == "" || p.Category == CategoryAll {
		return fmt.Errorf("product %d: invalid category %q", p.ID, p.Category)
	}

	s.products[p.ID] = &p
	s.logger.Debug("产品已添加", zap.Int("id", p.ID), zap.String("category", p.Category))
	return nil
}

// AddProducts 批量添加产品
func (s *MemoryStore) AddProducts(products []Product) error {
	for _, p := range products {
		if err := s.AddProduct(p); err != nil {
			return err
		}
	}
	return nil
}

// GetProduct 获取产品
func (s *MemoryStore) GetProduct(id int) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return Product{}, fmt.Errorf("%w: %d", ErrProductNotFound, id)
	}
	return *p, nil
}

// List 按类别列出产品（按 ID 升序）；all 返回全部，未知类别返回空列表
func (s *MemoryStore) List(category string) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if category == "" {
		category = CategoryAll
	}

	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if category == CategoryAll || p.Category == category {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// productNames 适配 fuzzy.Source
type productNames []Product

func (p productNames) String(i int) string { return p[i].Name }
func (p productNames) Len() int            { return len(p) }

// Search 在类别内按名称模糊搜索，返回最多 topK 条（topK<=0 不限）
func (s *MemoryStore) Search(query, category string, topK int) []SearchResult {
	candidates := s.List(category)

	var results []SearchResult
	if query == "" {
		results = make([]SearchResult, 0, len(candidates))
		for _, p := range candidates {
			results = append(results, SearchResult{Product: p})
		}
	} else {
		matches := fuzzy.FindFrom(query, productNames(candidates))
		results = make([]SearchResult, 0, len(matches))
		for _, m := range matches {
			results = append(results, SearchResult{
				Product: candidates[m.Index],
				Score:   m.Score,
			})
		}
	}

	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}

	s.logger.Debug("产品搜索完成",
		zap.String("query", query),
		zap.String("category", category),
		zap.Int("resultCount", len(results)))

	return results
}

// Count 产品数量
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}
