package store

import (
	"context"
	"sync"

	"github.com/bucketpro/bucketpro-go/internal/model"
	"go.uber.org/zap"
)

// MemoryLeadStore 内存线索存储，未启用 Redis 时使用
type MemoryLeadStore struct {
	quotes   []model.QuoteLead
	contacts []model.ContactLead
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewMemoryLeadStore 创建内存线索存储
func NewMemoryLeadStore(logger *zap.Logger) *MemoryLeadStore {
	return &MemoryLeadStore{logger: logger}
}

// SaveQuoteLead 保存询价线索
func (s *MemoryLeadStore) SaveQuoteLead(ctx context.Context, lead model.QuoteLead) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes = append(s.quotes, lead)
	s.logger.Info("线索已保存到内存", zap.String("key", QuoteLeadsKey), zap.String("id", lead.ID))
	return nil
}

// SaveContactLead 保存联系线索
func (s *MemoryLeadStore) SaveContactLead(ctx context.Context, lead model.ContactLead) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts = append(s.contacts, lead)
	s.logger.Info("线索已保存到内存", zap.String("key", ContactLeadsKey), zap.String("id", lead.ID))
	return nil
}

// QuoteLeads 已保存的询价线索
func (s *MemoryLeadStore) QuoteLeads() []model.QuoteLead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.QuoteLead, len(s.quotes))
	copy(out, s.quotes)
	return out
}

// ContactLeads 已保存的联系线索
func (s *MemoryLeadStore) ContactLeads() []model.ContactLead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ContactLead, len(s.contacts))
	copy(out, s.contacts)
	return out
}
