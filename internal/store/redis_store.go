package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bucketpro/bucketpro-go/internal/model"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisLeadStore 以 JSON 追加到 Redis 列表
type RedisLeadStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisLeadStore 创建 Redis 线索存储
func NewRedisLeadStore(client *redis.Client, logger *zap.Logger) *RedisLeadStore {
	return &RedisLeadStore{client: client, logger: logger}
}

// SaveQuoteLead 保存询价线索
func (s *RedisLeadStore) SaveQuoteLead(ctx context.Context, lead model.QuoteLead) error {
	return s.push(ctx, QuoteLeadsKey, lead.ID, lead)
}

// SaveContactLead 保存联系线索
func (s *RedisLeadStore) SaveContactLead(ctx context.Context, lead model.ContactLead) error {
	return s.push(ctx, ContactLeadsKey, lead.ID, lead)
}

func (s *RedisLeadStore) push(ctx context.Context, key, id string, lead interface{}) error {
	data, err := json.Marshal(lead)
	if err != nil {
		return fmt.Errorf("序列化线索失败: %w", err)
	}

	if err := s.client.RPush(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("写入 Redis 失败: %w", err)
	}

	s.logger.Info("线索已保存到 Redis", zap.String("key", key), zap.String("id", id))
	return nil
}
