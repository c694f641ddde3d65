package store

import (
	"context"

	"github.com/bucketpro/bucketpro-go/internal/model"
)

// Redis 列表键
const (
	QuoteLeadsKey   = "leads:quote"
	ContactLeadsKey = "leads:contact"
)

// LeadStore 销售线索存储
type LeadStore interface {
	SaveQuoteLead(ctx context.Context, lead model.QuoteLead) error
	SaveContactLead(ctx context.Context, lead model.ContactLead) error
}
