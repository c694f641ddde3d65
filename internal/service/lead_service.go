package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bucketpro/bucketpro-go/internal/intent"
	"github.com/bucketpro/bucketpro-go/internal/model"
	"github.com/bucketpro/bucketpro-go/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 提交成功提示
const (
	QuoteLeadMessage   = "Our sales team will contact you within 24 hours with a detailed quotation."
	ContactLeadMessage = "We will get back to you within 24 hours."
)

// ErrInvalidLead 去除标记后必填字段为空
var ErrInvalidLead = errors.New("invalid lead")

// LeadService 销售线索服务
type LeadService struct {
	store  store.LeadStore
	now    func() time.Time
	logger *zap.Logger
}

// NewLeadService 创建销售线索服务
func NewLeadService(leadStore store.LeadStore, logger *zap.Logger) *LeadService {
	return &LeadService{
		store:  leadStore,
		now:    time.Now,
		logger: logger,
	}
}

// SubmitQuote 保存询价表单
func (s *LeadService) SubmitQuote(ctx context.Context, lead model.QuoteLead) (model.QuoteLead, error) {
	lead.ID = uuid.New().String()
	lead.ReceivedAt = s.now()
	lead.CompanyName = intent.StripMarkup(lead.CompanyName)
	lead.ContactPerson = intent.StripMarkup(lead.ContactPerson)
	lead.Phone = intent.StripMarkup(lead.Phone)
	lead.Capacity = intent.StripMarkup(lead.Capacity)
	lead.Quantity = intent.StripMarkup(lead.Quantity)
	lead.AdditionalRequirements = intent.StripMarkup(lead.AdditionalRequirements)

	if err := requireFields(map[string]string{
		"companyName":   lead.CompanyName,
		"contactPerson": lead.ContactPerson,
		"phone":         lead.Phone,
	}); err != nil {
		return model.QuoteLead{}, err
	}

	if err := s.store.SaveQuoteLead(ctx, lead); err != nil {
		s.logger.Error("保存询价线索失败", zap.String("id", lead.ID), zap.Error(err))
		return model.QuoteLead{}, fmt.Errorf("保存询价线索失败: %w", err)
	}

	s.logger.Info("收到询价",
		zap.String("id", lead.ID),
		zap.String("productType", lead.ProductType),
		zap.Strings("customization", lead.Customization))
	return lead, nil
}

// SubmitContact 保存联系表单
func (s *LeadService) SubmitContact(ctx context.Context, lead model.ContactLead) (model.ContactLead, error) {
	lead.ID = uuid.New().String()
	lead.ReceivedAt = s.now()
	lead.Name = intent.StripMarkup(lead.Name)
	lead.Company = intent.StripMarkup(lead.Company)
	lead.Phone = intent.StripMarkup(lead.Phone)
	lead.Message = intent.StripMarkup(lead.Message)

	if err := requireFields(map[string]string{
		"name":    lead.Name,
		"message": lead.Message,
	}); err != nil {
		return model.ContactLead{}, err
	}

	if err := s.store.SaveContactLead(ctx, lead); err != nil {
		s.logger.Error("保存联系线索失败", zap.String("id", lead.ID), zap.Error(err))
		return model.ContactLead{}, fmt.Errorf("保存联系线索失败: %w", err)
	}

	s.logger.Info("收到联系留言", zap.String("id", lead.ID))
	return lead, nil
}

// requireFields 检查去除标记后的必填字段
func requireFields(fields map[string]string) error {
	var empty []string
	for name, v := range fields {
		if v == "" {
			empty = append(empty, name)
		}
	}
	if len(empty) == 0 {
		return nil
	}
	sort.Strings(empty)
	return fmt.Errorf("%w: %s is required", ErrInvalidLead, strings.Join(empty, ", "))
}
