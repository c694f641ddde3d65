package model

import "time"

// QuoteLead 询价表单
type QuoteLead struct {
	ID                     string    `json:"id"`
	CompanyName            string    `json:"companyName" binding:"required"`
	ContactPerson          string    `json:"contactPerson" binding:"required"`
	Email                  string    `json:"email" binding:"required,email"`
	Phone                  string    `json:"phone" binding:"required"`
	ProductType            string    `json:"productType" binding:"omitempty,oneof=paint food industrial custom"`
	Capacity               string    `json:"capacity"`
	Quantity               string    `json:"quantity"`
	Customization          []string  `json:"customization" binding:"omitempty,dive,oneof=customColor printing customMold"`
	AdditionalRequirements string    `json:"additionalRequirements"`
	ReceivedAt             time.Time `json:"receivedAt"`
}

// ContactLead 联系表单
type ContactLead struct {
	ID         string    `json:"id"`
	Name       string    `json:"name" binding:"required"`
	Company    string    `json:"company"`
	Email      string    `json:"email" binding:"required,email"`
	Phone      string    `json:"phone"`
	Message    string    `json:"message" binding:"required"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// LeadResponse 表单提交响应
type LeadResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Message string `json:"message"`
}
