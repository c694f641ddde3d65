package quote

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrUnknownProductType 未知的产品类型
var ErrUnknownProductType = errors.New("unknown product type")

// 数量滑块范围
const (
	MinQuantity  = 100
	MaxQuantity  = 20000
	QuantityStep = 100
)

// UrgentSurcharge 加急配送在折扣之后的加价倍数
const UrgentSurcharge = 1.15

// Size 尺寸及其相对基准价的倍数
type Size struct {
	Label      string  `yaml:"label" json:"label"`
	Multiplier float64 `yaml:"multiplier" json:"multiplier"`
}

// ProductType 桶类型
type ProductType struct {
	Key       string  `yaml:"key" json:"key"`
	Name      string  `yaml:"name" json:"name"`
	BasePrice float64 `yaml:"basePrice" json:"basePrice"`
	Sizes     []Size  `yaml:"sizes" json:"sizes"`
}

// SizeMultiplier 查找尺寸倍数，未知尺寸返回 1
func (p ProductType) SizeMultiplier(label string) float64 {
	for _, s := range p.Sizes {
		if s.Label == label {
			return s.Multiplier
		}
	}
	return 1
}

// HasSize 是否提供该尺寸
func (p ProductType) HasSize(label string) bool {
	for _, s := range p.Sizes {
		if s.Label == label {
			return true
		}
	}
	return false
}

// Customization 定制选项（每件固定加价）
type Customization struct {
	Key   string  `yaml:"key" json:"key"`
	Name  string  `yaml:"name" json:"name"`
	Price float64 `yaml:"price" json:"price"`
}

// DiscountTier 数量折扣档位
type DiscountTier struct {
	MinQuantity int     `yaml:"minQuantity" json:"minQuantity"`
	Rate        float64 `yaml:"rate" json:"rate"`
}

// PriceBook 价目表
type PriceBook struct {
	ProductTypes   []ProductType   `yaml:"productTypes" json:"productTypes"`
	Customizations []Customization `yaml:"customizations" json:"customizations"`
	// Tiers 按 MinQuantity 降序排列
	Tiers []DiscountTier `yaml:"tiers" json:"tiers"`
}

// ProductType 按 key 查找桶类型
func (b *PriceBook) ProductType(key string) (ProductType, error) {
	for _, p := range b.ProductTypes {
		if p.Key == key {
			return p, nil
		}
	}
	return ProductType{}, fmt.Errorf("%w: %s", ErrUnknownProductType, key)
}

// Customization 按 key 查找定制选项
func (b *PriceBook) Customization(key string) (Customization, bool) {
	for _, c := range b.Customizations {
		if c.Key == key {
			return c, true
		}
	}
	return Customization{}, false
}

// DiscountRate 按数量取折扣率，从最高档开始匹配
func (b *PriceBook) DiscountRate(quantity int) float64 {
	for _, t := range b.Tiers {
		if quantity >= t.MinQuantity {
			return t.Rate
		}
	}
	return 0
}

// Validate 校验价目表
func (b *PriceBook) Validate() error {
	if len(b.ProductTypes) == 0 {
		return fmt.Errorf("price book has no product types")
	}
	for _, p := range b.ProductTypes {
		if p.Key == "" {
			return fmt.Errorf("product type key cannot be empty")
		}
		if p.BasePrice <= 0 {
			return fmt.Errorf("product type %s: base price must be positive", p.Key)
		}
		for _, s := range p.Sizes {
			if s.Multiplier <= 0 {
				return fmt.Errorf("product type %s size %s: multiplier must be positive", p.Key, s.Label)
			}
		}
	}
	for i, t := range b.Tiers {
		if t.Rate < 0 || t.Rate >= 1 {
			return fmt.Errorf("tier %d: rate must be in [0, 1)", t.MinQuantity)
		}
		if i > 0 && b.Tiers[i-1].MinQuantity <= t.MinQuantity {
			return fmt.Errorf("tiers must be sorted by descending minQuantity")
		}
	}
	return nil
}

// LoadPriceBook 从 YAML 文件加载价目表
func LoadPriceBook(path string) (*PriceBook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取价目表失败: %w", err)
	}

	var b PriceBook
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("解析价目表失败: %w", err)
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// DefaultPriceBook 内置价目表
func DefaultPriceBook() *PriceBook {
	return &PriceBook{
		ProductTypes: []ProductType{
			{
				Key:       "standard",
				Name:      "Standard Bucket",
				BasePrice: 2.5,
				Sizes: []Size{
					{"1L", 0.8}, {"5L", 1}, {"10L", 1.5}, {"20L", 2.2}, {"30L", 3},
				},
			},
			{
				Key:       "foodGrade",
				Name:      "Food Grade Bucket",
				BasePrice: 3.5,
				Sizes: []Size{
					{"2L", 0.9}, {"5L", 1}, {"10L", 1.6}, {"15L", 2}, {"25L", 2.8},
				},
			},
			{
				Key:       "industrial",
				Name:      "Heavy-Duty Industrial",
				BasePrice: 5,
				Sizes: []Size{
					{"5L", 1}, {"10L", 1.7}, {"20L", 2.5}, {"30L", 3.5},
				},
			},
			{
				Key:       "chemical",
				Name:      "Chemical Resistant",
				BasePrice: 8,
				Sizes: []Size{
					{"5L", 1}, {"10L", 1.8}, {"20L", 2.8},
				},
			},
		},
		Customizations: []Customization{
			{Key: "color", Name: "Custom Color", Price: 0.15},
			{Key: "logo", Name: "Logo Printing", Price: 0.25},
			{Key: "label", Name: "Custom Label", Price: 0.2},
			{Key: "handle", Name: "Premium Handle", Price: 0.3},
			{Key: "lid", Name: "Special Lid", Price: 0.4},
		},
		Tiers: []DiscountTier{
			{MinQuantity: 10000, Rate: 0.20},
			{MinQuantity: 5000, Rate: 0.15},
			{MinQuantity: 2000, Rate: 0.10},
			{MinQuantity: 1000, Rate: 0.05},
		},
	}
}

// BulkRow 批量折扣展示行
type BulkRow struct {
	Range    string `json:"range"`
	Discount string `json:"discount"`
}

// BulkTable 批量折扣表（数量从低到高）
func (b *PriceBook) BulkTable() []BulkRow {
	rows := make([]BulkRow, 0, len(b.Tiers))
	for i := len(b.Tiers) - 1; i >= 0; i-- {
		t := b.Tiers[i]
		var r string
		if i == 0 {
			r = numberPrinter.Sprintf("%d+", t.MinQuantity)
		} else {
			r = numberPrinter.Sprintf("%d - %d", t.MinQuantity, b.Tiers[i-1].MinQuantity-1)
		}
		rows = append(rows, BulkRow{Range: r, Discount: DiscountPercent(t.Rate) + " Off"})
	}
	return rows
}
