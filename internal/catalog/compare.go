package catalog

import (
	"errors"
	"fmt"
)

// 对比数量限制
const (
	MinCompare = 2
	MaxCompare = 4
)

// ErrComparisonSize 对比产品数量不在 [MinCompare, MaxCompare] 内或有重复
var ErrComparisonSize = errors.New("comparison needs 2 to 4 distinct products")

// Features 对比用的产品规格
type Features struct {
	Material          string `json:"material"`
	LidType           string `json:"lidType"`
	Handle            string `json:"handle"`
	Temperature       string `json:"temperature"`
	Stackable         bool   `json:"stackable"`
	Recyclable        bool   `json:"recyclable"`
	Customizable      bool   `json:"customizable"`
	FoodSafe          bool   `json:"foodSafe"`
	ChemicalResistant bool   `json:"chemicalResistant"`
	UVProtection      bool   `json:"uvProtection"`
	MinOrder          string `json:"minOrder"`
	LeadTime          string `json:"leadTime"`
}

// Model 可对比的桶型号
type Model struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Price    string   `json:"price"`
	Sizes    []string `json:"sizes"`
	Features Features `json:"features"`
}

// FeatureRow 对比表的一行，Values 与所选型号一一对应
type FeatureRow struct {
	Key    string        `json:"key"`
	Label  string        `json:"label"`
	Values []interface{} `json:"values"`
}

// Comparison 对比结果
type Comparison struct {
	Models []Model      `json:"models"`
	Rows   []FeatureRow `json:"rows"`
}

type featureColumn struct {
	key   string
	label string
	value func(Features) interface{}
}

var featureColumns = []featureColumn{
	{"material", "Material", func(f Features) interface{} { return f.Material }},
	{"lidType", "Lid Type", func(f Features) interface{} { return f.LidType }},
	{"handle", "Handle Type", func(f Features) interface{} { return f.Handle }},
	{"temperature", "Temperature Range", func(f Features) interface{} { return f.Temperature }},
	{"stackable", "Stackable", func(f Features) interface{} { return f.Stackable }},
	{"recyclable", "Recyclable", func(f Features) interface{} { return f.Recyclable }},
	{"customizable", "Custom Branding", func(f Features) interface{} { return f.Customizable }},
	{"foodSafe", "Food Safe", func(f Features) interface{} { return f.FoodSafe }},
	{"chemicalResistant", "Chemical Resistant", func(f Features) interface{} { return f.ChemicalResistant }},
	{"uvProtection", "UV Protection", func(f Features) interface{} { return f.UVProtection }},
	{"minOrder", "Minimum Order", func(f Features) interface{} { return f.MinOrder }},
	{"leadTime", "Lead Time", func(f Features) interface{} { return f.LeadTime }},
}

// Comparer 型号对比
type Comparer struct {
	models []Model
}

// NewComparer 创建型号对比器
func NewComparer(models []Model) *Comparer {
	return &Comparer{models: models}
}

// Models 所有可对比型号
func (c *Comparer) Models() []Model {
	out := make([]Model, len(c.models))
	copy(out, c.models)
	return out
}

func (c *Comparer) model(id string) (Model, bool) {
	for _, m := range c.models {
		if m.ID == id {
			return m, true
		}
	}
	return Model{}, false
}

// Compare 按给定顺序对比 2-4 个不同型号
func (c *Comparer) Compare(ids []string) (Comparison, error) {
	if len(ids) < MinCompare || len(ids) > MaxCompare {
		return Comparison{}, fmt.Errorf("%w: got %d", ErrComparisonSize, len(ids))
	}

	seen := make(map[string]bool, len(ids))
	models := make([]Model, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			return Comparison{}, fmt.Errorf("%w: duplicate %s", ErrComparisonSize, id)
		}
		seen[id] = true

		m, ok := c.model(id)
		if !ok {
			return Comparison{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
		}
		models = append(models, m)
	}

	rows := make([]FeatureRow, 0, len(featureColumns))
	for _, col := range featureColumns {
		row := FeatureRow{Key: col.key, Label: col.label, Values: make([]interface{}, 0, len(models))}
		for _, m := range models {
			row.Values = append(row.Values, col.value(m.Features))
		}
		rows = append(rows, row)
	}

	return Comparison{Models: models, Rows: rows}, nil
}

// DefaultModels 内置可对比型号
func DefaultModels() []Model {
	return []Model{
		{
			ID: "paint-bucket", Name: "Paint Bucket", Category: "Industrial",
			Price: "$2.50 - $5.00", Sizes: []string{"1L", "5L", "10L", "20L"},
			Features: Features{
				Material: "Food-Grade Plastic", LidType: "Snap-On Lid", Handle: "Metal Wire Handle",
				Temperature: "-20°C to 60°C", Stackable: true, Recyclable: true, Customizable: true,
				FoodSafe: true, MinOrder: "500 units", LeadTime: "7-10 days",
			},
		},
		{
			ID: "food-bucket", Name: "Food Storage Bucket", Category: "Food & Beverage",
			Price: "$3.00 - $7.00", Sizes: []string{"2L", "5L", "10L", "15L", "25L"},
			Features: Features{
				Material: "FDA Approved PP", LidType: "Airtight Seal", Handle: "Ergonomic Plastic",
				Temperature: "-40°C to 100°C", Stackable: true, Recyclable: true, Customizable: true,
				FoodSafe: true, UVProtection: true, MinOrder: "250 units", LeadTime: "5-7 days",
			},
		},
		{
			ID: "industrial-bucket", Name: "Heavy-Duty Industrial", Category: "Industrial",
			Price: "$5.00 - $12.00", Sizes: []string{"5L", "10L", "20L", "30L"},
			Features: Features{
				Material: "High-Density PE", LidType: "Tamper-Evident", Handle: "Reinforced Steel",
				Temperature: "-30°C to 80°C", Stackable: true, Recyclable: true, Customizable: true,
				ChemicalResistant: true, UVProtection: true, MinOrder: "100 units", LeadTime: "10-14 days",
			},
		},
		{
			ID: "chemical-bucket", Name: "Chemical Resistant", Category: "Chemical",
			Price: "$8.00 - $15.00", Sizes: []string{"5L", "10L", "20L"},
			Features: Features{
				Material: "Special Grade HDPE", LidType: "Chemical Seal", Handle: "Anti-Corrosion",
				Temperature: "-50°C to 90°C", Recyclable: true,
				ChemicalResistant: true, UVProtection: true, MinOrder: "200 units", LeadTime: "14-21 days",
			},
		},
	}
}
