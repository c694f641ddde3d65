package catalog

// 产品类别
const (
	CategoryPaint      = "paint"
	CategoryFood       = "food"
	CategoryIndustrial = "industrial"
)

// Categories 目录页的类别标签（含 all）
var Categories = []string{CategoryAll, CategoryPaint, CategoryFood, CategoryIndustrial}

// DefaultProducts 内置产品目录
func DefaultProducts() []Product {
	return []Product{
		{
			ID: 1, Category: CategoryPaint,
			Name:         "Premium Paint Bucket - 20L",
			Capacity:     "20 Liters",
			Features:     []string{"Airtight seal", "Metal handle", "Stackable design", "UV resistant"},
			Applications: "Paints, primers, coatings",
		},
		{
			ID: 2, Category: CategoryPaint,
			Name:         "Paint Container - 10L",
			Capacity:     "10 Liters",
			Features:     []string{"Easy pour spout", "Tamper evident", "Chemical resistant"},
			Applications: "Water-based paints, emulsions",
		},
		{
			ID: 3, Category: CategoryPaint,
			Name:         "Paint Bucket - 5L",
			Capacity:     "5 Liters",
			Features:     []string{"Compact size", "Ergonomic handle", "Recyclable"},
			Applications: "Small batch paints, samples",
		},
		{
			ID: 4, Category: CategoryFood,
			Name:         "Food Grade Container - 15L",
			Capacity:     "15 Liters",
			Features:     []string{"FDA approved", "BPA free", "Odorless", "Microwave safe"},
			Applications: "Dairy products, oils, sauces",
		},
		{
			ID: 5, Category: CategoryFood,
			Name:         "Curd Bucket - 10L",
			Capacity:     "10 Liters",
			Features:     []string{"Food safe material", "Easy clean", "Temperature resistant"},
			Applications: "Curd, yogurt, dairy products",
		},
		{
			ID: 6, Category: CategoryFood,
			Name:         "Food Storage - 5L",
			Capacity:     "5 Liters",
			Features:     []string{"Transparent option", "Airtight lid", "Freezer safe"},
			Applications: "Food ingredients, preserves",
		},
		{
			ID: 7, Category: CategoryIndustrial,
			Name:         "Heavy Duty Bucket - 25L",
			Capacity:     "25 Liters",
			Features:     []string{"Reinforced walls", "Chemical resistant", "Heavy duty handle"},
			Applications: "Grease, lubricants, chemicals",
		},
		{
			ID: 8, Category: CategoryIndustrial,
			Name:         "Industrial Container - 20L",
			Capacity:     "20 Liters",
			Features:     []string{"Impact resistant", "Wide mouth", "UN certified"},
			Applications: "Industrial chemicals, adhesives",
		},
		{
			ID: 9, Category: CategoryIndustrial,
			Name:         "Chemical Bucket - 15L",
			Capacity:     "15 Liters",
			Features:     []string{"Acid resistant", "Safety lid", "Warning labels"},
			Applications: "Hazardous materials, solvents",
		},
	}
}
