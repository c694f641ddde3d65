package quote

// Request 报价请求
type Request struct {
	ProductType    string   `json:"productType" binding:"required"`
	Size           string   `json:"size"`
	Quantity       int      `json:"quantity" binding:"required,gt=0"`
	// Customizations 按集合处理，重复项只计一次
	Customizations []string `json:"customizations"`
	UrgentDelivery bool     `json:"urgentDelivery"`
}

// Result 报价结果
type Result struct {
	UnitPrice    float64 `json:"unitPrice"`
	TotalPrice   float64 `json:"totalPrice"`
	DiscountRate float64 `json:"discountRate"`
	// Savings 相对同尺寸、无定制、无折扣、非加急的参考价；不扣除定制费用
	Savings float64 `json:"savings"`
}

// Engine 报价引擎
type Engine struct {
	book *PriceBook
}

// NewEngine 创建报价引擎
func NewEngine(book *PriceBook) *Engine {
	return &Engine{book: book}
}

// PriceBook 返回引擎使用的价目表
func (e *Engine) PriceBook() *PriceBook {
	return e.book
}

// Quote 计算报价。只有产品类型未知时返回错误，未知尺寸和定制项按中性处理。
func (e *Engine) Quote(req Request) (Result, error) {
	pt, err := e.book.ProductType(req.ProductType)
	if err != nil {
		return Result{}, err
	}
	return e.price(pt, req), nil
}

func (e *Engine) price(pt ProductType, req Request) Result {
	multiplier := pt.SizeMultiplier(req.Size)
	unitPrice := pt.BasePrice * multiplier

	for _, key := range uniqueKeys(req.Customizations) {
		if c, ok := e.book.Customization(key); ok {
			unitPrice += c.Price
		}
	}

	discount := e.book.DiscountRate(req.Quantity)
	unitPrice = unitPrice * (1 - discount)

	// 加急在折扣之后
	if req.UrgentDelivery {
		unitPrice = unitPrice * UrgentSurcharge
	}

	quantity := float64(req.Quantity)
	totalPrice := unitPrice * quantity
	savings := pt.BasePrice*multiplier*quantity - totalPrice

	return Result{
		UnitPrice:    unitPrice,
		TotalPrice:   totalPrice,
		DiscountRate: discount,
		Savings:      savings,
	}
}

// uniqueKeys 去重并保持首次出现的顺序
func uniqueKeys(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
