package quote

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	deliveryUrgent   = "Urgent (7 days)"
	deliveryStandard = "Standard (14-21 days)"
)

var numberPrinter = message.NewPrinter(language.English)

// RenderDocument 将报价渲染为可下载的纯文本文档
func (e *Engine) RenderDocument(req Request, res Result, date time.Time) string {
	typeName := req.ProductType
	if pt, err := e.book.ProductType(req.ProductType); err == nil {
		typeName = pt.Name
	}

	var b strings.Builder
	b.WriteString("BUCKETPRO COST ESTIMATE\n")
	b.WriteString("========================\n")
	fmt.Fprintf(&b, "Date: %s\n\n", date.Format("1/2/2006"))

	b.WriteString("Product Details:\n")
	fmt.Fprintf(&b, "- Type: %s\n", typeName)
	fmt.Fprintf(&b, "- Size: %s\n", req.Size)
	b.WriteString(numberPrinter.Sprintf("- Quantity: %d units\n\n", req.Quantity))

	b.WriteString("Customizations:\n")
	listed := 0
	for _, key := range uniqueKeys(req.Customizations) {
		c, ok := e.book.Customization(key)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "- %s\n", c.Name)
		listed++
	}
	if listed == 0 {
		b.WriteString("- None\n")
	}
	b.WriteString("\n")

	delivery := deliveryStandard
	if req.UrgentDelivery {
		delivery = deliveryUrgent
	}
	fmt.Fprintf(&b, "Delivery: %s\n\n", delivery)

	b.WriteString("Pricing:\n")
	fmt.Fprintf(&b, "- Unit Price: $%.2f\n", res.UnitPrice)
	fmt.Fprintf(&b, "- Total Price: $%.2f\n", res.TotalPrice)
	fmt.Fprintf(&b, "- Volume Discount: %s\n\n", DiscountPercent(res.DiscountRate))

	b.WriteString("Note: This is an estimate. Final pricing may vary based on specifications.\n")
	return b.String()
}

// DiscountPercent 折扣率转为整数百分比文本，例如 0.15 -> "15%"
func DiscountPercent(rate float64) string {
	return fmt.Sprintf("%.0f%%", rate*100)
}

// DocumentFilename 报价文档文件名，带毫秒时间戳
func DocumentFilename(now time.Time) string {
	return fmt.Sprintf("quote-%d.txt", now.UnixMilli())
}
