package intent

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// KeyDefault 兜底意图，没有任何模式
	KeyDefault = "default"
	// KeySupport 负面情绪触发的人工支持意图（合成，不在目录中）
	KeySupport = "support"
	// KeyWarranty 质保意图，负面情绪不会覆盖它
	KeyWarranty = "warranty"
)

// Intent 意图定义
type Intent struct {
	Key          string   `yaml:"key" json:"key"`
	Patterns     []string `yaml:"patterns" json:"patterns"`
	Responses    []string `yaml:"responses" json:"responses"`
	QuickReplies []string `yaml:"quickReplies,omitempty" json:"quickReplies,omitempty"`
}

// Catalog 意图目录（有序，顺序决定同分时的胜者）
type Catalog struct {
	intents []Intent
	index   map[string]int
}

// NewCatalog 创建意图目录；除 default 外每个意图至少有一个模式
func NewCatalog(intents []Intent) (*Catalog, error) {
	c := &Catalog{
		intents: make([]Intent, 0, len(intents)),
		index:   make(map[string]int, len(intents)),
	}

	for _, in := range intents {
		if in.Key == "" {
			return nil, fmt.Errorf("intent key cannot be empty")
		}
		if _, exists := c.index[in.Key]; exists {
			return nil, fmt.Errorf("duplicate intent key: %s", in.Key)
		}
		if len(in.Responses) == 0 {
			return nil, fmt.Errorf("intent %s has no responses", in.Key)
		}
		if in.Key == KeyDefault && len(in.Patterns) > 0 {
			return nil, fmt.Errorf("fallback intent must not have patterns")
		}
		if in.Key != KeyDefault && len(in.Patterns) == 0 {
			return nil, fmt.Errorf("intent %s has no patterns", in.Key)
		}

		c.index[in.Key] = len(c.intents)
		c.intents = append(c.intents, in)
	}

	if _, ok := c.index[KeyDefault]; !ok {
		return nil, fmt.Errorf("catalog is missing the %q intent", KeyDefault)
	}

	return c, nil
}

// Get 获取意图
func (c *Catalog) Get(key string) (Intent, bool) {
	i, ok := c.index[key]
	if !ok {
		return Intent{}, false
	}
	return c.intents[i], true
}

// Intents 按声明顺序返回所有意图
func (c *Catalog) Intents() []Intent {
	out := make([]Intent, len(c.intents))
	copy(out, c.intents)
	return out
}

// Len 意图数量
func (c *Catalog) Len() int {
	return len(c.intents)
}

type catalogFile struct {
	Intents []Intent `yaml:"intents"`
}

// LoadCatalog 从 YAML 文件加载意图目录
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取意图文件失败: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("解析意图文件失败: %w", err)
	}

	return NewCatalog(f.Intents)
}

// DefaultCatalog 内置意图目录
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultIntents())
	if err != nil {
		panic(err)
	}
	return c
}

func defaultIntents() []Intent {
	return []Intent{
		{
			Key:      "greeting",
			Patterns: []string{"hello", "hi", "hey", "good morning", "good afternoon", "greetings", "howdy", "sup"},
			Responses: []string{
				"Hello! Welcome to BucketPro Solutions. I'm Alex, your virtual assistant. How can I help you today?",
				"Hi there! I'm Alex, here to assist you with our premium bucket solutions. What brings you here today?",
				"Greetings! I'm Alex from BucketPro. Ready to find the perfect packaging solution for you!",
			},
			QuickReplies: []string{"View Products", "Get Quote", "Learn About Quality", "Custom Solutions"},
		},
		{
			Key:      "products",
			Patterns: []string{"products", "bucket", "containers", "what do you sell", "catalog", "offerings", "items", "stock"},
			Responses: []string{
				"Our premium bucket solutions include:\n\n🎨 Paint Buckets (1L to 20L)\n🍽️ Food-Grade Containers\n🏭 Industrial Storage Buckets\n✨ Custom Solutions\n\nEach product is crafted with precision and quality. Which category interests you?",
			},
			QuickReplies: []string{"Paint Buckets", "Food Containers", "Industrial", "Custom Solutions"},
		},
		{
			Key:      "pricing",
			Patterns: []string{"price", "cost", "how much", "quote", "pricing", "rates", "expensive", "cheap", "budget"},
			Responses: []string{
				"I'll help you get the best pricing! Our rates depend on:\n\n• Order quantity\n• Product specifications\n• Customization level\n\nLet me connect you with our pricing team for a personalized quote. Click below to get started!",
			},
			QuickReplies: []string{"Request Quote", "View Bulk Discounts", "Sample Pricing"},
		},
		{
			Key:      "quality",
			Patterns: []string{"quality", "certification", "iso", "standards", "testing", "safety", "durable", "reliable"},
			Responses: []string{
				"Quality is our promise! We maintain:\n\n✅ ISO 9001:2015 Certification\n✅ Food-Grade Materials (FDA Approved)\n✅ 100% Quality Inspection\n✅ Advanced Testing Lab\n✅ 5-Year Durability Guarantee\n\nEvery bucket undergoes 15+ quality checks!",
			},
			QuickReplies: []string{"View Certifications", "Testing Process", "Quality Guarantee"},
		},
		{
			Key:      "customization",
			Patterns: []string{"custom", "personalize", "design", "logo", "branding", "color", "unique", "special"},
			Responses: []string{
				"Let's create something unique for you! Our customization options:\n\n🎨 Unlimited Color Options\n🖼️ Logo & Brand Printing\n📐 Custom Sizes & Shapes\n✨ Special Features & Finishes\n🎯 Dedicated Design Team\n\nWe've helped 500+ brands create their perfect packaging!",
			},
			QuickReplies: []string{"Design Process", "View Examples", "Start Customization"},
		},
		{
			Key:      "contact",
			Patterns: []string{"contact", "phone", "email", "reach", "talk", "speak", "call", "message"},
			Responses: []string{
				"I'm here 24/7, but you can also reach our human team:\n\n📧 Email: support@bucketpro.com\n📞 Phone: +1-234-567-8900\n💬 Live Chat: Available 9 AM - 6 PM EST\n📍 Visit Us: 123 Industrial Ave, Manufacturing City\n\nHow would you prefer to connect?",
			},
			QuickReplies: []string{"Call Now", "Send Email", "Schedule Meeting", "Visit Us"},
		},
		{
			Key:      "delivery",
			Patterns: []string{"delivery", "shipping", "lead time", "how long", "when", "fast", "express", "tracking"},
			Responses: []string{
				"Fast & reliable delivery guaranteed!\n\n🚀 Express: 24-48 hours (stock items)\n📦 Standard: 5-7 business days\n🎨 Custom Orders: 10-15 business days\n🌍 International: 7-21 days\n\nFREE shipping on orders over $1000! Real-time tracking included.",
			},
			QuickReplies: []string{"Track Order", "Shipping Rates", "Express Options"},
		},
		{
			Key:      "sustainability",
			Patterns: []string{"eco", "environment", "recycle", "sustainable", "green", "biodegradable"},
			Responses: []string{
				"We're committed to a greener future! 🌱\n\n♻️ 100% Recyclable Materials\n🌿 Bio-based Options Available\n🏭 Carbon-Neutral Manufacturing\n📦 Eco-Friendly Packaging\n🌍 Zero-Waste Production Goal by 2025\n\nJoin us in protecting our planet!",
			},
			QuickReplies: []string{"Eco Products", "Sustainability Report", "Green Initiatives"},
		},
		{
			Key:      "samples",
			Patterns: []string{"sample", "test", "trial", "demo", "example", "free"},
			Responses: []string{
				"Try before you buy! Our sample program:\n\n🎁 FREE samples for qualified businesses\n📦 3-5 sample products per request\n🚚 Ships within 24 hours\n✨ Includes custom printing preview\n\nPerfect for testing quality and fit!",
			},
			QuickReplies: []string{"Request Samples", "Sample Gallery", "Terms & Conditions"},
		},
		{
			Key:      KeyWarranty,
			Patterns: []string{"warranty", "guarantee", "return", "refund", "defect", "problem"},
			Responses: []string{
				"Your satisfaction is guaranteed!\n\n🛡️ 2-Year Manufacturing Warranty\n✅ 30-Day Money-Back Guarantee\n🔄 Easy Returns Process\n🏆 99.8% Customer Satisfaction Rate\n\nWe stand behind every product we make!",
			},
			QuickReplies: []string{"Warranty Details", "Return Process", "File Claim"},
		},
		{
			Key:      "minimum",
			Patterns: []string{"minimum", "moq", "smallest", "bulk", "quantity", "order size"},
			Responses: []string{
				"Flexible ordering to suit your needs:\n\n📦 Standard Products: 250 units (50% lower!)\n🎨 Custom Products: 500 units\n🎁 Sample Orders: 1-10 units\n🏢 Enterprise: Unlimited\n\n💡 Pro tip: Save 20% on orders over 5000 units!",
			},
			QuickReplies: []string{"Calculate Savings", "Bulk Pricing", "Small Orders"},
		},
		{
			Key:      "thanks",
			Patterns: []string{"thank", "thanks", "appreciate", "helpful", "great", "awesome", "good"},
			Responses: []string{
				"You're welcome! It's my pleasure to help. Is there anything else you'd like to know?",
				"Happy to help! Feel free to ask if you have more questions!",
				"Glad I could assist! Don't hesitate to reach out again.",
			},
			QuickReplies: []string{"Browse Products", "Get Quote", "Contact Sales"},
		},
		{
			Key:      "goodbye",
			Patterns: []string{"bye", "goodbye", "see you", "later", "exit", "quit"},
			Responses: []string{
				"Thanks for chatting with me! Have a great day! 👋",
				"Goodbye! Remember, I'm here 24/7 whenever you need help!",
				"See you soon! Don't forget to check out our latest products!",
			},
		},
		{
			Key:      KeyDefault,
			Patterns: nil,
			Responses: []string{
				"I'm here to help! You can ask me about:\n\n📦 Products & Catalog\n💰 Pricing & Quotes\n🏆 Quality Standards\n🎨 Customization\n🚚 Delivery Options\n\nWhat interests you?",
				"I didn't quite catch that. Try asking about our products, pricing, or click one of the options below!",
			},
			QuickReplies: []string{"View Products", "Get Pricing", "Quality Info", "Contact Us"},
		},
	}
}
