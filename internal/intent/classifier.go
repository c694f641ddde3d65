package intent

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

// ContinuityBoost 上一轮意图的得分加成
const ContinuityBoost = 1.2

// SupportResponse 负面情绪时的人工支持回复
const SupportResponse = "I understand you might be facing some concerns. Let me connect you with our support team who can help resolve this quickly. Meanwhile, how can I assist you?"

// SupportQuickReplies 人工支持回复的快捷选项
var SupportQuickReplies = []string{"Talk to Support", "File Complaint", "View Warranty"}

var (
	positiveWords = []string{"love", "great", "amazing", "excellent", "perfect", "best"}
	negativeWords = []string{"bad", "terrible", "awful", "hate", "worst", "problem"}
)

// Sentiment 情绪
type Sentiment string

const (
	SentimentNeutral  Sentiment = "neutral"
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
)

// Chooser 从 n 个候选回复中选一个下标，测试中可替换为确定性实现
type Chooser interface {
	Choose(n int) int
}

// ChooserFunc 函数适配器
type ChooserFunc func(n int) int

// Choose 实现 Chooser
func (f ChooserFunc) Choose(n int) int { return f(n) }

// FirstChooser 总是选第一条
var FirstChooser = ChooserFunc(func(int) int { return 0 })

// randomChooser 均匀随机选择（并发安全）
type randomChooser struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomChooser 创建均匀随机选择器
func NewRandomChooser(seed int64) Chooser {
	return &randomChooser{rnd: rand.New(rand.NewSource(seed))}
}

func (r *randomChooser) Choose(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(n)
}

// Score 单个意图的得分
type Score struct {
	Key   string  `json:"key"`
	Score float64 `json:"score"`
}

// Classification 分类结果
type Classification struct {
	Intent    string    `json:"intent"`
	Score     float64   `json:"score"`
	Sentiment Sentiment `json:"sentiment"`
	// Matched 覆盖前得分最高的意图
	Matched string `json:"matched"`
}

// Reply 回复
type Reply struct {
	Text         string   `json:"text"`
	QuickReplies []string `json:"quickReplies,omitempty"`
}

// Turn 一轮对话的结果
type Turn struct {
	Reply
	Intent string  `json:"intent"`
	Score  float64 `json:"score"`
	// Context 更新后的上下文
	Context Context `json:"context"`
}

// Classifier 基于关键词的意图分类器
type Classifier struct {
	catalog     *Catalog
	chooser     Chooser
	historySize int
}

// Option 分类器选项
type Option func(*Classifier)

// WithChooser 指定回复选择器
func WithChooser(ch Chooser) Option {
	return func(c *Classifier) { c.chooser = ch }
}

// WithHistorySize 指定上下文历史长度
func WithHistorySize(n int) Option {
	return func(c *Classifier) { c.historySize = n }
}

// NewClassifier 创建分类器
func NewClassifier(catalog *Catalog, opts ...Option) *Classifier {
	c := &Classifier{
		catalog:     catalog,
		chooser:     NewRandomChooser(time.Now().UnixNano()),
		historySize: DefaultHistorySize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Catalog 返回分类器使用的目录
func (c *Classifier) Catalog() *Catalog {
	return c.catalog
}

// Scores 计算每个非兜底意图的得分（按目录顺序）
func (c *Classifier) Scores(cleanText string, ctx Context) []Score {
	lower := strings.ToLower(cleanText)

	scores := make([]Score, 0, c.catalog.Len())
	for _, in := range c.catalog.intents {
		if in.Key == KeyDefault {
			continue
		}

		var score float64
		for _, p := range in.Patterns {
			if strings.Contains(lower, strings.ToLower(p)) {
				score += float64(len([]rune(p)))
			}
		}
		if ctx.LastIntent == in.Key {
			score *= ContinuityBoost
		}

		scores = append(scores, Score{Key: in.Key, Score: score})
	}
	return scores
}

// DetectSentiment 情绪检测
func DetectSentiment(cleanText string) Sentiment {
	lower := strings.ToLower(cleanText)
	if containsAny(lower, negativeWords) {
		return SentimentNegative
	}
	if containsAny(lower, positiveWords) {
		return SentimentPositive
	}
	return SentimentNeutral
}

// Classify 对清洗后的文本分类。负面情绪且最佳意图不是 warranty 时返回 support。
func (c *Classifier) Classify(cleanText string, ctx Context) Classification {
	best := Score{Key: KeyDefault}
	for _, s := range c.Scores(cleanText, ctx) {
		// 严格大于：同分时先出现的意图胜出
		if s.Score > best.Score {
			best = s
		}
	}

	sentiment := DetectSentiment(cleanText)
	if sentiment == SentimentNegative && best.Key != KeyWarranty {
		return Classification{
			Intent:    KeySupport,
			Score:     best.Score,
			Sentiment: sentiment,
			Matched:   best.Key,
		}
	}

	return Classification{
		Intent:    best.Key,
		Score:     best.Score,
		Sentiment: sentiment,
		Matched:   best.Key,
	}
}

// Respond 为意图随机选择一条回复
func (c *Classifier) Respond(key string) Reply {
	if key == KeySupport {
		return Reply{
			Text:         SupportResponse,
			QuickReplies: append([]string(nil), SupportQuickReplies...),
		}
	}

	in, ok := c.catalog.Get(key)
	if !ok {
		in, _ = c.catalog.Get(KeyDefault)
	}

	idx := c.chooser.Choose(len(in.Responses))
	if idx < 0 || idx >= len(in.Responses) {
		idx = 0
	}

	reply := Reply{Text: in.Responses[idx]}
	if len(in.QuickReplies) > 0 {
		reply.QuickReplies = append([]string(nil), in.QuickReplies...)
	}
	return reply
}

// Converse 处理一轮对话：清洗 → 分类 → 回复，并返回更新后的上下文
func (c *Classifier) Converse(input string, ctx Context) Turn {
	ctx = ctx.Remember(input, c.historySize)

	clean := Sanitize(input)
	cls := c.Classify(clean, ctx)
	reply := c.Respond(cls.Intent)

	return Turn{
		Reply:   reply,
		Intent:  cls.Intent,
		Score:   cls.Score,
		Context: ctx.WithIntent(cls.Intent),
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
