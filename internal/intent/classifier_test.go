package intent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	return NewClassifier(DefaultCatalog(), WithChooser(FirstChooser))
}

func scoreOf(scores []Score, key string) float64 {
	for _, s := range scores {
		if s.Key == key {
			return s.Score
		}
	}
	return -1
}

func TestClassify(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name      string
		input     string
		wantKey   string
		wantScore float64
	}{
		{
			name:      "pricing_beats_greeting",
			input:     "hello, how much does a bucket cost",
			wantKey:   "pricing",
			wantScore: 12,
		},
		{
			name:      "plain_greeting",
			input:     "hello",
			wantKey:   "greeting",
			wantScore: 5,
		},
		{
			name:      "sustainability",
			input:     "Are your buckets biodegradable?",
			wantKey:   "sustainability",
			wantScore: 13,
		},
		{
			name:      "no_match_falls_back",
			input:     "zzz qqq",
			wantKey:   KeyDefault,
			wantScore: 0,
		},
		{
			name:      "empty_input",
			input:     "",
			wantKey:   KeyDefault,
			wantScore: 0,
		},
		{
			name:      "case_insensitive",
			input:     "WHAT IS THE DELIVERY LEAD TIME",
			wantKey:   "delivery",
			wantScore: 17,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(Sanitize(tt.input), NewContext())
			assert.Equal(t, tt.wantKey, got.Intent)
			assert.InDelta(t, tt.wantScore, got.Score, 1e-9)
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	c := NewClassifier(DefaultCatalog())
	ctx := Context{LastIntent: "quality"}

	first := c.Classify("is your quality iso certified", ctx)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, c.Classify("is your quality iso certified", ctx))
	}
}

func TestClassify_TieKeepsEarliest(t *testing.T) {
	catalog, err := NewCatalog([]Intent{
		{Key: "alpha", Patterns: []string{"abc"}, Responses: []string{"a"}},
		{Key: "beta", Patterns: []string{"xyz"}, Responses: []string{"b"}},
		{Key: KeyDefault, Responses: []string{"d"}},
	})
	require.NoError(t, err)

	c := NewClassifier(catalog)
	got := c.Classify("abc xyz", NewContext())
	assert.Equal(t, "alpha", got.Intent)
	assert.Equal(t, 3.0, got.Score)
}

func TestScores_ContinuityBoost(t *testing.T) {
	c := newTestClassifier(t)
	input := "do you offer a warranty or refund"

	plain := c.Scores(input, NewContext())
	boosted := c.Scores(input, Context{LastIntent: KeyWarranty})

	s := scoreOf(plain, KeyWarranty)
	require.Greater(t, s, 0.0)
	assert.InDelta(t, 1.2*s, scoreOf(boosted, KeyWarranty), 1e-9)

	for _, p := range plain {
		if p.Key == KeyWarranty {
			continue
		}
		assert.Equal(t, p.Score, scoreOf(boosted, p.Key), p.Key)
	}
}

func TestScores_BoostCanChangeWinner(t *testing.T) {
	c := newTestClassifier(t)
	// greeting: "hello"=5, products: "items"=5
	input := "hello items"

	assert.Equal(t, "greeting", c.Classify(input, NewContext()).Intent)
	assert.Equal(t, "products", c.Classify(input, Context{LastIntent: "products"}).Intent)
}

func TestClassify_NegativeSentimentOverride(t *testing.T) {
	c := newTestClassifier(t)

	got := c.Classify("this is a terrible product", NewContext())
	assert.Equal(t, KeySupport, got.Intent)
	assert.Equal(t, SentimentNegative, got.Sentiment)

	got = c.Classify("these buckets are terrible", NewContext())
	assert.Equal(t, KeySupport, got.Intent)
	assert.Equal(t, "products", got.Matched)

	// 得分再高也会被覆盖
	got = c.Classify("awful price, cost, pricing, how much, quote", NewContext())
	assert.Equal(t, KeySupport, got.Intent)
	assert.Equal(t, "pricing", got.Matched)
}

func TestClassify_WarrantyNotOverridden(t *testing.T) {
	c := newTestClassifier(t)

	got := c.Classify("the warranty process was terrible", NewContext())
	assert.Equal(t, KeyWarranty, got.Intent)
	assert.Equal(t, SentimentNegative, got.Sentiment)
}

func TestDetectSentiment(t *testing.T) {
	assert.Equal(t, SentimentPositive, DetectSentiment("I LOVE these buckets"))
	assert.Equal(t, SentimentNegative, DetectSentiment("worst day"))
	assert.Equal(t, SentimentNegative, DetectSentiment("great but bad"))
	assert.Equal(t, SentimentNeutral, DetectSentiment("buckets please"))
}

func TestRespond(t *testing.T) {
	c := newTestClassifier(t)

	r := c.Respond("greeting")
	assert.True(t, strings.HasPrefix(r.Text, "Hello! Welcome to BucketPro Solutions."))
	assert.Equal(t, []string{"View Products", "Get Quote", "Learn About Quality", "Custom Solutions"}, r.QuickReplies)

	bye := c.Respond("goodbye")
	assert.Nil(t, bye.QuickReplies)

	support := c.Respond(KeySupport)
	assert.Equal(t, SupportResponse, support.Text)
	assert.Equal(t, SupportQuickReplies, support.QuickReplies)

	unknown := c.Respond("nope")
	def, _ := c.Catalog().Get(KeyDefault)
	assert.Equal(t, def.Responses[0], unknown.Text)
}

func TestRespond_VariesOnlyInText(t *testing.T) {
	c := NewClassifier(DefaultCatalog(), WithChooser(NewRandomChooser(42)))
	thanks, _ := c.Catalog().Get("thanks")

	for i := 0; i < 50; i++ {
		r := c.Respond("thanks")
		assert.Contains(t, thanks.Responses, r.Text)
		assert.Equal(t, thanks.QuickReplies, r.QuickReplies)
	}
}

func TestConverse(t *testing.T) {
	c := newTestClassifier(t)

	turn := c.Converse("  <b>hello</b> there  ", NewContext())
	assert.Equal(t, "greeting", turn.Intent)
	assert.Equal(t, "greeting", turn.Context.LastIntent)
	assert.Equal(t, []string{"  <b>hello</b> there  "}, turn.Context.History)

	turn = c.Converse("this is bad", turn.Context)
	assert.Equal(t, KeySupport, turn.Intent)
	assert.Equal(t, SupportResponse, turn.Text)
	// support 不写回 lastIntent
	assert.Equal(t, "greeting", turn.Context.LastIntent)
	assert.Len(t, turn.Context.History, 2)
}

func TestConverse_HistoryBounded(t *testing.T) {
	c := newTestClassifier(t)
	ctx := NewContext()
	for i := 0; i < 15; i++ {
		ctx = c.Converse(strings.Repeat("x", i+1), ctx).Context
	}

	require.Len(t, ctx.History, DefaultHistorySize)
	assert.Equal(t, strings.Repeat("x", 6), ctx.History[0])
	assert.Equal(t, strings.Repeat("x", 15), ctx.History[9])
}

func TestNewCatalog_Validation(t *testing.T) {
	_, err := NewCatalog([]Intent{{Key: "a", Responses: []string{"x"}}, {Key: KeyDefault, Responses: []string{"d"}}})
	assert.Error(t, err, "non-fallback intent without patterns")

	_, err = NewCatalog([]Intent{{Key: KeyDefault, Patterns: []string{"x"}, Responses: []string{"d"}}})
	assert.Error(t, err, "fallback with patterns")

	_, err = NewCatalog([]Intent{{Key: "a", Patterns: []string{"a"}, Responses: []string{"x"}}})
	assert.Error(t, err, "missing fallback")

	_, err = NewCatalog([]Intent{
		{Key: "a", Patterns: []string{"a"}, Responses: []string{"x"}},
		{Key: "a", Patterns: []string{"b"}, Responses: []string{"y"}},
		{Key: KeyDefault, Responses: []string{"d"}},
	})
	assert.Error(t, err, "duplicate key")

	assert.Equal(t, 14, DefaultCatalog().Len())
}
