package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/bucketpro/bucketpro-go/internal/catalog"
	"github.com/bucketpro/bucketpro-go/internal/intent"
	"github.com/bucketpro/bucketpro-go/internal/model"
	"github.com/bucketpro/bucketpro-go/internal/quote"
	"github.com/bucketpro/bucketpro-go/internal/service"
	"github.com/bucketpro/bucketpro-go/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testApp struct {
	router *gin.Engine
	leads  *store.MemoryLeadStore
}

func newTestApp(t *testing.T, typingDelay time.Duration) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	sessions := service.NewSessionService(logger)
	t.Cleanup(sessions.Close)

	classifier := service.NewClassifierService(
		intent.NewClassifier(intent.DefaultCatalog(), intent.WithChooser(intent.FirstChooser)), logger)
	chat := service.NewChatService(sessions, classifier, typingDelay, logger)

	leads := store.NewMemoryLeadStore(logger)
	products := catalog.NewMemoryStore(logger)
	require.NoError(t, products.AddProducts(catalog.DefaultProducts()))

	r := gin.New()
	SetupRoutes(r, Handlers{
		API:        NewAPIHandler("bucketpro-test", sessions, service.NewLeadService(leads, logger), logger),
		Classifier: NewClassifierHandler(classifier, logger),
		Quote:      NewQuoteHandler(service.NewQuoteService(quote.NewEngine(quote.DefaultPriceBook()), logger), logger),
		Catalog:    NewCatalogHandler(service.NewCatalogService(products, catalog.NewComparer(catalog.DefaultModels()), logger), logger),
		WebSocket:  NewWebSocketHandler(sessions, chat, nil, logger),
	})

	return &testApp{router: r, leads: leads}
}

func (a *testApp) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, time.Millisecond)
	w := app.do(http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	decode(t, w, &body)
	assert.Equal(t, "UP", body["status"])
	assert.Equal(t, "bucketpro-test", body["service"])
	assert.Equal(t, float64(0), body["online_sessions"])
}

func TestChat_Stateless(t *testing.T) {
	app := newTestApp(t, time.Millisecond)

	w := app.do(http.MethodPost, "/api/chat", gin.H{"message": "How much does it cost?"})
	require.Equal(t, http.StatusOK, w.Code)

	var first ChatResponse
	decode(t, w, &first)
	assert.Equal(t, "pricing", first.Intent)
	assert.Equal(t, 12.0, first.Score)
	assert.Equal(t, "pricing", first.Context.LastIntent)
	assert.Equal(t, []string{"How much does it cost?"}, first.Context.History)
	assert.NotEmpty(t, first.Reply)

	// 带回上下文后，同一意图获得连续性加成
	w = app.do(http.MethodPost, "/api/chat", ChatRequest{Message: "what is the price", Context: first.Context})
	require.Equal(t, http.StatusOK, w.Code)

	var second ChatResponse
	decode(t, w, &second)
	assert.Equal(t, "pricing", second.Intent)
	assert.InDelta(t, 5*intent.ContinuityBoost, second.Score, 1e-9)
	assert.Len(t, second.Context.History, 2)
}

func TestChat_NegativeSentimentEscalates(t *testing.T) {
	app := newTestApp(t, time.Millisecond)

	ctx := intent.Context{LastIntent: "pricing", History: []string{}}
	w := app.do(http.MethodPost, "/api/chat", ChatRequest{Message: "your delivery was awful", Context: ctx})
	require.Equal(t, http.StatusOK, w.Code)

	var resp ChatResponse
	decode(t, w, &resp)
	assert.Equal(t, intent.KeySupport, resp.Intent)
	assert.Equal(t, intent.SupportResponse, resp.Reply)
	assert.Equal(t, intent.SupportQuickReplies, resp.QuickReplies)
	assert.Equal(t, "pricing", resp.Context.LastIntent)
}

func TestChat_BadRequest(t *testing.T) {
	app := newTestApp(t, time.Millisecond)
	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodPost, "/api/chat", gin.H{"message": "   "}).Code)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader("{"))
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClassify(t *testing.T) {
	app := newTestApp(t, time.Millisecond)

	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodGet, "/api/classify", nil).Code)

	w := app.do(http.MethodGet, "/api/classify?question=WHAT+IS+THE+DELIVERY+LEAD+TIME", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var res service.ClassifyResult
	decode(t, w, &res)
	assert.Equal(t, "delivery", res.Intent)
	assert.Equal(t, 17.0, res.Score)
	assert.Equal(t, intent.SentimentNeutral, res.Sentiment)
	assert.Len(t, res.Scores, 13)

	w = app.do(http.MethodGet, "/api/classify?question=delivery+lead+time&lastIntent=delivery", nil)
	decode(t, w, &res)
	assert.InDelta(t, 17*intent.ContinuityBoost, res.Score, 1e-9)
}

func TestPricingProducts(t *testing.T) {
	app := newTestApp(t, time.Millisecond)
	w := app.do(http.MethodGet, "/api/pricing/products", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var info service.PricingInfo
	decode(t, w, &info)
	require.Len(t, info.ProductTypes, 4)
	assert.Equal(t, "standard", info.ProductTypes[0].Key)
	assert.Len(t, info.Customizations, 5)
	assert.Equal(t, 20000, info.Quantity.Max)
}

func TestQuoteEstimate(t *testing.T) {
	app := newTestApp(t, time.Millisecond)

	w := app.do(http.MethodPost, "/api/quotes/estimate", quote.Request{ProductType: "standard", Size: "5L", Quantity: 500})
	require.Equal(t, http.StatusOK, w.Code)

	var est service.Estimate
	decode(t, w, &est)
	assert.InDelta(t, 2.5, est.UnitPrice, 1e-9)
	assert.InDelta(t, 1250, est.TotalPrice, 1e-9)
	assert.Equal(t, "0%", est.DiscountPercent)

	w = app.do(http.MethodPost, "/api/quotes/estimate", quote.Request{ProductType: "standard", Size: "20L", Quantity: 5000, Customizations: []string{"logo"}, UrgentDelivery: true})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &est)
	assert.Equal(t, "15%", est.DiscountPercent)
	assert.InDelta(t, 28103.125, est.TotalPrice, 1e-6)
}

func TestQuoteEstimate_BadRequest(t *testing.T) {
	app := newTestApp(t, time.Millisecond)

	tests := []struct {
		name string
		body interface{}
	}{
		{"unknown_type", quote.Request{ProductType: "golden", Size: "5L", Quantity: 100}},
		{"zero_quantity", gin.H{"productType": "standard", "size": "5L", "quantity": 0}},
		{"negative_quantity", gin.H{"productType": "standard", "size": "5L", "quantity": -100}},
		{"missing_type", gin.H{"size": "5L", "quantity": 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.do(http.MethodPost, "/api/quotes/estimate", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestQuoteDocument(t *testing.T) {
	app := newTestApp(t, time.Millisecond)

	w := app.do(http.MethodPost, "/api/quotes/document", quote.Request{ProductType: "foodGrade", Size: "10L", Quantity: 1200, Customizations: []string{"color"}})
	require.Equal(t, http.StatusOK, w.Code)

	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))
	assert.Regexp(t, regexp.MustCompile(`^attachment; filename="quote-\d+\.txt"$`), w.Header().Get("Content-Disposition"))

	body := w.Body.String()
	assert.Contains(t, body, "- Type: Food Grade Bucket\n")
	assert.Contains(t, body, "- Quantity: 1,200 units\n")
	assert.Contains(t, body, "- Volume Discount: 5%\n")
}

func TestProducts(t *testing.T) {
	app := newTestApp(t, time.Millisecond)

	var body struct {
		Categories []string          `json:"categories"`
		Products   []catalog.Product `json:"products"`
	}

	decode(t, app.do(http.MethodGet, "/api/products", nil), &body)
	assert.Len(t, body.Products, 9)
	assert.Equal(t, catalog.Categories, body.Categories)

	decode(t, app.do(http.MethodGet, "/api/products?category=industrial", nil), &body)
	require.Len(t, body.Products, 3)
	assert.Equal(t, 7, body.Products[0].ID)

	decode(t, app.do(http.MethodGet, "/api/products?category=toys", nil), &body)
	assert.Empty(t, body.Products)

	decode(t, app.do(http.MethodGet, "/api/products?q=curd", nil), &body)
	require.NotEmpty(t, body.Products)
	assert.Equal(t, 5, body.Products[0].ID)
}

func TestProduct(t *testing.T) {
	app := newTestApp(t, time.Millisecond)

	w := app.do(http.MethodGet, "/api/products/4", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var p catalog.Product
	decode(t, w, &p)
	assert.Equal(t, "Food Grade Container - 15L", p.Name)

	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodGet, "/api/products/abc", nil).Code)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/api/products/99", nil).Code)
}

func TestCompare(t *testing.T) {
	app := newTestApp(t, time.Millisecond)

	w := app.do(http.MethodGet, "/api/compare?ids=paint-bucket,+food-bucket,industrial-bucket", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cmp catalog.Comparison
	decode(t, w, &cmp)
	assert.Len(t, cmp.Models, 3)
	require.Len(t, cmp.Rows, 12)
	assert.Equal(t, []interface{}{"7-10 days", "5-7 days", "10-14 days"}, cmp.Rows[11].Values)

	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodGet, "/api/compare?ids=paint-bucket", nil).Code)
	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodGet, "/api/compare", nil).Code)
	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodGet, "/api/compare?ids=paint-bucket,paint-bucket", nil).Code)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/api/compare?ids=paint-bucket,gold-bucket", nil).Code)

	var models struct {
		Models []catalog.Model `json:"models"`
	}
	decode(t, app.do(http.MethodGet, "/api/compare/models", nil), &models)
	assert.Len(t, models.Models, 4)
}

func TestLeads_Quote(t *testing.T) {
	app := newTestApp(t, time.Millisecond)

	valid := gin.H{
		"companyName":   "Acme Paints",
		"contactPerson": "Dana",
		"email":         "dana@acme.example",
		"phone":         "555-0100",
		"productType":   "paint",
		"customization": []string{"printing", "customColor"},
	}

	w := app.do(http.MethodPost, "/api/leads/quote", valid)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp model.LeadResponse
	decode(t, w, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, service.QuoteLeadMessage, resp.Message)
	require.Len(t, app.leads.QuoteLeads(), 1)
	assert.Equal(t, resp.ID, app.leads.QuoteLeads()[0].ID)

	invalid := []gin.H{
		{"companyName": "Acme", "contactPerson": "Dana", "phone": "1"},
		{"companyName": "Acme", "contactPerson": "Dana", "email": "not-an-email", "phone": "1"},
		{"companyName": "Acme", "contactPerson": "Dana", "email": "d@a.example", "phone": "1", "productType": "toys"},
		{"companyName": "Acme", "contactPerson": "Dana", "email": "d@a.example", "phone": "1", "customization": []string{"glitter"}},
		{"companyName": "<b></b>", "contactPerson": "Dana", "email": "d@a.example", "phone": "1"},
	}
	for _, body := range invalid {
		assert.Equal(t, http.StatusBadRequest, app.do(http.MethodPost, "/api/leads/quote", body).Code, body)
	}
	assert.Len(t, app.leads.QuoteLeads(), 1)
}

func TestLeads_Contact(t *testing.T) {
	app := newTestApp(t, time.Millisecond)

	w := app.do(http.MethodPost, "/api/leads/contact", gin.H{"name": "Lee", "email": "lee@example.com", "message": "Need 5L pails"})
	require.Equal(t, http.StatusCreated, w.Code)
	var resp model.LeadResponse
	decode(t, w, &resp)
	assert.Equal(t, service.ContactLeadMessage, resp.Message)

	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodPost, "/api/leads/contact", gin.H{"name": "Lee", "email": "lee@example.com"}).Code)
	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodPost, "/api/leads/contact", gin.H{"name": "<>", "email": "lee@example.com", "message": "Hi"}).Code)
	assert.Len(t, app.leads.ContactLeads(), 1)

	long := strings.Repeat("x", 1200)
	w = app.do(http.MethodPost, "/api/leads/contact", gin.H{"name": "Lee", "email": "lee@example.com", "message": long})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, app.leads.ContactLeads(), 2)
	assert.Equal(t, long, app.leads.ContactLeads()[1].Message)
}

func dialChat(t *testing.T, app *testApp) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(app.router)
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/chat", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) model.ServerFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var f model.ServerFrame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func TestWebSocket_Conversation(t *testing.T) {
	app := newTestApp(t, 10*time.Millisecond)
	conn := dialChat(t, app)

	welcome := readFrame(t, conn)
	require.Equal(t, model.FrameMessage, welcome.Type)
	assert.Equal(t, service.WelcomeText, welcome.Message.Text)
	assert.Equal(t, service.WelcomeQuickReplies, welcome.Message.QuickReplies)

	require.NoError(t, conn.WriteJSON(model.ClientFrame{Type: model.FrameQuickReply, Content: "Get Quote"}))

	typing := readFrame(t, conn)
	require.Equal(t, model.FrameTyping, typing.Type)
	assert.True(t, *typing.Typing)

	reply := readFrame(t, conn)
	require.Equal(t, model.FrameMessage, reply.Type)
	assert.Equal(t, model.SenderBot, reply.Message.Sender)
	pricing, _ := intent.DefaultCatalog().Get("pricing")
	assert.Equal(t, pricing.Responses[0], reply.Message.Text)

	done := readFrame(t, conn)
	require.Equal(t, model.FrameTyping, done.Type)
	assert.False(t, *done.Typing)

	require.NoError(t, conn.WriteJSON(model.ClientFrame{Type: "PING"}))
	unknown := readFrame(t, conn)
	assert.Equal(t, model.FrameError, unknown.Type)
}

func TestWebSocket_BusyAndHeartbeat(t *testing.T) {
	app := newTestApp(t, time.Hour)
	conn := dialChat(t, app)
	readFrame(t, conn) // 欢迎语

	require.NoError(t, conn.WriteJSON(model.ClientFrame{Type: model.FrameHeartbeat}))
	require.NoError(t, conn.WriteJSON(model.ClientFrame{Type: model.FrameChat, Content: "hello"}))
	require.NoError(t, conn.WriteJSON(model.ClientFrame{Type: model.FrameChat, Content: "hello again"}))

	typing := readFrame(t, conn)
	require.Equal(t, model.FrameTyping, typing.Type)

	busy := readFrame(t, conn)
	assert.Equal(t, model.FrameError, busy.Type)
	assert.Equal(t, "busy", busy.Error)
}
