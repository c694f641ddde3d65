package handler

import "github.com/gin-gonic/gin"

// Handlers 路由用到的全部处理器
type Handlers struct {
	API        *APIHandler
	Classifier *ClassifierHandler
	Quote      *QuoteHandler
	Catalog    *CatalogHandler
	WebSocket  *WebSocketHandler
}

// SetupRoutes 注册 /api 和 /ws 路由，limit 作用于两组路由
func SetupRoutes(r *gin.Engine, h Handlers, limit ...gin.HandlerFunc) {
	api := r.Group("/api", limit...)
	{
		api.GET("/health", h.API.Health)

		api.POST("/chat", h.Classifier.Chat)
		api.GET("/classify", h.Classifier.Classify)

		api.GET("/pricing/products", h.Quote.Pricing)
		api.POST("/quotes/estimate", h.Quote.Estimate)
		api.POST("/quotes/document", h.Quote.Document)

		api.GET("/products", h.Catalog.Products)
		api.GET("/products/:id", h.Catalog.Product)
		api.GET("/compare", h.Catalog.Compare)
		api.GET("/compare/models", h.Catalog.Models)

		api.POST("/leads/quote", h.API.SubmitQuoteLead)
		api.POST("/leads/contact", h.API.SubmitContactLead)
	}

	ws := r.Group("/ws", limit...)
	ws.GET("/chat", h.WebSocket.HandleWebSocket)
}
