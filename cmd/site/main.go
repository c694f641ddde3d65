package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bucketpro/bucketpro-go/internal/catalog"
	"github.com/bucketpro/bucketpro-go/internal/config"
	"github.com/bucketpro/bucketpro-go/internal/handler"
	"github.com/bucketpro/bucketpro-go/internal/intent"
	"github.com/bucketpro/bucketpro-go/internal/middleware"
	"github.com/bucketpro/bucketpro-go/internal/quote"
	"github.com/bucketpro/bucketpro-go/internal/service"
	"github.com/bucketpro/bucketpro-go/internal/store"
	"github.com/bucketpro/bucketpro-go/pkg/logger"
	"github.com/bucketpro/bucketpro-go/pkg/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用环境变量")
	}

	configPath := os.Getenv("SITE_CONFIG")
	if configPath == "" {
		configPath = "configs/site.yaml"
	}

	// 加载配置
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化日志
	zapLogger, err := logger.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("site 服务启动中...", zap.String("config", configPath))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 意图目录和价目表
	intents := intent.DefaultCatalog()
	if cfg.Chat.IntentsFile != "" {
		if intents, err = intent.LoadCatalog(cfg.Chat.IntentsFile); err != nil {
			zapLogger.Fatal("加载意图目录失败", zap.Error(err))
		}
	}
	priceBook := quote.DefaultPriceBook()
	if cfg.Pricing.File != "" {
		if priceBook, err = quote.LoadPriceBook(cfg.Pricing.File); err != nil {
			zapLogger.Fatal("加载价目表失败", zap.Error(err))
		}
	}

	// 线索存储
	var leadStore store.LeadStore = store.NewMemoryLeadStore(zapLogger)
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			zapLogger.Fatal("初始化 Redis 失败", zap.Error(err))
		}
		defer redisClient.Close()
		leadStore = store.NewRedisLeadStore(redisClient, zapLogger)
		zapLogger.Info("线索存储使用 Redis", zap.String("addr", cfg.Redis.Addr()))
	}

	products := catalog.NewMemoryStore(zapLogger)
	if err := products.AddProducts(catalog.DefaultProducts()); err != nil {
		zapLogger.Fatal("加载产品目录失败", zap.Error(err))
	}

	// 初始化服务
	sessionService := service.NewSessionService(zapLogger)
	defer sessionService.Close()
	classifierService := service.NewClassifierService(
		intent.NewClassifier(intents, intent.WithHistorySize(cfg.Chat.HistorySize)), zapLogger)
	chatService := service.NewChatService(sessionService, classifierService, cfg.Chat.TypingDelay, zapLogger)
	quoteService := service.NewQuoteService(quote.NewEngine(priceBook), zapLogger)
	leadService := service.NewLeadService(leadStore, zapLogger)
	catalogService := service.NewCatalogService(products, catalog.NewComparer(catalog.DefaultModels()), zapLogger)

	// 初始化路由
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, zapLogger)
	go limiter.Run(ctx.Done())

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(zapLogger), middleware.CORS(cfg.CORS.AllowOrigins))
	handler.SetupRoutes(r, handler.Handlers{
		API:        handler.NewAPIHandler(cfg.Server.Name, sessionService, leadService, zapLogger),
		Classifier: handler.NewClassifierHandler(classifierService, zapLogger),
		Quote:      handler.NewQuoteHandler(quoteService, zapLogger),
		Catalog:    handler.NewCatalogHandler(catalogService, zapLogger),
		WebSocket:  handler.NewWebSocketHandler(sessionService, chatService, cfg.CORS.AllowOrigins, zapLogger),
	}, limiter.Middleware())

	// 启动服务
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("服务启动失败", zap.Error(err))
		}
	}()
	zapLogger.Info("site 服务启动成功", zap.Int("port", cfg.Server.Port))

	<-ctx.Done()
	zapLogger.Info("site 服务正在关闭...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("服务关闭失败", zap.Error(err))
	}
}
