package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"smartbite/internal/api/handlers/estimate"
	"smartbite/internal/api/handlers/health"
	"smartbite/internal/api/middleware"
	"smartbite/internal/core/cache"
	"smartbite/internal/core/knowledge"
	"smartbite/internal/core/pipeline"
	"smartbite/internal/core/provider/nutritionix"
	"smartbite/internal/core/provider/walmart"
	"smartbite/internal/core/quantity"
	"smartbite/internal/core/scraper"
	"smartbite/internal/core/snapshot"
	"smartbite/internal/infrastructure/config"
	"smartbite/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 估算要打外部搜尋與兩個供應商，超時放寬到兩分鐘
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (64KB)，估算請求只有查詢字串
	maxBodySize = 64 << 10
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, facts cache.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("nutritionix_enabled", cfg.Nutritionix.Enabled),
		zap.Bool("serpapi_enabled", cfg.SerpAPI.Enabled),
		zap.Duration("timeout", timeoutDuration),
	)

	// 初始化核心服務
	canon := knowledge.NewCanonicalizer(knowledge.NewBuiltinKB())
	parser := quantity.NewParser(canon)
	source := scraper.NewScraper(&cfg.Scraper)
	nutrition := nutritionix.NewClient(&cfg.Nutritionix)
	price := walmart.NewClient(&cfg.SerpAPI)

	pipelineSvc := pipeline.NewService(source, nutrition, price, parser, facts)

	snapshots, err := snapshot.NewStore(cfg.Snapshot.Dir)
	if err != nil {
		common.LogError("Failed to initialize snapshot store", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize snapshot store: %w", err)
	}

	// 全局中間件：設置超時和服務
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Set("config", cfg)
		if stats, ok := facts.(health.CacheStats); ok {
			c.Set("cache_stats", stats)
		}

		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeGatewayTimeout,
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	apiGroup := router.Group("/api/v1")
	{
		estimateHandler := estimate.NewHandler(pipelineSvc, snapshots)

		estimateGroup := apiGroup.Group("/estimate")
		if cfg.RateLimit.Enabled {
			estimateGroup.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
		}
		estimateGroup.Use(middleware.Deduplication(cfg))
		{
			estimateGroup.POST("", estimateHandler.HandleEstimate)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
