package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	ossignal "os/signal"
	"strings"
	"syscall"
	"time"

	"frauddetect/internal/bot"
	"frauddetect/internal/cache"
	"frauddetect/internal/config"
	"frauddetect/internal/db"
	"frauddetect/internal/handler"
	"frauddetect/internal/llm"
	"frauddetect/internal/prompt"
	"frauddetect/internal/repository"
	"frauddetect/internal/service"
	"frauddetect/internal/stats"
	"frauddetect/pkg/tracing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "frauddetect/docs"
)

var (
	loadEnvFunc             = godotenv.Load
	loadConfigFunc          = config.Load
	initPostgresFunc        = db.InitPostgres
	initRedisFunc           = cache.InitRedis
	initTracerFunc          = tracing.InitTracer
	newAssessmentRepoFunc   = repository.NewAssessmentRepository
	newConversationRepoFunc = repository.NewConversationRepository
	newOpenAIClientFunc     = llm.NewOpenAIClient
	newAnalysisServiceFunc  = service.NewAnalysisService
	newAdvisorServiceFunc   = service.NewAdvisorService
	newStatsServiceFunc     = stats.NewStatsService
	startTelegramBotFunc    = bot.StartTelegramBot
	newHandlerFunc          = handler.New
	newRouterFunc           = gin.Default
	setupSignalNotify       = ossignal.Notify
	waitForSignalFunc       = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc     = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc  = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           FraudDetect API
// @version         1.0
// @description     Fraud detection dashboard backend with an LLM analysis core.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init Postgres and Redis
	os.Setenv("DATABASE_URL", cfg.DatabaseURL)
	os.Setenv("REDIS_URL", cfg.RedisURL)
	initPostgresFunc(ctx)
	initRedisFunc(ctx)

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Create repositories and run migrations. Without Postgres the
	// dashboard still works, it just loses persistence.
	var assessmentStore service.AssessmentStore
	var conversationStore service.ConversationStore
	if db.Pool != nil {
		assessmentRepo := newAssessmentRepoFunc(db.Pool, tracer)
		conversationRepo := newConversationRepoFunc(db.Pool, tracer)
		if err := assessmentRepo.RunMigrations(ctx); err != nil {
			log.Fatalf("failed to run assessment migrations: %v", err)
		}
		if err := conversationRepo.RunMigrations(ctx); err != nil {
			log.Fatalf("failed to run conversation migrations: %v", err)
		}
		assessmentStore = assessmentRepo
		conversationStore = conversationRepo
	}

	// Create the model client and services
	llmClient := newOpenAIClientFunc(llm.Config{
		APIKey:    cfg.OpenAIAPIKey,
		Model:     cfg.OpenAIModel,
		BaseURL:   cfg.OpenAIBaseURL,
		Timeout:   time.Duration(cfg.LLMTimeoutSecs) * time.Second,
		MaxTokens: cfg.LLMMaxTokens,
	}, prompt.SystemInstruction)
	assessmentCache := cache.NewAssessmentCache(cache.Client, time.Duration(cfg.AssessmentCacheTTLSecs)*time.Second)
	analysisService := newAnalysisServiceFunc(tracer, llmClient, assessmentStore, assessmentCache)
	advisorService := newAdvisorServiceFunc(tracer, llmClient, conversationStore, cfg.AdvisorMaxHistory)
	statsService := newStatsServiceFunc(tracer, cache.Client)

	// Start Telegram bot and route high-risk alerts to it
	os.Setenv("TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken)
	if alerts := startTelegramBotFunc(statsService, advisorService); alerts != nil {
		analysisService.SetNotifier(alerts)
	}

	// Create handlers and routes
	h := newHandlerFunc(tracer, analysisService, advisorService, statsService)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("frauddetect"))
	r.Use(cors.Default())

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    httpAddr(cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

func httpAddr(port int) string {
	if port <= 0 {
		port = 8080
	}
	addr := fmt.Sprintf(":%d", port)
	if strings.Count(addr, ":") != 1 {
		return ":8080"
	}
	return addr
}
