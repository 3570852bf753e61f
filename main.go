package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fin-analyst/api/handler"
	"fin-analyst/api/router"
	"fin-analyst/logic/chat"
	"fin-analyst/logic/ingestion/parser"
	"fin-analyst/pkg/logger"
	"fin-analyst/pkg/metrics"
	"fin-analyst/service"
	"fin-analyst/vars"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	// 1. 配置：缺少 GROQ_API_KEY 直接退出
	cfg, err := vars.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer zlog.Sync()

	// 2. 初始化 PDF 解析与 LLM Model
	extractor, err := parser.NewExtractor(ctx, parser.WithTimeout(cfg.ExtractTimeout))
	if err != nil {
		zlog.Fatal("init pdf extractor failed", zap.Error(err))
	}
	chatModel, err := chat.NewGroqChatModel(ctx, cfg.LLM)
	if err != nil {
		zlog.Fatal("init chat model failed", zap.Error(err))
	}

	// 3. 初始化 Service (业务层)
	recorder := metrics.NewRecorder(prometheus.DefaultRegisterer)
	analysisSvc := service.NewAnalysisService(extractor, chatModel,
		service.WithLogger(zlog),
		service.WithMetrics(recorder),
		service.WithMaxConcurrent(cfg.MaxConcurrentAnalyses),
		service.WithModelName(cfg.LLM.Model),
	)

	// 4. 初始化 Handler (API 层) 并启动 Web Server
	gin.SetMode(cfg.Server.GinMode)
	analysisH := handler.NewAnalysisHandler(analysisSvc, zlog)
	r := router.NewEngine(zlog, analysisH, router.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		MaxUploadMB:    cfg.Server.MaxUploadMB,
		Metrics:        promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: r,
	}

	go func() {
		zlog.Info("server starting", zap.String("addr", srv.Addr), zap.String("model", cfg.LLM.Model))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal("forced shutdown", zap.Error(err))
	}
	zlog.Info("server exited")
}
