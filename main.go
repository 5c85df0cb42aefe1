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

	"arco-intel/config"
	httpLayer "arco-intel/http"
	"arco-intel/repository"
	"arco-intel/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	var cache repository.CacheRepository
	if cfg.RedisAddr != "" {
		redisCache := repository.NewRedisCache(cfg.RedisAddr, "arco:", cfg.CacheTTL)
		defer redisCache.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			log.Printf("Warning: redis at %s unreachable, reports will be recomputed: %v", cfg.RedisAddr, err)
		}
		cancel()
		cache = redisCache
	} else {
		cache = repository.NewMemoryCache(cfg.CacheTTL, cfg.CacheMaxEntries)
	}

	analyzer := service.NewDomainAnalyzer()
	reportService := service.NewReportService(analyzer, cache, cfg.BatchConcurrency)
	calculator := service.NewROICalculator(service.DefaultCatalog())
	aiService := service.NewAIService(cfg.OpenAIAPIKey, cfg.OpenAIURL, cfg.OpenAIModel)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitCap, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.Handlers{
		Analysis: httpLayer.NewAnalysisHandler(reportService),
		ROI:      httpLayer.NewROIHandler(calculator, aiService),
		Tools:    httpLayer.NewToolHandler(reportService, calculator),
		Limiter:  rateLimiter,
	})

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("ARCO intelligence API (%s) listening on %s", cfg.Env, cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Printf("Error starting server: %v", err)
		return
	case <-quit:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server exited")
}
