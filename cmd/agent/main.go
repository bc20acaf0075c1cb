package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quantora_agent/internal/app/service"
	"quantora_agent/internal/app/service/price"
	restclient "quantora_agent/internal/client"
	"quantora_agent/internal/infrastructure/configloader"
	clientprovider "quantora_agent/internal/infrastructure/network/client"
	networkdefinition "quantora_agent/internal/infrastructure/network/definition"
	"quantora_agent/internal/infrastructure/restapi"
	"quantora_agent/internal/pkg/logger"
	"quantora_agent/internal/pkg/metrics"
	"quantora_agent/internal/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env необязателен: в продакшене ключи приходят из окружения
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "WARNING: failed to load .env: %v\n", err)
	}

	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yml")
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	zapLogger, err := logger.InitLogger(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to initialize zap logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()

	appLogger := logger.NewSlogAdapter("service", "quantora-agent")
	appLogger.Info("Configuration loaded", "path", cfgPath, "price_source", cfg.Prices.Source)

	metrics.MustRegisterMetrics()

	chainRegistry := networkdefinition.NewChainRegistry(appLogger, cfg.Connect.Chains)

	moralisClient := restclient.NewMoralisClient(
		cfg.Moralis.BaseURL,
		cfg.Moralis.APIKey,
		millis(cfg.Moralis.RequestTimeoutMillis),
		restclient.NewLimiter(cfg.Moralis.RateLimitPerSecond, cfg.Moralis.RateLimitBurst, "moralis"),
		zapLogger,
	)
	toncenterClient := restclient.NewToncenterClient(
		cfg.Toncenter.BaseURL,
		cfg.Toncenter.APIKey,
		millis(cfg.Toncenter.RequestTimeoutMillis),
		restclient.NewLimiter(cfg.Toncenter.RateLimitPerSecond, cfg.Toncenter.RateLimitBurst, "toncenter"),
		zapLogger,
	)
	tonAPIClient := restclient.NewTonAPIClient(
		cfg.TonAPI.BaseURL,
		cfg.TonAPI.APIKey,
		millis(cfg.TonAPI.RequestTimeoutMillis),
		restclient.NewLimiter(cfg.TonAPI.RateLimitPerSecond, cfg.TonAPI.RateLimitBurst, "tonapi"),
		zapLogger,
	)
	coinGeckoClient := restclient.NewCoinGeckoClient(
		cfg.CoinGecko.BaseURL,
		cfg.CoinGecko.APIKey,
		millis(cfg.CoinGecko.RequestTimeoutMillis),
		restclient.NewLimiter(cfg.CoinGecko.RateLimitPerSecond, cfg.CoinGecko.RateLimitBurst, "coingecko"),
		zapLogger,
	)
	zapLogger.Info("Upstream clients initialized")

	// Цены: статическая таблица всегда доступна как запасной источник
	staticPrices := price.NewStaticPriceTable(cfg.Prices.Static)
	allChains := []string{networkdefinition.Ethereum.ID, networkdefinition.Polygon.ID, networkdefinition.BSC.ID, networkdefinition.TON.ID}
	knownChains, _ := chainRegistry.SelectChains(allChains)
	liveResolver := price.NewCoinGeckoResolver(
		coinGeckoClient,
		price.SymbolIDs(knownChains, cfg.CoinGecko.SymbolIDs),
		cfg.CoinGecko.VsCurrency,
		time.Duration(cfg.Prices.CacheTTLSeconds)*time.Second,
		logger.NewSlogAdapter("component", "prices"),
	)
	connectPrices, err := price.ForSource(cfg.Prices.Source, staticPrices, liveResolver)
	if err != nil {
		zapLogger.Fatal("Invalid price configuration", zap.Error(err))
	}
	tonPrices := price.NewFallbackResolver(liveResolver, staticPrices)

	if cfg.Prices.Source != configloader.PriceSourceStatic {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := liveResolver.Warm(ctx); err != nil {
				zapLogger.Warn("Failed to warm price cache", zap.Error(err))
			}
		}()
	}

	fetchTimeout := time.Duration(cfg.Portfolio.FetchTimeoutMs) * time.Millisecond
	fetcherProvider := clientprovider.NewBalanceFetcherProvider(cfg, moralisClient, toncenterClient, appLogger)
	portfolioSvc := service.NewPortfolioService(
		fetcherProvider,
		connectPrices,
		logger.NewSlogAdapter("component", "portfolio"),
		fetchTimeout,
		cfg.Portfolio.MaxConcurrentRequests,
	)

	tonAssetsSvc := service.NewTonAssetsService(
		clientprovider.NewTonFetcher(toncenterClient),
		clientprovider.NewTonHoldingsFetcher(tonAPIClient, cfg.TonAPI.NFTLimit, appLogger),
		tonPrices,
		networkdefinition.TON,
		cfg.Insight,
		logger.NewSlogAdapter("component", "ton-assets"),
		fetchTimeout,
	)
	zapLogger.Info("Services initialized")

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := restapi.NewPortfolioHandler(portfolioSvc, tonAssetsSvc, chainRegistry, appLogger)
	router := restapi.SetupRouter(handler, zapLogger, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info(fmt.Sprintf("Server starting on %s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
}

func millis(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
