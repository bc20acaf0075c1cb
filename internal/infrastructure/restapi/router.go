package restapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRouter настраивает и возвращает экземпляр Gin роутера.
// An empty allowedOrigins list allows every origin.
func SetupRouter(portfolioHandler *PortfolioHandler, zapLogger *zap.Logger, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	if len(allowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader}
	corsConfig.ExposeHeaders = []string{RequestIDHeader}
	router.Use(cors.New(corsConfig))

	router.Use(ZapLoggerMiddleware(zapLogger))
	router.Use(gin.Recovery())

	api := router.Group("/api")
	{
		api.GET("/connect", portfolioHandler.ConnectHandler)
		api.GET("/ton-assets", portfolioHandler.TonAssetsHandler)
	}

	router.GET("/health", portfolioHandler.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
