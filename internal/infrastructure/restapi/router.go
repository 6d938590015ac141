package restapi

import (
	"net/http"
	"net/http/pprof"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// RouterOptions controls the optional surfaces of the router.
type RouterOptions struct {
	SwaggerEnabled bool
	SwaggerPath    string
}

// SetupRouter assembles the Gin engine: CORS, zap request logging, recovery,
// the /api/v1 routes, Prometheus metrics, pprof and optionally Swagger UI.
func SetupRouter(handler *Handler, zapLogger *zap.Logger, opts RouterOptions) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.Use(ZapLoggerMiddleware(zapLogger))
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/servers", handler.ListServersHandler)
		apiV1.POST("/servers", handler.RegisterServerHandler)
		apiV1.GET("/servers/:id", handler.GetServerHandler)

		apiV1.GET("/mcp-tools", handler.DiscoverToolsHandler)

		apiV1.GET("/balances", handler.GetBalancesHandler)

		apiV1.GET("/users/:userId/api-keys", handler.ListAPIKeysHandler)
		apiV1.POST("/users/:userId/api-keys", handler.CreateAPIKeyHandler)
		apiV1.DELETE("/users/:userId/api-keys/:keyId", handler.RevokeAPIKeyHandler)

		apiV1.POST("/users/:userId/onramp", handler.CreateOnrampHandler)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	pprofRouter := router.Group("/debug/pprof")
	{
		pprofRouter.GET("/", gin.WrapF(pprof.Index))
		pprofRouter.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		pprofRouter.GET("/profile", gin.WrapF(pprof.Profile))
		pprofRouter.POST("/symbol", gin.WrapF(pprof.Symbol))
		pprofRouter.GET("/symbol", gin.WrapF(pprof.Symbol))
		pprofRouter.GET("/trace", gin.WrapF(pprof.Trace))
		pprofRouter.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
		pprofRouter.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
		pprofRouter.GET("/heap", gin.WrapH(pprof.Handler("heap")))
	}

	if opts.SwaggerEnabled {
		router.StaticFile("/docs/swagger.yaml", "./docs/swagger.yaml")
		swaggerURL := ginSwagger.URL("/docs/swagger.yaml")
		router.GET(opts.SwaggerPath+"/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, swaggerURL))
	}

	return router
}
