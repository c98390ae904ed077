package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/astralisweb/astralis-client/internal/handlers"
	"github.com/astralisweb/astralis-client/internal/middleware"
)

type RouterConfig struct {
	SessionMiddleware    *middleware.SessionMiddleware
	AccountHandler       *handlers.AccountHandler
	CatalogHandler       *handlers.CatalogHandler
	ExploreHandler       *handlers.ExploreHandler
	VisualHandler        *handlers.VisualHandler
	CartHandler          *handlers.CartHandler
	ShopHandler          *handlers.ShopHandler
	ArticlesHandler      *handlers.ArticlesHandler
	EventsHandler        *handlers.EventsHandler
	NotificationsHandler *handlers.NotificationsHandler
	DiscoveryHandler     *handlers.DiscoveryHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware("astralis-client"))

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.Use(cfg.SessionMiddleware.Attach())

	router.GET("/healthcheck", handlers.HealthCheck)

	// Session
	router.GET("/session", cfg.AccountHandler.GetSession)
	router.POST("/session/login", cfg.AccountHandler.Login)
	router.POST("/session/register", cfg.AccountHandler.Register)
	router.POST("/session/logout", cfg.AccountHandler.Logout)

	// Catalog + visualization; browsable without a session.
	router.GET("/explore", cfg.ExploreHandler.Get)
	router.GET("/catalog/bodies", cfg.CatalogHandler.ListBodies)
	router.GET("/catalog/bodies/:id", cfg.CatalogHandler.GetBody)
	router.GET("/visual/:bodyId", cfg.VisualHandler.GetParams)

	// Content
	router.GET("/articles", cfg.ArticlesHandler.List)
	router.GET("/articles/:id", cfg.ArticlesHandler.Get)
	router.GET("/events", cfg.EventsHandler.List)

	// Shop and cart; the cart works for anonymous sessions too.
	router.GET("/shop/products", cfg.ShopHandler.List)
	router.GET("/cart", cfg.CartHandler.GetCart)
	router.POST("/cart/items", cfg.CartHandler.AddItem)
	router.PUT("/cart/items/:productId/increase", cfg.CartHandler.IncreaseItem)
	router.PUT("/cart/items/:productId/decrease", cfg.CartHandler.DecreaseItem)
	router.DELETE("/cart/items/:productId", cfg.CartHandler.RemoveItem)
	router.DELETE("/cart", cfg.CartHandler.ClearCart)
	router.POST("/cart/checkout", cfg.CartHandler.Checkout)

	// Push
	router.GET("/sse/stream", cfg.NotificationsHandler.Stream)

	protected := router.Group("/")
	protected.Use(cfg.SessionMiddleware.RequireAuth())
	protected.GET("/notifications", cfg.NotificationsHandler.List)
	protected.PUT("/notifications/:id/read", cfg.NotificationsHandler.MarkRead)
	protected.POST("/articles/:id/comments", cfg.ArticlesHandler.Comment)
	protected.POST("/discoveries", cfg.DiscoveryHandler.Submit)
	protected.GET("/account/avatar.png", cfg.AccountHandler.AvatarPNG)
	protected.POST("/account/avatar/thumbnail", cfg.AccountHandler.AvatarThumbnail)

	admin := router.Group("/admin")
	admin.Use(cfg.SessionMiddleware.RequireAdmin())
	admin.GET("/discoveries", cfg.DiscoveryHandler.ListPending)
	admin.PUT("/discoveries/:id", cfg.DiscoveryHandler.Moderate)

	return router
}
