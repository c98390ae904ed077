package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/astralisweb/astralis-client/internal/app"
	"github.com/astralisweb/astralis-client/internal/avatar"
	"github.com/astralisweb/astralis-client/internal/cart"
	"github.com/astralisweb/astralis-client/internal/clients/astralis"
	"github.com/astralisweb/astralis-client/internal/clients/redis"
	"github.com/astralisweb/astralis-client/internal/handlers"
	"github.com/astralisweb/astralis-client/internal/localstore"
	"github.com/astralisweb/astralis-client/internal/middleware"
	"github.com/astralisweb/astralis-client/internal/observability"
	"github.com/astralisweb/astralis-client/internal/pkg/logger"
	"github.com/astralisweb/astralis-client/internal/server"
	"github.com/astralisweb/astralis-client/internal/session"
	"github.com/astralisweb/astralis-client/internal/sse"
	"github.com/astralisweb/astralis-client/internal/types"
	"github.com/astralisweb/astralis-client/internal/viewmodels"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	// Config
	log.Info("Loading configuration from main...")
	cfg, err := app.LoadConfig(log)
	if err != nil {
		log.Error("Could not load config", "error", err)
		os.Exit(1)
	}

	// Tracing
	shutdownOTel := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "astralis-client",
		Environment: cfg.Environment,
	})
	if shutdownOTel != nil {
		defer func() { _ = shutdownOTel(context.Background()) }()
	}

	// Local storage
	log.Info("Opening local store from main...")
	store, err := localstore.Open(log, cfg.LocalStore)
	if err != nil {
		log.Error("Could not open local store", "error", err)
		os.Exit(1)
	}

	// Remote API client
	log.Info("Setting up Astralis API client from main...")
	apiCfg := astralis.ConfigFromEnv(log)
	apiCfg.BaseURL = cfg.APIBaseURL
	if cfg.SessionCookie != "" {
		apiCfg.SessionCookie = cfg.SessionCookie
	}
	apiCfg.Timeout = cfg.APITimeout
	client, err := astralis.New(log, apiCfg)
	if err != nil {
		log.Error("Could not init Astralis client", "error", err)
		os.Exit(1)
	}
	api := astralis.NewAPI(client)

	// Session
	holder := session.NewHolder(log, api, client)
	client.SetOnUnauthorized(func() {
		holder.Probe(context.Background())
	})
	holder.Probe(ctx)

	// Cart
	cartService := cart.NewService(log, api, store, holder)
	cartService.LoadCart(ctx)

	// SSE
	log.Info("Setting up SSE hub now...")
	hub := sse.NewHub(log)
	holder.Subscribe(func(st session.State) {
		cartService.LoadCart(context.Background())
		hub.Broadcast(sse.Message{
			Channel: sse.ChannelSession,
			Event:   sse.EventSessionChanged,
			Data:    map[string]any{"authenticated": st.Authenticated},
		})
	})
	cartService.Subscribe(func(lines []types.CartLine) {
		hub.Broadcast(sse.Message{
			Channel: sse.ChannelCart,
			Event:   sse.EventCartUpdated,
			Data:    lines,
		})
	})

	// View models
	log.Info("Setting up view models from main...")
	accountVM := viewmodels.NewAccountViewModel(log, holder)
	catalogVM := viewmodels.NewCatalogViewModel(log, api.CelestialBodies)
	shopVM := viewmodels.NewShopViewModel(log, api.Products, cartService)
	articlesVM := viewmodels.NewArticlesViewModel(log, api.Articles, api.Comments, api.Comments)
	eventsVM := viewmodels.NewEventsViewModel(log, api.Events)
	notificationsVM := viewmodels.NewNotificationsViewModel(log, api.Notifications, api)
	adminVM := viewmodels.NewAdminViewModel(log, api.Discoveries, api)
	defer accountVM.Close()
	defer shopVM.Close()

	// Redis notification forwarder
	if cfg.RedisAddr != "" {
		bus, err := redis.NewNotifyBus(log)
		if err != nil {
			log.Warn("Could not init redis notify bus", "error", err)
		} else {
			defer bus.Close()
			err = bus.StartForwarder(ctx, func(m sse.Message) {
				if m.Channel == sse.ChannelNotifications {
					var n types.Notification
					if raw, mErr := json.Marshal(m.Data); mErr == nil && json.Unmarshal(raw, &n) == nil {
						notificationsVM.Push(n)
					}
				}
				hub.Broadcast(m)
			})
			if err != nil {
				log.Warn("Could not start redis forwarder", "error", err)
			}
		}
	}

	// Avatars
	avatars, err := avatar.NewGenerator(log)
	if err != nil {
		log.Error("Could not init AvatarGenerator", "error", err)
		os.Exit(1)
	}

	// Handlers
	log.Info("Setting up handlers from main...")
	accountHandler := handlers.NewAccountHandler(log, accountVM, avatars)
	catalogHandler := handlers.NewCatalogHandler(log, api, catalogVM)
	exploreHandler := handlers.NewExploreHandler(log, api)
	visualHandler := handlers.NewVisualHandler(log, api)
	cartHandler := handlers.NewCartHandler(log, cartService)
	shopHandler := handlers.NewShopHandler(log, shopVM)
	articlesHandler := handlers.NewArticlesHandler(log, api, articlesVM)
	eventsHandler := handlers.NewEventsHandler(log, eventsVM)
	notificationsHandler := handlers.NewNotificationsHandler(log, notificationsVM, hub)
	discoveryHandler := handlers.NewDiscoveryHandler(log, api, adminVM)

	// Middleware
	log.Info("Setting up middleware from main...")
	sessionMiddleware := middleware.NewSessionMiddleware(log, holder)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		SessionMiddleware:    sessionMiddleware,
		AccountHandler:       accountHandler,
		CatalogHandler:       catalogHandler,
		ExploreHandler:       exploreHandler,
		VisualHandler:        visualHandler,
		CartHandler:          cartHandler,
		ShopHandler:          shopHandler,
		ArticlesHandler:      articlesHandler,
		EventsHandler:        eventsHandler,
		NotificationsHandler: notificationsHandler,
		DiscoveryHandler:     discoveryHandler,
	})

	fmt.Printf("Server listening on %s\n", cfg.ListenAddr)
	if err := router.Run(cfg.ListenAddr); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
