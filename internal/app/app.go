package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bagel-backend/internal/db"
	"bagel-backend/internal/handlers"
	"bagel-backend/internal/realtime"
	"bagel-backend/internal/services"
	"bagel-backend/internal/utils"
	"bagel-backend/internal/wall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Load Env
	if err := utils.LoadEnv(); err != nil {
		log.Warn().Msg(".env file not found")
	}

	setupLogging()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init DB
	connString := utils.GetEnv("DATABASE_URL", "")
	if connString == "" {
		// Fallback to individual vars
		connString = "postgres://" + utils.GetEnv("POSTGRES_USER", "postgres") + ":" +
			utils.GetEnv("POSTGRES_PASSWORD", "postgres") + "@" +
			utils.GetEnv("POSTGRES_HOST", "localhost") + ":" +
			utils.GetEnv("POSTGRES_PORT", "5432") + "/" +
			utils.GetEnv("POSTGRES_DB", "bagelboard") + "?sslmode=disable"
	}

	pool, err := db.Connect(ctx, connString)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := db.Migrate(pool); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Services
	orderService := services.NewOrderService(pool)
	preOrderService := services.NewPreOrderService(pool)
	seatService := services.NewSeatService(pool)
	menuService := services.NewMenuService(pool)
	teacherService := services.NewTeacherService(pool)
	configService := services.NewConfigService(pool)
	deviceService := services.NewDeviceService(pool)

	// Realtime change feed: schema triggers NOTIFY on bagel_changes, one
	// dedicated connection listens and fans out to websocket clients.
	feed := realtime.NewFeed()
	listener := realtime.NewListener(pool)
	listener.Handle(realtime.ChangeChannel, feed.HandleNotification)

	// Photo wall: standalone keeps the live set in-process, relay pushes
	// events through the Postgres notification channel instead.
	maxSubscribers := utils.GetEnvInt("WALL_MAX_SUBSCRIBERS", 0)
	var wallService wall.Service
	switch mode := utils.GetEnv("WALL_MODE", "standalone"); mode {
	case "relay":
		relay := wall.NewRelay(realtime.NewNotifier(pool), maxSubscribers)
		listener.Handle(wall.Channel, relay.HandleNotification)
		wallService = relay
		log.Info().Msg("photo wall in relay mode (no backfill)")
	case "standalone":
		wallService = wall.NewStandalone(wall.PhotoTTL, maxSubscribers)
	default:
		log.Fatal().Str("mode", mode).Msg("unknown WALL_MODE")
	}

	go listener.Run(ctx)
	go wallService.Run(ctx)

	// Fiber App
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// Photo wall routes
	wallGroup := app.Group("/wall")
	wallGroup.Post("/photos", handlers.AddWallPhotoHandler(wallService))
	wallGroup.Delete("/photos", handlers.DeleteWallPhotoHandler(wallService))
	wallGroup.Get("/photos", handlers.StreamWallHandler(wallService))

	// Routes
	api := app.Group("/api")

	api.Post("/orders", handlers.CreateOrderHandler(orderService))
	api.Get("/orders", handlers.ListOrdersHandler(orderService))
	api.Post("/orders/status", handlers.UpdateOrderStatusHandler(orderService))
	api.Delete("/orders/:id", handlers.DeleteOrderHandler(orderService))

	api.Get("/preorders", handlers.ListPreOrdersHandler(preOrderService))
	api.Post("/preorders", handlers.CreatePreOrderHandler(preOrderService))
	api.Post("/preorders/:id/fulfill", handlers.FulfillPreOrderHandler(preOrderService))
	api.Delete("/preorders/:id", handlers.DeletePreOrderHandler(preOrderService))

	api.Post("/seats/assign", handlers.AssignSeatHandler(seatService))
	api.Get("/seats", handlers.ListSeatsHandler(seatService))
	api.Get("/seats/assignments", handlers.ListSeatAssignmentsHandler(seatService))

	api.Get("/menu", handlers.ListMenuHandler(menuService))
	api.Get("/teachers", handlers.ListTeachersHandler(teacherService))

	api.Post("/auth/pin", handlers.VerifyPinHandler(configService))
	api.Post("/devices/touch", handlers.TouchDeviceHandler(deviceService))

	// Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Realtime websocket
	app.Use("/ws", handlers.WSUpgradeMiddleware)
	app.Get("/ws", handlers.RealtimeHandler(feed))

	// Start Server
	port := utils.GetEnv("PORT", "3001")
	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Panic().Err(err).Msg("server stopped")
		}
	}()

	// Graceful Shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c // Block until signal
	log.Info().Msg("gracefully shutting down...")
	cancel()
	_ = app.ShutdownWithTimeout(5 * time.Second)
	log.Info().Msg("server shutdown complete")
}

func setupLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	level, err := zerolog.ParseLevel(utils.GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}
