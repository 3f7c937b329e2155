package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/anst-dev/ChotTienBanHang/internal/config"
	"github.com/anst-dev/ChotTienBanHang/internal/handler"
	"github.com/anst-dev/ChotTienBanHang/internal/model"
	"github.com/anst-dev/ChotTienBanHang/internal/repository"
	"github.com/anst-dev/ChotTienBanHang/internal/service"
	"github.com/anst-dev/ChotTienBanHang/internal/ws"
	"github.com/anst-dev/ChotTienBanHang/pkg/database"
	"github.com/anst-dev/ChotTienBanHang/pkg/metrics"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// 1. Load Env + Config
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.Load()

	// 2. Setup Database + slot storage
	db := database.Connect(cfg.Database)
	if err := db.AutoMigrate(&model.Slot{}); err != nil {
		log.Fatal("Failed to migrate slot storage: ", err)
	}

	// 3. Metrics
	metrics.Init()

	// 4. WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	slots := repository.NewSlotRepo(db)

	catalogService := service.NewCatalogService(slots, wsHub)
	sessionService := service.NewSessionService(slots, catalogService, wsHub, cfg.History.Limit)
	catalogService.AttachLedger(sessionService)
	paymentService := service.NewPaymentService(model.BankInfo{
		BankID:      cfg.Bank.ID,
		AccountNo:   cfg.Bank.AccountNo,
		AccountName: cfg.Bank.AccountName,
	})

	catalogHandler := handler.NewCatalogHandler(catalogService)
	sessionHandler := handler.NewSessionHandler(sessionService)
	reportHandler := handler.NewReportHandler(sessionService, catalogService)
	paymentHandler := handler.NewPaymentHandler(paymentService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})

	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// Catalog
	api.Get("/products", catalogHandler.GetProducts)
	api.Post("/products", catalogHandler.CreateProduct)
	api.Put("/products/:id", catalogHandler.UpdateProduct)
	api.Delete("/products/:id", catalogHandler.DeleteProduct)

	// Session ledger
	api.Get("/session", sessionHandler.GetSession)
	api.Post("/session/start", sessionHandler.StartSession)
	api.Post("/session/close", sessionHandler.CloseSession)
	api.Put("/session/stock/:productId", sessionHandler.UpdateStock)
	api.Post("/session/sales", sessionHandler.RecordSale)
	api.Put("/session/transactions/:id", sessionHandler.EditTransaction)
	api.Delete("/session/transactions/:id", sessionHandler.DeleteTransaction)
	api.Delete("/session/transactions", sessionHandler.DeleteAllTransactions)

	// Reconciliation + history
	api.Get("/session/report", reportHandler.GetSessionReport)
	api.Get("/history", reportHandler.GetHistory)
	api.Get("/history/:id", reportHandler.GetHistoryEntry)
	api.Get("/history/:id/report", reportHandler.GetHistoryReport)

	// Payment QR
	api.Get("/payment/qr", paymentHandler.GetQR)

	// Metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := cfg.App.Port
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
