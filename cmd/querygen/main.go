package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alumni-directory/config"
	"alumni-directory/internal/metrics"
	"alumni-directory/internal/querygen"
)

func main() {
	cfg := config.LoadConfig()

	llm := querygen.NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel, cfg.LLMTimeout)
	gen := querygen.NewGenerator(llm)

	app := fiber.New(fiber.Config{AppName: "alumni-querygen"})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(metrics.Middleware())

	querygen.Setup(app, gen)

	go func() {
		log.Printf("query generator using %s (%s)", cfg.OllamaURL, cfg.OllamaModel)
		if err := app.Listen(":" + cfg.QueryGenPort); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down query generator...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
}
