// @title CLP Alumni Directory API
// @version 1.0
// @description Alumni, events, reservations and photos over GraphQL, plus photo storage and a natural-language assistant.
// @host localhost:4000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	_ "alumni-directory/docs"

	"alumni-directory/bootstrap"
	"alumni-directory/config"
	"alumni-directory/database"
	"alumni-directory/internal/assistant"
	"alumni-directory/internal/auth"
	"alumni-directory/internal/graph"
	"alumni-directory/internal/metrics"
	"alumni-directory/internal/photostore"
	"alumni-directory/internal/ratelimit"
	"alumni-directory/internal/repository"
	"alumni-directory/internal/routes"
	"alumni-directory/internal/services"
)

func main() {
	memory := flag.Bool("memory", false, "keep all data in process memory instead of MongoDB")
	flag.Parse()

	// Load configuration
	cfg := config.LoadConfig()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	ctx := context.Background()

	var (
		store repository.Store
		files photostore.Store
	)
	if *memory {
		log.Println("using in-memory storage; data is lost on exit")
		store = repository.NewMemoryStore()
		files = photostore.NewMemoryStore()
	} else {
		client, err := database.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer database.DisconnectMongo(client)

		db := client.Database(cfg.MongoDB)
		store = repository.NewMongoStore(db)
		files = photostore.NewGridFSStore(db)
	}

	if err := bootstrap.EnsureIndexes(ctx, store); err != nil {
		log.Fatalf("ensure indexes failed: %v", err)
	}

	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	svc := services.New(repository.New(store), files, photostore.NewPolicy(cfg.MaxFileSize), tokens)

	gql, err := graph.NewServer(svc)
	if err != nil {
		log.Fatalf("graphql schema: %v", err)
	}

	policy, err := assistant.ParsePolicy(cfg.IdentityPolicy)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	llm := assistant.NewLLMClient(cfg.LLMServiceURI, cfg.LLMTimeout)
	bridge := assistant.NewBridge(llm, assistant.SchemaExecutor(gql.ExecuteDocument), policy)

	var limiterStorage fiber.Storage
	if cfg.RedisAddr != "" {
		rdb := ratelimit.NewRedis(cfg.RedisAddr)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("redis unavailable at %s, rate limiting in memory: %v", cfg.RedisAddr, err)
		} else {
			limiterStorage = ratelimit.NewRedisStorage(rdb)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		AppName:   "alumni-directory",
		BodyLimit: int(cfg.MaxFileSize) + 1<<20,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(metrics.Middleware())

	routes.Setup(app, routes.Deps{
		Services:       svc,
		Tokens:         tokens,
		GraphQL:        gql,
		Generator:      llm,
		Bridge:         bridge,
		PhotoBaseURL:   cfg.PhotoBaseURL,
		RateLimit:      cfg.RateLimitPerMin,
		LimiterStorage: limiterStorage,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("server forced shutdown: %v", err)
	}
	if limiterStorage != nil {
		limiterStorage.Close()
	}
	log.Println("server exited")
}
