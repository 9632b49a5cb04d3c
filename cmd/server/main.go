package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron"

	config "github.com/atelierlabs/planner-api/configs"
	"github.com/atelierlabs/planner-api/internal/api/handlers"
	"github.com/atelierlabs/planner-api/internal/api/middleware"
	job "github.com/atelierlabs/planner-api/internal/jobs"
	"github.com/atelierlabs/planner-api/internal/queue"
	"github.com/atelierlabs/planner-api/internal/repository"
	"github.com/atelierlabs/planner-api/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	postRepo := repository.NewPostRepository(db)
	brandRepo := repository.NewBrandRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	publishLogRepo := repository.NewPublishLogRepository(db)

	r2Service := service.NewR2Service(*cfg)
	postService := service.NewPostService(postRepo, r2Service)
	brandService := service.NewBrandService(*cfg, brandRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	instagramService := service.NewInstagramService(*cfg)
	publishService := service.NewPublishService(*cfg, postRepo, brandRepo, publishLogRepo, instagramService)

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	auth := handlers.NewAuthHandler(*cfg)
	app.Post("/login", auth.Login)
	app.Post("/logout", auth.Logout)

	sweepJob := job.NewPublishSweepJob(*cfg, postRepo, brandRepo, publishLogRepo, instagramService)

	// external trigger + publish proxy stay outside the cookie wall, the
	// sweep carries its own bearer check
	cronH := handlers.NewCronHandler(*cfg, sweepJob)
	app.Get("/api/cron/check", cronH.Check)

	publish := handlers.NewPublishHandler(publishService)
	app.Post("/api/instagram/publish", publish.PublishNow)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	brand := handlers.NewBrandHandler(brandService)
	api.Get("/brands", brand.ListBrands)
	api.Get("/brands/info", brand.BrandInfo)
	api.Post("/brands/create", brand.CreateBrand)
	api.Post("/brands/update", brand.UpdateBrand)

	post := handlers.NewPostHandler(postService, publishService, client)
	api.Get("/posts", post.ListPosts)
	api.Post("/posts/upload", post.UploadDrafts)
	api.Post("/posts/update", post.UpdatePost)
	api.Post("/posts/move", post.MovePost)
	api.Post("/posts/publish", post.PublishPost)
	api.Post("/posts/remove", post.RemovePost)
	api.Post("/posts/batch_delete", post.BatchDelete)

	plannerH := handlers.NewPlannerHandler(*cfg, postService, settingsService)
	api.Get("/planner", plannerH.GetPlanner)
	api.Get("/slots", plannerH.GetSlots)
	api.Post("/slots/add", plannerH.AddSlot)
	api.Post("/slots/remove", plannerH.RemoveSlot)

	// queue worker for slot-time publish tasks
	queueW := queue.NewQueue(postRepo, publishService)

	c := cron.New()
	c.AddFunc("@every 00h05m00s", sweepJob.Run)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePublishPost, queueW.HandlePublishPostTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
