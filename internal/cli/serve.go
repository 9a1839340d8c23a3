package cli

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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/smartcity/trafficflow/internal/config"
	deliveryhttp "github.com/smartcity/trafficflow/internal/delivery/http"
	"github.com/smartcity/trafficflow/internal/domain"
	"github.com/smartcity/trafficflow/internal/repository/csvstore"
	"github.com/smartcity/trafficflow/internal/repository/postgres"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the prediction API and interactive map UI",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	// Artifacts are loaded once at startup and treated as immutable
	// snapshots until the process restarts.
	predictor, err := loadPredictor(cfg)
	if err != nil {
		return err
	}

	samples, err := csvstore.ReadTraffic(cfg.TrafficPath)
	if err != nil {
		log.Printf("Warning: no simulated traffic loaded, overlay endpoint disabled: %v", err)
		samples = nil
	}

	queryLog := newQueryLog(cmd.Context(), cfg.DatabaseURL)

	app := fiber.New(fiber.Config{
		AppName:      "TrafficFlow API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: deliveryhttp.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	handler := deliveryhttp.NewHandler(predictor, samples, queryLog)
	deliveryhttp.SetupRoutes(app, handler)

	go func() {
		log.Printf("Serving %d segments (%d named) on :%s",
			predictor.SegmentCount(), len(predictor.NamedSegments()), cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	handler.Flush(flushCtx)

	log.Println("Server exited gracefully")
	return nil
}

// newQueryLog connects the optional prediction audit log. Any failure
// falls back to the no-op log: a missing database never affects serving.
func newQueryLog(ctx context.Context, databaseURL string) domain.QueryLog {
	if databaseURL == "" {
		log.Println("DATABASE_URL not set, running without query log")
		return postgres.NewNopRepository()
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(connectCtx, databaseURL)
	if err != nil {
		log.Printf("Warning: could not connect to database: %v", err)
		log.Println("Running without query log")
		return postgres.NewNopRepository()
	}

	repo := postgres.NewRepository(pool)
	if err := repo.Init(connectCtx); err != nil {
		log.Printf("Warning: could not initialize query log: %v", err)
		log.Println("Running without query log")
		pool.Close()
		return postgres.NewNopRepository()
	}

	log.Println("Connected to PostgreSQL query log")
	return repo
}
