package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"studenthub/internal/config"
	handlers "studenthub/internal/http/handler"
	"studenthub/internal/http/middleware"
	"studenthub/internal/otel"
	"studenthub/internal/service"
	"studenthub/internal/storage"
	"studenthub/internal/store/jsonfile"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	// Tracing is best-effort: a failed exporter degrades to no-op.
	shutdownTracing, err := otel.Init(context.Background(), time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(ctx)
	}()

	// The materials document lives in a single JSON file.
	materials := jsonfile.New(cfg.Data.Path)

	// Uploaded binaries go to local disk by default, or to an
	// S3-compatible bucket when STORAGE_BACKEND=minio.
	var binaries storage.BinaryStore
	switch cfg.StorageBackend {
	case config.BackendMinIO:
		binaries, err = storage.NewMinIO(cfg.MinIO)
		if err != nil {
			log.Fatalf("failed to initialize object storage: %v", err)
		}
	default:
		binaries, err = storage.NewLocal(cfg.Uploads.Dir, cfg.Uploads.PublicBase)
		if err != nil {
			log.Fatalf("failed to initialize upload storage: %v", err)
		}
	}

	svc := service.NewMaterialService(materials, binaries)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMw, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMw.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Uploaded files are served directly when the local backend is active.
	if cfg.StorageBackend == config.BackendLocal {
		app.Static(cfg.Uploads.PublicBase, cfg.Uploads.Dir)
	}

	// Register HTTP routes with injected service
	handlers.RegisterRoutes(app, materials, svc)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
