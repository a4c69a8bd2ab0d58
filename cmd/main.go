package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"protection-service/internal/cache"
	"protection-service/internal/config"
	"protection-service/internal/database/postgres"
	"protection-service/internal/database/redis"
	"protection-service/internal/event"
	"protection-service/internal/handlers"
	"protection-service/internal/regulations"
	"protection-service/internal/repository"
	"protection-service/internal/services"
	"protection-service/internal/worker"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"
)

func setupLogging() (*os.File, error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic: %v\n", r)
		}
	}()

	logDir := filepath.Join("/agro", "log", "protection_service")
	fmt.Println("Log directory:", logDir)
	err := os.MkdirAll(logDir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := fmt.Sprintf("log_%s.log", currentTime.Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{
		AddSource: true,
	})))

	return file, nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, relying on environment")
	}

	logFile, err := setupLogging()
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	cfg := config.New()
	slog.Info("Connecting to PostgreSQL",
		"host", cfg.PostgresCfg.Host,
		"port", cfg.PostgresCfg.Port,
		"user", cfg.PostgresCfg.Username,
		"dbname", cfg.PostgresCfg.DBname)

	db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
	if err != nil {
		slog.Error("Failed to connect to database, retrying in background", "error", err)
		go postgres.RetryConnectOnFailed(30*time.Second, &db, cfg.PostgresCfg)
	}

	// Cache backend: redis when reachable, in-process fallback otherwise.
	var cacheStore cache.Store
	redisClient, err := redis.NewRedisClient(cfg.RedisCfg)
	if err != nil {
		slog.Warn("Redis unavailable, using in-memory cache", "error", err)
		cacheStore = cache.NewMemoryStore()
	} else {
		defer redisClient.Close()
		cacheStore = cache.NewRedisStore(redisClient.GetClient(), "protection")
	}

	// Critical warnings are published to RabbitMQ when the broker is up;
	// warning aggregation itself works without it.
	var notifier services.WarningNotifier
	rabbitConn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
	if err != nil {
		slog.Warn("RabbitMQ unavailable, critical warnings will not be published", "error", err)
	} else {
		defer rabbitConn.Close()
		notifier = event.NewWarningPublisher(rabbitConn)
	}

	tables := regulations.Default()
	if cfg.RegulationsPath != "" {
		loaded, err := regulations.Load(cfg.RegulationsPath)
		if err != nil {
			slog.Warn("Failed to load regulations file, using built-in tables", "path", cfg.RegulationsPath, "error", err)
		} else {
			tables = loaded
		}
	}

	productRepo := repository.NewProductRepository(db)
	compatibilityRepo := repository.NewCompatibilityRepository(db)
	treatmentRepo := repository.NewTreatmentRepository(db)
	fieldRepo := repository.NewFieldRepository(db)
	pestRepo := repository.NewPestRepository(db)
	cropRepo := repository.NewCropRepository(db)
	warehouseRepo := repository.NewWarehouseRepository(db)
	planRepo := repository.NewTreatmentPlanRepository(db)
	resistanceRepo := repository.NewResistanceRepository(db)

	dosageService := services.NewDosageService()
	tankMixService := services.NewTankMixService(productRepo, compatibilityRepo)
	selectionService := services.NewProductSelectionService(productRepo, cropRepo, dosageService)
	resistanceService := services.NewResistanceService(treatmentRepo, productRepo, resistanceRepo, tables)
	warningService := services.NewWarningService(treatmentRepo, productRepo, warehouseRepo, fieldRepo, resistanceService, tables, notifier)
	planningService := services.NewPlanningService(planRepo, fieldRepo, cropRepo, treatmentRepo, productRepo, warehouseRepo)
	analyticsService := services.NewAnalyticsService(treatmentRepo, cropRepo, productRepo, cacheStore)
	referenceService := services.NewReferenceService(productRepo, pestRepo, cropRepo, fieldRepo)

	app := fiber.New()
	app.Get("/checkhealth", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("Protection service is healthy")
	})

	handlers.NewCalculationHandler(dosageService, productRepo).Register(app)
	handlers.NewSelectionHandler(selectionService).Register(app)
	handlers.NewTankMixHandler(tankMixService).Register(app)
	handlers.NewWarningHandler(warningService).Register(app)
	handlers.NewPlanHandler(planningService).Register(app)
	handlers.NewAnalyticsHandler(analyticsService).Register(app)
	handlers.NewReferenceHandler(referenceService).Register(app)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := worker.NewWorkingPool(2, 16)
	var poolWg sync.WaitGroup
	poolWg.Add(1)
	go pool.Start(ctx, &poolWg)

	scheduler := worker.NewJobScheduler("protection-maintenance", 6*time.Hour, pool)
	scheduler.AddJob(worker.Job{
		Name: "generate_plans",
		Run: func(ctx context.Context) error {
			return planningService.EnsurePlansGenerated()
		},
	})
	scheduler.AddJob(worker.Job{
		Name: "refresh_warnings",
		Run: func(ctx context.Context) error {
			_, err := warningService.GetWarnings(ctx)
			return err
		},
	})
	go scheduler.Run(ctx)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Starting server", "port", cfg.Port)
		if err := app.Listen(fmt.Sprintf("0.0.0.0:%s", cfg.Port)); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	<-shutdownChan
	slog.Info("Shutting down server")
	cancel()
	poolWg.Wait()
	if err := app.Shutdown(); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
}
