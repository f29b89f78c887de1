package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/almacen-ledger/internal/application/audit"
	"github.com/jhoicas/almacen-ledger/internal/application/catalog"
	"github.com/jhoicas/almacen-ledger/internal/application/documents"
	"github.com/jhoicas/almacen-ledger/internal/application/inventory"
	"github.com/jhoicas/almacen-ledger/internal/infrastructure/lock"
	"github.com/jhoicas/almacen-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-ledger/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/almacen-ledger/internal/interfaces/http"
	"github.com/jhoicas/almacen-ledger/pkg/config"
	"github.com/jhoicas/almacen-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Persistencia: PostgreSQL en despliegues, memoria para demos y desarrollo local.
	var txRunner inventory.TxRunner
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		txRunner = memory.NewStore()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migración del esquema")
		}
		txRunner = postgres.NewTxRunner(pool)
	}

	// Locks por documento: Redis si hay varias réplicas, mutex en proceso si no.
	var locker inventory.Locker
	if cfg.Redis.Enabled() {
		rdb, err := lock.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb, cfg.Redis.LockTTL, lock.WithLogger(log.Named("lock")))
	} else {
		locker = lock.NewKeyedMutex()
	}

	catalogUC := catalog.NewUseCase(txRunner, log.Named("catalog"))
	if cfg.Storage.SeedFile != "" {
		seed, err := catalog.ReadFile(cfg.Storage.SeedFile)
		if err != nil {
			log.Fatal().Err(err).Msg("catálogo inicial")
		}
		if _, err := catalogUC.Import(ctx, "seed", seed); err != nil {
			log.Fatal().Err(err).Str("file", cfg.Storage.SeedFile).Msg("carga del catálogo inicial")
		}
	}

	ledger := inventory.NewLedger(log.Named("ledger"))
	docs := documents.NewServices(txRunner, locker, ledger, documents.Config{
		DisposalBoardThreshold: cfg.Ledger.DisposalBoardThreshold,
		SystemPartnerCode:      cfg.Ledger.SystemPartnerCode,
	}, log.Named("documents"))
	stockUC := inventory.NewStockUseCase(txRunner, ledger, log.Named("stock"))
	auditUC := audit.NewUseCase(txRunner)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Swagger.File); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Swagger.File,
			Path:     "docs",
			Title:    "Almacén Ledger API",
		}))
	} else {
		log.Debug().Str("file", cfg.Swagger.File).Msg("swagger deshabilitado: archivo no encontrado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Documents: docs,
		Stock:     stockUC,
		Audit:     auditUC,
		Catalog:   catalogUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
