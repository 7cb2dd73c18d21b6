package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/jhoicas/catalogo-api/internal/application/asset"
	"github.com/jhoicas/catalogo-api/internal/application/auth"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/memory"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/catalogo-api/internal/interfaces/http"
	"github.com/jhoicas/catalogo-api/pkg/config"
	"github.com/jhoicas/catalogo-api/pkg/logger"
	"github.com/jhoicas/catalogo-api/pkg/metrics"
	"github.com/jhoicas/catalogo-api/pkg/validator"
)

const swaggerFile = "./docs/swagger.json"

// backend persistencia elegida por DB_DRIVER.
type backend struct {
	repos repository.Repos
	tx    repository.TxRunner
	users repository.UserRepository
	close func()
}

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
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	db, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer db.close()

	local, err := storage.NewLocalStorage(cfg.Asset)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento de imágenes")
	}

	m := metrics.New("catalogo")
	v := validator.New()
	deps := usecase.Deps{
		Repos:     db.repos,
		Tx:        db.tx,
		Assets:    asset.NewCoordinator(local, log, m),
		Validator: v,
		Limits:    dto.PageLimits{Min: cfg.Paging.MinSize, Max: cfg.Paging.MaxSize},
		Log:       log,
	}
	authUC := auth.NewAuthUseCase(db.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, v, log)

	app := httpRouter.NewApp(cfg, log, m)

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Catálogo API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC: usecase.NewCategoryUseCase(deps),
		VendorUC:   usecase.NewVendorUseCase(deps, cfg.Asset.VendorWidth),
		ProductUC:  usecase.NewProductUseCase(deps, cfg.Asset.ProductWidth),
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
		LoginLimit: 10,
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

func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	if cfg.DB.Driver == config.DriverMemory {
		log.Warn().Msg("usando store en memoria: los datos se pierden al reiniciar")
		store := memory.New()
		return &backend{repos: store.Repos(), tx: store, users: store.Users(), close: func() {}}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.MigrateOnStart {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		for _, name := range applied {
			log.Info().Str("migration", name).Msg("migración aplicada")
		}
	}
	return &backend{
		repos: postgres.NewRepos(pool),
		tx:    postgres.NewTxRunner(pool),
		users: postgres.NewUserRepository(pool),
		close: pool.Close,
	}, nil
}

