package app

import (
	"context"
	httpserver "customer-purchases/internal/app/http-server"
	"customer-purchases/internal/config"
	"customer-purchases/internal/handlers"
	"customer-purchases/internal/lib/clock"
	"customer-purchases/internal/lib/jwt"
	"customer-purchases/internal/mapper"
	"customer-purchases/internal/middlewares"
	"customer-purchases/internal/repository/postgres"
	"customer-purchases/internal/repository/redis"
	"customer-purchases/internal/routes"
	"customer-purchases/internal/services"
	"customer-purchases/migrations"
	"errors"
	"log/slog"
)

type App struct {
	HTTPServer *httpserver.Server
	storage    *postgres.Storage
	redisDB    *redis.Storage
}

func New(log *slog.Logger, cfg *config.Config) *App {
	ctx := context.Background()

	storage, err := postgres.NewPostgres(ctx, cfg.Database.PostgresConn)
	if err != nil {
		panic(err)
	}

	if err := migrations.Apply(ctx, storage.Pool()); err != nil {
		panic(err)
	}

	redisDB, err := redis.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.IdempotencyTTL)
	if err != nil {
		panic(err)
	}

	jwtGen := jwt.NewGenerator(cfg.JWT.Secret, cfg.JWT.TokenTTL)
	purchaseMapper := mapper.NewPurchaseMapper(clock.NewSystem())

	purchaseService := services.NewPurchaseService(log, storage, storage, purchaseMapper)
	customerService := services.NewCustomerService(log, storage)

	r := routes.InitRoutes(
		routes.Handlers{
			Purchase: handlers.NewPurchaseHandler(log, purchaseService),
			Customer: handlers.NewCustomerHandler(log, customerService),
			Health:   handlers.NewHealthHandler(log, storage),
		},
		routes.Middlewares{
			Auth:        middlewares.NewAuthMiddleware(jwtGen),
			Idempotency: middlewares.NewIdempotencyMiddleware(log, redisDB),
		},
		cfg.Server.CORSOrigins,
	)

	server := httpserver.NewServer(log, cfg.Server.Address, r, cfg.Server.Timeout, cfg.Server.IdleTimeout)

	return &App{
		HTTPServer: server,
		storage:    storage,
		redisDB:    redisDB,
	}
}

// Stop shuts the HTTP server down and then releases the stores.
func (a *App) Stop(ctx context.Context) error {
	return errors.Join(
		a.HTTPServer.Stop(ctx),
		a.redisDB.Close(),
		a.storage.Close(),
	)
}
