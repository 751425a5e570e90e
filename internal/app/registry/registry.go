// Package registry собирает приложение регистрации на конференцию:
// подключение к базе, миграции, кеш, сервисы и HTTP-сервер.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/conference-registry/internal/cache"
	"github.com/magabrotheeeer/conference-registry/internal/config"
	"github.com/magabrotheeeer/conference-registry/internal/lib/jwt"
	"github.com/magabrotheeeer/conference-registry/internal/migrations"
	"github.com/magabrotheeeer/conference-registry/internal/registration"
	authservice "github.com/magabrotheeeer/conference-registry/internal/services/auth"
	contributionservice "github.com/magabrotheeeer/conference-registry/internal/services/contribution"
	"github.com/magabrotheeeer/conference-registry/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New создает приложение: подключается к базе, применяет миграции,
// инициализирует кеш и сервисы, регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	deadline, err := cfg.Registration.DeadlineDate()
	if err != nil {
		return nil, fmt.Errorf("invalid registration deadline: %w", err)
	}
	fees := &registration.FeeCalculator{
		Deadline:  deadline,
		NormalFee: cfg.Registration.NormalFee,
		LateFee:   cfg.Registration.LateFee,
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker)
	contributionService := contributionservice.New(db, cacheRedis, fees, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, contributionService, db)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
