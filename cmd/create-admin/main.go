// Создание учётной записи администратора из командной строки.
//
// Использование:
//
//	CONFIG_PATH=config/config.yaml create-admin -email admin@example.com -name Admin -password <пароль>
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/magabrotheeeer/conference-registry/internal/config"
	"github.com/magabrotheeeer/conference-registry/internal/lib/jwt"
	"github.com/magabrotheeeer/conference-registry/internal/migrations"
	authservice "github.com/magabrotheeeer/conference-registry/internal/services/auth"
	"github.com/magabrotheeeer/conference-registry/internal/storage/repository"
)

func main() {
	email := flag.String("email", "", "email администратора")
	name := flag.String("name", "", "имя администратора")
	password := flag.String("password", "", "пароль администратора")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{}))

	if *email == "" || *password == "" {
		logger.Error("email and password are required")
		os.Exit(1)
	}

	cfg := config.MustLoad()

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		logger.Error("failed to connect to storage", slog.Any("err", err))
		os.Exit(1)
	}
	defer db.DB.Close()

	if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		logger.Error("failed to run migrations", slog.Any("err", err))
		os.Exit(1)
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker)

	uid, err := authService.RegisterSuperuser(context.Background(), *email, *name, *password)
	if err != nil {
		logger.Error("failed to create admin", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("admin created", slog.String("user_uid", uid))
}
