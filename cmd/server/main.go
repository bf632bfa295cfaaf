package main

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/solace-app/backend/internal/auth"
	"github.com/solace-app/backend/internal/router"
	"github.com/solace-app/backend/internal/store"
	"github.com/solace-app/backend/internal/validators"
	"github.com/solace-app/backend/pkg/config"
	"github.com/solace-app/backend/pkg/objectstore"
)

func main() {
	cfg := config.Load()

	client, err := config.InitDB(cfg)
	if err != nil {
		panic("failed to connect to database: " + err.Error())
	}
	defer config.CloseDB(client)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	objects, err := objectstore.NewMinioStore(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	if err != nil {
		panic("failed to connect to object store: " + err.Error())
	}

	e := echo.New()
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e)
	router.SetupRoutes(e, store.NewMongoStore(client, cfg.DBName), auth.NewCredentials(cfg.JWTSecret), objects)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
