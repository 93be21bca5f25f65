package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/Skotchmaster/product_catalog/internal/config"
	"github.com/Skotchmaster/product_catalog/internal/es"
	"github.com/Skotchmaster/product_catalog/internal/handlers"
	"github.com/Skotchmaster/product_catalog/internal/httpx"
	"github.com/Skotchmaster/product_catalog/internal/logging"
	authmw "github.com/Skotchmaster/product_catalog/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/product_catalog/internal/middleware/logging"
	"github.com/Skotchmaster/product_catalog/internal/mykafka"
	"github.com/Skotchmaster/product_catalog/internal/repo"
	httpserver "github.com/Skotchmaster/product_catalog/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LogLevel)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("db init failed: %v", err)
	}

	prod := mykafka.NewProducer(configuration.KafkaBrokers)

	var redisClient *redis.Client
	if configuration.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     configuration.RedisAddr,
			Password: configuration.RedisPassword,
			DB:       configuration.RedisDB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("redis connect failed: %v", err)
		}
	}

	var searchHandler *handlers.SearchHandler
	if configuration.ESURL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch connect failed: %v", err)
		}
		searchHandler = &handlers.SearchHandler{ES: esClient, Index: "product"}
	}

	users := &repo.UserRepo{DB: db}
	products := &repo.ProductRepo{DB: db}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpx.ErrorHandler(logger)
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		AuthHandler: &handlers.AuthHandler{
			Users:     users,
			JWTSecret: configuration.JWTSecret,
			JWTTTL:    configuration.JWTTTL,
			Producer:  prod,
		},
		ProductHandler: &handlers.ProductHandler{
			Products: products,
			Producer: prod,
			Redis:    redisClient,
		},
		SearchHandler: searchHandler,
		Guard:         &authmw.Guard{Users: users, Secret: configuration.JWTSecret},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.AppPort,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", configuration.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	} else {
		logger.Error("db() error", "error", err)
	}

	if err := prod.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("redis close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
