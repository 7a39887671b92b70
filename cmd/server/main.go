package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/fakhama/costume_rental/internal/config"
	"github.com/fakhama/costume_rental/internal/db"
	"github.com/fakhama/costume_rental/internal/es"
	"github.com/fakhama/costume_rental/internal/httpserver"
	"github.com/fakhama/costume_rental/internal/logging"
	appmw "github.com/fakhama/costume_rental/internal/middleware"
	"github.com/fakhama/costume_rental/internal/mykafka"
	"github.com/fakhama/costume_rental/internal/repo"
	"github.com/fakhama/costume_rental/internal/service"
	"github.com/fakhama/costume_rental/internal/storage"
)

func main() {
	cfg := config.Load()
	cfg.MustValidate()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gormDB, err := db.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = mykafka.NewProducer(cfg.KafkaBrokers)
	} else {
		log.Println("KAFKA_BROKERS not set, event publishing disabled")
	}

	files, err := storage.NewDiskStore(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		log.Fatalf("upload dir: %v", err)
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	repository := &repo.GormRepo{DB: gormDB}

	authSvc := &service.AuthService{Repo: repository, JWTSecret: cfg.JWTSecret}
	catalogSvc := &service.CatalogService{Repo: repository, Producer: producer}
	bookingSvc := &service.BookingService{Repo: repository, Producer: producer}
	favoritesSvc := &service.FavoritesService{Repo: repository}
	reportingSvc := &service.ReportingService{Repo: repository, RDB: rdb}

	searchHandler := &httpserver.SearchHTTP{Index: "products"}
	if cfg.ESURL != "" {
		client, err := es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		searchHandler.ES = client
	} else {
		log.Println("ES_URL not set, product search disabled")
	}

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(appmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:      &httpserver.AuthHTTP{Svc: authSvc},
		CatalogHandler:   &httpserver.CatalogHTTP{Svc: catalogSvc, Files: files},
		BookingHandler:   &httpserver.BookingHTTP{Svc: bookingSvc, Files: files},
		FavoritesHandler: &httpserver.FavoritesHTTP{Svc: favoritesSvc},
		ReportingHandler: &httpserver.ReportingHTTP{Svc: reportingSvc},
		SearchHandler:    searchHandler,
		JWTSecret:        cfg.JWTSecret,
		UploadDir:        cfg.UploadDir,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("%s listening on %s", cfg.ServiceName, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Printf("redis close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
