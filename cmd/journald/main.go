package main

import (
	"context"
	"flag"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/totegamma/journal-playground/internal/config"
	"github.com/totegamma/journal-playground/internal/infra/database"
	"github.com/totegamma/journal-playground/internal/infra/repository"
	"github.com/totegamma/journal-playground/internal/interface/rest"
	"github.com/totegamma/journal-playground/internal/service"
	"github.com/totegamma/journal-playground/internal/usecase"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	ctx := context.Background()

	if conf.Server.EnableTrace {
		shutdown, err := setupTracer(ctx, conf.Server.TraceEndpoint)
		if err != nil {
			panic("failed to setup tracer: " + err.Error())
		}
		defer shutdown(ctx)
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn)
	if err != nil {
		panic("failed to connect database")
	}

	err = database.MigratePostgres(db)
	if err != nil {
		panic("failed to migrate database")
	}

	targetRepo := repository.NewTargetRepository(db)
	itemRepo := repository.NewItemRepository(db)
	userRepo := repository.NewUserRepository(db)
	registry := usecase.NewRegistry(targetRepo)

	var cache usecase.SummaryCache
	if conf.Server.MemcachedAddr != "" {
		cache = repository.NewSummaryCache(database.NewMemcached(conf.Server.MemcachedAddr))
	}

	var signal *service.SignalService
	if conf.Server.RedisAddr != "" {
		rdb := database.NewRedis(conf.Server.RedisAddr, "", conf.Server.RedisDB)
		signal = service.NewSignalService(rdb)
	}

	var publisher usecase.EventPublisher
	var realtime rest.RealtimeSource
	if signal != nil {
		publisher = signal
		realtime = signal
	}

	journalUC := usecase.NewJournalUsecase(targetRepo, itemRepo, userRepo, registry, cache, publisher)

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware("journald"))
	}

	rest.NewHandler(journalUC, realtime).RegisterRoutes(e)

	slog.Info("starting journald", slog.String("addr", conf.Server.ListenAddr))
	e.Logger.Fatal(e.Start(conf.Server.ListenAddr))
}

func setupTracer(ctx context.Context, endpoint string) (func(context.Context) error, error) {
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(sdkresource.NewSchemaless(
			attribute.String("service.name", "journald"),
		)),
	)
	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}
