package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel"
	otelprometheus "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"inventar-server/cmd/config"
	"inventar-server/internal/infra/cache"
	"inventar-server/internal/infra/httpserver"
	"inventar-server/internal/infra/sql"
	"inventar-server/internal/inventory/httpapi"
	"inventar-server/internal/inventory/persistence"
	"inventar-server/internal/inventory/usecases"
)

var logLevelMapping = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

var (
	flagAddr     = pflag.String("addr", "", "listen address, overrides http.addr from config")
	flagMemoryDB = pflag.Bool("memory-db", false, "use the in-memory database instead of postgres")
)

func main() {
	pflag.Parse()
	appConfig := config.LoadConfig()

	level := logLevelMapping[appConfig.General.LogLevel]
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{AddSource: true, Level: level, ReplaceAttr: slogReplaceAttr})
	slog.SetDefault(slog.New(handler))
	slog.Info("🚀 inventar server is initializing")
	slog.Debug("config loaded", "data", appConfig)

	startMetrics()

	orm := setupORM(appConfig)
	schemaCache := setupCache(appConfig)
	readinessCheck, closeProbe := setupReadinessProbe(appConfig)

	fieldRepository, err := persistence.NewFieldDefinitionRepository(orm)
	if err != nil {
		slog.Error("initializing field repository", slog.String("error", err.Error()))
		panic(err)
	}
	recordRepository, err := persistence.NewRecordRepository(orm)
	if err != nil {
		slog.Error("initializing record repository", slog.String("error", err.Error()))
		panic(err)
	}

	fieldService := usecases.NewFieldService(fieldRepository, schemaCache,
		usecases.WithSchemaCacheTTL(appConfig.Cache.SchemaTTL))
	recordService := usecases.NewRecordService(recordRepository, fieldService)
	exportService := usecases.NewExportService(recordService, fieldService)

	addr := appConfig.HTTP.Addr
	if *flagAddr != "" {
		addr = *flagAddr
	}
	httpServer := httpserver.NewServer(
		httpserver.Options{
			Addr:           addr,
			AllowedOrigins: appConfig.HTTP.AllowedOrigins,
			ReadinessCheck: readinessCheck,
		},
		httpapi.NewFieldController(fieldService),
		httpapi.NewRecordController(recordService, exportService),
	)

	go httpServer.Run()
	slog.Info("http server started", slog.String("addr", addr))

	signalChannel := make(chan os.Signal, 2)
	signal.Notify(signalChannel, os.Interrupt, syscall.SIGTERM)
	<-signalChannel

	httpServer.Shutdown()
	closeProbe()
	slog.Info("good bye!!!")
	os.Exit(0)
}

func setupORM(appConfig config.AppConfig) sql.ORM {
	if *flagMemoryDB || appConfig.Postgresql.DSN == "" {
		slog.Warn("using in-memory database, data will not survive a restart")
		orm, err := sql.NewMemoryORM("inventar")
		if err != nil {
			panic(err)
		}
		return orm
	}

	orm, err := sql.NewPosgreORM(appConfig.Postgresql.DSN)
	if err != nil {
		slog.Error("connecting to postgres", slog.String("error", err.Error()))
		panic(err)
	}
	return orm
}

// setupReadinessProbe opens a pgx pool next to the ORM so GET /readyz checks
// the database itself, not just the process.
func setupReadinessProbe(appConfig config.AppConfig) (func(ctx context.Context) error, func()) {
	if *flagMemoryDB || appConfig.Postgresql.DSN == "" {
		return nil, func() {}
	}

	database := sql.NewPosgreDatabase(appConfig.Postgresql.DSN)
	if err := database.Open(); err != nil {
		slog.Error("opening readiness probe pool", slog.String("error", err.Error()))
		panic(err)
	}

	check := func(ctx context.Context) error {
		_, err := database.Query(ctx, "SELECT 1")
		return err
	}
	return check, database.Close
}

func setupCache(appConfig config.AppConfig) cache.Cache {
	if appConfig.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
			Addr:     appConfig.Redis.Addr,
			Password: appConfig.Redis.Password,
			DB:       appConfig.Redis.DB,
		})
		if err == nil {
			slog.Info("using redis cache", slog.String("addr", appConfig.Redis.Addr))
			return redisCache
		}
		slog.Warn("redis unavailable, falling back to in-process cache", slog.String("error", err.Error()))
	}

	inProcess, err := cache.New(cache.DefaultConfig())
	if err != nil {
		panic(err)
	}
	return inProcess
}

// startMetrics wires the otel metric API used by the http middleware to the
// prometheus registry behind GET /metrics.
func startMetrics() {
	exporter, err := otelprometheus.New()
	if err != nil {
		panic(err)
	}
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)
}

func slogReplaceAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.SourceKey {
		source := a.Value.Any().(*slog.Source)
		source.File = filepath.Base(source.File)
		return slog.Any(a.Key, source)
	}
	return a
}
