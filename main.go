package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/JovanaT99/eventsApp/attendance"
	"github.com/JovanaT99/eventsApp/config"
	"github.com/JovanaT99/eventsApp/db"
	"github.com/JovanaT99/eventsApp/discovery"
	"github.com/JovanaT99/eventsApp/logger"
	"github.com/JovanaT99/eventsApp/middlewares"
	"github.com/JovanaT99/eventsApp/models"
	"github.com/JovanaT99/eventsApp/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("store init failed", zap.Error(err))
	}
	defer st.close()

	geoMode, err := discovery.ParseGeoMode(cfg.Discover.GeoMode)
	if err != nil {
		lg.Fatal("invalid discovery config", zap.Error(err))
	}
	deps := routes.Deps{
		Users:      st.users,
		Categories: st.categories,
		Events:     st.events,
		Messages:   st.messages,
		Discovery: discovery.NewService(st.events,
			discovery.WithGeoMode(geoMode),
			discovery.WithLogger(lg.Named("discovery")),
		),
		Attendance: attendance.NewService(st.events, st.users,
			attendance.NewMachine(st.attendance, time.Now),
			lg.Named("attendance"),
		),
		Log: lg,
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	server := gin.New()
	server.Use(
		middlewares.ErrorHandler(lg),
		middlewares.RequestLogger(lg.Named("http")),
		middlewares.Metrics(),
		middlewares.CORS(),
	)

	limiter := middlewares.NewRateLimiter(ctx, middlewares.LimiterConfig{
		RPS:     cfg.Limits.RPS,
		Burst:   cfg.Limits.Burst,
		IdleTTL: 3 * time.Minute,
	})
	server.Use(limiter.Middleware(func(c *gin.Context) string { return "ip:" + c.ClientIP() }))

	if cfg.Redis.Addr != "" && cfg.Limits.DailyQuota > 0 {
		rdb := redis.NewClient(&redis.Options{
			Addr:        cfg.Redis.Addr,
			DialTimeout: 500 * time.Millisecond,
			ReadTimeout: 500 * time.Millisecond,
		})
		defer rdb.Close()
		server.Use(middlewares.Quota(rdb, middlewares.QuotaRule{
			Limit:  cfg.Limits.DailyQuota,
			Window: 24 * time.Hour,
			KeyFn:  middlewares.WriteQuotaKey,
		}, lg.Named("quota")))
	}

	routes.RegisterRoutes(server, deps)

	srv := &http.Server{Addr: ":" + cfg.Server.Port, Handler: server}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	lg.Info("server listening",
		zap.String("addr", srv.Addr),
		zap.String("store", cfg.Store.Kind),
		zap.String("geoMode", string(geoMode)),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		lg.Fatal("server failed", zap.Error(err))
	}
}

type stores struct {
	users      models.UserRepository
	categories models.CategoryRepository
	events     models.EventRepository
	messages   models.MessageRepository
	attendance models.AttendanceRepository
	close      func()
}

// openStores builds the repositories for cfg.Store.Kind: events in Mongo
// and everything relational in Postgres, or all of them in memory.
func openStores(ctx context.Context, cfg *config.Config, lg *zap.Logger) (*stores, error) {
	if cfg.Store.Kind == "memory" {
		lg.Warn("using in-memory stores; data is lost on restart")
		return &stores{
			users:      models.NewMemoryUserRepository(),
			categories: models.NewMemoryCategoryRepository(),
			events:     models.NewMemoryEventRepository(),
			messages:   models.NewMemoryMessageRepository(),
			attendance: models.NewMemoryAttendanceRepository(),
			close:      func() {},
		}, nil
	}

	sqldb, err := db.OpenPostgres(ctx, cfg.Store.PGDSN)
	if err != nil {
		return nil, err
	}
	mg, eventsCol, err := db.OpenMongo(ctx, cfg.Store.MongoURI, cfg.Store.MongoDB)
	if err != nil {
		sqldb.Close()
		return nil, err
	}

	return &stores{
		users:      models.NewSQLUserRepository(sqldb),
		categories: models.NewSQLCategoryRepository(sqldb),
		events:     models.NewMongoEventRepository(eventsCol),
		messages:   models.NewSQLMessageRepository(sqldb),
		attendance: models.NewSQLAttendanceRepository(sqldb),
		close: func() {
			_ = mg.Disconnect(context.Background())
			_ = sqldb.Close()
		},
	}, nil
}
