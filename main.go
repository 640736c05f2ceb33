package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/wingsengineering/wingsweb/catalog"
	"github.com/wingsengineering/wingsweb/config"
	"github.com/wingsengineering/wingsweb/controllers"
	"github.com/wingsengineering/wingsweb/database"
	"github.com/wingsengineering/wingsweb/dto"
	"github.com/wingsengineering/wingsweb/integrations"
	"github.com/wingsengineering/wingsweb/localization"
	"github.com/wingsengineering/wingsweb/logging"
	"github.com/wingsengineering/wingsweb/middleware"
	"github.com/wingsengineering/wingsweb/session"
	"github.com/wingsengineering/wingsweb/utils"
)

func main() {
	cfg, note, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Development: !cfg.IsProduction(),
	})
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	if note != "" {
		logger.Info(note)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	translations, err := loadTranslations(cfg)
	if err != nil {
		return err
	}
	if err := translations.CheckParity(); err != nil {
		if cfg.StrictTranslations {
			return err
		}
		logger.Warn("translation tables differ", zap.Error(err))
	}
	defaultLang, err := localization.ParseLanguage(cfg.DefaultLanguage)
	if err != nil {
		return err
	}

	var mongo *database.Mongo
	if cfg.MongoURI != "" {
		mongo, err = database.Connect(ctx, cfg.MongoURI, cfg.DatabaseName)
		if err != nil {
			return err
		}
		defer func() { _ = mongo.Disconnect(context.Background()) }()
		if err := mongo.EnsureIndexes(ctx); err != nil {
			logger.Warn("failed to ensure indexes", zap.Error(err))
		}
		logger.Info("connected to mongo", zap.String("database", cfg.DatabaseName))
	}

	source, closeSource, err := catalogSource(ctx, cfg, mongo)
	if err != nil {
		return err
	}
	defer closeSource()

	snapshot := catalog.NewSnapshot(source, logger)
	if err := snapshot.Refresh(ctx); err != nil {
		logger.Warn("initial catalog load failed; serving an empty catalog", zap.Error(err))
	}
	go refreshLoop(ctx, snapshot, cfg.CatalogRefreshInterval)

	store, closeStore, err := sessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	cookies := utils.CookieSettings{Secure: cfg.CookieSecure, Domain: cfg.CookieDomain}
	app := &controllers.App{
		Snapshot:         snapshot,
		Validator:        dto.NewValidator(),
		Relay:            integrations.NewFormRelay(cfg.Web3FormsEndpoint, cfg.Web3FormsKey, &http.Client{Timeout: 15 * time.Second}, logger),
		WhatsApp:         integrations.WhatsApp{Host: cfg.WhatsAppHost, Number: cfg.WhatsAppNumber},
		Logger:           logger,
		PageSize:         cfg.PageSize,
		MaxPageSize:      cfg.MaxPageSize,
		QuoteValidFor:    cfg.QuoteValidFor,
		Cookies:          cookies,
		JWTSecret:        cfg.JWTSecret,
		JWTRefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:        cfg.AccessTTL(),
		RefreshTTL:       cfg.RefreshTTL(),
	}
	if mongo != nil {
		accounts := database.NewAccounts(mongo)
		if cfg.AdminEmail != "" {
			if err := accounts.SeedAdminUser(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
				return err
			}
		}
		app.Archive = database.NewSubmissionArchive(mongo)
		app.Accounts = accounts
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return slices.Contains(cfg.AllowedOrigins, origin)
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept-Language"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestLogger(logger))
	r.Use(gin.Recovery())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	visitorMW := middleware.Session(middleware.SessionOptions{
		Store:   store,
		Catalog: translations,
		Default: defaultLang,
		Cookies: cookies,
		TTL:     cfg.SessionTTL,
		Logger:  logger,
	})
	app.Register(r, visitorMW, middleware.AuthMiddleware(cfg.JWTSecret))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("catalog", snapshot.SourceName()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func loadTranslations(cfg config.Config) (*localization.Catalog, error) {
	if cfg.TranslationsDir != "" {
		return localization.LoadDir(cfg.TranslationsDir)
	}
	return localization.Default()
}

func catalogSource(ctx context.Context, cfg config.Config, mongo *database.Mongo) (catalog.Source, func(), error) {
	switch cfg.CatalogDriver {
	case config.CatalogDriverMongo:
		return database.NewMongoCatalog(mongo, cfg.CatalogCategories), func() {}, nil
	case config.CatalogDriverFile:
		return database.FileCatalog{Path: cfg.CatalogFile}, func() {}, nil
	default:
		pg, err := database.NewPostgresCatalog(ctx, cfg.DatabaseURL, cfg.CatalogCategories)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	}
}

func sessionStore(ctx context.Context, cfg config.Config) (session.Store, func(), error) {
	if cfg.RedisURL != "" {
		rs, err := session.NewRedisStore(ctx, cfg.RedisURL, cfg.SessionTTL)
		if err != nil {
			return nil, nil, err
		}
		return rs, func() { _ = rs.Close() }, nil
	}
	ms := session.NewMemoryStore(cfg.SessionTTL)
	go ms.RunSweeper(ctx, time.Minute)
	return ms, func() {}, nil
}

func refreshLoop(ctx context.Context, snapshot *catalog.Snapshot, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Failures are logged and counted by the snapshot.
			_ = snapshot.Refresh(ctx)
		}
	}
}
