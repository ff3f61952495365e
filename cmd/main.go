package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vovarama1992/docreader/internal/config"
	"github.com/Vovarama1992/docreader/internal/delivery"
	ws "github.com/Vovarama1992/docreader/internal/delivery/ws"
	"github.com/Vovarama1992/docreader/internal/domain"
	"github.com/Vovarama1992/docreader/internal/infra"
	"github.com/Vovarama1992/docreader/internal/view"
	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

func main() {

	// ENV
	cfg, err := config.Load()
	if err != nil {
		panic("config: " + err.Error())
	}

	// LOGGER
	var zcore *zap.Logger
	if cfg.IsProduction() {
		zcore, _ = zap.NewProduction()
	} else {
		zcore, _ = zap.NewDevelopment()
	}
	defer zcore.Sync()
	zl := logger.NewZapLogger(zcore.Sugar())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// POSTGRES
	pool, err := infra.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		panic(err.Error())
	}
	defer pool.Close()

	if err := infra.EnsureSchema(ctx, pool); err != nil {
		panic(err.Error())
	}

	// SERVICES
	userRepo := infra.NewPostgresUserRepo(pool)
	historyRepo := infra.NewPostgresHistoryRepo(pool)
	mailer := infra.NewLogMailer(zl)

	authService := domain.NewAuthService(userRepo, mailer, cfg.AuthSecret, cfg.SessionTimeout, cfg.OTPExpiry)
	historyService := domain.NewHistoryService(historyRepo)

	// VIEW
	loc := view.NewLocalizer(view.DefaultLanguage)
	urls := view.NewURLBuilder(cfg.BaseURL)
	renderer := view.NewHistoryRenderer(
		view.WithLocalizer(loc),
		view.WithTimezone(cfg.Timezone),
		view.WithMaxLength(cfg.HistoryTruncate),
	)
	layout := view.NewLayout(urls, loc, version)

	// WS HUB
	hub := ws.NewHub()
	ws.Upgrader.CheckOrigin = ws.CheckOrigin(cfg.CORSOrigins)
	go hub.Pump(ctx, historyService.Events())

	// HANDLERS
	cookie := delivery.SessionCookie{Secure: cfg.CookieSecure}
	handlers := delivery.Handlers{
		Auth:    delivery.NewAuthHandler(authService, cookie, urls, zl),
		History: delivery.NewHistoryHandler(historyService, renderer, cfg.HistoryPageSize, zl),
		Pages:   delivery.NewPageHandler(layout, renderer, historyService, urls, cfg.HistoryPageSize, zl),
		WS:      ws.WSHandler(hub, delivery.SessionFrom),
	}

	// ROUTER
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Auth"},
		AllowCredentials: true,
	}))

	delivery.RegisterRoutes(r, authService, cookie, urls, handlers)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "server started",
		Fields: map[string]any{
			"port":     cfg.Port,
			"env":      cfg.Env,
			"timezone": cfg.Timezone.String(),
		},
	})

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zl.Log(logger.LogEntry{
			Level:   "error",
			Message: "server crashed",
			Error:   err,
		})
	}
}
