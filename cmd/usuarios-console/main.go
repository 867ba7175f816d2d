package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"

	"github.com/Checker-Finance/usuarios-console/internal/api"
	"github.com/Checker-Finance/usuarios-console/internal/audit"
	"github.com/Checker-Finance/usuarios-console/internal/auth"
	"github.com/Checker-Finance/usuarios-console/internal/login"
	"github.com/Checker-Finance/usuarios-console/internal/rate"
	internalsecrets "github.com/Checker-Finance/usuarios-console/internal/secrets"
	"github.com/Checker-Finance/usuarios-console/internal/session"
	"github.com/Checker-Finance/usuarios-console/internal/usuarios"
	"github.com/Checker-Finance/usuarios-console/pkg/config"
	"github.com/Checker-Finance/usuarios-console/pkg/logger"
	"github.com/Checker-Finance/usuarios-console/pkg/secrets"
	"github.com/Checker-Finance/usuarios-console/pkg/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Load configuration ---
	cfg := config.Load()

	logger.Init(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	logg := logger.S()
	logg.Info("starting [usuarios-console]...")

	// --- Optional overrides from AWS Secrets Manager ---
	if cfg.ConfigSecretID != "" {
		awsProvider, err := secrets.NewAWSProvider(ctx, cfg.AWSRegion)
		if err != nil {
			logg.Fatalw("failed to create AWS Secrets Manager provider", "error", err)
		}
		resolver := internalsecrets.NewConfigResolver(logger.Named("secrets"), awsProvider)
		values, err := resolver.Resolve(ctx, cfg.ConfigSecretID)
		if err != nil {
			logg.Fatalw("failed to resolve config secret", "secret_id", cfg.ConfigSecretID, "error", err)
		}
		cfg.ApplySecret(values)
		if lvl := values["log_level"]; lvl != "" {
			if err := logger.SetLevel(lvl); err != nil {
				logg.Warnw("ignoring invalid log_level from secret", "level", lvl, "error", err)
			}
		}
	}
	logg.Infow("remote API configured", "api_url", cfg.APIURL, "auth_path", cfg.AuthLoginPath)

	// --- Session store ---
	var (
		store      session.Store
		redisStore *session.RedisStore
	)
	if cfg.RedisAddr != "" {
		rs, err := session.NewRedisStore(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.SessionTTL, logger.Named("session"))
		if err != nil {
			logg.Fatalw("failed to init redis session store", "error", err)
		}
		store, redisStore = rs, rs
		logg.Infow("sessions stored in redis", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
	} else {
		ms := session.NewMemoryStore(cfg.SessionTTL)
		go ms.RunSweeper(ctx, time.Minute)
		store = ms
		logg.Warn("REDIS_ADDR not configured; sessions kept in memory")
	}

	// --- Audit publisher ---
	var (
		nc      *nats.Conn
		auditor login.Auditor = audit.Nop{}
	)
	if cfg.NATSURL != "" {
		logg.Info("connecting to NATS: ", utils.MaskDSN(cfg.NATSURL))
		var err error
		nc, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			logg.Fatalw("failed to connect to NATS", "error", err)
		}
		pub, err := audit.New(nc, cfg.AuditSubject, cfg.AuditStream, cfg.ServiceName, logger.Named("audit"))
		if err != nil {
			logg.Fatalw("failed to init audit publisher", "error", err)
		}
		auditor = pub
	} else {
		logg.Warn("NATS_URL not configured; audit events disabled")
	}

	// --- Remote API clients ---
	rateMgr := rate.NewManager(rate.Config{
		RequestsPerSecond: cfg.APIRateRPS,
		Burst:             cfg.APIRateBurst,
	})
	httpClient := &http.Client{}

	authClient := auth.NewClient(logger.Named("auth"), rateMgr, httpClient, cfg.APIURL, cfg.AuthLoginPath)
	usuariosClient := usuarios.NewClient(logger.Named("usuarios"), rateMgr, httpClient, cfg.APIURL, nil)

	// --- Login flow ---
	ctrl := login.NewController(logger.Named("login"), authClient, store, auditor)

	// --- Fiber HTTP Server ---
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
		BodyLimit:    cfg.HTTPBodyLimit,
		ErrorHandler: api.ErrorHandler(logger.Named("api")),
	})

	cookie := api.SessionCookie{Name: cfg.SessionCookie, TTL: cfg.SessionTTL, Secure: cfg.CookieSecure}
	authHandler := api.NewAuthHandler(logger.Named("api"), ctrl, cookie)
	usuariosHandler := api.NewUsuariosHandler(logger.Named("api"), func(sid string) api.UsuariosService {
		return usuariosClient.WithTokens(session.NewHolder(store, sid))
	}, store, auditor)

	api.RegisterRoutes(app, nc, store,
		cookie.Middleware(),
		authHandler,
		usuariosHandler,
	)

	go func() {
		logg.Infof("HTTP API listening on :%d", cfg.Port)
		if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			logg.Fatalw("fiber.listen_failed", "error", err)
		}
	}()

	logg.Infow("[usuarios-console] running",
		"env", cfg.Env,
		"audit", nc != nil,
		"rate_limited", rateMgr.Enabled())

	<-ctx.Done()
	logg.Info("shutting down [usuarios-console]...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logg.Warnw("fiber.shutdown_failed", "error", err)
	}
	if nc != nil {
		if err := nc.Drain(); err != nil {
			logg.Warnw("nats.drain_failed", "error", err)
		}
	}
	if redisStore != nil {
		if err := redisStore.Close(); err != nil {
			logg.Warnw("store.close_failed", "error", err)
		}
	}
}
