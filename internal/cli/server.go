package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"element-quiz-service/internal/app"
	"element-quiz-service/internal/auth"
	"element-quiz-service/internal/catalog"
	"element-quiz-service/internal/config"
	"element-quiz-service/internal/infra/memory"
	"element-quiz-service/internal/infra/postgres"
	redisstore "element-quiz-service/internal/infra/redis"
	"element-quiz-service/internal/platform/logger"
	transport "element-quiz-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			defer log.Sync()
			return runServer(cmd.Context(), cfg, *port, log)
		},
	}
}

// backends are the optional external stores; nil means not configured.
type backends struct {
	redis *redis.Client
	pool  *pgxpool.Pool
}

func (b backends) close() {
	if b.pool != nil {
		b.pool.Close()
	}
	if b.redis != nil {
		_ = b.redis.Close()
	}
}

func connect(ctx context.Context, cfg config.Config, log *logger.Logger) (backends, error) {
	var b backends
	if cfg.Postgres.URL != "" {
		if err := runMigrations(ctx, cfg, log); err != nil {
			return b, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return b, err
		}
		b.pool = pool
	}
	if cfg.Redis.Addr != "" {
		b.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := b.redis.Ping(ctx).Err(); err != nil {
			b.close()
			return backends{}, err
		}
	}
	return b, nil
}

func questionRepository(cfg config.Config, b backends) app.QuestionRepository {
	var loader memory.QuestionLoader = memory.NewStaticQuestionLoader(catalog.Questions())
	if b.pool != nil {
		loader = postgres.NewQuestionLoader(b.pool)
	}
	ttl := config.TTLDuration(cfg.Questions.TTL, 10*time.Minute)
	if b.redis != nil {
		return redisstore.NewQuestionRepository(b.redis, loader, ttl)
	}
	return memory.NewQuestionRepository(loader, ttl)
}

func progressStore(b backends) app.ProgressStore {
	switch {
	case b.pool != nil:
		return postgres.NewProgressStore(b.pool)
	case b.redis != nil:
		return redisstore.NewProgressStore(b.redis)
	default:
		return memory.NewProgressStore()
	}
}

func identityService(cfg config.Config, b backends, log *logger.Logger) (*auth.Service, error) {
	var identities auth.IdentityStore = memory.NewIdentityStore()
	if b.pool != nil {
		identities = postgres.NewIdentityStore(b.pool)
	}
	var revoked auth.RevocationStore = memory.NewRevocationStore()
	if b.redis != nil {
		revoked = redisstore.NewRevocationStore(b.redis)
	}
	return auth.NewService(identities, revoked, log.With("component", "auth"), auth.Options{
		Secret:          cfg.Auth.JWTSecret,
		TokenTTL:        config.TTLDuration(cfg.Auth.TokenTTL, 24*time.Hour),
		RedirectBaseURL: cfg.Auth.RedirectBaseURL,
	})
}

func runServer(ctx context.Context, cfg config.Config, portFlag string, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	b, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.close()

	var sessions app.SessionRepository = memory.NewSessionStore()
	if b.redis != nil {
		sessions = redisstore.NewSessionStore(b.redis, config.TTLDuration(cfg.Redis.TTL, 10*time.Minute))
	}

	outbox := app.NewOutbox(log.With("component", "outbox"), app.OutboxOptions{
		Workers:   cfg.Persistence.Workers,
		QueueSize: cfg.Persistence.QueueSize,
		Timeout:   config.TTLDuration(cfg.Persistence.Timeout, 0),
	})
	games := app.NewGameService(sessions, questionRepository(cfg, b), progressStore(b), outbox, log, app.GameOptions{
		Mode: app.ParsePromptMode(cfg.Game.Mode),
	})

	identity, err := identityService(cfg, b, log)
	if err != nil {
		return err
	}
	events, unsubscribe := identity.Subscribe()
	defer unsubscribe()
	go games.WatchSessions(ctx, events)

	router := transport.NewRouter(
		transport.NewAPIHandler(identity, log),
		transport.NewWSHandler(games, identity, log),
		transport.RouterOptions{AllowedOrigins: cfg.CORS.AllowedOrigins, Log: log},
	)
	server := &http.Server{
		Addr:              ":" + finalPort,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting element quiz service", "port", finalPort, "postgres", b.pool != nil, "redis", b.redis != nil)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("server shutdown", "error", err)
	}
	if err := outbox.Close(shutdownCtx); err != nil {
		log.Warn("persistence outbox did not drain", "error", err)
	}
	return nil
}
