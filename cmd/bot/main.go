package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/huddle/internal/common/clock"
	"github.com/KirkDiggler/huddle/internal/common/uuid"
	"github.com/KirkDiggler/huddle/internal/config"
	"github.com/KirkDiggler/huddle/internal/database"
	"github.com/KirkDiggler/huddle/internal/handlers/discord"
	"github.com/KirkDiggler/huddle/internal/handlers/ops"
	configRepo "github.com/KirkDiggler/huddle/internal/repositories/server_config"
	sessionRepo "github.com/KirkDiggler/huddle/internal/repositories/session"
	"github.com/KirkDiggler/huddle/internal/scheduler"
	sessionService "github.com/KirkDiggler/huddle/internal/services/session"
	"github.com/KirkDiggler/huddle/internal/services/settings"
	"github.com/KirkDiggler/huddle/internal/services/timing"
)

const (
	connectTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

// store bundles the repositories of the selected backend
type store struct {
	sessions sessionRepo.Repository
	configs  configRepo.Repository
	close    func() error
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	st, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("failed to open store")
	}
	defer st.close()
	log.Info().Str("backend", cfg.StoreBackend).Msg("store connected")

	timingSvc, err := timing.New(&timing.Config{
		Clock:           clock.New(),
		DefaultTimezone: cfg.DefaultTimezone,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create timing service")
	}

	settingsSvc, err := settings.New(&settings.Config{
		Repository:       st.configs,
		DefaultTimezone:  cfg.DefaultTimezone,
		DefaultLanguage:  cfg.DefaultLanguage,
		DefaultAlertLead: cfg.DefaultAlertLeadMinutes,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create settings service")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	discordSession, err := discord.NewSession(cfg.DiscordToken)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Discord session")
	}

	sink, err := discord.NewSink(&discord.SinkConfig{
		Session:           discordSession,
		MessagesPerSecond: cfg.MessagesPerSecond,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Discord sink")
	}

	sched, err := scheduler.New(&scheduler.Config{
		SessionRepo:     st.sessions,
		Settings:        settingsSvc,
		Timing:          timingSvc,
		Sink:            sink,
		UUID:            uuid.New(),
		Metrics:         scheduler.NewMetrics(registry),
		Interval:        cfg.TickInterval(),
		NotifyLead:      time.Duration(cfg.NotifyLeadMinutes) * time.Minute,
		EndGrace:        time.Duration(cfg.EndGraceMinutes) * time.Minute,
		Retention:       cfg.Retention(),
		SessionTimeout:  cfg.SessionTimeout(),
		FollowUpEnabled: cfg.FollowUpEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create scheduler")
	}

	sessionSvc, err := sessionService.New(&sessionService.Config{
		SessionRepo: st.sessions,
		Settings:    settingsSvc,
		Timing:      timingSvc,
		Refresher:   sched,
		Retention:   cfg.Retention(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create session service")
	}

	bot, err := discord.New(&discord.Config{
		Session:         discordSession,
		ApplicationID:   cfg.ApplicationID,
		GuildID:         cfg.GuildID,
		SessionService:  sessionSvc,
		SettingsService: settingsSvc,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Discord bot")
	}

	if err := bot.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start Discord bot")
	}

	ctx, cancel := context.WithCancel(context.Background())
	sched.Start(ctx)

	var server *http.Server
	if cfg.MetricsAddr != "" {
		router, err := ops.NewRouter(&ops.Config{
			Store:    st.sessions,
			Gatherer: registry,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create ops router")
		}

		server = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           router,
			ReadHeaderTimeout: connectTimeout,
		}

		go func() {
			log.Info().Str("addr", cfg.MetricsAddr).Msg("starting ops server")
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("ops server error")
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	cancel()
	sched.Stop()

	if server != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("ops server forced to shutdown")
		}
		shutdownCancel()
	}

	if err := bot.Stop(); err != nil {
		log.Error().Err(err).Msg("error stopping bot")
	}

	log.Info().Msg("bot has been shut down")
}

// openStore connects the configured backend and builds its repositories
func openStore(cfg *config.Config) (*store, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		return openPostgres(cfg.DatabaseURL)
	default:
		return openRedis(cfg.RedisURL)
	}
}

func openRedis(redisURL string) (*store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{RedisClient: client})
	if err != nil {
		client.Close()
		return nil, err
	}

	configs, err := configRepo.NewRedis(&configRepo.Config{RedisClient: client})
	if err != nil {
		client.Close()
		return nil, err
	}

	return &store{sessions: sessions, configs: configs, close: client.Close}, nil
}

func openPostgres(databaseURL string) (*store, error) {
	if err := database.RunMigrations(databaseURL); err != nil {
		return nil, err
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		return nil, err
	}

	sessions, err := sessionRepo.NewPostgres(&sessionRepo.PostgresConfig{DB: db.DB})
	if err != nil {
		db.Close()
		return nil, err
	}

	configs, err := configRepo.NewPostgres(&configRepo.PostgresConfig{DB: db.DB})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &store{sessions: sessions, configs: configs, close: db.Close}, nil
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
