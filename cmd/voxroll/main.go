// Command voxroll is the main entry point for the voxroll Discord TTS bot.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/MrWong99/voxroll/internal/config"
	"github.com/MrWong99/voxroll/internal/dectalk"
	discordbot "github.com/MrWong99/voxroll/internal/discord"
	"github.com/MrWong99/voxroll/internal/health"
	"github.com/MrWong99/voxroll/internal/observe"
	"github.com/MrWong99/voxroll/internal/rollstore"
	"github.com/MrWong99/voxroll/internal/voice"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	// ── Load configuration ────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "voxroll: config file %q not found — copy configs/example.yaml to get started\n", *configPath)
		} else {
			fmt.Fprintf(os.Stderr, "voxroll: %v\n", err)
		}
		return 1
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	logger := newLogger(cfg.Server.LogLevel)
	slog.SetDefault(logger)

	slog.Info("voxroll starting",
		"version", version,
		"config", *configPath,
		"listen_addr", cfg.Server.ListenAddr,
		"log_level", cfg.Server.LogLevel,
		"voice_mode", cfg.Voice.Mode,
	)

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Metrics provider ──────────────────────────────────────────────────────
	shutdownMetrics, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceVersion: version,
	})
	if err != nil {
		slog.Error("failed to initialise metrics provider", "err", err)
		return 1
	}
	metrics := observe.DefaultMetrics()

	// ── Roll store ────────────────────────────────────────────────────────────
	store, closeStore, err := buildStore(ctx, cfg.Voice.Store)
	if err != nil {
		slog.Error("failed to open roll store", "err", err)
		return 1
	}
	defer closeStore()

	// ── Voice manager ─────────────────────────────────────────────────────────
	synth, err := voice.NewSynthesizer(cfg.Voice.SexPolicy)
	if err != nil {
		slog.Error("invalid voice configuration", "err", err)
		return 1
	}
	voices := voice.NewManager(synth, store)
	if err := voices.LoadRolls(ctx); err != nil {
		slog.Error("failed to load persisted rolls", "err", err)
		return 1
	}

	// ── Speech engine ─────────────────────────────────────────────────────────
	engine, err := dectalk.New(cfg.Dectalk.BinaryPath,
		dectalk.WithScratchDir(cfg.Dectalk.ScratchDir),
		dectalk.WithTimeout(time.Duration(cfg.Dectalk.TimeoutSeconds)*time.Second),
	)
	if err != nil {
		slog.Error("failed to initialise speech engine", "err", err)
		return 1
	}
	if err := engine.Check(ctx); err != nil {
		slog.Warn("speech engine check failed, synthesis will error until resolved", "err", err)
	}

	// ── Discord bot ───────────────────────────────────────────────────────────
	bot, err := discordbot.New(discordbot.Config{
		Token:              cfg.Discord.Token,
		OwnerID:            cfg.Discord.OwnerID,
		Mode:               cfg.Voice.Mode,
		Palette:            cfg.Voice.Palette,
		Volume:             cfg.Playback.Volume,
		MaxDurationSeconds: cfg.Playback.MaxDurationSeconds,
		MaxMessageLength:   cfg.Playback.MaxMessageLength,
	}, voices, engine, metrics)
	if err != nil {
		slog.Error("failed to connect Discord bot", "err", err)
		return 1
	}

	// ── HTTP server: metrics + health ─────────────────────────────────────────
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	health.New(
		health.Check{Name: "engine", Probe: engine.Check},
		health.Check{Name: "rolls", Probe: func(ctx context.Context) error {
			_, err := store.Load(ctx)
			return err
		}},
	).Register(mux)

	var srv *http.Server
	if cfg.Server.ListenAddr != "" {
		srv = &http.Server{
			Addr:              cfg.Server.ListenAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	if srv != nil {
		g.Go(func() error {
			slog.Info("http server listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		return bot.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		slog.Info("shutdown signal received, stopping…")
		if err := bot.Close(); err != nil {
			slog.Warn("discord bot close error", "err", err)
		}
		if srv != nil {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Warn("http server shutdown error", "err", err)
			}
		}
		return shutdownMetrics(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run error", "err", err)
		return 1
	}
	slog.Info("goodbye")
	return 0
}

// buildStore opens the configured roll store backend. The returned close
// function is a no-op for the file backend.
func buildStore(ctx context.Context, cfg config.StoreConfig) (rollstore.Store, func(), error) {
	switch cfg.Backend {
	case config.StorePostgres:
		pg, err := rollstore.NewPostgresStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	default:
		return rollstore.NewFileStore(cfg.Path), func() {}, nil
	}
}

// ── Logger ─────────────────────────────────────────────────────────────────────

func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
