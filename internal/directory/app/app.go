package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/salesaholics/dealsdir/internal/directory/registry"
	"github.com/salesaholics/dealsdir/internal/directory/store"
	boltstore "github.com/salesaholics/dealsdir/internal/directory/store/drivers/bolt"
	memorystore "github.com/salesaholics/dealsdir/internal/directory/store/drivers/memory"
	sqlitestore "github.com/salesaholics/dealsdir/internal/directory/store/drivers/sqlite"
	"github.com/salesaholics/dealsdir/internal/directory/telemetry"
	"github.com/salesaholics/dealsdir/pkg/cryptox"
	"github.com/salesaholics/dealsdir/pkg/slogx"
)

const Version = "0.1.0"

// App wires the configured store, telemetry, and credential scheme into a
// loaded registry. The registry is injected into whatever surface needs it
// (the CLI here); there is no ambient global.
type App struct {
	Config   Config
	Log      *slog.Logger
	Store    store.Store
	Registry *registry.Registry
}

func New(ctx context.Context, cfg Config) (*App, error) {
	log := slogx.New(slogx.Config{
		Service: "dealsdir",
		Version: Version,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	st, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.StoreDriver, err)
	}

	verifier, err := credentialVerifier(cfg.Credentials)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	sink, err := telemetrySink(cfg, log)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	reg := registry.New(registry.Options{
		Store:       st,
		Log:         log,
		Telemetry:   sink,
		Credentials: verifier,
		Issuer:      cfg.SiteName,
	})
	reg.Load(ctx)

	return &App{
		Config:   cfg,
		Log:      log,
		Store:    st,
		Registry: reg,
	}, nil
}

// Close releases the underlying store.
func (a *App) Close() error {
	return a.Store.Close()
}

func openStore(cfg Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case "sqlite":
		s, err := sqlitestore.NewStore(cfg.DatabaseFile)
		if err != nil {
			return nil, err
		}
		if err := s.ApplyMigrations(); err != nil {
			_ = s.Close()
			return nil, err
		}
		return s, nil
	case "bolt":
		return boltstore.NewStore(cfg.DatabaseFile)
	case "memory":
		return memorystore.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func credentialVerifier(scheme string) (cryptox.CredentialVerifier, error) {
	switch scheme {
	case "plaintext", "":
		return cryptox.PlaintextVerifier{}, nil
	case "argon2":
		return cryptox.Argon2Verifier{}, nil
	default:
		return nil, fmt.Errorf("unknown credential scheme %q", scheme)
	}
}

func telemetrySink(cfg Config, log *slog.Logger) (telemetry.Sink, error) {
	if !cfg.Telemetry {
		return telemetry.Noop{}, nil
	}

	prom, err := telemetry.NewPromSink(prometheus.DefaultRegisterer)
	if err != nil {
		return nil, fmt.Errorf("failed to register telemetry metrics: %w", err)
	}
	return telemetry.Multi{prom, telemetry.LogSink{Log: log}}, nil
}
