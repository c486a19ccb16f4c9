package web

import (
	"context"
	"flag"
	"fmt"
	"time"

	entrypoint "github.com/louisbranch/showcase/internal/platform/cmd"
	"github.com/louisbranch/showcase/internal/platform/config"
	"github.com/louisbranch/showcase/internal/services/web"
)

const envPrefix = "SHOWCASE_WEB_"

// Config holds the web command configuration.
type Config struct {
	HTTPAddr            string        `env:"HTTP_ADDR" envDefault:"localhost:8080"`
	SessionTTL          time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	MaxSessions         int           `env:"MAX_SESSIONS" envDefault:"10000"`
	TrustForwardedProto bool          `env:"TRUST_FORWARDED_PROTO" envDefault:"false"`
}

// ParseConfig loads SHOWCASE_WEB_* environment defaults and then parses
// flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnvPrefixed(&cfg, envPrefix); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Idle lifetime of a visitor navigation session")
	fs.IntVar(&cfg.MaxSessions, "max-sessions", cfg.MaxSessions, "Maximum live visitor sessions before the least recent is evicted")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Honour X-Forwarded-Proto from a fronting proxy")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("session ttl must be positive, got %s", cfg.SessionTTL)
	}
	if cfg.MaxSessions <= 0 {
		return Config{}, fmt.Errorf("max sessions must be positive, got %d", cfg.MaxSessions)
	}
	return cfg, nil
}

// Run starts the site server with telemetry.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		server, err := web.NewServer(ctx, web.Config{
			HTTPAddr:            cfg.HTTPAddr,
			SessionTTL:          cfg.SessionTTL,
			MaxSessions:         cfg.MaxSessions,
			TrustForwardedProto: cfg.TrustForwardedProto,
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
