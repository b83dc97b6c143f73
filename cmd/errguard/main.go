// Command errguard runs a small user service whose routes report every
// failure through the error-wrapping dispatcher.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/errguard/auth"
	"github.com/kbukum/errguard/config"
	"github.com/kbukum/errguard/handler"
	"github.com/kbukum/errguard/logger"
	"github.com/kbukum/errguard/observability"
	"github.com/kbukum/errguard/server"
	"github.com/kbukum/errguard/server/middleware"
	"github.com/kbukum/errguard/util"
)

const serviceName = "errguard"

// Config is the service configuration file layout.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Errors        handler.Config       `yaml:"errors" mapstructure:"errors"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
	Auth          auth.Config          `yaml:"auth" mapstructure:"auth"`
}

// ApplyDefaults fills every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Errors.ApplyDefaults()
	if c.Observability.ServiceName == "" {
		c.Observability.ServiceName = c.Name
	}
	if c.Observability.ServiceVersion == "" {
		c.Observability.ServiceVersion = c.Version
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = c.Environment
	}
	c.Observability.ApplyDefaults()
	c.Auth.ApplyDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Errors.Validate(); err != nil {
		return err
	}
	if err := c.Observability.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run() error {
	var cfg Config
	if err := config.LoadConfig(serviceName, &cfg); err != nil {
		return err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger.Init(cfg.Logging, cfg.Name)
	log := logger.WithComponent("main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	providers, err := observability.Setup(ctx, cfg.Observability)
	if err != nil {
		return fmt.Errorf("observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Warn("Observability shutdown failed", logger.ErrorFields("shutdown", err))
		}
	}()

	w := handler.New(handler.Options{
		Config:   cfg.Errors,
		Fallback: logger.WithComponent("errors"),
		Meter:    providers.MeterFor(observability.TracerName),
	})

	srv := server.New(cfg.Server, w, logger.GetGlobalLogger())
	srv.ApplyMiddleware(ctx)
	if providers.Meter != nil {
		m, err := observability.NewMetrics(providers.MeterFor(observability.TracerName))
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		srv.Use(middleware.Metrics(m))
	}

	api, err := newAPI(&cfg.Auth)
	if err != nil {
		return err
	}
	api.register(srv)
	if cfg.Auth.Enabled {
		log.Info("Authentication enabled", map[string]interface{}{
			"method":     string(cfg.Auth.JWT.Method),
			"jwt_secret": util.MaskSecret(cfg.Auth.JWT.Secret, 4),
		})
	}

	if err := srv.Start(ctx); err != nil {
		return err
	}
	log.Info("Service started", map[string]interface{}{
		"addr":        srv.Addr(),
		"environment": cfg.Environment,
	})

	<-ctx.Done()
	log.Info("Shutdown signal received")
	return srv.Stop(context.Background())
}
