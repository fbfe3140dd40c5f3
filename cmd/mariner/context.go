package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/JaimeStill/mariner/internal/api"
	"github.com/JaimeStill/mariner/internal/config"
	"github.com/JaimeStill/mariner/internal/infrastructure"
)

type commandContext struct {
	configDir *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configDir *string) *commandContext {
	return &commandContext{configDir: configDir}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		dir := "."
		if c.configDir != nil && strings.TrimSpace(*c.configDir) != "" {
			dir = strings.TrimSpace(*c.configDir)
		}
		c.config, c.configErr = config.LoadFrom(dir)
		if c.configErr != nil {
			c.configErr = fmt.Errorf("load config: %w", c.configErr)
		}
	})
	return c.config, c.configErr
}

// offline runs fn against started infrastructure and the API domain systems
// without an HTTP listener. Logs below warn go to stderr only.
func (c *commandContext) offline(stderr io.Writer, fn func(*infrastructure.Infrastructure, *api.Domain) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	if stderr == nil {
		stderr = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	infra, err := infrastructure.NewWithLogger(cfg, logger)
	if err != nil {
		return err
	}
	if err := infra.Start(); err != nil {
		return err
	}
	defer infra.Lifecycle.Shutdown(10 * time.Second)

	if err := infra.Lifecycle.WaitForStartup(); err != nil {
		return fmt.Errorf("startup: %w", err)
	}

	return fn(infra, api.NewDomain(api.NewRuntime(cfg, infra)))
}
