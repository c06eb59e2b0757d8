package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"faceoff/internal/config"
	"faceoff/internal/library"
	"faceoff/internal/logging"
	"faceoff/internal/ranking"
)

type commandContext struct {
	configFlag  *string
	libraryFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	providerOnce sync.Once
	provider     *library.FileProvider
	providerErr  error
}

func newCommandContext(configFlag, libraryFlag *string) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		libraryFlag: libraryFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// ensureProvider loads the library export once per invocation. The export is
// read-only input; nothing here writes it back.
func (c *commandContext) ensureProvider() (*library.FileProvider, error) {
	c.providerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.providerErr = err
			return
		}
		path := cfg.Paths.LibraryExport
		if c.libraryFlag != nil && strings.TrimSpace(*c.libraryFlag) != "" {
			expanded, err := config.ExpandPath(*c.libraryFlag)
			if err != nil {
				c.providerErr = err
				return
			}
			path = expanded
		}
		provider, err := library.LoadFileProvider(path)
		if err != nil {
			c.providerErr = fmt.Errorf("load library export %s: %w", path, err)
			return
		}
		c.provider = provider
	})
	return c.provider, c.providerErr
}

// withStore opens the session store, runs fn, and closes the store afterward.
// Open fails fast when another faceoff process holds the data directory lock.
func (c *commandContext) withStore(fn func(*ranking.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}
	store, err := ranking.Open(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}
