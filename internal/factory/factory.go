// Package factory wires the application: registry backend, account store
// backend, clock and services.
package factory

import (
	"errors"
	"io"
	"log/slog"

	"bd2switch/internal/dependencies/clock"
	"bd2switch/internal/registry"
	"bd2switch/internal/services/accountinfo"
	"bd2switch/internal/services/switcher"
	"bd2switch/internal/store"
	"bd2switch/internal/store/jsonfile"
	storemem "bd2switch/internal/store/memory"
	redisstore "bd2switch/internal/store/redis"
)

// Store type constants
const (
	StoreTypeFile   = "file"
	StoreTypeMemory = "memory"
	StoreTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Registry registry.Registry
	Store    store.Store

	// External dependencies
	Clock clock.Clock

	// Services
	InfoService *accountinfo.Service
	Switcher    *switcher.Controller

	// StoreWarning carries a non-fatal problem from loading the store
	// (a corrupted file that fell back to an empty store). The caller
	// decides how to surface it.
	StoreWarning error
}

// Config holds configuration for the application factory
type Config struct {
	// DataPath is the accounts.json path (required for the file store)
	DataPath string
	// StoreType selects the store backend ("file", "memory" or "redis")
	// If empty, defaults to "file".
	StoreType string
	// RedisConfig holds Redis connection settings (required if StoreType is "redis")
	RedisConfig *redisstore.Config
	// Registry overrides the platform registry backend (tests, non-Windows use)
	Registry registry.Registry
	// RegistryKeyPath overrides the game's registry key path (optional)
	RegistryKeyPath string
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used.
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create the account store based on type
	var (
		st           store.Store
		storeWarning error
	)
	storeType := cfg.StoreType
	if storeType == "" {
		storeType = StoreTypeFile
	}

	switch storeType {
	case StoreTypeFile:
		if cfg.DataPath == "" {
			return nil, errors.New("DataPath required when StoreType is file")
		}
		fileStore, err := jsonfile.Open(cfg.DataPath)
		if err != nil {
			// A corrupted file degrades to an empty store; anything the
			// caller should know about travels as a warning.
			storeWarning = err
		}
		st = fileStore
	case StoreTypeMemory:
		st = storemem.New()
	case StoreTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StoreType is redis")
		}
		redisStore, err := redisstore.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		st = redisStore
	default:
		return nil, errors.New("invalid StoreType: must be 'file', 'memory' or 'redis'")
	}

	// Registry backend: explicit override, else the platform default
	reg := cfg.Registry
	if reg == nil {
		reg = platformRegistry(cfg.RegistryKeyPath, logger)
	}

	clk := clock.New()
	infoService := accountinfo.New(clk)
	controller := switcher.NewController(reg, st, infoService, logger)

	return &App{
		Registry:     reg,
		Store:        st,
		Clock:        clk,
		InfoService:  infoService,
		Switcher:     controller,
		StoreWarning: storeWarning,
	}, nil
}
