// hot-reload.go: dynamic pool configuration with Argus integration
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package memotab

import (
	"sync"
	"time"

	"github.com/agilira/argus"
)

// HotConfig watches a configuration file and reconfigures a Pool when it
// changes. Tables already handed out keep the settings they were built with.
type HotConfig struct {
	pool    *Pool
	watcher *argus.Watcher
	logger  Logger
	mu      sync.RWMutex
	config  Config

	// OnReload is called after configuration is successfully reloaded.
	// This callback is optional and must be fast and non-blocking.
	OnReload func(oldConfig, newConfig Config)
}

// HotConfigOptions configures hot reload behavior.
type HotConfigOptions struct {
	// ConfigPath is the path to the configuration file to watch.
	// Supports JSON, YAML, TOML, HCL, INI, Properties formats.
	ConfigPath string

	// PollInterval is how often to check for configuration changes.
	// Default: 1 second. Minimum: 100ms.
	PollInterval time.Duration

	// OnReload is called after configuration is successfully reloaded.
	OnReload func(oldConfig, newConfig Config)

	// Logger for hot reload operations.
	// If nil, uses the pool's logger.
	Logger Logger
}

// NewHotConfig creates a hot-reloadable configuration for a pool.
//
// Example configuration file (YAML):
//
//	memo:
//	  initial_capacity: 64
//	  max_capacity: 1048576
//	  max_retained_capacity: 65536
//	  max_idle: 8
//	  shrink_on_clear: true
//
// Keys that are missing or out of range keep the pool's current value.
// Logger, TimeProvider and MetricsCollector are never read from the file.
func NewHotConfig(pool *Pool, opts HotConfigOptions) (*HotConfig, error) {
	if opts.ConfigPath == "" {
		return nil, NewErrMissingConfigPath()
	}

	if opts.PollInterval == 0 {
		opts.PollInterval = 1 * time.Second
	} else if opts.PollInterval < 100*time.Millisecond {
		opts.PollInterval = 100 * time.Millisecond
	}

	current := pool.Config()
	if opts.Logger == nil {
		opts.Logger = current.Logger
	}

	hc := &HotConfig{
		pool:     pool,
		logger:   opts.Logger,
		OnReload: opts.OnReload,
		config:   current,
	}

	argusConfig := argus.Config{
		PollInterval: opts.PollInterval,
	}

	watcher, err := argus.UniversalConfigWatcherWithConfig(opts.ConfigPath, hc.handleConfigChange, argusConfig)
	if err != nil {
		return nil, err
	}
	hc.watcher = watcher

	return hc, nil
}

// Start begins watching the configuration file for changes.
func (hc *HotConfig) Start() error {
	if hc.watcher.IsRunning() {
		return nil
	}
	return hc.watcher.Start()
}

// Stop stops watching the configuration file.
func (hc *HotConfig) Stop() error {
	return hc.watcher.Stop()
}

// GetConfig returns the last applied configuration (thread-safe).
func (hc *HotConfig) GetConfig() Config {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.config
}

// handleConfigChange is called by Argus when configuration changes.
func (hc *HotConfig) handleConfigChange(configData map[string]interface{}) {
	hc.mu.Lock()
	oldConfig := hc.config
	newConfig := parseConfig(oldConfig, configData)
	if err := hc.pool.SetConfig(newConfig); err != nil {
		hc.mu.Unlock()
		hc.logger.Warn("memo config rejected", "error", err)
		return
	}
	_ = newConfig.Validate()
	hc.config = newConfig
	hc.mu.Unlock()

	if hc.OnReload != nil {
		hc.OnReload(oldConfig, newConfig)
	}
}

// parsePositiveInt extracts a positive integer from interface{} value.
// Supports both int and float64 types (YAML/JSON may vary).
func parsePositiveInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		if v > 0 {
			return v, true
		}
	case int64:
		if v > 0 && v <= DefaultMaxCapacity {
			return int(v), true
		}
	case float64:
		if v > 0 && v <= DefaultMaxCapacity {
			return int(v), true
		}
	}
	return 0, false
}

// parseBool extracts a bool, accepting the string forms some formats produce.
func parseBool(value interface{}) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		switch v {
		case "true", "yes", "on", "1":
			return true, true
		case "false", "no", "off", "0":
			return false, true
		}
	}
	return false, false
}

// parseConfig overlays the memo section of Argus config data on base.
func parseConfig(base Config, data map[string]interface{}) Config {
	config := base

	section, ok := data["memo"].(map[string]interface{})
	if !ok {
		// Try if the whole data IS the memo section
		if _, has := data["initial_capacity"]; has {
			section = data
		} else if _, has := data["max_capacity"]; has {
			section = data
		} else {
			return config
		}
	}

	if v, ok := parsePositiveInt(section["initial_capacity"]); ok {
		config.InitialCapacity = v
	}
	if v, ok := parsePositiveInt(section["max_capacity"]); ok {
		config.MaxCapacity = v
	}
	if v, ok := parsePositiveInt(section["max_retained_capacity"]); ok {
		config.MaxRetainedCapacity = v
	}
	if v, ok := parsePositiveInt(section["max_idle"]); ok {
		config.MaxIdle = v
	}
	if v, ok := parseBool(section["shrink_on_clear"]); ok {
		config.ShrinkOnClear = v
	}

	return config
}
