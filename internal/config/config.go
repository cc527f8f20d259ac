// Package config provides configuration management for gridkey with
// Viper integration. Settings load from a config file (TOML, YAML, or
// JSON), with GRIDKEY_ environment variables taking precedence, and
// can be watched for live reload.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/dshills/gridkey/internal/modal"
	"github.com/dshills/gridkey/internal/theme"
)

// Config is the complete configuration for gridkey.
type Config struct {
	Timing  TimingConfig  `mapstructure:"timing"`
	Theme   ThemeConfig   `mapstructure:"theme"`
	Icons   IconsConfig   `mapstructure:"icons"`
	Grid    GridConfig    `mapstructure:"grid"`
	Logging LoggingConfig `mapstructure:"logging"`

	// Toggle is the global chord that opens the overlay, in parse
	// form ("ctrl+space").
	Toggle string `mapstructure:"toggle"`

	// Chooser is the chord that opens the searchable fallback while
	// the overlay shows. Empty disables it.
	Chooser string `mapstructure:"chooser"`
}

// TimingConfig holds the modal controller's delays.
type TimingConfig struct {
	ShowDelay       time.Duration `mapstructure:"show_delay"`
	AnimationDelay  time.Duration `mapstructure:"animation_delay"`
	Fade            time.Duration `mapstructure:"fade"`
	InvalidKeyAlert bool          `mapstructure:"invalid_key_alert"`
}

// ThemeConfig holds optional grid geometry overrides.
type ThemeConfig struct {
	CellWidth  int           `mapstructure:"cell_width"`
	CellHeight int           `mapstructure:"cell_height"`
	Spacing    int           `mapstructure:"spacing"`
	Padding    int           `mapstructure:"padding"`
	FadeIn     time.Duration `mapstructure:"fade_in"`
	FadeOut    time.Duration `mapstructure:"fade_out"`
	DimFactor  float64       `mapstructure:"dim_factor"`
}

// IconsConfig holds icon cache tuning.
type IconsConfig struct {
	CacheCapacity int `mapstructure:"cache_capacity"`
	EvictBatch    int `mapstructure:"evict_batch"`
}

// GridConfig points at the grid definition file.
type GridConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Modal converts the timing section into the controller's config.
func (c *Config) Modal() modal.Config {
	return modal.Config{
		ShowDelay:       c.Timing.ShowDelay,
		AnimationDelay:  c.Timing.AnimationDelay,
		Fade:            c.Timing.Fade,
		InvalidKeyAlert: c.Timing.InvalidKeyAlert,
	}
}

// ThemeOverride converts the theme section into an override the
// default theme can absorb.
func (c *Config) ThemeOverride() theme.Override {
	return theme.Override{
		CellWidth:  c.Theme.CellWidth,
		CellHeight: c.Theme.CellHeight,
		Spacing:    c.Theme.Spacing,
		Padding:    c.Theme.Padding,
		FadeIn:     c.Theme.FadeIn,
		FadeOut:    c.Theme.FadeOut,
		DimFactor:  c.Theme.DimFactor,
	}
}

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	viper     *viper.Viper
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
	watching  bool
	log       zerolog.Logger
}

// NewManager creates a configuration manager. path optionally pins an
// explicit config file; when empty the standard locations are
// searched (XDG config dir, then the working directory).
func NewManager(path string, log zerolog.Logger) *Manager {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "gridkey"))
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("GRIDKEY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Manager{
		viper: v,
		log:   log,
	}
}

// Load loads the configuration from file and environment. A missing
// config file is not an error; defaults apply.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("read config file: %w", err)
		}
		m.log.Debug().Msg("no config file found, using defaults")
	}

	cfg := &Config{}
	if err := m.viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	m.sanitize(cfg)
	m.config = cfg
	return nil
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cp := *m.config
	return &cp
}

// Watch starts watching the config file and reloads on change.
// Callbacks registered with OnConfigChange run after each successful
// reload.
func (m *Manager) Watch() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return
	}

	m.viper.OnConfigChange(func(_ fsnotify.Event) {
		if err := m.reload(); err != nil {
			m.log.Warn().Err(err).Msg("config reload failed, keeping previous settings")
			return
		}

		m.mu.RLock()
		cfg := m.config
		callbacks := make([]func(*Config), len(m.callbacks))
		copy(callbacks, m.callbacks)
		m.mu.RUnlock()

		for _, cb := range callbacks {
			cb(cfg)
		}
	})
	m.viper.WatchConfig()
	m.watching = true
}

// OnConfigChange registers a callback invoked after each successful
// reload.
func (m *Manager) OnConfigChange(cb func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, cb)
}

func (m *Manager) reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg := &Config{}
	if err := m.viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	m.sanitize(cfg)
	m.config = cfg
	return nil
}

func (m *Manager) setDefaults() {
	def := modal.DefaultConfig()
	m.viper.SetDefault("timing.show_delay", def.ShowDelay)
	m.viper.SetDefault("timing.animation_delay", def.AnimationDelay)
	m.viper.SetDefault("timing.fade", def.Fade)
	m.viper.SetDefault("timing.invalid_key_alert", false)
	m.viper.SetDefault("icons.cache_capacity", 100)
	m.viper.SetDefault("icons.evict_batch", 20)
	m.viper.SetDefault("logging.level", "info")
	m.viper.SetDefault("toggle", "ctrl+space")
	m.viper.SetDefault("chooser", "ctrl+f")
}

// sanitize replaces invalid values with defaults, warning each time.
// Unrecognized keys are already ignored by the unmarshal.
func (m *Manager) sanitize(cfg *Config) {
	def := modal.DefaultConfig()
	if cfg.Timing.ShowDelay < 0 {
		m.log.Warn().Dur("show_delay", cfg.Timing.ShowDelay).Msg("negative show delay, using default")
		cfg.Timing.ShowDelay = def.ShowDelay
	}
	if cfg.Timing.AnimationDelay < 0 {
		m.log.Warn().Dur("animation_delay", cfg.Timing.AnimationDelay).Msg("negative animation delay, using default")
		cfg.Timing.AnimationDelay = def.AnimationDelay
	}
	if cfg.Timing.Fade < 0 {
		m.log.Warn().Dur("fade", cfg.Timing.Fade).Msg("negative fade, using default")
		cfg.Timing.Fade = def.Fade
	}
	if cfg.Icons.CacheCapacity <= 0 {
		m.log.Warn().Int("cache_capacity", cfg.Icons.CacheCapacity).Msg("invalid cache capacity, using default")
		cfg.Icons.CacheCapacity = 100
	}
	if cfg.Theme.DimFactor < 0 || cfg.Theme.DimFactor > 1 {
		m.log.Warn().Float64("dim_factor", cfg.Theme.DimFactor).Msg("dim factor out of range, ignoring")
		cfg.Theme.DimFactor = 0
	}
}
