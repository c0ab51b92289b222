package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Built-in defaults. They match a Raspberry Pi driving HDMI through tvservice.
const (
	DefaultTickPeriod   = 2 * time.Second
	DefaultIdleTimeout  = 2 * time.Minute
	DefaultConfigPath   = "/etc/displayidle/config.yaml"
	DefaultStatusCmd    = "/opt/vc/bin/tvservice --status"
	DefaultOnCmd        = "/opt/vc/bin/tvservice --preferred; fbset -depth 8; fbset -depth 16; xrefresh"
	DefaultOffCmd       = "/opt/vc/bin/tvservice --off"
	DefaultOffSignature = "state 0x120002 [TV is off]"
	DefaultCmdTimeout   = 30 * time.Second
)

// Keyboard-class first, then pointer-class.
var DefaultDevices = []string{"/dev/input/event0", "/dev/input/mouse0"}

// Processes that keep the display awake while running.
var DefaultBusyProcesses = []string{"omxplayer"}

// systemPath is read when no path is given explicitly.
var systemPath = DefaultConfigPath

type Config struct {
	TickPeriod    time.Duration `yaml:"tick_period"`
	IdleTimeout   time.Duration `yaml:"idle_timeout"`
	Devices       []string      `yaml:"devices"`
	BusyProcesses []string      `yaml:"busy_processes"`
	Display       Display       `yaml:"display"`
	Log           Log           `yaml:"log"`

	// Path is the absolute path of the file that was read, empty when the
	// built-in defaults were used.
	Path string `yaml:"-"`
}

type Display struct {
	StatusCmd      string        `yaml:"status_cmd"`
	OnCmd          string        `yaml:"on_cmd"`
	OffCmd         string        `yaml:"off_cmd"`
	OffSignature   string        `yaml:"off_signature"`
	CommandTimeout time.Duration `yaml:"command_timeout"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		TickPeriod:    DefaultTickPeriod,
		IdleTimeout:   DefaultIdleTimeout,
		Devices:       append([]string(nil), DefaultDevices...),
		BusyProcesses: append([]string(nil), DefaultBusyProcesses...),
		Display: Display{
			StatusCmd:      DefaultStatusCmd,
			OnCmd:          DefaultOnCmd,
			OffCmd:         DefaultOffCmd,
			OffSignature:   DefaultOffSignature,
			CommandTimeout: DefaultCmdTimeout,
		},
		Log: Log{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load resolves configuration from defaults < config file < env.
// The file is optional; an explicit path that does not exist is an error.
func Load(flagPath string) (*Config, error) {
	cfg := Default()

	// 1. Config file over defaults
	path, explicit := systemPath, false
	if v := os.Getenv("DISPLAYIDLE_CONFIG"); v != "" {
		path, explicit = v, true
	}
	if flagPath != "" {
		path, explicit = flagPath, true
	}

	path, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		cfg.Path = path
		cfg.resolveFrom(filepath.Dir(path))
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// No file, built-in defaults apply.
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	// 2. Environment variables override the file
	if v := os.Getenv("DISPLAYIDLE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("DISPLAYIDLE_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("DISPLAYIDLE_LOG_FILE"); v != "" {
		abs, err := filepath.Abs(v)
		if err != nil {
			return nil, fmt.Errorf("resolve log file: %w", err)
		}
		cfg.Log.File = abs
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveFrom anchors relative paths in the file to the file's directory, so
// they mean the same thing whatever the working directory is.
func (c *Config) resolveFrom(dir string) {
	for i, d := range c.Devices {
		if d != "" && !filepath.IsAbs(d) {
			c.Devices[i] = filepath.Join(dir, d)
		}
	}
	if c.Log.File != "" && !filepath.IsAbs(c.Log.File) {
		c.Log.File = filepath.Join(dir, c.Log.File)
	}
}

// Validate checks that the configuration can drive the daemon.
func (c *Config) Validate() error {
	if c.TickPeriod <= 0 {
		return fmt.Errorf("tick_period must be positive, got %s", c.TickPeriod)
	}
	if c.IdleTimeout < c.TickPeriod {
		return fmt.Errorf("idle_timeout (%s) must be at least tick_period (%s)", c.IdleTimeout, c.TickPeriod)
	}
	if len(c.Devices) == 0 {
		return errors.New("at least one input device is required")
	}
	if c.Display.StatusCmd == "" || c.Display.OnCmd == "" || c.Display.OffCmd == "" {
		return errors.New("display status_cmd, on_cmd and off_cmd are required")
	}
	if c.Display.OffSignature == "" {
		return errors.New("display off_signature is required")
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}
