// SPDX-License-Identifier: MIT

// Package config loads algoviz settings from algoviz.toml and ALGOVIZ_*
// environment variables.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/katalvlaran/algoviz/anim"
)

// FileName is the configuration file searched for when no path is given.
const FileName = "algoviz.toml"

// EnvPrefix prefixes environment overrides: ALGOVIZ_SERVER_ADDR and so on.
const EnvPrefix = "ALGOVIZ"

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("config: invalid value")

// Config is the full configuration tree.
type Config struct {
	Server    Server    `mapstructure:"server"`
	Animation Animation `mapstructure:"animation"`
	Log       Log       `mapstructure:"log"`
}

// Server configures the HTTP and websocket surface.
type Server struct {
	Addr string `mapstructure:"addr"`
	// FrameRate caps frames per second per topic; zero or less disables
	// throttling.
	FrameRate float64 `mapstructure:"frame_rate"`
}

// Animation configures the shared pacer.
type Animation struct {
	Speed     float64       `mapstructure:"speed"`
	StepDelay time.Duration `mapstructure:"step_delay"`
}

// Log configures the process logger.
type Log struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server:    Server{Addr: "127.0.0.1:8080", FrameRate: 60},
		Animation: Animation{Speed: anim.DefaultSpeed, StepDelay: 0},
		Log:       Log{Level: "info"},
	}
}

// SetDefaults registers Default on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.frame_rate", d.Server.FrameRate)
	v.SetDefault("animation.speed", d.Animation.Speed)
	v.SetDefault("animation.step_delay", d.Animation.StepDelay)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.json", d.Log.JSON)
}

// New returns a viper instance with defaults and environment binding. A
// non-empty path must exist; otherwise algoviz.toml is looked up in the
// working directory and the user config directory.
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigType("toml")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read %s", path)
		}
		return v, nil
	}

	v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "algoviz"))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config")
		}
	}
	return v, nil
}

// Load reads and validates the configuration. See New for path.
func Load(path string) (*Config, error) {
	v, err := New(path)
	if err != nil {
		return nil, err
	}
	return FromViper(v)
}

// FromViper decodes and validates v.
func FromViper(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects values no component can honor.
func (c *Config) Validate() error {
	switch {
	case c.Server.Addr == "":
		return errors.WithHint(errors.Wrap(ErrInvalid, "server.addr is empty"),
			`set server.addr, for example "127.0.0.1:8080"`)
	case !(c.Animation.Speed > 0):
		return errors.WithHintf(errors.Wrapf(ErrInvalid, "animation.speed %v", c.Animation.Speed),
			"speed is a multiplier between %v and %v", anim.MinSpeed, anim.MaxSpeed)
	case c.Animation.StepDelay < 0:
		return errors.Wrapf(ErrInvalid, "animation.step_delay %s is negative", c.Animation.StepDelay)
	}
	return nil
}

// file mirrors Config for writing; durations are kept as strings so the
// file reads "700ms" rather than nanoseconds.
type file struct {
	Server struct {
		Addr      string  `toml:"addr"`
		FrameRate float64 `toml:"frame_rate"`
	} `toml:"server"`
	Animation struct {
		Speed     float64 `toml:"speed"`
		StepDelay string  `toml:"step_delay,omitempty"`
	} `toml:"animation"`
	Log struct {
		Level string `toml:"level"`
		JSON  bool   `toml:"json"`
	} `toml:"log"`
}

// Write encodes c as TOML.
func Write(w io.Writer, c Config) error {
	var f file
	f.Server.Addr = c.Server.Addr
	f.Server.FrameRate = c.Server.FrameRate
	f.Animation.Speed = c.Animation.Speed
	if c.Animation.StepDelay > 0 {
		f.Animation.StepDelay = c.Animation.StepDelay.String()
	}
	f.Log.Level = c.Log.Level
	f.Log.JSON = c.Log.JSON
	return errors.Wrap(toml.NewEncoder(w).Encode(f), "encode config")
}

// WriteFile writes c to path, refusing to replace an existing file unless
// force is set.
func WriteFile(path string, c Config, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	fh, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return errors.WithHint(errors.Wrapf(err, "write %s", path), "pass --force to overwrite")
		}
		return errors.Wrapf(err, "write %s", path)
	}
	if err := Write(fh, c); err != nil {
		_ = fh.Close()
		return err
	}
	return errors.Wrapf(fh.Close(), "write %s", path)
}
