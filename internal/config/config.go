// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package config loads istr command settings from flags, ISTR_* environment
// variables and an optional config file.
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/alex60217101990/istr/v1/intern/arena"
)

// Keys shared by flags, environment variables and config files.
const (
	KeyConfig    = "config"
	KeyLogLevel  = "log-level"
	KeyLogFormat = "log-format"
	KeyWidth     = "width"
	KeyMode      = "mode"
	KeyChunkSize = "chunk-size"
	KeySeed      = "seed"
	KeyFormat    = "format"
)

// EnvPrefix prefixes environment variables, e.g. ISTR_LOG_LEVEL.
const EnvPrefix = "ISTR"

// Identifier widths accepted by the width setting.
const (
	Width16     = "16"
	Width32     = "32"
	Width64     = "64"
	WidthNative = "native"
)

// Tokenizer modes accepted by the mode setting.
const (
	ModeWords = "words"
	ModeLines = "lines"
)

// Config holds the settings of one istr invocation.
type Config struct {
	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`
	Width     string `mapstructure:"width"`
	Mode      string `mapstructure:"mode"`
	ChunkSize int    `mapstructure:"chunk-size"`
	Seed      uint64 `mapstructure:"seed"`
	Format    string `mapstructure:"format"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyWidth, WidthNative)
	v.SetDefault(KeyMode, ModeWords)
	v.SetDefault(KeyChunkSize, arena.DefaultChunkSize)
	v.SetDefault(KeySeed, 0)
	v.SetDefault(KeyFormat, "json")
}

// Load reads the config file named by the config key, if any, then
// environment variables, and returns the validated result.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if !slices.Contains([]string{Width16, Width32, Width64, WidthNative}, c.Width) {
		return fmt.Errorf("invalid width %q: expected 16, 32, 64 or native", c.Width)
	}
	if c.Mode != ModeWords && c.Mode != ModeLines {
		return fmt.Errorf("invalid mode %q: expected words or lines", c.Mode)
	}
	if c.ChunkSize < arena.MinChunkSize {
		return fmt.Errorf("invalid chunk size %d: minimum is %d", c.ChunkSize, arena.MinChunkSize)
	}
	return nil
}
