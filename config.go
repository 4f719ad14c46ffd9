// Copyright 2026 The Seqmux Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package seqmux

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so configuration files can use
// human-readable strings such as "30s" or "1h30m". An empty string
// unmarshals to zero.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config is the YAML-loadable router configuration. It covers the
// ambient concerns a deployment wants to set without code: logging and
// server transport. Route registration stays in code.
type Config struct {
	Logging struct {
		// Level is one of debug, info, warn, error. Empty disables
		// logging.
		Level string `yaml:"level"`
	} `yaml:"logging"`

	Server struct {
		H2C          bool     `yaml:"h2c"`
		ReadTimeout  Duration `yaml:"read_timeout"`
		WriteTimeout Duration `yaml:"write_timeout"`
		IdleTimeout  Duration `yaml:"idle_timeout"`
	} `yaml:"server"`
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML configuration bytes.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Logging.Level != "" {
		if _, err := parseLogLevel(cfg.Logging.Level); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// Options converts the configuration into router options, suitable for
// passing to New alongside code-level options.
func (c *Config) Options() []Option {
	var opts []Option
	if c.Logging.Level != "" {
		level, _ := parseLogLevel(c.Logging.Level)
		opts = append(opts, WithLogger(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))))
	}
	if c.Server.H2C {
		opts = append(opts, WithH2C())
	}
	if c.Server.ReadTimeout != 0 || c.Server.WriteTimeout != 0 || c.Server.IdleTimeout != 0 {
		opts = append(opts, WithServerTimeouts(
			c.Server.ReadTimeout.Duration(),
			c.Server.WriteTimeout.Duration(),
			c.Server.IdleTimeout.Duration(),
		))
	}
	return opts
}

func parseLogLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
