// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/NVIDIA/hostmetrics/pkg/defaults"
	"github.com/NVIDIA/hostmetrics/pkg/errors"
	"github.com/NVIDIA/hostmetrics/pkg/hostfs"
	"github.com/NVIDIA/hostmetrics/pkg/serializer"
)

const (
	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "HOSTMETRICS"

	// DefaultFileName is the config file searched in $HOME and the working directory.
	DefaultFileName = ".hostmetrics"

	// DefaultEnvFile is loaded when present and no env file is named.
	DefaultEnvFile = ".env"
)

// Configuration keys.
const (
	KeyProcRoot     = "proc-root"
	KeySysRoot      = "sys-root"
	KeyEtcRoot      = "etc-root"
	KeyRunRoot      = "run-root"
	KeyVarRoot      = "var-root"
	KeyHostRoot     = "host-root"
	KeyPhysicalOnly = "physical-only"
	KeyFormat       = "format"
	KeyInterval     = "interval"
	KeyLogLevel     = "log-level"
)

// Config is the resolved hostmetrics configuration.
type Config struct {
	ProcRoot     string        `json:"procRoot" yaml:"procRoot"`
	SysRoot      string        `json:"sysRoot" yaml:"sysRoot"`
	EtcRoot      string        `json:"etcRoot" yaml:"etcRoot"`
	RunRoot      string        `json:"runRoot" yaml:"runRoot"`
	VarRoot      string        `json:"varRoot" yaml:"varRoot"`
	HostRoot     string        `json:"hostRoot" yaml:"hostRoot"`
	PhysicalOnly bool          `json:"physicalOnly" yaml:"physicalOnly"`
	Format       string        `json:"format" yaml:"format"`
	Interval     time.Duration `json:"interval" yaml:"interval"`
	LogLevel     string        `json:"logLevel" yaml:"logLevel"`

	// File is the config file that was read, empty when none was found.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

// FS returns the host filesystem layout described by the configured roots.
func (c *Config) FS() hostfs.FS {
	return hostfs.FS{
		Proc: c.ProcRoot,
		Sys:  c.SysRoot,
		Etc:  c.EtcRoot,
		Run:  c.RunRoot,
		Var:  c.VarRoot,
		Root: c.HostRoot,
	}.WithDefaults()
}

// Validate checks the values that cannot be corrected silently.
func (c *Config) Validate() error {
	if serializer.Format(c.Format).IsUnknown() {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unsupported format %q", c.Format),
			map[string]any{"key": KeyFormat, "supported": serializer.SupportedFormats()})
	}
	if c.Interval < defaults.WatchMinInterval {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("interval %s is below the minimum of %s", c.Interval, defaults.WatchMinInterval),
			map[string]any{"key": KeyInterval})
	}
	return nil
}

// Option configures Load.
type Option func(*loader)

type loader struct {
	v         *viper.Viper
	file      string
	envFile   string
	overrides map[string]any
}

// WithFile reads the named config file. A file named this way must exist.
func WithFile(path string) Option {
	return func(l *loader) {
		l.file = path
	}
}

// WithEnvFile loads environment variables from path before reading the
// environment. A file named this way must exist.
func WithEnvFile(path string) Option {
	return func(l *loader) {
		l.envFile = path
	}
}

// WithOverride sets key to value with the highest precedence.
func WithOverride(key string, value any) Option {
	return func(l *loader) {
		l.overrides[key] = value
	}
}

// WithViper uses v instead of a fresh viper instance.
func WithViper(v *viper.Viper) Option {
	return func(l *loader) {
		if v != nil {
			l.v = v
		}
	}
}

// Load resolves the configuration.
func Load(opts ...Option) (*Config, error) {
	l := &loader{
		v:         viper.New(),
		overrides: make(map[string]any),
	}
	for _, opt := range opts {
		opt(l)
	}

	if err := l.loadEnvFile(); err != nil {
		return nil, err
	}

	v := l.v
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := l.readConfigFile(); err != nil {
		return nil, err
	}

	for key, value := range l.overrides {
		v.Set(key, value)
	}

	cfg := &Config{
		ProcRoot:     v.GetString(KeyProcRoot),
		SysRoot:      v.GetString(KeySysRoot),
		EtcRoot:      v.GetString(KeyEtcRoot),
		RunRoot:      v.GetString(KeyRunRoot),
		VarRoot:      v.GetString(KeyVarRoot),
		HostRoot:     v.GetString(KeyHostRoot),
		PhysicalOnly: v.GetBool(KeyPhysicalOnly),
		Format:       v.GetString(KeyFormat),
		Interval:     v.GetDuration(KeyInterval),
		LogLevel:     v.GetString(KeyLogLevel),
		File:         v.ConfigFileUsed(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := hostfs.Default()
	v.SetDefault(KeyProcRoot, d.Proc)
	v.SetDefault(KeySysRoot, d.Sys)
	v.SetDefault(KeyEtcRoot, d.Etc)
	v.SetDefault(KeyRunRoot, d.Run)
	v.SetDefault(KeyVarRoot, d.Var)
	v.SetDefault(KeyHostRoot, d.Root)
	v.SetDefault(KeyPhysicalOnly, false)
	v.SetDefault(KeyFormat, string(serializer.FormatYAML))
	v.SetDefault(KeyInterval, defaults.WatchInterval)
	v.SetDefault(KeyLogLevel, "info")
}

func (l *loader) loadEnvFile() error {
	if l.envFile != "" {
		if err := godotenv.Load(l.envFile); err != nil {
			return errors.IO(l.envFile, err)
		}
		return nil
	}

	if err := godotenv.Load(DefaultEnvFile); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		slog.Warn("ignoring unreadable env file", "path", DefaultEnvFile, "error", err)
	}
	return nil
}

func (l *loader) readConfigFile() error {
	v := l.v
	if l.file != "" {
		v.SetConfigFile(l.file)
		if err := v.ReadInConfig(); err != nil {
			return errors.WrapWithContext(errors.ErrCodeInvalidRequest,
				"failed to read config file", err, map[string]any{"path": l.file})
		}
		return nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")
	v.SetConfigType("yaml")
	v.SetConfigName(DefaultFileName)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if stderrors.As(err, &notFound) {
			return nil
		}
		return errors.Wrap(errors.ErrCodeInvalidRequest, "failed to parse config file", err)
	}
	slog.Debug("config file loaded", "path", v.ConfigFileUsed())
	return nil
}
