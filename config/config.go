// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

// Package config loads the lifo tool configuration from yaml, toml or json files.
package config

import (
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"

	"trpc.group/trpc-go/lifo/errs"
	"trpc.group/trpc-go/lifo/log"
)

// DefaultPath is the config file used when no path is given.
const DefaultPath = "./lifo.yaml"

// Element kinds the stress harness can push.
const (
	KindInt    = "int"
	KindString = "string"
)

// Config is the configuration of the lifo tools.
type Config struct {
	Stress StressConfig `mapstructure:"stress"`
	Log    log.Config   `mapstructure:"log"`
}

// StressConfig configures one stress run.
type StressConfig struct {
	// Workers is the size of the goroutine pool, <=0 means runtime.NumCPU().
	Workers int `mapstructure:"workers"`
	// Rounds is the number of tasks submitted per run, each owning its own stack.
	Rounds int `mapstructure:"rounds"`
	// Depth is the number of elements pushed by every task.
	Depth int `mapstructure:"depth"`
	// Kind is the element type, int or string.
	Kind string `mapstructure:"kind"`
	// Timeout bounds the whole run, 0 means no deadline.
	Timeout time.Duration `mapstructure:"timeout"`
}

// Default returns the configuration used for keys absent from a file.
func Default() *Config {
	return &Config{
		Stress: StressConfig{
			Rounds: 4,
			Depth:  1000000,
			Kind:   KindInt,
		},
	}
}

// Load reads the config file at path. The format is chosen by its extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrapf(err, errs.RetConfigIO, "read config %s", path)
	}
	return Parse(data, FormatOf(path))
}

// Parse decodes data of the given format on top of Default and validates the result.
// ${VAR} in data is replaced by the value of the environment variable VAR first.
func Parse(data []byte, format string) (*Config, error) {
	u := GetUnmarshaler(format)
	if u == nil {
		return nil, errs.Newf(errs.RetConfigIO, "config format %s not supported", format)
	}
	raw := make(map[string]interface{})
	if err := u.Unmarshal(expandEnv(data), &raw); err != nil {
		return nil, errs.Wrapf(err, errs.RetConfigIO, "unmarshal %s config", format)
	}

	cfg := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return nil, errs.Wrap(err, errs.RetUnknown, "new config decoder")
	}
	if err := dec.Decode(normalize(raw)); err != nil {
		return nil, errs.Wrap(err, errs.RetConfigInvalid, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every value is in range.
func (c *Config) Validate() error {
	s := c.Stress
	if s.Workers < 0 {
		return errs.Newf(errs.RetConfigInvalid, "stress.workers must not be negative, got %d", s.Workers)
	}
	if s.Rounds <= 0 {
		return errs.Newf(errs.RetConfigInvalid, "stress.rounds must be positive, got %d", s.Rounds)
	}
	if s.Depth < 0 {
		return errs.Newf(errs.RetConfigInvalid, "stress.depth must not be negative, got %d", s.Depth)
	}
	if s.Kind != KindInt && s.Kind != KindString {
		return errs.Newf(errs.RetConfigInvalid, "stress.kind must be %s or %s, got %q", KindInt, KindString, s.Kind)
	}
	if s.Timeout < 0 {
		return errs.Newf(errs.RetConfigInvalid, "stress.timeout must not be negative, got %s", s.Timeout)
	}
	for i, o := range c.Log {
		if _, ok := log.Levels[o.Level]; !ok {
			return errs.Newf(errs.RetConfigInvalid, "log[%d].level %q unknown", i, o.Level)
		}
		switch o.Writer {
		case "", log.OutputConsole:
			if o.Stream != "" && o.Stream != log.StreamStdout && o.Stream != log.StreamStderr {
				return errs.Newf(errs.RetConfigInvalid, "log[%d].stream %q unknown", i, o.Stream)
			}
		case log.OutputFile:
			if o.Filename == "" {
				return errs.Newf(errs.RetConfigInvalid, "log[%d].filename required by file writer", i)
			}
		default:
			return errs.Newf(errs.RetConfigInvalid, "log[%d].writer %q unknown", i, o.Writer)
		}
	}
	return nil
}

// normalize turns the generic values produced by the codecs into the
// map[string]interface{} and []interface{} shapes mapstructure expects.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case map[interface{}]interface{}:
		m := cast.ToStringMap(t)
		for k, e := range m {
			m[k] = normalize(e)
		}
		return m
	case []interface{}:
		for i := range t {
			t[i] = normalize(t[i])
		}
		return t
	case []map[string]interface{}:
		s := make([]interface{}, len(t))
		for i := range t {
			s[i] = normalize(t[i])
		}
		return s
	default:
		return v
	}
}
