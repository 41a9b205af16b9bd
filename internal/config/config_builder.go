// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	// mergo treats an explicit zero as empty, so timeouts are resolved here.
	config.App.AutoLockTimeout = b.firstTimeout(func(c *StructuredConfig) time.Duration {
		return c.App.AutoLockTimeout
	})
	config.App.ClipboardClearAfter = b.firstTimeout(func(c *StructuredConfig) time.Duration {
		return c.App.ClipboardClearAfter
	})
	config.setDefaults()

	return config, config.validate()
}

// firstTimeout returns the timeout of the first source that set it, or
// unsetDuration.
func (b *configBuilder) firstTimeout(get func(*StructuredConfig) time.Duration) time.Duration {
	for _, cfg := range b.configs {
		if d := get(cfg); d != unsetDuration {
			return d
		}
	}
	return unsetDuration
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := newSourceConfig()
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags(flags *Flags) *configBuilder {
	if flags == nil {
		return b
	}

	b.configs = append(b.configs, flags.structured())
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	isJSONSpecified := false

	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" && !isJSONSpecified {
			isJSONSpecified = true
			jsonPath = cfg.JSONFilePath
		}
	}

	if isJSONSpecified {
		jsonCfg, err := parseJSON(jsonPath)
		if err != nil {
			b.err = errors.Join(b.err, err)
			return b
		}
		b.configs = append(b.configs, jsonCfg)
	}

	return b
}
