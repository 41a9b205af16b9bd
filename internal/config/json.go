// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		VaultPath           string   `json:"vault_path"`
		UseKeyring          bool     `json:"use_keyring"`
		AutoLockTimeout     Duration `json:"auto_lock_timeout"`
		ClipboardClearAfter Duration `json:"clipboard_clear_after"`
	} `json:"app,omitempty"`

	Crypto struct {
		Iterations  uint32 `json:"iterations"`
		MemoryKiB   uint32 `json:"memory_kib"`
		Parallelism uint8  `json:"parallelism"`
	} `json:"crypto,omitempty"`

	Storage struct {
		Journal struct {
			DSN string `json:"dsn"`
		} `json:"journal,omitempty"`
	} `json:"storage,omitempty"`

	Log struct {
		Path  string `json:"path"`
		Level string `json:"level"`
	} `json:"log,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	jsonCfg.App.AutoLockTimeout = Duration(unsetDuration)
	jsonCfg.App.ClipboardClearAfter = Duration(unsetDuration)
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			VaultPath:           jsonCfg.App.VaultPath,
			UseKeyring:          jsonCfg.App.UseKeyring,
			AutoLockTimeout:     time.Duration(jsonCfg.App.AutoLockTimeout),
			ClipboardClearAfter: time.Duration(jsonCfg.App.ClipboardClearAfter),
		},
		Crypto: Crypto{
			Iterations:  jsonCfg.Crypto.Iterations,
			MemoryKiB:   jsonCfg.Crypto.MemoryKiB,
			Parallelism: jsonCfg.Crypto.Parallelism,
		},
		Storage: Storage{
			Journal: Journal{DSN: jsonCfg.Storage.Journal.DSN},
		},
		Log: Log{
			Path:  jsonCfg.Log.Path,
			Level: jsonCfg.Log.Level,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
