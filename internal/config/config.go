// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

// Type is the loaded configuration document. Source is the file it came
// from, or "" when no config file exists (env vars and defaults still work).
type Type struct {
	Source string
	Data   map[string]interface{}
}

var Config Type

var loaded bool

// Load reads parkmenu.yaml from the first standard location that has one.
// A missing config file is not an error; every key has an env override and
// a default. An explicitly-pointed-at but unreadable file is an error.
func Load() (Type, error) {
	loaded = true

	path, ok := getConfigPath()
	if !ok {
		Config = Type{}
		return Config, nil
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Type{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return Type{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	Config = Type{
		Source: path,
		Data:   data}

	return Config, nil
}

// get traverses the map using a dotted key path
func (cfg *Type) get(kspec string) (any, error) {
	if !loaded {
		_, _ = Load()
	}

	keys := strings.Split(kspec, ".")
	var current interface{} = Config.Data

	for _, key := range keys {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("no value at path: %s", kspec)
		}
		current, ok = m[key]
		if !ok {
			return nil, fmt.Errorf("no value at path: %s", kspec)
		}
	}

	return current, nil
}

// GetString resolves key with precedence env > config file > default.
func GetString(key string, defaultValue ...string) (string, error) {
	if env, ok := os.LookupEnv(envKey(key)); ok {
		return env, nil
	}

	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", errors.New("value is not a string")
	}

	return s, nil
}

func GetInt(key string, defaultValue ...int) (int, error) {
	if env, ok := os.LookupEnv(envKey(key)); ok {
		if i, err := strconv.Atoi(env); err == nil {
			return i, nil
		}
		return 0, fmt.Errorf("env override %s is not an int", envKey(key))
	}

	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	// YAML numbers may be unmarshaled as int/float64 depending on content.
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, errors.New("value is not an int")
	}
}

func GetBool(key string, defaultValue ...bool) (bool, error) {
	if env, ok := os.LookupEnv(envKey(key)); ok {
		return env != "0" && !strings.EqualFold(env, "false"), nil
	}

	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return false, err
	}

	b, ok := val.(bool)
	if !ok {
		return false, errors.New("value is not a bool")
	}

	return b, nil
}

// GetDuration reads an integer number of seconds.
func GetDuration(key string, defaultValue time.Duration) time.Duration {
	secs, err := GetInt(key, int(defaultValue/time.Second))
	if err != nil || secs < 1 {
		return defaultValue
	}
	return time.Duration(secs) * time.Second
}

// envKey maps a dotted config key to its env override, e.g.
// "cache.hours" -> "PARKMENU_CACHE_HOURS".
func envKey(key string) string {
	return "PARKMENU_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func getConfigPath() (string, bool) {
	// An explicit PARKMENU_CFG always wins, even if it's bogus, so the
	// failure is loud rather than silently falling back.
	if c, ok := os.LookupEnv("PARKMENU_CFG"); ok && c != "" {
		return c, true
	}

	var candidates []string = []string{
		os.Getenv("XDG_CONFIG_HOME"),
		os.Getenv("APPDATA"),
		os.Getenv("HOME"),
	}

	for _, c := range candidates {
		if c == "" {
			continue
		}
		file := filepath.Join(c, "parkmenu.yaml")
		if fileInfo, err := os.Stat(file); err == nil {
			if !fileInfo.IsDir() {
				log.Debugf("using config file: %s", file)
				return file, true
			}
		}
	}
	return "", false
}
