// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package config loads the process settings from the environment.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/mia-platform/loghier/internal/logger"
)

const (
	ConsoleStdout = "stdout"
	ConsoleStderr = "stderr"
)

var (
	ErrEnvVariablesNotValid = errors.New("environment variables not valid")
)

type Config struct {
	LogFile    string `env:"LOG_FILE" envDefault:"app.log"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"DEBUG"`
	LogConsole string `env:"LOG_CONSOLE" envDefault:"stderr"`
	HTTPHost   string `env:"HTTP_HOST"`
	HTTPPort   string `env:"HTTP_PORT" envDefault:"3000"`
}

// LoadDefaults reads the environment without validating the values, so they
// can still be overridden before Validate is called.
func LoadDefaults() (*Config, error) {
	var envVars Config
	if err := env.Parse(&envVars); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEnvVariablesNotValid, err.Error())
	}
	return &envVars, nil
}

func LoadConfig() (*Config, error) {
	envVars, err := LoadDefaults()
	if err != nil {
		return nil, err
	}

	if err := Validate(envVars); err != nil {
		return nil, err
	}
	return envVars, nil
}

// Validate checks the values of cfg, either read from the environment or
// overridden afterwards.
func Validate(cfg *Config) error {
	envError := make([]string, 0)

	if level, err := logger.LevelFromString(cfg.LogLevel); err != nil || level == logger.NOTSET {
		envError = append(envError, "LOG_LEVEL must be one of DEBUG, INFO, WARNING, ERROR, CRITICAL")
	}

	switch strings.ToLower(cfg.LogConsole) {
	case ConsoleStdout, ConsoleStderr:
	default:
		envError = append(envError, "LOG_CONSOLE must be stdout or stderr")
	}

	serverPortNumber, err := strconv.Atoi(cfg.HTTPPort)
	if err != nil {
		envError = append(envError, "HTTP_PORT is not a valid number")
	} else if serverPortNumber < 1 || serverPortNumber > 65535 {
		envError = append(envError, "HTTP_PORT is out of valid range (1-65535)")
	}

	if len(envError) > 0 {
		return fmt.Errorf("%w: %s", ErrEnvVariablesNotValid, strings.Join(envError, ", "))
	}
	return nil
}

// Address returns the host:port the HTTP server listens on.
func (c *Config) Address() string {
	return c.HTTPHost + ":" + c.HTTPPort
}

// Level returns the parsed LogLevel; call it only on a validated Config.
func (c *Config) Level() logger.Severity {
	level, _ := logger.LevelFromString(c.LogLevel)
	return level
}
