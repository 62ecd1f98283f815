// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/loghier/internal/logger"
)

func TestLoadEnvironmentVariables(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		envVars, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "app.log", envVars.LogFile)
		assert.Equal(t, logger.DEBUG, envVars.Level())
		assert.Equal(t, ConsoleStderr, envVars.LogConsole)
		assert.Equal(t, ":3000", envVars.Address())
	})

	t.Run("values from the environment", func(t *testing.T) {
		t.Setenv("LOG_FILE", "/tmp/other.log")
		t.Setenv("LOG_LEVEL", "warn")
		t.Setenv("LOG_CONSOLE", "STDOUT")

		envVars, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/other.log", envVars.LogFile)
		assert.Equal(t, logger.WARNING, envVars.Level())
		assert.Equal(t, "STDOUT", envVars.LogConsole)
	})

	t.Run("defaults are loaded without validation", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "verbose")
		t.Setenv("HTTP_PORT", "655350")

		envVars, err := LoadDefaults()
		require.NoError(t, err)
		assert.Equal(t, "verbose", envVars.LogLevel)
		assert.Equal(t, "655350", envVars.HTTPPort)
	})

	t.Run("invalid level", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "verbose")
		_, err := LoadConfig()
		require.ErrorIs(t, err, ErrEnvVariablesNotValid)
		assert.Contains(t, err.Error(), "LOG_LEVEL")
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		cfg           Config
		expectedError string
	}{
		"valid configuration": {
			cfg: Config{LogFile: "app.log", LogLevel: "INFO", LogConsole: "stdout", HTTPPort: "3000"},
		},
		"empty file disables the file sink": {
			cfg: Config{LogLevel: "INFO", LogConsole: "stderr", HTTPPort: "8080"},
		},
		"notset is not a valid process level": {
			cfg:           Config{LogLevel: "NOTSET", LogConsole: "stderr", HTTPPort: "3000"},
			expectedError: "LOG_LEVEL",
		},
		"unknown console": {
			cfg:           Config{LogLevel: "INFO", LogConsole: "printer", HTTPPort: "3000"},
			expectedError: "LOG_CONSOLE",
		},
		"port is not a number": {
			cfg:           Config{LogLevel: "INFO", LogConsole: "stderr", HTTPPort: "http"},
			expectedError: "HTTP_PORT is not a valid number",
		},
		"port out of range": {
			cfg:           Config{LogLevel: "INFO", LogConsole: "stderr", HTTPPort: "655350"},
			expectedError: "HTTP_PORT is out of valid range",
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := Validate(&testCase.cfg)
			if testCase.expectedError == "" {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, ErrEnvVariablesNotValid)
			assert.Contains(t, err.Error(), testCase.expectedError)
		})
	}
}
