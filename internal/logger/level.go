// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidLevel = errors.New("invalid log level")
)

// Severity is the importance of a message. Higher values are more severe.
type Severity int

const (
	NOTSET   Severity = 0
	DEBUG    Severity = 10
	INFO     Severity = 20
	WARNING  Severity = 30
	ERROR    Severity = 40
	CRITICAL Severity = 50
)

// DefaultLevel is the effective level of a node when neither it nor any of its
// ancestors has a level set.
const DefaultLevel = DEBUG

// AllLevels lists the named severities in ascending order.
var AllLevels = []Severity{DEBUG, INFO, WARNING, ERROR, CRITICAL}

func (s Severity) String() string {
	switch s {
	case NOTSET:
		return "NOTSET"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	case CRITICAL:
		return "CRITICAL"
	default:
		return "Level " + strconv.Itoa(int(s))
	}
}

// LevelFromString parses a severity name. WARN and FATAL are accepted as
// aliases of WARNING and CRITICAL.
func LevelFromString(level string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "NOTSET":
		return NOTSET, nil
	case "DEBUG":
		return DEBUG, nil
	case "INFO":
		return INFO, nil
	case "WARNING", "WARN":
		return WARNING, nil
	case "ERROR":
		return ERROR, nil
	case "CRITICAL", "FATAL":
		return CRITICAL, nil
	default:
		return NOTSET, fmt.Errorf("%w: %q", ErrInvalidLevel, level)
	}
}
