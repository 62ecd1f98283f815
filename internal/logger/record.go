// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"strings"
	"time"
)

const (
	// TimestampLayout renders times as "2024-06-01 15:04:05,123".
	TimestampLayout = "2006-01-02 15:04:05,000"

	fieldSeparator = " - "
)

// Record is a single message accepted for emission. It is built once per call
// and shared by every sink that receives it.
type Record struct {
	Time    time.Time
	Name    string
	Level   Severity
	Message string
}

// Formatter renders a Record as a single line without the trailing newline.
type Formatter interface {
	Format(rec Record) string
}

// TextFormatter renders "<timestamp> - <logger name> - <SEVERITY> - <message>".
type TextFormatter struct {
	// TimeLayout overrides TimestampLayout when not empty.
	TimeLayout string
}

func (f TextFormatter) Format(rec Record) string {
	layout := f.TimeLayout
	if layout == "" {
		layout = TimestampLayout
	}

	var builder strings.Builder
	builder.WriteString(rec.Time.Format(layout))
	builder.WriteString(fieldSeparator)
	builder.WriteString(rec.Name)
	builder.WriteString(fieldSeparator)
	builder.WriteString(rec.Level.String())
	builder.WriteString(fieldSeparator)
	builder.WriteString(rec.Message)
	return builder.String()
}
