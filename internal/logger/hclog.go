// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"github.com/hashicorp/go-hclog"
)

const diagnosticsName = "loghier"

// HCLogSink forwards records to an hclog.Logger, so nodes of the hierarchy can
// feed components that are already wired to hclog.
type HCLogSink struct {
	log   hclog.Logger
	level Severity
}

// NewHCLogSink returns a sink forwarding to log. The level of log still applies
// after the sink level.
func NewHCLogSink(log hclog.Logger, level Severity) *HCLogSink {
	return &HCLogSink{log: log, level: level}
}

func (s *HCLogSink) Level() Severity {
	return s.level
}

func (s *HCLogSink) Emit(rec Record) error {
	s.log.ResetNamed(rec.Name).Log(convertedLevel(rec.Level), rec.Message, "severity", rec.Level.String())
	return nil
}

// convertedLevel maps a severity onto the closest hclog level. hclog has no
// level above Error, so CRITICAL is reported as Error.
func convertedLevel(level Severity) hclog.Level {
	switch {
	case level >= ERROR:
		return hclog.Error
	case level >= WARNING:
		return hclog.Warn
	case level >= INFO:
		return hclog.Info
	case level >= DEBUG:
		return hclog.Debug
	default:
		return hclog.Trace
	}
}

// newDiagnostics builds the logger the registry uses to report its own
// failures, such as a sink that cannot write.
func newDiagnostics() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   diagnosticsName,
		Output: hclog.DefaultOutput,
		Level:  hclog.Warn,
	})
}
