// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyConfigured = errors.New("logger already configured")
	ErrUnknownSinkKind   = errors.New("unknown sink kind")
)

// SinkInitError signals that a sink could not be set up, typically because its
// file cannot be opened for writing.
type SinkInitError struct {
	Logger string
	Target string
	Err    error
}

func (e *SinkInitError) Error() string {
	return fmt.Sprintf("cannot initialize sink %q for logger %q: %s", e.Target, e.Logger, e.Err)
}

func (e *SinkInitError) Unwrap() error {
	return e.Err
}
