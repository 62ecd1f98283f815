// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"io"
	"os"
	"sync"
)

const fileSinkPermissions = 0o644

// Sink is a destination for records. A sink only receives records whose
// severity is at least its Level.
type Sink interface {
	Level() Severity
	Emit(rec Record) error
}

// Make sure that the built-in sinks are Sinks.
var (
	_ Sink = &StreamSink{}
	_ Sink = &HCLogSink{}
)

// StreamSink writes formatted lines to an io.Writer. Writes are serialized so
// concurrent emitters never interleave a line.
type StreamSink struct {
	mu        sync.Mutex
	out       io.Writer
	level     Severity
	formatter Formatter
	closer    io.Closer
}

// NewStreamSink returns a sink writing to out with the default TextFormatter.
func NewStreamSink(out io.Writer, level Severity) *StreamSink {
	return &StreamSink{
		out:       out,
		level:     level,
		formatter: TextFormatter{},
	}
}

// NewFileSink opens path for appending, creating it when missing, and returns
// a sink writing to it. The file stays open until Close is called.
func NewFileSink(path string, level Severity) (*StreamSink, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, fileSinkPermissions)
	if err != nil {
		return nil, &SinkInitError{Target: path, Err: err}
	}

	sink := NewStreamSink(file, level)
	sink.closer = file
	return sink, nil
}

// WithFormatter replaces the sink formatter and returns the sink.
func (s *StreamSink) WithFormatter(formatter Formatter) *StreamSink {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formatter = formatter
	return s
}

func (s *StreamSink) Level() Severity {
	return s.level
}

func (s *StreamSink) Emit(rec Record) error {
	line := s.formatter.Format(rec) + "\n"

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := io.WriteString(s.out, line)
	return err
}

// Close releases the underlying file, if the sink owns one.
func (s *StreamSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closer == nil {
		return nil
	}

	err := s.closer.Close()
	s.closer = nil
	return err
}
