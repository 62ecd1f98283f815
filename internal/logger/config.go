// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// SinkKind selects the sink built for a SinkConfig.
type SinkKind string

const (
	ConsoleSink SinkKind = "console"
	FileSink    SinkKind = "file"
	HCLogBridge SinkKind = "hclog"
)

// SinkConfig describes a sink to attach to a node.
type SinkConfig struct {
	Kind  SinkKind
	Level Severity

	// Path is the file appended to by a FileSink.
	Path string
	// Stream is the writer of a ConsoleSink, os.Stderr when nil. An HCLogBridge
	// without Logger builds its hclog logger on Stream too.
	Stream io.Writer
	// Logger receives the records of an HCLogBridge.
	Logger hclog.Logger
}

// NodeConfig is the setup of a single node, applied once by Registry.Configure.
type NodeConfig struct {
	// Name of the node; empty for the root.
	Name string
	// Level of the node; NOTSET inherits from the ancestors.
	Level Severity
	// Propagate defaults to true when nil.
	Propagate *bool
	Sinks     []SinkConfig
}

// Configure applies cfgs in order. Each node can be configured only once and
// all the sinks of a node are built before any of them is attached, so a
// failing sink leaves the node untouched.
func (r *Registry) Configure(cfgs ...NodeConfig) error {
	for _, cfg := range cfgs {
		if err := r.configure(cfg); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) configure(cfg NodeConfig) error {
	node := r.GetOrCreate(cfg.Name)

	sinks := make([]Sink, 0, len(cfg.Sinks))
	for _, sinkCfg := range cfg.Sinks {
		sink, err := buildSink(sinkCfg)
		if err != nil {
			for _, built := range sinks {
				_ = closeSink(built)
			}
			return withLoggerName(err, node.name)
		}
		sinks = append(sinks, sink)
	}

	node.mu.Lock()
	defer node.mu.Unlock()

	if node.configured {
		for _, built := range sinks {
			_ = closeSink(built)
		}
		return fmt.Errorf("%w: %s", ErrAlreadyConfigured, node.name)
	}

	node.configured = true
	node.level = cfg.Level
	if cfg.Propagate != nil {
		node.propagate = *cfg.Propagate
	}
	node.sinks = append(node.sinks, sinks...)
	return nil
}

func buildSink(cfg SinkConfig) (Sink, error) {
	switch cfg.Kind {
	case ConsoleSink:
		return NewStreamSink(streamOrStderr(cfg.Stream), cfg.Level), nil
	case FileSink:
		sink, err := NewFileSink(cfg.Path, cfg.Level)
		if err != nil {
			return nil, err
		}
		return sink, nil
	case HCLogBridge:
		log := cfg.Logger
		if log == nil {
			log = hclog.New(&hclog.LoggerOptions{
				Output: streamOrStderr(cfg.Stream),
				Level:  hclog.Trace,
			})
		}
		return NewHCLogSink(log, cfg.Level), nil
	default:
		return nil, &SinkInitError{Target: string(cfg.Kind), Err: ErrUnknownSinkKind}
	}
}

func streamOrStderr(stream io.Writer) io.Writer {
	if stream == nil {
		return os.Stderr
	}
	return stream
}

func withLoggerName(err error, name string) error {
	if sinkErr, ok := err.(*SinkInitError); ok {
		sinkErr.Logger = name
	}
	return err
}
