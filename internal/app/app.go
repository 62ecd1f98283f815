// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package app

import (
	"context"
	"io"
	"os"

	"github.com/mia-platform/loghier/internal/logger"
)

const (
	// MainLoggerName is the top of the application hierarchy.
	MainLoggerName = "main"
)

// Options are the static parameters of the application logging setup.
type Options struct {
	// Console receives the console sink output, os.Stderr when nil.
	Console io.Writer
	// LogFile is appended to by the file sink; empty disables it.
	LogFile string
	// Level is used for the main logger and for both of its sinks.
	Level logger.Severity
}

// Application holds the registry and the main node the modules log through.
type Application struct {
	registry *logger.Registry
	log      *logger.Node
}

// New configures a new registry from opts and wires the modules to it. It fails
// when a sink cannot be set up, for example because the log file is not writable.
func New(opts Options, registryOpts ...logger.RegistryOption) (*Application, error) {
	registry := logger.NewRegistry(registryOpts...)
	if err := registry.Configure(nodeConfigs(opts)...); err != nil {
		return nil, err
	}

	return &Application{
		registry: registry,
		log:      registry.GetOrCreate(MainLoggerName),
	}, nil
}

// nodeConfigs returns the setup of every configured node of the hierarchy.
func nodeConfigs(opts Options) []logger.NodeConfig {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	mainSinks := []logger.SinkConfig{
		{Kind: logger.ConsoleSink, Level: opts.Level, Stream: console},
	}
	if opts.LogFile != "" {
		mainSinks = append(mainSinks, logger.SinkConfig{Kind: logger.FileSink, Level: opts.Level, Path: opts.LogFile})
	}

	return []logger.NodeConfig{
		{Name: MainLoggerName, Level: opts.Level, Sinks: mainSinks},
		{Name: module1LoggerName, Level: module1Level},
		{Name: module1aLoggerName, Level: module1aLevel},
	}
}

// Registry returns the registry owned by the application.
func (a *Application) Registry() *logger.Registry {
	return a.registry
}

// Run logs the startup messages, runs the modules and logs the completion. The
// modules find the main node in the context passed to them.
func (a *Application) Run(ctx context.Context) {
	ctx = logger.WithContext(ctx, a.log)

	a.log.Info("Application has started")
	a.log.Debug("This is a debug message")
	a.log.Info("Application started")
	a.log.Warning("This is a warning")
	a.log.Error("An error occurred")
	a.log.Critical("Critical issue!")

	module1Function(ctx)
	module2Function(ctx)

	a.log.Info("Application has finished")
}

// Close releases the log file.
func (a *Application) Close() error {
	return a.registry.Close()
}
