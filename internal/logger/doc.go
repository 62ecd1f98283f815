// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package logger implements a hierarchy of named loggers.
//
// Nodes are addressed by dotted names ("main.module1.module1a") and are created
// on demand by a Registry. A node without its own level inherits the level of
// its nearest configured ancestor; a message that passes the originating node's
// level is handed to the sinks of the node and of every ancestor, each sink
// applying its own minimum severity.
//
//	reg := logger.NewRegistry()
//	err := reg.Configure(logger.NodeConfig{
//		Name:  "main",
//		Level: logger.DEBUG,
//		Sinks: []logger.SinkConfig{
//			{Kind: logger.ConsoleSink, Level: logger.DEBUG, Stream: os.Stderr},
//			{Kind: logger.FileSink, Level: logger.DEBUG, Path: "app.log"},
//		},
//	})
//	reg.GetOrCreate("main.module2").Warning("module2_function is running")
package logger
