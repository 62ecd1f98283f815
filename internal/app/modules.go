// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package app

import (
	"context"

	"github.com/mia-platform/loghier/internal/logger"
)

const (
	module1Segment  = "module1"
	module1aSegment = "module1a"
	module2Segment  = "module2"

	module1LoggerName  = MainLoggerName + "." + module1Segment
	module1aLoggerName = module1LoggerName + "." + module1aSegment
	module2LoggerName  = MainLoggerName + "." + module2Segment

	module1Level  = logger.WARNING
	module1aLevel = logger.DEBUG
)

// module1Function only lets warnings through its own logger, but runs
// module1aFunction first, whose logger overrides that level.
func module1Function(ctx context.Context) {
	log := logger.FromContext(ctx).Child(module1Segment)

	module1aFunction(logger.WithContext(ctx, log))
	log.Info("module1_function is running")
	log.Debug("Debugging in module1")
}

func module1aFunction(ctx context.Context) {
	log := logger.FromContext(ctx).Child(module1aSegment)

	log.Info("module1_function is running")
	log.Debug("Debugging in module1")
}

// module2Function has no level of its own and inherits the one of main.
func module2Function(ctx context.Context) {
	log := logger.FromContext(ctx).Child(module2Segment)

	log.Warning("module2_function is running")
	log.Error("An error occurred in module2")
}
