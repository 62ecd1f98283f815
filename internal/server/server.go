// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/mia-platform/loghier/internal/info"
	"github.com/mia-platform/loghier/internal/logger"
)

const (
	// LoggerName is the node, under the main hierarchy, the server logs through.
	LoggerName = "main.http"

	healthzPath = "/-/healthz"
	runPath     = "/run"
	statusPath  = "/-/"
)

var (
	ErrServerListen   = errors.New("server listen error")
	ErrServerShutdown = errors.New("server shutdown error")
)

// RunFunc is invoked by the run route with the request context.
type RunFunc func(ctx context.Context) error

type Server struct {
	app     *fiber.App
	address string
	log     *logger.Node
}

// New returns a server listening on address whose run route calls run. Requests
// outside the status routes are logged through node.
func New(node *logger.Node, address string, run RunFunc) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(logger.RequestMiddlewareLogger(node, []string{statusPath}))

	statusRoutes(app, info.AppName, info.Version)
	app.Post(runPath, runHandler(run))

	return &Server{
		app:     app,
		address: address,
		log:     node,
	}
}

func statusRoutes(app *fiber.App, name, version string) {
	app.Get(healthzPath, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "OK",
			"name":    name,
			"version": version,
		})
	})
}

func runHandler(run RunFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := run(c.UserContext()); err != nil {
			logger.FromContext(c.UserContext()).Error("run failed: %s", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
				"statusCode": http.StatusInternalServerError,
				"error":      http.StatusText(http.StatusInternalServerError),
				"message":    "error running the application",
			})
		}
		return c.SendStatus(http.StatusNoContent)
	}
}

// Start listens until Stop is called.
func (s *Server) Start() error {
	s.log.Info("listening on %s", s.address)
	if err := s.app.Listen(s.address); err != nil {
		return fmt.Errorf("%w: %w", ErrServerListen, err)
	}
	return nil
}

func (s *Server) Stop() error {
	if err := s.app.Shutdown(); err != nil {
		return fmt.Errorf("%w: %w", ErrServerShutdown, err)
	}
	s.log.Info("server stopped")
	return nil
}
