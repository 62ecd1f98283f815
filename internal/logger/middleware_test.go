// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"bytes"
	netHTTP "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestMiddlewareLogger(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	reg := newTestRegistry(t)
	server := reg.GetOrCreate("main.http")
	server.AttachSink(NewStreamSink(buffer, DEBUG))

	app := fiber.New(fiber.Config{})
	require.NotNil(t, app)

	middleware := RequestMiddlewareLogger(server, []string{"/-/healthz"})
	require.NotNil(t, middleware)

	app.Use(middleware)
	app.Get("/foo", func(c *fiber.Ctx) error {
		FromContext(c.UserContext()).Info("handling foo")
		return c.SendString("bar")
	})
	app.Get("/-/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(netHTTP.MethodGet, "http://example.com/foo", nil)
	req.Header.Set("User-Agent", "UnitTestAgent/1.0")
	req.Header.Set("X-Request-Id", "req-1")
	req.RemoteAddr = "127.0.0.1:12345"

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	healthReq := httptest.NewRequest(netHTTP.MethodGet, "http://example.com/-/healthz", nil)
	healthResp, err := app.Test(healthReq)
	require.NoError(t, err)
	defer healthResp.Body.Close()

	lines := outputLines(buffer)
	require.Len(t, lines, 3)
	assert.Equal(t, `2024-06-01 12:30:45,123 - main.http.request - DEBUG - incoming request GET /foo host=example.com "UnitTestAgent/1.0" reqId=req-1`, lines[0])
	assert.Equal(t, "2024-06-01 12:30:45,123 - main.http.request - INFO - handling foo", lines[1])
	assert.Contains(t, lines[2], "main.http.request - INFO - request completed GET /foo host=example.com")
	assert.Contains(t, lines[2], "reqId=req-1 status=200 bytes=3")
}

func TestRequestMiddlewareLoggerFiberError(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	reg := newTestRegistry(t)
	server := reg.GetOrCreate("main.http")
	server.SetLevel(INFO)
	server.AttachSink(NewStreamSink(buffer, DEBUG))

	app := fiber.New(fiber.Config{})
	app.Use(RequestMiddlewareLogger(server, nil))
	app.Get("/missing", func(*fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "not here")
	})

	req := httptest.NewRequest(netHTTP.MethodGet, "http://example.com/missing", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	lines := outputLines(buffer)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "request completed GET /missing")
	assert.Contains(t, lines[0], "status=404 bytes=8")
	assert.Regexp(t, `reqId=[0-9a-f-]{36} `, lines[0])
}

func TestRequestMiddlewareLoggerForwardedHeaders(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	reg := newTestRegistry(t)
	server := reg.GetOrCreate("main.http")
	server.AttachSink(NewStreamSink(buffer, DEBUG))

	app := fiber.New(fiber.Config{})
	app.Use(RequestMiddlewareLogger(server, nil))
	app.Post("/run", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest(netHTTP.MethodPost, "http://example.com:3000/run?now=true", nil)
	req.Header.Set("X-Forwarded-Host", "logs.example.com")
	req.Header.Set("X-Forwarded-For", "10.0.0.1")
	req.Header.Set("X-Request-Id", "req-2")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	lines := outputLines(buffer)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "incoming request POST /run?now=true host=example.com forwardedHost=logs.example.com ip=10.0.0.1 reqId=req-2")
	assert.Contains(t, lines[1], "reqId=req-2 status=204 bytes=0")
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "from-client", requestID("from-client"))

	generated := requestID("")
	assert.Len(t, generated, 36)
	assert.NotEqual(t, generated, requestID(""))
}
