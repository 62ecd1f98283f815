// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	forwardedHostHeaderKey = "x-forwarded-host"
	forwardedForHeaderKey  = "x-forwarded-for"
	requestIDHeaderName    = "x-request-id"
	userAgentHeaderName    = "user-agent"

	requestNodeName = "request"

	IncomingRequestMessage  = "incoming request"
	RequestCompletedMessage = "request completed"
)

// requestLine holds the request attributes repeated on every line of a request.
type requestLine struct {
	id            string
	method        string
	uri           string
	host          string
	forwardedHost string
	forwardedFor  string
	userAgent     string
}

func newRequestLine(c *fiber.Ctx) requestLine {
	return requestLine{
		id:            requestID(c.Get(requestIDHeaderName)),
		method:        c.Method(),
		uri:           string(c.Request().URI().RequestURI()),
		host:          strings.Split(string(c.Request().Host()), ":")[0],
		forwardedHost: c.Get(forwardedHostHeaderKey),
		forwardedFor:  c.Get(forwardedForHeaderKey),
		userAgent:     c.Get(userAgentHeaderName),
	}
}

// requestID returns the id sent by the client or a random uuid, e.g.
// 16c9c1f2-c001-40d3-bbfe-48857367e7b5.
func requestID(fromHeader string) string {
	if fromHeader != "" {
		return fromHeader
	}

	id, err := uuid.NewRandom()
	if err != nil {
		panic(fmt.Errorf("error generating request id: %w", err))
	}
	return id.String()
}

func (r requestLine) String() string {
	fields := []string{r.method, r.uri, "host=" + r.host}
	if r.forwardedHost != "" {
		fields = append(fields, "forwardedHost="+r.forwardedHost)
	}
	if r.forwardedFor != "" {
		fields = append(fields, "ip="+r.forwardedFor)
	}
	if r.userAgent != "" {
		fields = append(fields, strconv.Quote(r.userAgent))
	}
	return strings.Join(append(fields, "reqId="+r.id), " ")
}

// responseOutcome returns the status code and body size of the response, taking
// them from a *fiber.Error returned by the handler chain when there is one.
func responseOutcome(c *fiber.Ctx, handlerErr error) (int, int) {
	var fiberErr *fiber.Error
	if errors.As(handlerErr, &fiberErr) {
		return fiberErr.Code, len(fiberErr.Message)
	}

	size := len(c.Response().Body())
	if length, err := strconv.Atoi(c.GetRespHeader(fiber.HeaderContentLength)); err == nil {
		size = length
	}
	return c.Response().StatusCode(), size
}

// RequestMiddlewareLogger is a fiber middleware logging every request through the
// "request" child of node: the incoming request at DEBUG and its completion, with
// latency, at INFO. The child node is stored in the request user context.
// Requests whose path starts with one of excludedPrefix are not logged.
func RequestMiddlewareLogger(node *Node, excludedPrefix []string) fiber.Handler {
	requestNode := node.Child(requestNodeName)

	return func(c *fiber.Ctx) error {
		for _, prefix := range excludedPrefix {
			if strings.HasPrefix(c.Path(), prefix) {
				return c.Next()
			}
		}

		start := time.Now()
		line := newRequestLine(c)
		c.SetUserContext(WithContext(c.UserContext(), requestNode))

		requestNode.Debug("%s %s", IncomingRequestMessage, line)
		err := c.Next()

		status, size := responseOutcome(c, err)
		requestNode.Info("%s %s status=%d bytes=%d responseTime=%dms",
			RequestCompletedMessage, line, status, size, time.Since(start).Milliseconds())
		return err
	}
}
