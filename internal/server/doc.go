// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package server exposes the application over HTTP with the Fiber framework.
// Every request is logged through the "request" child of the server node, and
// the run route drives the application with that node in its context.
package server
