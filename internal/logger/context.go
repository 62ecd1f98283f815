// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"context"
)

var (
	// nullNode belongs to a private registry without sinks and discards everything.
	nullNode = newNullNode()
)

func newNullNode() *Node {
	reg := NewRegistry()
	reg.Disable(CRITICAL)
	return reg.GetOrCreate("null")
}

// WithContext returns a new context with the provided node.
func WithContext(ctx context.Context, node *Node) context.Context {
	return context.WithValue(ctx, contextKey, node)
}

// FromContext retrieves the node from the context. If no node is found, a node that discards
// every message is returned.
func FromContext(ctx context.Context) *Node {
	if ctx != nil {
		if node, ok := ctx.Value(contextKey).(*Node); ok && node != nil {
			return node
		}
	}

	return nullNode
}

// Unexported new type so that our context key never collides with another.
type contextKeyType struct{}

// contextKey is the key used for the context to store the node.
var contextKey = contextKeyType{}
