// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	// RootName is the name of the node every other node descends from.
	RootName = "root"

	nameSeparator = "."
)

// Registry maps dotted names to nodes. GetOrCreate is the only way to obtain a
// node, so every lookup of the same name shares the same node.
type Registry struct {
	mu      sync.Mutex
	root    *Node
	nodes   map[string]*Node
	disable Severity

	diagnostics hclog.Logger
	now         func() time.Time
}

// RegistryOption customizes a Registry built by NewRegistry.
type RegistryOption func(*Registry)

// WithDiagnostics sets the logger used to report sink failures.
func WithDiagnostics(log hclog.Logger) RegistryOption {
	return func(r *Registry) {
		r.diagnostics = log
	}
}

// WithClock sets the function used to timestamp records.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		r.now = now
	}
}

// NewRegistry returns an empty registry holding only the root node.
func NewRegistry(opts ...RegistryOption) *Registry {
	reg := &Registry{
		nodes:       make(map[string]*Node),
		diagnostics: newDiagnostics(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(reg)
	}

	reg.root = newNode(reg, RootName, nil)
	return reg
}

// Root returns the root node.
func (r *Registry) Root() *Node {
	return r.root
}

// GetOrCreate returns the node called name, creating it and every missing
// ancestor. The empty name and RootName both resolve to the root node, and a
// leading "root." is dropped so "root.main" is the same node as "main".
func (r *Registry) GetOrCreate(name string) *Node {
	name = strings.TrimPrefix(name, RootName+nameSeparator)
	if name == "" || name == RootName {
		return r.root
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if node, ok := r.nodes[name]; ok {
		return node
	}

	parent := r.root
	segments := strings.Split(name, nameSeparator)
	for i := range segments {
		path := strings.Join(segments[:i+1], nameSeparator)
		node, ok := r.nodes[path]
		if !ok {
			node = newNode(r, path, parent)
			r.nodes[path] = node
		}
		parent = node
	}

	return parent
}

// Names returns the names of every node created so far, root excluded.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.nodes))
	for name := range r.nodes {
		names = append(names, name)
	}
	return names
}

// Disable discards every message at or below level, regardless of the node it
// is logged to. Disable(NOTSET) lifts the restriction.
func (r *Registry) Disable(level Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disable = level
}

func (r *Registry) disabledAt() Severity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.disable
}

// Close closes every sink that holds a resource, such as an open file.
func (r *Registry) Close() error {
	r.mu.Lock()
	nodes := make([]*Node, 0, len(r.nodes)+1)
	nodes = append(nodes, r.root)
	for _, node := range r.nodes {
		nodes = append(nodes, node)
	}
	r.mu.Unlock()

	var errs []error
	for _, node := range nodes {
		for _, sink := range node.sinksSnapshot() {
			if err := closeSink(sink); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func closeSink(sink Sink) error {
	if closer, ok := sink.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
