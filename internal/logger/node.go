// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"fmt"
	"slices"
	"sync"
)

// Node is a named logger in the hierarchy.
type Node struct {
	registry *Registry
	name     string
	parent   *Node

	mu         sync.RWMutex
	level      Severity
	sinks      []Sink
	propagate  bool
	configured bool
}

func newNode(registry *Registry, name string, parent *Node) *Node {
	return &Node{
		registry:  registry,
		name:      name,
		parent:    parent,
		propagate: true,
	}
}

func (n *Node) Name() string {
	return n.name
}

// Parent returns the node one segment shorter, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Child returns the descendant called "<name>.<suffix>".
func (n *Node) Child(suffix string) *Node {
	if n.parent == nil {
		return n.registry.GetOrCreate(suffix)
	}
	return n.registry.GetOrCreate(n.name + nameSeparator + suffix)
}

// Level returns the level set on this node, NOTSET when it inherits.
func (n *Node) Level() Severity {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.level
}

// SetLevel sets the threshold of this node. NOTSET makes it inherit again.
func (n *Node) SetLevel(level Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.level = level
}

// SetPropagate controls whether records reaching this node continue to the
// sinks of its ancestors.
func (n *Node) SetPropagate(propagate bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.propagate = propagate
}

func (n *Node) Propagate() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.propagate
}

// AttachSink appends sink to the sinks of this node.
func (n *Node) AttachSink(sink Sink) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sinks = append(n.sinks, sink)
}

func (n *Node) sinksSnapshot() []Sink {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return slices.Clone(n.sinks)
}

// EffectiveLevel resolves the level of this node by walking up to the nearest
// node with a level set, falling back to DefaultLevel.
func (n *Node) EffectiveLevel() Severity {
	for node := n; node != nil; node = node.parent {
		if level := node.Level(); level != NOTSET {
			return level
		}
	}
	return DefaultLevel
}

// IsEnabledFor reports whether a message at level would be emitted.
func (n *Node) IsEnabledFor(level Severity) bool {
	if level <= n.registry.disabledAt() {
		return false
	}
	return level >= n.EffectiveLevel()
}

// Log emits message at level. The level of this node decides whether the
// message is emitted at all; once it is, every sink of this node and of its
// ancestors receives it, subject only to the sink's own level.
func (n *Node) Log(level Severity, message string) {
	if !n.IsEnabledFor(level) {
		return
	}
	n.emit(level, message)
}

func (n *Node) emit(level Severity, message string) {
	rec := Record{
		Time:    n.registry.now(),
		Name:    n.name,
		Level:   level,
		Message: message,
	}

	for node := n; node != nil; node = node.parent {
		for _, sink := range node.sinksSnapshot() {
			if rec.Level < sink.Level() {
				continue
			}
			if err := sink.Emit(rec); err != nil {
				n.registry.diagnostics.Error("cannot write log record", "logger", node.name, "record", rec.Message, "error", err)
			}
		}

		if !node.Propagate() {
			break
		}
	}
}

func (n *Node) logf(level Severity, format string, args ...any) {
	if !n.IsEnabledFor(level) {
		return
	}

	message := format
	if len(args) > 0 {
		message = fmt.Sprintf(format, args...)
	}
	n.emit(level, message)
}

// Debug emits a message at the DEBUG level, formatting args into format.
func (n *Node) Debug(format string, args ...any) {
	n.logf(DEBUG, format, args...)
}

// Info emits a message at the INFO level, formatting args into format.
func (n *Node) Info(format string, args ...any) {
	n.logf(INFO, format, args...)
}

// Warning emits a message at the WARNING level, formatting args into format.
func (n *Node) Warning(format string, args ...any) {
	n.logf(WARNING, format, args...)
}

// Error emits a message at the ERROR level, formatting args into format.
func (n *Node) Error(format string, args ...any) {
	n.logf(ERROR, format, args...)
}

// Critical emits a message at the CRITICAL level, formatting args into format.
func (n *Node) Critical(format string, args ...any) {
	n.logf(CRITICAL, format, args...)
}
