// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package app is the application root: it owns the logger registry, configures
// the "main" hierarchy and drives the collaborating modules.
package app
