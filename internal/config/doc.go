// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package config loads defunct.yaml and exposes dotted-path getters with
// optional per-command namespaces.
package config
