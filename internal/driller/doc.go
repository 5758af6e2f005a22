// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package driller extracts values from JSON artifacts by path. Paths are
// gjson paths that also accept [N] indexes and drill through one element
// arrays.
package driller
