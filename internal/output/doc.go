// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output renders artifacts and artifact listings: raw, JSON and YAML
// emission, gjson queries, tables, sorting, filtering and JSON diffs.
package output
