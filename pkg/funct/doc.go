// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package funct holds small function-plumbing helpers: composition, partial
// application and a text progress bar.
package funct
