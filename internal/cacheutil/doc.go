// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package cacheutil resolves the on-disk cache directory and lists and ages
// out the artifacts in it.
package cacheutil
