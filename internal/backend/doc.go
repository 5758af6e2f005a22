// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

// Package backend turns command line store settings (file, s3, redis or
// memory) into an autocache.Store.
package backend
