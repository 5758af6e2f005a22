// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package autocache memoizes the result of an expensive function into a
// persistent store. The caller names the cache location on every call; the
// location, not the arguments, is the cache key. A decodable artifact at the
// location is returned as-is, anything else is a miss that runs the function
// and persists its result.
package autocache
