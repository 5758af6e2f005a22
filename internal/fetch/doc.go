// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package fetch performs the HTTP GETs memoized by the fetch command.
package fetch
