// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// defunctgo is the main package for the defunct command line tool. It expands
// argument sets, wires the CLI and hands off to internal/command.
package main
