// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package funct

// LPartial fixes the left argument of f.
func LPartial[A, B, R any](f func(A, B) R, a A) func(B) R {
	return func(b B) R {
		return f(a, b)
	}
}

// RPartial fixes the right argument of f.
func RPartial[A, B, R any](f func(A, B) R, b B) func(A) R {
	return func(a A) R {
		return f(a, b)
	}
}

// LPartialN puts fixed in front of the arguments of every call.
func LPartialN[T, R any](f func(...T) R, fixed ...T) func(...T) R {
	fixed = append([]T(nil), fixed...)
	return func(rest ...T) R {
		args := make([]T, 0, len(fixed)+len(rest))
		args = append(args, fixed...)
		return f(append(args, rest...)...)
	}
}

// RPartialN puts fixed after the arguments of every call.
func RPartialN[T, R any](f func(...T) R, fixed ...T) func(...T) R {
	fixed = append([]T(nil), fixed...)
	return func(rest ...T) R {
		args := make([]T, 0, len(fixed)+len(rest))
		args = append(args, rest...)
		return f(append(args, fixed...)...)
	}
}
