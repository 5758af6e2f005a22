// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package funct

// Compose chains fns left to right, so Compose(f, g)(x) == g(f(x)). With no
// functions it is the identity.
func Compose[T any](fns ...func(T) T) func(T) T {
	return func(x T) T {
		for _, fn := range fns {
			x = fn(x)
		}
		return x
	}
}

// Compose2 is Compose for two functions whose types differ.
func Compose2[A, B, C any](f func(A) B, g func(B) C) func(A) C {
	return func(a A) C {
		return g(f(a))
	}
}

// Compose3 is Compose for three functions whose types differ.
func Compose3[A, B, C, D any](f func(A) B, g func(B) C, h func(C) D) func(A) D {
	return func(a A) D {
		return h(g(f(a)))
	}
}
