// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package decorators

import (
	"io"
	"os"
	"reflect"
	"runtime"
	"strings"

	"github.com/apex/log"
)

type options struct {
	logger log.Interface
	out    io.Writer
}

// Option customizes a decorator.
type Option func(*options)

// WithLogger sets the logger. Default is the apex/log package logger.
func WithLogger(l log.Interface) Option {
	return func(o *options) { o.logger = l }
}

// WithWriter sets where TimeIt's display use writes. Default os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

func newOptions(opts []Option) options {
	o := options{logger: log.Log, out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// FuncName returns the short name of the function fn points at, e.g.
// "pkg.compute" or "pkg.(*T).Method". Closures come out as "pkg.outer.func1".
func FuncName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return "<nil>"
	}
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return "<unknown>"
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}

func nameOr(name string, fn any) string {
	if name != "" {
		return name
	}
	return FuncName(fn)
}
