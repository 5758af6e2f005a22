// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package funct

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompose(t *testing.T) {
	inc := func(x int) int { return x + 1 }
	dbl := func(x int) int { return x * 2 }

	assert.Equal(t, 5, Compose[int]()(5))
	assert.Equal(t, 12, Compose(inc, dbl)(5))
	assert.Equal(t, 11, Compose(dbl, inc)(5))
}

func TestCompose2And3(t *testing.T) {
	inc := func(x int) int { return x + 1 }
	suffix := func(s string) string { return s + " got funct" }

	assert.Equal(t, "69", Compose2(inc, strconv.Itoa)(68))
	assert.Equal(t, "69 got funct", Compose3(inc, strconv.Itoa, suffix)(68))
}

func TestPartials(t *testing.T) {
	sub := func(a, b int) int { return a - b }
	assert.Equal(t, 7, LPartial(sub, 10)(3))
	assert.Equal(t, -7, RPartial(sub, 10)(3))

	join := func(parts ...string) string { return strings.Join(parts, "/") }
	assert.Equal(t, "usr/local/bin", LPartialN(join, "usr", "local")("bin"))
	assert.Equal(t, "tmp/usr/local", RPartialN(join, "usr", "local")("tmp"))
	assert.Equal(t, "usr/local", LPartialN(join, "usr", "local")())
}

func TestPartialN_FixedArgsAreCopied(t *testing.T) {
	fixed := []int{1, 2}
	sum := func(xs ...int) int {
		n := 0
		for _, x := range xs {
			n += x
		}
		return n
	}
	f := LPartialN(sum, fixed...)
	fixed[0] = 100
	assert.Equal(t, 6, f(3))
	assert.Equal(t, 6, f(3), "repeat calls must not accumulate")
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name string
		curr int
		tot  int
		opts []ProgressOption
		want string
	}{
		{
			name: "default first step",
			curr: 0, tot: 10,
			want: "[" + strings.Repeat("#", 7) + "@" + strings.Repeat("=", 72) + "](10.00%)",
		},
		{
			name: "narrow",
			curr: 1, tot: 4,
			opts: []ProgressOption{WithWidth(10)},
			want: "[####@=====](50.00%)",
		},
		{
			name: "last step has no current mark",
			curr: 3, tot: 4,
			opts: []ProgressOption{WithWidth(10)},
			want: "[#########](100.00%)",
		},
		{
			name: "no percent and custom marks",
			curr: 0, tot: 2,
			opts: []ProgressOption{WithWidth(6), WithPercent(false), WithBar("*"), WithCurrent(">"), WithEmpty(".")},
			want: "[**>...]",
		},
		{
			name: "zero total is finished",
			curr: 0, tot: 0,
			opts: []ProgressOption{WithWidth(4)},
			want: "[###](100.00%)",
		},
		{
			name: "tiny progress clamps the bar",
			curr: 0, tot: 100,
			opts: []ProgressOption{WithWidth(10), WithPercent(false)},
			want: "[@" + strings.Repeat("=", 10) + "]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Progress(tt.curr, tt.tot, tt.opts...))
		})
	}
}

func TestProgress_Spinner(t *testing.T) {
	frames := []string{"|", "/", "-", "\\"}
	for i := 0; i < 6; i++ {
		got := Progress(i, 100, WithWidth(10), WithPercent(false), WithSpinner(frames...))
		assert.Contains(t, got, frames[i%len(frames)], fmt.Sprintf("step %d", i))
	}
}
