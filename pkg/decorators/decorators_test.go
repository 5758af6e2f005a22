// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package decorators

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func double(_ context.Context, n int) (int, error) {
	return n * 2, nil
}

func failWith(err error) func(context.Context, int) (int, error) {
	return func(_ context.Context, n int) (int, error) {
		return n, err
	}
}

func capture() (*memory.Handler, *log.Logger) {
	h := memory.New()
	return h, &log.Logger{Handler: h, Level: log.DebugLevel}
}

type adder struct{ by int }

func (a *adder) add(_ context.Context, n int) (int, error) { return n + a.by, nil }

func TestFuncName(t *testing.T) {
	a := &adder{}
	assert.Equal(t, "decorators.double", FuncName(double))
	assert.Equal(t, "decorators.(*adder).add", FuncName(a.add))
	assert.Equal(t, "<nil>", FuncName(nil))
	assert.Equal(t, "<nil>", FuncName(42))

	var fn func()
	assert.Equal(t, "<nil>", FuncName(fn))
}

func TestDeprecated(t *testing.T) {
	ctx := context.Background()
	h, logger := capture()

	fn := Deprecated(double, "", "use triple", WithLogger(logger))
	for i := 1; i <= 2; i++ {
		got, err := fn(ctx, i)
		require.NoError(t, err)
		assert.Equal(t, i*2, got)
	}

	require.Len(t, h.Entries, 2, "warns on every call")
	assert.Equal(t, log.WarnLevel, h.Entries[0].Level)
	assert.Equal(t, "Call to deprecated function :: [decorators.double] (use triple)", h.Entries[0].Message)
}

func TestDeprecationMessage(t *testing.T) {
	assert.Equal(t, "Call to deprecated function :: [old]", DeprecationMessage("old", ""))
	assert.Equal(t, "Call to deprecated function :: [old] (why)", DeprecationMessage("old", "why"))
}

func TestWatchFor(t *testing.T) {
	ctx := context.Background()

	t.Run("matching error is tagged", func(t *testing.T) {
		fn, err := WatchFor(failWith(exec.ErrNotFound), "lookup", exec.ErrNotFound)
		require.NoError(t, err)

		_, err = fn(ctx, 1)
		var we *WatchedError
		require.ErrorAs(t, err, &we)
		assert.Equal(t, "lookup", we.Func)
		assert.ErrorIs(t, err, exec.ErrNotFound)
		assert.Equal(t, "(- lookup -): "+exec.ErrNotFound.Error(), err.Error())
	})

	t.Run("wrapped error matches", func(t *testing.T) {
		wrapped := &fs.PathError{Op: "open", Path: "x", Err: fs.ErrNotExist}
		fn, err := WatchFor(failWith(wrapped), "open", fs.ErrNotExist)
		require.NoError(t, err)

		_, err = fn(ctx, 1)
		assert.True(t, strings.HasPrefix(err.Error(), "(- open -): "))
	})

	t.Run("other errors pass through", func(t *testing.T) {
		boom := errors.New("boom")
		fn, err := WatchFor(failWith(boom), "", exec.ErrNotFound)
		require.NoError(t, err)

		_, err = fn(ctx, 1)
		assert.Same(t, boom, err)
	})

	t.Run("success untouched", func(t *testing.T) {
		fn, err := WatchFor(double, "", exec.ErrNotFound)
		require.NoError(t, err)

		got, err := fn(ctx, 4)
		assert.NoError(t, err)
		assert.Equal(t, 8, got)
	})

	t.Run("nil target", func(t *testing.T) {
		_, err := WatchFor(double, "", exec.ErrNotFound, nil)
		assert.ErrorIs(t, err, ErrBadSignal)
	})
}

func TestCheckThat(t *testing.T) {
	ctx := context.Background()
	positive := func(n int) bool { return n > 0 }

	calls := 0
	counting := func(_ context.Context, n int) (int, error) {
		calls++
		return n, nil
	}

	fn := CheckThat(counting, "count", positive, "")
	got, err := fn(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	_, err = fn(ctx, -1)
	assert.ErrorIs(t, err, ErrAssertion)
	assert.EqualError(t, err, "[count]: assertion failed")
	assert.Equal(t, 1, calls, "fn must not run when the assertion fails")

	fn = CheckThat(counting, "count", positive, "need a positive number")
	_, err = fn(ctx, 0)
	assert.ErrorIs(t, err, ErrAssertion)
	assert.EqualError(t, err, "need a positive number")

	fn = CheckThat(counting, "count", nil, "")
	_, err = fn(ctx, -5)
	assert.NoError(t, err)
}

func TestParseUses(t *testing.T) {
	uses, err := ParseUses(" Display, log ,")
	require.NoError(t, err)
	assert.Equal(t, []Use{Display, Log}, uses)

	uses, err = ParseUses("")
	require.NoError(t, err)
	assert.Empty(t, uses)

	_, err = ParseUses("display,return")
	assert.ErrorIs(t, err, ErrBadUse)
}

func TestTimeIt(t *testing.T) {
	ctx := context.Background()

	t.Run("display", func(t *testing.T) {
		var buf bytes.Buffer
		h, logger := capture()
		fn, err := TimeIt(double, "dbl", []Use{Display}, WithWriter(&buf), WithLogger(logger))
		require.NoError(t, err)

		got, err := fn(ctx, 21)
		require.NoError(t, err)
		assert.Equal(t, 42, got)

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], "dbl started @ "))
		assert.True(t, strings.HasPrefix(lines[1], "dbl ended @ "))
		assert.Empty(t, h.Entries)
	})

	t.Run("log", func(t *testing.T) {
		var buf bytes.Buffer
		h, logger := capture()
		fn, err := TimeIt(double, "", []Use{Log}, WithWriter(&buf), WithLogger(logger))
		require.NoError(t, err)

		_, err = fn(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, buf.String())
		require.Len(t, h.Entries, 2)
		assert.Equal(t, log.InfoLevel, h.Entries[0].Level)
		assert.Equal(t, "decorators.double", h.Entries[0].Fields.Get("func"))
		assert.Contains(t, h.Entries[1].Message, "ended @")
		assert.NotNil(t, h.Entries[1].Fields.Get("duration"))
	})

	t.Run("error still reported", func(t *testing.T) {
		var buf bytes.Buffer
		boom := errors.New("boom")
		fn, err := TimeIt(failWith(boom), "f", []Use{Display}, WithWriter(&buf))
		require.NoError(t, err)

		_, err = fn(ctx, 1)
		assert.Same(t, boom, err)
		assert.Contains(t, buf.String(), "f ended @")
	})

	t.Run("bad use", func(t *testing.T) {
		_, err := TimeIt(double, "", []Use{"return"})
		assert.ErrorIs(t, err, ErrBadUse)
	})
}

func TestTimed(t *testing.T) {
	slow := func(_ context.Context, d time.Duration) (string, error) {
		time.Sleep(d)
		return "done", nil
	}

	got, err := Timed(slow)(context.Background(), 5*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "done", got.Value)
	assert.GreaterOrEqual(t, got.Elapsed, 5*time.Millisecond)
}

// steppingClock returns successive instants spaced by the given steps.
func steppingClock(steps ...time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	i := 0
	return func() time.Time {
		if i > 0 && i-1 < len(steps) {
			now = now.Add(steps[i-1])
		}
		i++
		return now
	}
}

func TestAverageRuntime(t *testing.T) {
	ctx := context.Background()
	a := NewAverageRuntime(double)
	// begin/end pairs: 10ms, then 30ms, then 20ms.
	a.now = steppingClock(10*time.Millisecond, 0, 30*time.Millisecond, 0, 20*time.Millisecond)

	got, avg, err := a.Call(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, got)
	assert.Equal(t, 10*time.Millisecond, avg)

	_, avg, _ = a.Call(ctx, 2)
	assert.Equal(t, 20*time.Millisecond, avg)

	_, avg, _ = a.Call(ctx, 2)
	assert.Equal(t, 20*time.Millisecond, avg)
	assert.Equal(t, int64(3), a.Calls())
	assert.Equal(t, 20*time.Millisecond, a.Average())

	a.Reset()
	assert.Zero(t, a.Calls())
	assert.Zero(t, a.Average())
}

func TestAverageRuntime_CountsFailures(t *testing.T) {
	boom := errors.New("boom")
	a := NewAverageRuntime(failWith(boom))

	_, _, err := a.Call(context.Background(), 1)
	assert.Same(t, boom, err)
	assert.Equal(t, int64(1), a.Calls())
}

func TestDecoratorsCompose(t *testing.T) {
	ctx := context.Background()
	h, logger := capture()

	inner, err := WatchFor(failWith(exec.ErrNotFound), "run", exec.ErrNotFound)
	require.NoError(t, err)
	fn := Deprecated(CheckThat(inner, "run", func(n int) bool { return n != 0 }, ""), "run", "", WithLogger(logger))

	_, err = fn(ctx, 0)
	assert.ErrorIs(t, err, ErrAssertion)

	_, err = fn(ctx, 1)
	var we *WatchedError
	assert.ErrorAs(t, err, &we)
	assert.Len(t, h.Entries, 2)
}
