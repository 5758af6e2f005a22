// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package autocache

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Mode controls whether an artifact is accessed as text or as raw bytes.
type Mode int

const (
	// Text reads require valid UTF-8 and normalize line endings to "\n".
	Text Mode = iota
	// Binary passes bytes through untouched.
	Binary
)

func (m Mode) String() string {
	switch m {
	case Text:
		return "text"
	case Binary:
		return "binary"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func (m Mode) valid() bool {
	return m == Text || m == Binary
}

// ParseMode accepts "t", "text", "b" or "binary".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "t", "text":
		return Text, nil
	case "b", "binary":
		return Binary, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadMode, s)
}

// reader adapts r for decoding under the mode.
func (m Mode) reader(r io.Reader) (io.Reader, error) {
	if m == Binary {
		return r, nil
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(b) {
		return nil, ErrNotText
	}

	// Universal newlines: CRLF first, then any lone CR.
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	b = bytes.ReplaceAll(b, []byte("\r"), []byte("\n"))
	return bytes.NewReader(b), nil
}

// writer adapts w for encoding under the mode. In Text mode nothing reaches
// w until flush, which refuses bytes that are not valid UTF-8.
func (m Mode) writer(w io.Writer) (io.Writer, func() error) {
	if m == Binary {
		return w, func() error { return nil }
	}

	var buf bytes.Buffer
	return &buf, func() error {
		if !utf8.Valid(buf.Bytes()) {
			return ErrNotText
		}
		_, err := w.Write(buf.Bytes())
		return err
	}
}
