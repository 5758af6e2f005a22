// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package autocache

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// Codec serializes a value of type T to an open artifact and back.
type Codec[T any] interface {
	Encode(v T, w io.Writer) error
	Decode(r io.Reader) (T, error)
}

// binaryOnly is implemented by codecs whose output is not text.
type binaryOnly interface {
	binaryOnly()
}

// Funcs adapts a pair of plain functions to a Codec.
type Funcs[T any] struct {
	EncodeFunc func(v T, w io.Writer) error
	DecodeFunc func(r io.Reader) (T, error)
}

func (f Funcs[T]) Encode(v T, w io.Writer) error {
	if f.EncodeFunc == nil {
		return ErrNotCallable
	}
	return f.EncodeFunc(v, w)
}

func (f Funcs[T]) Decode(r io.Reader) (T, error) {
	if f.DecodeFunc == nil {
		var zero T
		return zero, ErrNotCallable
	}
	return f.DecodeFunc(r)
}

type linesCodec struct{}

// Lines stores a slice of lines. Encode writes the lines back to back without
// adding separators; Decode splits after every "\n" and keeps it, so a value
// produced by Decode round-trips exactly.
func Lines() Codec[[]string] {
	return linesCodec{}
}

func (linesCodec) Encode(v []string, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, line := range v {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func (linesCodec) Decode(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	lines := []string{}
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

type rawCodec struct{}

// Raw stores bytes verbatim.
func Raw() Codec[[]byte] {
	return rawCodec{}
}

func (rawCodec) Encode(v []byte, w io.Writer) error {
	_, err := w.Write(v)
	return err
}

func (rawCodec) Decode(r io.Reader) ([]byte, error) {
	return io.ReadAll(r)
}

type jsonCodec[T any] struct{}

// JSON stores T as a JSON document.
func JSON[T any]() Codec[T] {
	return jsonCodec[T]{}
}

func (jsonCodec[T]) Encode(v T, w io.Writer) error {
	return json.NewEncoder(w).Encode(v)
}

func (jsonCodec[T]) Decode(r io.Reader) (T, error) {
	var v T
	dec := json.NewDecoder(r)
	if err := dec.Decode(&v); err != nil {
		return v, err
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		var zero T
		return zero, ErrTrailingData
	}
	return v, nil
}

type yamlCodec[T any] struct{}

// YAML stores T as a YAML document.
func YAML[T any]() Codec[T] {
	return yamlCodec[T]{}
}

func (yamlCodec[T]) Encode(v T, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func (yamlCodec[T]) Decode(r io.Reader) (T, error) {
	var v T
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&v); err != nil {
		return v, err
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		var zero T
		return zero, ErrTrailingData
	}
	return v, nil
}

type gobCodec[T any] struct{}

// Gob stores T with encoding/gob. It requires Binary modes.
func Gob[T any]() Codec[T] {
	return gobCodec[T]{}
}

func (gobCodec[T]) binaryOnly() {}

func (gobCodec[T]) Encode(v T, w io.Writer) error {
	return gob.NewEncoder(w).Encode(v)
}

func (gobCodec[T]) Decode(r io.Reader) (T, error) {
	var v T
	err := gob.NewDecoder(r).Decode(&v)
	return v, err
}
