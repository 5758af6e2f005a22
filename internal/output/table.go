// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strconv"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"

	"github.com/staranto/defunctgo/internal/config"
)

// Palette holds the lipgloss colors of a colored table.
type Palette struct {
	Title string
	Even  string
	Odd   string
}

// TableOptions controls TableWriter.
type TableOptions struct {
	Color   bool
	Titles  bool
	Padding int
	Palette Palette
}

// ConfiguredTableOptions returns options with padding and palette taken from
// the config file (padding, colors.title, colors.even, colors.odd).
func ConfiguredTableOptions(color, titles bool) TableOptions {
	pad, _ := config.GetInt("padding", 2)
	title, _ := config.GetString("colors.title", "#f6be00")
	even, _ := config.GetString("colors.even", "#ffffff")
	odd, _ := config.GetString("colors.odd", "#00c8f0")
	log.Debugf("table: padding=%d colors=%s/%s/%s", pad, title, even, odd)

	return TableOptions{
		Color:   color,
		Titles:  titles,
		Padding: pad,
		Palette: Palette{Title: title, Even: even, Odd: odd},
	}
}

// styleFunc picks the style of each cell: header, even or odd row, padded
// left except in the first column.
func (o TableOptions) styleFunc() table.StyleFunc {
	base := lipgloss.NewStyle().Align(lipgloss.Left)
	header, even, odd := base, base, base
	if o.Color {
		header = header.Foreground(lipgloss.Color(o.Palette.Title))
		even = even.Foreground(lipgloss.Color(o.Palette.Even))
		odd = odd.Foreground(lipgloss.Color(o.Palette.Odd))
	}

	return func(row, col int) lipgloss.Style {
		style := odd
		switch {
		case row == table.HeaderRow:
			style = header
		case row%2 == 0:
			style = even
		}
		if col > 0 {
			style = style.PaddingLeft(o.Padding)
		}
		return style
	}
}

// TableWriter renders columns of resultSet as a borderless table. Nothing is
// written for an empty result set.
func TableWriter(resultSet []map[string]interface{}, columns []string, opts TableOptions, w io.Writer) error {
	if len(resultSet) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(resultSet))
	for _, result := range resultSet {
		row := make([]string, 0, len(columns))
		for _, col := range columns {
			row = append(row, InterfaceToString(result[col], "-"))
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		StyleFunc(opts.styleFunc()).
		Rows(rows...)

	if opts.Titles {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(columns...).BorderHeader(false)
	}
	_, err := fmt.Fprintln(w, t)
	return err
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		// No column needs fractions.
		return fmt.Sprintf("%.0f", value)
	case bool:
		return strconv.FormatBool(value)
	case fmt.Stringer:
		return value.String()
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}
