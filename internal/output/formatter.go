// Package output renders generation results, profile reports, and lint
// findings for terminals and machine consumers.
package output

import (
	"errors"
	"fmt"
	"io"
)

// ErrUnknownFormat reports a format name outside SupportedFormats.
var ErrUnknownFormat = errors.New("unknown format")

// Formatter renders one payload to its writer. Formatters reject payload
// types they cannot render.
type Formatter interface {
	Format(v any) error
}

// Options tune formatter construction.
type Options struct {
	// Indent pretty-prints JSON output.
	Indent bool
	// Color enables ANSI colors in table output.
	Color bool
}

// NewFormatter returns a formatter for the given format name.
func NewFormatter(format string, w io.Writer, opts Options) (Formatter, error) {
	switch format {
	case "table":
		f := NewTableFormatter(w)
		f.EnableColor = opts.Color
		return f, nil
	case "json":
		return NewJSONFormatter(w, opts.Indent), nil
	case "yaml":
		return NewYAMLFormatter(w), nil
	case "sarif":
		return NewSARIFFormatter(w), nil
	default:
		return nil, fmt.Errorf(
			"%w: %s (supported: %v)",
			ErrUnknownFormat, format, SupportedFormats(),
		)
	}
}

// SupportedFormats returns the list of available format names.
func SupportedFormats() []string {
	return []string{"table", "json", "yaml", "sarif"}
}
