package display

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/homeset/pkg/errors"
)

// Format represents the output format type
type Format int

const (
	// FormatAuto picks term or text based on terminal capabilities
	FormatAuto Format = iota
	// FormatTerm renders rich terminal output
	FormatTerm
	// FormatText renders plain text
	FormatText
	// FormatJSON renders machine-readable JSON
	FormatJSON
	// FormatYAML renders machine-readable YAML
	FormatYAML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTerm:
		return "term"
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// ParseFormat converts a flag value into a Format
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "auto":
		return FormatAuto, nil
	case "term":
		return FormatTerm, nil
	case "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml":
		return FormatYAML, nil
	default:
		return FormatAuto, errors.Newf(errors.ErrInvalidInput,
			"unknown format %q (want auto, term, text, json or yaml)", s)
	}
}

// Resolve maps FormatAuto to a concrete format for the current terminal
func (f Format) Resolve() Format {
	if f != FormatAuto {
		return f
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatText
	}
	if termenv.EnvNoColor() {
		return FormatText
	}
	return FormatTerm
}
