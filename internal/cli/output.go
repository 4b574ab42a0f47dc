package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"sigs.k8s.io/yaml"

	"shoulders/internal/platform"
)

// OutputFormat represents the supported output formats for CLI commands.
type OutputFormat string

const (
	// OutputFormatTable formats output as a kubectl-style plain table
	OutputFormatTable OutputFormat = "table"
	// OutputFormatJSON formats output as indented JSON
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML formats output as YAML
	OutputFormatYAML OutputFormat = "yaml"
)

// ValidOutputFormats contains all valid output format values.
var ValidOutputFormats = []OutputFormat{
	OutputFormatTable,
	OutputFormatJSON,
	OutputFormatYAML,
}

// ValidateOutputFormat validates that the given format string is a supported output format.
func ValidateOutputFormat(format string) error {
	switch OutputFormat(format) {
	case OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
		return nil
	default:
		return platform.InvalidInput("unsupported output format: %q (valid: table, json, yaml)", format)
	}
}

// Printer renders command results in one output format.
type Printer struct {
	out       io.Writer
	format    OutputFormat
	noHeaders bool
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer, format OutputFormat, noHeaders bool) *Printer {
	return &Printer{out: out, format: format, noHeaders: noHeaders}
}

// Out returns the writer the printer writes to.
func (p *Printer) Out() io.Writer {
	return p.out
}

// Structured reports whether the output is machine-readable.
func (p *Printer) Structured() bool {
	return p.format == OutputFormatJSON || p.format == OutputFormatYAML
}

// Print writes data as JSON or YAML. In table mode render fills a table
// instead; a nil render prints data with %v.
func (p *Printer) Print(data any, render func(t *Table)) error {
	switch p.format {
	case OutputFormatJSON:
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		_, err = fmt.Fprintln(p.out, string(out))
		return err
	case OutputFormatYAML:
		out, err := yaml.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to convert to YAML: %w", err)
		}
		_, err = p.out.Write(out)
		return err
	default:
		if render == nil {
			_, err := fmt.Fprintf(p.out, "%v\n", data)
			return err
		}
		t := NewTable(p.out, p.noHeaders)
		render(t)
		t.Render()
		return nil
	}
}

// Message prints a human-readable line. It is suppressed for structured
// output so that stdout stays parseable.
func (p *Printer) Message(format string, args ...any) {
	if p.Structured() {
		return
	}
	fmt.Fprintf(p.out, format+"\n", args...)
}
