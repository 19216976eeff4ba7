// Package output writes command results as a table, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Formats understood by Printer
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Row is a record that can be printed as one line of a table
type Row interface {
	Header() []string
	Fields() []string
}

// Describer is a record with a multi-line detail view
type Describer interface {
	Describe() string
}

// Printer writes records to w in the configured format
type Printer struct {
	w      io.Writer
	format string
}

// NewPrinter returns a printer for format, which must be one of the Format
// constants
func NewPrinter(w io.Writer, format string) (*Printer, error) {
	switch format {
	case FormatTable, FormatJSON, FormatYAML:
	case "":
		format = FormatTable
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
	return &Printer{w: w, format: format}, nil
}

// Format returns the output format
func (p *Printer) Format() string {
	return p.format
}

// Print writes items. Tables get a header line followed by one line per
// item; JSON and YAML get the items as a list.
func Print[T Row](p *Printer, items []T) error {
	switch p.format {
	case FormatJSON:
		return p.json(items)
	case FormatYAML:
		return p.yaml(items)
	}

	if len(items) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(items[0].Header(), "\t"))
	for _, item := range items {
		fmt.Fprintln(tw, strings.Join(item.Fields(), "\t"))
	}
	return tw.Flush()
}

// PrintDetail writes a single record. Tables use its detail view; JSON and
// YAML print the record as an object rather than a one-element list.
func (p *Printer) PrintDetail(item Describer) error {
	switch p.format {
	case FormatJSON:
		return p.json(item)
	case FormatYAML:
		return p.yaml(item)
	}
	_, err := io.WriteString(p.w, item.Describe())
	return err
}

func (p *Printer) json(v interface{}) error {
	encoder := json.NewEncoder(p.w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func (p *Printer) yaml(v interface{}) error {
	encoder := yaml.NewEncoder(p.w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}
