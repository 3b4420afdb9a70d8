package reports

import (
	"fmt"
	"strings"
	"time"

	"aura/internal/tracker"
)

// Format is an export document format.
type Format string

const (
	JSON     Format = "json"
	CSV      Format = "csv"
	Markdown Format = "markdown"
)

// ParseFormat accepts json, csv, markdown or md.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return JSON, nil
	case "csv":
		return CSV, nil
	case "markdown", "md":
		return Markdown, nil
	}
	return "", fmt.Errorf("invalid format %q (want json, csv or markdown)", s)
}

// Extension returns the file extension for f, with the dot.
func (f Format) Extension() string {
	switch f {
	case CSV:
		return ".csv"
	case Markdown:
		return ".md"
	default:
		return ".json"
	}
}

// Filename is the suggested export file name for f on day t.
func Filename(f Format, t time.Time) string {
	name := tracker.ExportFilename(t)
	return strings.TrimSuffix(name, ".json") + f.Extension()
}

// Render encodes r in format f.
func Render(f Format, r *Report) ([]byte, error) {
	switch f {
	case CSV:
		return FormatCSV(r)
	case Markdown:
		return []byte(FormatMarkdown(r)), nil
	default:
		return FormatJSON(r.Entries)
	}
}
