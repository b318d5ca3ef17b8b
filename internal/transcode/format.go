package transcode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/theirongolddev/budgetflow/internal/model"
)

// Format is a supported file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var (
	// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX.
	ErrUnsupportedFormat = errors.New("transcode: unsupported file format")
	// ErrMissingHeader is returned when no known column header is found.
	ErrMissingHeader = errors.New("transcode: missing header row")
)

// ParseFormat maps a user-supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "csv":
		return FormatCSV, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// DefaultFilename is the fixed export file name for the format.
func (f Format) DefaultFilename() string {
	return "budgetflow_data." + string(f)
}

// DetectFormat sniffs content, falling back to the file extension.
func DetectFormat(name string, content []byte) (Format, error) {
	m := mimetype.Detect(content)
	switch {
	case m.Is(xlsxMIME), m.Is("application/zip"):
		return FormatXLSX, nil
	case m.Is("text/csv"):
		return FormatCSV, nil
	}

	if f, err := ParseFormat(filepath.Ext(name)); err == nil {
		return f, nil
	}
	if m.Is("text/plain") {
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrUnsupportedFormat, filepath.Base(name), m.String())
}

// Encode writes scenarios in the given format.
func Encode(w io.Writer, f Format, scenarios []model.Scenario) error {
	rows := Flatten(scenarios)
	switch f {
	case FormatCSV:
		return WriteCSV(w, rows)
	case FormatXLSX:
		return WriteXLSX(w, rows)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// Decode reads all of r and parses it as scenarios. name is used for the
// extension fallback. Nothing is returned unless the whole input parses.
func Decode(r io.Reader, name string, newID model.IDFunc) ([]model.Scenario, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(name), err)
	}
	data := buf.Bytes()

	f, err := DetectFormat(name, data)
	if err != nil {
		return nil, err
	}

	var records []Record
	switch f {
	case FormatCSV:
		records, err = ReadCSV(data)
	case FormatXLSX:
		records, err = ReadXLSX(data)
	}
	if err != nil {
		return nil, err
	}
	return Unflatten(records, newID), nil
}
