// Package report renders screening results as JSON artifacts, xlsx
// workbooks and plain-text reports.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spigell/ats-screener/internal/scoring"
	"github.com/spigell/ats-screener/internal/screening"
)

// Marshal encodes v as indented JSON and checks it against schema.
func Marshal(v any, schema Schema) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", schema, err)
	}

	if err := Validate(schema, buf.Bytes()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON writes a MatchResult or a BatchReport to w after validating it.
func WriteJSON(w io.Writer, v any) error {
	schema, err := schemaFor(v)
	if err != nil {
		return err
	}

	data, err := Marshal(v, schema)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteFile writes v as JSON to path.
func WriteFile(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	if err := WriteJSON(file, v); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return file.Close()
}

// DumpToTmpFile writes v as JSON to a new temp file and returns its name.
func DumpToTmpFile(v any) (string, error) {
	file, err := os.CreateTemp("", "ats_result_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := WriteJSON(file, v); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func schemaFor(v any) (Schema, error) {
	switch v.(type) {
	case scoring.MatchResult, *scoring.MatchResult:
		return SchemaMatchResult, nil
	case screening.BatchReport, *screening.BatchReport:
		return SchemaBatchReport, nil
	default:
		return "", fmt.Errorf("no schema for %T", v)
	}
}
