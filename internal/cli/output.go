package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

type outputFormat string

const (
	outputText outputFormat = "text"
	outputJSON outputFormat = "json"
	outputYAML outputFormat = "yaml"
)

var allOutputFormats = []string{string(outputText), string(outputJSON), string(outputYAML)}

func parseOutputFormat(s string) (outputFormat, error) {
	switch f := outputFormat(s); f {
	case outputText, outputJSON, outputYAML:
		return f, nil
	}

	return "", fmt.Errorf("unknown output format %q, one of: %v", s, allOutputFormats)
}

// encode writes v as JSON or YAML.
func encode(w io.Writer, format outputFormat, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		err := enc.Encode(v)
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}

	case outputYAML:
		b, err := yaml.MarshalWithOptions(v, yaml.Indent(2))
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		_, err = w.Write(b)
		if err != nil {
			return fmt.Errorf("write: %w", err)
		}

	case outputText:
		return fmt.Errorf("encode: text output has no encoding")
	}

	return nil
}
