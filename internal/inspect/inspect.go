// Package inspect renders a loaded file as JSON for the read-only inspect
// view. The document can be narrowed with a JMESPath expression and
// highlighted for the terminal.
package inspect

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/jmespath/go-jmespath"

	"github.com/studiowebux/bl3edit/internal/types"
)

const (
	highlightFormatter = "terminal256"
	highlightStyle     = "monokai"
)

type document struct {
	File  string `json:"file"`
	Kind  string `json:"kind"`
	Model any    `json:"model"`
}

// Document returns the indented JSON form of f
func Document(f types.LoadedFile) (string, error) {
	doc := document{File: f.FileName, Kind: f.Kind.String()}
	switch {
	case f.IsSave():
		doc.Model = f.Save
	case f.IsProfile():
		doc.Model = f.Profile
	default:
		return "", fmt.Errorf("no model loaded for %q", f.FileName)
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s: %w", f.FileName, err)
	}
	return string(out), nil
}

// Query applies a JMESPath expression to a JSON document.
// An empty expression returns the document unchanged.
func Query(jsonStr, expression string) (string, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return jsonStr, nil
	}

	var data any
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}

	jp, err := jmespath.Compile(expression)
	if err != nil {
		return "", fmt.Errorf("invalid JMESPath expression '%s': %w", expression, err)
	}

	result, err := jp.Search(data)
	if err != nil {
		return "", fmt.Errorf("JMESPath search failed: %w", err)
	}

	if result == nil {
		return "null", nil
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	return string(output), nil
}

// IsValidQuery checks if an expression is valid JMESPath syntax
func IsValidQuery(expression string) bool {
	_, err := jmespath.Compile(expression)
	return err == nil
}

// Highlight colours a JSON document for a 256-colour terminal. The input is
// returned as-is when highlighting fails.
func Highlight(jsonStr string) string {
	var sb strings.Builder
	if err := quick.Highlight(&sb, jsonStr, "json", highlightFormatter, highlightStyle); err != nil {
		return jsonStr
	}
	return sb.String()
}

// Render is Document followed by Query
func Render(f types.LoadedFile, expression string) (string, error) {
	doc, err := Document(f)
	if err != nil {
		return "", err
	}
	return Query(doc, expression)
}
