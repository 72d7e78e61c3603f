// Package dataset reads row datasets from JSON, YAML and TOML files.
package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/rowrender"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedKind = errors.New("unsupported dataset file")
	ErrNestedValue     = errors.New("nested value")
)

// Kind is a dataset file encoding.
type Kind string

const (
	JSON Kind = "json"
	YAML Kind = "yaml"
	TOML Kind = "toml"
)

// Stdin is the path that reads a JSON dataset from standard input.
const Stdin = "-"

// KindOf picks the encoding from the file extension.
func KindOf(path string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedKind, path)
	}
}

// Load reads the dataset at path. An empty path is the absent dataset;
// [Stdin] reads JSON from os.Stdin.
func Load(path string) (rowrender.Dataset, error) {
	switch path {
	case "":
		return nil, nil
	case Stdin:
		return Read(os.Stdin, JSON)
	}
	kind, err := KindOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	rows, err := Decode(data, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to decode dataset %s: %w", path, err)
	}
	return rows, nil
}

// Read decodes a dataset from r.
func Read(r io.Reader, kind Kind) (rowrender.Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(data, kind)
}

// Decode parses a dataset. JSON and YAML documents are a list of objects;
// TOML documents hold a "rows" array of tables. A null document (or a TOML
// document without rows) is the absent dataset. Scalar values are converted
// to text; nested objects and lists are rejected with [ErrNestedValue].
func Decode(data []byte, kind Kind) (rowrender.Dataset, error) {
	var raw []map[string]any
	switch kind {
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
	case YAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case TOML:
		var doc struct {
			Rows []map[string]any `toml:"rows"`
		}
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		raw = doc.Rows
	default:
		return nil, fmt.Errorf("%w: kind %q", ErrUnsupportedKind, kind)
	}
	return toDataset(raw)
}

func toDataset(raw []map[string]any) (rowrender.Dataset, error) {
	if raw == nil {
		return nil, nil
	}
	rows := make(rowrender.Dataset, 0, len(raw))
	for i, m := range raw {
		row := make(rowrender.Row, len(m))
		for k, v := range m {
			s, err := scalar(v)
			if err != nil {
				return nil, fmt.Errorf("row %d field %q: %w", i, k, err)
			}
			row[k] = s
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func scalar(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case json.Number:
		return v.String(), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case map[string]any, map[any]any, []any:
		return "", ErrNestedValue
	case fmt.Stringer:
		return v.String(), nil
	default:
		return fmt.Sprint(v), nil
	}
}
