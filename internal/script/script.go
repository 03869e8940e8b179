// Package script reads action scripts: YAML or JSON lists of editor actions
// replayed against a document.
package script

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/folium/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Script is a decoded action script.
type Script struct {
	// Document is the default target document, if the script names one.
	Document string
	Actions  []domain.Action
}

// file is the object form of a script. A bare list is also accepted.
type file struct {
	Document string           `yaml:"document" json:"document"`
	Actions  []map[string]any `yaml:"actions" json:"actions"`
}

// Load reads and decodes the script at path. Files ending in .json are read
// as JSON, anything else as YAML.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	format := FormatYAML
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = FormatJSON
	}
	s, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Format selects the script decoder.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// Decode reads a script in the given format.
func Decode(r io.Reader, format Format) (*Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var f file
	if format == FormatJSON {
		err = decodeJSON(data, &f)
	} else {
		err = decodeYAML(data, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidAction, err)
	}

	actions, err := domain.DecodeActions(f.Actions)
	if err != nil {
		return nil, err
	}
	return &Script{Document: f.Document, Actions: actions}, nil
}

func decodeJSON(data []byte, f *file) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &f.Actions)
	}
	return json.Unmarshal(data, f)
}

func decodeYAML(data []byte, f *file) error {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return err
	}
	if len(node.Content) == 0 {
		return nil
	}
	if node.Content[0].Kind == yaml.SequenceNode {
		return node.Content[0].Decode(&f.Actions)
	}
	return node.Content[0].Decode(f)
}
