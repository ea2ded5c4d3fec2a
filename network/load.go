// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format names accepted by Decode.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Load reads a topology file, choosing the decoder by extension
// (.json, .yaml, .yml), and returns a validated Graph.
func Load(path string) (*Graph, error) {
	format := ""
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		format = FormatJSON
	case ".yaml", ".yml":
		format = FormatYAML
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("network: open %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f, format)
}

// Decode parses a topology document in the given format and builds it.
// A reach with weight 0 is treated as weight 1.
func Decode(r io.Reader, format string) (*Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("network: read topology: %w", err)
	}
	var doc File
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("network: decode %s topology: %w", format, err)
	}

	return Build(doc)
}

// Build constructs and validates a Graph from an in-memory document.
func Build(doc File) (*Graph, error) {
	n := NewGraph()
	for _, r := range doc.Reaches {
		if r.Weight == 0 {
			r.Weight = 1
		}
		if err := n.AddReach(r); err != nil {
			return nil, err
		}
	}
	for _, s := range doc.Sites {
		if err := n.AddSite(s); err != nil {
			return nil, err
		}
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}

	return n, nil
}
