// Package graphfile reads graph descriptions into a graphview.MemoryGraph.
//
// The format is the same in JSON and YAML:
//
//	{
//	  "nodes": [{"id": "a", "label": "A", "x": 0, "y": 0, "size": 2}],
//	  "edges": [{"source": "a", "target": "b"}]
//	}
//
// Edges without an id are numbered "e0", "e1", ... in file order.
package graphfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/graphview"
	"gopkg.in/yaml.v3"
)

// Format selects the decoder.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ErrUnknownFormat is returned for file extensions other than .json, .yaml
// and .yml.
var ErrUnknownFormat = errors.New("unknown graph file format")

// Graph is the file representation of a graph.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// Node is the file representation of a node.
type Node struct {
	ID     string  `json:"id" yaml:"id"`
	Label  string  `json:"label,omitempty" yaml:"label,omitempty"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Size   float64 `json:"size,omitempty" yaml:"size,omitempty"`
	Type   string  `json:"type,omitempty" yaml:"type,omitempty"`
	Color  string  `json:"color,omitempty" yaml:"color,omitempty"`
	Hidden bool    `json:"hidden,omitempty" yaml:"hidden,omitempty"`
}

// Edge is the file representation of an edge.
type Edge struct {
	ID     string  `json:"id,omitempty" yaml:"id,omitempty"`
	Source string  `json:"source" yaml:"source"`
	Target string  `json:"target" yaml:"target"`
	Label  string  `json:"label,omitempty" yaml:"label,omitempty"`
	Type   string  `json:"type,omitempty" yaml:"type,omitempty"`
	Color  string  `json:"color,omitempty" yaml:"color,omitempty"`
	Size   float64 `json:"size,omitempty" yaml:"size,omitempty"`
	Hidden bool    `json:"hidden,omitempty" yaml:"hidden,omitempty"`
}

// DefaultNodeSize is used for nodes without a size.
const DefaultNodeSize = 1

// FormatOf returns the format for path's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return "", errors.WithHint(
		errors.Wrapf(ErrUnknownFormat, "%s", path),
		"use a .json, .yaml or .yml file",
	)
}

// ReadFile reads the graph file at path, choosing the format by extension.
func ReadFile(path string) (*graphview.MemoryGraph, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	g, err := Read(f, format)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return g, nil
}

// Read decodes a graph in the given format and builds a MemoryGraph.
func Read(r io.Reader, format Format) (*graphview.MemoryGraph, error) {
	var data Graph
	switch format {
	case JSON:
		if err := json.NewDecoder(r).Decode(&data); err != nil {
			return nil, errors.Wrap(err, "decode json")
		}
	case YAML:
		if err := yaml.NewDecoder(r).Decode(&data); err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Wrap(err, "decode yaml")
		}
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", string(format))
	}
	return data.Build()
}

// Build converts the file representation into a MemoryGraph. Edges without
// an id are numbered "e<index>" in file order, skipping ids used elsewhere
// in the file.
func (d Graph) Build() (*graphview.MemoryGraph, error) {
	g := graphview.NewMemoryGraph()
	for _, n := range d.Nodes {
		size := n.Size
		if size <= 0 {
			size = DefaultNodeSize
		}
		err := g.AddNode(&graphview.Node{
			ID:     n.ID,
			Label:  n.Label,
			X:      n.X,
			Y:      n.Y,
			Size:   size,
			Type:   n.Type,
			Color:  n.Color,
			Hidden: n.Hidden,
		})
		if err != nil {
			return nil, err
		}
	}
	taken := make(map[string]bool, len(d.Edges))
	for _, e := range d.Edges {
		if e.ID != "" {
			taken[e.ID] = true
		}
	}
	for i, e := range d.Edges {
		id := e.ID
		if id == "" {
			id = freeEdgeID(taken, i)
		}
		err := g.AddEdge(&graphview.Edge{
			ID:     id,
			Source: e.Source,
			Target: e.Target,
			Label:  e.Label,
			Type:   e.Type,
			Color:  e.Color,
			Size:   e.Size,
			Hidden: e.Hidden,
		})
		if err != nil {
			return nil, err
		}
	}
	return g, nil
}

// freeEdgeID returns "e<i>" for edge i without an id, or "e<i>_<k>" with the
// smallest k not in taken, and marks the result taken.
func freeEdgeID(taken map[string]bool, i int) string {
	id := fmt.Sprintf("e%d", i)
	for k := 1; taken[id]; k++ {
		id = fmt.Sprintf("e%d_%d", i, k)
	}
	taken[id] = true
	return id
}
