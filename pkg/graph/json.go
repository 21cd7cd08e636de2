package graph

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ha1tch/edgeroute/pkg/geom"
)

// jsonGraph is the JSON representation of a graph.
type jsonGraph struct {
	Name        string     `json:"name,omitempty"`
	Description string     `json:"description,omitempty"`
	Nodes       []jsonNode `json:"nodes"`
	Edges       []jsonEdge `json:"edges"`
}

type jsonNode struct {
	ID       string      `json:"id"`
	Label    string      `json:"label,omitempty"`
	Type     string      `json:"type,omitempty"`
	Priority string      `json:"priority,omitempty"`
	Status   string      `json:"status,omitempty"`
	Progress interface{} `json:"progress,omitempty"` // percentage or {value,min,max}
	X        *float64    `json:"x,omitempty"`
	Y        *float64    `json:"y,omitempty"`
}

type jsonEdge struct {
	ID     string   `json:"id,omitempty"`
	From   string   `json:"from"`
	To     string   `json:"to"`
	Label  string   `json:"label,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
}

// DefaultWeight is the weight of an edge that does not specify one.
const DefaultWeight = 1.0

// ParseJSON parses a graph from JSON.
func ParseJSON(data []byte) (*Graph, error) {
	var j jsonGraph
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}

	g := New(j.Name)
	g.Description = j.Description

	for _, jn := range j.Nodes {
		n := Node{
			ID:       jn.ID,
			Label:    jn.Label,
			Type:     NodeType(jn.Type),
			Priority: Priority(jn.Priority),
			Status:   Status(jn.Status),
		}
		progress, err := parseProgress(jn.Progress)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", jn.ID, err)
		}
		n.Progress = progress
		if jn.X != nil && jn.Y != nil {
			n.X, n.Y = *jn.X, *jn.Y
			n.Placed = true
		}
		// Appended as-is so Validate reports duplicate IDs.
		g.Nodes = append(g.Nodes, n)
	}

	for _, je := range j.Edges {
		e := Edge{
			ID:     je.ID,
			From:   je.From,
			To:     je.To,
			Label:  je.Label,
			Weight: DefaultWeight,
		}
		if je.Weight != nil {
			e.Weight = *je.Weight
		}
		g.Edges = append(g.Edges, e)
	}
	g.assignEdgeIDs()

	return g, nil
}

// parseProgress accepts a bare percentage or a gauge object.
func parseProgress(v interface{}) (geom.Gauge, error) {
	switch p := v.(type) {
	case nil:
		return geom.Gauge{Min: 0, Max: 100}, nil
	case float64:
		return geom.Gauge{Value: p, Min: 0, Max: 100}, nil
	case map[string]interface{}:
		g := geom.Gauge{Min: 0, Max: 100}
		for key, field := range p {
			f, ok := field.(float64)
			if !ok {
				return geom.Gauge{}, fmt.Errorf("progress.%s: expected number", key)
			}
			switch key {
			case "value":
				g.Value = f
			case "min":
				g.Min = f
			case "max":
				g.Max = f
			}
		}
		return g, nil
	}
	return geom.Gauge{}, fmt.Errorf("progress: expected number or object")
}

// ToJSON converts a graph to JSON.
func ToJSON(g *Graph, pretty bool) ([]byte, error) {
	j := jsonGraph{
		Name:        g.Name,
		Description: g.Description,
		Nodes:       make([]jsonNode, 0, len(g.Nodes)),
		Edges:       make([]jsonEdge, 0, len(g.Edges)),
	}

	for _, n := range g.Nodes {
		jn := jsonNode{
			ID:       n.ID,
			Label:    n.Label,
			Type:     string(n.Type),
			Priority: string(n.Priority),
			Status:   string(n.Status),
		}
		if n.Progress.Min == 0 && n.Progress.Max == 100 {
			if n.Progress.Value != 0 {
				jn.Progress = n.Progress.Value
			}
		} else {
			jn.Progress = n.Progress
		}
		if n.Placed {
			x, y := n.X, n.Y
			jn.X, jn.Y = &x, &y
		}
		j.Nodes = append(j.Nodes, jn)
	}

	for _, e := range g.Edges {
		je := jsonEdge{ID: e.ID, From: e.From, To: e.To, Label: e.Label}
		if e.Weight != DefaultWeight {
			w := e.Weight
			je.Weight = &w
		}
		j.Edges = append(j.Edges, je)
	}

	if pretty {
		return json.MarshalIndent(j, "", "  ")
	}
	return json.Marshal(j)
}

// LoadFile reads a graph from a .json file.
func LoadFile(path string) (*Graph, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".json" {
		return nil, fmt.Errorf("unsupported format: %s", ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g, err := ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return g, nil
}

// WriteFile writes a graph as indented JSON.
func WriteFile(path string, g *Graph) error {
	data, err := ToJSON(g, true)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
