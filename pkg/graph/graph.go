// Package graph provides the node and edge model that edge routing consumes.
package graph

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ha1tch/edgeroute/pkg/geom"
)

// NodeType is the kind of work item a node represents.
type NodeType string

const (
	TypeRequirement NodeType = "requirement"
	TypeTask        NodeType = "task"
	TypeRisk        NodeType = "risk"
	TypeProject     NodeType = "project"
	TypeMilestone   NodeType = "milestone"
	TypeDecision    NodeType = "decision"
)

// Priority ranks a node.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Status is the progress state of a node.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusBlocked    Status = "blocked"
	StatusDone       Status = "done"
)

// NodeTypes lists every known node type.
var NodeTypes = []NodeType{TypeRequirement, TypeTask, TypeRisk, TypeProject, TypeMilestone, TypeDecision}

// Node is a positioned item in the graph. X and Y are the centre of its box.
type Node struct {
	ID       string
	Label    string
	Type     NodeType
	Priority Priority
	Status   Status
	Progress geom.Gauge
	X, Y     float64
	Placed   bool // false when no position was given; see AutoPlace
}

// Center returns the node centre.
func (n Node) Center() geom.Point {
	return geom.Point{X: n.X, Y: n.Y}
}

// DisplayLabel returns Label, or ID when the label is empty.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge connects two nodes. Weight drives the stroke width.
type Edge struct {
	ID     string
	From   string
	To     string
	Label  string
	Weight float64
}

// IsSelfLoop reports whether the edge starts and ends on the same node.
func (e Edge) IsSelfLoop() bool {
	return e.From == e.To
}

// Graph is a set of nodes and the edges between them.
type Graph struct {
	Name        string
	Description string
	Nodes       []Node
	Edges       []Edge
}

// New creates an empty graph.
func New(name string) *Graph {
	return &Graph{
		Name:  name,
		Nodes: make([]Node, 0),
		Edges: make([]Edge, 0),
	}
}

// AddNode adds a node, replacing any existing node with the same ID.
func (g *Graph) AddNode(n Node) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == n.ID {
			g.Nodes[i] = n
			return
		}
	}
	g.Nodes = append(g.Nodes, n)
}

// AddEdge appends an edge. An empty ID is replaced by the first unused
// "e<n>" with n counting up from the edge's index.
func (g *Graph) AddEdge(e Edge) Edge {
	if e.ID == "" {
		e.ID = freeEdgeID(g.edgeIDs(), len(g.Edges))
	}
	g.Edges = append(g.Edges, e)
	return e
}

// assignEdgeIDs names every edge without an ID, avoiding all IDs already
// present anywhere in Edges.
func (g *Graph) assignEdgeIDs() {
	used := g.edgeIDs()
	for i := range g.Edges {
		if g.Edges[i].ID == "" {
			g.Edges[i].ID = freeEdgeID(used, i)
		}
	}
}

func (g *Graph) edgeIDs() map[string]bool {
	used := make(map[string]bool, len(g.Edges))
	for _, e := range g.Edges {
		if e.ID != "" {
			used[e.ID] = true
		}
	}
	return used
}

// freeEdgeID returns the first "e<n>" not in used, starting at n, and
// marks it used.
func freeEdgeID(used map[string]bool, n int) string {
	id := fmt.Sprintf("e%d", n)
	for used[id] {
		n++
		id = fmt.Sprintf("e%d", n)
	}
	used[id] = true
	return id
}

// Node looks up a node by ID.
func (g *Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// NodeIndex returns the position of a node in Nodes, or -1.
func (g *Graph) NodeIndex(id string) int {
	for i, n := range g.Nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// Neighbours returns the sorted IDs of nodes sharing an edge with id.
func (g *Graph) Neighbours(id string) []string {
	seen := make(map[string]bool)
	for _, e := range g.Edges {
		if e.From == id && e.To != id {
			seen[e.To] = true
		}
		if e.To == id && e.From != id {
			seen[e.From] = true
		}
	}
	result := make([]string, 0, len(seen))
	for n := range seen {
		result = append(result, n)
	}
	sort.Strings(result)
	return result
}

// IsolatedNodes returns nodes that no edge touches.
func (g *Graph) IsolatedNodes() []string {
	touched := make(map[string]bool)
	for _, e := range g.Edges {
		touched[e.From] = true
		touched[e.To] = true
	}
	var result []string
	for _, n := range g.Nodes {
		if !touched[n.ID] {
			result = append(result, n.ID)
		}
	}
	return result
}

// Validate checks the graph for structural errors.
func (g *Graph) Validate() error {
	if len(g.Nodes) == 0 {
		return fmt.Errorf("graph has no nodes")
	}

	ids := make(map[string]bool)
	for i, n := range g.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node %d: empty id", i)
		}
		if ids[n.ID] {
			return fmt.Errorf("node %q: duplicate id", n.ID)
		}
		ids[n.ID] = true

		if n.Type != "" && !validType(n.Type) {
			return fmt.Errorf("node %q: unknown type %q", n.ID, n.Type)
		}
		switch n.Priority {
		case "", PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		default:
			return fmt.Errorf("node %q: unknown priority %q", n.ID, n.Priority)
		}
		switch n.Status {
		case "", StatusTodo, StatusInProgress, StatusBlocked, StatusDone:
		default:
			return fmt.Errorf("node %q: unknown status %q", n.ID, n.Status)
		}
		if !finite(n.X) || !finite(n.Y) {
			return fmt.Errorf("node %q: position is not finite", n.ID)
		}
	}

	edgeIDs := make(map[string]bool)
	for i, e := range g.Edges {
		if e.ID != "" {
			if edgeIDs[e.ID] {
				return fmt.Errorf("edge %q: duplicate id", e.ID)
			}
			edgeIDs[e.ID] = true
		}
		if !ids[e.From] {
			return fmt.Errorf("edge %d: from node %q not in graph", i, e.From)
		}
		if !ids[e.To] {
			return fmt.Errorf("edge %d: to node %q not in graph", i, e.To)
		}
		if !finite(e.Weight) {
			return fmt.Errorf("edge %d: weight is not finite", i)
		}
	}

	return nil
}

// AutoPlace lays unplaced nodes out on a grid of cols columns, below any
// nodes that already have positions.
func (g *Graph) AutoPlace(cols int, spacingX, spacingY float64) {
	if cols < 1 {
		cols = 1
	}
	top := 0.0
	anyPlaced := false
	for _, n := range g.Nodes {
		if n.Placed && (!anyPlaced || n.Y > top) {
			top = n.Y
			anyPlaced = true
		}
	}
	if anyPlaced {
		top += spacingY
	}

	k := 0
	for i := range g.Nodes {
		if g.Nodes[i].Placed {
			continue
		}
		g.Nodes[i].X = float64(k%cols) * spacingX
		g.Nodes[i].Y = top + float64(k/cols)*spacingY
		g.Nodes[i].Placed = true
		k++
	}
}

// String returns a short human-readable summary.
func (g *Graph) String() string {
	var sb strings.Builder
	name := g.Name
	if name == "" {
		name = "(unnamed)"
	}
	sb.WriteString(fmt.Sprintf("Graph %s: %d nodes, %d edges\n", name, len(g.Nodes), len(g.Edges)))
	for _, n := range g.Nodes {
		sb.WriteString(fmt.Sprintf("  %-12s %-12s %-8s %-11s %3d%%  (%.0f, %.0f)\n",
			n.ID, n.Type, n.Priority, n.Status, n.Progress.Percent(), n.X, n.Y))
	}
	for _, e := range g.Edges {
		sb.WriteString(fmt.Sprintf("  %s: %s -> %s", e.ID, e.From, e.To))
		if e.Label != "" {
			sb.WriteString(fmt.Sprintf(" [%s]", e.Label))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func validType(t NodeType) bool {
	for _, k := range NodeTypes {
		if k == t {
			return true
		}
	}
	return false
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
