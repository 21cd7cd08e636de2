package graph

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sampleGraph() *Graph {
	g := New("release")
	g.AddNode(Node{ID: "req", Label: "Login", Type: TypeRequirement, X: 0, Y: 0, Placed: true})
	g.AddNode(Node{ID: "task", Type: TypeTask, Status: StatusInProgress, X: 300, Y: 0, Placed: true})
	g.AddNode(Node{ID: "risk", Type: TypeRisk, Priority: PriorityHigh, X: 150, Y: 200, Placed: true})
	g.AddEdge(Edge{From: "req", To: "task", Weight: 1})
	g.AddEdge(Edge{From: "task", To: "risk", Label: "threatens", Weight: 3})
	return g
}

func TestAddNodeReplaces(t *testing.T) {
	g := sampleGraph()
	g.AddNode(Node{ID: "req", Label: "Sign in", Type: TypeRequirement})

	if len(g.Nodes) != 3 {
		t.Errorf("Expected 3 nodes after replacing, got %d", len(g.Nodes))
	}
	n, ok := g.Node("req")
	if !ok || n.Label != "Sign in" {
		t.Errorf("Node not replaced: %+v", n)
	}
}

func TestAddEdgeAssignsID(t *testing.T) {
	g := sampleGraph()
	if g.Edges[0].ID != "e0" || g.Edges[1].ID != "e1" {
		t.Errorf("Expected e0/e1, got %s/%s", g.Edges[0].ID, g.Edges[1].ID)
	}
	e := g.AddEdge(Edge{ID: "custom", From: "risk", To: "req"})
	if e.ID != "custom" {
		t.Errorf("Explicit ID should be kept, got %s", e.ID)
	}
}

func TestAddEdgeSkipsTakenID(t *testing.T) {
	g := New("ids")
	g.AddNode(Node{ID: "a"})
	g.AddNode(Node{ID: "b"})
	g.AddEdge(Edge{ID: "e1", From: "a", To: "b"})
	if e := g.AddEdge(Edge{From: "b", To: "a"}); e.ID != "e2" {
		t.Errorf("Expected e2 after taken e1, got %s", e.ID)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestParseJSONEdgeIDs(t *testing.T) {
	tests := []struct {
		name  string
		edges string
		want  []string
	}{
		{"unnamed", `[{"from":"a","to":"b"},{"from":"b","to":"a"}]`, []string{"e0", "e1"}},
		{"named first", `[{"id":"e1","from":"a","to":"b"},{"from":"b","to":"a"}]`, []string{"e1", "e2"}},
		{"named later", `[{"from":"a","to":"b"},{"id":"e0","from":"b","to":"a"}]`, []string{"e1", "e0"}},
		{"mixed", `[{"from":"a","to":"b"},{"id":"e1","from":"b","to":"a"},{"from":"a","to":"a"}]`, []string{"e0", "e1", "e2"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := `{"nodes":[{"id":"a"},{"id":"b"}],"edges":` + tc.edges + `}`
			g, err := ParseJSON([]byte(src))
			if err != nil {
				t.Fatalf("ParseJSON: %v", err)
			}
			for i, want := range tc.want {
				if g.Edges[i].ID != want {
					t.Errorf("Edge %d ID = %q, want %q", i, g.Edges[i].ID, want)
				}
			}
			if err := g.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestParseJSONKeepsDuplicateNodes(t *testing.T) {
	src := `{"nodes":[{"id":"a","label":"first"},{"id":"a","label":"second"}],"edges":[]}`
	g, err := ParseJSON([]byte(src))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if len(g.Nodes) != 2 {
		t.Fatalf("Expected both nodes kept, got %d", len(g.Nodes))
	}
	err = g.Validate()
	if err == nil || !strings.Contains(err.Error(), "duplicate id") {
		t.Errorf("Expected duplicate id error, got %v", err)
	}
}

func TestNeighboursAndIsolated(t *testing.T) {
	g := sampleGraph()
	g.AddNode(Node{ID: "lonely"})
	g.AddEdge(Edge{From: "task", To: "task"})

	got := g.Neighbours("task")
	if strings.Join(got, ",") != "req,risk" {
		t.Errorf("Neighbours(task) = %v", got)
	}
	iso := g.IsolatedNodes()
	if len(iso) != 1 || iso[0] != "lonely" {
		t.Errorf("IsolatedNodes() = %v", iso)
	}
	if g.NodeIndex("risk") != 2 || g.NodeIndex("nope") != -1 {
		t.Error("NodeIndex returned wrong positions")
	}
}

func TestValidate(t *testing.T) {
	if err := sampleGraph().Validate(); err != nil {
		t.Fatalf("Valid graph rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(g *Graph)
		want   string
	}{
		{"no nodes", func(g *Graph) { g.Nodes = nil }, "no nodes"},
		{"empty id", func(g *Graph) { g.Nodes[0].ID = "" }, "empty id"},
		{"duplicate node", func(g *Graph) { g.Nodes = append(g.Nodes, g.Nodes[0]) }, "duplicate id"},
		{"bad type", func(g *Graph) { g.Nodes[0].Type = "epic" }, "unknown type"},
		{"bad priority", func(g *Graph) { g.Nodes[0].Priority = "urgent" }, "unknown priority"},
		{"bad status", func(g *Graph) { g.Nodes[0].Status = "stuck" }, "unknown status"},
		{"nan position", func(g *Graph) { g.Nodes[1].X = math.NaN() }, "not finite"},
		{"unknown from", func(g *Graph) { g.Edges[0].From = "ghost" }, "from node"},
		{"unknown to", func(g *Graph) { g.Edges[1].To = "ghost" }, "to node"},
		{"duplicate edge", func(g *Graph) { g.Edges[1].ID = "e0" }, "duplicate id"},
		{"inf weight", func(g *Graph) { g.Edges[0].Weight = math.Inf(1) }, "weight"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := sampleGraph()
			tc.mutate(g)
			err := g.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestAutoPlace(t *testing.T) {
	g := New("grid")
	g.AddNode(Node{ID: "fixed", X: 10, Y: 40, Placed: true})
	for _, id := range []string{"a", "b", "c"} {
		g.AddNode(Node{ID: id})
	}

	g.AutoPlace(2, 200, 100)

	want := map[string][2]float64{
		"fixed": {10, 40},
		"a":     {0, 140},
		"b":     {200, 140},
		"c":     {0, 240},
	}
	for id, pos := range want {
		n, _ := g.Node(id)
		if !n.Placed || n.X != pos[0] || n.Y != pos[1] {
			t.Errorf("%s placed at (%v,%v) placed=%v, want %v", id, n.X, n.Y, n.Placed, pos)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	data := []byte(`{
		"name": "plan",
		"nodes": [
			{"id": "a", "label": "Alpha", "type": "project", "progress": 40, "x": 0, "y": 0},
			{"id": "b", "type": "milestone", "progress": {"value": 3, "min": 0, "max": 4}, "x": 250, "y": 80},
			{"id": "c", "status": "done"}
		],
		"edges": [
			{"from": "a", "to": "b", "label": "ships", "weight": 4},
			{"from": "b", "to": "c"}
		]
	}`)

	g, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}

	a, _ := g.Node("a")
	if a.Progress.Fraction() != 0.4 || !a.Placed {
		t.Errorf("Node a parsed wrong: %+v", a)
	}
	b, _ := g.Node("b")
	if b.Progress.Fraction() != 0.75 || b.X != 250 {
		t.Errorf("Node b parsed wrong: %+v", b)
	}
	c, _ := g.Node("c")
	if c.Placed {
		t.Error("Node c has no position and should not be placed")
	}
	if g.Edges[0].Weight != 4 || g.Edges[1].Weight != DefaultWeight {
		t.Errorf("Edge weights wrong: %v, %v", g.Edges[0].Weight, g.Edges[1].Weight)
	}

	out, err := ToJSON(g, false)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	again, err := ParseJSON(out)
	if err != nil {
		t.Fatalf("ParseJSON(ToJSON): %v", err)
	}
	if again.String() != g.String() {
		t.Errorf("Round trip changed graph:\n%s\nvs\n%s", again, g)
	}
}

func TestParseJSONErrors(t *testing.T) {
	bad := []string{
		`{"nodes": [`,
		`{"nodes": [{"id": "a", "progress": "half"}]}`,
		`{"nodes": [{"id": "a", "progress": {"value": "x"}}]}`,
	}
	for _, src := range bad {
		if _, err := ParseJSON([]byte(src)); err == nil {
			t.Errorf("Expected error for %s", src)
		}
	}
}

func TestLoadAndWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "g.json")

	if err := WriteFile(path, sampleGraph()); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	g, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(g.Nodes) != 3 || len(g.Edges) != 2 {
		t.Errorf("Loaded %d nodes, %d edges", len(g.Nodes), len(g.Edges))
	}

	if _, err := LoadFile(filepath.Join(dir, "g.yaml")); err == nil {
		t.Error("Expected unsupported format error")
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(filepath.Join(dir, "broken.json")); err == nil {
		t.Error("Expected parse error")
	}
}

func TestGenerateDOT(t *testing.T) {
	g := sampleGraph()
	g.AddNode(Node{ID: "say \"hi\"", Status: StatusBlocked})
	dot := GenerateDOT(g, "Release <1>")

	checks := []string{
		"digraph G {",
		`label="Release \<1\>";`,
		`"req" [label="Login", pos="0,0!"];`,
		`"risk" [label="risk", pos="150,-200!"];`,
		`"say \"hi\"" [label="say \"hi\"", color=red];`,
		`"req" -> "task";`,
		`"task" -> "risk" [label="threatens", penwidth=3];`,
	}
	for _, want := range checks {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}
