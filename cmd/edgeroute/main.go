// Command edgeroute computes and previews edge geometry for node graphs.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ha1tch/edgeroute/pkg/geom"
	"github.com/ha1tch/edgeroute/pkg/graph"
	"github.com/ha1tch/edgeroute/pkg/preview"
	"github.com/ha1tch/edgeroute/pkg/route"
)

const usage = `edgeroute - edge routing geometry for node graphs

Usage:
  edgeroute <command> [options]

Commands:
  route      Compute edge geometry as JSON
  svg        Render routed graph to SVG
  png        Render routed graph to PNG
  layout     Place unpositioned nodes on a grid
  dot        Generate Graphviz DOT output
  info       Show graph information
  validate   Validate graph file
  probe      Evaluate one boundary intersection

Examples:
  edgeroute route graph.json --pretty
  edgeroute svg graph.json -o graph.svg --controls
  edgeroute png graph.json -o graph.png --scale 2
  edgeroute dot graph.json | neato -n -Tpng -o graph.png
  edgeroute probe rect 0 0 100 50 300 0
  edgeroute probe poly 10 0 0 0  -5,-5 5,-5 5,5 -5,5

Use "edgeroute <command> -h" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "route":
		cmdRoute(args)
	case "svg":
		cmdRender(args, ".svg")
	case "png":
		cmdRender(args, ".png")
	case "layout":
		cmdLayout(args)
	case "dot":
		cmdDot(args)
	case "info":
		cmdInfo(args)
	case "validate":
		cmdValidate(args)
	case "probe":
		cmdProbe(args)
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}

// routeFlags are the options shared by commands that route.
type routeFlags struct {
	output   string
	title    string
	pretty   bool
	controls bool
	scale    float64
	opts     route.Options
}

func parseRouteFlags(args []string) (routeFlags, error) {
	rf := routeFlags{scale: 1, opts: route.DefaultOptions()}
	for i := 0; i < len(args); i++ {
		next := func() (string, error) {
			if i+1 >= len(args) {
				return "", fmt.Errorf("%s needs a value", args[i])
			}
			i++
			return args[i], nil
		}
		number := func() (float64, error) {
			flag := args[i]
			s, err := next()
			if err != nil {
				return 0, err
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return 0, fmt.Errorf("%s: invalid number %q", flag, s)
			}
			return v, nil
		}

		var err error
		switch args[i] {
		case "-o", "--output":
			rf.output, err = next()
		case "-t", "--title":
			rf.title, err = next()
		case "--pretty":
			rf.pretty = true
		case "--controls":
			rf.controls = true
		case "--scale":
			rf.scale, err = number()
		case "--spacing":
			rf.opts.EdgeSpacing, err = number()
		case "--arrow-gap":
			rf.opts.ArrowGap, err = number()
		case "--label-radius":
			rf.opts.LabelRadius, err = number()
		default:
			err = fmt.Errorf("unknown option: %s", args[i])
		}
		if err != nil {
			return rf, err
		}
	}
	return rf, nil
}

func loadAndRoute(input string, opts route.Options) (*graph.Graph, *route.Result) {
	g, err := graph.LoadFile(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", input, err)
		os.Exit(1)
	}
	res, err := route.Compute(g, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error routing %s: %v\n", input, err)
		os.Exit(1)
	}
	return g, res
}

func writeOutput(output string, data []byte) {
	if output == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", output, err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Written: %s\n", output)
}

func cmdRoute(args []string) {
	if len(args) < 1 || args[0] == "-h" {
		fmt.Fprintln(os.Stderr, "Usage: edgeroute route <input.json> [-o output] [--pretty] [--spacing N] [--arrow-gap N] [--label-radius N]")
		os.Exit(1)
	}
	rf, err := parseRouteFlags(args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	_, res := loadAndRoute(args[0], rf.opts)
	data, err := route.ToJSON(res, rf.pretty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
		os.Exit(1)
	}
	writeOutput(rf.output, append(data, '\n'))
}

func cmdRender(args []string, ext string) {
	name := strings.TrimPrefix(ext, ".")
	if len(args) < 1 || args[0] == "-h" {
		fmt.Fprintf(os.Stderr, "Usage: edgeroute %s <input.json> [-o output] [-t title] [--scale N] [--controls] [--spacing N]\n", name)
		os.Exit(1)
	}
	input := args[0]
	rf, err := parseRouteFlags(args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if rf.output == "" && ext == ".png" {
		rf.output = strings.TrimSuffix(input, filepath.Ext(input)) + ext
	}

	g, res := loadAndRoute(input, rf.opts)
	if rf.title == "" {
		rf.title = g.Name
	}

	var buf bytes.Buffer
	switch ext {
	case ".svg":
		opts := preview.DefaultSVGOptions()
		opts.Scale = rf.scale
		opts.Title = rf.title
		opts.ShowControls = rf.controls
		err = preview.RenderSVG(&buf, g, res, opts)
	case ".png":
		opts := preview.DefaultPNGOptions()
		opts.Scale = rf.scale
		opts.ShowControls = rf.controls
		err = preview.RenderPNG(&buf, g, res, opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering %s: %v\n", name, err)
		os.Exit(1)
	}
	writeOutput(rf.output, buf.Bytes())
}

func cmdLayout(args []string) {
	if len(args) < 1 || args[0] == "-h" {
		fmt.Fprintln(os.Stderr, "Usage: edgeroute layout <input.json> [-o output] [--cols N]")
		os.Exit(1)
	}
	input := args[0]
	output := input
	cols := route.DefaultOptions().GridColumns
	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "-o", "--output":
			if i+1 < len(args) {
				output = args[i+1]
				i++
			}
		case "--cols":
			if i+1 < len(args) {
				n, err := strconv.Atoi(args[i+1])
				if err != nil || n < 1 {
					fmt.Fprintf(os.Stderr, "Error: --cols needs a positive integer\n")
					os.Exit(1)
				}
				cols = n
				i++
			}
		}
	}

	g, err := graph.LoadFile(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", input, err)
		os.Exit(1)
	}
	g.AutoPlace(cols, geom.NodeWidth*2, geom.NodeHeight*3)
	if err := graph.WriteFile(output, g); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", output, err)
		os.Exit(1)
	}
	fmt.Printf("Written: %s\n", output)
}

func cmdDot(args []string) {
	if len(args) < 1 || args[0] == "-h" {
		fmt.Fprintln(os.Stderr, "Usage: edgeroute dot <input.json> [-o output] [-t title]")
		os.Exit(1)
	}

	input := args[0]
	var output, title string
	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "-o", "--output":
			if i+1 < len(args) {
				output = args[i+1]
				i++
			}
		case "-t", "--title":
			if i+1 < len(args) {
				title = args[i+1]
				i++
			}
		}
	}

	g, err := graph.LoadFile(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", input, err)
		os.Exit(1)
	}
	if title == "" {
		title = g.Name
	}
	writeOutput(output, []byte(graph.GenerateDOT(g, title)))
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: edgeroute info <input.json>")
		os.Exit(1)
	}

	input := args[0]
	g, err := graph.LoadFile(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", input, err)
		os.Exit(1)
	}

	loops := 0
	for _, e := range g.Edges {
		if e.IsSelfLoop() {
			loops++
		}
	}

	if g.Name != "" {
		fmt.Printf("Name:        %s\n", g.Name)
	}
	if g.Description != "" {
		fmt.Printf("Description: %s\n", g.Description)
	}
	fmt.Printf("Nodes:       %d\n", len(g.Nodes))
	fmt.Printf("Edges:       %d\n", len(g.Edges))
	fmt.Printf("Self-loops:  %d\n", loops)
	if isolated := g.IsolatedNodes(); len(isolated) > 0 {
		fmt.Printf("Isolated:    %v\n", isolated)
	}

	if res, err := route.Compute(g, route.DefaultOptions()); err == nil {
		fmt.Printf("Bounds:      (%.1f, %.1f) - (%.1f, %.1f)\n", res.MinX, res.MinY, res.MaxX, res.MaxY)
	}
}

func cmdValidate(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: edgeroute validate <input.json>")
		os.Exit(1)
	}

	input := args[0]
	g, err := graph.LoadFile(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", input, err)
		os.Exit(1)
	}

	if err := g.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s: valid graph with %d nodes, %d edges\n", input, len(g.Nodes), len(g.Edges))
}

const probeUsage = `Usage: edgeroute probe <shape> <numbers...>

  rect    X Y W H EX EY [RX RY]     rectangle centred at X,Y
  circle  CX CY R EX EY [RX RY]
  ellipse CX CY RX RY EX EY [TX TY]
  node    CX CY EX EY               fixed 150x60 node box
  poly    EX EY RX RY x,y x,y ...   polygon vertices in order

E is the point outside the shape; R (or T) is the reference point the
line runs to, the shape centre when omitted.`

func cmdProbe(args []string) {
	if len(args) < 1 || args[0] == "-h" {
		fmt.Fprintln(os.Stderr, probeUsage)
		os.Exit(1)
	}
	p, err := probe(args[0], args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%g %g\n", p.X, p.Y)
}

// probe evaluates one boundary solver from command-line numbers.
func probe(shape string, args []string) (geom.Point, error) {
	if shape == "poly" {
		if len(args) < 4 {
			return geom.Point{}, fmt.Errorf("poly needs EX EY RX RY and vertices")
		}
		nums, err := parseFloats(args[:4])
		if err != nil {
			return geom.Point{}, err
		}
		var verts []geom.Point
		for _, s := range args[4:] {
			v, err := parsePoint(s)
			if err != nil {
				return geom.Point{}, err
			}
			verts = append(verts, v)
		}
		return geom.PolygonIntersection(verts, geom.Pt(nums[0], nums[1]), geom.Pt(nums[2], nums[3])), nil
	}

	nums, err := parseFloats(args)
	if err != nil {
		return geom.Point{}, err
	}
	// withRef returns the external point and the reference, defaulting to c.
	withRef := func(base int, c geom.Point) (geom.Point, geom.Point, error) {
		switch len(nums) {
		case base + 2:
			return geom.Pt(nums[base], nums[base+1]), c, nil
		case base + 4:
			return geom.Pt(nums[base], nums[base+1]), geom.Pt(nums[base+2], nums[base+3]), nil
		}
		return geom.Point{}, geom.Point{}, fmt.Errorf("%s needs %d or %d numbers, got %d", shape, base+2, base+4, len(nums))
	}

	switch shape {
	case "rect":
		if len(nums) < 4 {
			return geom.Point{}, fmt.Errorf("rect needs X Y W H EX EY")
		}
		r := geom.Rect{X: nums[0], Y: nums[1], W: nums[2], H: nums[3]}
		line, target, err := withRef(4, r.Center())
		if err != nil {
			return geom.Point{}, err
		}
		return geom.RectangleIntersection(r, line, target), nil
	case "circle":
		if len(nums) < 3 {
			return geom.Point{}, fmt.Errorf("circle needs CX CY R EX EY")
		}
		c := geom.Circle{CX: nums[0], CY: nums[1], R: nums[2]}
		line, target, err := withRef(3, geom.Pt(c.CX, c.CY))
		if err != nil {
			return geom.Point{}, err
		}
		return geom.CircleIntersection(c, line, target), nil
	case "ellipse":
		if len(nums) < 4 {
			return geom.Point{}, fmt.Errorf("ellipse needs CX CY RX RY EX EY")
		}
		e := geom.Ellipse{CX: nums[0], CY: nums[1], RX: nums[2], RY: nums[3]}
		line, target, err := withRef(4, geom.Pt(e.CX, e.CY))
		if err != nil {
			return geom.Point{}, err
		}
		return geom.EllipseIntersection(e, line, target), nil
	case "node":
		if len(nums) != 4 {
			return geom.Point{}, fmt.Errorf("node needs CX CY EX EY")
		}
		center := geom.Pt(nums[0], nums[1])
		return geom.NodeBoundaryIntersection(center, center, geom.Pt(nums[2], nums[3])), nil
	}
	return geom.Point{}, fmt.Errorf("unknown shape: %s", shape)
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, s := range args {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", s)
		}
		out[i] = v
	}
	return out, nil
}

// parsePoint reads "x,y".
func parsePoint(s string) (geom.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return geom.Point{}, fmt.Errorf("invalid vertex %q, want x,y", s)
	}
	v, err := parseFloats([]string{strings.TrimSpace(xs), strings.TrimSpace(ys)})
	if err != nil {
		return geom.Point{}, fmt.Errorf("invalid vertex %q: %w", s, err)
	}
	return geom.Pt(v[0], v[1]), nil
}
