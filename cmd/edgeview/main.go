// Command edgeview is a terminal viewer for routed node graphs.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/edgeroute/pkg/graph"
	"github.com/ha1tch/edgeroute/pkg/route"
)

// Config holds persistent viewer settings
type Config struct {
	ScaleX       float64 // routing units per terminal column
	ScaleY       float64 // routing units per terminal row
	ShowLabels   bool
	ShowControls bool
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		ScaleX:     10,
		ScaleY:     20,
		ShowLabels: true,
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".edgeview"
	}
	return filepath.Join(home, ".edgeview")
}

// LoadConfig loads configuration from the config file
func LoadConfig() Config {
	return loadConfigFrom(ConfigPath())
}

func loadConfigFrom(path string) Config {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.Trim(strings.TrimSpace(val), "\"")

		switch key {
		case "scale_x", "scale_y":
			v, err := strconv.ParseFloat(val, 64)
			if err != nil || v <= 0 {
				continue
			}
			if key == "scale_x" {
				cfg.ScaleX = v
			} else {
				cfg.ScaleY = v
			}
		case "show_labels", "show_controls":
			b, err := strconv.ParseBool(val)
			if err != nil {
				continue
			}
			if key == "show_labels" {
				cfg.ShowLabels = b
			} else {
				cfg.ShowControls = b
			}
		}
	}
	return cfg
}

// SaveConfig saves configuration to the config file
func SaveConfig(cfg Config) error {
	return saveConfigTo(ConfigPath(), cfg)
}

func saveConfigTo(path string, cfg Config) error {
	content := fmt.Sprintf("# edgeview configuration\nscale_x = %g\nscale_y = %g\nshow_labels = %t\nshow_controls = %t\n",
		cfg.ScaleX, cfg.ScaleY, cfg.ShowLabels, cfg.ShowControls)
	return os.WriteFile(path, []byte(content), 0644)
}

// Viewer holds all viewer state
type Viewer struct {
	screen   tcell.Screen
	filename string
	graph    *graph.Graph
	result   *route.Result
	config   Config
	message  string

	offsetX  int // pan in cells
	offsetY  int
	zoom     float64
	selected int // edge index, -1 for none
}

func newViewer(cfg Config) *Viewer {
	return &Viewer{config: cfg, zoom: 1, selected: -1}
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: edgeview <graph.json>")
		os.Exit(1)
	}

	v := newViewer(LoadConfig())
	v.filename = os.Args[1]
	if err := v.load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", v.filename, err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing screen: %v\n", err)
		os.Exit(1)
	}
	screen.Clear()
	v.screen = screen

	v.run()

	screen.Fini()
}

// load reads and routes the current file.
func (v *Viewer) load() error {
	g, err := graph.LoadFile(v.filename)
	if err != nil {
		return err
	}
	res, err := route.Compute(g, route.DefaultOptions())
	if err != nil {
		return err
	}
	v.graph, v.result = g, res
	if v.selected >= len(res.Edges) {
		v.selected = -1
	}
	return nil
}

func (v *Viewer) run() {
	for {
		v.draw()
		v.screen.Show()

		switch ev := v.screen.PollEvent().(type) {
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return
			}
		}
	}
}

// handleKey applies a key press and reports whether to quit.
func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	v.message = ""
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		v.pan(-4, 0)
	case tcell.KeyRight:
		v.pan(4, 0)
	case tcell.KeyUp:
		v.pan(0, -2)
	case tcell.KeyDown:
		v.pan(0, 2)
	case tcell.KeyTab:
		v.cycleSelection(1)
	case tcell.KeyBacktab:
		v.cycleSelection(-1)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case '+', '=':
			v.setZoom(v.zoom * 1.25)
		case '-', '_':
			v.setZoom(v.zoom / 1.25)
		case '0':
			v.setZoom(1)
			v.offsetX, v.offsetY = 0, 0
		case 'l':
			v.config.ShowLabels = !v.config.ShowLabels
		case 'c':
			v.config.ShowControls = !v.config.ShowControls
		case 'r':
			if err := v.load(); err != nil {
				v.message = "Reload failed: " + err.Error()
			} else {
				v.message = "Reloaded " + filepath.Base(v.filename)
			}
		case 's':
			if err := SaveConfig(v.config); err != nil {
				v.message = "Save failed: " + err.Error()
			} else {
				v.message = "Settings saved"
			}
		}
	}
	return false
}

func (v *Viewer) pan(dx, dy int) {
	v.offsetX += dx
	v.offsetY += dy
}

// setZoom clamps zoom to [0.25, 8].
func (v *Viewer) setZoom(z float64) {
	if z < 0.25 {
		z = 0.25
	}
	if z > 8 {
		z = 8
	}
	v.zoom = z
}

func (v *Viewer) cycleSelection(step int) {
	n := len(v.result.Edges)
	if n == 0 {
		v.selected = -1
		return
	}
	if v.selected < 0 {
		if step > 0 {
			v.selected = 0
		} else {
			v.selected = n - 1
		}
		return
	}
	v.selected = ((v.selected+step)%n + n) % n
}
