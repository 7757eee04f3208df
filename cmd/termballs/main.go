// Terminal viewer - renders the contour as braille dots with tcell.
//
// Usage: go run ./cmd/termballs [-config path] [-log file]
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/pthm-cable/isoballs/config"
	"github.com/pthm-cable/isoballs/sim"
)

const (
	frameInterval   = 33 * time.Millisecond
	resolutionStep  = 5.0
	newSourceRadius = 40.0
)

// Viewer couples the simulation state to a terminal screen.
type Viewer struct {
	screen   tcell.Screen
	state    *sim.State
	renderer *TermRenderer

	lastFrame time.Time
	dragging  bool
}

// NewViewer creates a viewer on an initialised screen.
func NewViewer(screen tcell.Screen, cfg *config.Config) *Viewer {
	return &Viewer{
		screen:    screen,
		state:     sim.New(cfg),
		renderer:  NewTermRenderer(screen, cfg.Domain.Width, cfg.Domain.Height),
		lastFrame: time.Now(),
	}
}

// handleEvent applies one input event. It returns false to quit.
func (v *Viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventMouse:
		v.handleMouse(ev)
	case *tcell.EventResize:
		v.renderer.Resize()
		v.screen.Sync()
	}
	return true
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q':
		return false
	case 'i':
		v.state.ToggleInterpolate()
	case 's':
		v.state.ToggleShowSamples()
	case 'g':
		v.state.ToggleShowGrid()
	case ' ':
		v.state.ToggleAnimate()
	case 'c':
		v.state.ToggleSaddleStrategy()
	case '+', '=':
		v.state.SetResolution(v.state.Resolution() + resolutionStep)
	case '-':
		v.state.SetResolution(v.state.Resolution() - resolutionStep)
	}
	return true
}

func (v *Viewer) handleMouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	pt := v.renderer.CellToWorld(col, row)
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.ButtonPrimary != 0:
		if !v.dragging {
			v.dragging = true
			v.state.PointerDown(pt)
		} else {
			v.state.PointerMove(pt)
		}
	case buttons&tcell.ButtonSecondary != 0:
		if v.dragging {
			return
		}
		if !v.renderer.Camera().InWorld(pt.X, pt.Y) {
			return
		}
		if !v.state.RemoveSourceAt(pt) {
			v.state.AddSource(config.SourceConfig{X: pt.X, Y: pt.Y, Radius: newSourceRadius})
		}
	case buttons == tcell.ButtonNone:
		if v.dragging {
			v.dragging = false
			v.state.PointerUp()
		}
	}
}

// step advances and draws one frame.
func (v *Viewer) step(now time.Time) {
	elapsed := now.Sub(v.lastFrame).Seconds()
	v.lastFrame = now
	v.state.Step(elapsed, v.renderer)
}

// run is the event/render loop.
func (v *Viewer) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !v.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			v.step(now)
		}
	}
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logPath := flag.String("log", "", "Write JSON logs to this file, rotated at 10MB (empty = discard)")
	flag.Parse()

	// The screen owns stdout, so logs go to a rotated file or nowhere.
	var logOut io.Writer = io.Discard
	if *logPath != "" {
		lj := &lumberjack.Logger{
			Filename:   *logPath,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		}
		defer lj.Close()
		logOut = lj
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug})))

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse(tcell.MouseDragEvents)
	screen.HideCursor()

	viewer := NewViewer(screen, config.Cfg())
	viewer.run()

	screen.Fini()
	slog.Info("terminal viewer closed", "ticks", viewer.state.TickCount())
}
