package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/isoballs/sim"
	"github.com/pthm-cable/isoballs/telemetry"
)

// recordFrame adds a frame and its events to the stats window.
func (g *Game) recordFrame(f *sim.Frame) {
	summary := telemetry.SummarizeField(f.Samples.Data)
	g.insideFraction = summary.InsideFraction

	g.collector.Record(telemetry.FrameRecord{
		Segments:    f.Stats.Segments,
		ActiveCells: f.Stats.ActiveCells,
		SaddleCells: f.Stats.SaddleCells,
		Field:       summary,
	}, f.Elapsed)

	for _, e := range f.Events {
		switch e {
		case sim.EventPick:
			g.collector.RecordPick()
			if f.Selected >= 0 {
				g.recordEvent(telemetry.NewPickEvent(f.Tick, f.Selected, f.Sources[f.Selected].Centre))
			}
		case sim.EventRelease:
			if g.prevSelected >= 0 && g.prevSelected < len(f.Sources) {
				g.recordEvent(telemetry.NewReleaseEvent(f.Tick, g.prevSelected, f.Sources[g.prevSelected].Centre))
			}
		case sim.EventResolution:
			g.collector.RecordResolutionChange()
			g.recordEvent(telemetry.NewResolutionEvent(f.Tick, f.Resolution))
		}
	}
	g.prevSelected = f.Selected
}

// recordEvent queues an interaction event for the next flush.
func (g *Game) recordEvent(e telemetry.Event) {
	if g.outputManager == nil {
		return
	}
	g.events = append(g.events, e)
}

// writeEvents flushes queued interaction events.
func (g *Game) writeEvents() {
	if err := g.outputManager.WriteEvents(g.events); err != nil {
		slog.Error("failed to write events", "error", err)
	}
	g.events = g.events[:0]
}

// flushTelemetry checks if the stats window should be flushed and writes it.
func (g *Game) flushTelemetry(f *sim.Frame) {
	if !g.collector.ShouldFlush(f.Tick) {
		return
	}

	stats := g.collector.Flush(f.Tick, f.Grid.Cols, f.Grid.Rows, f.Grid.CellSize)
	perfStats := g.state.Perf().Stats()

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteWindow(stats); err != nil {
			slog.Error("failed to write window stats", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
		g.writeEvents()
	}
}

// SaveSnapshot writes the current sources to the snapshot directory.
func (g *Game) SaveSnapshot() {
	dir := g.snapshotDir
	if dir == "" {
		dir = "snapshots"
	}

	path, err := telemetry.SaveSnapshot(g.state.Snapshot(), dir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		g.notify("snapshot failed")
		return
	}

	slog.Info("snapshot saved", "path", path, "tick", g.Tick())
	g.notify(fmt.Sprintf("saved %s", path))
}
