package tui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"statline/internal/engine"
	"statline/internal/log"
	"statline/internal/sim"
	"statline/internal/stats"
)

// Inspector is a single-screen tview application that watches the snapshot
// store and the registered token outputs while the demo simulation runs.
type Inspector struct {
	app      *tview.Application
	table    *tview.Table
	engine   *engine.Engine
	sim      *sim.Simulation
	interval time.Duration
	done     chan struct{}
}

// NewInspector wires the table view over the engine and simulation.
func NewInspector(eng *engine.Engine, simulation *sim.Simulation, interval time.Duration) *Inspector {
	app := tview.NewApplication()
	table := tview.NewTable().SetBorders(false).SetFixed(1, 0)
	table.SetBorder(true).SetTitle(" statline — q quits ")

	return &Inspector{
		app:      app,
		table:    table,
		engine:   eng,
		sim:      simulation,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Run starts the tick loop and blocks until the user quits.
func (in *Inspector) Run() error {
	in.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Rune() == 'q' {
			in.app.Stop()
			return nil
		}
		return event
	})

	in.render(nil)
	go in.loop()

	err := in.app.SetRoot(in.table, true).Run()
	close(in.done)
	return err
}

func (in *Inspector) loop() {
	ticker := time.NewTicker(in.interval)
	defer ticker.Stop()
	for {
		select {
		case <-in.done:
			return
		case <-ticker.C:
			in.sim.Tick()
			invalidated := in.engine.UpdateContext(in.sim.Local(), in.sim.Host())
			if len(invalidated) > 0 {
				log.Debug("inspector tick", "invalidated", len(invalidated))
			}
			in.app.QueueUpdateDraw(func() {
				in.render(invalidated)
			})
		}
	}
}

func (in *Inspector) render(invalidated []string) {
	changed := make(map[string]bool, len(invalidated))
	for _, name := range invalidated {
		changed[name] = true
	}

	in.table.Clear()
	row := 0
	header := func(cols ...string) {
		for c, text := range cols {
			cell := tview.NewTableCell(text).
				SetTextColor(tcell.ColorYellow).
				SetSelectable(false)
			in.table.SetCell(row, c, cell)
		}
		row++
	}
	line := func(highlight bool, cols ...string) {
		color := tcell.ColorWhite
		if highlight {
			color = tcell.ColorGreen
		}
		for c, text := range cols {
			in.table.SetCell(row, c, tview.NewTableCell(text).SetTextColor(color))
		}
		row++
	}

	header("Token", "Query", "Value")
	for _, name := range in.engine.Names() {
		query, _ := in.engine.Query(name)
		value, ok := in.engine.Value(name)
		if !ok {
			value = "-"
		}
		line(changed[name], name, query, value)
	}

	row++
	header("Stat", "Host", "Local")
	host := in.engine.Store().Snapshot(stats.Host)
	local := in.engine.Store().Snapshot(stats.Local)
	for _, name := range stats.FieldNames {
		line(false, name,
			fmt.Sprintf("%d", host.TypedValue(name)),
			fmt.Sprintf("%d", local.TypedValue(name)))
	}
	for _, key := range host.DynamicKeys() {
		line(false, key,
			fmt.Sprintf("%d", host.DynamicValue(key)),
			fmt.Sprintf("%d", local.DynamicValue(key)))
	}
}
