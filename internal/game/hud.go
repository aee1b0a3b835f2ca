package game

import (
	"fmt"
	"strings"

	"github.com/tomz197/spiritwatch/internal/draw"
)

// hudJournalLines is the number of journal entries shown under the HUD.
const hudJournalLines = 4

func (w *World) drawHUD(f *draw.Frame) {
	m := w.levels
	if m.InTransition() {
		w.drawReport(f, m)
		return
	}

	status := fmt.Sprintf("%s  t=%.0fs", Campaign[m.Index()].Name, w.time.Elapsed())
	if w.paused {
		status += "  PAUSED"
	}
	if w.waves != nil {
		status += fmt.Sprintf("  pace %.2fs", w.waves.Interval())
	}
	f.HUD(status)

	if w.objectives != nil && !w.objectives.Destroyed() {
		for _, o := range w.objectives.Panel() {
			mark := "[ ]"
			if o.Completed {
				mark = "[x]"
			}
			line := mark + " " + o.Name + ": " + o.Desc
			if o.Status != "" {
				line += " (" + o.Status + ")"
			}
			f.HUD(line)
		}
	}

	if w.ui != nil {
		f.HUD(hudSelection(w.ui))
	}

	for _, e := range w.journal.Tail(hudJournalLines) {
		f.HUD(fmt.Sprintf("%-9s %s", string(e.Kind), e.Message))
	}
}

func hudSelection(ui *UIData) string {
	var b strings.Builder
	b.WriteString("> ")
	b.WriteString(ui.Name)
	for _, s := range ui.Stats {
		fmt.Fprintf(&b, "  %s %s", s.Name, s.Value)
	}
	for i, a := range ui.Actions {
		switch {
		case a.disabled():
			fmt.Fprintf(&b, "  %d.(%s)", i+1, a.Name)
		case a.active():
			fmt.Fprintf(&b, "  %d.*%s*", i+1, a.Name)
		default:
			fmt.Fprintf(&b, "  %d.%s", i+1, a.Name)
		}
	}
	for _, it := range ui.Items {
		fmt.Fprintf(&b, "  [%s x%d]", it.Item, it.Count)
	}
	return b.String()
}

func (w *World) drawReport(f *draw.Frame, m *LevelManager) {
	r := m.Report()
	if r == nil {
		return
	}
	f.HUD("Mission report: " + r.Level)
	for _, o := range r.Objectives {
		f.HUD(fmt.Sprintf("%-8s %4d  %s", o.Result, o.Score, o.Status))
	}
	f.HUD(fmt.Sprintf("Total %d", r.TotalScore))
	switch {
	case m.Done():
		f.HUD("Campaign complete")
	case m.ending:
		f.HUD("Loading next level...")
	default:
		f.HUD("Press Enter to continue")
	}
}
