package game

import "github.com/tomz197/spiritwatch/internal/logging"

// snapshotJournal is the number of journal entries carried in a snapshot.
const snapshotJournal = 8

// ActionView is an action of the selection as the UI layer sees it.
type ActionView struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Disabled bool   `json:"disabled"`
	Active   bool   `json:"active"`
}

// ItemView is an inventory slot of the selection.
type ItemView struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
	Usable bool   `json:"usable"`
}

// SelectionView describes the selected entity.
type SelectionView struct {
	Name    string       `json:"name"`
	Stats   []Stat       `json:"stats,omitempty"`
	Actions []ActionView `json:"actions,omitempty"`
	Items   []ItemView   `json:"items,omitempty"`
}

// Snapshot is the state handed to an external UI once per frame.
type Snapshot struct {
	Frame      uint64          `json:"frame"`
	Elapsed    float64         `json:"elapsed"`
	Level      string          `json:"level"`
	Paused     bool            `json:"paused"`
	Done       bool            `json:"done"`
	Selection  *SelectionView  `json:"selection,omitempty"`
	Objectives []ObjectiveUI   `json:"objectives,omitempty"`
	Journal    []logging.Entry `json:"journal"`
	Report     *MissionReport  `json:"report,omitempty"`
}

// Snapshot captures the current UI state.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Frame:   w.time.Frame(),
		Elapsed: w.time.Elapsed(),
		Level:   Campaign[w.levels.Index()].Name,
		Paused:  w.paused,
		Done:    w.levels.Done(),
		Journal: w.journal.Tail(snapshotJournal),
	}
	if w.levels.InTransition() {
		s.Report = w.levels.Report()
	} else if w.objectives != nil && !w.objectives.Destroyed() {
		s.Objectives = w.objectives.Panel()
	}
	if w.ui != nil {
		s.Selection = selectionView(w.ui)
	}
	return s
}

func selectionView(ui *UIData) *SelectionView {
	v := &SelectionView{Name: ui.Name, Stats: ui.Stats}
	for i, a := range ui.Actions {
		v.Actions = append(v.Actions, ActionView{
			Index:    i,
			Name:     a.Name,
			Disabled: a.disabled(),
			Active:   a.active(),
		})
	}
	for i, it := range ui.Items {
		v.Items = append(v.Items, ItemView{
			Index:  i,
			Name:   it.Item.String(),
			Count:  it.Count,
			Usable: it.Do != nil,
		})
	}
	return v
}
