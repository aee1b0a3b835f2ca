package logging

import (
	"go.uber.org/zap"
)

// Kind classifies journal entries for presentation.
type Kind string

// Journal entry kinds.
const (
	KindInfo      Kind = "info"
	KindWarn      Kind = "warn"
	KindObjective Kind = "objective"
	KindDanger    Kind = "danger"
)

// JournalSize is the number of entries kept for the UI.
const JournalSize = 32

// Entry is one line of gameplay feedback.
type Entry struct {
	Frame   uint64 `json:"frame"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Source  string `json:"source,omitempty"`
}

// Journal is the in-game event log. Every entry also goes to the process logger.
// Not safe for concurrent use; it belongs to the match loop.
type Journal struct {
	logger *zap.Logger
	frame  func() uint64

	entries [JournalSize]Entry
	next    int
	count   int
}

// NewJournal creates a journal. frame may be nil.
func NewJournal(logger *zap.Logger, frame func() uint64) *Journal {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Journal{logger: logger, frame: frame}
}

// Log records a message.
func (j *Journal) Log(kind Kind, msg, source string) {
	e := Entry{Kind: kind, Message: msg, Source: source}
	if j.frame != nil {
		e.Frame = j.frame()
	}

	j.entries[j.next] = e
	j.next = (j.next + 1) % JournalSize
	j.count = min(j.count+1, JournalSize)

	fields := []zap.Field{zap.String("kind", string(kind)), zap.Uint64("frame", e.Frame)}
	if source != "" {
		fields = append(fields, zap.String("source", source))
	}
	switch kind {
	case KindWarn, KindDanger:
		j.logger.Warn(msg, fields...)
	default:
		j.logger.Info(msg, fields...)
	}
}

// Info records an info entry.
func (j *Journal) Info(msg, source string) { j.Log(KindInfo, msg, source) }

// Warn records a warning entry.
func (j *Journal) Warn(msg, source string) { j.Log(KindWarn, msg, source) }

// Tail returns up to n most recent entries, oldest first.
func (j *Journal) Tail(n int) []Entry {
	n = min(n, j.count)
	out := make([]Entry, n)
	start := (j.next - n + JournalSize) % JournalSize
	for i := range out {
		out[i] = j.entries[(start+i)%JournalSize]
	}
	return out
}

// Len returns the number of kept entries.
func (j *Journal) Len() int { return j.count }

// Last returns the most recent entry.
func (j *Journal) Last() (Entry, bool) {
	if j.count == 0 {
		return Entry{}, false
	}
	return j.entries[(j.next-1+JournalSize)%JournalSize], true
}
