package input

import (
	"bufio"
	"io"
	"strconv"
	"time"
)

// Stream delivers terminal input bytes via a channel and parses them into events.
// Used for SSH sessions and raw stdin where no event API is available.
type Stream struct {
	ch      chan byte
	pending []byte
	closed  bool

	left, right bool // mouse button levels from previous reports
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r io.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 256)}
	br := bufio.NewReader(r)
	go func() {
		for {
			b, err := br.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool { return s.closed }

// Drain reads all available bytes without blocking and returns the parsed events.
// Incomplete escape sequences are kept for the next call.
func (s *Stream) Drain(now time.Time) []Event {
	buf := s.pending
	s.pending = nil

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	events, rest := s.Parse(buf, now)
	s.pending = rest
	return events
}

// Parse converts raw terminal bytes into events.
// It returns the unconsumed tail when buf ends inside an escape sequence.
func (s *Stream) Parse(buf []byte, now time.Time) ([]Event, []byte) {
	var events []Event
	key := func(k Key) {
		events = append(events, KeyEvent{Code: k, Down: true, At: now})
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b != '\x1b' {
			if k, ok := byteKey(b); ok {
				key(k)
			}
			continue
		}

		// Lone escape at the end of a read is the Escape key.
		if i+1 >= len(buf) {
			key(KeyEscape)
			continue
		}
		if buf[i+1] != '[' {
			key(KeyEscape)
			continue
		}
		if i+2 >= len(buf) {
			return events, append([]byte(nil), buf[i:]...)
		}

		switch buf[i+2] {
		case 'A':
			key(KeyUp)
			i += 2
		case 'B':
			key(KeyDown)
			i += 2
		case 'C':
			key(KeyRight)
			i += 2
		case 'D':
			key(KeyLeft)
			i += 2
		case '<':
			ev, n, complete := s.parseSGR(buf[i+3:])
			if !complete {
				return events, append([]byte(nil), buf[i:]...)
			}
			if ev != nil {
				events = append(events, *ev)
			}
			i += 2 + n
		default:
			// Unknown CSI: skip the introducer.
			i++
		}
	}
	return events, nil
}

// parseSGR parses "b;x;yM" or "b;x;ym" (the part after ESC [ <).
// n is the number of bytes consumed.
func (s *Stream) parseSGR(buf []byte) (ev *MouseEvent, n int, complete bool) {
	var fields [3]int
	field, start := 0, 0
	for i, c := range buf {
		switch {
		case c >= '0' && c <= '9':
			continue
		case c == ';' && field < 2:
			v, _ := strconv.Atoi(string(buf[start:i]))
			fields[field] = v
			field++
			start = i + 1
		case (c == 'M' || c == 'm') && field == 2:
			v, _ := strconv.Atoi(string(buf[start:i]))
			fields[2] = v
			return s.mouseEvent(fields[0], fields[1], fields[2], c == 'M'), i + 1, true
		default:
			// malformed; drop what we saw
			return nil, i + 1, true
		}
	}
	return nil, 0, false
}

func (s *Stream) mouseEvent(code, col, row int, press bool) *MouseEvent {
	ev := &MouseEvent{Col: col, Row: row}

	switch {
	case code&64 != 0:
		if code&1 == 0 {
			ev.Wheel = -1
		} else {
			ev.Wheel = 1
		}
	case code&32 != 0:
		// motion keeps the current levels
	default:
		switch code & 3 {
		case 0:
			s.left = press
		case 2:
			s.right = press
		}
	}

	ev.Left, ev.Right = s.left, s.right
	return ev
}

// byteKey maps a single input byte to a key.
func byteKey(b byte) (Key, bool) {
	switch {
	case b == 3:
		return KeyCtrlC, true
	case b == '\r' || b == '\n':
		return KeyEnter, true
	case b == '\t':
		return KeyTab, true
	case b == ' ':
		return KeySpace, true
	case b == '\b' || b == 0x7f:
		return KeyBackspace, true
	case b >= 'A' && b <= 'Z':
		return Key(rune(b - 'A' + 'a')), true
	case b > ' ' && b < 0x7f:
		return Key(rune(b)), true
	}
	return "", false
}
