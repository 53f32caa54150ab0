package typewriter

import (
	"fmt"
	"io"
	"sync"
)

// LineTarget writes frames to a terminal line. In place mode rewrites the
// line with a carriage return; otherwise every frame goes on its own line.
type LineTarget struct {
	mu      sync.Mutex
	w       io.Writer
	inPlace bool
	cursor  string
	err     error
}

// NewLineTarget returns a LineTarget writing to w.
func NewLineTarget(w io.Writer, inPlace bool, cursor string) *LineTarget {
	return &LineTarget{w: w, inPlace: inPlace, cursor: cursor}
}

// SetText implements Target. The first write error is kept and later frames are dropped.
func (l *LineTarget) SetText(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return
	}
	if l.inPlace {
		_, l.err = fmt.Fprintf(l.w, "\r\x1b[K%s%s", text, l.cursor)
		return
	}
	_, l.err = fmt.Fprintln(l.w, text)
}

// Err returns the first write error.
func (l *LineTarget) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}
