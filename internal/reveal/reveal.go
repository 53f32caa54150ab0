// Package reveal tracks which page elements have been scrolled into view.
// An element is revealed the first time it becomes visible and is then no
// longer observed.
package reveal

// Span is the line range an element occupies on the page, end exclusive.
type Span struct {
	Start int
	End   int
}

// Threshold is the fraction of an element that must be visible.
type Threshold float64

type observation struct {
	span      Span
	threshold Threshold
}

// Tracker observes elements until they are revealed.
type Tracker struct {
	threshold Threshold
	observed  map[string]observation
	revealed  map[string]struct{}
}

// NewTracker returns a tracker. Thresholds outside (0,1] are treated as any
// visible line.
func NewTracker(threshold Threshold) *Tracker {
	return &Tracker{
		threshold: threshold,
		observed:  map[string]observation{},
		revealed:  map[string]struct{}{},
	}
}

// Observe registers or moves an element with the tracker's threshold.
// Revealed elements are not observed again.
func (t *Tracker) Observe(id string, span Span) {
	t.ObserveAt(id, span, t.threshold)
}

// ObserveAt is Observe with a threshold for this element only.
func (t *Tracker) ObserveAt(id string, span Span, threshold Threshold) {
	if _, ok := t.revealed[id]; ok {
		return
	}
	t.observed[id] = observation{span: span, threshold: threshold}
}

// Update reveals every observed element that is visible within the window
// [top, top+height) and returns their ids.
func (t *Tracker) Update(top, height int) []string {
	var newly []string
	for id, o := range t.observed {
		if !visible(o.span, o.threshold, top, height) {
			continue
		}
		t.revealed[id] = struct{}{}
		delete(t.observed, id)
		newly = append(newly, id)
	}
	return newly
}

// Revealed reports whether id has been revealed.
func (t *Tracker) Revealed(id string) bool {
	_, ok := t.revealed[id]
	return ok
}

// Forget drops the given elements, revealed or not, so they can be
// observed and revealed again.
func (t *Tracker) Forget(ids ...string) {
	for _, id := range ids {
		delete(t.observed, id)
		delete(t.revealed, id)
	}
}

func visible(span Span, threshold Threshold, top, height int) bool {
	if height <= 0 || span.End <= span.Start {
		return false
	}
	lo := max(span.Start, top)
	hi := min(span.End, top+height)
	if hi <= lo {
		return false
	}
	if threshold <= 0 || threshold > 1 {
		return true
	}
	size := span.End - span.Start
	return float64(hi-lo) >= float64(threshold)*float64(size)
}
