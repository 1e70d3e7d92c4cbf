package motion

import "github.com/csheth/folio/internal/dom"

// RevealThreshold is the visible fraction at which a section is revealed.
const RevealThreshold = 0.2

// Span is the vertical extent of an element in page lines.
type Span struct {
	Top    int
	Height int
}

// Reveal adds the visible class to observed elements the first time enough
// of them scrolls into view, then stops observing them.
type Reveal struct {
	observed []*dom.Element
}

// Observe registers el. With instant set the element is revealed at once.
func (r *Reveal) Observe(el *dom.Element, instant bool) {
	el.AddClass(dom.ClassReveal)
	if instant || el.HasClass(dom.ClassVisible) {
		el.AddClass(dom.ClassVisible)
		return
	}
	r.observed = append(r.observed, el)
}

// Pending returns how many elements are still waiting to be revealed.
func (r *Reveal) Pending() int {
	return len(r.observed)
}

// Update reveals every observed element whose span intersects the viewport
// by at least RevealThreshold of its height. Elements without a span are
// not laid out yet and stay observed.
func (r *Reveal) Update(viewTop, viewHeight int, spans map[*dom.Element]Span) []*dom.Element {
	var revealed []*dom.Element
	remaining := r.observed[:0]
	for _, el := range r.observed {
		span, ok := spans[el]
		if ok && intersection(span, viewTop, viewHeight) >= RevealThreshold {
			el.AddClass(dom.ClassVisible)
			revealed = append(revealed, el)
			continue
		}
		remaining = append(remaining, el)
	}
	r.observed = remaining
	return revealed
}

func intersection(span Span, viewTop, viewHeight int) float64 {
	if span.Height <= 0 {
		return 0
	}
	top := max(span.Top, viewTop)
	bottom := min(span.Top+span.Height, viewTop+viewHeight)
	if bottom <= top {
		return 0
	}
	return float64(bottom-top) / float64(span.Height)
}
