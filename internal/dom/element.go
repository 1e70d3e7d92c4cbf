package dom

import "sort"

// Class and attribute names shared by every widget on the page.
const (
	ClassVisible = "is-visible"
	ClassReveal  = "reveal"
	ClassError   = "is-error"
	ClassSuccess = "is-success"

	AttrExpanded = "aria-expanded"
	AttrInvalid  = "aria-invalid"
	AttrBusy     = "aria-busy"
	AttrPressed  = "aria-pressed"
	AttrDisabled = "disabled"
)

// Element is the host binding a widget reads and writes. It carries only the
// state the renderer needs: a hidden flag, class tags, attributes and text.
type Element struct {
	ID     string
	Hidden bool
	Text   string

	classes map[string]struct{}
	attrs   map[string]string
}

// New returns an empty, visible element.
func New(id string) *Element {
	return &Element{
		ID:      id,
		classes: map[string]struct{}{},
		attrs:   map[string]string{},
	}
}

func (e *Element) AddClass(names ...string) {
	for _, name := range names {
		e.classes[name] = struct{}{}
	}
}

func (e *Element) RemoveClass(names ...string) {
	for _, name := range names {
		delete(e.classes, name)
	}
}

// ToggleClass adds name when on is true and removes it otherwise.
func (e *Element) ToggleClass(name string, on bool) {
	if on {
		e.AddClass(name)
		return
	}
	e.RemoveClass(name)
}

func (e *Element) HasClass(name string) bool {
	_, ok := e.classes[name]
	return ok
}

// Classes returns the class tags in sorted order.
func (e *Element) Classes() []string {
	out := make([]string, 0, len(e.classes))
	for name := range e.classes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (e *Element) SetAttr(name, value string) {
	e.attrs[name] = value
}

func (e *Element) RemoveAttr(name string) {
	delete(e.attrs, name)
}

func (e *Element) Attr(name string) (string, bool) {
	value, ok := e.attrs[name]
	return value, ok
}

// BoolAttr reports whether the attribute holds the literal "true".
func (e *Element) BoolAttr(name string) bool {
	return e.attrs[name] == "true"
}

// SetBoolAttr writes "true" or "false".
func (e *Element) SetBoolAttr(name string, value bool) {
	if value {
		e.attrs[name] = "true"
		return
	}
	e.attrs[name] = "false"
}

// Visible reports whether the element occupies layout and carries the
// visible class, i.e. whether a fade-in has been requested for it.
func (e *Element) Visible() bool {
	return !e.Hidden && e.HasClass(ClassVisible)
}
