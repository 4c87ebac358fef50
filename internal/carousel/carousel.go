// Package carousel implements the continuously scrolling project strip.
//
// The scroll position is a plain value (State) advanced by a pure function
// (Advance). Whatever schedules frames, be it a ticker goroutine (Loop), a
// bubbletea command or requestAnimationFrame in the browser, only has to
// call Advance once per frame with the step size.
package carousel

// Replicas is the number of copies of the item list laid end to end. Three
// copies keep the visible window filled while the lead item rotates away.
const Replicas = 3

// DefaultStep is the distance in pixels the strip moves per frame.
const DefaultStep = 1.0

// DefaultItemWidth is the rendered width of one card in pixels, including
// the gap to the next card.
const DefaultItemWidth = 400.0

// Item is a single card on the strip.
type Item struct {
	Image       string `yaml:"image" json:"image"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// State is the scroll position of a strip.
type State struct {
	// Offset is how far, in pixels, the strip has moved past the left edge
	// of the lead item.
	Offset float64 `json:"offset"`
	// Lead is the strip index of the item currently rendered first.
	Lead int `json:"lead"`
	// Rotations counts how many times an item has moved from the front of
	// the strip to the back.
	Rotations int `json:"rotations"`
	Paused    bool `json:"paused"`
}

// Advance returns s moved forward by delta pixels. widths[i] is the rendered
// width of strip item i. Each time the offset reaches the width of the lead
// item, that width is taken off the offset and the next item becomes the
// lead. A paused state, a non-positive delta or an empty strip leaves s
// unchanged.
func Advance(s State, delta float64, widths []float64) State {
	if s.Paused || delta <= 0 || len(widths) == 0 {
		return s
	}

	s.Lead = normalize(s.Lead, len(widths))
	s.Offset += delta

	for {
		w := widths[s.Lead]
		if w <= 0 || s.Offset < w {
			break
		}
		s.Offset -= w
		s.Lead = (s.Lead + 1) % len(widths)
		s.Rotations++
	}

	return s
}

func normalize(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Strip is an immutable, replicated sequence of items with their widths.
type Strip struct {
	base   []Item
	items  []Item
	widths []float64
}

// NewStrip lays Replicas copies of items end to end. Every card is width
// pixels wide.
func NewStrip(items []Item, width float64) *Strip {
	s := &Strip{
		base:   append([]Item(nil), items...),
		items:  make([]Item, 0, len(items)*Replicas),
		widths: make([]float64, 0, len(items)*Replicas),
	}
	for i := 0; i < Replicas; i++ {
		for _, item := range items {
			s.items = append(s.items, item)
			s.widths = append(s.widths, width)
		}
	}
	return s
}

// Len returns the number of cards on the strip.
func (s *Strip) Len() int {
	return len(s.items)
}

// Base returns the items the strip was built from.
func (s *Strip) Base() []Item {
	return append([]Item(nil), s.base...)
}

// Items returns the strip in its initial order.
func (s *Strip) Items() []Item {
	return append([]Item(nil), s.items...)
}

// Widths returns the width of every card on the strip.
func (s *Strip) Widths() []float64 {
	return append([]float64(nil), s.widths...)
}

// Order returns the cards in the order they are rendered for state st: the
// lead item first, the items that rotated away at the back.
func (s *Strip) Order(st State) []Item {
	n := len(s.items)
	if n == 0 {
		return nil
	}
	lead := normalize(st.Lead, n)
	out := make([]Item, 0, n)
	out = append(out, s.items[lead:]...)
	out = append(out, s.items[:lead]...)
	return out
}

// Advance moves st forward by delta using the strip's widths.
func (s *Strip) Advance(st State, delta float64) State {
	return Advance(st, delta, s.widths)
}
