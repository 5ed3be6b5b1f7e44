package invite

import "math/rand/v2"

// EvadeMargin keeps the NO control this many pixels away from every edge.
const EvadeMargin = 16

// DefaultCardSize is used when the rendered size of the control is unknown.
var DefaultCardSize = Size{Width: 360, Height: 220}

// Size is a width and height in pixels (or terminal cells).
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Point is a top-left position.
type Point struct {
	Left int `json:"left"`
	Top  int `json:"top"`
}

// Placement is where the NO control is drawn. A non-floating placement
// means the control sits in its normal layout position.
type Placement struct {
	Floating bool `json:"floating"`
	Point
}

// Evade picks a new position for a card of the given size inside viewport,
// at least margin away from each edge. intn(n) must return a value in
// [0, n). When the card does not fit, the position collapses to the margin.
func Evade(viewport, card Size, margin int, intn func(n int) int) Point {
	maxLeft := max(margin, viewport.Width-card.Width-margin)
	maxTop := max(margin, viewport.Height-card.Height-margin)

	return Point{
		Left: intn(maxLeft-margin+1) + margin,
		Top:  intn(maxTop-margin+1) + margin,
	}
}

// Dodger tracks the NO control across evasions.
type Dodger struct {
	placement Placement
	intn      func(n int) int
}

// NewDodger creates a dodger in the non-floating position. A nil intn uses
// math/rand/v2.
func NewDodger(intn func(n int) int) *Dodger {
	if intn == nil {
		intn = rand.IntN
	}
	return &Dodger{intn: intn}
}

// Dodge moves the control and returns the placements to render in order.
// The first dodge pins the control where it currently is before moving it,
// so the move can be animated; later dodges jump straight to the new spot.
func (d *Dodger) Dodge(viewport Size, current Point, card Size) []Placement {
	if card.Width <= 0 || card.Height <= 0 {
		card = DefaultCardSize
	}
	next := Placement{Floating: true, Point: Evade(viewport, card, EvadeMargin, d.intn)}

	var frames []Placement
	if !d.placement.Floating {
		frames = append(frames, Placement{Floating: true, Point: current})
	}
	frames = append(frames, next)

	d.placement = next
	return frames
}

// Placement returns the current placement.
func (d *Dodger) Placement() Placement {
	return d.placement
}

// Reset returns the control to its layout position.
func (d *Dodger) Reset() {
	d.placement = Placement{}
}
