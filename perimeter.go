package perimeter

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorMagenta is the placeholder fill for items no datasource has styled yet.
var ColorMagenta = Color{1, 0, 1, 1}

// premultiplied returns c scaled by its own alpha and an extra alpha factor,
// clamped into [0, 1].
func (c Color) premultiplied(alpha float64) color.RGBA64 {
	a := clamp01(c.A * alpha)
	return color.RGBA64{
		R: uint16(clamp01(c.R) * a * 0xffff),
		G: uint16(clamp01(c.G) * a * 0xffff),
		B: uint16(clamp01(c.B) * a * 0xffff),
		A: uint16(a * 0xffff),
	}
}

// colorScale returns an ebiten.ColorScale that tints by c at the given alpha.
func (c Color) colorScale(alpha float64) ebiten.ColorScale {
	var cs ebiten.ColorScale
	a := float32(clamp01(c.A * alpha))
	cs.Scale(float32(clamp01(c.R))*a, float32(clamp01(c.G))*a, float32(clamp01(c.B))*a, a)
	return cs
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Size is a width and height pair.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Inset returns r grown by d on every side (shrunk when d is negative).
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeShape                     // filled rounded rectangle with optional border and label
	NodeTypeSprite                    // renders a user-provided image
)

// EventType identifies a kind of interaction or menu event.
type EventType uint8

const (
	EventPointerDown  EventType = iota // fires when a pointer button is pressed
	EventPointerUp                     // fires when a pointer button is released
	EventClick                         // fires on press then release over the same node
	EventLongPress                     // fires for every phase of a long-press gesture
	EventPointerEnter                  // fires when the pointer enters a node's bounds
	EventPointerLeave                  // fires when the pointer leaves a node's bounds

	EventMenuWillExpand   // a menu is about to expand
	EventMenuDidExpand    // a menu finished expanding
	EventMenuWillCollapse // a menu is about to collapse
	EventMenuDidCollapse  // a menu finished collapsing
	EventMenuSelect       // a satellite item was selected
	EventMenuHoverStart   // a long-press drag moved onto an item
	EventMenuHoverEnd     // a long-press drag left an item
)

var eventNames = [...]string{
	EventPointerDown:      "pointer-down",
	EventPointerUp:        "pointer-up",
	EventClick:            "click",
	EventLongPress:        "long-press",
	EventPointerEnter:     "pointer-enter",
	EventPointerLeave:     "pointer-leave",
	EventMenuWillExpand:   "will-expand",
	EventMenuDidExpand:    "did-expand",
	EventMenuWillCollapse: "will-collapse",
	EventMenuDidCollapse:  "did-collapse",
	EventMenuSelect:       "select",
	EventMenuHoverStart:   "hover-start",
	EventMenuHoverEnd:     "hover-end",
}

func (e EventType) String() string {
	if int(e) < len(eventNames) {
		return eventNames[e]
	}
	return "unknown"
}

// GesturePhase is the lifecycle stage of a long-press gesture.
type GesturePhase uint8

const (
	PhaseBegan     GesturePhase = iota // press held long enough without moving
	PhaseChanged                       // pointer moved while the long press is active
	PhaseEnded                         // pointer released after the long press began
	PhaseCancelled                     // gesture aborted (node disposed, pointer captured elsewhere)
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)
