package perimeter

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// EventStore receives menu events from a Scene. The ecs package provides a
// Donburi-backed implementation.
type EventStore interface {
	EmitEvent(event MenuEvent)
}

// MenuEvent describes one menu event for an EventStore.
type MenuEvent struct {
	Type  EventType
	Menu  string
	State MenuState
	// Index is the item involved, or -1 for transition events.
	Index int
	// X and Y are the item center in the menu's surface space.
	X, Y float64
}

// Default long-press recognition parameters.
const (
	DefaultLongPressDuration = 0.5  // seconds
	DefaultLongPressSlop     = 10.0 // pixels
)

// Scene is the top-level object that owns the node tree, the attached menus
// and the input state.
type Scene struct {
	root    *Node
	store   EventStore
	debug   bool
	surface Size

	// ClearColor fills the screen before drawing. A zero alpha leaves the
	// screen untouched.
	ClearColor Color

	menus   []*Menu
	menuBuf []*Menu

	// Render buffers, reused across shapes
	vertices []ebiten.Vertex
	indices  []uint16

	// Input state
	handlers          handlerRegistry
	captured          [maxPointers]*Node
	pointers          [maxPointers]pointerState
	hitBuf            []*Node
	longPressDuration float32
	longPressSlop     float64
	touchMap          [maxPointers]ebiten.TouchID
	touchUsed         [maxPointers]bool
	prevTouchIDs      []ebiten.TouchID
	injectQueue       []syntheticPointerEvent

	testRunner *TestRunner
	updateFunc func() error
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	return &Scene{
		root:              NewContainer("root"),
		longPressDuration: DefaultLongPressDuration,
		longPressSlop:     DefaultLongPressSlop,
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Update reads the mouse and touch devices and advances the scene by one
// ebiten tick. Call it from ebiten.Game.Update.
func (s *Scene) Update() {
	s.tick(float32(1.0/float64(ebiten.TPS())), true)
}

// Tick advances the scene by dt seconds without reading input devices. Only
// injected input is processed. Use it to drive a scene headlessly.
func (s *Scene) Tick(dt float32) {
	s.tick(dt, false)
}

func (s *Scene) tick(dt float32, devices bool) {
	// Refresh world transforms first so hit testing sees this frame's layout.
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput(dt, devices)

	// Menus may dispose themselves or each other from callbacks.
	s.menuBuf = append(s.menuBuf[:0], s.menus...)
	for _, m := range s.menuBuf {
		m.Update(dt)
	}
	clear(s.menuBuf)

	if s.debug {
		s.debugLog(s.frameStats())
	}
}

// AttachMenu adds m under parent (the root when parent is nil) and lets the
// scene drive its animations and forward its events.
func (s *Scene) AttachMenu(m *Menu, parent *Node) {
	if parent == nil {
		parent = s.root
	}
	if m.scene != nil && m.scene != s {
		m.scene.detachMenu(m)
	}
	if !slices.Contains(s.menus, m) {
		s.menus = append(s.menus, m)
	}
	m.scene = s
	m.Attach(parent)
}

// Menus returns the attached menus. The returned slice MUST NOT be mutated.
func (s *Scene) Menus() []*Menu {
	return s.menus
}

// Menu returns the attached menu with the given name, or nil.
func (s *Scene) Menu(name string) *Menu {
	for _, m := range s.menus {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func (s *Scene) detachMenu(m *Menu) {
	if i := slices.Index(s.menus, m); i >= 0 {
		s.menus = slices.Delete(s.menus, i, i+1)
	}
	m.scene = nil
}

// SetEventStore sets the optional menu event sink.
func (s *Scene) SetEventStore(store EventStore) {
	s.store = store
}

func (s *Scene) emitMenuEvent(m *Menu, typ EventType, it *Item) {
	if s.store == nil {
		return
	}
	ev := MenuEvent{Type: typ, Menu: m.Name, State: m.state, Index: -1}
	if it != nil {
		c := it.Center()
		ev.Index = it.index
		ev.X, ev.Y = c.X, c.Y
	}
	s.store.EmitEvent(ev)
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth warnings and menu transitions are printed, and
// per-frame stats are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// SetSurfaceSize sets the size in pixels of the surface the scene is drawn
// to. Run sets it from RunConfig. Full-surface overlays such as the default
// menu backdrop cover it.
func (s *Scene) SetSurfaceSize(w, h float64) {
	s.surface = Size{Width: max(0, w), Height: max(0, h)}
}

// SurfaceSize returns the size set by SetSurfaceSize.
func (s *Scene) SurfaceSize() Size {
	return s.surface
}

// SetLongPressDuration sets how long, in seconds, a pointer must be held
// before a long press begins.
func (s *Scene) SetLongPressDuration(seconds float64) {
	s.longPressDuration = float32(max(0, seconds))
}

// SetLongPressSlop sets how far, in pixels, a held pointer may wander before
// it no longer counts as a tap or long press.
func (s *Scene) SetLongPressSlop(pixels float64) {
	s.longPressSlop = max(0, pixels)
}

func (s *Scene) frameStats() debugFrameStats {
	var st debugFrameStats
	var walk func(n *Node)
	walk = func(n *Node) {
		st.nodes++
		if n.Type == NodeTypeShape {
			st.shapes++
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(s.root)
	for _, m := range s.menus {
		if m.animating {
			st.animating++
		}
	}
	st.hitTargets = len(s.hitBuf)
	return st
}
