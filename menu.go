package perimeter

import "weak"

// Default anchor look.
var (
	defaultAnchorColor = Color{R: 0.18, G: 0.42, B: 0.95, A: 1}
)

// Menu is a radial popup menu: an anchor button that expands a ring of
// satellite items around itself on tap or long press.
//
// Create one with NewMenu, give it a Datasource, then attach it with
// Scene.AttachMenu (or Menu.Attach plus calling Update yourself each frame).
// Every setter re-lays out or rebuilds the items immediately.
type Menu struct {
	Name string

	// OnTap and OnLongPress run before the built-in toggle. Returning false
	// suppresses it. Nil means allow.
	OnTap       func(m *Menu) bool
	OnLongPress func(m *Menu) bool

	// Transition hooks. Will* fire before the animation starts, Did* after it
	// settles. A transition superseded by a newer one never fires its Did*.
	OnWillExpand   func(m *Menu)
	OnDidExpand    func(m *Menu)
	OnWillCollapse func(m *Menu)
	OnDidCollapse  func(m *Menu)

	// Item hooks.
	OnSelect     func(m *Menu, item *Item)
	OnHoverStart func(m *Menu, item *Item)
	OnHoverEnd   func(m *Menu, item *Item)

	cfg        Config
	state      MenuState
	animating     bool
	layoutPending bool
	generation    uint64

	animator      Animator
	animatorStyle AnimationStyle

	anchor *Node
	pool   itemPool
	hover  hoverTracker

	datasource   Datasource
	backdrop     Backdrop
	backdropNode *Node

	longPressSuppressed bool

	scene    *Scene
	attached bool
	disposed bool
}

// NewMenu creates a menu whose anchor is a w×h button. The anchor's top-left
// corner sits at the local origin; move it with Anchor().SetPosition.
func NewMenu(name string, w, h float64, cfg Config) *Menu {
	m := &Menu{
		Name:          name,
		cfg:           cfg,
		animator:      NewAnimator(cfg.Style),
		animatorStyle: cfg.Style,
		backdrop:      &DimBackdrop{},
	}
	m.anchor = NewShape(name, w, h, defaultAnchorColor)
	m.anchor.Interactable = true
	m.anchor.OnClick = m.handleTap
	m.anchor.OnLongPress = m.handleLongPress
	m.styleAnchor()
	m.pool.container = NewContainer(name + "/items")
	return m
}

// Attach adds the menu to parent. Items are placed below the anchor so the
// anchor stays tappable while they collapse onto it.
func (m *Menu) Attach(parent *Node) {
	if m.disposed {
		return
	}
	parent.AddChild(m.pool.container)
	parent.AddChild(m.anchor)
	m.attached = true
	m.layout()
	switch {
	case m.state == Expanded:
		// Expanded before it had a parent to put a backdrop in.
		m.addBackdrop()
		if m.backdropNode != nil {
			m.backdropNode.SetAlpha(m.state.itemAlpha())
		}
	case m.cfg.Expanded:
		m.SetState(Expanded, false)
	}
}

// Update advances running transitions by dt seconds. Scene.Tick calls it for
// attached menus.
func (m *Menu) Update(dt float32) {
	if m.disposed {
		return
	}
	m.animator.Update(dt)
}

// Dispose tears the menu down. Pending transition callbacks become no-ops.
func (m *Menu) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	m.removeBackdrop()
	m.pool.clear()
	m.hover.reset()
	m.pool.container.Dispose()
	m.anchor.Dispose()
	if m.scene != nil {
		m.scene.detachMenu(m)
	}
}

// Disposed reports whether Dispose has been called.
func (m *Menu) Disposed() bool { return m.disposed }

// --- Accessors ---

// Config returns the current configuration.
func (m *Menu) Config() Config { return m.cfg }

// State returns the state the menu is in or moving towards.
func (m *Menu) State() MenuState { return m.state }

// Animating reports whether a transition is still settling.
func (m *Menu) Animating() bool { return m.animating }

// Anchor returns the anchor button node.
func (m *Menu) Anchor() *Node { return m.anchor }

// Container returns the node holding the satellite items.
func (m *Menu) Container() *Node { return m.pool.container }

// Items returns the satellite items in index order. The returned slice MUST
// NOT be mutated by the caller.
func (m *Menu) Items() []*Item { return m.pool.items }

// Item returns the item at index, or nil.
func (m *Menu) Item(index int) *Item {
	if index < 0 || index >= len(m.pool.items) {
		return nil
	}
	return m.pool.items[index]
}

// ItemForNode returns the item displayed by n, or nil.
func (m *Menu) ItemForNode(n *Node) *Item { return m.pool.item(n) }

// ItemAt returns the topmost visible item containing (x, y) in the space the
// anchor is positioned in, or nil.
func (m *Menu) ItemAt(x, y float64) *Item { return m.pool.itemAt(x, y) }

// Hovered returns the item a long-press drag is currently over, or nil.
func (m *Menu) Hovered() *Item { return m.hover.hovering }

// Positions returns the item centers for the current state.
func (m *Menu) Positions() []Vec2 {
	return Positions(m.cfg, m.state, m.anchor.Bounds())
}

// --- State machine ---

// Toggle expands a collapsed menu or collapses an expanded one, animated.
func (m *Menu) Toggle() {
	m.invert(true)
}

// SetState moves the menu to s. Setting the current state does nothing. An
// unanimated change still runs every hook, synchronously.
func (m *Menu) SetState(s MenuState, animated bool) {
	if s == m.state {
		return
	}
	m.state = s
	m.show(s, animated)
}

func (m *Menu) invert(animated bool) {
	m.state = m.state.Inverse()
	m.show(m.state, animated)
}

// show runs the transition to s. Completion is delivered through a weak
// reference so a disposed or collected menu ignores it.
func (m *Menu) show(s MenuState, animated bool) {
	if m.disposed {
		return
	}
	if s == Expanded {
		m.emit(EventMenuWillExpand, nil)
		m.addBackdrop()
	} else {
		m.emit(EventMenuWillCollapse, nil)
	}

	m.refreshAnimator()
	m.animating = true
	m.generation++
	gen := m.generation

	var duration float32
	if animated {
		duration = float32(m.cfg.Duration)
	}
	positions := Positions(m.cfg, s, m.anchor.Bounds())
	alpha := s.itemAlpha()
	debugLogf("menu %q: %s (animated=%v, duration=%v)", m.Name, s, animated, duration)

	self := weak.Make(m)
	m.animator.Animate(duration, func(f *Frame) {
		for i, it := range m.pool.items {
			if i < len(positions) {
				f.Move(it.node, positions[i])
			}
			f.Fade(it.node, alpha)
		}
		if m.backdropNode != nil {
			f.Fade(m.backdropNode, alpha)
		}
	}, func() {
		mm := self.Value()
		if mm == nil || mm.disposed {
			return
		}
		mm.finish(s, gen)
	})
}

func (m *Menu) finish(s MenuState, gen uint64) {
	if gen != m.generation {
		debugLogf("menu %q: dropped completion of superseded %s transition", m.Name, s)
		return
	}
	m.animating = false
	if m.layoutPending {
		m.layoutPending = false
		m.layout()
	}
	if s == Expanded {
		m.emit(EventMenuDidExpand, nil)
		return
	}
	m.emit(EventMenuDidCollapse, nil)
	m.removeBackdrop()
}

// refreshAnimator swaps in the animator for the configured style once the
// current one has nothing in flight.
func (m *Menu) refreshAnimator() {
	if m.animatorStyle == m.cfg.Style || m.animator.Active() {
		return
	}
	m.animator = NewAnimator(m.cfg.Style)
	m.animatorStyle = m.cfg.Style
}

// --- Layout ---

// layout recomputes item positions for the current state and makes the pool
// cover them.
func (m *Menu) layout() {
	if !m.attached || m.disposed {
		return
	}
	m.pool.regenerate(m, Positions(m.cfg, m.state, m.anchor.Bounds()))
}

// Layout re-runs layout, e.g. after the host moved or resized the anchor.
func (m *Menu) Layout() {
	m.layout()
}

// Reconfigure removes every item and builds them again from the datasource.
func (m *Menu) Reconfigure() {
	if m.disposed {
		return
	}
	m.pool.clear()
	m.hover.reset()
	debugLogf("menu %q: reconfigure (%d items)", m.Name, m.cfg.ItemCount)
	m.layout()
}

func (m *Menu) configureItem(it *Item) {
	if m.datasource != nil {
		m.datasource.ConfigureItem(m, it.index, it)
	}
}

func (m *Menu) styleAnchor() {
	m.anchor.CornerRadius = m.cfg.AnchorCornerRadius
	m.anchor.BorderWidth = m.cfg.AnchorBorderWidth
	m.anchor.BorderColor = m.cfg.AnchorBorderColor
}

// --- Configuration setters ---

// SetDatasource installs ds and rebuilds the items from it.
func (m *Menu) SetDatasource(ds Datasource) {
	m.datasource = ds
	m.Reconfigure()
}

// SetBackdrop replaces the backdrop controller. Nil disables backdrops even
// when HasBackdrop is set.
func (m *Menu) SetBackdrop(b Backdrop) {
	m.removeBackdrop()
	m.backdrop = b
	if m.state == Expanded && !m.animating {
		m.addBackdrop()
		if m.backdropNode != nil {
			m.backdropNode.SetAlpha(1)
		}
	}
}

// SetItemCount changes the number of items and rebuilds them.
func (m *Menu) SetItemCount(n int) {
	m.cfg.ItemCount = max(0, n)
	m.Reconfigure()
}

// SetStartAngle sets the angle of the first item in degrees.
func (m *Menu) SetStartAngle(deg float64) {
	m.cfg.StartAngle = deg
	m.layout()
}

// SetAngularSpan sets the arc the items are spread over in degrees.
func (m *Menu) SetAngularSpan(deg float64) {
	m.cfg.AngularSpan = deg
	m.layout()
}

// SetAngleStep overrides the spacing between items. Nil derives it from the
// span again.
func (m *Menu) SetAngleStep(step *float64) {
	m.cfg.AngleStep = step
	m.layout()
}

// SetItemSize resizes the items.
func (m *Menu) SetItemSize(s Size) {
	m.cfg.ItemSize = s
	m.layout()
}

// SetDistance sets the gap between the anchor and the items.
func (m *Menu) SetDistance(d float64) {
	m.cfg.Distance = max(0, d)
	m.layout()
}

// SetItemCornerRadius rounds the item corners and rebuilds the items.
func (m *Menu) SetItemCornerRadius(r float64) {
	m.cfg.ItemCornerRadius = r
	m.Reconfigure()
}

// SetAnchorCornerRadius rounds the anchor corners.
func (m *Menu) SetAnchorCornerRadius(r float64) {
	m.cfg.AnchorCornerRadius = r
	m.styleAnchor()
}

// SetAnchorBorder sets the anchor border width and color.
func (m *Menu) SetAnchorBorder(width float64, c Color) {
	m.cfg.AnchorBorderWidth = width
	m.cfg.AnchorBorderColor = c
	m.styleAnchor()
}

// SetHasBackdrop turns the expanded-state backdrop on or off and rebuilds the
// items.
func (m *Menu) SetHasBackdrop(on bool) {
	m.cfg.HasBackdrop = on
	if !on {
		m.removeBackdrop()
	}
	m.Reconfigure()
}

// SetAnimationStyle changes the easing of future transitions.
func (m *Menu) SetAnimationStyle(s AnimationStyle) {
	m.cfg.Style = s
	m.refreshAnimator()
}

// SetAnimationDuration changes the length of future transitions in seconds.
func (m *Menu) SetAnimationDuration(seconds float64) {
	m.cfg.Duration = max(0, seconds)
}

// SetExpanded jumps to the expanded or collapsed state without animating.
func (m *Menu) SetExpanded(expanded bool) {
	m.cfg.Expanded = expanded
	if expanded {
		m.SetState(Expanded, false)
	} else {
		m.SetState(Collapsed, false)
	}
}

// SetConfig replaces the whole configuration, rebuilding the items when the
// count, corner radius or backdrop changed and re-laying them out otherwise.
func (m *Menu) SetConfig(cfg Config) {
	old := m.cfg
	m.cfg = cfg
	m.styleAnchor()
	m.refreshAnimator()
	if cfg.ItemCount != old.ItemCount || cfg.ItemCornerRadius != old.ItemCornerRadius || cfg.HasBackdrop != old.HasBackdrop {
		if !cfg.HasBackdrop {
			m.removeBackdrop()
		}
		m.Reconfigure()
	} else {
		m.layout()
	}
	if cfg.Expanded != old.Expanded {
		m.SetExpanded(cfg.Expanded)
	}
}

// --- Events ---

// emit delivers a menu event to the matching hook and the scene's event store.
func (m *Menu) emit(typ EventType, it *Item) {
	switch typ {
	case EventMenuWillExpand:
		if m.OnWillExpand != nil {
			m.OnWillExpand(m)
		}
	case EventMenuDidExpand:
		if m.OnDidExpand != nil {
			m.OnDidExpand(m)
		}
	case EventMenuWillCollapse:
		if m.OnWillCollapse != nil {
			m.OnWillCollapse(m)
		}
	case EventMenuDidCollapse:
		if m.OnDidCollapse != nil {
			m.OnDidCollapse(m)
		}
	case EventMenuSelect:
		if m.OnSelect != nil {
			m.OnSelect(m, it)
		}
	case EventMenuHoverStart:
		if m.OnHoverStart != nil {
			m.OnHoverStart(m, it)
		}
	case EventMenuHoverEnd:
		if m.OnHoverEnd != nil {
			m.OnHoverEnd(m, it)
		}
	}
	if m.scene != nil {
		m.scene.emitMenuEvent(m, typ, it)
	}
}
