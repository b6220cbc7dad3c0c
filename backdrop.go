package perimeter

import "math"

// Backdrop creates and removes the node shown behind an expanded menu.
//
// AddBackdrop runs when the menu starts expanding and Config.HasBackdrop is
// set; it returns the node it added, or nil for none. The menu fades the node
// along with its items. RemoveBackdrop runs once the collapse has settled.
type Backdrop interface {
	AddBackdrop(m *Menu) *Node
	RemoveBackdrop(m *Menu, n *Node)
}

// DimBackdrop is the default Backdrop: a translucent rectangle inserted just
// below the menu that collapses it when tapped.
type DimBackdrop struct {
	// Bounds is the area to cover in the menu's surface space. A zero Bounds
	// covers the scene's whole surface (see Scene.SetSurfaceSize), or the item
	// ring, ContainerBounds of the anchor, while the surface size is unknown.
	Bounds Rect
	// Color fills the backdrop. A zero Color uses translucent black.
	Color Color
}

var defaultDimColor = Color{R: 0, G: 0, B: 0, A: 0.4}

// AddBackdrop inserts the dim rectangle below the menu's items.
func (d *DimBackdrop) AddBackdrop(m *Menu) *Node {
	parent := m.pool.container.Parent
	if parent == nil {
		return nil
	}
	b := d.Bounds
	if b == (Rect{}) {
		b = m.surfaceBounds(parent)
	}
	c := d.Color
	if c == (Color{}) {
		c = defaultDimColor
	}

	n := NewShape(m.Name+"/backdrop", b.Width, b.Height, c)
	n.SetPosition(b.X, b.Y)
	n.Interactable = true
	n.Alpha = 0
	n.OnClick = func(PointerContext) {
		m.Toggle()
	}
	parent.AddChildAt(n, parent.ChildIndex(m.pool.container))
	return n
}

// surfaceBounds returns the scene surface in parent's space.
func (m *Menu) surfaceBounds(parent *Node) Rect {
	if m.scene == nil || m.scene.surface.Width <= 0 || m.scene.surface.Height <= 0 {
		return ContainerBounds(m.cfg, m.anchor.Bounds())
	}
	sz := m.scene.surface
	x0, y0 := parent.WorldToLocal(0, 0)
	x1, y1 := parent.WorldToLocal(sz.Width, sz.Height)
	return Rect{X: min(x0, x1), Y: min(y0, y1), Width: math.Abs(x1 - x0), Height: math.Abs(y1 - y0)}
}

// RemoveBackdrop disposes the node AddBackdrop created.
func (d *DimBackdrop) RemoveBackdrop(_ *Menu, n *Node) {
	n.Dispose()
}

// addBackdrop shows the backdrop for an expansion, reusing one left over from
// a collapse that never finished.
func (m *Menu) addBackdrop() {
	if !m.cfg.HasBackdrop || m.backdrop == nil {
		return
	}
	if m.backdropNode != nil && !m.backdropNode.IsDisposed() {
		return
	}
	m.backdropNode = m.backdrop.AddBackdrop(m)
	if m.backdropNode != nil {
		debugLogf("menu %q: backdrop added", m.Name)
	}
}

// removeBackdrop takes the backdrop down, if one is shown.
func (m *Menu) removeBackdrop() {
	n := m.backdropNode
	if n == nil {
		return
	}
	m.backdropNode = nil
	if m.backdrop != nil && !n.IsDisposed() {
		m.backdrop.RemoveBackdrop(m, n)
	}
	debugLogf("menu %q: backdrop removed", m.Name)
}
