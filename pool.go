package perimeter

import "fmt"

// minHitAlpha is the opacity below which nodes stop receiving input.
const minHitAlpha = 0.01

// Item is one satellite button of a Menu.
type Item struct {
	index int
	node  *Node
}

// Index returns the item's position in the menu, counted from StartAngle.
func (it *Item) Index() int { return it.index }

// Node returns the shape node that displays the item. Datasources style it.
func (it *Item) Node() *Node { return it.node }

// Center returns the live center of the item in the menu's surface space.
func (it *Item) Center() Vec2 { return it.node.Center() }

// Alpha returns the live opacity of the item.
func (it *Item) Alpha() float64 { return it.node.Alpha }

// Datasource fills in the visible content of menu items.
type Datasource interface {
	ConfigureItem(m *Menu, index int, item *Item)
}

// DatasourceFunc adapts a plain function to the Datasource interface.
type DatasourceFunc func(m *Menu, index int, item *Item)

// ConfigureItem calls f(m, index, item).
func (f DatasourceFunc) ConfigureItem(m *Menu, index int, item *Item) {
	f(m, index, item)
}

// itemPool owns the satellite items of one menu and the container node they
// are displayed in.
type itemPool struct {
	container  *Node
	items      []*Item
	configured bool
}

// regenerate makes the pool cover one item per position. Existing items are
// reused in index order; missing ones are created, configured once, wired for
// taps and appended to the container. Items already animating keep their
// current position; the menu lays them out again once the transition settles.
func (p *itemPool) regenerate(m *Menu, positions []Vec2) {
	created := 0
	for i, pos := range positions {
		if i < len(p.items) {
			it := p.items[i]
			if !p.configured {
				m.configureItem(it)
			}
			p.style(m.cfg, it)
			if m.animating {
				m.layoutPending = true
			} else {
				it.node.SetPosition(pos.X, pos.Y)
			}
			continue
		}

		it := p.newItem(m, i)
		m.configureItem(it)
		p.style(m.cfg, it)
		it.node.SetPosition(pos.X, pos.Y)
		it.node.SetAlpha(m.state.itemAlpha())
		p.container.AddChild(it.node)
		p.items = append(p.items, it)
		created++
	}

	// Without a datasource the items only carry placeholder styling; keep
	// asking until one shows up.
	if m.datasource != nil {
		p.configured = true
	}
	if created > 0 {
		debugLogf("menu %q: created %d items (pool %d)", m.Name, created, len(p.items))
	}
}

func (p *itemPool) newItem(m *Menu, index int) *Item {
	w, h := m.cfg.ItemSize.Width, m.cfg.ItemSize.Height
	node := NewShape(fmt.Sprintf("%s/item%d", m.Name, index), w, h, ColorMagenta)
	node.Interactable = true
	it := &Item{index: index, node: node}
	node.UserData = it
	node.OnClick = func(PointerContext) {
		m.itemTapped(it)
	}
	return it
}

// style applies the layout-owned look: size, centered pivot and corners.
func (p *itemPool) style(cfg Config, it *Item) {
	n := it.node
	n.Width = cfg.ItemSize.Width
	n.Height = cfg.ItemSize.Height
	n.SetPivot(n.Width/2, n.Height/2)
	n.CornerRadius = cfg.ItemCornerRadius
}

// clear removes every item from display and forgets them.
func (p *itemPool) clear() {
	for _, it := range p.items {
		it.node.Dispose()
	}
	p.items = nil
	p.configured = false
}

// itemAt returns the topmost item containing (x, y), given in the container's
// parent space, or nil. Hidden and fully transparent items are skipped.
func (p *itemPool) itemAt(x, y float64) *Item {
	for i := len(p.items) - 1; i >= 0; i-- {
		it := p.items[i]
		n := it.node
		if !n.Visible || n.Alpha < minHitAlpha {
			continue
		}
		// Items live in a container that sits at the surface origin.
		lx, ly := transformPoint(invertAffine(computeLocalTransform(n)), x-p.container.X, y-p.container.Y)
		if nodeContainsLocal(n, lx, ly) {
			return it
		}
	}
	return nil
}

// item returns the item displayed by n, or nil.
func (p *itemPool) item(n *Node) *Item {
	for _, it := range p.items {
		if it.node == n {
			return it
		}
	}
	return nil
}
