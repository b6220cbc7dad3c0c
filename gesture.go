package perimeter

// hoverTracker remembers which item a long-press drag is over. It reports
// changes through enter and exit so that an item never receives two enters
// without an exit in between.
type hoverTracker struct {
	hovering *Item
}

// reset forgets the hovered item without reporting anything.
func (h *hoverTracker) reset() {
	h.hovering = nil
}

// move updates tracking for a drag that is now over hit (nil for no item).
func (h *hoverTracker) move(hit *Item, enter, exit func(*Item)) {
	if hit == h.hovering {
		return
	}
	h.release(exit)
	if hit != nil {
		h.hovering = hit
		enter(hit)
	}
}

// release reports the end of hovering, if any, and clears tracking.
func (h *hoverTracker) release(exit func(*Item)) {
	if h.hovering == nil {
		return
	}
	prev := h.hovering
	h.hovering = nil
	exit(prev)
}

// --- Menu gesture handling ---

// handleTap runs when the anchor is tapped.
func (m *Menu) handleTap(PointerContext) {
	if m.disposed {
		return
	}
	if m.OnTap != nil && !m.OnTap(m) {
		return
	}
	m.invert(true)
}

// handleLongPress runs for every phase of a long press on the anchor.
func (m *Menu) handleLongPress(ctx LongPressContext) {
	if m.disposed {
		return
	}
	switch ctx.Phase {
	case PhaseBegan:
		m.longPressSuppressed = m.OnLongPress != nil && !m.OnLongPress(m)
		if m.longPressSuppressed {
			return
		}
		m.hover.reset()
		m.invert(true)

	case PhaseChanged:
		if m.longPressSuppressed {
			return
		}
		m.hover.move(m.itemAtWorld(ctx.GlobalX, ctx.GlobalY), m.hoverStarted, m.hoverEnded)

	case PhaseEnded:
		if m.longPressSuppressed {
			m.longPressSuppressed = false
			return
		}
		if it := m.itemAtWorld(ctx.GlobalX, ctx.GlobalY); it != nil {
			m.emit(EventMenuSelect, it)
		}
		m.hover.release(m.hoverEnded)
		m.invert(true)

	case PhaseCancelled:
		m.longPressSuppressed = false
		m.hover.release(m.hoverEnded)
	}
}

// itemTapped runs when a satellite item is tapped directly.
func (m *Menu) itemTapped(it *Item) {
	if m.disposed {
		return
	}
	m.hover.release(m.hoverEnded)
	m.emit(EventMenuSelect, it)
	m.invert(true)
}

func (m *Menu) hoverStarted(it *Item) { m.emit(EventMenuHoverStart, it) }
func (m *Menu) hoverEnded(it *Item)   { m.emit(EventMenuHoverEnd, it) }

// itemAtWorld hit-tests the live items against a world-space point.
func (m *Menu) itemAtWorld(wx, wy float64) *Item {
	x, y := m.pool.container.worldToParent(wx, wy)
	return m.pool.itemAt(x, y)
}
