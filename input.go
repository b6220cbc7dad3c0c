package perimeter

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constants ---

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// --- Per-pointer state ---

type pointerState struct {
	down      bool
	startX    float64
	startY    float64
	lastX     float64
	lastY     float64
	hitNode   *Node
	hoverNode *Node // last node the pointer was hovering over (for enter/leave)
	button    MouseButton
	held      float32 // seconds since the press
	strayed   bool    // moved beyond the long-press slop since the press
	longPress *Node   // node receiving the active long press, if any
}

// --- Handler registry ---

type handler[T any] struct {
	id uint32
	fn func(T)
}

func removeHandler[T any](s []handler[T], id uint32) []handler[T] {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = handler[T]{}
			return s[:len(s)-1]
		}
	}
	return s
}

type handlerRegistry struct {
	pointerDown  []handler[PointerContext]
	pointerUp    []handler[PointerContext]
	pointerEnter []handler[PointerContext]
	pointerLeave []handler[PointerContext]
	click        []handler[PointerContext]
	longPress    []handler[LongPressContext]
	nextID       uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerDown:
		h.reg.pointerDown = removeHandler(h.reg.pointerDown, h.id)
	case EventPointerUp:
		h.reg.pointerUp = removeHandler(h.reg.pointerUp, h.id)
	case EventPointerEnter:
		h.reg.pointerEnter = removeHandler(h.reg.pointerEnter, h.id)
	case EventPointerLeave:
		h.reg.pointerLeave = removeHandler(h.reg.pointerLeave, h.id)
	case EventClick:
		h.reg.click = removeHandler(h.reg.click, h.id)
	case EventLongPress:
		h.reg.longPress = removeHandler(h.reg.longPress, h.id)
	}
}

// --- Scene-level event registration ---

func (s *Scene) pointerHandle(list *[]handler[PointerContext], event EventType, fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	*list = append(*list, handler[PointerContext]{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: event}
}

// OnPointerDown registers a scene-level callback for pointer down events.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	return s.pointerHandle(&s.handlers.pointerDown, EventPointerDown, fn)
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	return s.pointerHandle(&s.handlers.pointerUp, EventPointerUp, fn)
}

// OnPointerEnter registers a scene-level callback fired when the pointer
// moves over a new node.
func (s *Scene) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	return s.pointerHandle(&s.handlers.pointerEnter, EventPointerEnter, fn)
}

// OnPointerLeave registers a scene-level callback fired when the pointer
// leaves a node.
func (s *Scene) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	return s.pointerHandle(&s.handlers.pointerLeave, EventPointerLeave, fn)
}

// OnClick registers a scene-level callback for taps: press and release on the
// same node without straying beyond the slop or turning into a long press.
func (s *Scene) OnClick(fn func(PointerContext)) CallbackHandle {
	return s.pointerHandle(&s.handlers.click, EventClick, fn)
}

// OnLongPress registers a scene-level callback for every phase of every long
// press. Registering one makes every interactable node long-pressable.
func (s *Scene) OnLongPress(fn func(LongPressContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.longPress = append(s.handlers.longPress, handler[LongPressContext]{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventLongPress}
}

// CapturePointer routes all events for pointerID to the given node.
func (s *Scene) CapturePointer(pointerID int, node *Node) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = node
	}
}

// ReleasePointer stops routing events for pointerID to a captured node.
func (s *Scene) ReleasePointer(pointerID int) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = nil
	}
}

// CancelPointer aborts whatever gesture pointerID is part of. An active long
// press receives PhaseCancelled; no click or pointer up follows.
func (s *Scene) CancelPointer(pointerID int) {
	if pointerID < 0 || pointerID >= maxPointers {
		return
	}
	ps := &s.pointers[pointerID]
	if !ps.down {
		return
	}
	if ps.longPress != nil {
		s.fireLongPress(ps.longPress, PhaseCancelled, pointerID, ps.lastX, ps.lastY, ps.startX, ps.startY)
	}
	s.captured[pointerID] = nil
	*ps = pointerState{hoverNode: ps.hoverNode}
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise the node's own size.
// Containers with no HitShape are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	w, h := n.Size()
	if w == 0 && h == 0 {
		return false
	}
	return lx >= 0 && lx <= w && ly >= 0 && ly <= h
}

// collectInteractable walks the tree in painter order (DFS, ZIndex-sorted),
// appending hit-testable nodes to buf. Invisible subtrees are skipped; nodes
// that are not interactable, or too transparent to see, are not collected but
// their children still are.
func (s *Scene) collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible {
		return buf
	}
	if n.Interactable && n.worldAlpha >= minHitAlpha && (n.HitShape != nil || n.Type != NodeTypeContainer) {
		buf = append(buf, n)
	}
	for _, child := range orderedChildren(n) {
		buf = s.collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (worldX, worldY).
// Returns nil if nothing is hit.
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.hitBuf = s.collectInteractable(s.root, s.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost visual node first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(worldX, worldY)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

// processInput feeds one injected event, if any, through the pointer state
// machine. Otherwise it reads the devices when asked to, or keeps a held
// synthetic pointer held so long presses can mature.
func (s *Scene) processInput(dt float32, devices bool) {
	if s.processInjectedInput(dt) {
		return
	}
	if devices {
		s.processMousePointer(dt)
		s.processTouchPointers(dt)
		return
	}
	if ps := &s.pointers[0]; ps.down {
		s.processPointer(0, ps.lastX, ps.lastY, true, ps.button, dt)
	}
}

// processMousePointer handles mouse input (pointer 0).
func (s *Scene) processMousePointer(dt float32) {
	mx, my := ebiten.CursorPosition()

	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}

	s.processPointer(0, float64(mx), float64(my), pressed, button, dt)
}

// processTouchPointers handles touch input (pointers 1-9).
func (s *Scene) processTouchPointers(dt float32) {
	touchIDs := ebiten.AppendTouchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		s.processPointer(slot, float64(tx), float64(ty), true, MouseButtonLeft, dt)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !activeSlots[i] {
			ps := &s.pointers[i]
			if ps.down {
				s.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft, dt)
			}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (s *Scene) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// wantsLongPress reports whether holding a pointer on n can start a long press.
func (s *Scene) wantsLongPress(n *Node) bool {
	return n != nil && (n.OnLongPress != nil || len(s.handlers.longPress) > 0)
}

// processPointer runs the pointer state machine for a single pointer.
func (s *Scene) processPointer(pointerID int, wx, wy float64, pressed bool, button MouseButton, dt float32) {
	ps := &s.pointers[pointerID]

	var target *Node
	if s.captured[pointerID] != nil {
		target = s.captured[pointerID]
	} else {
		target = s.hitTest(wx, wy)
	}

	if target != ps.hoverNode {
		if ps.hoverNode != nil {
			s.firePointer(EventPointerLeave, ps.hoverNode, pointerID, wx, wy, button)
		}
		if target != nil {
			s.firePointer(EventPointerEnter, target, pointerID, wx, wy, button)
		}
		ps.hoverNode = target
	}

	switch {
	case pressed && !ps.down:
		hover := ps.hoverNode
		*ps = pointerState{
			down: true, button: button, hoverNode: hover,
			startX: wx, startY: wy, lastX: wx, lastY: wy,
			hitNode: target,
		}
		s.firePointer(EventPointerDown, target, pointerID, wx, wy, ps.button)

	case !pressed && ps.down:
		if lp := ps.longPress; lp != nil {
			phase := PhaseEnded
			if lp.IsDisposed() {
				phase = PhaseCancelled
			}
			s.fireLongPress(lp, phase, pointerID, wx, wy, ps.startX, ps.startY)
		} else if ps.hitNode != nil && ps.hitNode == target && !ps.strayed {
			s.firePointer(EventClick, target, pointerID, wx, wy, ps.button)
		}
		s.firePointer(EventPointerUp, target, pointerID, wx, wy, ps.button)

		s.captured[pointerID] = nil
		hover := ps.hoverNode
		*ps = pointerState{hoverNode: hover, lastX: wx, lastY: wy}

	case pressed && ps.down:
		ps.held += dt
		moved := wx != ps.lastX || wy != ps.lastY
		if !ps.strayed && math.Hypot(wx-ps.startX, wy-ps.startY) > s.longPressSlop {
			ps.strayed = true
		}
		ps.lastX, ps.lastY = wx, wy

		if lp := ps.longPress; lp != nil {
			if lp.IsDisposed() {
				s.fireLongPress(lp, PhaseCancelled, pointerID, wx, wy, ps.startX, ps.startY)
				ps.longPress = nil
				ps.hitNode = nil
			} else if moved {
				s.fireLongPress(lp, PhaseChanged, pointerID, wx, wy, ps.startX, ps.startY)
			}
			return
		}
		if !ps.strayed && ps.held >= s.longPressDuration && s.wantsLongPress(ps.hitNode) && !ps.hitNode.IsDisposed() {
			ps.longPress = ps.hitNode
			s.fireLongPress(ps.longPress, PhaseBegan, pointerID, wx, wy, ps.startX, ps.startY)
		}

	default:
		ps.lastX, ps.lastY = wx, wy
	}
}

// --- Event dispatch ---

func (s *Scene) firePointer(event EventType, node *Node, pointerID int, wx, wy float64, button MouseButton) {
	ctx := PointerContext{GlobalX: wx, GlobalY: wy, Button: button, PointerID: pointerID}
	if node != nil {
		ctx.Node = node
		ctx.UserData = node.UserData
		ctx.LocalX, ctx.LocalY = node.WorldToLocal(wx, wy)
	}

	var list []handler[PointerContext]
	var fn func(PointerContext)
	switch event {
	case EventPointerDown:
		list = s.handlers.pointerDown
		if node != nil {
			fn = node.OnPointerDown
		}
	case EventPointerUp:
		list = s.handlers.pointerUp
		if node != nil {
			fn = node.OnPointerUp
		}
	case EventPointerEnter:
		list = s.handlers.pointerEnter
		if node != nil {
			fn = node.OnPointerEnter
		}
	case EventPointerLeave:
		list = s.handlers.pointerLeave
		if node != nil {
			fn = node.OnPointerLeave
		}
	case EventClick:
		list = s.handlers.click
		if node != nil {
			fn = node.OnClick
		}
	}

	// Scene-level handlers first.
	for _, h := range list {
		h.fn(ctx)
	}
	// Per-node callback.
	if fn != nil {
		fn(ctx)
	}
}

func (s *Scene) fireLongPress(node *Node, phase GesturePhase, pointerID int, wx, wy, startX, startY float64) {
	ctx := LongPressContext{
		Node: node, Phase: phase,
		GlobalX: wx, GlobalY: wy, StartX: startX, StartY: startY,
		PointerID: pointerID,
	}
	for _, h := range s.handlers.longPress {
		h.fn(ctx)
	}
	if node != nil && node.OnLongPress != nil {
		node.OnLongPress(ctx)
	}
}
