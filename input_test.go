package perimeter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// --- HitShape tests ---

func TestHitRectContains(t *testing.T) {
	r := HitRect{X: 10, Y: 20, Width: 100, Height: 50}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 5, 40, false},
		{"outside right", 115, 40, false},
		{"outside top", 50, 15, false},
		{"outside bottom", 50, 75, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitRect.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitCircleContains(t *testing.T) {
	c := HitCircle{CenterX: 50, CenterY: 50, Radius: 25}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 50, 50, true},
		{"on circumference", 75, 50, true},
		{"inside", 60, 50, true},
		{"outside", 80, 50, false},
		{"outside diagonal", 70, 70, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitCircle.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestNodeContainsLocal_ShapeSize(t *testing.T) {
	n := NewShape("s", 40, 20, ColorWhite)
	if !nodeContainsLocal(n, 20, 10) {
		t.Error("center should be inside")
	}
	if nodeContainsLocal(n, 41, 10) {
		t.Error("point right of the shape should be outside")
	}
}

func TestNodeContainsLocal_ContainerNeedsHitShape(t *testing.T) {
	n := NewContainer("c")
	if nodeContainsLocal(n, 0, 0) {
		t.Error("container without HitShape should not contain anything")
	}
	n.HitShape = HitCircle{Radius: 10}
	if !nodeContainsLocal(n, 5, 0) {
		t.Error("container with HitShape should use it")
	}
}

// --- Hit testing ---

func interactableShape(name string, x, y, w, h float64) *Node {
	n := NewShape(name, w, h, ColorWhite)
	n.Interactable = true
	n.SetPosition(x, y)
	return n
}

func TestHitTest_TopmostNode(t *testing.T) {
	s := NewScene()
	bottom := interactableShape("bottom", 0, 0, 100, 100)
	top := interactableShape("top", 50, 50, 100, 100)
	s.Root().AddChild(bottom)
	s.Root().AddChild(top)
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	if got := s.hitTest(75, 75); got != top {
		t.Errorf("overlap hit = %v, want top", got)
	}
	if got := s.hitTest(10, 10); got != bottom {
		t.Errorf("hit = %v, want bottom", got)
	}
	if got := s.hitTest(500, 500); got != nil {
		t.Errorf("miss = %v, want nil", got)
	}
}

func TestHitTest_RespectsZIndex(t *testing.T) {
	s := NewScene()
	a := interactableShape("a", 0, 0, 100, 100)
	b := interactableShape("b", 0, 0, 100, 100)
	s.Root().AddChild(a)
	s.Root().AddChild(b)
	a.SetZIndex(1)
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	if got := s.hitTest(50, 50); got != a {
		t.Errorf("hit = %v, want the node with the higher ZIndex", got)
	}
}

func TestHitTest_SkipsInvisibleSubtree(t *testing.T) {
	s := NewScene()
	group := NewContainer("group")
	group.Visible = false
	group.AddChild(interactableShape("child", 0, 0, 100, 100))
	s.Root().AddChild(group)
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	if got := s.hitTest(50, 50); got != nil {
		t.Errorf("hit = %v inside an invisible subtree", got)
	}
}

func TestHitTest_NonInteractableParentKeepsChildren(t *testing.T) {
	s := NewScene()
	group := NewContainer("group")
	group.SetPosition(100, 100)
	child := interactableShape("child", 0, 0, 50, 50)
	group.AddChild(child)
	s.Root().AddChild(group)
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	if got := s.hitTest(125, 125); got != child {
		t.Errorf("hit = %v, want child", got)
	}
}

func TestHitTest_SkipsTransparentNodes(t *testing.T) {
	s := NewScene()
	n := interactableShape("n", 0, 0, 100, 100)
	n.Alpha = 0.005
	s.Root().AddChild(n)
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	if got := s.hitTest(50, 50); got != nil {
		t.Errorf("hit = %v, want nil for a nearly transparent node", got)
	}

	// Alpha is inherited.
	n.SetAlpha(1)
	s.Root().SetAlpha(0)
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	if got := s.hitTest(50, 50); got != nil {
		t.Errorf("hit = %v, want nil under a transparent parent", got)
	}
}

func TestHitTest_ScaledNode(t *testing.T) {
	s := NewScene()
	n := interactableShape("n", 10, 10, 10, 10)
	n.SetScale(4, 4)
	s.Root().AddChild(n)
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	if got := s.hitTest(45, 45); got != n {
		t.Errorf("hit = %v, want scaled node", got)
	}
}

// --- Dispatch ---

func TestCallbackOrder_SceneThenNode(t *testing.T) {
	s := NewScene()
	n := interactableShape("n", 0, 0, 100, 100)
	s.Root().AddChild(n)

	var order []string
	s.OnPointerDown(func(PointerContext) { order = append(order, "scene") })
	n.OnPointerDown = func(PointerContext) { order = append(order, "node") }

	s.InjectPress(50, 50)
	s.Tick(frame)
	if diff := cmp.Diff([]string{"scene", "node"}, order); diff != "" {
		t.Errorf("callback order (-want +got):\n%s", diff)
	}
}

func TestPointerContext(t *testing.T) {
	s := NewScene()
	n := interactableShape("n", 100, 50, 100, 100)
	n.UserData = "payload"
	s.Root().AddChild(n)

	var got PointerContext
	n.OnClick = func(ctx PointerContext) { got = ctx }
	s.InjectTap(130, 60)
	tickN(s, 2)

	if got.Node != n || got.UserData != "payload" {
		t.Fatalf("click context = %+v", got)
	}
	if got.LocalX != 30 || got.LocalY != 10 || got.GlobalX != 130 || got.GlobalY != 60 {
		t.Errorf("coordinates = local(%v,%v) global(%v,%v)", got.LocalX, got.LocalY, got.GlobalX, got.GlobalY)
	}
}

func TestCallbackHandle_Remove(t *testing.T) {
	s := NewScene()
	s.Root().AddChild(interactableShape("n", 0, 0, 100, 100))

	var a, b int
	ha := s.OnClick(func(PointerContext) { a++ })
	s.OnClick(func(PointerContext) { b++ })

	s.InjectTap(50, 50)
	tickN(s, 2)
	ha.Remove()
	ha.Remove() // second remove is a no-op
	s.InjectTap(50, 50)
	tickN(s, 2)

	if a != 1 || b != 2 {
		t.Errorf("a = %d, b = %d, want 1 and 2", a, b)
	}
	CallbackHandle{}.Remove()
}

func TestEnterLeave(t *testing.T) {
	s := NewScene()
	left := interactableShape("left", 0, 0, 100, 100)
	right := interactableShape("right", 100, 0, 100, 100)
	s.Root().AddChild(left)
	s.Root().AddChild(right)

	var events []string
	s.OnPointerEnter(func(ctx PointerContext) { events = append(events, "enter:"+ctx.Node.Name) })
	s.OnPointerLeave(func(ctx PointerContext) { events = append(events, "leave:"+ctx.Node.Name) })

	s.InjectRelease(50, 50)
	s.InjectRelease(150, 50)
	s.InjectRelease(500, 50)
	tickN(s, 3)

	want := []string{"enter:left", "leave:left", "enter:right", "leave:right"}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

// --- Tap vs long press ---

func TestClickRequiresSameNode(t *testing.T) {
	s := NewScene()
	a := interactableShape("a", 0, 0, 100, 100)
	b := interactableShape("b", 100, 0, 100, 100)
	s.Root().AddChild(a)
	s.Root().AddChild(b)

	var clicks int
	s.OnClick(func(PointerContext) { clicks++ })
	s.InjectDrag(50, 50, 150, 50, 3)
	tickN(s, 3)
	if clicks != 0 {
		t.Errorf("clicks = %d after dragging between nodes, want 0", clicks)
	}
}

func TestClickCancelledByStraying(t *testing.T) {
	s := NewScene()
	s.Root().AddChild(interactableShape("n", 0, 0, 200, 200))

	var clicks int
	s.OnClick(func(PointerContext) { clicks++ })

	// Moving within the slop still clicks.
	s.InjectDrag(50, 50, 55, 55, 3)
	tickN(s, 3)
	if clicks != 1 {
		t.Fatalf("clicks = %d after a small wiggle, want 1", clicks)
	}

	// Straying beyond it and coming back does not.
	s.InjectPress(50, 50)
	s.InjectMove(120, 50)
	s.InjectRelease(50, 50)
	tickN(s, 3)
	if clicks != 1 {
		t.Errorf("clicks = %d after straying, want 1", clicks)
	}
}

func TestLongPressPhases(t *testing.T) {
	s := NewScene()
	n := interactableShape("n", 0, 0, 100, 100)
	s.Root().AddChild(n)

	var phases []GesturePhase
	var clicks int
	n.OnLongPress = func(ctx LongPressContext) {
		phases = append(phases, ctx.Phase)
		if ctx.StartX != 50 || ctx.StartY != 50 {
			t.Errorf("start = (%v,%v), want (50,50)", ctx.StartX, ctx.StartY)
		}
	}
	n.OnClick = func(PointerContext) { clicks++ }

	s.InjectLongPress(50, 50, 20)
	tickN(s, 20)
	if len(phases) != 0 {
		t.Fatalf("long press began after 0.32 s: %v", phases)
	}
	tickN(s, 20)
	if diff := cmp.Diff([]GesturePhase{PhaseBegan}, phases); diff != "" {
		t.Fatalf("phases (-want +got):\n%s", diff)
	}

	// Once began, the pointer may roam anywhere.
	s.InjectMove(300, 300)
	s.InjectMove(300, 300)
	s.InjectRelease(300, 300)
	tickN(s, 3)

	want := []GesturePhase{PhaseBegan, PhaseChanged, PhaseEnded}
	if diff := cmp.Diff(want, phases); diff != "" {
		t.Errorf("phases (-want +got):\n%s", diff)
	}
	if clicks != 0 {
		t.Errorf("clicks = %d, a long press is not a tap", clicks)
	}
}

func TestLongPressNeedsStillPointer(t *testing.T) {
	s := NewScene()
	n := interactableShape("n", 0, 0, 200, 200)
	s.Root().AddChild(n)

	var began bool
	n.OnLongPress = func(ctx LongPressContext) { began = began || ctx.Phase == PhaseBegan }

	s.InjectPress(50, 50)
	s.InjectMove(100, 50)
	tickN(s, 60)
	if began {
		t.Error("long press began after the pointer strayed")
	}
}

func TestLongPressOnlyForInterestedNodes(t *testing.T) {
	s := NewScene()
	n := interactableShape("n", 0, 0, 100, 100)
	s.Root().AddChild(n)

	var clicks int
	n.OnClick = func(PointerContext) { clicks++ }

	// Without long-press handlers a slow tap is still a tap.
	s.InjectPress(50, 50)
	tickN(s, 60)
	s.InjectRelease(50, 50)
	tickN(s, 1)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}

	// A scene handler makes every node long-pressable.
	var phases []GesturePhase
	s.OnLongPress(func(ctx LongPressContext) { phases = append(phases, ctx.Phase) })
	s.InjectPress(50, 50)
	tickN(s, 60)
	s.InjectRelease(50, 50)
	tickN(s, 1)
	if diff := cmp.Diff([]GesturePhase{PhaseBegan, PhaseEnded}, phases); diff != "" {
		t.Errorf("phases (-want +got):\n%s", diff)
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want still 1", clicks)
	}
}

func TestLongPressDurationAndSlopSettings(t *testing.T) {
	s := NewScene()
	s.SetLongPressDuration(0.1)
	s.SetLongPressSlop(50)
	n := interactableShape("n", 0, 0, 200, 200)
	s.Root().AddChild(n)

	var began bool
	n.OnLongPress = func(ctx LongPressContext) { began = began || ctx.Phase == PhaseBegan }

	s.InjectPress(50, 50)
	s.InjectMove(80, 50)
	tickN(s, 12)
	if !began {
		t.Error("long press should begin within the widened slop after 0.1 s")
	}
}

func TestCancelPointer(t *testing.T) {
	s := NewScene()
	n := interactableShape("n", 0, 0, 100, 100)
	s.Root().AddChild(n)

	var phases []GesturePhase
	var ups, clicks int
	n.OnLongPress = func(ctx LongPressContext) { phases = append(phases, ctx.Phase) }
	n.OnPointerUp = func(PointerContext) { ups++ }
	n.OnClick = func(PointerContext) { clicks++ }

	holdAt(s, 50, 50)
	s.CancelPointer(0)
	s.CancelPointer(0) // nothing left to cancel
	s.CancelPointer(99)
	s.InjectRelease(50, 50)
	tickN(s, 1)

	if diff := cmp.Diff([]GesturePhase{PhaseBegan, PhaseCancelled}, phases); diff != "" {
		t.Errorf("phases (-want +got):\n%s", diff)
	}
	if ups != 0 || clicks != 0 {
		t.Errorf("ups = %d, clicks = %d after cancel, want 0", ups, clicks)
	}
}

func TestLongPressCancelledWhenNodeDisposed(t *testing.T) {
	s := NewScene()
	n := interactableShape("n", 0, 0, 100, 100)
	s.Root().AddChild(n)

	var phases []GesturePhase
	s.OnLongPress(func(ctx LongPressContext) { phases = append(phases, ctx.Phase) })

	holdAt(s, 50, 50)
	n.Dispose()
	s.InjectRelease(50, 50)
	tickN(s, 2)

	if diff := cmp.Diff([]GesturePhase{PhaseBegan, PhaseCancelled}, phases); diff != "" {
		t.Errorf("phases (-want +got):\n%s", diff)
	}
}

func TestPointerCapture(t *testing.T) {
	s := NewScene()
	a := interactableShape("a", 0, 0, 100, 100)
	b := interactableShape("b", 200, 0, 100, 100)
	s.Root().AddChild(a)
	s.Root().AddChild(b)

	var downs []string
	s.OnPointerDown(func(ctx PointerContext) { downs = append(downs, ctx.Node.Name) })

	s.CapturePointer(0, a)
	s.InjectTap(250, 50)
	tickN(s, 2)
	s.ReleasePointer(0)
	s.InjectTap(250, 50)
	tickN(s, 2)

	if diff := cmp.Diff([]string{"a", "b"}, downs); diff != "" {
		t.Errorf("pointer down targets (-want +got):\n%s", diff)
	}
}

// holdAt presses at (x, y) and holds until a long press began.
func holdAt(s *Scene, x, y float64) {
	s.InjectPress(x, y)
	tickN(s, 40)
}
