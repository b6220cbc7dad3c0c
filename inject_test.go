package perimeter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var allowEvents = cmp.AllowUnexported(syntheticPointerEvent{})

func TestInjectTap(t *testing.T) {
	s := NewScene()
	n := interactableShape("n", 0, 0, 100, 100)
	s.Root().AddChild(n)

	var clicked bool
	s.OnClick(func(ctx PointerContext) {
		clicked = true
		if ctx.Node != n {
			t.Error("expected the shape node")
		}
	})

	s.InjectTap(50, 50)
	if s.PendingInput() != 2 {
		t.Fatalf("expected 2 queued events, got %d", s.PendingInput())
	}

	// Frame 1: press
	s.Tick(frame)
	if s.PendingInput() != 1 || clicked {
		t.Fatalf("after press: pending %d clicked %v", s.PendingInput(), clicked)
	}

	// Frame 2: release → click fires
	s.Tick(frame)
	if s.PendingInput() != 0 || !clicked {
		t.Errorf("after release: pending %d clicked %v", s.PendingInput(), clicked)
	}
}

func TestInjectLongPressQueuesHold(t *testing.T) {
	s := NewScene()
	s.InjectLongPress(10, 20, 3)
	want := []syntheticPointerEvent{
		{x: 10, y: 20, pressed: true},
		{x: 10, y: 20, pressed: true},
		{x: 10, y: 20, pressed: true},
	}
	if diff := cmp.Diff(want, s.injectQueue, allowEvents); diff != "" {
		t.Errorf("queue (-want +got):\n%s", diff)
	}
}

func TestInjectDrag_MinFrames(t *testing.T) {
	s := NewScene()
	s.InjectDrag(0, 0, 10, 10, 0)
	want := []syntheticPointerEvent{
		{x: 0, y: 0, pressed: true},
		{x: 10, y: 10},
	}
	if diff := cmp.Diff(want, s.injectQueue, allowEvents); diff != "" {
		t.Errorf("queue (-want +got):\n%s", diff)
	}
}

func TestInjectQueueOrder(t *testing.T) {
	s := NewScene()
	s.InjectPress(1, 1)
	s.InjectMove(2, 2)
	s.InjectRelease(3, 3)

	for i, want := range []float64{1, 2, 3} {
		s.processInput(frame, false)
		if got := s.pointers[0].lastX; got != want {
			t.Errorf("frame %d: pointer at %v, want %v", i, got, want)
		}
	}
	if s.pointers[0].down {
		t.Error("pointer should be up after the release")
	}
}

func TestHeadlessTickKeepsPointerHeld(t *testing.T) {
	s := NewScene()
	s.InjectPress(5, 5)
	tickN(s, 10)
	ps := s.pointers[0]
	if !ps.down {
		t.Fatal("pointer should still be down")
	}
	if want := float32(9) / 60; ps.held < want-1e-4 || ps.held > want+1e-4 {
		t.Errorf("held = %v s, want ~%v", ps.held, want)
	}
}

func TestProcessInjectedInput_EmptyQueue(t *testing.T) {
	s := NewScene()
	if s.processInjectedInput(frame) {
		t.Error("empty queue should report nothing consumed")
	}
}
