package perimeter

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// countingDatasource labels items with their index and counts calls.
type countingDatasource struct {
	calls []int
}

func (d *countingDatasource) ConfigureItem(_ *Menu, index int, it *Item) {
	d.calls = append(d.calls, index)
	it.Node().Label = strconv.Itoa(index)
	it.Node().Color = ColorWhite
}

func TestPoolCreatesOneItemPerPosition(t *testing.T) {
	_, m, _ := newTestMenu(t, instantConfig())
	if got := len(m.Items()); got != 3 {
		t.Fatalf("Items = %d, want 3", got)
	}
	for i, it := range m.Items() {
		if it.Index() != i {
			t.Errorf("item %d has index %d", i, it.Index())
		}
		if it.Node().Parent != m.Container() {
			t.Errorf("item %d is not in the container", i)
		}
		if m.ItemForNode(it.Node()) != it {
			t.Errorf("ItemForNode(item %d) mismatch", i)
		}
		if it.Node().Color != ColorMagenta {
			t.Errorf("item %d without datasource should use the placeholder color", i)
		}
	}
}

func TestPoolConfiguresOncePerItem(t *testing.T) {
	_, m, _ := newTestMenu(t, instantConfig())
	ds := &countingDatasource{}
	m.SetDatasource(ds)

	if diff := cmp.Diff([]int{0, 1, 2}, ds.calls); diff != "" {
		t.Fatalf("datasource calls (-want +got):\n%s", diff)
	}
	before := m.Items()[1]

	// Layout changes reuse items without asking the datasource again.
	m.SetDistance(80)
	m.SetStartAngle(90)
	m.SetItemSize(Size{Width: 40, Height: 40})
	if len(ds.calls) != 3 {
		t.Errorf("datasource called %d times after layout changes, want 3", len(ds.calls))
	}
	if m.Items()[1] != before {
		t.Error("layout change replaced an item")
	}
	if w, h := before.Node().Size(); w != 40 || h != 40 {
		t.Errorf("item size = %vx%v, want 40x40", w, h)
	}
	if got := before.Node().Label; got != "1" {
		t.Errorf("label = %q, want 1", got)
	}

	// Changing the count rebuilds every item.
	m.SetItemCount(5)
	if diff := cmp.Diff([]int{0, 1, 2, 0, 1, 2, 3, 4}, ds.calls); diff != "" {
		t.Errorf("datasource calls after SetItemCount (-want +got):\n%s", diff)
	}
}

func TestPoolReconfigureRebuilds(t *testing.T) {
	_, m, _ := newTestMenu(t, instantConfig())
	ds := &countingDatasource{}
	m.SetDatasource(ds)
	m.SetExpanded(true)

	old := m.Items()
	oldCenters := make([]Vec2, len(old))
	for i, it := range old {
		oldCenters[i] = it.Center()
	}

	m.Reconfigure()
	for i, it := range m.Items() {
		if it == old[i] {
			t.Errorf("item %d survived Reconfigure", i)
		}
		if !old[i].Node().IsDisposed() {
			t.Errorf("old item %d was not disposed", i)
		}
		// Reconfigure keeps the layout for the current state.
		if it.Center() != oldCenters[i] || it.Alpha() != 1 {
			t.Errorf("item %d at %v alpha %v, want %v alpha 1", i, it.Center(), it.Alpha(), oldCenters[i])
		}
	}
	if m.Container().NumChildren() != 3 {
		t.Errorf("container has %d children, want 3", m.Container().NumChildren())
	}
}

func TestPoolRebuildSetters(t *testing.T) {
	tests := []struct {
		name    string
		set     func(m *Menu)
		rebuild bool
	}{
		{"item count", func(m *Menu) { m.SetItemCount(3) }, true},
		{"item corner radius", func(m *Menu) { m.SetItemCornerRadius(8) }, true},
		{"backdrop", func(m *Menu) { m.SetHasBackdrop(true) }, true},
		{"start angle", func(m *Menu) { m.SetStartAngle(0) }, false},
		{"span", func(m *Menu) { m.SetAngularSpan(90) }, false},
		{"step", func(m *Menu) { m.SetAngleStep(Float(20)) }, false},
		{"distance", func(m *Menu) { m.SetDistance(10) }, false},
		{"item size", func(m *Menu) { m.SetItemSize(Size{Width: 20, Height: 20}) }, false},
		{"anchor radius", func(m *Menu) { m.SetAnchorCornerRadius(12) }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, m, _ := newTestMenu(t, instantConfig())
			first := m.Item(0)
			tt.set(m)
			if rebuilt := m.Item(0) != first; rebuilt != tt.rebuild {
				t.Errorf("rebuilt = %v, want %v", rebuilt, tt.rebuild)
			}
		})
	}
}

func TestPoolLayoutFollowsAnchor(t *testing.T) {
	_, m, _ := newTestMenu(t, instantConfig())
	m.SetExpanded(true)

	m.Anchor().SetPosition(0, 0)
	m.Layout()
	want := Positions(m.Config(), Expanded, Rect{Width: 60, Height: 60})
	for i, it := range m.Items() {
		if it.Center() != want[i] {
			t.Errorf("item %d at %v, want %v", i, it.Center(), want[i])
		}
	}
}

func TestPoolLayoutWhileAnimatingSettlesOnNewPositions(t *testing.T) {
	tests := []struct {
		name string
		set  func(m *Menu)
	}{
		{"distance", func(m *Menu) { m.SetDistance(10) }},
		{"start angle", func(m *Menu) { m.SetStartAngle(90) }},
		{"span", func(m *Menu) { m.SetAngularSpan(90) }},
		{"item size", func(m *Menu) { m.SetItemSize(Size{Width: 40, Height: 40}) }},
		{"anchor moved", func(m *Menu) {
			m.Anchor().SetPosition(300, 300)
			m.Layout()
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m, events := newTestMenu(t, DefaultConfig())
			m.Toggle()
			tickN(s, 5)
			mid := m.Item(0).Center()

			tt.set(m)
			if got := m.Item(0).Center(); !near(got, mid) {
				t.Errorf("layout moved an animating item from %v to %v", mid, got)
			}

			var atDidExpand []Vec2
			m.OnDidExpand = func(m *Menu) {
				for _, it := range m.Items() {
					atDidExpand = append(atDidExpand, it.Center())
				}
			}
			tickN(s, 60)
			if m.Animating() {
				t.Fatal("transition should have settled")
			}

			want := m.Positions()
			for i, it := range m.Items() {
				if !near(it.Center(), want[i]) {
					t.Errorf("item %d settled at %v, want %v", i, it.Center(), want[i])
				}
				if i < len(atDidExpand) && !near(atDidExpand[i], want[i]) {
					t.Errorf("item %d at %v when did-expand fired, want %v", i, atDidExpand[i], want[i])
				}
			}
			if len(atDidExpand) != len(want) {
				t.Errorf("did-expand saw %d items, want %d (events %v)", len(atDidExpand), len(want), *events)
			}
		})
	}
}

func TestPoolLayoutWhileCollapsingSettlesOnAnchor(t *testing.T) {
	s, m, _ := newTestMenu(t, DefaultConfig())
	m.Toggle()
	tickN(s, 40)
	m.Toggle()
	tickN(s, 5)

	m.Anchor().SetPosition(0, 0)
	m.Layout()
	tickN(s, 60)

	for i, it := range m.Items() {
		if !near(it.Center(), Vec2{X: 30, Y: 30}) {
			t.Errorf("item %d settled at %v, want the moved anchor center", i, it.Center())
		}
	}
}

func TestItemAt(t *testing.T) {
	_, m, _ := newTestMenu(t, instantConfig())

	if it := m.ItemAt(itemCenters[0].X, itemCenters[0].Y); it != nil {
		t.Errorf("collapsed ItemAt = item %d, want nil", it.Index())
	}

	m.SetExpanded(true)
	for i, c := range itemCenters {
		it := m.ItemAt(c.X, c.Y)
		if it == nil || it.Index() != i {
			t.Errorf("ItemAt(%v) = %v, want item %d", c, it, i)
		}
	}
	if it := m.ItemAt(itemCenters[0].X+14, itemCenters[0].Y-14); it == nil || it.Index() != 0 {
		t.Errorf("ItemAt near the corner = %v, want item 0", it)
	}
	if it := m.ItemAt(itemCenters[0].X+16, itemCenters[0].Y); it != nil {
		t.Errorf("ItemAt outside = item %d, want nil", it.Index())
	}

	m.Item(1).Node().SetAlpha(0.005)
	if it := m.ItemAt(itemCenters[1].X, itemCenters[1].Y); it != nil {
		t.Error("nearly transparent item should not be hit")
	}
	m.Item(2).Node().Visible = false
	if it := m.ItemAt(itemCenters[2].X, itemCenters[2].Y); it != nil {
		t.Error("hidden item should not be hit")
	}
}

func TestItemAtPrefersTopmost(t *testing.T) {
	cfg := instantConfig()
	cfg.AngularSpan = 0
	_, m, _ := newTestMenu(t, cfg)
	m.SetExpanded(true)

	// Every item sits on the same spot; the last one is drawn on top.
	c := m.Item(0).Center()
	if it := m.ItemAt(c.X, c.Y); it == nil || it.Index() != 2 {
		t.Errorf("ItemAt = %v, want item 2", it)
	}
}

func TestItemAtHonorsContainerOffset(t *testing.T) {
	s := NewScene()
	surface := NewContainer("surface")
	surface.SetPosition(1000, 500)
	s.Root().AddChild(surface)

	m := NewMenu("offset", 60, 60, instantConfig())
	m.Anchor().SetPosition(170, 170)
	s.AttachMenu(m, surface)
	m.SetExpanded(true)
	s.Tick(frame)

	// ItemAt takes surface coordinates, itemAtWorld world coordinates.
	if it := m.ItemAt(itemCenters[2].X, itemCenters[2].Y); it == nil || it.Index() != 2 {
		t.Errorf("ItemAt = %v, want item 2", it)
	}
	if it := m.itemAtWorld(itemCenters[2].X+1000, itemCenters[2].Y+500); it == nil || it.Index() != 2 {
		t.Errorf("itemAtWorld = %v, want item 2", it)
	}
}
