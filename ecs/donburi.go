package ecs

import (
	"github.com/phanxgames/perimeter"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// MenuEventType is the Donburi event type for perimeter menu events.
var MenuEventType = events.NewEventType[perimeter.MenuEvent]()

// MenuData mirrors the last known state of one menu.
type MenuData struct {
	Name  string
	State perimeter.MenuState
	// Selected is the index of the last selected item, or -1.
	Selected int
	// Hovered is the index of the item a long-press drag is over, or -1.
	Hovered int
}

// Menu is the component type holding MenuData.
var Menu = donburi.NewComponentType[MenuData]()

// MenuQuery matches every entity created by a DonburiStore.
var MenuQuery = donburi.NewQuery(filter.Contains(Menu))

// DonburiStore is a perimeter.EventStore backed by a Donburi world.
type DonburiStore struct {
	world    donburi.World
	entities map[string]donburi.Entity
}

// NewDonburiStore creates an EventStore backed by a Donburi world. Menu events
// are published to MenuEventType and can be consumed with Subscribe and
// ProcessEvents.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{world: world, entities: map[string]donburi.Entity{}}
}

// EmitEvent publishes event and updates the entity of the menu it came from.
func (s *DonburiStore) EmitEvent(event perimeter.MenuEvent) {
	d := Menu.Get(s.entry(event.Menu))
	d.State = event.State
	switch event.Type {
	case perimeter.EventMenuSelect:
		d.Selected = event.Index
	case perimeter.EventMenuHoverStart:
		d.Hovered = event.Index
	case perimeter.EventMenuHoverEnd:
		if d.Hovered == event.Index {
			d.Hovered = -1
		}
	}
	MenuEventType.Publish(s.world, event)
}

// Entity returns the entity tracking the named menu, if it has emitted any
// event yet.
func (s *DonburiStore) Entity(menu string) (donburi.Entity, bool) {
	e, ok := s.entities[menu]
	if !ok || !s.world.Valid(e) {
		return donburi.Null, false
	}
	return e, true
}

// entry returns the entry for the named menu, creating the entity on first use
// or when the old one was removed from the world.
func (s *DonburiStore) entry(menu string) *donburi.Entry {
	if e, ok := s.Entity(menu); ok {
		return s.world.Entry(e)
	}
	e := s.world.Create(Menu)
	s.entities[menu] = e
	entry := s.world.Entry(e)
	*Menu.Get(entry) = MenuData{Name: menu, Selected: -1, Hovered: -1}
	return entry
}
