package perimeter

// MenuState is whether the satellite items are shown.
type MenuState uint8

const (
	Collapsed MenuState = iota // items sit hidden on the anchor
	Expanded                   // items are laid out around the anchor
)

// Inverse returns the other state.
func (s MenuState) Inverse() MenuState {
	if s == Expanded {
		return Collapsed
	}
	return Expanded
}

func (s MenuState) String() string {
	if s == Expanded {
		return "expanded"
	}
	return "collapsed"
}

// itemAlpha is the resting opacity of items in state s.
func (s MenuState) itemAlpha() float64 {
	if s == Expanded {
		return 1
	}
	return 0
}
