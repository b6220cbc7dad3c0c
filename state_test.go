package perimeter

import "testing"

func TestMenuStateInverse(t *testing.T) {
	for _, s := range []MenuState{Collapsed, Expanded} {
		if s.Inverse() == s {
			t.Errorf("%v.Inverse() should differ", s)
		}
		if got := s.Inverse().Inverse(); got != s {
			t.Errorf("%v.Inverse().Inverse() = %v", s, got)
		}
	}
}

func TestMenuStateString(t *testing.T) {
	if Collapsed.String() != "collapsed" || Expanded.String() != "expanded" {
		t.Errorf("String() = %q, %q", Collapsed, Expanded)
	}
}

func TestMenuStateItemAlpha(t *testing.T) {
	if Collapsed.itemAlpha() != 0 {
		t.Errorf("collapsed alpha = %v, want 0", Collapsed.itemAlpha())
	}
	if Expanded.itemAlpha() != 1 {
		t.Errorf("expanded alpha = %v, want 1", Expanded.itemAlpha())
	}
}
