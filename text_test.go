package perimeter

import (
	"testing"

	"golang.org/x/image/font/gofont/gobold"
)

func TestLabelFaceCache(t *testing.T) {
	a := labelFace(0)
	if a.Size != DefaultLabelSize {
		t.Errorf("default face size = %v, want %v", a.Size, DefaultLabelSize)
	}
	if labelFace(DefaultLabelSize) != a {
		t.Error("faces should be cached per size")
	}
	if labelFace(20) == a {
		t.Error("different sizes need different faces")
	}
}

func TestMeasureLabel(t *testing.T) {
	w1, h1 := MeasureLabel("A", 14)
	w2, h2 := MeasureLabel("AAAA", 14)
	if w1 <= 0 || h1 <= 0 {
		t.Fatalf("MeasureLabel = %vx%v, want positive", w1, h1)
	}
	if w2 <= w1 || h2 != h1 {
		t.Errorf("longer label = %vx%v, short = %vx%v", w2, h2, w1, h1)
	}
	if _, big := MeasureLabel("A", 28); big <= h1 {
		t.Error("larger size should be taller")
	}
}

func TestSetLabelFont(t *testing.T) {
	defer func() {
		labelSource = nil
		clear(labelFaces)
	}()

	before := labelFace(14)
	if err := SetLabelFont(gobold.TTF); err != nil {
		t.Fatalf("SetLabelFont: %v", err)
	}
	if labelFace(14) == before {
		t.Error("changing the font should drop cached faces")
	}
	if err := SetLabelFont([]byte("not a font")); err == nil {
		t.Error("expected error for invalid font data")
	}
}
