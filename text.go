package perimeter

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultLabelSize is the font size used for labels with LabelSize 0.
const DefaultLabelSize = 14

// labelSource is the font every shape label is drawn with. Loaded on first
// use; replace it with SetLabelFont.
var labelSource *text.GoTextFaceSource

// labelFaces caches one face per size.
var labelFaces = map[float64]*text.GoTextFace{}

// SetLabelFont replaces the label font with the given TrueType or OpenType
// data.
func SetLabelFont(ttfData []byte) error {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return fmt.Errorf("perimeter: failed to parse font data: %w", err)
	}
	labelSource = src
	clear(labelFaces)
	return nil
}

func labelFace(size float64) *text.GoTextFace {
	if size <= 0 {
		size = DefaultLabelSize
	}
	if f, ok := labelFaces[size]; ok {
		return f
	}
	if labelSource == nil {
		if err := SetLabelFont(goregular.TTF); err != nil {
			panic(err) // embedded font
		}
	}
	f := &text.GoTextFace{Source: labelSource, Size: size}
	labelFaces[size] = f
	return f
}

// MeasureLabel returns the rendered size of a single-line label.
func MeasureLabel(label string, size float64) (width, height float64) {
	f := labelFace(size)
	m := f.Metrics()
	return text.Measure(label, f, m.HAscent+m.HDescent+m.HLineGap)
}

// drawLabel draws n.Label centered in the shape.
func drawLabel(dst *ebiten.Image, n *Node, alpha float64) {
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(n.Width/2, n.Height/2)
	op.GeoM.Concat(geoM(n.worldTransform))
	op.ColorScale = n.LabelColor.colorScale(alpha)
	text.Draw(dst, n.Label, labelFace(n.LabelSize), op)
}
