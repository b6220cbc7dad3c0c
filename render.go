package perimeter

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// --- White source image (no sync.Once, perimeter is single-threaded) ---

var (
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

// ensureWhiteSubImage returns the 1x1 interior of a 3x3 white image, used as
// the source of every untextured triangle. The border keeps filtering from
// sampling outside the white area.
func ensureWhiteSubImage() *ebiten.Image {
	if whiteSubImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// Draw renders the scene tree onto screen, depth-first in ZIndex order.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.premultiplied(1))
	}
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	s.drawNode(screen, s.root)

	if s.debug {
		s.drawDebugBounds(screen)
	}
}

func (s *Scene) drawNode(dst *ebiten.Image, n *Node) {
	if !n.Visible {
		return
	}
	alpha := clamp01(n.worldAlpha)
	if alpha > 0 {
		switch n.Type {
		case NodeTypeShape:
			s.drawShape(dst, n, alpha)
		case NodeTypeSprite:
			drawSprite(dst, n, alpha)
		}
	}
	for _, child := range orderedChildren(n) {
		s.drawNode(dst, child)
	}
}

// geoM converts an affine matrix to an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

func drawSprite(dst *ebiten.Image, n *Node, alpha float64) {
	if n.image == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM(n.worldTransform)
	op.ColorScale = n.Color.colorScale(alpha)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(n.image, op)
}

// roundedRectPath builds the outline of a w×h rectangle at the origin with
// corners of radius r. The radius is clamped to half the shorter side.
func roundedRectPath(w, h, r float64) *vector.Path {
	r = max(0, min(r, w/2, h/2))
	fw, fh, fr := float32(w), float32(h), float32(r)

	var p vector.Path
	if fr == 0 {
		p.MoveTo(0, 0)
		p.LineTo(fw, 0)
		p.LineTo(fw, fh)
		p.LineTo(0, fh)
		p.Close()
		return &p
	}
	p.MoveTo(fr, 0)
	p.ArcTo(fw, 0, fw, fh, fr)
	p.ArcTo(fw, fh, 0, fh, fr)
	p.ArcTo(0, fh, 0, 0, fr)
	p.ArcTo(0, 0, fw, 0, fr)
	p.Close()
	return &p
}

func (s *Scene) drawShape(dst *ebiten.Image, n *Node, alpha float64) {
	if n.Width <= 0 || n.Height <= 0 {
		return
	}
	path := roundedRectPath(n.Width, n.Height, n.CornerRadius)

	s.vertices, s.indices = path.AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])
	s.drawTriangles(dst, n.worldTransform, n.Color, alpha)

	if n.BorderWidth > 0 {
		op := &vector.StrokeOptions{Width: float32(n.BorderWidth), LineJoin: vector.LineJoinRound}
		s.vertices, s.indices = path.AppendVerticesAndIndicesForStroke(s.vertices[:0], s.indices[:0], op)
		s.drawTriangles(dst, n.worldTransform, n.BorderColor, alpha)
	}

	if n.Label != "" {
		drawLabel(dst, n, alpha)
	}
}

// drawTriangles moves the buffered local-space vertices into world space,
// tints them and draws them from the white source image.
func (s *Scene) drawTriangles(dst *ebiten.Image, m [6]float64, c Color, alpha float64) {
	if len(s.indices) == 0 {
		return
	}
	r, g, b, a := float32(clamp01(c.R)), float32(clamp01(c.G)), float32(clamp01(c.B)), float32(clamp01(c.A*alpha))
	for i := range s.vertices {
		v := &s.vertices[i]
		x, y := transformPoint(m, float64(v.DstX), float64(v.DstY))
		v.DstX, v.DstY = float32(x), float32(y)
		v.SrcX, v.SrcY = 1, 1
		v.ColorR, v.ColorG, v.ColorB, v.ColorA = r, g, b, a
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(s.vertices, s.indices, ensureWhiteSubImage(), op)
}

// drawDebugBounds outlines the area every attached menu can reach.
func (s *Scene) drawDebugBounds(dst *ebiten.Image) {
	outline := color.RGBA{R: 255, G: 64, B: 64, A: 255}
	for _, m := range s.menus {
		parent := m.anchor.Parent
		if parent == nil {
			continue
		}
		b := ContainerBounds(m.cfg, m.anchor.Bounds())
		x0, y0 := parent.LocalToWorld(b.X, b.Y)
		x1, y1 := parent.LocalToWorld(b.X+b.Width, b.Y+b.Height)
		vector.StrokeRect(dst, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), 1, outline, false)
	}
}
