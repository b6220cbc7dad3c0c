package perimeter

import "math"

// AngleStep returns the angular distance in degrees between adjacent items.
// An explicit Config.AngleStep wins; otherwise the span is divided evenly
// between the items, with the divisor floored to 1 so a single item sits on
// StartAngle.
func AngleStep(cfg Config) float64 {
	if cfg.AngleStep != nil {
		return *cfg.AngleStep
	}
	return cfg.AngularSpan / float64(max(1, cfg.ItemCount-1))
}

// ItemAngle returns the angle in degrees of item i when expanded.
func ItemAngle(cfg Config, i int) float64 {
	return cfg.StartAngle + AngleStep(cfg)*float64(i)
}

// Radius returns the distance from the anchor center to every item center
// when expanded.
func Radius(cfg Config, anchor Rect) float64 {
	return cfg.ItemSize.Width/2 + cfg.Distance + anchor.Width/2
}

// Positions computes the target center of every item, in the coordinate space
// of anchor. Collapsed items sit on the anchor center. Expanded items sit on
// a circle around it; 0 degrees points along +X and angles grow clockwise on
// screen because Y grows downward.
func Positions(cfg Config, state MenuState, anchor Rect) []Vec2 {
	n := max(0, cfg.ItemCount)
	positions := make([]Vec2, n)
	center := anchor.Center()
	if state == Collapsed {
		for i := range positions {
			positions[i] = center
		}
		return positions
	}
	step := AngleStep(cfg)
	r := Radius(cfg, anchor)
	for i := range positions {
		positions[i] = pointOnCircle(center, r, cfg.StartAngle+step*float64(i))
	}
	return positions
}

// pointOnCircle returns the point at the given angle in degrees on the circle
// of radius r around center.
func pointOnCircle(center Vec2, r, degrees float64) Vec2 {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	return Vec2{X: center.X + r*cos, Y: center.Y + r*sin}
}

// ContainerBounds returns the area a fully expanded menu can reach: the anchor
// grown by the item distance plus one item size on every side.
func ContainerBounds(cfg Config, anchor Rect) Rect {
	return Rect{
		X:      anchor.X - cfg.Distance - cfg.ItemSize.Width,
		Y:      anchor.Y - cfg.Distance - cfg.ItemSize.Height,
		Width:  anchor.Width + 2*cfg.Distance + 2*cfg.ItemSize.Width,
		Height: anchor.Height + 2*cfg.Distance + 2*cfg.ItemSize.Height,
	}
}
