package perimeter

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Config describes the layout, look and animation of a Menu.
type Config struct {
	// ItemCount is the number of satellite items.
	ItemCount int `json:"itemCount"`
	// StartAngle is the angle of item 0 in degrees. 0 points right and
	// angles grow clockwise.
	StartAngle float64 `json:"startAngle"`
	// AngularSpan is the arc in degrees the items are spread over.
	AngularSpan float64 `json:"angularSpan"`
	// AngleStep overrides the derived spacing between items when non-nil.
	AngleStep *float64 `json:"angleStep,omitempty"`
	// ItemSize is the size of every item.
	ItemSize Size `json:"itemSize"`
	// Distance is the gap between the anchor edge and the item edge.
	Distance float64 `json:"distance"`

	ItemCornerRadius   float64 `json:"itemCornerRadius"`
	AnchorCornerRadius float64 `json:"anchorCornerRadius"`
	AnchorBorderWidth  float64 `json:"anchorBorderWidth"`
	AnchorBorderColor  Color   `json:"anchorBorderColor"`

	// HasBackdrop shows a dismiss-on-tap overlay while expanded.
	HasBackdrop bool `json:"hasBackdrop"`

	Style AnimationStyle `json:"style"`
	// Duration is the transition length in seconds.
	Duration float64 `json:"duration"`

	// Expanded is the initial state of the menu.
	Expanded bool `json:"expanded"`
}

// DefaultConfig returns the configuration a new Menu starts with.
func DefaultConfig() Config {
	return Config{
		ItemCount:   3,
		StartAngle:  180,
		AngularSpan: 180,
		ItemSize:    Size{Width: 30, Height: 30},
		Distance:    50,
		Style:       AnimationLinear,
		Duration:    0.33,
	}
}

var (
	// ErrInvalidConfig wraps every validation failure.
	ErrInvalidConfig = errors.New("invalid menu config")
)

// Validate reports the first field that cannot produce a sensible layout.
func (c Config) Validate() error {
	switch {
	case c.ItemCount < 0:
		return fmt.Errorf("%w: item count %d is negative", ErrInvalidConfig, c.ItemCount)
	case c.Distance < 0:
		return fmt.Errorf("%w: distance %v is negative", ErrInvalidConfig, c.Distance)
	case c.ItemSize.Width < 0 || c.ItemSize.Height < 0:
		return fmt.Errorf("%w: item size %vx%v is negative", ErrInvalidConfig, c.ItemSize.Width, c.ItemSize.Height)
	case c.Duration < 0:
		return fmt.Errorf("%w: duration %v is negative", ErrInvalidConfig, c.Duration)
	case c.ItemCornerRadius < 0 || c.AnchorCornerRadius < 0:
		return fmt.Errorf("%w: corner radius is negative", ErrInvalidConfig)
	case c.AnchorBorderWidth < 0:
		return fmt.Errorf("%w: border width %v is negative", ErrInvalidConfig, c.AnchorBorderWidth)
	}
	return nil
}

// LoadConfig parses a JSON document on top of DefaultConfig and validates the
// result. Fields missing from the document keep their defaults.
func LoadConfig(jsonData []byte) (Config, error) {
	return DecodeConfig(DefaultConfig(), jsonData)
}

// DecodeConfig is LoadConfig with a caller-supplied base instead of the
// defaults.
func DecodeConfig(base Config, jsonData []byte) (Config, error) {
	cfg := base
	if cfg.AngleStep != nil {
		cfg.AngleStep = Float(*cfg.AngleStep) // don't write through to base
	}
	if err := json.Unmarshal(jsonData, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse menu config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("parse menu config: %w", err)
	}
	return cfg, nil
}

// Float returns a pointer to v, for Config.AngleStep.
func Float(v float64) *float64 {
	return &v
}
