package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/perimeter"
	"github.com/spf13/cobra"
)

// Flag names shared by every command.
const (
	flagConfig       = "config"
	flagItems        = "items"
	flagStartAngle   = "start-angle"
	flagSpan         = "span"
	flagAngleStep    = "angle-step"
	flagItemWidth    = "item-width"
	flagItemHeight   = "item-height"
	flagDistance     = "distance"
	flagItemRadius   = "item-radius"
	flagAnchorRadius = "anchor-radius"
	flagAnchorBorder = "anchor-border"
	flagAnchorSize   = "anchor-size"
	flagBackdrop     = "backdrop"
	flagStyle        = "style"
	flagDuration     = "duration"
	flagExpanded     = "expanded"
	flagWidth        = "width"
	flagHeight       = "height"
)

// demoFlags holds the values of the flags shared by every command.
type demoFlags struct {
	configPath   string
	items        int
	startAngle   float64
	span         float64
	angleStep    float64
	itemWidth    float64
	itemHeight   float64
	distance     float64
	itemRadius   float64
	anchorRadius float64
	anchorBorder float64
	anchorSize   float64
	backdrop     bool
	style        string
	duration     float64
	expanded     bool
	width        int
	height       int
}

// opts is bound to the root command's persistent flags.
var opts demoFlags

func addConfigFlags(cmd *cobra.Command, o *demoFlags) {
	def := perimeter.DefaultConfig()
	f := cmd.PersistentFlags()
	f.StringVar(&o.configPath, flagConfig, "", "JSON menu configuration file (flags override its values)")
	f.IntVar(&o.items, flagItems, def.ItemCount, "number of satellite items")
	f.Float64Var(&o.startAngle, flagStartAngle, def.StartAngle, "angle of the first item in degrees (0 = right, clockwise)")
	f.Float64Var(&o.span, flagSpan, def.AngularSpan, "arc the items are spread over in degrees")
	f.Float64Var(&o.angleStep, flagAngleStep, 0, "fixed angle between items in degrees (default: derived from --span)")
	f.Float64Var(&o.itemWidth, flagItemWidth, def.ItemSize.Width, "item width in pixels")
	f.Float64Var(&o.itemHeight, flagItemHeight, def.ItemSize.Height, "item height in pixels")
	f.Float64Var(&o.distance, flagDistance, def.Distance, "gap between the anchor and the items in pixels")
	f.Float64Var(&o.itemRadius, flagItemRadius, 15, "item corner radius in pixels")
	f.Float64Var(&o.anchorRadius, flagAnchorRadius, 30, "anchor corner radius in pixels")
	f.Float64Var(&o.anchorBorder, flagAnchorBorder, 2, "anchor border width in pixels")
	f.Float64Var(&o.anchorSize, flagAnchorSize, 60, "anchor width and height in pixels")
	f.BoolVar(&o.backdrop, flagBackdrop, false, "dim the surface while expanded")
	f.StringVar(&o.style, flagStyle, def.Style.String(), "animation style: linear, ease-in-out, spring, elastic or bounce")
	f.Float64Var(&o.duration, flagDuration, def.Duration, "animation duration in seconds")
	f.BoolVar(&o.expanded, flagExpanded, false, "start expanded")
	f.IntVar(&o.width, flagWidth, 640, "window width")
	f.IntVar(&o.height, flagHeight, 480, "window height")
}

// demoDefaults is the look of the demo menu when neither a file nor a flag
// says otherwise.
func demoDefaults() perimeter.Config {
	cfg := perimeter.DefaultConfig()
	cfg.ItemCornerRadius = 15
	cfg.AnchorCornerRadius = 30
	cfg.AnchorBorderWidth = 2
	cfg.AnchorBorderColor = perimeter.Color{R: 0.1, G: 0.2, B: 0.6, A: 1}
	return cfg
}

// loadConfig builds the menu configuration: demo defaults, then the --config
// file, then every flag given explicitly on cmd.
func (o *demoFlags) loadConfig(cmd *cobra.Command) (perimeter.Config, error) {
	cfg := demoDefaults()

	if o.configPath != "" {
		data, err := os.ReadFile(o.configPath)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if cfg, err = perimeter.DecodeConfig(cfg, data); err != nil {
			return cfg, err
		}
	}

	changed := cmd.Flags().Changed
	if changed(flagItems) {
		cfg.ItemCount = o.items
	}
	if changed(flagStartAngle) {
		cfg.StartAngle = o.startAngle
	}
	if changed(flagSpan) {
		cfg.AngularSpan = o.span
	}
	if changed(flagAngleStep) {
		cfg.AngleStep = perimeter.Float(o.angleStep)
	}
	if changed(flagItemWidth) {
		cfg.ItemSize.Width = o.itemWidth
	}
	if changed(flagItemHeight) {
		cfg.ItemSize.Height = o.itemHeight
	}
	if changed(flagDistance) {
		cfg.Distance = o.distance
	}
	if changed(flagItemRadius) {
		cfg.ItemCornerRadius = o.itemRadius
	}
	if changed(flagAnchorRadius) {
		cfg.AnchorCornerRadius = o.anchorRadius
	}
	if changed(flagAnchorBorder) {
		cfg.AnchorBorderWidth = o.anchorBorder
	}
	if changed(flagBackdrop) {
		cfg.HasBackdrop = o.backdrop
	}
	if changed(flagStyle) {
		style, err := perimeter.ParseAnimationStyle(o.style)
		if err != nil {
			return cfg, err
		}
		cfg.Style = style
	}
	if changed(flagDuration) {
		cfg.Duration = o.duration
	}
	if changed(flagExpanded) {
		cfg.Expanded = o.expanded
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// anchorRect returns the anchor rectangle centered in the window.
func (o *demoFlags) anchorRect() perimeter.Rect {
	return perimeter.Rect{
		X:      float64(o.width)/2 - o.anchorSize/2,
		Y:      float64(o.height)/2 - o.anchorSize/2,
		Width:  o.anchorSize,
		Height: o.anchorSize,
	}
}
