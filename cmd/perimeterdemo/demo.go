package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/perimeter"
	"github.com/spf13/cobra"
	"github.com/tanema/gween/ease"
)

const (
	hoverScale    = 1.4
	hoverDuration = 0.12
)

var (
	itemColor   = perimeter.Color{R: 0.553, G: 0.736, B: 1, A: 0.79}
	itemBorder  = perimeter.Color{R: 0.1, G: 0.2, B: 0.6, A: 1}
	anchorColor = perimeter.Color{R: 0.18, G: 0.42, B: 0.95, A: 1}
	clearColor  = perimeter.Color{R: 0.118, G: 0.118, B: 0.157, A: 1}
)

var (
	scriptPath string
	debugMode  bool
	showFPS    bool
)

func init() {
	rootCmd.Flags().StringVar(&scriptPath, "script", "", "JSON input script to play back")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "log menu transitions and frame stats to stderr")
	rootCmd.Flags().BoolVar(&showFPS, "fps", true, "show FPS and TPS")
}

// demo holds the running demo state.
type demo struct {
	scene  *perimeter.Scene
	menu   *perimeter.Menu
	tweens []*perimeter.TweenGroup
	runner *perimeter.TestRunner
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		return err
	}

	d := newDemo(cfg, opts.anchorRect())
	d.scene.SetDebugMode(debugMode)

	if scriptPath != "" {
		data, err := os.ReadFile(scriptPath)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		if d.runner, err = perimeter.LoadTestScript(data); err != nil {
			return err
		}
		d.scene.SetTestRunner(d.runner)
	}

	d.scene.SetUpdateFunc(d.update)
	return perimeter.Run(d.scene, perimeter.RunConfig{
		Title:   "Perimeter — Demo",
		Width:   opts.width,
		Height:  opts.height,
		ShowFPS: showFPS,
	})
}

func newDemo(cfg perimeter.Config, anchor perimeter.Rect) *demo {
	d := &demo{scene: perimeter.NewScene()}
	d.scene.ClearColor = clearColor

	m := perimeter.NewMenu("demo", anchor.Width, anchor.Height, cfg)
	m.Anchor().SetPosition(anchor.X, anchor.Y)
	m.Anchor().Color = anchorColor
	m.Anchor().Label = "+"
	m.Anchor().LabelSize = 28
	m.SetBackdrop(&perimeter.DimBackdrop{
		Bounds: perimeter.Rect{Width: anchor.X*2 + anchor.Width, Height: anchor.Y*2 + anchor.Height},
	})
	m.SetDatasource(perimeter.DatasourceFunc(configureItem))

	m.OnSelect = func(m *perimeter.Menu, it *perimeter.Item) {
		log.Printf("selected item %d", it.Index())
	}
	m.OnHoverStart = func(m *perimeter.Menu, it *perimeter.Item) {
		d.scaleItem(it, hoverScale)
	}
	m.OnHoverEnd = func(m *perimeter.Menu, it *perimeter.Item) {
		d.scaleItem(it, 1)
	}
	m.OnDidCollapse = func(m *perimeter.Menu) {
		for _, it := range m.Items() {
			it.Node().SetScale(1, 1)
		}
	}

	d.menu = m
	d.scene.AttachMenu(m, nil)
	return d
}

func configureItem(m *perimeter.Menu, index int, it *perimeter.Item) {
	n := it.Node()
	n.Color = itemColor
	n.BorderWidth = 1
	n.BorderColor = itemBorder
	n.Label = strconv.Itoa(index)
	n.LabelColor = perimeter.Color{R: 0.05, G: 0.1, B: 0.3, A: 1}
}

func (d *demo) scaleItem(it *perimeter.Item, scale float64) {
	d.tweens = append(d.tweens, perimeter.TweenScale(it.Node(), scale, scale, hoverDuration, ease.OutQuad))
}

func (d *demo) update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))
	live := d.tweens[:0]
	for _, tw := range d.tweens {
		tw.Update(dt)
		if !tw.Done {
			live = append(live, tw)
		}
	}
	d.tweens = live

	if d.runner != nil && d.runner.Done() {
		log.Printf("script finished")
		d.runner = nil
	}
	return nil
}
