// Package perimeter is a radial popup-menu control for [Ebitengine].
//
// A [Menu] is an anchor button that, on tap or long press, fans a ring of
// satellite items out on an arc around itself, and folds them back onto the
// anchor when one is selected or the anchor is tapped again. The package also
// carries the small retained-mode scene graph the control is drawn with.
//
// # Quick start
//
//	scene := perimeter.NewScene()
//
//	menu := perimeter.NewMenu("main", 60, 60, perimeter.DefaultConfig())
//	menu.Anchor().SetPosition(290, 210)
//	menu.SetDatasource(perimeter.DatasourceFunc(func(m *perimeter.Menu, i int, it *perimeter.Item) {
//		it.Node().Label = strconv.Itoa(i)
//		it.Node().Color = perimeter.Color{R: 0.55, G: 0.74, B: 1, A: 0.8}
//	}))
//	menu.OnSelect = func(m *perimeter.Menu, it *perimeter.Item) {
//		log.Printf("picked %d", it.Index())
//	}
//	scene.AttachMenu(menu, nil)
//
//	perimeter.Run(scene, perimeter.RunConfig{Title: "Menu", Width: 640, Height: 480})
//
// For full control, implement [ebiten.Game] yourself and call [Scene.Update]
// and [Scene.Draw] directly. Tests and tools can drive a scene headlessly with
// [Scene.Tick] and the Inject* methods.
//
// # Layout
//
// Item i sits at StartAngle + i*step degrees, where step is Config.AngleStep
// when set and AngularSpan/(ItemCount-1) otherwise. 0 degrees points right and
// angles grow clockwise on screen. Every item center lies on one circle
// around the anchor center; see [Positions].
//
// # Gestures
//
// Tapping the anchor toggles the menu. Holding it expands the menu; dragging
// over items while still holding reports hover start and end, and releasing
// over an item selects it. Tapping an item selects it directly. Both paths
// collapse the menu afterwards. [Menu.OnTap] and [Menu.OnLongPress] can veto
// the built-in behavior.
//
// # Animation
//
// Transitions are tweened with [gween]. [AnimationStyle] picks the easing;
// a zero duration applies the end state immediately and fires every hook
// before the call returns. Menu events can be forwarded into a [Donburi]
// world with the perimeter/ecs package.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package perimeter
