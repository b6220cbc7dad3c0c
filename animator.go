package perimeter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tanema/gween/ease"
)

// AnimationStyle selects the easing a menu transition uses.
type AnimationStyle uint8

const (
	AnimationLinear    AnimationStyle = iota // constant speed
	AnimationEaseInOut                       // quadratic ease in and out
	AnimationSpring                          // overshoots slightly, then settles
	AnimationElastic                         // oscillates around the target
	AnimationBounce                          // bounces against the target
)

var styleNames = [...]string{
	AnimationLinear:    "linear",
	AnimationEaseInOut: "ease-in-out",
	AnimationSpring:    "spring",
	AnimationElastic:   "elastic",
	AnimationBounce:    "bounce",
}

func (s AnimationStyle) String() string {
	if int(s) < len(styleNames) {
		return styleNames[s]
	}
	return fmt.Sprintf("AnimationStyle(%d)", s)
}

// ParseAnimationStyle maps a style name (as printed by String) to its value.
func ParseAnimationStyle(name string) (AnimationStyle, error) {
	for i, n := range styleNames {
		if strings.EqualFold(n, name) {
			return AnimationStyle(i), nil
		}
	}
	return AnimationLinear, fmt.Errorf("unknown animation style %q", name)
}

// MarshalJSON encodes the style by name.
func (s AnimationStyle) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts a style name or its numeric value.
func (s *AnimationStyle) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		v, err := ParseAnimationStyle(name)
		if err != nil {
			return err
		}
		*s = v
		return nil
	}
	var n uint8
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("animation style: %w", err)
	}
	*s = AnimationStyle(n)
	return nil
}

// easing returns the tween function for movement and scaling. Unknown styles
// fall back to linear.
func (s AnimationStyle) easing() ease.TweenFunc {
	switch s {
	case AnimationEaseInOut:
		return ease.InOutQuad
	case AnimationSpring:
		return ease.OutBack
	case AnimationElastic:
		return ease.OutElastic
	case AnimationBounce:
		return ease.OutBounce
	default:
		return ease.Linear
	}
}

// --- Frame ---

type targetKind uint8

const (
	targetPosition targetKind = iota
	targetScale
	targetAlpha
)

type frameTarget struct {
	node *Node
	kind targetKind
	a, b float64
}

// Frame collects the end state of a transition. The apply function passed to
// Animator.Animate describes the end state; the animator decides how to get
// there.
type Frame struct {
	targets []frameTarget
}

// Move sets the end position of n.
func (f *Frame) Move(n *Node, to Vec2) {
	f.targets = append(f.targets, frameTarget{node: n, kind: targetPosition, a: to.X, b: to.Y})
}

// Scale sets the end scale of n.
func (f *Frame) Scale(n *Node, sx, sy float64) {
	f.targets = append(f.targets, frameTarget{node: n, kind: targetScale, a: sx, b: sy})
}

// Fade sets the end alpha of n.
func (f *Frame) Fade(n *Node, alpha float64) {
	f.targets = append(f.targets, frameTarget{node: n, kind: targetAlpha, a: alpha})
}

// commit writes the target value straight to the node.
func (t frameTarget) commit() {
	if t.node.IsDisposed() {
		return
	}
	switch t.kind {
	case targetPosition:
		t.node.SetPosition(t.a, t.b)
	case targetScale:
		t.node.SetScale(t.a, t.b)
	case targetAlpha:
		t.node.SetAlpha(t.a)
	}
}

// --- Animator ---

// Animator runs menu transitions. Animate records the end state through apply
// and calls done exactly once when the transition has settled; with a zero
// duration both happen before Animate returns. Transitions always start from
// the nodes' current values, so a newer call takes over any node an older call
// is still moving.
type Animator interface {
	Animate(duration float32, apply func(*Frame), done func())
	Update(dt float32)
	Active() bool
}

// NewAnimator returns the Animator for style.
func NewAnimator(style AnimationStyle) Animator {
	return &tweenAnimator{move: style.easing(), fade: ease.Linear}
}

// run is one Animate call.
type run struct {
	pending     int
	elapsed     float32
	duration    float32
	tracked     bool
	interrupted bool
	done        func()
}

// settled reports whether the run has nothing left to move. A run without any
// tracks still waits out its duration.
func (r *run) settled() bool {
	return r.pending == 0 && (r.tracked || r.interrupted || r.elapsed >= r.duration)
}

// track is one tween owned by a run.
type track struct {
	group  *TweenGroup
	target frameTarget
	owner  *run
}

type tweenAnimator struct {
	move   ease.TweenFunc
	fade   ease.TweenFunc
	tracks []*track
	runs   []*run
}

func (a *tweenAnimator) Animate(duration float32, apply func(*Frame), done func()) {
	var f Frame
	if apply != nil {
		apply(&f)
	}
	r := &run{duration: duration, done: done}

	if duration <= 0 {
		for _, t := range f.targets {
			a.supersede(t)
			t.commit()
		}
		a.settle()
		if r.done != nil {
			r.done()
		}
		return
	}

	for _, t := range f.targets {
		a.supersede(t)
		if t.node.IsDisposed() {
			continue
		}
		a.tracks = append(a.tracks, &track{group: a.tween(t, duration), target: t, owner: r})
		r.pending++
		r.tracked = true
	}
	a.runs = append(a.runs, r)
	a.settle()
}

func (a *tweenAnimator) tween(t frameTarget, duration float32) *TweenGroup {
	switch t.kind {
	case targetScale:
		return TweenScale(t.node, t.a, t.b, duration, a.move)
	case targetAlpha:
		return TweenAlpha(t.node, t.a, duration, a.fade)
	default:
		return TweenPosition(t.node, t.a, t.b, duration, a.move)
	}
}

// supersede releases whatever track currently drives the same field of the
// same node. The owning run counts as interrupted.
func (a *tweenAnimator) supersede(t frameTarget) {
	for i, tr := range a.tracks {
		if tr.target.node == t.node && tr.target.kind == t.kind {
			tr.group.Stop()
			tr.owner.pending--
			tr.owner.interrupted = true
			a.tracks = append(a.tracks[:i], a.tracks[i+1:]...)
			return
		}
	}
}

func (a *tweenAnimator) Update(dt float32) {
	live := a.tracks[:0]
	for _, tr := range a.tracks {
		tr.group.Update(dt)
		if !tr.group.Done {
			live = append(live, tr)
			continue
		}
		// gween works in float32; land exactly on the requested value.
		tr.target.commit()
		tr.owner.pending--
	}
	for i := len(live); i < len(a.tracks); i++ {
		a.tracks[i] = nil
	}
	a.tracks = live

	for _, r := range a.runs {
		r.elapsed += dt
	}
	a.settle()
}

// settle removes every settled run, then calls their done functions in start
// order. Callbacks may start new transitions.
func (a *tweenAnimator) settle() {
	var finished []*run
	pending := a.runs[:0]
	for _, r := range a.runs {
		if r.settled() {
			finished = append(finished, r)
		} else {
			pending = append(pending, r)
		}
	}
	for i := len(pending); i < len(a.runs); i++ {
		a.runs[i] = nil
	}
	a.runs = pending
	for _, r := range finished {
		if r.done != nil {
			r.done()
		}
	}
}

func (a *tweenAnimator) Active() bool {
	return len(a.runs) > 0
}
