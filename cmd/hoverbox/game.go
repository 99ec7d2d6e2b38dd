package main

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/hoverkit/common"
	"github.com/milk9111/hoverkit/physics/cpworld"
	"github.com/milk9111/hoverkit/sim"
	"github.com/milk9111/hoverkit/tuning"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720
	// pixels per meter
	scale = 40.0
)

type Game struct {
	sandbox *sim.Sandbox
	runner  *sim.Runner
	watcher *tuning.Watcher
	debug   bool

	// body positions before the latest tick
	prev map[*cpworld.Body]mgl64.Vec3
}

func NewGame(sb *sim.Sandbox, runner *sim.Runner, watcher *tuning.Watcher, debug bool) *Game {
	return &Game{
		sandbox: sb,
		runner:  runner,
		watcher: watcher,
		debug:   debug,
		prev:    make(map[*cpworld.Body]mgl64.Vec3),
	}
}

func (g *Game) Update() error {
	g.sandbox.PollDevices()
	g.sandbox.DrainReloads(g.watcher)
	_, err := g.runner.Advance(1/float64(ebiten.TPS()), g.step)
	return err
}

func (g *Game) step(dt float64) error {
	for _, b := range g.sandbox.Space().Bodies() {
		g.prev[b] = b.Position()
	}
	return g.sandbox.Step(dt)
}

// drawPos blends the last two ticks by the time left in the runner.
func (g *Game) drawPos(b *cpworld.Body) mgl64.Vec3 {
	cur := b.Position()
	prev, ok := g.prev[b]
	if !ok {
		return cur
	}
	a := g.runner.Alpha()
	return mgl64.Vec3{common.Lerp(prev[0], cur[0], a), common.Lerp(prev[1], cur[1], a), 0}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	for _, gs := range g.sandbox.Scene().Ground {
		a, b := toScreen(tuning.Vec(gs.From)), toScreen(tuning.Vec(gs.To))
		w := float32(math.Max(2, gs.Radius*2*scale))
		vector.StrokeLine(screen, a[0], a[1], b[0], b[1], w, colornames.Darkseagreen, true)
	}

	for _, p := range g.sandbox.Platforms() {
		w, h := p.Size()
		drawBox(screen, g.drawPos(p), w, h, p.Angle(), colornames.Goldenrod)
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("FPS: %.1f  ticks: %d  dropped: %d", ebiten.ActualFPS(), g.runner.Ticks(), g.runner.Dropped()))
	for _, c := range g.sandbox.Characters() {
		pos := g.drawPos(c.Body)
		w, h := c.Body.Size()
		st := c.Controller.State()

		fill := colornames.Lightskyblue
		if !c.Body.GravityEnabled() {
			fill = colornames.Plum
		}
		drawBox(screen, pos, w, h, 0, fill)

		if g.debug {
			origin := pos.Add(common.Up.Mul(c.Controller.Config().Hover.Radius))
			end := origin.Add(common.Down.Mul(st.Probe.HitDistance))
			a, b := toScreen(origin), toScreen(end)
			clr := colornames.Gray
			if st.Probe.HasHit {
				clr = colornames.Tomato
			}
			vector.StrokeLine(screen, a[0], a[1], b[0], b[1], 1, clr, true)
		}

		lines = append(lines, fmt.Sprintf("%s  h=%.2f  %s  %s  jumps=%d  f=%.1f",
			c.Name, st.Probe.HitDistance, st.Hover, st.Mode, st.JumpBudget, st.HoverForce))
	}
	ebitenutil.DebugPrint(screen, strings.Join(lines, "\n"))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

// toScreen puts world x=0 at the horizontal center and y=0 near the bottom.
func toScreen(p mgl64.Vec3) [2]float32 {
	return [2]float32{
		float32(baseWidth/2 + p[0]*scale),
		float32(baseHeight - 80 - p[1]*scale),
	}
}

func drawBox(dst *ebiten.Image, center mgl64.Vec3, w, h, angle float64, clr color.Color) {
	if angle == 0 {
		c := toScreen(center)
		sw, sh := float32(w*scale), float32(h*scale)
		vector.FillRect(dst, c[0]-sw/2, c[1]-sh/2, sw, sh, clr, true)
		return
	}

	rot := mgl64.Rotate2D(angle)
	corners := [4]mgl64.Vec2{{-w / 2, -h / 2}, {w / 2, -h / 2}, {w / 2, h / 2}, {-w / 2, h / 2}}
	var pts [4][2]float32
	for i, k := range corners {
		r := rot.Mul2x1(k)
		pts[i] = toScreen(center.Add(mgl64.Vec3{r[0], r[1], 0}))
	}
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		vector.StrokeLine(dst, a[0], a[1], b[0], b[1], 3, clr, true)
	}
}
