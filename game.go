package main

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/horde/arena"
	"github.com/milk9111/horde/common"
	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
	"github.com/milk9111/horde/prefabs"
	"github.com/milk9111/horde/upgrade"
	"github.com/milk9111/horde/wave"
)

const flashFrames = 12

type flash struct {
	x, y   float64
	kind   ecs.CueKind
	frames int
}

type Game struct {
	frames int
	debug  bool

	arena   *arena.Arena
	watcher *prefabs.Watcher

	upgradeUI *ebitenui.UI
	flashes   []flash
	banner    string
}

func NewGame(encounter string, rng *rand.Rand, watcher *prefabs.Watcher, debug bool) (*Game, error) {
	a, err := arena.New(encounter, rng)
	if err != nil {
		return nil, err
	}

	g := &Game{arena: a, watcher: watcher, debug: debug}

	a.Gate.Presented.Subscribe(func([]upgrade.Offer) { g.upgradeUI = NewUpgradeUI(g) })
	a.Gate.Moved.Subscribe(func(int) { g.upgradeUI = NewUpgradeUI(g) })
	a.Gate.Resolved.Subscribe(func(o upgrade.Offer) {
		log.Printf("upgrade: %s", o.Label)
		g.upgradeUI = nil
	})
	a.Gate.Dismissed.Subscribe(func(struct{}) { g.upgradeUI = nil })
	a.Director.WaveCleared.Subscribe(func(w wave.Wave) {
		log.Printf("wave %d cleared (%d spawned)", w.Index, w.Spawned)
	})

	return g, nil
}

func (g *Game) Update() error {
	g.frames++
	g.pollReload()

	if g.upgradeUI != nil {
		g.updateUpgradeInput()
		if g.upgradeUI != nil {
			g.upgradeUI.Update()
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && g.arena.Director.State() != wave.Idle {
		_ = g.arena.Director.Cancel()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) && g.arena.Director.State() == wave.Idle && !g.arena.GameOver() {
		_ = g.arena.Director.Start()
	}

	g.captureInput()
	g.arena.Tick()

	for _, evt := range g.arena.World.Events().Drain() {
		if cue, ok := evt.Data.(ecs.Cue); ok {
			g.flashes = append(g.flashes, flash{x: cue.X, y: cue.Y, kind: cue.Kind, frames: flashFrames})
		}
	}
	live := g.flashes[:0]
	for _, f := range g.flashes {
		f.frames--
		if f.frames > 0 {
			live = append(live, f)
		}
	}
	g.flashes = live

	g.banner = g.arena.Director.Status().Banner
	return nil
}

func (g *Game) captureInput() {
	in := g.arena.Input()
	if in == nil {
		return
	}

	in.MoveX, in.MoveY = 0, 0
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		in.MoveX--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		in.MoveX++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		in.MoveY--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		in.MoveY++
	}
	if in.MoveX != 0 || in.MoveY != 0 {
		in.AimX, in.AimY = in.MoveX, in.MoveY
	}
	in.Attack = ebiten.IsKeyPressed(ebiten.KeySpace)
}

func (g *Game) updateUpgradeInput() {
	gate := g.arena.Gate
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp), inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		gate.Move(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown), inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		gate.Move(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		if _, err := gate.Confirm(); err != nil {
			log.Printf("upgrade: confirm: %v", err)
		}
	}
}

func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("prefab changed: %s", name)
			if err := g.arena.Reload(); err != nil {
				log.Printf("reload: %v", err)
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x18, G: 0x18, B: 0x20, A: 0xff})

	w := g.arena.World
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.ColliderComponent.Kind(), func(e ecs.Entity, t *component.Transform, c *component.Collider) {
		vector.FillCircle(screen, float32(t.X), float32(t.Y), float32(c.Radius), roleColor(c.Role), true)
	})

	for _, f := range g.flashes {
		a := float32(f.frames) / flashFrames
		r := common.Lerp(20, 6, a)
		vector.StrokeCircle(screen, float32(f.x), float32(f.y), r, 2, cueColor(f.kind), true)
	}

	g.drawHUD(screen)

	if g.upgradeUI != nil {
		g.upgradeUI.Draw(screen)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	if h := g.arena.PlayerHealth(); h != nil {
		const barW, barH = 200, 10
		vector.FillRect(screen, 20, 20, barW, barH, colornames.Darkred, false)
		vector.FillRect(screen, 20, 20, float32(barW*h.Fraction()), barH, colornames.Limegreen, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d/%d", h.Current(), h.Max()), 230, 16)
	}

	st := g.arena.Director.Status()
	line := fmt.Sprintf("wave %d  %s  %d/%d spawned  %d alive", st.Wave.Index, st.State, st.Wave.Spawned, st.Wave.Quota, st.Wave.Active)
	ebitenutil.DebugPrintAt(screen, line, 20, 40)

	switch {
	case g.arena.GameOver():
		ebitenutil.DebugPrintAt(screen, "You died", common.BaseWidth/2-30, common.BaseHeight/2)
	case g.banner != "":
		ebitenutil.DebugPrintAt(screen, g.banner, common.BaseWidth/2-60, 60)
	case st.State == wave.Idle && st.Wave.Index == 0:
		ebitenutil.DebugPrintAt(screen, "Step into the ring or press Enter", common.BaseWidth/2-100, 60)
	}

	if g.debug {
		a := g.arena.Attributes.Snapshot()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS %.1f  frames %d  entities %d  attrs %v", ebiten.ActualFPS(), g.frames, len(ecs.Entities(g.arena.World)), a), 20, common.BaseHeight-20)
	}
}

func roleColor(role component.ColliderRole) color.Color {
	switch role {
	case component.ColliderPlayer:
		return colornames.Deepskyblue
	case component.ColliderHostile:
		return colornames.Indianred
	case component.ColliderHostileAttack:
		return colornames.Orange
	case component.ColliderAttack:
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x60}
	case component.ColliderTrigger:
		return color.NRGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0x40}
	}
	return colornames.Gray
}

func cueColor(kind ecs.CueKind) color.Color {
	switch kind {
	case ecs.CueHit:
		return colornames.White
	case ecs.CueDeath:
		return colornames.Red
	case ecs.CueTelegraph:
		return colornames.Yellow
	case ecs.CueSpawn:
		return colornames.Mediumpurple
	}
	return colornames.Lightgrey
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
