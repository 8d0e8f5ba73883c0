// Command space-game is a terminal demo driver for the simulation kernel:
// tcell for the screen and keys, a fixed timestep loop, glyph rendering from
// the kernel's read surfaces. The kernel itself never touches the terminal.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lmcneill42/space-game/component"
	"github.com/lmcneill42/space-game/engine"
	"github.com/lmcneill42/space-game/game"
	"github.com/lmcneill42/space-game/physics"
	"github.com/lmcneill42/space-game/vmath"
)

const tickRate = 60

func main() {
	seed := flag.Int64("seed", time.Now().UnixNano(), "simulation seed")
	logPath := flag.String("log", "", "write a debug log to this file")
	flag.Parse()

	log := zap.NewNop()
	if *logPath != "" {
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{*logPath}
		built, err := cfg.Build()
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening log: %v\n", err)
			os.Exit(1)
		}
		log = built
		defer log.Sync()
	}

	g, err := game.New(game.Options{Log: log, Seed: *seed})
	if err != nil {
		fmt.Fprintf(os.Stderr, "setting up game: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "initialising screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.HideCursor()

	if err := run(g, screen); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(g *game.Game, screen tcell.Screen) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)
	defer close(quit)

	input := newInputState()
	ticker := time.NewTicker(time.Second / tickRate)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if input.handleKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			input.apply(g)
			g.Tick(1.0 / tickRate)
			draw(g, screen)
			input.decay()
		}
	}
}

// inputState latches key presses between ticks. Terminals deliver presses,
// not holds, so each press steers for a few ticks and then decays.
type inputState struct {
	dir      vmath.Vec2
	turn     float64
	hold     int
	shooting bool
}

func newInputState() *inputState {
	return &inputState{}
}

// handleKey updates the latched intent; it reports true on a quit request.
func (in *inputState) handleKey(ev *tcell.EventKey) bool {
	const holdTicks = 8
	switch {
	case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
		return true
	case ev.Key() == tcell.KeyUp || ev.Rune() == 'k':
		in.dir = vmath.V(0, -1)
		in.hold = holdTicks
	case ev.Key() == tcell.KeyDown || ev.Rune() == 'j':
		in.dir = vmath.V(0, 1)
		in.hold = holdTicks
	case ev.Key() == tcell.KeyLeft || ev.Rune() == 'h':
		in.turn = 1
		in.hold = holdTicks
	case ev.Key() == tcell.KeyRight || ev.Rune() == 'l':
		in.turn = -1
		in.hold = holdTicks
	case ev.Rune() == ' ':
		in.shooting = !in.shooting
	}
	return false
}

func (in *inputState) apply(g *game.Game) {
	w := g.World()
	player := g.Player()
	if player.IsNil() {
		return
	}
	if thrusters := engine.Get[component.Thrusters](w, player); thrusters != nil {
		thrusters.Direction = in.dir
		thrusters.Turn = in.turn
	}
	if weapon := engine.Get[component.Weapon](w, player); weapon != nil {
		if in.shooting && !weapon.Shooting() {
			weapon.StartShooting(component.Coaxial{From: engine.NewRef(player)})
		} else if !in.shooting && weapon.Shooting() {
			weapon.StopShooting()
		}
	}
}

func (in *inputState) decay() {
	if in.hold > 0 {
		in.hold--
		if in.hold == 0 {
			in.dir = vmath.Vec2{}
			in.turn = 0
		}
	}
}

// worldScale compresses world units into character cells. Cells are roughly
// twice as tall as wide, so the vertical axis compresses harder.
const (
	worldScaleX = 10.0
	worldScaleY = 20.0
)

func draw(g *game.Game, screen tcell.Screen) {
	screen.Clear()
	w := g.World()
	width, height := screen.Size()

	var center vmath.Vec2
	if cam := engine.Deref[component.Camera](w, w.Resources.Camera); cam != nil {
		center = cam.Position.Add(vmath.V(cam.HorizontalShake, cam.VerticalShake))
	}

	project := func(p vmath.Vec2) (int, int) {
		d := p.Sub(center)
		return width/2 + int(d.X/worldScaleX), height/2 + int(d.Y/worldScaleY)
	}

	player := g.Player()
	for _, e := range w.Query(engine.TypeOf[physics.Body]()) {
		body := engine.Get[physics.Body](w, e)
		if body == nil {
			continue
		}
		x, y := project(body.Position)
		if x < 0 || x >= width || y < 0 || y >= height {
			continue
		}
		glyph, style := glyphFor(body, e == player)
		screen.SetContent(x, y, glyph, nil, style)
	}

	drawHUD(g, screen, width, height)
	screen.Show()
}

func glyphFor(body *physics.Body, isPlayer bool) (rune, tcell.Style) {
	style := tcell.StyleDefault
	switch {
	case isPlayer:
		return '@', style.Foreground(tcell.ColorGreen).Bold(true)
	case body.Size >= 60:
		return 'M', style.Foreground(tcell.ColorRed).Bold(true)
	case body.Size >= 25:
		return 'W', style.Foreground(tcell.ColorRed)
	case body.Size >= 10:
		return 'v', style.Foreground(tcell.ColorOrange)
	case !body.Collideable:
		return '*', style.Foreground(tcell.ColorYellow)
	default:
		return '.', style.Foreground(tcell.ColorWhite)
	}
}

func drawHUD(g *game.Game, screen tcell.Screen, width, height int) {
	w := g.World()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	player := g.Player()
	status := "DEAD"
	if !player.IsNil() {
		hp := engine.Get[component.Hitpoints](w, player)
		shields := engine.Get[component.Shields](w, player)
		power := engine.Get[component.Power](w, player)
		status = fmt.Sprintf("HULL %3.0f  SHLD %3.0f  PWR %3.0f  WAVE %d",
			hp.HP, shields.HP, power.Power, g.Wave())
	}
	drawText(screen, 1, height-1, status, style)

	// Banners and announcements, centered.
	row := 2
	for _, e := range w.Query(engine.TypeOf[component.Text]()) {
		text := engine.Get[component.Text](w, e)
		if !text.Visible || text.Value == "" {
			continue
		}
		drawText(screen, (width-len(text.Value))/2, row, text.Value,
			style.Bold(true))
		row += 2
	}
}

func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for i, r := range s {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
