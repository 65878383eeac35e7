package kong

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-kong/internal/core"
	"github.com/vovakirdan/tui-kong/internal/games/kong/level"
	"github.com/vovakirdan/tui-kong/internal/games/kong/phase"
	"github.com/vovakirdan/tui-kong/internal/games/kong/sim"
)

// Visual characters for rendering
const (
	BorderHoriz = '─'
	menuMinW    = 30
	menuMinH    = 12
	hudRows     = 2
)

var titleArt = []string{
	` _  __                 `,
	`| |/ /___  _ __   __ _ `,
	`| ' // _ \| '_ \ / _' |`,
	`| . \ (_) | | | | (_| |`,
	`|_|\_\___/|_| |_|\__, |`,
	`                 |___/ `,
}

// View is a read-only picture of one entity for renderers.
type View struct {
	Kind         sim.Kind
	Box          core.Box
	Slope        sim.Slope
	Breakable    bool
	Broken       bool
	Collected    bool
	Rescued      bool
	Hammer       bool // hammer item, or a character holding one
	Invulnerable bool
	Climbing     bool
	Facing       float64
}

// Entities returns views of the live entities in collection order.
func (g *Game) Entities() []View {
	entities := g.manager.Entities()
	out := make([]View, 0, len(entities))
	for _, e := range entities {
		v := View{Kind: e.Kind(), Box: e.Bounds()}
		switch x := e.(type) {
		case *sim.Character:
			v.Hammer = x.HasHammer()
			v.Invulnerable = x.Invulnerable()
			v.Climbing = x.Climbing
			v.Facing = x.Facing
		case *sim.Platform:
			v.Slope = x.Slope
			v.Breakable = x.Breakable()
			v.Broken = x.Broken()
		case *sim.Collectible:
			v.Collected = x.Collected()
			v.Hammer = x.Type == sim.Hammer
		case *sim.Princess:
			v.Rescued = x.Rescued()
		case *sim.Barrel:
			v.Facing = x.Dir
		case *sim.Fire:
			v.Facing = x.Dir
		}
		out = append(out, v)
	}
	return out
}

// layout maps world coordinates onto screen cells.
type layout struct {
	ox, oy       int
	scale        int
	tileW, tileH float64
}

func (l layout) cell(x, y float64) (int, int) {
	cx := int(math.Floor(x/l.tileW*float64(l.scale) + core.Epsilon))
	cy := int(math.Floor(y/l.tileH + core.Epsilon))
	return l.ox + cx, l.oy + cy
}

// mapSize returns the world size in tiles.
func (g *Game) mapSize() (cols, rows int) {
	w := g.manager.World()
	return int(math.Round(w.Size.W / g.params.TileW)), int(math.Round(w.Size.H / g.params.TileH))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.machine.Current() == phase.Menu {
		g.renderMenu(dst)
		return
	}

	cols, rows := g.mapSize()
	needW, needH := max(cols, menuMinW), rows+hudRows+1
	if dst.Width() < needW || dst.Height() < needH {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", needW, needH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	scale := 1
	if cols*2 <= dst.Width() {
		scale = 2
	}
	l := layout{
		ox:    (dst.Width() - cols*scale) / 2,
		oy:    hudRows,
		scale: scale,
		tileW: g.params.TileW,
		tileH: g.params.TileH,
	}

	g.renderHUD(dst)

	views := g.Entities()
	for layer := 0; layer < 4; layer++ {
		for _, v := range views {
			if drawLayer(v.Kind) == layer {
				g.renderEntity(dst, l, v)
			}
		}
	}

	g.renderOverlay(dst)
}

func drawLayer(k sim.Kind) int {
	switch k {
	case sim.KindLadder, sim.KindPlatform:
		return 0
	case sim.KindCollectible, sim.KindPrincess, sim.KindAntagonist:
		return 1
	case sim.KindBarrel, sim.KindFire:
		return 2
	default:
		return 3
	}
}

// renderMenu draws the title screen.
func (g *Game) renderMenu(dst *core.Screen) {
	if dst.Width() < menuMinW || dst.Height() < menuMinH {
		dst.DrawTextCentered(dst.Height()/2, "KONG - press ENTER")
		return
	}

	y := max(0, (dst.Height()-len(titleArt)-6)/2)
	x := (dst.Width() - len([]rune(titleArt[0]))) / 2
	for i, line := range titleArt {
		dst.DrawTextColored(x, y+i, line, core.ColorRed)
	}
	y += len(titleArt) + 1

	levels := fmt.Sprintf("%d levels", g.levels.Len())
	if g.mode == ModeEndless {
		levels += " - endless"
	}
	dst.DrawTextCentered(y, levels)
	dst.DrawTextCentered(y+2, "Press ENTER to start")
	dst.DrawTextCentered(y+4, "←/→ move  ↑/↓ climb  SPACE jump  P pause  Q quit")
}

// renderHUD draws the score, lives, and level indicator.
func (g *Game) renderHUD(dst *core.Screen) {
	scoreText := fmt.Sprintf("Score: %d", g.currentScore())
	dst.DrawText(1, 0, scoreText)

	livesText := fmt.Sprintf("Lives: %d", g.currentLives())
	dst.DrawTextCentered(0, livesText)

	var levelText string
	if g.mode == ModeEndless {
		levelText = fmt.Sprintf("Level: %d", g.levelNumber())
	} else {
		levelText = fmt.Sprintf("Level: %d/%d", g.current.Index, g.levels.Len())
	}
	dst.DrawText(dst.Width()-len(levelText)-1, 0, levelText)

	for x := range dst.Width() {
		dst.Set(x, 1, BorderHoriz)
	}
	info := fmt.Sprintf(" %s: %s ", g.current.Name, goalHint(g.current.Goal))
	dst.DrawText(2, 1, info)
	if ch, ok := g.manager.MainCharacter(); ok && ch.HasHammer() {
		dst.DrawTextColored(dst.Width()-10, 1, " HAMMER ", core.ColorBrightRed)
	}
}

func goalHint(goal level.Goal) string {
	switch goal {
	case level.GoalBreakAll:
		return "break every rivet"
	default:
		return "rescue the princess"
	}
}

// glyph returns the rune and color of one tile of v.
func (g *Game) glyph(v View) (string, core.Color) {
	switch v.Kind {
	case sim.KindPlatform:
		switch {
		case v.Breakable:
			return "#", core.ColorYellow
		case v.Slope == sim.SlopeLeft:
			return "<", core.ColorRed
		case v.Slope == sim.SlopeRight:
			return ">", core.ColorRed
		default:
			return "=", core.ColorRed
		}
	case sim.KindLadder:
		return "H", core.ColorCyan
	case sim.KindCollectible:
		if v.Hammer {
			return "T", core.ColorCyan
		}
		return "$", core.ColorBrightYellow
	case sim.KindPrincess:
		if v.Rescued {
			return "P", core.ColorGreen
		}
		return "P", core.ColorMagenta
	case sim.KindAntagonist:
		return "K", core.ColorRed
	case sim.KindBarrel:
		return "O", core.ColorOrange
	case sim.KindFire:
		return "*", core.ColorBrightRed
	case sim.KindCharacter:
		if v.Hammer {
			return "@", core.ColorBrightRed
		}
		return "@", core.ColorYellow
	}
	return "?", core.ColorDefault
}

// wide returns the two-cell form of a glyph.
func wide(v View, r string) string {
	switch v.Kind {
	case sim.KindPlatform, sim.KindLadder:
		return r + r
	case sim.KindCharacter:
		if v.Facing < 0 {
			return "<" + r
		}
		return r + ">"
	case sim.KindBarrel:
		return "()"
	case sim.KindFire:
		return "^^"
	}
	return r + " "
}

func (g *Game) renderEntity(dst *core.Screen, l layout, v View) {
	if v.Broken || v.Collected {
		return
	}
	if v.Invulnerable && (g.tickCount/6)%2 == 1 {
		return
	}

	text, color := g.glyph(v)
	if l.scale == 2 {
		text = wide(v, text)
	}

	top := v.Box.Top()
	if v.Kind == sim.KindLadder {
		// Only the ladder's own tile is drawn; its upper half sits in the row above.
		top = v.Box.Bottom() - l.tileH
	}
	x, y := l.cell(v.Box.Left(), top)
	if v.Kind == sim.KindCharacter && l.scale == 2 && v.Facing < 0 {
		x--
	}
	dst.DrawTextColored(x, y, text, color)
}

// renderOverlay draws pause and game over boxes.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.machine.Current() {
	case phase.Paused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	case phase.GameOver:
		title := "GAME OVER"
		if g.completed {
			title = "YOU WIN!"
		}
		subtitle := fmt.Sprintf("Score: %d  |  Press ENTER", g.currentScore())
		g.drawCenteredBox(dst, title, subtitle)
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	titleX := boxX + (boxW-len(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}
