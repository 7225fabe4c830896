package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Visual characters for rendering
const (
	ActorBody     = '●'
	ActorWingUp   = '▀'
	ActorWingDown = '▄'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
	GroundFill    = '▒'
)

// viewport maps world coordinates (Y up) onto screen cells (Y down).
type viewport struct {
	w, h   int
	worldW float64
	worldH float64
	sx, sy float64
}

func newViewport(dst *core.Screen, worldW, worldH float64) viewport {
	return viewport{
		w:      dst.Width(),
		h:      dst.Height(),
		worldW: worldW,
		worldH: worldH,
		sx:     float64(dst.Width()) / worldW,
		sy:     float64(dst.Height()) / worldH,
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x * v.sx))
}

func (v viewport) row(y float64) int {
	return int(math.Floor((v.worldH - y) * v.sy))
}

// rect converts a world box to the screen cells it covers, clipped to the
// screen. Boxes thinner than a cell still cover one cell.
func (v viewport) rect(b core.Box) core.Rect {
	x0 := core.Clamp(v.col(b.Left()), 0, v.w)
	x1 := core.Clamp(int(math.Ceil(b.Right()*v.sx)), 0, v.w)
	y0 := core.Clamp(v.row(b.Top()), 0, v.h)
	y1 := core.Clamp(int(math.Ceil((v.worldH-b.Bottom())*v.sy)), 0, v.h)
	if x1 <= x0 && x0 < v.w {
		x1 = x0 + 1
	}
	if y1 <= y0 && y0 < v.h {
		y1 = y0 + 1
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}
	v := newViewport(dst, g.cfg.World.Width, g.cfg.World.Height)
	groundRow := v.row(g.cfg.World.GroundTop())

	for _, o := range g.session.Stream().Live() {
		g.drawObstacle(dst, v, o, groundRow)
	}
	g.drawGround(dst, groundRow)
	g.drawActor(dst, v)
	g.drawHUD(dst)

	if g.flashTicks > 0 {
		dst.DrawBox(core.NewRect(0, 0, dst.Width(), dst.Height()), core.ColorBrightWhite)
	}

	switch {
	case g.paused:
		drawCenteredMessage(dst, core.ColorWhite, "PAUSED", "Press P to resume")
	case g.session.RunState() == RunReady:
		dst.DrawTextCentered(dst.Height()/3, "GET READY", core.ColorBrightYellow)
		dst.DrawTextCentered(dst.Height()/3+2, "SPACE or click to flap", core.ColorWhite)
	case g.result != nil && g.session.Actor().State() == StateDead:
		g.drawResult(dst)
	}
}

func (g *Game) drawObstacle(dst *core.Screen, v viewport, o *Obstacle, groundRow int) {
	upper := v.rect(o.UpperBox())
	lower := v.rect(o.LowerBox())
	if lower.Bottom() > groundRow {
		lower.H = core.Max(0, groundRow-lower.Y)
	}

	dst.DrawRect(upper, PipeChar, core.ColorGreen)
	dst.DrawRect(lower, PipeChar, core.ColorGreen)
	if upper.H > 0 {
		dst.DrawHLine(upper.X, upper.Bottom()-1, upper.W, PipeCapTop, core.ColorBrightGreen)
	}
	if lower.H > 0 {
		dst.DrawHLine(lower.X, lower.Y, lower.W, PipeCapBottom, core.ColorBrightGreen)
	}
}

func (g *Game) drawGround(dst *core.Screen, groundRow int) {
	if groundRow >= dst.Height() {
		groundRow = dst.Height() - 1
	}
	dst.DrawHLine(0, groundRow, dst.Width(), GroundChar, core.ColorGreen)
	// The ground texture scrolls with the obstacles while the run is alive.
	offset := 0
	if g.session.Stream().Running() {
		offset = g.tickCount / 4
	}
	for y := groundRow + 1; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			r := GroundFill
			if (x+offset+y)%6 == 0 {
				r = '░'
			}
			dst.SetColored(x, y, r, core.ColorYellow)
		}
	}
}

func (g *Game) drawActor(dst *core.Screen, v viewport) {
	a := g.session.Actor()
	r := v.rect(a.Box())
	if r.W <= 0 || r.H <= 0 {
		return
	}

	dst.DrawRect(r, ActorBody, core.ColorBrightYellow)

	wing := ActorWingUp
	if g.wingsStill || (g.tickCount/6)%2 == 1 {
		wing = ActorWingDown
	}
	dst.SetColored(r.X, r.Y, wing, core.ColorWhite)
	dst.SetColored(r.Right()-1, r.Y, beakGlyph(a), core.ColorOrange)
}

// beakGlyph picks the beak glyph from the actor's tilt.
func beakGlyph(a *Actor) rune {
	switch {
	case a.State() == StateDead:
		return 'x'
	case a.Tilt() < -10:
		return '↗'
	case a.Tilt() > 45:
		return '↓'
	case a.Tilt() > 10:
		return '↘'
	default:
		return '▶'
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	if g.session.RunState() != RunReady {
		dst.DrawTextCentered(0, fmt.Sprintf(" %d ", g.session.Score()), core.ColorBrightWhite)
	}
	best := fmt.Sprintf("Best: %d ", g.session.Best())
	dst.DrawTextColored(dst.Width()-len(best), 0, best, core.ColorGray)
}

func (g *Game) drawResult(dst *core.Screen) {
	res := g.result
	lines := []string{
		"GAME OVER",
		fmt.Sprintf("Score: %d  Best: %d", res.score, res.best),
	}
	if res.medal != MedalNone {
		lines = append(lines, fmt.Sprintf("Medal: %s", res.medal))
	}
	if res.newBest {
		lines = append(lines, "NEW BEST!")
	}
	lines = append(lines, "R restart | Q quit")
	drawCenteredMessage(dst, medalColor(res.medal), lines...)
}

func medalColor(m Medal) core.Color {
	switch m {
	case MedalGold:
		return core.ColorBrightYellow
	case MedalSilver:
		return core.ColorBrightWhite
	default:
		return core.ColorWhite
	}
}

// drawCenteredMessage draws a boxed block of lines in the center of the screen.
func drawCenteredMessage(dst *core.Screen, c core.Color, lines ...string) {
	boxW := 0
	for _, l := range lines {
		boxW = core.Max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	for i, l := range lines {
		x := boxX + (boxW-len([]rune(l)))/2
		dst.DrawTextColored(x, boxY+1+i, l, c)
	}
}
