package platformer

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/tilemap"
)

// Animation constants
const (
	runFramePeriod = 120 * time.Millisecond
	runFrames      = 2
)

// runAnimation cycles the running pose while the actor moves on the ground.
type runAnimation struct {
	frame int
	acc   time.Duration
}

// Advance moves the animation forward by elapsed; it rests on frame 0 when
// the actor is not running.
func (r *runAnimation) Advance(elapsed time.Duration, running bool) {
	if !running {
		r.frame = 0
		r.acc = 0
		return
	}
	r.acc += elapsed
	for r.acc >= runFramePeriod {
		r.acc -= runFramePeriod
		r.frame = (r.frame + 1) % runFrames
	}
}

// Pose is what the actor is doing, for choosing a glyph.
type Pose int

const (
	PoseIdle Pose = iota
	PoseRun
	PoseJump
	PoseFall
)

// pose picks the actor's pose from its ground contact and velocity.
func (g *Game) pose() Pose {
	a := g.state.Actor()
	switch {
	case !a.OnGround && a.DY < 0:
		return PoseJump
	case !a.OnGround:
		return PoseFall
	case a.DX != 0:
		return PoseRun
	default:
		return PoseIdle
	}
}

func (g *Game) actorGlyph() rune {
	a := g.state.Actor()
	left := a.DX < 0
	switch g.pose() {
	case PoseJump:
		return '▲'
	case PoseFall:
		return '▼'
	case PoseRun:
		frames := [2][runFrames]rune{{'▶', '▷'}, {'◀', '◁'}}
		if left {
			return frames[1][g.anim.frame]
		}
		return frames[0][g.anim.frame]
	default:
		return '☻'
	}
}

var tileGlyphs = map[uint16]struct {
	r rune
	c core.Color
}{
	level.IDGround: {'█', core.ColorBrown},
	level.IDBrick:  {'▓', core.ColorRed},
	level.IDBlock:  {'?', core.ColorBrightYellow},
	level.IDPipe:   {'║', core.ColorBrightGreen},
	level.IDHill:   {'^', core.ColorGreen},
	level.IDBush:   {'*', core.ColorGreen},
	level.IDCloud:  {'~', core.ColorWhite},
	level.IDCoin:   {'o', core.ColorYellow},
	level.IDGoal:   {'⚑', core.ColorBrightWhite},
}

// viewSize returns the camera size in world units for the current screen:
// every tile takes cell_width columns and cell_height rows.
func (g *Game) viewSize(grid *tilemap.Grid) (int, int) {
	r := g.cfg.Render
	cols := core.Max(g.screenW, 0) / r.CellWidth
	rows := core.Max(g.screenH-r.HUDRows, 0) / r.CellHeight
	return cols * grid.TileWidth(), rows * grid.TileHeight()
}

// toScreen converts a viewport position in world units to a screen cell.
func (g *Game) toScreen(vx, vy int, grid *tilemap.Grid) (int, int) {
	r := g.cfg.Render
	sx := core.FloorDiv(vx*r.CellWidth, grid.TileWidth())
	sy := r.HUDRows + core.FloorDiv(vy*r.CellHeight, grid.TileHeight())
	return sx, sy
}

// Render draws the visible part of the level, the actor and the HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.state == nil {
		dst.DrawMessageBox("No level loaded", "Check the levels directory")
		return
	}

	grid := g.state.Grid()
	cam := g.state.Camera()

	if dst.Width() != g.screenW || dst.Height() != g.screenH {
		g.screenW, g.screenH = dst.Width(), dst.Height()
		w, h := g.viewSize(grid)
		cam.Resize(w, h)
		cam.CenterOn(g.state.Actor().Rect())
	}

	r := g.cfg.Render
	grid.ForEachOverlapping(cam.WorldRect(), func(t tilemap.Tile, cell core.Rect) {
		if t.IsEmpty() {
			return
		}
		glyph, ok := tileGlyphs[t.ID]
		if !ok {
			glyph.r, glyph.c = '#', core.ColorGray
		}
		v := cam.ToViewport(cell)
		sx, sy := g.toScreen(v.X, v.Y, grid)
		dst.FillRect(core.NewRect(sx, sy, r.CellWidth, r.CellHeight), glyph.r, glyph.c)
	})

	// The actor may straddle cells; cover every cell its box touches.
	v := cam.ToViewport(g.state.Actor().Rect())
	x0, y0 := g.toScreen(v.X, v.Y, grid)
	x1, y1 := g.toScreen(v.Right()-1, v.Bottom()-1, grid)
	dst.FillRect(core.NewRect(x0, y0, x1-x0+1, y1-y0+1), g.actorGlyph(), core.ColorBrightRed)

	// HUD drawn last so the world never covers it.
	g.renderHUD(dst)

	switch {
	case g.won:
		dst.DrawMessageBox("You Win!", fmt.Sprintf("Final score %d - R to play again", g.score))
	case g.gameOver:
		dst.DrawMessageBox("Game Over", "Press R to restart")
	case g.paused:
		dst.DrawMessageBox("Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	if g.cfg.Render.HUDRows <= 0 {
		return
	}
	dst.FillRect(core.NewRect(0, 0, dst.Width(), g.cfg.Render.HUDRows), ' ', core.ColorDefault)

	lvl := g.Level()
	hud := fmt.Sprintf(" %s %d/%d | Score: %d | Coins: %d", lvl.Name, g.levelIndex+1, len(g.levels), g.score, g.coins)
	if g.mode == ModeCampaign {
		hud += fmt.Sprintf(" | Lives: %d | Time: %d", g.lives, int(g.TimeLeft()/time.Second))
	} else {
		hud += " | Practice"
	}
	dst.DrawTextColored(0, 0, hud, core.ColorCyan)

	if g.cfg.Render.HUDRows > 1 {
		for x := 0; x < dst.Width(); x++ {
			dst.SetColored(x, 1, '─', core.ColorGray)
		}
	}
}
