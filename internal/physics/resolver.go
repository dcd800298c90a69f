package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/tilemap"
)

// ErrInvalidResolver is returned for resolvers with a negative terminal velocity.
var ErrInvalidResolver = errors.New("physics: invalid resolver parameters")

// Default physics parameters, in world units per tick.
const (
	DefaultGravity          = 0.3
	DefaultTerminalVelocity = 8.0
)

// Resolver integrates gravity and resolves tile collisions for an actor.
// The zero value has no gravity and no velocity limit.
type Resolver struct {
	Gravity          float64
	TerminalVelocity float64 // 0 disables the clamp
}

// DefaultResolver returns a resolver with the default parameters.
func DefaultResolver() Resolver {
	return Resolver{Gravity: DefaultGravity, TerminalVelocity: DefaultTerminalVelocity}
}

// Validate reports configuration errors.
func (r Resolver) Validate() error {
	if r.TerminalVelocity < 0 {
		return fmt.Errorf("%w: terminal velocity %v", ErrInvalidResolver, r.TerminalVelocity)
	}
	if math.IsNaN(r.Gravity) || math.IsInf(r.Gravity, 0) {
		return fmt.Errorf("%w: gravity %v", ErrInvalidResolver, r.Gravity)
	}
	return nil
}

// Integrate applies one tick of gravity to the actor's vertical velocity.
func (r Resolver) Integrate(a *Actor) {
	a.DY += r.Gravity
	if r.TerminalVelocity > 0 {
		a.DY = core.ClampF(a.DY, -r.TerminalVelocity, r.TerminalVelocity)
	}
}

// Step runs one fixed tick: gravity, then collision resolution.
func (r Resolver) Step(a *Actor, g *tilemap.Grid) Contact {
	r.Integrate(a)
	return r.Resolve(a, g)
}

// Resolve moves the actor by its velocity, stopping each axis at the first
// solid cell in the way. An actor that reaches a cell this call is placed
// flush with its edge and keeps its velocity; the axis counts as blocked,
// with its velocity zeroed, only when the actor was already flush and could
// not move at all. Landing therefore takes two ticks: the first closes the
// gap, the second sets OnGround. OnGround is recomputed every call.
//
// An actor that already overlaps a solid cell is not pushed out.
func (r Resolver) Resolve(a *Actor, g *tilemap.Grid) Contact {
	var c Contact
	a.OnGround = false

	if a.DX == 0 && a.DY == 0 {
		a.OnGround = supported(a, g)
		return c
	}

	if _, ok := g.FindOverlapping(sweptRect(a)); !ok {
		a.X += a.DX
		a.Y += a.DY
		return c
	}

	if a.DX != 0 {
		pos, blocked := sweepX(a, g)
		a.X = pos
		if blocked {
			if a.DX > 0 {
				c.Right = true
			} else {
				c.Left = true
			}
			a.DX = 0
		}
	}

	if a.DY != 0 {
		pos, blocked := sweepY(a, g)
		a.Y = pos
		if blocked {
			if a.DY > 0 {
				c.Bottom = true
				a.OnGround = true
			} else {
				c.Top = true
			}
			a.DY = 0
		}
	} else {
		a.OnGround = supported(a, g)
	}

	return c
}

// sweptRect covers the actor at its current and intended positions.
func sweptRect(a *Actor) core.Rect {
	x0 := math.Floor(math.Min(a.X, a.X+a.DX))
	y0 := math.Floor(math.Min(a.Y, a.Y+a.DY))
	x1 := math.Ceil(math.Max(a.Right(), a.Right()+a.DX))
	y1 := math.Ceil(math.Max(a.Bottom(), a.Bottom()+a.DY))
	return core.NewRect(int(x0), int(y0), int(x1-x0), int(y1-y0))
}

// span returns the inclusive cell range covered by [pos, pos+size) along one
// axis, clamped to [0, n). ok is false when the span misses the grid.
func span(pos float64, size int, tile, n int) (lo, hi int, ok bool) {
	ts := float64(tile)
	lo = int(math.Floor(pos / ts))
	hi = int(math.Ceil((pos+float64(size))/ts)) - 1
	if hi < 0 || lo >= n {
		return 0, 0, false
	}
	return core.Clamp(lo, 0, n-1), core.Clamp(hi, 0, n-1), true
}

// sweepX returns the actor's resolved x and whether a solid cell stopped it
// with no room left to move.
func sweepX(a *Actor, g *tilemap.Grid) (float64, bool) {
	minRow, maxRow, ok := span(a.Y, a.H, g.TileHeight(), g.Height())
	if !ok {
		return a.X + a.DX, false
	}

	tw := float64(g.TileWidth())
	d := a.DX
	stop := 0.0
	hit := false

	if a.DX > 0 {
		p := a.Right()
		first := int(math.Ceil(p / tw))
		for row := minRow; row <= maxRow; row++ {
			for col := first; col < g.Width(); col++ {
				edge := float64(col) * tw
				t := edge - p
				if t > d {
					break
				}
				if g.IsSolid(col, row) {
					d, stop, hit = t, edge-float64(a.W), true
					break
				}
			}
		}
	} else {
		p := a.X
		first := int(math.Floor(p/tw)) - 1
		for row := minRow; row <= maxRow; row++ {
			for col := first; col >= 0; col-- {
				edge := float64(col+1) * tw
				t := edge - p
				if t < d {
					break
				}
				if g.IsSolid(col, row) {
					d, stop, hit = t, edge, true
					break
				}
			}
		}
	}

	if hit {
		return stop, d == 0
	}
	return a.X + d, false
}

// sweepY is sweepX for the vertical axis, using the columns the actor
// occupies after its horizontal move.
func sweepY(a *Actor, g *tilemap.Grid) (float64, bool) {
	minCol, maxCol, ok := span(a.X, a.W, g.TileWidth(), g.Width())
	if !ok {
		return a.Y + a.DY, false
	}

	th := float64(g.TileHeight())
	d := a.DY
	stop := 0.0
	hit := false

	if a.DY > 0 {
		p := a.Bottom()
		first := int(math.Ceil(p / th))
		for col := minCol; col <= maxCol; col++ {
			for row := first; row < g.Height(); row++ {
				edge := float64(row) * th
				t := edge - p
				if t > d {
					break
				}
				if g.IsSolid(col, row) {
					d, stop, hit = t, edge-float64(a.H), true
					break
				}
			}
		}
	} else {
		p := a.Y
		first := int(math.Floor(p/th)) - 1
		for col := minCol; col <= maxCol; col++ {
			for row := first; row >= 0; row-- {
				edge := float64(row+1) * th
				t := edge - p
				if t < d {
					break
				}
				if g.IsSolid(col, row) {
					d, stop, hit = t, edge, true
					break
				}
			}
		}
	}

	if hit {
		return stop, d == 0
	}
	return a.Y + d, false
}

// supported reports whether the actor's bottom edge rests exactly on a
// solid cell.
func supported(a *Actor, g *tilemap.Grid) bool {
	th := float64(g.TileHeight())
	bottom := a.Bottom()
	row := bottom / th
	if row != math.Trunc(row) {
		return false
	}
	minCol, maxCol, ok := span(a.X, a.W, g.TileWidth(), g.Width())
	if !ok {
		return false
	}
	for col := minCol; col <= maxCol; col++ {
		if g.IsSolid(col, int(row)) {
			return true
		}
	}
	return false
}
