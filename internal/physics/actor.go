// Package physics moves a single actor through a tile grid under gravity.
// Movement is resolved one axis at a time, horizontal first, by sweeping the
// actor's leading edge against the solid cells it could reach this tick.
package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// ErrInvalidActor is returned for actors with a non-positive size.
var ErrInvalidActor = errors.New("physics: actor size must be positive")

// Actor is the single moving body of the simulation.
// Position is the top-left corner in world units.
type Actor struct {
	X, Y     float64
	DX, DY   float64
	W, H     int
	OnGround bool
}

// NewActor creates an actor at rest at (x, y).
func NewActor(x, y float64, w, h int) *Actor {
	return &Actor{X: x, Y: y, W: w, H: h}
}

// Validate reports configuration errors in the actor's shape.
func (a *Actor) Validate() error {
	if a.W <= 0 || a.H <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidActor, a.W, a.H)
	}
	return nil
}

// Rect returns the integer rectangle covering the actor.
// Fractional positions widen the rectangle so it never under-covers.
func (a *Actor) Rect() core.Rect {
	x0 := int(math.Floor(a.X))
	y0 := int(math.Floor(a.Y))
	x1 := int(math.Ceil(a.X + float64(a.W)))
	y1 := int(math.Ceil(a.Y + float64(a.H)))
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

// Bottom returns the y coordinate of the actor's bottom edge.
func (a *Actor) Bottom() float64 {
	return a.Y + float64(a.H)
}

// Right returns the x coordinate of the actor's right edge.
func (a *Actor) Right() float64 {
	return a.X + float64(a.W)
}

// Stop clears both velocity components.
func (a *Actor) Stop() {
	a.DX = 0
	a.DY = 0
}

// Contact records which sides of the actor were blocked during a resolve.
type Contact struct {
	Left, Right bool
	Top, Bottom bool
}

// Any reports whether any side was blocked.
func (c Contact) Any() bool {
	return c.Left || c.Right || c.Top || c.Bottom
}
