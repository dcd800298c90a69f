package sim

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/physics"
)

// Intent is the per-frame player input, decided from keyboard state.
type Intent struct {
	Move         int // -1 left, 0 none, +1 right
	JumpPressed  bool
	JumpReleased bool
}

// Control turns intents into actor velocity. Horizontal speed eases toward
// the target with a per-frame blend factor; jumps set an impulse that is cut
// short when the button is released early.
type Control struct {
	Speed         float64
	AccelStart    float64 // blend while already moving that way
	AccelChange   float64 // blend when starting or reversing
	AccelStop     float64 // ground friction with no input
	StopThreshold float64
	JumpImpulse   float64 // negative is up
	JumpCut       float64
}

// DefaultControl returns the stock movement feel.
func DefaultControl() Control {
	return Control{
		Speed:         4,
		AccelStart:    0.02,
		AccelChange:   0.06,
		AccelStop:     0.15,
		StopThreshold: 0.2,
		JumpImpulse:   -8,
		JumpCut:       -4,
	}
}

// Validate reports configuration errors.
func (c Control) Validate() error {
	if c.Speed <= 0 {
		return fmt.Errorf("%w: speed must be positive", ErrInvalidConfig)
	}
	blends := []struct {
		name string
		v    float64
	}{
		{"accel_start", c.AccelStart},
		{"accel_change", c.AccelChange},
		{"accel_stop", c.AccelStop},
	}
	for _, b := range blends {
		if b.v <= 0 || b.v > 1 {
			return fmt.Errorf("%w: %s must be in (0, 1], got %v", ErrInvalidConfig, b.name, b.v)
		}
	}
	if c.JumpImpulse >= 0 {
		return fmt.Errorf("%w: jump impulse must be negative", ErrInvalidConfig)
	}
	if c.JumpCut < c.JumpImpulse || c.JumpCut > 0 {
		return fmt.Errorf("%w: jump cut must lie between the impulse and 0", ErrInvalidConfig)
	}
	return nil
}

// Apply updates the actor's velocity from one frame of intent.
func (c Control) Apply(a *physics.Actor, in Intent) {
	switch {
	case in.Move > 0:
		c.steer(a, c.Speed)
	case in.Move < 0:
		c.steer(a, -c.Speed)
	case a.OnGround:
		a.DX *= 1 - c.AccelStop
		if math.Abs(a.DX) < c.StopThreshold {
			a.DX = 0
		}
	}

	if in.JumpPressed && a.OnGround {
		a.DY = c.JumpImpulse
		a.OnGround = false
	}
	if in.JumpReleased && a.DY < c.JumpCut {
		a.DY = c.JumpCut
	}
}

func (c Control) steer(a *physics.Actor, target float64) {
	same := a.DX != 0 && (a.DX > 0) == (target > 0)
	reversing := a.DX != 0 && !same
	if reversing && !a.OnGround {
		return
	}

	blend := c.AccelChange
	if same {
		blend = c.AccelStart
	}
	a.DX = blend*target + (1-blend)*a.DX
}
