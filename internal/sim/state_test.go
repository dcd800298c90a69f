package sim

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/camera"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/tilemap"
)

// newFloorState builds a 10x10 world of 32-unit tiles with a solid floor on
// row 9 and the actor at (x, y).
func newFloorState(t *testing.T, x, y float64) *State {
	t.Helper()
	g, err := tilemap.New(10, 10, 32, 32, tilemap.Empty())
	if err != nil {
		t.Fatalf("tilemap.New() error = %v", err)
	}
	for col := 0; col < 10; col++ {
		_ = g.SetTile(col, 9, tilemap.Solid(1))
	}

	cfg := DefaultConfig()
	cfg.Physics = physics.Resolver{Gravity: 0.3, TerminalVelocity: 8}

	s, err := New(g, physics.NewActor(x, y, 32, 32), camera.New(0, 0, 160, 96, g.Bounds()), cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestActorSettlesOnFloor(t *testing.T) {
	s := newFloorState(t, 100, 0)

	for i := 0; i < 400; i++ {
		s.Advance(DefaultTick)
	}

	a := s.Actor()
	if a.Y != 9*32-32 {
		t.Errorf("Y = %v, expected %v", a.Y, 9*32-32)
	}
	if a.DY != 0 {
		t.Errorf("DY = %v, expected 0", a.DY)
	}
	if !a.OnGround {
		t.Error("actor should be on the ground")
	}
	if s.Ticks() != 400 {
		t.Errorf("Ticks() = %d, expected 400", s.Ticks())
	}

	// Stays put.
	s.Advance(DefaultTick)
	if a.Y != 256 || !a.OnGround {
		t.Errorf("actor drifted after settling: %+v", a)
	}
}

func TestHoldingRightStopsAtWall(t *testing.T) {
	s := newFloorState(t, 100, 256)
	for row := 0; row < 9; row++ {
		_ = s.Grid().SetTile(5, row, tilemap.Solid(2))
	}

	for i := 0; i < 300; i++ {
		s.ApplyIntent(Intent{Move: 1})
		s.Advance(DefaultTick)
	}

	a := s.Actor()
	if a.X != 5*32-32 {
		t.Errorf("X = %v, expected %v", a.X, 5*32-32)
	}
	if a.DX != 0 {
		t.Errorf("DX = %v, expected 0", a.DX)
	}
	if !s.LastContact().Right {
		t.Errorf("LastContact() = %+v, expected right contact", s.LastContact())
	}
}

func TestDeterministicAcrossFramePartitions(t *testing.T) {
	run := func(frames []time.Duration, repeat int) *State {
		s := newFloorState(t, 40, 0)
		s.ApplyIntent(Intent{Move: 1})
		for i := 0; i < repeat; i++ {
			for _, f := range frames {
				s.Advance(f)
			}
		}
		return s
	}

	even := run([]time.Duration{10 * time.Millisecond}, 300)
	ragged := run([]time.Duration{
		3 * time.Millisecond,
		17 * time.Millisecond,
		10 * time.Millisecond,
		25 * time.Millisecond,
		5 * time.Millisecond,
	}, 50)

	if even.Ticks() != ragged.Ticks() {
		t.Fatalf("Ticks() differ: %d vs %d", even.Ticks(), ragged.Ticks())
	}
	if *even.Actor() != *ragged.Actor() {
		t.Errorf("actors differ:\n%+v\n%+v", *even.Actor(), *ragged.Actor())
	}
	if even.Camera().WorldRect() != ragged.Camera().WorldRect() {
		t.Errorf("cameras differ: %+v vs %+v", even.Camera().WorldRect(), ragged.Camera().WorldRect())
	}
}

func TestAdvanceAccumulator(t *testing.T) {
	s := newFloorState(t, 100, 0)

	if n := s.Advance(15 * time.Millisecond); n != 1 {
		t.Errorf("Advance(15ms) = %d, expected 1", n)
	}
	if a := s.Alpha(); a != 0.5 {
		t.Errorf("Alpha() = %v, expected 0.5", a)
	}
	if n := s.Advance(5 * time.Millisecond); n != 1 {
		t.Errorf("Advance(5ms) = %d, expected 1 from carried lag", n)
	}
	if n := s.Advance(-time.Second); n != 0 {
		t.Errorf("Advance(-1s) = %d, expected 0", n)
	}
	if n := s.Advance(10 * time.Second); n != 25 {
		t.Errorf("Advance(10s) = %d, expected 25 (clamped to max frame)", n)
	}
}

func TestAdvanceWithHook(t *testing.T) {
	s := newFloorState(t, 100, 0)

	calls := 0
	n := s.AdvanceWith(45*time.Millisecond, func() bool {
		calls++
		if got := s.Ticks(); got != int64(calls) {
			t.Errorf("hook %d saw Ticks() = %d", calls, got)
		}
		return false
	})
	if n != 4 || calls != 4 {
		t.Errorf("AdvanceWith(45ms) = %d with %d hook calls, expected 4 and 4", n, calls)
	}

	// Stop after the second tick; the rest stays as lag.
	calls = 0
	n = s.AdvanceWith(35*time.Millisecond, func() bool {
		calls++
		return calls == 2
	})
	if n != 2 || calls != 2 {
		t.Errorf("stopped AdvanceWith() = %d with %d hook calls, expected 2 and 2", n, calls)
	}
	if s.Ticks() != 6 {
		t.Errorf("Ticks() = %d, expected 6", s.Ticks())
	}
	if n := s.Advance(0); n != 2 {
		t.Errorf("Advance(0) = %d, expected 2 from the kept lag", n)
	}
}

func TestJump(t *testing.T) {
	s := newFloorState(t, 100, 256)
	s.Advance(DefaultTick)
	if !s.Actor().OnGround {
		t.Fatal("actor should start on the ground")
	}

	s.ApplyIntent(Intent{JumpPressed: true})
	s.Advance(DefaultTick)

	a := s.Actor()
	if a.Y >= 256 || a.DY >= 0 {
		t.Errorf("actor = %+v, expected rising", a)
	}
	if a.OnGround {
		t.Error("actor should be airborne")
	}

	s.ApplyIntent(Intent{JumpReleased: true})
	if a.DY != DefaultControl().JumpCut {
		t.Errorf("DY = %v, expected jump cut %v", a.DY, DefaultControl().JumpCut)
	}

	// No double jump.
	s.ApplyIntent(Intent{JumpPressed: true})
	if a.DY != DefaultControl().JumpCut {
		t.Errorf("DY = %v, airborne jump should be ignored", a.DY)
	}
}

func TestClampToWorld(t *testing.T) {
	s := newFloorState(t, 0, 256)
	s.Actor().DX = -4
	s.Advance(DefaultTick)

	if s.Actor().X != 0 || s.Actor().DX != 0 {
		t.Errorf("actor = %+v, expected held at the left edge", s.Actor())
	}
	if !s.LastContact().Left {
		t.Error("clamping should report a left contact")
	}
}

func TestCameraFollowsActor(t *testing.T) {
	s := newFloorState(t, 100, 0)
	if !s.Grid().Bounds().ContainsRect(s.Camera().WorldRect()) {
		t.Errorf("camera %+v outside world", s.Camera().WorldRect())
	}

	for i := 0; i < 200; i++ {
		s.Advance(DefaultTick)
	}
	cam := s.Camera().WorldRect()
	if cam.Bottom() != 320 {
		t.Errorf("camera bottom = %d, expected 320 (clamped to world)", cam.Bottom())
	}
}

func TestNewRejectsBadSetup(t *testing.T) {
	g, _ := tilemap.New(10, 10, 32, 32, tilemap.Empty())
	for col := 0; col < 10; col++ {
		_ = g.SetTile(col, 9, tilemap.Solid(1))
	}
	cam := camera.New(0, 0, 160, 96, g.Bounds())

	_, err := New(g, physics.NewActor(100, 270, 32, 32), cam, DefaultConfig())
	if !errors.Is(err, ErrSpawnOverlap) {
		t.Errorf("New() error = %v, expected ErrSpawnOverlap", err)
	}

	cfg := DefaultConfig()
	cfg.Tick = 0
	_, err = New(g, physics.NewActor(100, 0, 32, 32), cam, cfg)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("New() error = %v, expected ErrInvalidConfig", err)
	}

	_, err = New(g, physics.NewActor(100, 0, 0, 32), cam, DefaultConfig())
	if !errors.Is(err, physics.ErrInvalidActor) {
		t.Errorf("New() error = %v, expected ErrInvalidActor", err)
	}
}

func TestRespawn(t *testing.T) {
	s := newFloorState(t, 100, 0)
	s.Advance(100 * time.Millisecond)

	if err := s.Respawn(100, 280); !errors.Is(err, ErrSpawnOverlap) {
		t.Errorf("Respawn() into the floor error = %v, expected ErrSpawnOverlap", err)
	}

	if err := s.Respawn(40, 10); err != nil {
		t.Fatalf("Respawn() error = %v", err)
	}
	a := s.Actor()
	if a.X != 40 || a.Y != 10 || a.DX != 0 || a.DY != 0 {
		t.Errorf("actor = %+v, expected at rest at (40, 10)", a)
	}
	if s.Alpha() != 0 {
		t.Errorf("Alpha() = %v, expected 0 after respawn", s.Alpha())
	}
}
