package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/physics"
)

var (
	flagTicks     int
	flagRight     bool
	flagLeft      bool
	flagJumpEvery int
	flagSnapEvery int
	flagPractice  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a level headless and print the actor state",
	Long: `Run a level for a number of fixed ticks with scripted input and print
where the actor ended up. Two runs with the same flags print the same
result, which makes this useful for checking levels and tuning.

Examples:
  platformer simulate --ticks 600 --right
  platformer simulate --ticks 1000 --right --jump-every 40 --level 02-brick-road
  platformer simulate --levels-dir ./my-levels --practice -v`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 600, "Number of fixed ticks to run")
	simulateCmd.Flags().BoolVar(&flagRight, "right", false, "Hold right the whole run")
	simulateCmd.Flags().BoolVar(&flagLeft, "left", false, "Hold left the whole run")
	simulateCmd.Flags().IntVar(&flagJumpEvery, "jump-every", 0, "Press jump every N ticks (0 = never)")
	simulateCmd.Flags().IntVar(&flagSnapEvery, "log-every", 100, "Log an actor snapshot every N ticks at debug level")
	simulateCmd.Flags().BoolVar(&flagPractice, "practice", false, "Run in practice mode (no timer, unlimited lives)")
	simulateCmd.Flags().StringVar(&flagLevel, "level", "", "Level ID to run (default: first level)")
	simulateCmd.Flags().StringVar(&flagLevelsDir, "levels-dir", "", "Directory with level files (default: bundled levels)")
	simulateCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config (YAML or TOML)")
	simulateCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

// script is the scripted input of a headless run.
type script struct {
	Ticks     int
	Move      int // -1 left, 0 none, 1 right
	JumpEvery int
	SnapEvery int
}

// frame returns the input for tick i. A jump is held for half the period.
func (s script) frame(i int) core.InputFrame {
	in := core.NewInputFrame()
	switch s.Move {
	case -1:
		in.Set(core.ActionLeft)
	case 1:
		in.Set(core.ActionRight)
	}
	if s.JumpEvery > 0 {
		switch i % s.JumpEvery {
		case 0:
			in.Set(core.ActionJump)
		case max(s.JumpEvery/2, 1):
			in.Set(core.ActionJumpRelease)
		}
	}
	return in
}

// report is the outcome of a headless run.
type report struct {
	Level    string
	Ticks    int64
	Actor    physics.Actor
	Score    int
	Lives    int
	Cleared  int
	Deaths   int
	GameOver bool
	Won      bool
}

// simulate resets game and steps it one tick at a time. It stops early when
// the game ends.
func simulate(game *platformer.Game, s script) (report, error) {
	if err := game.Reset(core.DefaultConfig()); err != nil {
		return report{}, err
	}

	var r report
	for i := 0; i < s.Ticks; i++ {
		tick := game.Sim().Config().Tick
		res := game.Step(s.frame(i), tick)
		r.Ticks += int64(res.Ticks)

		for _, ev := range res.Events {
			switch ev.Kind {
			case core.EventLevelComplete:
				r.Cleared++
				log.Info("level complete", "level", ev.LevelID, "ticks", ev.Ticks, "score", ev.Score)
			case core.EventLifeLost:
				r.Deaths++
				log.Info("life lost", "level", ev.LevelID, "ticks", ev.Ticks)
			}
		}

		if s.SnapEvery > 0 && (i+1)%s.SnapEvery == 0 {
			a := game.Sim().Actor()
			log.Debug("snapshot", "tick", i+1, "x", a.X, "y", a.Y, "dx", a.DX, "dy", a.DY, "ground", a.OnGround)
		}

		if res.State.GameOver {
			break
		}
	}

	st := game.State()
	r.Level = st.Level
	r.Actor = *game.Sim().Actor()
	r.Score = st.Score
	r.Lives = game.Lives()
	r.GameOver = st.GameOver
	r.Won = st.Won
	return r, nil
}

func runSimulate(_ *cobra.Command, _ []string) {
	if flagLeft && flagRight {
		fmt.Fprintln(os.Stderr, "Error: --left and --right are mutually exclusive")
		os.Exit(1)
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	s := script{
		Ticks:     flagTicks,
		JumpEvery: flagJumpEvery,
		SnapEvery: flagSnapEvery,
	}
	switch {
	case flagRight:
		s.Move = 1
	case flagLeft:
		s.Move = -1
	}

	game := platformer.New()
	if flagPractice {
		game = platformer.NewPractice()
	}
	game.Configure(platformer.Options{
		ConfigPath: flagConfig,
		LevelsDir:  flagLevelsDir,
		LevelID:    flagLevel,
		Difficulty: preset,
	})

	start := time.Now()
	r, err := simulate(game, s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.Debug("simulation finished", "elapsed", time.Since(start))

	fmt.Printf("level:    %s\n", r.Level)
	fmt.Printf("ticks:    %d\n", r.Ticks)
	fmt.Printf("position: %.3f, %.3f\n", r.Actor.X, r.Actor.Y)
	fmt.Printf("velocity: %.3f, %.3f\n", r.Actor.DX, r.Actor.DY)
	fmt.Printf("ground:   %t\n", r.Actor.OnGround)
	fmt.Printf("score:    %d\n", r.Score)
	fmt.Printf("lives:    %d\n", r.Lives)
	fmt.Printf("cleared:  %d\n", r.Cleared)
	fmt.Printf("deaths:   %d\n", r.Deaths)
	switch {
	case r.Won:
		fmt.Println("result:   won")
	case r.GameOver:
		fmt.Println("result:   game over")
	}
}
