// Command mazesearch runs beam search or chokudai search on reward mazes.
//
// With -scenario it loads one maze from JSON and prints the recommended first
// action. Without it, it plays -games random mazes to the end and prints the
// score summary of the chosen actor.
package main

import (
	"context"
	"fmt"
	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/rs/zerolog"
	"github.com/sw965/beamsearch/game"
	"github.com/sw965/beamsearch/game/maze"
	"github.com/sw965/beamsearch/search"
	"github.com/sw965/beamsearch/search/beam"
	"github.com/sw965/beamsearch/search/chokudai"
	"github.com/sw965/omw/mathx/randx"
	"math/rand/v2"
	"os"
	"time"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger().
		Level(zerolog.InfoLevel)

	if err := newCommand(logger).Dispatch(os.Args[1:]); err != nil {
		logger.Fatal().Err(err).Msg("mazesearch failed")
	}
}

func newCommand(logger zerolog.Logger) *commander.Command {
	cfg := &config{}
	cmd := &commander.Command{
		Run: func(cmd *commander.Command, args []string) error {
			l := logger
			if cfg.Verbose {
				l = l.Level(zerolog.DebugLevel)
			}
			return run(*cfg, l)
		},
		UsageLine: "mazesearch [options]",
		Short:     "runs beam or chokudai search on reward mazes",
		Long: `
runs beam or chokudai search on reward mazes

	$ ./mazesearch -algo beam -width 4 -depth 4 -scenario <maze json>
	$ ./mazesearch -algo chokudai -width 1 -depth 4 -passes 4 -games 1000 [options]

`,
		Flag: *flag.NewFlagSet("mazesearch", flag.ContinueOnError),
	}
	cmd.Flag.StringVar(&cfg.Algo, "algo", "beam", "beam, chokudai, greedy or random")
	cmd.Flag.StringVar(&cfg.Eval, "eval", "score", "state evaluation: score or nearest")
	cmd.Flag.IntVar(&cfg.Width, "width", 4, "candidates expanded per depth (per pass for chokudai)")
	cmd.Flag.IntVar(&cfg.Depth, "depth", 4, "search depth")
	cmd.Flag.IntVar(&cfg.Passes, "passes", 4, "chokudai passes")
	cmd.Flag.IntVar(&cfg.Workers, "workers", 1, "goroutines used for one expansion")
	cmd.Flag.StringVar(&cfg.Scenario, "scenario", "", "maze scenario json file")
	cmd.Flag.IntVar(&cfg.Games, "games", 100, "random mazes to play without -scenario")
	cmd.Flag.IntVar(&cfg.Height, "height", 3, "random maze height")
	cmd.Flag.IntVar(&cfg.Cols, "cols", 4, "random maze width")
	cmd.Flag.IntVar(&cfg.EndTurn, "end-turn", 4, "random maze turn limit")
	cmd.Flag.Uint64Var(&cfg.Seed, "seed", 0, "random seed, 0 draws one")
	cmd.Flag.DurationVar(&cfg.Timeout, "timeout", 0, "time budget of one search, 0 means no limit")
	cmd.Flag.BoolVar(&cfg.Verbose, "v", false, "log every search boundary")
	return cmd
}

type config struct {
	Algo     string
	Eval     string
	Width    int
	Depth    int
	Passes   int
	Workers  int
	Scenario string
	Games    int
	Height   int
	Cols     int
	EndTurn  int
	Seed     uint64
	Timeout  time.Duration
	Verbose  bool
}

func run(cfg config, logger zerolog.Logger) error {
	logic, err := maze.NewLogicByName(cfg.Eval)
	if err != nil {
		return err
	}
	observer := search.NewLogObserver[maze.State, maze.Action](logger)
	actor, err := newActor(cfg, logic, observer)
	if err != nil {
		return err
	}

	rng := newRand(cfg.Seed)

	if cfg.Scenario != "" {
		data, err := os.ReadFile(cfg.Scenario)
		if err != nil {
			return err
		}
		state, err := maze.ParseJSON(data)
		if err != nil {
			return fmt.Errorf("%s: %w", cfg.Scenario, err)
		}

		action, err := actor(state, rng)
		if err != nil {
			return err
		}
		logger.Info().Str("algo", cfg.Algo).Str("eval", cfg.Eval).Stringer("action", action).Msg("first-action")
		fmt.Print(state)
		fmt.Println(action)
		return nil
	}

	inits := make([]maze.State, cfg.Games)
	for i := range inits {
		inits[i], err = maze.NewRandomState(cfg.Height, cfg.Cols, cfg.EndTurn, rng)
		if err != nil {
			return err
		}
	}

	start := time.Now()
	finals, err := logic.Playouts(inits, actor, []*rand.Rand{rng})
	if err != nil {
		return err
	}

	scores := make([]float64, len(finals))
	for i, f := range finals {
		scores[i] = float64(f.GameScore)
	}
	summary, err := game.Summarize(scores)
	if err != nil {
		return err
	}

	logger.Info().
		Str("algo", cfg.Algo).
		Str("eval", cfg.Eval).
		Int("games", summary.N).
		Float64("mean", summary.Mean).
		Float64("std", summary.StdDev).
		Dur("elapsed", time.Since(start)).
		Msg("playouts-done")
	fmt.Println(summary)
	return nil
}

func newActor(cfg config, logic game.Logic[maze.State, maze.Action], observer search.Observer[maze.State, maze.Action]) (game.Actor[maze.State, maze.Action], error) {
	switch cfg.Algo {
	case "beam":
		e := beam.Engine[maze.State, maze.Action]{
			Logic:    logic,
			Width:    cfg.Width,
			Depth:    cfg.Depth,
			Workers:  cfg.Workers,
			Observer: observer,
		}
		if err := e.Validate(); err != nil {
			return nil, err
		}
		return withTimeout(cfg.Timeout, e.Actor), nil
	case "chokudai":
		e := chokudai.Engine[maze.State, maze.Action]{
			Logic:    logic,
			Width:    cfg.Width,
			Depth:    cfg.Depth,
			Passes:   cfg.Passes,
			Workers:  cfg.Workers,
			Observer: observer,
		}
		if err := e.Validate(); err != nil {
			return nil, err
		}
		return withTimeout(cfg.Timeout, e.Actor), nil
	case "greedy":
		return game.NewGreedyActor(logic), nil
	case "random":
		return game.NewRandomActor(logic), nil
	}
	return nil, fmt.Errorf("unknown -algo %q", cfg.Algo)
}

// withTimeout gives every call of the returned actor its own deadline.
func withTimeout[S any, A comparable](timeout time.Duration, actor func(context.Context) game.Actor[S, A]) game.Actor[S, A] {
	return func(state S, rng *rand.Rand) (A, error) {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return actor(ctx)(state, rng)
	}
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return randx.NewPCGFromGlobalSeed()
	}
	return rand.New(rand.NewPCG(seed, seed))
}
