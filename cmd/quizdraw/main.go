// Command quizdraw generates a quiz-meet prelim draw and post-prelim
// bracket from flag-specified field parameters: seed a starting board,
// anneal it against the energy model, compose the bracket, and emit the
// quiz-record JSON sequence spec §6 defines.
package main

import (
	"context"
	"errors"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/avast/retry-go"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/northfield-quizbowl/quizdraw/anneal"
	"github.com/northfield-quizbowl/quizdraw/board"
	"github.com/northfield-quizbowl/quizdraw/bracket"
	"github.com/northfield-quizbowl/quizdraw/config"
	"github.com/northfield-quizbowl/quizdraw/energy"
	"github.com/northfield-quizbowl/quizdraw/seed"
	"github.com/northfield-quizbowl/quizdraw/serialize"
)

const (
	exitOK            = 0
	exitConfigError   = 2
	exitUnsatisfiable = 3

	// maxRetries bounds the retry-with-new-seed loop on Unsatisfiable
	// (spec §7): an operator who wants more should raise -attempts
	// instead of waiting out an unbounded retry loop.
	maxRetries = 3
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	setupLogger()

	f, err := parseFlags(args)
	if err != nil {
		log.Error().Err(err).Msg("parsing flags")
		return exitConfigError
	}

	cfg := config.New()
	if f.configPath != "" {
		if err := cfg.LoadFile(f.configPath); err != nil {
			log.Error().Err(err).Msg("loading config")
			return exitConfigError
		}
	}
	if f.bracketScript != "" {
		scriptStyle, table, err := config.LoadStyleScript(f.bracketScript)
		if err != nil {
			log.Error().Err(err).Msg("loading bracket style script")
			return exitConfigError
		}
		cfg.SetBracketTable(scriptStyle, table)
	}

	style, err := bracket.ParseStyle(f.bracketStyle)
	if err != nil {
		log.Error().Err(err).Msg("parsing bracket style")
		return exitConfigError
	}
	bracketTable, err := cfg.BracketTable(style)
	if err != nil {
		log.Error().Err(err).Msg("resolving bracket table")
		return exitConfigError
	}
	finalsRepeats, err := parseFinalsRepeats(f.finalsRepeats)
	if err != nil {
		log.Error().Err(err).Msg("parsing finals repeats")
		return exitConfigError
	}
	if err := board.ValidateTeamConfig(f.teams, f.qpt, f.rooms, f.blanks); err != nil {
		log.Error().Err(err).Msg("validating team config")
		return exitConfigError
	}

	logMemoryDiagnostic(f.teams)

	boardCfg := board.Config{Q: f.teams * f.qpt / 3, B: f.blanks, Qpt: f.qpt, R: f.rooms}
	boardCfg.BreakIndex = board.SlotIndex(float64(boardCfg.S()) * f.breakFraction)

	result, err := solveWithRetry(context.Background(), cfg, boardCfg, f)
	if err != nil {
		var unsat *anneal.UnsatisfiableError
		if errors.As(err, &unsat) {
			log.Error().Err(err).Msg("draw unsatisfiable after all retries")
			return exitUnsatisfiable
		}
		log.Error().Err(err).Msg("solving draw")
		return exitConfigError
	}

	names := serialize.DefaultTeamNames(f.teams)
	records, err := serialize.BuildPrelimRecords(result.board, names, cfg.TimeGrid())
	if err != nil {
		log.Error().Err(err).Msg("serializing prelim records")
		return exitConfigError
	}
	composed, err := bracket.ComposeWithTable(f.teams, bracketTable, finalsRepeats, f.skipRoundRobin)
	if err != nil {
		log.Error().Err(err).Msg("composing bracket")
		return exitConfigError
	}
	records = append(records, serialize.BuildBracketRecords(composed, result.board.Slots(), cfg.TimeGrid())...)

	if err := writeRecords(records, f.out); err != nil {
		log.Error().Err(err).Msg("writing output")
		return exitConfigError
	}

	if f.shell {
		if err := runShell(result.board, result.stats, names); err != nil {
			log.Error().Err(err).Msg("inspection shell")
			return exitConfigError
		}
	}
	return exitOK
}

// setupLogger switches the global zerolog logger to a human-readable
// console writer when stderr is a terminal; structured JSON (zerolog's
// default) is kept otherwise, matching how anneal and stats already log
// structured fields rather than Sprintf'd messages.
func setupLogger() {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func parseFinalsRepeats(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	out := make([]int, len(fields))
	for i, field := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, &config.ConfigError{Reason: "finals-repeats must be a comma-separated integer list: " + err.Error()}
		}
		out[i] = n
	}
	return out, nil
}

// solveResult is one completed optimizer run: the frozen board, its
// post-freeze statistics pass, and the final total energy used to rank
// attempts and to evaluate CheckSatisfiable.
type solveResult struct {
	board  *board.Board
	stats  *anneal.Stats
	energy float64
}

// solveWithRetry wraps attemptAll in avast/retry-go's retry loop: an
// Unsatisfiable result retries with a fresh seed range, for at most
// maxRetries attempts in total (the first one included), per spec §7's "Unsatisfiable is recoverable and
// drives the CLI's retry policy."
func solveWithRetry(ctx context.Context, cfg *config.Config, boardCfg board.Config, f *flags) (*solveResult, error) {
	var best *solveResult
	attempt := 0
	err := retry.Do(
		func() error {
			seedBase := f.seed + int64(attempt*f.attempts)
			attempt++
			res, err := attemptAll(ctx, cfg, boardCfg, f, seedBase)
			if err != nil {
				return err
			}
			best = res
			return nil
		},
		retry.Attempts(maxRetries),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Uint("retry", n).Err(err).Msg("retrying draw with a new seed range")
		}),
		retry.RetryIf(func(err error) bool {
			var unsat *anneal.UnsatisfiableError
			return errors.As(err, &unsat)
		}),
	)
	if err != nil {
		return nil, err
	}
	return best, nil
}

// attemptAll runs f.attempts concurrent optimizer instances, each seeded
// from seedBase+i, and returns the valid attempt with the lowest final
// energy. If every attempt is unsatisfiable, it returns the lowest-
// energy attempt's UnsatisfiableError so the caller (and retry-go) sees
// the closest miss, not an arbitrary one.
func attemptAll(ctx context.Context, cfg *config.Config, boardCfg board.Config, f *flags, seedBase int64) (*solveResult, error) {
	results := make([]*solveResult, f.attempts)
	errs := make([]error, f.attempts)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < f.attempts; i++ {
		i := i
		g.Go(func() error {
			res, err := attemptOnce(gctx, cfg, boardCfg, seedBase+int64(i), f.annealSteps, f.unsatisfiableThreshold)
			results[i] = res
			errs[i] = err
			return nil // collected per-attempt; one bad seed must not cancel the others
		})
	}
	_ = g.Wait()

	var best *solveResult
	for i, res := range results {
		if errs[i] != nil || res == nil {
			continue
		}
		if best == nil || res.energy < best.energy {
			best = res
		}
	}
	if best != nil {
		return best, nil
	}

	var worst error
	worstEnergy := math.Inf(1)
	for i, err := range errs {
		if err == nil || results[i] == nil {
			continue
		}
		if results[i].energy < worstEnergy {
			worstEnergy = results[i].energy
			worst = err
		}
	}
	if worst == nil && len(errs) > 0 {
		worst = errs[0]
	}
	return nil, worst
}

// attemptOnce seeds a fresh board, runs Thermalize (warm) then Anneal
// (cooling schedule) for steps total MH steps, then computes the
// post-freeze statistics pass and checks it against threshold.
func attemptOnce(ctx context.Context, cfg *config.Config, boardCfg board.Config, seedVal int64, steps int, threshold float64) (*solveResult, error) {
	b := board.New(boardCfg)
	teams := make([]board.TeamToken, 3*boardCfg.Q/boardCfg.Qpt)
	for i := range teams {
		teams[i] = board.TeamToken(i)
	}

	model := energy.New(cfg.EnergyWeights())
	if err := seed.New(model).Run(b, teams); err != nil {
		return nil, err
	}

	rng := anneal.NewSeededRand(seedVal)
	mut := anneal.New(teams)
	opt, err := anneal.NewOptimizer(b, model, mut, rng)
	if err != nil {
		return nil, err
	}

	warm := steps / 4
	cold := steps - warm
	if warm > 0 {
		if err := opt.Thermalize(ctx, warm, 0.5, 0.5, false); err != nil {
			return nil, err
		}
	}
	if cold > 0 {
		if err := opt.Anneal(ctx, cold, 1.0, 1e-3, 0.5, anneal.LogSchedule, true); err != nil {
			return nil, err
		}
	}

	stats, err := anneal.ComputeStats(ctx, b, model, teams)
	if err != nil {
		return nil, err
	}
	res := &solveResult{board: b, stats: stats, energy: opt.E}
	if err := anneal.CheckSatisfiable(stats, opt.E, threshold); err != nil {
		return res, err
	}
	return res, nil
}
