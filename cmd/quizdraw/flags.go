package main

import "flag"

// flags is the CLI surface spec §6 defines, flag-parsed in the
// teacher's own idiom (flag.String/flag.Int, no framework).
type flags struct {
	teams                  int
	qpt                    int
	rooms                  int
	breakFraction          float64
	blanks                 int
	annealSteps            int
	bracketStyle           string
	finalsRepeats          string
	skipRoundRobin         bool
	seed                   int64
	attempts               int
	configPath             string
	bracketScript          string
	out                    string
	shell                  bool
	unsatisfiableThreshold float64
}

func parseFlags(args []string) (*flags, error) {
	fs := flag.NewFlagSet("quizdraw", flag.ContinueOnError)
	f := &flags{}
	fs.IntVar(&f.teams, "teams", 18, "number of teams in the field")
	fs.IntVar(&f.qpt, "qpt", 5, "quizzes each team plays in prelims")
	fs.IntVar(&f.rooms, "rooms", 3, "rooms available per slot")
	fs.Float64Var(&f.breakFraction, "break", 0.5, "fraction of prelim slots scheduled before the day break")
	fs.IntVar(&f.blanks, "blanks", 0, "blank padding quizzes appended to the grid")
	fs.IntVar(&f.annealSteps, "anneal-steps", 20000, "total Metropolis-Hastings steps (warm thermalize + cooling anneal)")
	fs.StringVar(&f.bracketStyle, "bracket-style", "full", "bracket style: full, condensed, finals_only, none")
	fs.StringVar(&f.finalsRepeats, "finals-repeats", "", "comma-separated finals-repeat counts, one per bracket instance (S,A,B)")
	fs.BoolVar(&f.skipRoundRobin, "skip-round-robin", false, "omit the round-robin fallback for leftover teams")
	fs.Int64Var(&f.seed, "seed", 1, "PRNG seed for the first optimizer attempt")
	fs.IntVar(&f.attempts, "attempts", 1, "concurrent optimizer attempts, each with a distinct seed")
	fs.StringVar(&f.configPath, "config", "", "optional YAML config override path")
	fs.StringVar(&f.bracketScript, "bracket-script", "", "optional Lua script computing a bracket style table override (see config.LoadStyleScript)")
	fs.StringVar(&f.out, "out", "", "JSON output path (defaults to stdout)")
	fs.BoolVar(&f.shell, "shell", false, "drop into the inspection shell after generation")
	fs.Float64Var(&f.unsatisfiableThreshold, "unsatisfiable-threshold", 5.0, "final-energy ceiling; exceeding it after all retries is exit code 3")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}
