package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	shellquote "github.com/kballard/go-shellquote"

	"github.com/northfield-quizbowl/quizdraw/anneal"
	"github.com/northfield-quizbowl/quizdraw/board"
)

// runShell drops into an interactive REPL over a finished draw: "show
// team <name>" lists a team's placements, "energy" prints the final
// total, "stats" prints the full statistics digest, "quit"/"exit" ends
// the session. Unrecognized input prints a one-line usage reminder
// rather than erroring the whole run.
func runShell(b *board.Board, stats *anneal.Stats, names map[board.TeamToken]string) error {
	rl, err := readline.New("quizdraw> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	byName := make(map[string]board.TeamToken, len(names))
	for tok, name := range names {
		byName[strings.ToLower(name)] = tok
	}

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		args, err := shellquote.Split(line)
		if err != nil || len(args) == 0 {
			continue
		}

		switch args[0] {
		case "quit", "exit":
			return nil
		case "energy":
			fmt.Printf("final total energy: %.3f\n", totalEnergy(stats))
		case "stats":
			fmt.Print(stats.Summary())
		case "show":
			if len(args) < 3 || args[1] != "team" {
				fmt.Println("usage: show team <name>")
				continue
			}
			printTeam(b, stats, byName, names, strings.Join(args[2:], " "))
		default:
			fmt.Println("commands: show team <name>, energy, stats, quit")
		}
	}
}

func totalEnergy(stats *anneal.Stats) float64 {
	var total float64
	for _, ts := range stats.PerTeam {
		total += ts.Energy
	}
	return total
}

func printTeam(b *board.Board, stats *anneal.Stats, byName map[string]board.TeamToken, names map[board.TeamToken]string, name string) {
	tok, ok := byName[strings.ToLower(name)]
	if !ok {
		fmt.Printf("no team named %q\n", name)
		return
	}
	fmt.Printf("%s (token %d):\n", names[tok], tok)
	for _, p := range b.Placements(tok) {
		fmt.Printf("  slot %d room %d\n", p.Slot, p.Room)
	}
	ts, ok := stats.PerTeam[tok]
	if !ok {
		return
	}
	fmt.Printf("  energy=%.3f cq=%d btb=%d ht=%d\n", ts.Energy, len(ts.CQConflicts), len(ts.BTB), len(ts.HT))
}
