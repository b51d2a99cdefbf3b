package main

import (
	"encoding/json"
	"os"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/northfield-quizbowl/quizdraw/serialize"
)

// memoryWarnFraction is the fraction of free system memory above which
// quizdraw warns before starting a run: the per-team opponent/room
// counters built during the statistics pass are O(T²) in the field
// size, so a very large -teams value on a small runner is worth
// flagging before the optimizer gets going.
const memoryWarnFraction = 0.5

// teamCounterBytes estimates the worst-case size of the O(T²) opponent
// counter maps built once per team during the statistics pass.
const teamCounterBytes = 64

func logMemoryDiagnostic(teams int) {
	free := memory.FreeMemory()
	estimate := uint64(teams) * uint64(teams) * teamCounterBytes
	log.Debug().
		Uint64("free_bytes", free).
		Uint64("estimated_stats_bytes", estimate).
		Msg("memory diagnostic")
	if free > 0 && float64(estimate) > float64(free)*memoryWarnFraction {
		log.Warn().
			Int("teams", teams).
			Uint64("free_bytes", free).
			Msg("statistics pass may use a large fraction of free memory for this field size")
	}
}

func writeRecords(records []serialize.QuizRecord, path string) error {
	w := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
