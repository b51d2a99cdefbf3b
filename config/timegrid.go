package config

import "fmt"

// TimeGrid turns a 1-indexed prelim/bracket slot number into a human
// "Fri h:mm AM/PM" / "Sat h:mm AM/PM" label. The arithmetic mirrors the
// spreadsheet-era source's per-slot time computation
// (original `manager.py`'s quiz-time-attachment loop): Friday slots run
// contiguously from FridayStart; Saturday slots restart from
// SaturdayStart, add a LunchBreak once slots_before_lunch elapses, and
// add an extra PrelimSemiBreak on top for any non-prelim (bracket) quiz.
type TimeGrid struct {
	SlotsOnFriday    int
	SlotsBeforeLunch int
	MinutesPerQuiz   int

	FridayStartHour, FridayStartMinute     int
	SaturdayStartHour, SaturdayStartMinute int

	LunchBreakHours, LunchBreakMinutes           int
	PrelimSemiBreakHours, PrelimSemiBreakMinutes int
}

// DefaultTimeGrid mirrors the source's defaults: Friday slots start at
// 6:20 PM, Saturday slots start at 9:00 AM after a slots-before-lunch
// break, quizzes run 20 minutes apiece, and bracket quizzes get an
// extra 20-minute gap after prelims end.
func DefaultTimeGrid() TimeGrid {
	return TimeGrid{
		SlotsOnFriday:         8,
		SlotsBeforeLunch:      3,
		MinutesPerQuiz:        20,
		FridayStartHour:       18,
		FridayStartMinute:     20,
		SaturdayStartHour:     9,
		SaturdayStartMinute:   0,
		LunchBreakHours:       1,
		LunchBreakMinutes:     0,
		PrelimSemiBreakHours:  0,
		PrelimSemiBreakMinutes: 20,
	}
}

// Label computes the slot_time string for a 1-indexed slot and a quiz
// type ("P" for prelim, anything else for a bracket/semis/consolation
// quiz).
func (g TimeGrid) Label(slot int, quizType string) string {
	var day string
	var h, m int

	if slot <= g.SlotsOnFriday {
		day = "Fri"
		h, m = g.FridayStartHour, g.FridayStartMinute
		m += g.MinutesPerQuiz * (slot - 1)
	} else {
		day = "Sat"
		h, m = g.SaturdayStartHour, g.SaturdayStartMinute
		adjSlot := slot - g.SlotsOnFriday
		m += g.MinutesPerQuiz * (adjSlot - 1)
		if adjSlot > g.SlotsBeforeLunch {
			h += g.LunchBreakHours
			m += g.LunchBreakMinutes
		}
		if quizType != "P" {
			h += g.PrelimSemiBreakHours
			m += g.PrelimSemiBreakMinutes
		}
	}

	h += m / 60
	m = m % 60
	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	h = 1 + (h-1)%12

	return fmt.Sprintf("%s %d:%02d %s", day, h, m, ampm)
}
