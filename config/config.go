package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/northfield-quizbowl/quizdraw/bracket"
	"github.com/northfield-quizbowl/quizdraw/energy"
)

// ConfigError reports that caller-supplied configuration is structurally
// invalid (unknown bracket style, negative counts, and so on), per
// spec §7. It surfaces before any optimization begins.
type ConfigError struct{ Reason string }

func (e *ConfigError) Error() string { return fmt.Sprintf("config: %s", e.Reason) }

// Config is the typed, defaulted, overridable settings object threaded
// through the CLI driver: energy weights, the time grid, and bracket
// tables, each viper-backed so an optional YAML file can override the
// coded defaults, mirroring the teacher's own config.Config pattern
// (referenced throughout turnplayer/settings.go, game/rules.go).
type Config struct {
	v *viper.Viper

	weights      energy.Weights
	timeGrid     TimeGrid
	bracketTables map[bracket.Style]bracket.StyleTable
}

// New returns a Config with this package's coded defaults: spec's fixed
// energy weights table, the default time grid, and the default bracket
// tables for every known style.
func New() *Config {
	v := viper.New()
	cfg := &Config{
		v:             v,
		weights:       energy.DefaultWeights(),
		timeGrid:      DefaultTimeGrid(),
		bracketTables: defaultBracketTables(),
	}
	cfg.setViperDefaults()
	return cfg
}

func defaultBracketTables() map[bracket.Style]bracket.StyleTable {
	tables := make(map[bracket.Style]bracket.StyleTable, 4)
	for _, style := range []bracket.Style{bracket.StyleFull, bracket.StyleCondensed, bracket.StyleFinalsOnly, bracket.StyleNone} {
		table, err := bracket.DefaultStyleTable(style)
		if err != nil {
			// DefaultStyleTable only errors on an unrecognized style;
			// every style above is one this package itself defines.
			panic(err)
		}
		tables[style] = table
	}
	return tables
}

func (c *Config) setViperDefaults() {
	c.v.SetDefault("energy_weights.currently_quizzing", c.weights.CurrentlyQuizzing)
	c.v.SetDefault("energy_weights.hat_trick", c.weights.HatTrick)
	c.v.SetDefault("energy_weights.back_to_back", c.weights.BackToBack)
	c.v.SetDefault("energy_weights.already_seen", c.weights.AlreadySeen)
	c.v.SetDefault("energy_weights.already_quizzed", c.weights.AlreadyQuizzed)

	c.v.SetDefault("time_grid.slots_on_friday", c.timeGrid.SlotsOnFriday)
	c.v.SetDefault("time_grid.slots_before_lunch", c.timeGrid.SlotsBeforeLunch)
	c.v.SetDefault("time_grid.minutes_per_quiz", c.timeGrid.MinutesPerQuiz)
	c.v.SetDefault("time_grid.friday_start", []int{c.timeGrid.FridayStartHour, c.timeGrid.FridayStartMinute})
	c.v.SetDefault("time_grid.saturday_start", []int{c.timeGrid.SaturdayStartHour, c.timeGrid.SaturdayStartMinute})
	c.v.SetDefault("time_grid.lunch_break", []int{c.timeGrid.LunchBreakHours, c.timeGrid.LunchBreakMinutes})
	c.v.SetDefault("time_grid.prelim_semi_break", []int{c.timeGrid.PrelimSemiBreakHours, c.timeGrid.PrelimSemiBreakMinutes})
}

// LoadFile merges a YAML override file into the coded defaults: any key
// the file sets wins, anything it omits keeps this package's default.
// A missing or malformed file is a ConfigError, surfaced before
// optimization begins.
func (c *Config) LoadFile(path string) error {
	c.v.SetConfigFile(path)
	if err := c.v.ReadInConfig(); err != nil {
		return &ConfigError{Reason: fmt.Sprintf("reading config file %s: %v", path, err)}
	}

	c.weights = energy.Weights{
		CurrentlyQuizzing: c.v.GetFloat64("energy_weights.currently_quizzing"),
		HatTrick:          c.v.GetFloat64("energy_weights.hat_trick"),
		BackToBack:        c.v.GetFloat64("energy_weights.back_to_back"),
		AlreadySeen:       c.v.GetFloat64("energy_weights.already_seen"),
		AlreadyQuizzed:    c.v.GetFloat64("energy_weights.already_quizzed"),
	}

	fridayStart := c.v.GetIntSlice("time_grid.friday_start")
	saturdayStart := c.v.GetIntSlice("time_grid.saturday_start")
	lunch := c.v.GetIntSlice("time_grid.lunch_break")
	semiBreak := c.v.GetIntSlice("time_grid.prelim_semi_break")
	if len(fridayStart) != 2 || len(saturdayStart) != 2 || len(lunch) != 2 || len(semiBreak) != 2 {
		return &ConfigError{Reason: "time_grid.*_start/break fields must each be a two-element [hour, minute] list"}
	}
	c.timeGrid = TimeGrid{
		SlotsOnFriday:          c.v.GetInt("time_grid.slots_on_friday"),
		SlotsBeforeLunch:       c.v.GetInt("time_grid.slots_before_lunch"),
		MinutesPerQuiz:         c.v.GetInt("time_grid.minutes_per_quiz"),
		FridayStartHour:        fridayStart[0],
		FridayStartMinute:      fridayStart[1],
		SaturdayStartHour:      saturdayStart[0],
		SaturdayStartMinute:    saturdayStart[1],
		LunchBreakHours:        lunch[0],
		LunchBreakMinutes:      lunch[1],
		PrelimSemiBreakHours:   semiBreak[0],
		PrelimSemiBreakMinutes: semiBreak[1],
	}

	if raw, ok := c.v.Get("bracket_tables").(map[string]interface{}); ok {
		tables, err := parseBracketTablesYAML(raw)
		if err != nil {
			return err
		}
		for style, table := range tables {
			c.bracketTables[style] = table
		}
	}

	return nil
}

// EnergyWeights returns the currently effective weights table.
func (c *Config) EnergyWeights() energy.Weights { return c.weights }

// TimeGrid returns the currently effective slot-time grid.
func (c *Config) TimeGrid() TimeGrid { return c.timeGrid }

// BracketTable returns the currently effective table for style.
func (c *Config) BracketTable(style bracket.Style) (bracket.StyleTable, error) {
	table, ok := c.bracketTables[style]
	if !ok {
		return bracket.StyleTable{}, &ConfigError{Reason: fmt.Sprintf("no bracket table configured for style %q", style)}
	}
	return table, nil
}

// SetBracketTable overrides the table for style, e.g. from
// LoadStyleScript's Lua-computed result.
func (c *Config) SetBracketTable(style bracket.Style, table bracket.StyleTable) {
	c.bracketTables[style] = table
}
