// Package board implements the prelim schedule grid: a (slots x rooms)
// array of three-seat quiz cells, plus an inverted team->placement index
// kept in sync with it through a narrow push/pop API.
package board

import "fmt"

// TeamToken is an opaque team identifier. Tokens are represented as small
// integer indices into a fixed team table rather than strings, so the
// energy model's hot loop stays branch-free and allocation-free.
type TeamToken int

// CellCapacity is the fixed number of seats in a quiz cell.
const CellCapacity = 3

// QuizCell holds the 0-3 teams quizzing together at one (slot, room).
// Tokens are kept in insertion order; a cell never holds a duplicate
// token.
type QuizCell struct {
	tokens []TeamToken
}

// Push seats t in the cell. It fails with CapacityExceededError if the
// cell already holds three teams, and with DuplicateTokenError if t is
// already seated here.
func (c *QuizCell) Push(t TeamToken) error {
	if len(c.tokens) >= CellCapacity {
		return &CapacityExceededError{Token: t}
	}
	for _, existing := range c.tokens {
		if existing == t {
			return &DuplicateTokenError{Token: t}
		}
	}
	c.tokens = append(c.tokens, t)
	return nil
}

// PopAt removes and returns the token at position index, modulo
// CellCapacity (out-of-range indices wrap rather than error). It reports
// ErrMissingPlacement when that position holds no token, which can
// legitimately happen for a partially-filled cell.
func (c *QuizCell) PopAt(index int) (TeamToken, error) {
	i := ((index % CellCapacity) + CellCapacity) % CellCapacity
	if i >= len(c.tokens) {
		return 0, ErrMissingPlacement
	}
	t := c.tokens[i]
	c.tokens = append(c.tokens[:i], c.tokens[i+1:]...)
	return t, nil
}

// popToken removes a specific token from the cell regardless of its
// position, preserving the relative order of the remaining tokens. It is
// the primitive the Board uses to keep its inverted index in sync (and
// so the one every mutator move goes through, via Board.Pop); the
// modulo-indexed PopAt above is the positional variant.
func (c *QuizCell) popToken(t TeamToken) error {
	for i, existing := range c.tokens {
		if existing == t {
			c.tokens = append(c.tokens[:i], c.tokens[i+1:]...)
			return nil
		}
	}
	return ErrMissingPlacement
}

// Contains reports whether t currently occupies this cell.
func (c *QuizCell) Contains(t TeamToken) bool {
	for _, existing := range c.tokens {
		if existing == t {
			return true
		}
	}
	return false
}

// Len returns the number of teams currently seated.
func (c *QuizCell) Len() int { return len(c.tokens) }

// Full reports whether the cell has all three seats occupied.
func (c *QuizCell) Full() bool { return len(c.tokens) == CellCapacity }

// Empty reports whether the cell has no seated teams.
func (c *QuizCell) Empty() bool { return len(c.tokens) == 0 }

// Tokens returns a copy of the seated tokens in insertion order.
func (c *QuizCell) Tokens() []TeamToken {
	out := make([]TeamToken, len(c.tokens))
	copy(out, c.tokens)
	return out
}

// CapacityExceededError is returned by Push when a cell is already full.
type CapacityExceededError struct {
	Token TeamToken
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("board: cell is full, cannot seat team %d", e.Token)
}

// DuplicateTokenError is returned by Push when the token is already
// seated in the target cell; this is an InvariantViolation class error
// when it surfaces outside the mutator's own bookkeeping.
type DuplicateTokenError struct {
	Token TeamToken
}

func (e *DuplicateTokenError) Error() string {
	return fmt.Sprintf("board: team %d already seated in this cell", e.Token)
}
