package board

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestQuizCellPushPop(t *testing.T) {
	is := is.New(t)
	var c QuizCell

	is.NoErr(c.Push(1))
	is.NoErr(c.Push(2))

	err := c.Push(1)
	var dupErr *DuplicateTokenError
	is.True(errors.As(err, &dupErr))

	is.NoErr(c.Push(3))
	is.True(c.Full())

	err = c.Push(4)
	is.True(err != nil)
	var capErr *CapacityExceededError
	is.True(errors.As(err, &capErr))

	tok, err := c.PopAt(0)
	is.NoErr(err)
	is.Equal(tok, TeamToken(1))
	is.Equal(c.Len(), 2)
	is.True(!c.Full())
}

func TestQuizCellPopAtWraps(t *testing.T) {
	is := is.New(t)
	var c QuizCell
	is.NoErr(c.Push(7))

	// index 3 wraps to 0, which holds the only token.
	tok, err := c.PopAt(3)
	is.NoErr(err)
	is.Equal(tok, TeamToken(7))
	is.True(c.Empty())
}

func TestQuizCellPopAtMissing(t *testing.T) {
	is := is.New(t)
	var c QuizCell
	is.NoErr(c.Push(1))

	_, err := c.PopAt(1)
	is.Equal(err, ErrMissingPlacement)
}
