package entity

import (
	"errors"
	"fmt"
)

// Mark is the symbol a player puts on the board.
type Mark string

const (
	NoMark Mark = ""
	MarkX  Mark = "X"
	MarkO  Mark = "O"
)

// Other returns the complementary mark.
func (that Mark) Other() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return NoMark
	}
}

const BoardSize = 9

var (
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrIndexOutOfRange = errors.New("cell index out of range")

	WinCombos = [8][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// Cell is empty while Mark is NoMark. Index keeps the original position
// so an empty cell can be addressed by the transport.
type Cell struct {
	Index int  `json:"index"`
	Mark  Mark `json:"mark,omitempty"`
}

func (that Cell) IsEmpty() bool {
	return that.Mark == NoMark
}

type Board [BoardSize]Cell

// NewBoard returns a board with nine empty cells indexed 0..8.
func NewBoard() Board {
	var board Board
	for i := range board {
		board[i] = Cell{Index: i}
	}

	return board
}

// Place returns a copy of the board with the cell at index marked.
func (that Board) Place(index int, mark Mark) (Board, error) {
	if index < 0 || index >= BoardSize {
		return that, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}

	if !that[index].IsEmpty() {
		return that, fmt.Errorf("%w: %d", ErrCellOccupied, index)
	}

	that[index].Mark = mark

	return that, nil
}

func (that Board) EmptyCells() int {
	count := 0
	for _, cell := range that {
		if cell.IsEmpty() {
			count++
		}
	}

	return count
}

type Outcome string

const (
	OutcomeOngoing Outcome = "ongoing"
	OutcomeWin     Outcome = "win"
	OutcomeDraw    Outcome = "draw"
	OutcomeTimeout Outcome = "timeout"
)

// Result is the evaluation of a board, or the final outcome of a session.
type Result struct {
	Outcome Outcome `json:"outcome"`
	Winner  Mark    `json:"winner,omitempty"`
	Line    [3]int  `json:"line,omitempty"`
}

func (that Result) IsTerminal() bool {
	return that.Outcome != OutcomeOngoing && that.Outcome != ""
}

// InLine reports whether the cell index is part of the winning line.
func (that Result) InLine(index int) bool {
	if that.Outcome != OutcomeWin {
		return false
	}

	for _, i := range that.Line {
		if i == index {
			return true
		}
	}

	return false
}

// Evaluate checks the fixed lines in order, then the draw condition.
func (that Board) Evaluate() Result {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if !a.IsEmpty() && a.Mark == b.Mark && b.Mark == c.Mark {
			return Result{Outcome: OutcomeWin, Winner: a.Mark, Line: combo}
		}
	}

	// the game continues until all the cells are full
	if that.EmptyCells() > 0 {
		return Result{Outcome: OutcomeOngoing}
	}

	return Result{Outcome: OutcomeDraw}
}
