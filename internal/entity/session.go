package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	StatusOpen     = "open"
	StatusWaiting  = "waiting"
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
)

var (
	ErrSessionFinished = errors.New("session is finished")
	ErrSessionFull     = errors.New("session already has two players")
	ErrWrongTurn       = errors.New("mark does not hold the turn")
)

// Cancelable is a pending timeout attached to a session.
type Cancelable interface {
	Cancel()
}

// Session is one chat's game. It is only mutated while the chat's lock is held.
type Session struct {
	ID         string           `json:"id"`
	ChatID     string           `json:"chat_id"`
	Board      Board            `json:"board"`
	Turn       Mark             `json:"turn"`
	Status     string           `json:"status"`
	Players    map[Mark]*Player `json:"players"`
	MessageRef string           `json:"message_ref"`
	Theme      Theme            `json:"theme"`
	Result     Result           `json:"result"`
	CreatedAt  time.Time        `json:"created_at"`

	Timeout Cancelable `json:"-"`
}

// NewSession creates a session in StatusOpen with creator holding the first mark.
func NewSession(chatID string, creator *Player, first Mark, theme Theme) *Session {
	creator.Mark = first

	return &Session{
		ID:     uuid.NewString(),
		ChatID: chatID,
		Board:  NewBoard(),
		Turn:   first,
		Status: StatusOpen,
		Players: map[Mark]*Player{
			first:         creator,
			first.Other(): nil,
		},
		Theme:     theme,
		Result:    Result{Outcome: OutcomeOngoing},
		CreatedAt: time.Now(),
	}
}

func (that *Session) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Session) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Session) IsOngoing() bool {
	return that.Status == StatusOngoing
}

// IsActive is true for every status except finished, including a session
// whose first render is still in flight.
func (that *Session) IsActive() bool {
	return !that.IsFinished()
}

// MarkOf returns the mark held by userID, or NoMark.
func (that *Session) MarkOf(userID string) Mark {
	for mark, player := range that.Players {
		if player != nil && player.ID == userID {
			return mark
		}
	}

	return NoMark
}

// Player returns the participant holding mark, or nil.
func (that *Session) Player(mark Mark) *Player {
	return that.Players[mark]
}

// OpenMark returns the mark whose slot is still empty, or NoMark when both are taken.
func (that *Session) OpenMark() Mark {
	for _, mark := range []Mark{MarkX, MarkO} {
		if that.Players[mark] == nil {
			return mark
		}
	}

	return NoMark
}

// Join binds player to the open slot and moves the session to ongoing.
func (that *Session) Join(player *Player) (Mark, error) {
	if that.IsFinished() {
		return NoMark, ErrSessionFinished
	}

	if mark := that.MarkOf(player.ID); mark != NoMark {
		return mark, nil
	}

	mark := that.OpenMark()
	if mark == NoMark {
		return NoMark, ErrSessionFull
	}

	player.Mark = mark
	that.Players[mark] = player
	that.Status = StatusOngoing

	return mark, nil
}

// Play puts mark on the board and advances the turn, or finishes the session
// when the board reaches a terminal result.
func (that *Session) Play(mark Mark, index int) (Result, error) {
	if that.IsFinished() {
		return that.Result, ErrSessionFinished
	}

	if mark != that.Turn {
		return that.Result, fmt.Errorf("%w: %s", ErrWrongTurn, mark)
	}

	board, err := that.Board.Place(index, mark)
	if err != nil {
		return that.Result, fmt.Errorf("failed to place mark: %w", err)
	}

	that.Board = board

	result := board.Evaluate()
	if result.IsTerminal() {
		that.Finish(result)
		return result, nil
	}

	that.Turn = mark.Other()
	that.Result = result

	return result, nil
}

// Finish makes the session terminal and drops any pending timeout.
func (that *Session) Finish(result Result) {
	that.Status = StatusFinished
	that.Result = result
	that.Turn = NoMark
	that.CancelTimeout()
}

// CancelTimeout cancels and clears the pending timeout, if any.
func (that *Session) CancelTimeout() {
	if that.Timeout == nil {
		return
	}

	that.Timeout.Cancel()
	that.Timeout = nil
}

// Snapshot returns a copy that shares no mutable state with the session, for
// reading once the chat's lock is released. The pending timeout is not copied.
func (that *Session) Snapshot() *Session {
	if that == nil {
		return nil
	}

	snapshot := *that
	snapshot.Timeout = nil
	snapshot.Players = make(map[Mark]*Player, len(that.Players))

	for mark, player := range that.Players {
		if player == nil {
			snapshot.Players[mark] = nil
			continue
		}

		copied := *player
		snapshot.Players[mark] = &copied
	}

	return &snapshot
}
