package apperror

import "errors"

var (
	ErrGameAlreadyActive     = errors.New("game is already active in this chat")
	ErrStaleOrUnknownSession = errors.New("message belongs to an old or unknown game")
	ErrGameAlreadyOver       = errors.New("game is already finished")
	ErrInvalidInput          = errors.New("invalid input")
	ErrGameFull              = errors.New("game already has two players")
	ErrNotYourTurn           = errors.New("it's not your turn")
	ErrCellOccupied          = errors.New("cell is already occupied")
	ErrActorBlocked          = errors.New("player is blocked")
	ErrThemeUnknown          = errors.New("unknown theme")
	ErrNotAPlayer            = errors.New("not a player of this game")
	ErrInternal              = errors.New("internal error")
)
