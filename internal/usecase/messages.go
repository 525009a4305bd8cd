package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
)

const Greeting = "👋 Hi! I host tic-tac-toe games right in this chat.\n\n" +
	"Send /newgame to open a board. The first person to press a cell after you becomes your opponent.\n" +
	"Send /theme to pick how your next boards look."

const (
	labelNewGame     = "🔄 New game"
	labelChangeTheme = "🎨 Change theme"
	labelCancel      = "↩️ Back to the board"
)

// statusText describes the session the way it is shown under the board.
func statusText(session *entity.Session, joinTimeout time.Duration) string {
	theme := session.Theme

	var builder strings.Builder

	switch {
	case session.IsFinished() && session.Result.Outcome == entity.OutcomeWin:
		winner := session.Result.Winner
		builder.WriteString("🎉 Game over! 🎉\n\n")
		fmt.Fprintf(&builder, "🏆 Winner: %s (%s)\n\n", theme.Glyph(winner), playerName(session.Player(winner)))
		builder.WriteString("Press the button below to start a new game.")
	case session.IsFinished() && session.Result.Outcome == entity.OutcomeDraw:
		builder.WriteString("🤝 Game over. It's a draw!\n\n")
		builder.WriteString("Nobody managed to win. Press the button below to start a new game.")
	case session.IsFinished():
		builder.WriteString("⏰ Time is up! ⏰\n\n")
		fmt.Fprintf(&builder, "Nobody joined within %s, so the game was cancelled.\n\n", formatDuration(joinTimeout))
		builder.WriteString("Press the button below to start a new game.")
	case session.OpenMark() != entity.NoMark:
		creator := session.Player(session.OpenMark().Other())
		builder.WriteString("🎲 New game started! 🎲\n\n")
		fmt.Fprintf(&builder, "👤 %s plays %s\n", playerName(creator), theme.Glyph(creator.Mark))
		builder.WriteString("⏳ Waiting for a second player, press any free cell to join.\n\n")
		fmt.Fprintf(&builder, "First move: %s\n", theme.Glyph(session.Turn))
		fmt.Fprintf(&builder, "⏱️ Join window: %s", formatDuration(joinTimeout))
	default:
		builder.WriteString("🎮 Tic-Tac-Toe 🎮\n\n")
		for _, mark := range []entity.Mark{entity.MarkX, entity.MarkO} {
			fmt.Fprintf(&builder, "👤 %s: %s\n", playerName(session.Player(mark)), theme.Glyph(mark))
		}
		fmt.Fprintf(&builder, "\n🎲 Turn: %s", theme.Glyph(session.Turn))
	}

	return builder.String()
}

// notice is a private acknowledgement, composed while the chat's lock is held.
type notice struct {
	text    string
	urgency entity.Urgency
}

func toast(text string) notice {
	return notice{text: text, urgency: entity.UrgencyToast}
}

func rejection(err error, session *entity.Session) notice {
	text, urgency := errorText(err, session)
	return notice{text: text, urgency: urgency}
}

// errorText maps an arbiter error to the private acknowledgement shown to the actor.
func errorText(err error, session *entity.Session) (string, entity.Urgency) {
	switch {
	case errors.Is(err, apperror.ErrGameAlreadyActive):
		return "⏳ A game is already running in this chat! Finish it or wait until it is cancelled.", entity.UrgencyAlert
	case errors.Is(err, apperror.ErrStaleOrUnknownSession):
		return "🚫 This board belongs to an old game.", entity.UrgencyAlert
	case errors.Is(err, apperror.ErrGameAlreadyOver):
		return "🏁 This game is already over. Start a new one!", entity.UrgencyToast
	case errors.Is(err, apperror.ErrInvalidInput):
		return "⚠️ That button can't be used.", entity.UrgencyToast
	case errors.Is(err, apperror.ErrGameFull):
		return "👥 This game already has two players!", entity.UrgencyAlert
	case errors.Is(err, apperror.ErrNotYourTurn):
		if session != nil && session.Turn != entity.NoMark {
			return "⏳ It's not your turn! Now playing: " + session.Theme.Glyph(session.Turn), entity.UrgencyToast
		}
		return "⏳ It's not your turn!", entity.UrgencyToast
	case errors.Is(err, apperror.ErrCellOccupied):
		return "🚫 This cell is already taken!", entity.UrgencyToast
	case errors.Is(err, apperror.ErrActorBlocked):
		return "⛔ You can't play right now.", entity.UrgencyAlert
	case errors.Is(err, apperror.ErrNotAPlayer):
		return "👀 Only the players of this game can do that.", entity.UrgencyToast
	default:
		return "⚠️ Something went wrong, please try again.", entity.UrgencyAlert
	}
}

func playerName(player *entity.Player) string {
	if player == nil {
		return "?"
	}

	if player.Name == "" {
		return player.ID
	}

	return player.Name
}

func formatDuration(d time.Duration) string {
	if d%time.Minute == 0 && d >= time.Minute {
		return fmt.Sprintf("%d min", int(d/time.Minute))
	}

	return fmt.Sprintf("%d seconds", int(d/time.Second))
}
