package usecase

import (
	"strconv"
	"time"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
)

// boardView renders a session: playable cells carry their index, everything
// else is inert.
func boardView(session *entity.Session, joinTimeout time.Duration) *entity.View {
	view := &entity.View{
		ChatID:     session.ChatID,
		MessageRef: session.MessageRef,
		Text:       statusText(session, joinTimeout),
	}

	finished := session.IsFinished()
	theme := session.Theme

	for i, cell := range session.Board {
		viewCell := entity.ViewCell{
			Glyph: theme.Glyph(cell.Mark),
			Data:  entity.ActionNoop,
		}

		switch {
		case finished && session.Result.Outcome == entity.OutcomeWin && session.Result.InLine(i):
			viewCell.Glyph = theme.WinGlyph(cell.Mark)
		case !finished && cell.IsEmpty():
			viewCell.Data = strconv.Itoa(i)
		}

		view.Cells[i] = viewCell
	}

	if finished {
		view.Controls = []entity.Control{{Label: labelNewGame, Data: entity.ActionNewGame}}
	} else {
		view.Controls = []entity.Control{{Label: labelChangeTheme, Data: entity.ActionThemePrompt}}
	}

	return view
}

// themePickerView keeps the board visible but inert and offers every theme.
func themePickerView(session *entity.Session, themes []entity.Theme, joinTimeout time.Duration) *entity.View {
	view := boardView(session, joinTimeout)
	view.Text += "\n\n🎨 Choose a theme for this game:"

	for i := range view.Cells {
		view.Cells[i].Data = entity.ActionNoop
	}

	view.Controls = make([]entity.Control, 0, len(themes)+1)
	for _, theme := range themes {
		label := theme.X + theme.O + " " + theme.Name
		if theme.ID == session.Theme.ID {
			label = "✅ " + label
		}
		view.Controls = append(view.Controls, entity.Control{Label: label, Data: entity.ActionThemePrefix + theme.ID})
	}
	view.Controls = append(view.Controls, entity.Control{Label: labelCancel, Data: entity.ActionThemeCancel})

	return view
}
