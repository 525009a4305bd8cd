package entity

// Callback data understood by the transport.
const (
	ActionNoop        = "noop"
	ActionNewGame     = "new_game"
	ActionThemePrompt = "change_theme_prompt"
	ActionThemeCancel = "theme:cancel"
	ActionThemePrefix = "theme:"
)

type Urgency int

const (
	UrgencyToast Urgency = iota
	UrgencyAlert
)

type ViewCell struct {
	Glyph string `json:"glyph"`
	Data  string `json:"data"`
}

type Control struct {
	Label string `json:"label"`
	Data  string `json:"data"`
}

// View is a render instruction: the board as glyphs, the status text, and
// the actions currently available on the message.
type View struct {
	ChatID     string              `json:"chat_id"`
	MessageRef string              `json:"message_ref,omitempty"`
	Cells      [BoardSize]ViewCell `json:"cells"`
	Text       string              `json:"text"`
	Controls   []Control           `json:"controls"`
}

// Clickable returns the indexes of cells that accept a move.
func (that *View) Clickable() []int {
	var clickable []int
	for i, cell := range that.Cells {
		if cell.Data != ActionNoop {
			clickable = append(clickable, i)
		}
	}

	return clickable
}
