package entity

// Theme is a cosmetic glyph set. It is copied by value into a session, so
// later registry or preference changes never reach a running game.
type Theme struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	X     string `json:"x"`
	O     string `json:"o"`
	Empty string `json:"empty"`
	WinX  string `json:"win_x"`
	WinO  string `json:"win_o"`
}

// Glyph returns the glyph for a mark, or the empty glyph for NoMark.
func (that Theme) Glyph(mark Mark) string {
	switch mark {
	case MarkX:
		return that.X
	case MarkO:
		return that.O
	default:
		return that.Empty
	}
}

// WinGlyph returns the highlighted glyph used for cells of the winning line.
func (that Theme) WinGlyph(mark Mark) string {
	switch mark {
	case MarkX:
		return that.WinX
	case MarkO:
		return that.WinO
	default:
		return that.Empty
	}
}
