// Package theme holds the fixed set of cosmetic glyph sets a board can be drawn with.
package theme

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
)

const DefaultID = "classic"

// Theme is the glyph set snapshotted into sessions.
type Theme = entity.Theme

var builtin = []Theme{
	{ID: DefaultID, Name: "Classic", X: "❌", O: "⭕", Empty: "⬜", WinX: "⭐❌⭐", WinO: "⭐⭕⭐"},
	{ID: "animals", Name: "Cats & Dogs", X: "🐱", O: "🐶", Empty: "🌿", WinX: "👑🐱", WinO: "👑🐶"},
	{ID: "fruits", Name: "Fruits", X: "🍎", O: "🍐", Empty: "🧺", WinX: "✨🍎✨", WinO: "✨🍐✨"},
	{ID: "hearts", Name: "Hearts", X: "❤️", O: "💙", Empty: "🤍", WinX: "💖", WinO: "💎"},
	{ID: "space", Name: "Space", X: "🌞", O: "🌚", Empty: "🌌", WinX: "☀️", WinO: "🌑"},
}

type Registry struct {
	themes map[string]Theme
	order  []string
}

// NewRegistry builds a registry from the given themes, or the built-in set
// when none are given. The classic theme is always present.
func NewRegistry(themes ...Theme) *Registry {
	if len(themes) == 0 {
		themes = builtin
	}

	registry := &Registry{
		themes: make(map[string]Theme, len(themes)+1),
	}

	for _, t := range themes {
		if _, ok := registry.themes[t.ID]; ok {
			continue
		}
		registry.themes[t.ID] = t
		registry.order = append(registry.order, t.ID)
	}

	if _, ok := registry.themes[DefaultID]; !ok {
		registry.themes[DefaultID] = builtin[0]
		registry.order = append([]string{DefaultID}, registry.order...)
	}

	return registry
}

// Find returns the theme registered under id.
func (that *Registry) Find(id string) (Theme, error) {
	t, ok := that.themes[id]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %q", apperror.ErrThemeUnknown, id)
	}

	return t, nil
}

// Lookup never fails: unknown identifiers resolve to the default theme.
func (that *Registry) Lookup(id string) Theme {
	t, err := that.Find(id)
	if err != nil {
		return that.Default()
	}

	return t
}

func (that *Registry) Default() Theme {
	return that.themes[DefaultID]
}

// All returns the registered themes in registration order.
func (that *Registry) All() []Theme {
	all := make([]Theme, 0, len(that.order))
	for _, id := range that.order {
		all = append(all, that.themes[id])
	}

	return all
}
