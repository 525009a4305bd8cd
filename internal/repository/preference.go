package repository

import (
	"github.com/puzpuzpuz/xsync/v3"
)

// PreferenceRepository remembers the last theme each user picked for the
// lifetime of the process.
type PreferenceRepository interface {
	GetTheme(userID string) (string, bool)
	SetTheme(userID, themeID string)
}

type memPreference struct {
	themes *xsync.MapOf[string, string]
}

func NewPreferenceRepository() PreferenceRepository {
	return &memPreference{
		themes: xsync.NewMapOf[string, string](),
	}
}

func (that *memPreference) GetTheme(userID string) (string, bool) {
	return that.themes.Load(userID)
}

func (that *memPreference) SetTheme(userID, themeID string) {
	that.themes.Store(userID, themeID)
}
