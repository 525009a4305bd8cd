package repository

import (
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
)

// SessionRepository maps a chat to at most one session. It never cancels a
// session's timeout on its own: whoever replaces or removes an entry owns that.
type SessionRepository interface {
	Get(chatID string) (*entity.Session, bool)
	HasActive(chatID string) bool
	Put(chatID string, session *entity.Session)
	Remove(chatID string)
}

type memSession struct {
	sessions *xsync.MapOf[string, *entity.Session]
}

func NewSessionRepository() SessionRepository {
	return &memSession{
		sessions: xsync.NewMapOf[string, *entity.Session](),
	}
}

func (that *memSession) Get(chatID string) (*entity.Session, bool) {
	return that.sessions.Load(chatID)
}

func (that *memSession) HasActive(chatID string) bool {
	session, ok := that.sessions.Load(chatID)

	return ok && session.IsActive()
}

func (that *memSession) Put(chatID string, session *entity.Session) {
	that.sessions.Store(chatID, session)
}

func (that *memSession) Remove(chatID string) {
	that.sessions.Delete(chatID)
}
