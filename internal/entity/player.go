package entity

// Player is a chat participant bound to one mark of a session.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Mark Mark   `json:"mark,omitempty"`
}
