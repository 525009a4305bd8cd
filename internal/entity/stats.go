package entity

// GameRecord is what the stats sink receives when a game ends by win or draw.
type GameRecord struct {
	ChatID  string  `json:"chat_id"`
	Outcome Outcome `json:"outcome"`
	Winner  string  `json:"winner,omitempty"`
}

type ChatStats struct {
	ChatID string           `json:"chat_id"`
	Games  int64            `json:"games"`
	Draws  int64            `json:"draws"`
	Wins   map[string]int64 `json:"wins"`
}
