package entities

// ConnectionMode tells whether the visualizer API is reachable
type ConnectionMode string

const (
	ModeUnknown    ConnectionMode = "unknown"
	ModeAPI        ConnectionMode = "api"
	ModeStandalone ConnectionMode = "standalone"
)

// BattlePlayer is one side of a reported battle
type BattlePlayer struct {
	DiscordUsername string `json:"discordUsername"`
	TwitchUsername  string `json:"twitchUsername"` // Linked chat username, else the display name
	Choice          Weapon `json:"choice"`
}

// BattleReport is the payload the visualizer records for a finished duel
type BattleReport struct {
	Player1   BattlePlayer `json:"player1"`
	Player2   BattlePlayer `json:"player2"`
	Result    Outcome      `json:"result"`
	PointsWon int64        `json:"pointsWon"`
	Winner    *string      `json:"winner"`
}
