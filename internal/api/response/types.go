package response

import (
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/model"
)

// Health is the health check response
type Health struct {
	Status string `json:"status"`
}

// PlayerList lists online display names in login order
type PlayerList struct {
	Players []string `json:"players"`
}

// PlayerStats is a player's lifetime win/loss record
type PlayerStats struct {
	Name   string `json:"name"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

// PlayerStatsFromModel converts model.PlayerStats
func PlayerStatsFromModel(name string, s *model.PlayerStats) PlayerStats {
	return PlayerStats{
		Name:   name,
		Wins:   s.Wins,
		Losses: s.Losses,
	}
}
