package redis

import (
	"fmt"

	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "bingo"

// Key generation functions for each entity type

// sessionKey returns the Redis key for a Session
func sessionKey(id model.ConnID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// nameIndexKey returns the Redis key for the name -> conn_id index
func nameIndexKey(name string) string {
	return fmt.Sprintf("%s:idx:name:%s", keyPrefix, name)
}

// sessionOrderKey returns the Redis key for the LIST preserving login order
func sessionOrderKey() string {
	return fmt.Sprintf("%s:sessions", keyPrefix)
}

// matchKey returns the Redis key for a Match
func matchKey(id model.MatchID) string {
	return fmt.Sprintf("%s:match:%s", keyPrefix, id)
}

// participantIndexKey returns the Redis key for the conn_id -> match_id index
func participantIndexKey(id model.ConnID) string {
	return fmt.Sprintf("%s:idx:participant:%s", keyPrefix, id)
}

// statsKey returns the Redis key for a PlayerStats record
func statsKey(name string) string {
	return fmt.Sprintf("%s:stats:%s", keyPrefix, name)
}
