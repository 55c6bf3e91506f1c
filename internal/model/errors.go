package model

import "errors"

// Common errors used across the application
var (
	// Session errors
	ErrNameTaken       = errors.New("display name is already online")
	ErrSessionNotFound = errors.New("session not found")

	// Invite errors
	ErrSelfInvite    = errors.New("cannot invite yourself")
	ErrPlayerOffline = errors.New("player is not online")

	// Match errors
	ErrMatchNotFound  = errors.New("match not found")
	ErrNotYourTurn    = errors.New("not this player's turn")
	ErrNotParticipant = errors.New("player is not in this match")
	ErrInvalidNumber  = errors.New("number out of range")

	// Stats errors
	ErrStatsNotFound = errors.New("stats record not found")
)
