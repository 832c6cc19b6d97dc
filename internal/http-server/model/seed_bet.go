package model

import (
	"github.com/jmenichole/TiltCheck-sub005/internal/config"
)

// SeedBet is one wager as collected by the user from the casino's fairness
// page. It is input only and never mutated by the engine.
type SeedBet struct {
	BetID          string          `json:"bet_id"`
	ServerSeed     string          `json:"server_seed"`
	ServerSeedHash string          `json:"server_seed_hash"`
	ClientSeed     string          `json:"client_seed"`
	Nonce          uint64          `json:"nonce"`
	GameType       config.GameType `json:"game_type"`
	ClaimedResult  ResultValue     `json:"claimed_result"`
}
