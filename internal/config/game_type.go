package config

type GameType string

const (
	Dice  GameType = "dice"
	Crash GameType = "crash"
	Slots GameType = "slots"
	Other GameType = "other"
)
