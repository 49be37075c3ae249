package constants

import "time"

// Match timing.
const (
	TickInterval     = 100 * time.Millisecond
	TicksPerSecond   = 10
	CountdownSeconds = 3
	MatchMinSeconds  = 30
	MatchMaxSeconds  = 50
)

// Freeze window mechanic.
const (
	FreezeChancePerSecond = 0.05
	FreezeMinSeconds      = 1
	FreezeMaxSeconds      = 3
	FreezePenalty         = 2
	AIReactionMinMs       = 200
	AIReactionMaxMs       = 800
)

// Forfeit rule: a trailing AI team may concede late in the match.
const (
	ForfeitDeficit       = 15
	ForfeitWindowSeconds = 20
	ForfeitChancePerTick = 0.10
)

// Progression economy.
const (
	PlacementMatches = 5
	XPPerWin         = 25
	XPPerLoss        = 10
	BaseXPToNext     = 100
	XPGrowth         = 1.25
	SeasonDecay      = 0.8
	SeasonMMRFloor   = 100
	DefaultMMR       = 600
)

// Opponent generation.
const (
	ElitePoolMinMMR      = 1900
	ElitePoolRange       = 150
	EliteTeammateChance  = 0.70
	EliteEnemyChance     = 0.80
	TeammateMMRSpread    = 100
	EnemyMMRSpread       = 150
	GeneratedMMRFloor    = 100
	WorldChampionMinMMR  = 2950
	RCCSTitleWeightAtGC  = 0.40
)

// RCCS championship series.
const (
	RCCSMinMMR            = 2350
	RCCSQualifierTeams    = 160
	RCCSRegionalTeams     = 32
	RCCSMajorTeams        = 12
	RCCSWorldsTeams       = 12
	RCCSTeammateSpread    = 150
	RCCSTeammateFloor     = 2200
	RCCSMemberJitter      = 75
	RCCSMemberFloor       = 2400
)

// Leaderboard simulation.
const (
	LeaderboardSize            = 25
	LeaderboardFloorMMR        = 2800
	LeaderboardFluctuateEvery  = 30 * time.Second
	LeaderboardFluctuateSwing  = 10
	LeaderboardFluctuateMinMMR = 2550
	LeaderboardFluctuateMaxMMR = 3100
	LeaderboardMinWinRate      = 0.65
)

// Outbound release check.
const (
	ReleaseCheckTimeout = 10 * time.Second
)

const (
	ShutdownTimeout = 5 * time.Second
)
