package domain

import (
	"time"
)

type GameMode string

const (
	Mode1v1 GameMode = "1v1"
	Mode2v2 GameMode = "2v2"
	Mode3v3 GameMode = "3v3"
)

// Modes lists every ranked playlist in display order.
var Modes = []GameMode{Mode1v1, Mode2v2, Mode3v3}

func (m GameMode) TeamSize() int {
	switch m {
	case Mode2v2:
		return 2
	case Mode3v3:
		return 3
	default:
		return 1
	}
}

func (m GameMode) Valid() bool {
	switch m {
	case Mode1v1, Mode2v2, Mode3v3:
		return true
	}
	return false
}

type ModeStats struct {
	Wins    int `json:"wins"`
	Losses  int `json:"losses"`
	BestMMR int `json:"best_mmr"`
}

type SeasonReward struct {
	Rank     string `json:"rank"`
	Season   int    `json:"season"`
	Unlocked bool   `json:"unlocked"`
}

// PlayerRecord is the singleton local player, persisted whole in the
// player_data bucket.
type PlayerRecord struct {
	Username         string                  `json:"username"`
	MMR              map[GameMode]int        `json:"mmr"`
	Stats            map[GameMode]*ModeStats `json:"stats"`
	PlacementMatches map[GameMode]int        `json:"placement_matches"`
	Level            int                     `json:"level"`
	XP               int                     `json:"xp"`
	XPToNext         int                     `json:"xp_to_next"`
	SeasonWins       map[GameMode]int        `json:"season_wins"`
	SeasonRewards    []SeasonReward          `json:"season_rewards"`
	UnlockedTitles   []string                `json:"unlocked_titles"`
	EquippedTitle    string                  `json:"equipped_title"`
	CurrentSeason    int                     `json:"current_season"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

// HighestMMR returns the best current rating across all modes.
func (p *PlayerRecord) HighestMMR() int {
	highest := 0
	for _, mmr := range p.MMR {
		if mmr > highest {
			highest = mmr
		}
	}
	return highest
}

func (p *PlayerRecord) HasTitle(id string) bool {
	for _, t := range p.UnlockedTitles {
		if t == id {
			return true
		}
	}
	return false
}

// EliteAI is one of the fixed 30 persistent opponents. The roster never
// grows or shrinks at runtime, only its ratings move.
type EliteAI struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	MMR         map[GameMode]int `json:"mmr"`
	Title       string           `json:"title"`
	GamesPlayed int              `json:"games_played"`
	WinRate     float64          `json:"win_rate"`
}

type OpponentKind string

const (
	OpponentGenerated OpponentKind = "generated"
	OpponentElite     OpponentKind = "elite"
)

// Opponent is a single AI participant handed to the match runner.
type Opponent struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	MMR     int          `json:"mmr"`
	Title   string       `json:"title"`
	Kind    OpponentKind `json:"kind"`
	EliteID string       `json:"elite_id,omitempty"`
}

type TitleColor string

const (
	TitleDefault TitleColor = "default"
	TitleGreen   TitleColor = "green"
	TitleGolden  TitleColor = "golden"
	TitleAqua    TitleColor = "aqua"
)

// Title is one earned display title. The ledger is append-only and deduped
// by ID.
type Title struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Season      int        `json:"season"`
	Rank        string     `json:"rank,omitempty"`
	Wins        int        `json:"wins,omitempty"`
	Color       TitleColor `json:"color"`
	Glow        bool       `json:"glow,omitempty"`
	DateAwarded time.Time  `json:"date_awarded"`
}

type TournamentPhase string

const (
	PhaseWaiting    TournamentPhase = "waiting"
	PhaseQueued     TournamentPhase = "queued"
	PhaseInProgress TournamentPhase = "in-progress"
	PhaseFinished   TournamentPhase = "finished"
)

type TournamentRound string

const (
	Round1    TournamentRound = "round1"
	Round2    TournamentRound = "round2"
	Round3    TournamentRound = "round3"
	Semifinal TournamentRound = "semifinal"
	Final     TournamentRound = "final"
)

type TournamentPlayer struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	MMR    int    `json:"mmr"`
	Title  string `json:"title,omitempty"`
	IsUser bool   `json:"is_user,omitempty"`
}

type TournamentMatch struct {
	ID         string              `json:"id"`
	Round      TournamentRound     `json:"round"`
	Players    [2]TournamentPlayer `json:"players"`
	Games      []string            `json:"games"`
	BestOf     int                 `json:"best_of"`
	IsComplete bool                `json:"is_complete"`
	Winner     string              `json:"winner,omitempty"`
}

type StandardTournament struct {
	ID           string             `json:"id"`
	Type         GameMode           `json:"type"`
	Phase        TournamentPhase    `json:"phase"`
	Season       int                `json:"season"`
	Players      []TournamentPlayer `json:"players"`
	Matches      []TournamentMatch  `json:"matches"`
	CurrentRound TournamentRound    `json:"current_round"`
}

type RCCSStage string

const (
	StageQualifiers RCCSStage = "qualifiers"
	StageRegionals  RCCSStage = "regionals"
	StageMajors     RCCSStage = "majors"
	StageWorlds     RCCSStage = "worlds"
)

type RCCSStatus string

const (
	RCCSUpcoming     RCCSStatus = "upcoming"
	RCCSRegistration RCCSStatus = "registration"
	RCCSActive       RCCSStatus = "active"
	RCCSCompleted    RCCSStatus = "completed"
)

type RCCSTeam struct {
	ID         string `json:"id"`
	PlayerName string `json:"player_name"`
	PlayerMMR  int    `json:"player_mmr"`
	Teammate1  string `json:"teammate1"`
	Teammate2  string `json:"teammate2"`
	AverageMMR int    `json:"average_mmr"`
	IsUser     bool   `json:"is_user,omitempty"`
	Eliminated bool   `json:"eliminated"`
	Placement  int    `json:"placement,omitempty"`
}

type RCCSTournament struct {
	ID       string      `json:"id"`
	Season   int         `json:"season"`
	Stage    RCCSStage   `json:"stage"`
	Teams    []*RCCSTeam `json:"teams"`
	Status   RCCSStatus  `json:"status"`
	MaxTeams int         `json:"max_teams"`
}

// PlayerTeam returns the user's team, or nil if it is not in the field.
func (t *RCCSTournament) PlayerTeam() *RCCSTeam {
	for _, team := range t.Teams {
		if team.IsUser {
			return team
		}
	}
	return nil
}

// TournamentState is the tournament/title history bucket: the shared title
// ledger, per-season tournament win counters, the elite roster and the RCCS
// cycle pointer all persist together.
type TournamentState struct {
	Titles           []Title         `json:"titles"`
	SeasonWinCounts  map[string]int  `json:"season_win_counts"`
	Elites           []*EliteAI      `json:"elites"`
	RCCS             *RCCSTournament `json:"rccs,omitempty"`
	PlayerRegistered bool            `json:"player_registered"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (s *TournamentState) HasTitle(id string) bool {
	for _, t := range s.Titles {
		if t.ID == id {
			return true
		}
	}
	return false
}

type LeaderboardEntry struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	MMR         int       `json:"mmr"`
	Wins        int       `json:"wins"`
	Losses      int       `json:"losses"`
	Title       string    `json:"title,omitempty"`
	IsPlayer    bool      `json:"is_player"`
	LastUpdated time.Time `json:"last_updated"`
}

// LeaderboardState is the leaderboard_data bucket.
type LeaderboardState struct {
	Boards         map[GameMode][]LeaderboardEntry `json:"boards"`
	LastFluctuated time.Time                       `json:"last_fluctuated"`
}

// NewsCache is the news_data bucket: the last successful release check.
type NewsCache struct {
	LatestVersion string    `json:"latest_version"`
	Notes         string    `json:"notes,omitempty"`
	URL           string    `json:"url,omitempty"`
	CheckedAt     time.Time `json:"checked_at"`
}
