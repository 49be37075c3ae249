package service

import (
	"fmt"

	"ranked-clicker/internal/domain"
)

type eliteSeed struct {
	name  string
	mmr   int
	title string
}

// The fixed 30-member elite roster. Names and titles are static seed data;
// ratings, games played and win rates move with every match they appear in.
var eliteSeeds = []eliteSeed{
	{"Vortex", 3150, "RCCS S4 WORLD CHAMPION"},
	{"Quicksilver", 3120, "RCCS S4 GRAND FINALIST"},
	{"NovaPulse", 3080, "RCCS S3 WORLD CHAMPION"},
	{"Ratio", 3040, "RCCS S4 MAJOR CHAMPION"},
	{"Clickbait", 3010, "RCCS S4 MAJOR CONTENDER"},
	{"Overdrive", 2980, "RCCS S3 GRAND FINALIST"},
	{"Snapshot", 2950, "RCCS S4 REGIONAL CHAMPION"},
	{"Feint", 2920, "RCCS S2 WORLD CHAMPION"},
	{"Tempo", 2890, "RCCS S4 REGIONAL FINALIST"},
	{"Afterimage", 2860, "RCCS S3 MAJOR CONTENDER"},
	{"Glacier", 2830, "S4 GRAND CHAMPION"},
	{"Hairpin", 2800, "RCCS S4 CONTENDER"},
	{"Socket", 2770, "S3 GRAND CHAMPION"},
	{"Parallax", 2740, "RCCS S3 CONTENDER"},
	{"DryFire", 2710, "S4 GRAND CHAMPION TOURNAMENT WINNER"},
	{"Momentum", 2680, "S4 GRAND CHAMPION"},
	{"Nullptr", 2650, "S2 GRAND CHAMPION"},
	{"Cinder", 2620, "RCCS S2 CONTENDER"},
	{"Westside", 2590, "S4 CHAMPION TOURNAMENT WINNER"},
	{"Latch", 2560, "S4 GRAND CHAMPION"},
	{"Pivot", 2520, "S4 CHAMPION"},
	{"Recoil", 2480, "S3 CHAMPION"},
	{"Bracket", 2440, "S4 CHAMPION TOURNAMENT WINNER"},
	{"Stutter", 2400, "S4 CHAMPION"},
	{"Sideband", 2360, "S2 CHAMPION"},
	{"Mainspring", 2310, "S3 CHAMPION"},
	{"Halfstep", 2260, "S4 DIAMOND TOURNAMENT WINNER"},
	{"Crosswind", 2200, "S4 CHAMPION"},
	{"Coldkey", 2120, "S3 CHAMPION"},
	{"Fulcrum", 2040, "S4 CHAMPION"},
}

func seedEliteRoster() []*domain.EliteAI {
	roster := make([]*domain.EliteAI, 0, len(eliteSeeds))
	for i, seed := range eliteSeeds {
		roster = append(roster, &domain.EliteAI{
			ID:   fmt.Sprintf("elite-%02d", i+1),
			Name: seed.name,
			MMR: map[domain.GameMode]int{
				domain.Mode1v1: seed.mmr,
				domain.Mode2v2: seed.mmr - 20,
				domain.Mode3v3: seed.mmr - 40,
			},
			Title:       seed.title,
			GamesPlayed: 120 + (len(eliteSeeds)-i)*8,
			WinRate:     0.52 + float64(len(eliteSeeds)-i)*0.005,
		})
	}
	return roster
}
