package domain

// RankInfo is derived from MMR, never stored.
type RankInfo struct {
	Name               string `json:"name"`
	Color              string `json:"color"`
	Division           int    `json:"division,omitempty"`
	Tier               int    `json:"tier"`
	GrandChampionLevel int    `json:"grand_champion_level,omitempty"`
}

const (
	// GrandChampionMMR is the floor of the unbounded top tier. Every 100 MMR
	// above it is one more Grand Champion level.
	GrandChampionMMR = 2550

	// ChampionMMR gates the adaptive AI bands and the elite opponent pool.
	ChampionMMR = 1900
)

type rankTier struct {
	name  string
	min   int
	color string
}

// rankTiers is ascending. Division I-V splits each tier's span into equal
// fifths; Grand Champion replaces divisions with an unbounded level.
var rankTiers = []rankTier{
	{"Bronze I", 0, "#b9722d"},
	{"Bronze II", 100, "#b9722d"},
	{"Bronze III", 200, "#b9722d"},
	{"Silver I", 300, "#b8b8b8"},
	{"Silver II", 400, "#b8b8b8"},
	{"Silver III", 500, "#b8b8b8"},
	{"Gold I", 600, "#ffc95c"},
	{"Gold II", 700, "#ffc95c"},
	{"Gold III", 850, "#ffc95c"},
	{"Platinum I", 1000, "#3fd2e0"},
	{"Platinum II", 1150, "#3fd2e0"},
	{"Platinum III", 1300, "#3fd2e0"},
	{"Diamond I", 1450, "#3c79ff"},
	{"Diamond II", 1600, "#3c79ff"},
	{"Diamond III", 1750, "#3c79ff"},
	{"Champion I", ChampionMMR, "#a86ce6"},
	{"Champion II", 2125, "#a86ce6"},
	{"Champion III", 2350, "#a86ce6"},
	{"Grand Champion", GrandChampionMMR, "#ffd84a"},
}

// Rank maps an MMR value to its tier. Total over all ints: negative MMR
// falls back to Bronze I.
func Rank(mmr int) RankInfo {
	if mmr < 0 {
		mmr = 0
	}

	for i := len(rankTiers) - 1; i >= 0; i-- {
		tier := rankTiers[i]
		if mmr < tier.min {
			continue
		}

		info := RankInfo{
			Name:  tier.name,
			Color: tier.color,
			Tier:  i,
		}

		if i == len(rankTiers)-1 {
			info.GrandChampionLevel = (mmr-GrandChampionMMR)/100 + 1
			return info
		}

		span := rankTiers[i+1].min - tier.min
		division := (mmr-tier.min)*5/span + 1
		if division > 5 {
			division = 5
		}
		info.Division = division
		return info
	}

	return RankInfo{Name: rankTiers[0].name, Color: rankTiers[0].color, Division: 1}
}

// TierIndex is the 0-based position of the MMR's tier in the table.
func TierIndex(mmr int) int {
	return Rank(mmr).Tier
}

// TierCount is the number of named tiers, Grand Champion included.
func TierCount() int {
	return len(rankTiers)
}

// TierName returns the display name for a tier index.
func TierName(index int) string {
	if index < 0 {
		index = 0
	}
	if index >= len(rankTiers) {
		index = len(rankTiers) - 1
	}
	return rankTiers[index].name
}

// IsGrandChampion reports whether the MMR sits in the unbounded top tier.
func IsGrandChampion(mmr int) bool {
	return mmr >= GrandChampionMMR
}
