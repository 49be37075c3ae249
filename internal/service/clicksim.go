package service

import (
	"ranked-clicker/internal/domain"
	"ranked-clicker/internal/rng"
)

// ClickSimulator produces AI click counts for one 100ms scoring tick.
// Below Champion the rate is a stepped function of the AI's rating; at
// Champion and above the AI plays to the opponent, tracking the player's
// observed clicks per second inside a competitive envelope.
type ClickSimulator struct {
	rng rng.Source
}

func NewClickSimulator(src rng.Source) *ClickSimulator {
	return &ClickSimulator{rng: src}
}

type cpsBand struct {
	minMMR int
	lo, hi float64
}

var baseCPSBands = []cpsBand{
	{0, 3, 5},     // Bronze
	{300, 4, 6},   // Silver
	{600, 5, 7},   // Gold
	{1000, 6, 8},  // Platinum
	{1450, 7, 9},  // Diamond
}

// ClicksPerTick returns the AI's clicks for one tick. Never negative.
func (c *ClickSimulator) ClicksPerTick(aiMMR int, playerCPS float64) int {
	lo, hi := c.envelope(aiMMR, playerCPS)

	cps := lo + c.rng.Float64()*(hi-lo)

	// Human-like variance.
	cps *= 0.95 + c.rng.Float64()*0.10

	clicks := int(cps / 10)
	if c.rng.Chance(0.30) {
		clicks++
	}
	if clicks < 0 {
		clicks = 0
	}
	return clicks
}

func (c *ClickSimulator) envelope(aiMMR int, playerCPS float64) (float64, float64) {
	switch {
	case aiMMR >= domain.GrandChampionMMR:
		lo := playerCPS - 3
		if lo < 10 {
			lo = 10
		}
		hi := playerCPS + 3
		if hi < 15 {
			hi = 15
		}
		if hi > 25 {
			hi = 25
		}
		if lo > hi {
			lo = hi
		}
		return lo, hi

	case aiMMR >= domain.ChampionMMR:
		lo := playerCPS - 2
		if lo < 6 {
			lo = 6
		}
		hi := playerCPS + 2
		if lo > hi {
			lo = hi
		}
		return lo, hi
	}

	band := baseCPSBands[0]
	for _, b := range baseCPSBands {
		if aiMMR >= b.minMMR {
			band = b
		}
	}
	return band.lo, band.hi
}
