package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ranked-clicker/internal/rng"
)

func TestClicksPerTickNeverNegative(t *testing.T) {
	sim := NewClickSimulator(rng.NewSeeded(1))

	for _, mmr := range []int{0, 450, 900, 1500, 2000, 2600, 3200} {
		for _, cps := range []float64{0, 4, 12, 30} {
			for i := 0; i < 200; i++ {
				require.GreaterOrEqual(t, sim.ClicksPerTick(mmr, cps), 0, "mmr %d cps %.0f", mmr, cps)
			}
		}
	}
}

func TestClicksPerTickBronzeBand(t *testing.T) {
	sim := NewClickSimulator(rng.NewSeeded(2))

	// Bronze plays 3-5 cps regardless of the player, so a tick is at most
	// the occasional bonus click.
	for i := 0; i < 500; i++ {
		clicks := sim.ClicksPerTick(100, 40)
		require.LessOrEqual(t, clicks, 1)
	}
}

func TestClicksPerTickChampionTracksPlayer(t *testing.T) {
	sim := NewClickSimulator(rng.NewSeeded(3))

	// Champion envelope is playerCPS +/- 2 with a floor at 6 cps.
	for i := 0; i < 500; i++ {
		clicks := sim.ClicksPerTick(2000, 20)
		require.GreaterOrEqual(t, clicks, 1)
		require.LessOrEqual(t, clicks, 3)
	}

	// A player barely clicking still faces the floor, not a dead AI.
	sawClick := false
	for i := 0; i < 500; i++ {
		if sim.ClicksPerTick(2000, 0) > 0 {
			sawClick = true
			break
		}
	}
	require.True(t, sawClick)
}

func TestClicksPerTickGrandChampionCapped(t *testing.T) {
	sim := NewClickSimulator(rng.NewSeeded(4))

	// Even against an absurdly fast player the envelope caps at 25 cps.
	for i := 0; i < 500; i++ {
		clicks := sim.ClicksPerTick(2600, 60)
		require.GreaterOrEqual(t, clicks, 2)
		require.LessOrEqual(t, clicks, 3)
	}
}
