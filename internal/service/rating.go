package service

import "math"

const (
	maxMMRSwing = 30
	minMMRSwing = 10
)

// KFactor shrinks as rating grows so high ladder positions move slower.
func KFactor(mmr int) float64 {
	switch {
	case mmr > 1900:
		return 15
	case mmr > 1600:
		return 20
	case mmr > 1000:
		return 25
	default:
		return 30
	}
}

// ExpectedScore is the standard ELO win probability of current vs opponent.
func ExpectedScore(current, opponent float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (opponent-current)/400.0))
}

// MMRDelta computes the rating change for one match outcome against the
// average of the opposing side. The result is clamped to [-30, 30], and a
// win always moves at least +10 (a loss at least -10) so every match shows
// visible progress, upsets and stomps included.
func MMRDelta(current int, won bool, opponentMMRs []int) int {
	avg := float64(current)
	if len(opponentMMRs) > 0 {
		sum := 0
		for _, mmr := range opponentMMRs {
			sum += mmr
		}
		avg = float64(sum) / float64(len(opponentMMRs))
	}

	expected := ExpectedScore(float64(current), avg)
	actual := 0.0
	if won {
		actual = 1.0
	}

	delta := int(math.Round(KFactor(current) * (actual - expected)))

	if delta > maxMMRSwing {
		delta = maxMMRSwing
	}
	if delta < -maxMMRSwing {
		delta = -maxMMRSwing
	}

	if won && delta < minMMRSwing {
		delta = minMMRSwing
	}
	if !won && delta > -minMMRSwing {
		delta = -minMMRSwing
	}

	return delta
}
