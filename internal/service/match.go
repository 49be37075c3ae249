package service

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"ranked-clicker/internal/constants"
	"ranked-clicker/internal/domain"
	"ranked-clicker/internal/rng"
)

type MatchState string

const (
	MatchCountdown MatchState = "countdown"
	MatchPlaying   MatchState = "playing"
	MatchFinished  MatchState = "finished"
)

// Participant is one AI inside a running match.
type Participant struct {
	domain.Opponent
	Score     int
	Forfeited bool

	// per-freeze-window state
	reactionMs int
}

// MatchResult is the settled outcome handed to progression and the elite
// roster once the session reaches finished.
type MatchResult struct {
	Mode            domain.GameMode
	Ranked          bool
	PlayerScore     int
	TeamScore       int
	EnemyScore      int
	Won             bool
	Tied            bool
	DurationSeconds int
	Forfeits        int
	EliteResults    []EliteResult
	EnemyMMRs       []int
}

// MatchSession is the countdown -> playing -> finished state machine. It
// owns no timers: the caller advances it with one Tick per 100ms and tears
// it down by dropping it, so nothing can keep scoring after a screen goes
// away.
type MatchSession struct {
	ID     uuid.UUID
	Mode   domain.GameMode
	Ranked bool

	state     MatchState
	countdown int
	remaining int
	duration  int
	tick      int

	playerMMR   int
	playerScore int

	teammates []*Participant
	enemies   []*Participant

	frozen          bool
	freezeTicksLeft int
	freezeElapsedMs int

	clicksThisSecond int
	playerCPS        float64

	sim    *ClickSimulator
	rng    rng.Source
	logger zerolog.Logger
}

func NewMatchSession(mode domain.GameMode, ranked bool, playerMMR int, roster *Roster, sim *ClickSimulator, src rng.Source, logger zerolog.Logger) *MatchSession {
	session := &MatchSession{
		ID:        uuid.New(),
		Mode:      mode,
		Ranked:    ranked,
		state:     MatchCountdown,
		countdown: constants.CountdownSeconds,
		playerMMR: playerMMR,
		sim:       sim,
		rng:       src,
		logger:    logger,
	}

	session.duration = src.Between(constants.MatchMinSeconds, constants.MatchMaxSeconds)
	session.remaining = session.duration

	for _, opp := range roster.Teammates {
		session.teammates = append(session.teammates, &Participant{Opponent: opp})
	}
	for _, opp := range roster.Enemies {
		session.enemies = append(session.enemies, &Participant{Opponent: opp})
	}

	logger.Debug().
		Str("match_id", session.ID.String()).
		Str("mode", string(mode)).
		Int("duration_s", session.duration).
		Msg("match session created")

	return session
}

func (m *MatchSession) State() MatchState { return m.state }

func (m *MatchSession) Remaining() int { return m.remaining }

func (m *MatchSession) Frozen() bool { return m.frozen }

// Click registers one player click. During a freeze window clicking costs
// 2 points instead of scoring, floored at zero.
func (m *MatchSession) Click() {
	if m.state != MatchPlaying {
		return
	}

	if m.frozen {
		m.playerScore -= constants.FreezePenalty
		if m.playerScore < 0 {
			m.playerScore = 0
		}
	} else {
		m.playerScore++
	}
	m.clicksThisSecond++
}

// TeamScore sums the player and every non-forfeited teammate.
func (m *MatchSession) TeamScore() int {
	total := m.playerScore
	for _, p := range m.teammates {
		if !p.Forfeited {
			total += p.Score
		}
	}
	return total
}

// EnemyScore sums every non-forfeited enemy.
func (m *MatchSession) EnemyScore() int {
	total := 0
	for _, p := range m.enemies {
		if !p.Forfeited {
			total += p.Score
		}
	}
	return total
}

// Tick advances the session by one 100ms step. All AI scoring, forfeiture
// checks and freeze bookkeeping for the step happen against the snapshot of
// state taken at entry; callers must treat each call as atomic.
func (m *MatchSession) Tick() {
	switch m.state {
	case MatchCountdown:
		m.tick++
		if m.tick%constants.TicksPerSecond == 0 {
			m.countdown--
			if m.countdown <= 0 {
				m.state = MatchPlaying
				m.tick = 0
				m.logger.Debug().Str("match_id", m.ID.String()).Msg("match started")
			}
		}

	case MatchPlaying:
		m.tick++

		teamScore := m.TeamScore()
		enemyScore := m.EnemyScore()

		for _, p := range m.teammates {
			m.stepAI(p, teamScore-enemyScore)
		}
		for _, p := range m.enemies {
			m.stepAI(p, enemyScore-teamScore)
		}

		if m.frozen {
			m.freezeElapsedMs += 100
			m.freezeTicksLeft--
			if m.freezeTicksLeft <= 0 {
				m.frozen = false
			}
		}

		if m.tick%constants.TicksPerSecond == 0 {
			m.playerCPS = float64(m.clicksThisSecond)
			m.clicksThisSecond = 0
			m.remaining--

			if m.remaining <= 0 {
				m.finish()
				return
			}

			if !m.frozen && m.rng.Chance(constants.FreezeChancePerSecond) {
				m.startFreeze()
			}
		}
	}
}

// stepAI advances one AI by one tick. lead is its team's score minus the
// opposing team's.
func (m *MatchSession) stepAI(p *Participant, lead int) {
	if p.Forfeited {
		return
	}

	if m.frozen {
		// The AI keeps clicking until its reaction delay elapses, paying
		// the same -2 per click as the player. A 200ms reaction costs two
		// penalty ticks, an 800ms one costs eight.
		if m.freezeElapsedMs < p.reactionMs {
			p.Score -= constants.FreezePenalty
			if p.Score < 0 {
				p.Score = 0
			}
		}
		return
	}

	if -lead > constants.ForfeitDeficit && m.remaining < constants.ForfeitWindowSeconds {
		if m.rng.Chance(constants.ForfeitChancePerTick) {
			p.Forfeited = true
			m.logger.Debug().Str("name", p.Name).Msg("ai forfeited")
			return
		}
	}

	p.Score += m.sim.ClicksPerTick(p.MMR, m.playerCPS)
}

func (m *MatchSession) startFreeze() {
	m.frozen = true
	m.freezeElapsedMs = 0
	seconds := m.rng.Between(constants.FreezeMinSeconds, constants.FreezeMaxSeconds)
	m.freezeTicksLeft = seconds * constants.TicksPerSecond

	for _, p := range append(append([]*Participant{}, m.teammates...), m.enemies...) {
		p.reactionMs = m.rng.Between(constants.AIReactionMinMs, constants.AIReactionMaxMs)
	}
}

func (m *MatchSession) finish() {
	m.state = MatchFinished
	m.logger.Debug().
		Str("match_id", m.ID.String()).
		Int("team", m.TeamScore()).
		Int("enemy", m.EnemyScore()).
		Msg("match finished")
}

// Result settles the match. Only valid once the session is finished; the
// second return is false otherwise. The win condition is strictly greater:
// a tie is not a win.
func (m *MatchSession) Result() (*MatchResult, bool) {
	if m.state != MatchFinished {
		return nil, false
	}

	teamScore := m.TeamScore()
	enemyScore := m.EnemyScore()

	result := &MatchResult{
		Mode:            m.Mode,
		Ranked:          m.Ranked,
		PlayerScore:     m.playerScore,
		TeamScore:       teamScore,
		EnemyScore:      enemyScore,
		Won:             teamScore > enemyScore,
		Tied:            teamScore == enemyScore,
		DurationSeconds: m.duration,
	}

	for _, p := range m.enemies {
		result.EnemyMMRs = append(result.EnemyMMRs, p.MMR)
		if p.Forfeited {
			result.Forfeits++
		}
	}
	for _, p := range m.teammates {
		if p.Forfeited {
			result.Forfeits++
		}
	}

	teamMMRs := []int{m.playerMMR}
	for _, p := range m.teammates {
		teamMMRs = append(teamMMRs, p.MMR)
	}

	for _, p := range m.teammates {
		if p.Kind == domain.OpponentElite {
			result.EliteResults = append(result.EliteResults, EliteResult{
				EliteID:      p.EliteID,
				Mode:         m.Mode,
				Won:          result.Won,
				OpponentMMRs: result.EnemyMMRs,
			})
		}
	}
	for _, p := range m.enemies {
		if p.Kind == domain.OpponentElite {
			result.EliteResults = append(result.EliteResults, EliteResult{
				EliteID:      p.EliteID,
				Mode:         m.Mode,
				Won:          enemyScore > teamScore,
				OpponentMMRs: teamMMRs,
			})
		}
	}

	return result, true
}
