package sim

import (
	"math/rand"

	"statline/internal/stats"
)

// Simulation drives demo player activity so the inspector has moving data.
// It stands in for the game process that owns the live statistics; the
// resolver only ever sees it through the stats.Live interface.
type Simulation struct {
	host   *PlayerStats
	local  *PlayerStats // nil when this process is the master session
	master bool
	rng    *rand.Rand
	tick   uint64
}

// New creates a simulation. A master session has no separate local player.
func New(master bool, seed int64) *Simulation {
	s := &Simulation{
		host:   NewPlayerStats(),
		master: master,
		rng:    rand.New(rand.NewSource(seed)),
	}
	if !master {
		s.local = NewPlayerStats()
	}
	return s
}

// IsMaster implements token.Session.
func (s *Simulation) IsMaster() bool {
	return s.master
}

// Host returns the host player's live stats.
func (s *Simulation) Host() *PlayerStats {
	return s.host
}

// Local returns the local player's live stats, or nil in a master session.
// The nil is returned as an untyped interface so callers can compare it.
func (s *Simulation) Local() stats.Live {
	if s.local == nil {
		return nil
	}
	return s.local
}

// Tick advances the demo world one step.
func (s *Simulation) Tick() {
	s.tick++
	s.host.StepsTaken += uint64(1 + s.rng.Intn(40))
	s.host.TotalMoneyEarned += uint64(s.rng.Intn(250))
	if s.tick%3 == 0 {
		s.host.MonstersSlain++
	}
	if s.tick%5 == 0 {
		s.host.OreMined += uint64(1 + s.rng.Intn(4))
	}
	if s.tick%7 == 0 {
		s.host.AddCounter("timesEnchanted", 1)
	}
	if s.tick%11 == 0 {
		s.host.AddCounter("midnightMarketVisits", 1)
	}
	if s.local != nil {
		s.local.StepsTaken += uint64(1 + s.rng.Intn(25))
		if s.tick%4 == 0 {
			s.local.FishCaught++
		}
		if s.tick%9 == 0 {
			s.local.AddCounter("trashRecycled", 1)
		}
	}
}

// Load replaces player state with whatever the store has persisted. Missing
// players are left at their zero state.
func (s *Simulation) Load(store *Store) error {
	host, err := store.LoadPlayer("host")
	if err != nil {
		return err
	}
	if host != nil {
		s.host = host
	}
	if s.local != nil {
		local, err := store.LoadPlayer("local")
		if err != nil {
			return err
		}
		if local != nil {
			s.local = local
		}
	}
	return nil
}

// Save persists player state through the store.
func (s *Simulation) Save(store *Store) error {
	if err := store.SavePlayer("host", s.host); err != nil {
		return err
	}
	if s.local != nil {
		return store.SavePlayer("local", s.local)
	}
	return nil
}
