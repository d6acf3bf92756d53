package sim

import "statline/internal/stats"

// PlayerStats is the simulation's live statistics record for one player.
// It satisfies stats.Live without any reflection: typed fields are reached
// through a static accessor table keyed by schema name.
type PlayerStats struct {
	DaysPlayed       uint64
	TotalMoneyEarned uint64
	StepsTaken       uint64
	MonstersSlain    uint64
	ItemsCrafted     uint64
	ItemsCooked      uint64
	FishCaught       uint64
	CropsHarvested   uint64
	OreMined         uint64
	TreesChopped     uint64
	QuestsCompleted  uint64
	GiftsGiven       uint64

	// Counters holds stats outside the fixed schema, keyed by arbitrary name.
	Counters map[string]uint64
}

// NewPlayerStats creates an empty record with an initialized counter table.
func NewPlayerStats() *PlayerStats {
	return &PlayerStats{Counters: make(map[string]uint64)}
}

// fieldAccess maps every schema field name to its struct field. The pointer
// form serves both reads and writes.
var fieldAccess = map[string]func(*PlayerStats) *uint64{
	"daysPlayed":       func(p *PlayerStats) *uint64 { return &p.DaysPlayed },
	"totalMoneyEarned": func(p *PlayerStats) *uint64 { return &p.TotalMoneyEarned },
	"stepsTaken":       func(p *PlayerStats) *uint64 { return &p.StepsTaken },
	"monstersSlain":    func(p *PlayerStats) *uint64 { return &p.MonstersSlain },
	"itemsCrafted":     func(p *PlayerStats) *uint64 { return &p.ItemsCrafted },
	"itemsCooked":      func(p *PlayerStats) *uint64 { return &p.ItemsCooked },
	"fishCaught":       func(p *PlayerStats) *uint64 { return &p.FishCaught },
	"cropsHarvested":   func(p *PlayerStats) *uint64 { return &p.CropsHarvested },
	"oreMined":         func(p *PlayerStats) *uint64 { return &p.OreMined },
	"treesChopped":     func(p *PlayerStats) *uint64 { return &p.TreesChopped },
	"questsCompleted":  func(p *PlayerStats) *uint64 { return &p.QuestsCompleted },
	"giftsGiven":       func(p *PlayerStats) *uint64 { return &p.GiftsGiven },
}

// TypedField implements stats.Live. Unknown names read as zero.
func (p *PlayerStats) TypedField(name string) uint64 {
	if access, ok := fieldAccess[name]; ok {
		return *access(p)
	}
	return 0
}

// DynamicCounters implements stats.Live.
func (p *PlayerStats) DynamicCounters() map[string]uint64 {
	return p.Counters
}

// SetTyped writes a typed field by schema name; unknown names are ignored.
func (p *PlayerStats) SetTyped(name string, value uint64) {
	if access, ok := fieldAccess[name]; ok {
		*access(p) = value
	}
}

// AddCounter bumps a dynamic counter, creating it on first use.
func (p *PlayerStats) AddCounter(key string, delta uint64) {
	p.Counters[key] += delta
}

var _ stats.Live = (*PlayerStats)(nil)
