package stats

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Context identifies which player's snapshot is addressed.
type Context int

const (
	Host Context = iota
	Local
)

var lower = cases.Lower(language.Und)

// FoldKey normalizes a stat name for comparison: lower-cased, spaces removed.
func FoldKey(name string) string {
	return strings.ReplaceAll(lower.String(name), " ", "")
}

// Snapshot is one player's statistics as of the last refresh. Typed fields
// are keyed by folded schema name; dynamic counters keep the key exactly as
// the live source delivered it and are folded only at lookup time.
type Snapshot struct {
	typed   map[string]uint64
	dynamic map[string]uint64
}

func newSnapshot() *Snapshot {
	s := &Snapshot{
		typed:   make(map[string]uint64, len(FieldNames)),
		dynamic: make(map[string]uint64, len(SeededCounters)),
	}
	for _, name := range FieldNames {
		s.typed[FoldKey(name)] = 0
	}
	for _, key := range SeededCounters {
		s.dynamic[key] = 0
	}
	return s
}

// Lookup resolves a stat name against this snapshot, typed fields first,
// then dynamic counters. A miss is not an error.
func (s *Snapshot) Lookup(name string) (uint64, bool) {
	folded := FoldKey(name)
	if v, ok := s.typed[folded]; ok {
		return v, true
	}
	for key, v := range s.dynamic {
		if FoldKey(key) == folded {
			return v, true
		}
	}
	return 0, false
}

// TypedValue returns the cached value of a schema field.
func (s *Snapshot) TypedValue(name string) uint64 {
	return s.typed[FoldKey(name)]
}

// DynamicKeys returns the cached dynamic counter keys, sorted.
func (s *Snapshot) DynamicKeys() []string {
	keys := make([]string, 0, len(s.dynamic))
	for key := range s.dynamic {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// DynamicValue returns the cached value of a dynamic counter key as stored.
func (s *Snapshot) DynamicValue(key string) uint64 {
	return s.dynamic[key]
}

// update copies live values that differ from the cache, typed fields first,
// then dynamic keys. Keys are only ever added or overwritten, never removed.
func (s *Snapshot) update(live Live) bool {
	changed := false
	for _, name := range FieldNames {
		key := FoldKey(name)
		if v := live.TypedField(name); s.typed[key] != v {
			s.typed[key] = v
			changed = true
		}
	}
	for key, v := range live.DynamicCounters() {
		if cur, ok := s.dynamic[key]; !ok || cur != v {
			s.dynamic[key] = v
			changed = true
		}
	}
	return changed
}

// Store holds the two cached snapshots, one per player context. It has a
// single owner; Refresh is the only mutator and must not run concurrently
// with reads.
type Store struct {
	snaps map[Context]*Snapshot
}

// NewStore creates both snapshots zero-initialized with the seeded counters.
func NewStore() *Store {
	return &Store{snaps: map[Context]*Snapshot{
		Host:  newSnapshot(),
		Local: newSnapshot(),
	}}
}

// Snapshot returns the cached snapshot for a context.
func (st *Store) Snapshot(ctx Context) *Snapshot {
	return st.snaps[ctx]
}

// Refresh diffs the live sources against the cached snapshots and applies
// any divergence, reporting whether anything changed. The local phase runs
// only when this session is not the master: the master's local player is the
// host player, so diffing it separately would be redundant. A nil liveLocal
// means there is nothing to diff yet and simply skips the local phase.
func (st *Store) Refresh(liveLocal, liveHost Live, isMaster bool) bool {
	changed := false
	if !isMaster && liveLocal != nil {
		if st.snaps[Local].update(liveLocal) {
			changed = true
		}
	}
	if st.snaps[Host].update(liveHost) {
		changed = true
	}
	return changed
}
