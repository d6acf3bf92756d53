package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statline/internal/stats"
)

type fakeSession bool

func (f fakeSession) IsMaster() bool { return bool(f) }

type fakeLive struct {
	typed    map[string]uint64
	counters map[string]uint64
}

func (f *fakeLive) TypedField(name string) uint64      { return f.typed[name] }
func (f *fakeLive) DynamicCounters() map[string]uint64 { return f.counters }

func newFakeLive() *fakeLive {
	return &fakeLive{typed: map[string]uint64{}, counters: map[string]uint64{}}
}

func newResolver(master bool) *Resolver {
	return NewResolver(stats.NewStore(), fakeSession(master))
}

func TestValidate(t *testing.T) {
	r := newResolver(true)

	tests := []struct {
		name    string
		input   string
		ok      bool
		mention string
	}{
		{"typed stat", "player=host|stat=stepstaken", true, ""},
		{"mixed case and spacing", "Player=Host | Stat=Times Enchanted", true, ""},
		{"player suffix", "player=hostplayer|stat=gold", true, ""},
		{"local player", "player=localplayer|stat=fish caught", true, ""},
		{"digits in stat", "player=host|stat=3x", true, ""},
		{"one segment", "player=host", false, "Incorrect number of arguments"},
		{"three segments", "player=host|stat=x|extra", false, "Incorrect number of arguments"},
		{"unknown player", "player=banana|stat=x", false, "'host' or 'local'"},
		{"empty player", "player=|stat=x", false, "'player' must have a value"},
		{"missing player marker", "nope|stat=x", false, "'player' not provided"},
		{"missing stat marker", "player=host|nope", false, "'stat' not provided"},
		{"empty stat", "player=host|stat=", false, "'stat' must have a value"},
		{"bad stat character", "player=host|stat=x!", false, "letters, numbers and spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := r.Validate(tt.input)
			assert.Equal(t, tt.ok, ok, "input %q, message %q", tt.input, msg)
			if tt.mention != "" {
				assert.Contains(t, msg, tt.mention)
			}
			if tt.ok {
				assert.Empty(t, msg)
			}
		})
	}
}

func TestValidateAccumulatesProblems(t *testing.T) {
	r := newResolver(true)

	ok, msg := r.Validate("player=banana|stat=x!")
	require.False(t, ok)
	assert.Contains(t, msg, "'host' or 'local'")
	assert.Contains(t, msg, "letters, numbers and spaces")
}

func TestValidateShortCircuitsOnMissingStatMarker(t *testing.T) {
	r := newResolver(true)

	// The stat value checks must not run once the marker is missing.
	ok, msg := r.Validate("player=host|x!")
	require.False(t, ok)
	assert.Contains(t, msg, "'stat' not provided")
	assert.NotContains(t, msg, "letters, numbers and spaces")
}

func TestResolveTypedField(t *testing.T) {
	r := newResolver(true)
	live := newFakeLive()
	live.typed["stepsTaken"] = 7
	r.Store().Refresh(nil, live, true)

	assert.Equal(t, []string{"7"}, r.Resolve("player=host|stat=stepsTaken"))
	assert.Equal(t, []string{"7"}, r.Resolve("Player=Host | Stat=Steps Taken"))
	assert.Equal(t, []string{"7"}, r.Resolve("player=hostplayer|stat=STEPSTAKEN"))
}

func TestResolveSeededCounterBeforeRefresh(t *testing.T) {
	r := newResolver(true)
	assert.Equal(t, []string{"0"}, r.Resolve("Player=Host | Stat=Times Enchanted"))
}

func TestResolveLocalRedirectsToHostForMaster(t *testing.T) {
	r := newResolver(true)
	live := newFakeLive()
	live.typed["totalMoneyEarned"] = 1234
	r.Store().Refresh(nil, live, true)

	host := r.Resolve("player=host|stat=totalMoneyEarned")
	local := r.Resolve("player=local|stat=totalMoneyEarned")
	assert.Equal(t, host, local, "master session local must mirror host")
	assert.Equal(t, []string{"1234"}, local)
}

func TestResolveLocalUsesLocalSnapshotWhenNotMaster(t *testing.T) {
	r := newResolver(false)
	liveLocal := newFakeLive()
	liveLocal.typed["fishCaught"] = 3
	liveHost := newFakeLive()
	liveHost.typed["fishCaught"] = 8
	r.Store().Refresh(liveLocal, liveHost, false)

	assert.Equal(t, []string{"3"}, r.Resolve("player=local|stat=fishCaught"))
	assert.Equal(t, []string{"8"}, r.Resolve("player=host|stat=fishCaught"))
}

func TestResolveMissIsEmpty(t *testing.T) {
	r := newResolver(true)

	assert.Empty(t, r.Resolve("player=host|stat=noSuchStat"))
}

func TestResolveUnparsableIsEmpty(t *testing.T) {
	r := newResolver(true)

	assert.Empty(t, r.Resolve("garbage"))
	assert.Empty(t, r.Resolve("player=banana|stat=x"))
	assert.Empty(t, r.Resolve("nope|stat=x"))
	assert.Empty(t, r.Resolve("player=host|nope"))
}

func TestRoundTripThroughRefresh(t *testing.T) {
	r := newResolver(true)
	live := newFakeLive()

	live.typed["oreMined"] = 11
	r.Store().Refresh(nil, live, true)
	assert.Equal(t, []string{"11"}, r.Resolve("player=host|stat=oreMined"))

	live.typed["oreMined"] = 12
	r.Store().Refresh(nil, live, true)
	assert.Equal(t, []string{"12"}, r.Resolve("player=host|stat=oreMined"))
}
