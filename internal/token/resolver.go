package token

import (
	"regexp"
	"strconv"
	"strings"

	"statline/internal/stats"
)

// Session reports whether this process is the authoritative game session.
// When it is, the local player and the host player are the same entity.
type Session interface {
	IsMaster() bool
}

// Resolver answers player-stat token queries against the cached snapshots.
// Validate never panics on malformed input and Resolve signals a miss with
// an empty result, so the hosting token engine can treat both as data.
type Resolver struct {
	store   *stats.Store
	session Session
}

// NewResolver creates a resolver over the given store and session topology.
func NewResolver(store *stats.Store, session Session) *Resolver {
	return &Resolver{store: store, session: session}
}

// Store returns the snapshot store the resolver reads from.
func (r *Resolver) Store() *stats.Store {
	return r.store
}

// statValueRegex matches stat values after lower-casing: letters, digits and
// spaces only.
var statValueRegex = regexp.MustCompile(`^[a-z0-9 ]+$`)

// Validate checks a raw argument string against the token grammar:
// "player=<host|local>[player]|stat=<name>". Problems with the player
// segment accumulate so one call can report several, but a missing stat
// marker stops validation outright.
func (r *Resolver) Validate(input string) (bool, string) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(input)), "|")
	if len(parts) != 2 {
		return false, "Incorrect number of arguments."
	}

	var problems []string
	if val, ok := argValue(parts[0], "player="); !ok {
		problems = append(problems, "Named argument 'player' not provided.")
	} else if val == "" {
		problems = append(problems, "Named argument 'player' must have a value.")
	} else if who := strings.TrimSuffix(stripSpaces(val), "player"); who != "host" && who != "local" {
		problems = append(problems, "Named argument 'player' must be 'host' or 'local'.")
	}

	val, ok := argValue(parts[1], "stat=")
	if !ok {
		problems = append(problems, "Named argument 'stat' not provided.")
		return false, strings.Join(problems, " ")
	}
	if val == "" {
		problems = append(problems, "Named argument 'stat' must have a value.")
	} else if !statValueRegex.MatchString(val) {
		problems = append(problems, "Named argument 'stat' may only contain letters, numbers and spaces.")
	}

	if len(problems) > 0 {
		return false, strings.Join(problems, " ")
	}
	return true, ""
}

// Resolve returns at most one value for a previously validated query. Any
// input that does not parse, or names a stat the addressed snapshot does not
// know, yields an empty result rather than an error.
func (r *Resolver) Resolve(input string) []string {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(input)), "|")
	if len(parts) != 2 {
		return nil
	}
	player, ok := argValue(parts[0], "player=")
	if !ok {
		return nil
	}
	statName, ok := argValue(parts[1], "stat=")
	if !ok {
		return nil
	}

	var ctx stats.Context
	switch strings.TrimSuffix(stripSpaces(player), "player") {
	case "host":
		ctx = stats.Host
	case "local":
		// The master session's local player is the host player.
		if r.session.IsMaster() {
			ctx = stats.Host
		} else {
			ctx = stats.Local
		}
	default:
		return nil
	}

	if v, ok := r.store.Snapshot(ctx).Lookup(stripSpaces(statName)); ok {
		return []string{strconv.FormatUint(v, 10)}
	}
	return nil
}

// argValue extracts the trimmed value following a key= marker in a segment.
func argValue(segment, marker string) (string, bool) {
	i := strings.Index(segment, marker)
	if i < 0 {
		return "", false
	}
	return strings.TrimSpace(segment[i+len(marker):]), true
}

func stripSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
