package engine

import (
	"fmt"
	"sort"

	"statline/internal/log"
	"statline/internal/stats"
	"statline/internal/token"
)

// output is one token's cached formatted value. ok is false while the query
// does not resolve; absence is ordinary data, not an error.
type output struct {
	value string
	ok    bool
}

// Engine is the token-registry side of the resolver. It owns the snapshot
// store, keeps one formatted output per registered token, and replaces those
// outputs when a refresh observes live-state drift. All methods run on the
// host's single update goroutine.
type Engine struct {
	store    *stats.Store
	resolver *token.Resolver
	session  token.Session
	queries  map[string]string
	outputs  map[string]output
}

// New creates an engine with a freshly seeded snapshot store.
func New(session token.Session) *Engine {
	store := stats.NewStore()
	return &Engine{
		store:    store,
		resolver: token.NewResolver(store, session),
		session:  session,
		queries:  make(map[string]string),
		outputs:  make(map[string]output),
	}
}

// Resolver exposes the underlying resolver.
func (e *Engine) Resolver() *token.Resolver {
	return e.resolver
}

// Store exposes the snapshot store.
func (e *Engine) Store() *stats.Store {
	return e.store
}

// Register admits a token definition after validating its argument string.
// The definition's output is resolved immediately so seeded counters read as
// "0" before the first refresh.
func (e *Engine) Register(name, query string) error {
	ok, msg := e.resolver.Validate(query)
	if !ok {
		tokensRejected.Inc()
		return fmt.Errorf("token %q: %s", name, msg)
	}
	if _, exists := e.queries[name]; !exists {
		tokensRegistered.Inc()
	}
	e.queries[name] = query
	e.outputs[name] = e.resolveOne(query)
	log.Debug("token registered", "name", name, "query", query)
	return nil
}

// UpdateContext runs one refresh tick. When the live sources diverged from
// the cache, every registered token is re-resolved and the names whose
// output changed are returned, sorted, as the invalidation signal.
func (e *Engine) UpdateContext(liveLocal, liveHost stats.Live) []string {
	refreshTotal.Inc()
	if !e.store.Refresh(liveLocal, liveHost, e.session.IsMaster()) {
		return nil
	}
	refreshChanged.Inc()

	var invalidated []string
	for name, query := range e.queries {
		next := e.resolveOne(query)
		if next != e.outputs[name] {
			e.outputs[name] = next
			invalidated = append(invalidated, name)
		}
	}
	sort.Strings(invalidated)
	if len(invalidated) > 0 {
		tokensInvalidated.Add(float64(len(invalidated)))
		log.Debug("token outputs invalidated", "count", len(invalidated))
	}
	return invalidated
}

// Value returns a token's cached output. Unresolved tokens read as absent.
func (e *Engine) Value(name string) (string, bool) {
	out, exists := e.outputs[name]
	if !exists || !out.ok {
		return "", false
	}
	return out.value, true
}

// Query returns the raw argument string a token was registered with.
func (e *Engine) Query(name string) (string, bool) {
	q, ok := e.queries[name]
	return q, ok
}

// Names returns the registered token names, sorted.
func (e *Engine) Names() []string {
	names := make([]string, 0, len(e.queries))
	for name := range e.queries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Engine) resolveOne(query string) output {
	resolveTotal.Inc()
	vals := e.resolver.Resolve(query)
	if len(vals) == 0 {
		resolveMisses.Inc()
		return output{}
	}
	return output{value: vals[0], ok: true}
}
