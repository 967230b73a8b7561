package mcp

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sahilm/fuzzy"

	"stackit.dev/gitkit/internal/config"
)

// maxSuggestions caps the names offered by NotRegisteredError
const maxSuggestions = 3

// errNoTransport is reported for a name whose transport is nil
var errNoTransport = errors.New("no transport")

// Factory builds a transport on first use
type Factory func() (Transport, error)

type entry struct {
	mu           sync.Mutex
	factory      Factory
	transport    Transport
	err          error
	materialized bool
}

// resolve runs the factory at most once and remembers its outcome, error included
func (e *entry) resolve() (Transport, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.materialized {
		e.transport, e.err = e.factory()
		if e.err == nil && e.transport == nil {
			e.err = errNoTransport
		}
		e.materialized = true
		e.factory = nil
	}
	return e.transport, e.err
}

func (e *entry) peek() (Transport, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.transport, e.materialized && e.err == nil && e.transport != nil
}

// Registry maps names to transports. It is safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{entries: map[string]*entry{}}
}

// NewRegistryFromConfig registers a deferred HTTP transport for every configured server
func NewRegistryFromConfig(cfg *config.Config) *Registry {
	r := NewRegistry()
	if cfg == nil {
		return r
	}
	for _, name := range cfg.TransportNames() {
		tc := cfg.MCP.Transports[name]
		if tc.Type != config.TransportHTTP {
			continue
		}
		r.Extend(name, HTTPFactory(name, tc))
	}
	return r
}

// HTTPFactory builds an HTTPTransport from its configuration
func HTTPFactory(name string, tc config.TransportConfig) Factory {
	return func() (Transport, error) {
		opts := []HTTPOption{
			WithHeaders(tc.Headers),
			WithTimeout(tc.TimeoutOrDefault()),
			WithVerify(tc.VerifyTLS()),
		}
		if token := tc.ExpandedToken(); token != "" {
			opts = append(opts, WithBearerToken(token))
		}
		return NewHTTPTransport(name, tc.URL, opts...), nil
	}
}

// Add registers an existing transport under name, replacing any previous entry.
// A nil transport is registered as an error returned by Transport(name).
func (r *Registry) Add(name string, t Transport) {
	e := &entry{transport: t, materialized: true}
	if t == nil {
		e.err = errNoTransport
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = e
}

// Extend registers a factory under name. It runs on the first Transport(name) call.
func (r *Registry) Extend(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = &entry{factory: f}
}

// Transport returns the named transport, building it on first use.
// A factory error is returned on every later call as well.
func (r *Registry) Transport(name string) (Transport, error) {
	r.mu.Lock()
	e, ok := r.entries[name]
	r.mu.Unlock()
	if !ok {
		return nil, &NotRegisteredError{Name: name, Suggestions: r.suggest(name)}
	}

	t, err := e.resolve()
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP transport [%s]: %w", name, err)
	}
	return t, nil
}

// Has reports whether name is registered
func (r *Registry) Has(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[name]
	return ok
}

// Remove unregisters name. A built transport is disconnected first.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	e, ok := r.entries[name]
	delete(r.entries, name)
	r.mu.Unlock()

	if ok {
		if t, built := e.peek(); built {
			t.Disconnect()
		}
	}
}

// Names returns the registered names in sorted order
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DisconnectAll disconnects every transport that has been built. Factories are not run.
func (r *Registry) DisconnectAll() {
	r.mu.Lock()
	entries := make([]*entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.mu.Unlock()

	for _, e := range entries {
		if t, built := e.peek(); built {
			t.Disconnect()
		}
	}
}

func (r *Registry) suggest(name string) []string {
	names := r.Names()
	matches := fuzzy.Find(name, names)
	out := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, m.Str)
	}
	return out
}
