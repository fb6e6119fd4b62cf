package translation

import (
	"fmt"
	"sort"

	"horse.fit/textlens/internal/language"
)

type registryEntry struct {
	capability Capability
	disabled   bool
}

// Registry maps language pairs to translation capabilities. It is built once
// at startup and read concurrently afterwards.
type Registry struct {
	entries map[language.Pair]registryEntry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[language.Pair]registryEntry)}
}

// Register binds capability to pair, replacing any earlier binding.
func (r *Registry) Register(pair language.Pair, capability Capability) error {
	if r == nil {
		return fmt.Errorf("registry is nil")
	}
	if capability == nil {
		return fmt.Errorf("capability for %s is nil", pair)
	}
	if pair.Source == "" || pair.Target == "" {
		return fmt.Errorf("language pair %q is incomplete", pair)
	}
	if pair.Source == pair.Target {
		return fmt.Errorf("language pair %s translates into itself", pair)
	}
	r.entries[pair] = registryEntry{capability: capability}
	return nil
}

// RegisterBackend binds backend capabilities for every pair.
func (r *Registry) RegisterBackend(backend Backend, pairs []language.Pair) error {
	if backend == nil {
		return fmt.Errorf("backend is nil")
	}
	for _, pair := range pairs {
		if err := r.Register(pair, backend.ForPair(pair)); err != nil {
			return fmt.Errorf("register %s for %s: %w", backend.Name(), pair, err)
		}
	}
	return nil
}

// Disable keeps the pair registered but makes lookups fail.
func (r *Registry) Disable(pair language.Pair) {
	if r == nil {
		return
	}
	entry, ok := r.entries[pair]
	if !ok {
		return
	}
	entry.disabled = true
	r.entries[pair] = entry
}

// Lookup returns the capability for pair or an *UnsupportedPairError.
func (r *Registry) Lookup(pair language.Pair) (Capability, error) {
	if r == nil {
		return nil, &UnsupportedPairError{Pair: pair}
	}
	entry, ok := r.entries[pair]
	if !ok || entry.disabled {
		return nil, &UnsupportedPairError{Pair: pair}
	}
	return entry.capability, nil
}

// Supports reports whether pair has an enabled capability.
func (r *Registry) Supports(pair language.Pair) bool {
	_, err := r.Lookup(pair)
	return err == nil
}

// Pairs lists enabled pairs ordered by source then target.
func (r *Registry) Pairs() []language.Pair {
	if r == nil {
		return nil
	}
	pairs := make([]language.Pair, 0, len(r.entries))
	for pair, entry := range r.entries {
		if entry.disabled {
			continue
		}
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Source != pairs[j].Source {
			return pairs[i].Source < pairs[j].Source
		}
		return pairs[i].Target < pairs[j].Target
	})
	return pairs
}

// Targets lists the languages src can be translated into.
func (r *Registry) Targets(src language.Code) []language.Code {
	var targets []language.Code
	for _, pair := range r.Pairs() {
		if pair.Source == src {
			targets = append(targets, pair.Target)
		}
	}
	return targets
}

// Sources lists the languages with at least one enabled target.
func (r *Registry) Sources() []language.Code {
	var sources []language.Code
	seen := map[language.Code]struct{}{}
	for _, pair := range r.Pairs() {
		if _, ok := seen[pair.Source]; ok {
			continue
		}
		seen[pair.Source] = struct{}{}
		sources = append(sources, pair.Source)
	}
	return sources
}
