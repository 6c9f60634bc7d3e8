// Package registry maps single-character examination keys to analysis
// functions and their parameter sets. It provides registration with
// duplicate rejection, ordered listing for help output, and a full
// reset back to the built-in defaults.
package registry

import (
	"sync"
	"unicode"

	"pixelprobe/internal/grid"
	"pixelprobe/internal/params"
	"pixelprobe/pkg/probetypes"
)

// AnalysisFunc is one examination routine. It receives the cursor
// position in full-frame coordinates, the freshly sliced data window,
// and the routine's current parameter set (nil when the routine takes
// none). It returns a textual result for display and logging; plots
// happen as side effects through whatever plot surface the function
// captured at construction time.
type AnalysisFunc func(x, y float64, win *grid.Window, pset *params.Set) (string, error)

// Entry binds a key to an analysis function.
type Entry struct {
	Key         rune
	Func        AnalysisFunc
	Params      *params.Set
	Description string

	builtin bool
}

// Builtin reports whether the entry was installed at construction time.
func (e Entry) Builtin() bool { return e.builtin }

// Registry manages key registration and lookup. It is mutated only
// between dispatches under the single-threaded loop model; the mutex
// follows the shape of the rest of the codebase's registries.
type Registry struct {
	mu       sync.RWMutex
	order    []rune
	entries  map[rune]Entry
	reserved map[rune]bool

	// Built-in registration order, kept so ResetAll can rebuild the
	// original key map deterministically.
	builtinOrder []rune

	// Built-ins removed by the user, kept so ResetAll can restore them.
	removedBuiltins map[rune]Entry
}

// New creates an empty registry. The given keys are reserved for loop
// control and can never be bound to an analysis function.
func New(reserved ...rune) *Registry {
	r := &Registry{
		entries:  make(map[rune]Entry),
		reserved: make(map[rune]bool, len(reserved)),
	}
	for _, key := range reserved {
		r.reserved[key] = true
	}
	return r
}

// Register binds a key to an analysis function. Registration fails when
// the key is already bound (the existing entry is left untouched), when
// the key is reserved for loop control, or when the key is not a single
// printable character.
func (r *Registry) Register(entry Entry) error {
	return r.register(entry, false)
}

// RegisterBuiltin installs a built-in entry. Built-ins survive ResetAll
// with their parameter sets restored to defaults.
func (r *Registry) RegisterBuiltin(entry Entry) error {
	return r.register(entry, true)
}

func (r *Registry) register(entry Entry, builtin bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.reserved[entry.Key] {
		return &probetypes.ReservedKeyError{Key: entry.Key}
	}
	if !unicode.IsPrint(entry.Key) || entry.Key > unicode.MaxASCII {
		return &probetypes.ReservedKeyError{Key: entry.Key}
	}
	if _, exists := r.entries[entry.Key]; exists {
		return &probetypes.DuplicateKeyError{Key: entry.Key}
	}

	entry.builtin = builtin
	r.order = append(r.order, entry.Key)
	r.entries[entry.Key] = entry
	if builtin && !containsKey(r.builtinOrder, entry.Key) {
		r.builtinOrder = append(r.builtinOrder, entry.Key)
	}
	return nil
}

func containsKey(keys []rune, key rune) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

// Lookup returns the entry bound to a key.
func (r *Registry) Lookup(key rune) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.entries[key]
	if !exists {
		return Entry{}, &probetypes.UnknownKeyError{Key: key}
	}
	return entry, nil
}

// Unregister removes a binding. Built-in entries may be removed; there
// is no special protection, the user has full control of the key map.
func (r *Registry) Unregister(key rune) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.entries[key]
	if !exists {
		return &probetypes.UnknownKeyError{Key: key}
	}
	if entry.builtin {
		if r.removedBuiltins == nil {
			r.removedBuiltins = make(map[rune]Entry)
		}
		r.removedBuiltins[key] = entry
	}
	delete(r.entries, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Entries returns all bindings in registration order, for help
// listings. The returned slice is a copy.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.entries[key])
	}
	return out
}

// Len returns the number of live bindings.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// ResetAll removes every user-registered entry, restores built-ins that
// were unregistered, and resets every built-in parameter set to its
// construction-time defaults. Destructive and unconfirmed.
func (r *Registry) ResetAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, entry := range r.entries {
		if !entry.builtin {
			delete(r.entries, key)
		}
	}
	for key, entry := range r.removedBuiltins {
		if _, exists := r.entries[key]; !exists {
			r.entries[key] = entry
		}
	}
	r.removedBuiltins = nil

	// The key map comes back in the original built-in registration
	// order, not whatever order removals and re-additions left behind.
	r.order = r.order[:0]
	for _, key := range r.builtinOrder {
		entry, exists := r.entries[key]
		if !exists {
			continue
		}
		if entry.Params != nil {
			entry.Params.Reset()
		}
		r.order = append(r.order, key)
	}
}
