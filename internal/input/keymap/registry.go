package keymap

import (
	"slices"

	"github.com/dshills/hotkeys/internal/input/key"
)

// Registry holds handlers bucketed by primary key code.
//
// Registry is not safe for concurrent use. Callbacks run while the
// dispatcher walks a bucket, so a mutex here would deadlock any callback
// that binds or unbinds. Bucket walks must index with At and re-check Len
// on every step.
type Registry struct {
	buckets map[key.Code][]*Handler

	// live counts non-tombstone handlers per bucket.
	live map[key.Code]int

	// tombstones counts removed slots not yet compacted.
	tombstones int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		buckets: make(map[key.Code][]*Handler),
		live:    make(map[key.Code]int),
	}
}

// Add appends h to the bucket for its primary code.
func (r *Registry) Add(h *Handler) {
	if h == nil {
		return
	}
	r.buckets[h.Code] = append(r.buckets[h.Code], h)
	r.live[h.Code]++
}

// Len returns the slot count of a bucket, tombstones included.
func (r *Registry) Len(code key.Code) int {
	return len(r.buckets[code])
}

// At returns the handler in slot i of a bucket.
// Returns nil for tombstones and out-of-range slots.
func (r *Registry) At(code key.Code, i int) *Handler {
	b := r.buckets[code]
	if i < 0 || i >= len(b) {
		return nil
	}
	return b[i]
}

// HasBucket reports whether a bucket was ever created for code.
func (r *Registry) HasBucket(code key.Code) bool {
	_, ok := r.buckets[code]
	return ok
}

// HasLive reports whether code has at least one live handler.
func (r *Registry) HasLive(code key.Code) bool {
	return r.live[code] > 0
}

// Match selects handlers for removal. Zero fields are not used as
// constraints, except Mods which always participate.
type Match struct {
	// Code is the primary key code.
	Code key.Code

	// Mods must equal the handler's declared modifiers as a set.
	Mods []key.Code

	// Scope must equal the handler's scope.
	Scope string

	// ID, when non-zero, restricts removal to one handler.
	ID HandlerID
}

// Remove tombstones every handler in m.Code's bucket that matches.
// Returns the number of handlers removed.
func (r *Registry) Remove(m Match) int {
	b, ok := r.buckets[m.Code]
	if !ok {
		return 0
	}

	removed := 0
	for i, h := range b {
		if h == nil {
			continue
		}
		if !m.ID.IsZero() && h.ID != m.ID {
			continue
		}
		if h.Scope != m.Scope || !key.SameModifierSet(h.Mods, m.Mods) {
			continue
		}
		b[i] = nil
		removed++
	}
	r.dropped(m.Code, removed)
	return removed
}

// RemoveID tombstones every handler carrying id. Handlers created by one
// bind call share an ID.
// Returns the number of handlers removed.
func (r *Registry) RemoveID(id HandlerID) int {
	removed := 0
	for code, b := range r.buckets {
		n := 0
		for i, h := range b {
			if h != nil && h.ID == id {
				b[i] = nil
				n++
			}
		}
		r.dropped(code, n)
		removed += n
	}
	return removed
}

// RemoveScope tombstones every handler bound into scope.
// Returns the number of handlers removed.
func (r *Registry) RemoveScope(scope string) int {
	removed := 0
	for code, b := range r.buckets {
		n := 0
		for i, h := range b {
			if h != nil && h.Scope == scope {
				b[i] = nil
				n++
			}
		}
		r.dropped(code, n)
		removed += n
	}
	return removed
}

// RemoveSource tombstones every handler whose Source equals source.
// Returns the number of handlers removed.
func (r *Registry) RemoveSource(source string) int {
	removed := 0
	for code, b := range r.buckets {
		n := 0
		for i, h := range b {
			if h != nil && h.Source == source {
				b[i] = nil
				n++
			}
		}
		r.dropped(code, n)
		removed += n
	}
	return removed
}

func (r *Registry) dropped(code key.Code, n int) {
	r.live[code] -= n
	r.tombstones += n
}

// Handlers returns every live handler ordered by bucket code, then by
// registration order within a bucket. The wildcard bucket sorts first.
func (r *Registry) Handlers() []*Handler {
	codes := make([]key.Code, 0, len(r.buckets))
	for code := range r.buckets {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	out := make([]*Handler, 0, r.Count())
	for _, code := range codes {
		for _, h := range r.buckets[code] {
			if h != nil {
				out = append(out, h)
			}
		}
	}
	return out
}

// Count returns the number of live handlers.
func (r *Registry) Count() int {
	n := 0
	for _, c := range r.live {
		n += c
	}
	return n
}

// Tombstones returns the number of removed slots awaiting Compact.
func (r *Registry) Tombstones() int {
	return r.tombstones
}

// Compact drops tombstones and empty buckets.
// It must not be called while a dispatch is walking a bucket.
// Returns the number of slots reclaimed.
func (r *Registry) Compact() int {
	reclaimed := r.tombstones
	for code, b := range r.buckets {
		b = slices.DeleteFunc(b, func(h *Handler) bool { return h == nil })
		if len(b) == 0 {
			delete(r.buckets, code)
			delete(r.live, code)
			continue
		}
		r.buckets[code] = b
	}
	r.tombstones = 0
	return reclaimed
}
