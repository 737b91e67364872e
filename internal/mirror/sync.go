package mirror

import (
	"fmt"
	"sync"
)

// Result describes what a Sync did.
type Result struct {
	Recreated bool
	Copied    []int // indices copied in place
}

// Sync brings preview in line with main. If the stacks differ in length or in
// kind at any position, preview is rebuilt from clones of main. Otherwise
// every main entry that changed, or whose enabled flag differs from its
// preview counterpart, is copied over and its change flag cleared.
func Sync(main, preview *Stack) (Result, error) {
	if needsRecreate(main, preview) {
		recreate(main, preview)
		return Result{Recreated: true}, nil
	}

	var res Result
	for i := range main.entries {
		src := &main.entries[i]
		dst := preview.entries[i].filter
		if !src.changed && dst.Enabled() == src.filter.Enabled() {
			continue
		}
		if err := dst.CopyFrom(src.filter); err != nil {
			return res, fmt.Errorf("mirror: copy %s[%d]: %w", src.filter.Kind(), i, err)
		}
		src.changed = false
		res.Copied = append(res.Copied, i)
	}
	return res, nil
}

func needsRecreate(main, preview *Stack) bool {
	if len(main.entries) != len(preview.entries) {
		return true
	}
	for i := range main.entries {
		if main.entries[i].filter.Kind() != preview.entries[i].filter.Kind() {
			return true
		}
	}
	return false
}

func recreate(main, preview *Stack) {
	entries := make([]entry, len(main.entries))
	for i := range main.entries {
		entries[i] = entry{filter: main.entries[i].filter.Clone()}
		main.entries[i].changed = false
	}
	preview.entries = entries
}

// Observer is notified once per layout pass.
type Observer interface {
	Layout() error
}

// Registry holds observers installed from an explicit initialization point.
type Registry struct {
	mu        sync.Mutex
	observers []Observer
}

func (r *Registry) Register(o Observer) {
	r.mu.Lock()
	r.observers = append(r.observers, o)
	r.mu.Unlock()
}

// Notify runs every observer in registration order and stops at the first error.
func (r *Registry) Notify() error {
	r.mu.Lock()
	obs := append([]Observer(nil), r.observers...)
	r.mu.Unlock()
	for _, o := range obs {
		if err := o.Layout(); err != nil {
			return err
		}
	}
	return nil
}

// Mirror syncs a preview stack from a main stack on every layout pass. A nil
// Main (no main camera) is a no-op.
type Mirror struct {
	Main    *Stack
	Preview *Stack

	Last Result
}

func (m *Mirror) Layout() error {
	if m.Main == nil || m.Preview == nil {
		return nil
	}
	res, err := Sync(m.Main, m.Preview)
	m.Last = res
	return err
}
