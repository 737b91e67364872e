// Package mirror keeps a preview camera's filter stack in step with the main
// camera's.
package mirror

import "raymarch-renderer/internal/hook"

// Filter is a post-process component that can be mirrored.
type Filter interface {
	hook.Hook
	// Kind identifies the filter type; stacks are matched by kind per position.
	Kind() string
	Enabled() bool
	SetEnabled(bool)
	// CopyFrom copies all configuration, including the enabled flag, from src.
	// src has the same Kind.
	CopyFrom(src Filter) error
	Clone() Filter
}

type entry struct {
	filter  Filter
	changed bool
}

// Stack is an ordered list of filters with per-entry change tracking.
type Stack struct {
	entries []entry
}

func NewStack(filters ...Filter) *Stack {
	s := &Stack{}
	for _, f := range filters {
		s.Add(f)
	}
	return s
}

// Add appends f. New entries start unchanged.
func (s *Stack) Add(f Filter) {
	s.entries = append(s.entries, entry{filter: f})
}

func (s *Stack) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

func (s *Stack) At(i int) Filter {
	return s.entries[i].filter
}

// Filters returns the filters in order.
func (s *Stack) Filters() []Filter {
	if s == nil {
		return nil
	}
	out := make([]Filter, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.filter
	}
	return out
}

// MarkChanged flags entry i as edited since the last sync.
func (s *Stack) MarkChanged(i int) {
	s.entries[i].changed = true
}

// Changed reports whether entry i is flagged.
func (s *Stack) Changed(i int) bool {
	return s.entries[i].changed
}
