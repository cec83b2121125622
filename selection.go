package alder

import "sort"

// Selection tracks the selected element IDs of a Graph. Every effective
// mutation emits EventSelectionChange with a SelectionState payload naming
// what was added, what was removed, and the resulting set; mutations that
// change nothing emit nothing.
type Selection struct {
	bus   *Emitter[GraphEvent]
	items map[string]struct{}
}

func newSelection(bus *Emitter[GraphEvent]) *Selection {
	return &Selection{
		bus:   bus,
		items: make(map[string]struct{}),
	}
}

// Has reports whether id is selected.
func (s *Selection) Has(id string) bool {
	_, ok := s.items[id]
	return ok
}

// Len reports the number of selected IDs.
func (s *Selection) Len() int {
	return len(s.items)
}

// Items returns the selected IDs as a sorted copy.
func (s *Selection) Items() []string {
	ids := make([]string, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Replace sets the selection to exactly ids, reporting the delta from the
// previous set.
func (s *Selection) Replace(ids ...string) {
	next := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		next[id] = struct{}{}
	}

	var added, removed []string
	for id := range next {
		if _, ok := s.items[id]; !ok {
			added = append(added, id)
		}
	}
	for id := range s.items {
		if _, ok := next[id]; !ok {
			removed = append(removed, id)
		}
	}
	if len(added) == 0 && len(removed) == 0 {
		return
	}
	s.items = next
	s.emitChange(added, removed)
}

// Add selects the given ids, keeping the rest of the selection.
func (s *Selection) Add(ids ...string) {
	var added []string
	for _, id := range ids {
		if _, ok := s.items[id]; !ok {
			s.items[id] = struct{}{}
			added = append(added, id)
		}
	}
	if len(added) == 0 {
		return
	}
	s.emitChange(added, nil)
}

// Remove deselects the given ids.
func (s *Selection) Remove(ids ...string) {
	var removed []string
	for _, id := range ids {
		if _, ok := s.items[id]; ok {
			delete(s.items, id)
			removed = append(removed, id)
		}
	}
	if len(removed) == 0 {
		return
	}
	s.emitChange(nil, removed)
}

// Toggle flips the selection state of id.
func (s *Selection) Toggle(id string) {
	if s.Has(id) {
		s.Remove(id)
	} else {
		s.Add(id)
	}
}

// Clear deselects everything.
func (s *Selection) Clear() {
	s.Replace()
}

func (s *Selection) emitChange(added, removed []string) {
	if s.bus == nil {
		return
	}
	sort.Strings(added)
	sort.Strings(removed)
	s.bus.Emit(EventSelectionChange, SelectionState{
		Added:   added,
		Removed: removed,
		Current: s.Items(),
	})
}
