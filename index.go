package hfsmc

import (
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// indexEntry records what the index knows about one state beyond its
// StateSpec: the absolute pointer of its parent, empty for a top-level
// state.
type indexEntry struct {
	spec   StateSpec
	parent string
}

// Index is the flattened, addressable view of an HFSM's state tree: every
// state reachable from the spec, keyed by its canonical absolute pointer,
// in pre-order traversal order, alongside the sorted sets of event,
// condition and action names used anywhere in the FSM.
//
// Index is built once per compilation by [buildIndex] and never mutated
// afterwards.
type Index struct {
	states     *orderedmap.OrderedMap[string, *indexEntry]
	events     map[string]struct{}
	conditions map[string]struct{}
	actions    map[string]struct{}
}

// buildIndex walks spec's state tree in pre-order, assigning each state
// its canonical absolute pointer and recording parent/child relationships.
// It returns DuplicateState if two sibling states share a name.
func buildIndex(spec Spec) (*Index, error) {
	idx := &Index{
		states:     orderedmap.New[string, *indexEntry](),
		events:     map[string]struct{}{},
		conditions: map[string]struct{}{},
		actions:    map[string]struct{}{},
	}
	var walk func(states []StateSpec, path []string) error
	walk = func(states []StateSpec, path []string) error {
		for _, st := range states {
			path = append(path, st.Name())
			pointer, err := pointerOf(path)
			if err != nil {
				return err
			}
			if _, present := idx.states.Get(pointer); present {
				return &DuplicateState{Pointer: pointer}
			}
			parent := ""
			if len(path) > 1 {
				parent, err = pointerOf(path[:len(path)-1])
				if err != nil {
					return err
				}
			}
			idx.states.Set(pointer, &indexEntry{spec: st, parent: parent})
			for _, a := range st.Enter() {
				idx.actions[a] = struct{}{}
			}
			for _, a := range st.Exit() {
				idx.actions[a] = struct{}{}
			}
			for _, t := range st.Transitions() {
				idx.events[t.Event()] = struct{}{}
				if name, polarity := t.Condition(); polarity != PolarityNone {
					idx.conditions[name] = struct{}{}
				}
				for _, a := range t.Actions() {
					idx.actions[a] = struct{}{}
				}
			}
			if err := walk(st.Children(), path); err != nil {
				return err
			}
			path = path[:len(path)-1]
		}
		return nil
	}
	if err := walk(spec.States(), nil); err != nil {
		return nil, err
	}
	return idx, nil
}

// get returns the entry for pointer, or nil if pointer is not indexed.
func (idx *Index) get(pointer string) *indexEntry {
	entry, present := idx.states.Get(pointer)
	if !present {
		return nil
	}
	return entry
}

// Has reports whether pointer is an indexed state.
func (idx *Index) Has(pointer string) bool {
	return idx.get(pointer) != nil
}

// Pointers returns every indexed absolute state pointer, in pre-order
// traversal (insertion) order.
func (idx *Index) Pointers() []string {
	pointers := make([]string, 0, idx.states.Len())
	for pair := idx.states.Oldest(); pair != nil; pair = pair.Next() {
		pointers = append(pointers, pair.Key)
	}
	return pointers
}

// SortedPointers returns every indexed absolute state pointer in
// lexicographic order, the form emitters consume per the planning
// contract's "stable sorted order" requirement.
func (idx *Index) SortedPointers() []string {
	pointers := idx.Pointers()
	sort.Strings(pointers)
	return pointers
}

// Events returns every event name used anywhere in the FSM, sorted.
func (idx *Index) Events() []string { return sortedKeys(idx.events) }

// Conditions returns every condition name used anywhere in the FSM,
// sorted.
func (idx *Index) Conditions() []string { return sortedKeys(idx.conditions) }

// Actions returns every entry-, exit-, and transition-action name used
// anywhere in the FSM, sorted.
func (idx *Index) Actions() []string { return sortedKeys(idx.actions) }

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
