package hfsmc

import "sort"

// ParentOf returns the absolute pointer of pointer's parent state, and
// true if pointer is indexed. A top-level state's parent is "" with ok
// true; ok is false only if pointer was never part of the compiled FSM.
func (p *Plan) ParentOf(pointer string) (parent string, ok bool) {
	entry := p.idx.get(pointer)
	if entry == nil {
		return "", false
	}
	return entry.parent, true
}

// Children returns the absolute pointers of pointer's immediate child
// states, sorted. The empty pointer "" yields the top-level states. A leaf
// state, or any other unindexed pointer, has no children.
func (p *Plan) Children(pointer string) []string {
	var children []string
	for _, candidate := range p.idx.Pointers() {
		entry := p.idx.get(candidate)
		if entry.parent == pointer {
			children = append(children, candidate)
		}
	}
	sort.Strings(children)
	return children
}

// InitialChild returns the absolute pointer of pointer's own declared
// initial child, one level down, and true if pointer is a composite
// state with an initial state. It returns false for a leaf state or an
// unindexed pointer; unlike [Plan.InitialOf], it does not descend past
// the first level.
func (p *Plan) InitialChild(pointer string) (string, bool) {
	entry := p.idx.get(pointer)
	if entry == nil || entry.spec.Initial() == "" {
		return "", false
	}
	path, err := pathOf(pointer)
	if err != nil {
		return "", false
	}
	child, err := pointerOf(append(path, entry.spec.Initial()))
	if err != nil {
		return "", false
	}
	return child, true
}

// IsLeaf reports whether pointer is an indexed state with no children.
func (p *Plan) IsLeaf(pointer string) bool {
	return p.idx.Has(pointer) && len(p.Children(pointer)) == 0
}

// EnterActions returns pointer's own entry actions, in declaration
// order, or nil if pointer has none or is not indexed.
func (p *Plan) EnterActions(pointer string) []string {
	entry := p.idx.get(pointer)
	if entry == nil {
		return nil
	}
	return entry.spec.Enter()
}

// ExitActions returns pointer's own exit actions, in declaration order,
// or nil if pointer has none or is not indexed.
func (p *Plan) ExitActions(pointer string) []string {
	entry := p.idx.get(pointer)
	if entry == nil {
		return nil
	}
	return entry.spec.Exit()
}
