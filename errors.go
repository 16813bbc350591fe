package hfsmc

import "fmt"

// BadPointer reports that a pointer string did not match the required
// absolute- or relative-state-pointer grammar, or that resolving one
// produced a pointer not present in the state index.
type BadPointer struct {
	Pointer string
	Reason  string
}

func (e *BadPointer) Error() string {
	return fmt.Sprintf("bad pointer %q: %s", e.Pointer, e.Reason)
}

// BadPath reports that a path (a slice of state names) cannot be rendered
// as an absolute state pointer: it is empty, or its first segment begins
// with ".".
type BadPath struct {
	Path []string
}

func (e *BadPath) Error() string {
	return fmt.Sprintf("bad path %v: cannot form an absolute state pointer", e.Path)
}

// BadState reports that a state referenced by name does not exist: the
// FSM's declared initial state, a state's declared nested initial, or a
// transition's resolved target.
type BadState struct {
	Kind  string // "initial state", "nested initial state", "next state"
	Of    string // what it is a kind of: "FSM", or "state %q", or "transition from state %q"
	Value string // the offending value
}

func (e *BadState) Error() string {
	return fmt.Sprintf("%s %q of %s is not a defined state", e.Kind, e.Value, e.Of)
}

// DuplicateState reports that two sibling states share a name, discovered
// while indexing the state tree.
type DuplicateState struct {
	Pointer string
}

func (e *DuplicateState) Error() string {
	return fmt.Sprintf("duplicate state %s", e.Pointer)
}

// MissingPrefix reports that the spec has no name and the caller did not
// supply a prefix override.
type MissingPrefix struct{}

func (e *MissingPrefix) Error() string {
	return "FSM has no name: must supply a prefix"
}
