package hfsmc

// Spec is a read-only view over an HFSM description. It is the only
// contract the planning core depends on; how a Spec is obtained -
// decoding YAML, JSON, or anything else - is entirely the caller's
// concern (see sub-packages specyaml and specjson for two concrete
// loaders).
type Spec interface {
	// Name is the FSM's declared name, used as the default emitter
	// prefix. It may be empty.
	Name() string
	// Initial is the name of the top-level state entered by default.
	Initial() string
	// States are the FSM's top-level states, in declared order.
	States() []StateSpec
}

// StateSpec is a read-only view over one state in the tree.
type StateSpec interface {
	// Name is this state's name, unique among its siblings.
	Name() string
	// Initial is the name of the child state entered by default when
	// this state is entered without a more specific target. It is empty
	// if this state declares no nested initial (typically because it is
	// a leaf).
	Initial() string
	// Enter is the ordered list of entry-action names run when this
	// state is entered.
	Enter() []string
	// Exit is the ordered list of exit-action names run when this state
	// is exited.
	Exit() []string
	// Children are this state's nested states, in declared order.
	Children() []StateSpec
	// Transitions are this state's outgoing transitions, in declared
	// order.
	Transitions() []TransitionSpec
}

// Polarity is whether a named condition must be truthy or falsy for its
// transition to fire.
type Polarity int

const (
	// PolarityNone means the transition is unconditional; it has no
	// named condition.
	PolarityNone Polarity = iota
	// PolarityTruthy means the transition fires when the named
	// condition evaluates truthy.
	PolarityTruthy
	// PolarityFalsy means the transition fires when the named condition
	// evaluates falsy.
	PolarityFalsy
)

// History is the kind of history pseudo-state a transition targets, an
// addition over the base HFSM model (see [TransitionSpec.History]).
type History int

const (
	// HistoryNone means the transition targets its declared next state
	// directly, diving into initial sub-states as usual.
	HistoryNone History = iota
	// HistoryShallow means the transition re-enters the last active
	// direct child of the target composite state, falling back to the
	// declared initial substate if the target has never been active.
	HistoryShallow
	// HistoryDeep means the transition re-enters the last active leaf
	// descendant of the target composite state, with the same fallback.
	HistoryDeep
)

// TransitionSpec is a read-only view over one outgoing transition.
type TransitionSpec interface {
	// Event is the name of the event that triggers this transition.
	Event() string
	// Condition returns the condition name and its required polarity.
	// Condition returns ("", PolarityNone) for an unconditional
	// transition.
	Condition() (name string, polarity Polarity)
	// Actions is the ordered list of action names run when this
	// transition fires.
	Actions() []string
	// Next describes the transition's target, in decreasing order of
	// specificity: an absolute pointer ("/a/b"), a relative pointer
	// (".", "..", or a "/"-separated combination), a bare sibling name,
	// or the distinguished string "final". Next returns the empty
	// string to mean internal - no state change.
	Next() string
	// History is the history-pseudostate kind this transition targets.
	// It is meaningful only when Next does not denote an internal
	// transition; see [History].
	History() History
}
