package hfsmc

// StepKind distinguishes the two kinds of [Step] a [Plan] is built from.
type StepKind uint8

const (
	// ActionsStep runs an ordered list of named actions. The list may
	// be empty; it is still emitted, marking an observable boundary in
	// the plan (see spec design note on empty action steps).
	ActionsStep StepKind = iota
	// StateStep records the FSM's new current state - an absolute
	// pointer, or the terminal state when Step.Terminal is set.
	StateStep
)

// Step is the atomic unit of a transition plan.
type Step struct {
	Kind StepKind
	// Actions is meaningful when Kind == ActionsStep.
	Actions []string
	// State is the absolute pointer entered or exited, meaningful when
	// Kind == StateStep and Terminal is false.
	State string
	// Terminal is true when Kind == StateStep and this step leaves the
	// FSM entirely (a "final" transition out of the top level).
	Terminal bool
}

func actionsStep(actions []string) Step { return Step{Kind: ActionsStep, Actions: actions} }
func stateStep(pointer string) Step     { return Step{Kind: StateStep, State: pointer} }
func terminalStateStep() Step           { return Step{Kind: StateStep, Terminal: true} }

// Alternative is one conditional or unconditional way of handling an
// event in a given source state.
type Alternative struct {
	// Condition is the guarding condition's name, or "" if Polarity is
	// PolarityNone (unconditional).
	Condition string
	Polarity  Polarity
	// Steps is the ordered step list implementing this alternative.
	Steps []Step
	// History and HistoryTarget annotate an alternative whose target
	// was declared with a history kind (see [History]). HistoryTarget
	// is the composite state the history applies to, resolved before
	// diving into any initial sub-state; it is "" when History is
	// HistoryNone. Steps is always populated with the default path (as
	// if History were HistoryNone) so an emitter that ignores history
	// support still produces a correct, if less faithful, plan.
	History       History
	HistoryTarget string
}

// initialOf descends through declared initial-substate links starting at
// pointer, returning the deepest descendant reached - a state with no
// declared initial, i.e. a leaf of the "enter by default" chain. It fails
// with BadPointer if pointer, or any state along the chain, is not
// indexed.
func initialOf(idx *Index, pointer string) (string, error) {
	if !idx.Has(pointer) {
		return "", &BadPointer{Pointer: pointer, Reason: "not an indexed state"}
	}
	current := pointer
	for {
		entry := idx.get(current)
		name := entry.spec.Initial()
		if name == "" {
			return current, nil
		}
		next := current + "/" + name
		if !idx.Has(next) {
			return "", &BadPointer{Pointer: next, Reason: "not an indexed state"}
		}
		current = next
	}
}

// isPrefixOf reports whether path equals of truncated to len(path).
func isPrefixOf(path, of []string) bool {
	if len(path) > len(of) {
		return false
	}
	for i, name := range path {
		if of[i] != name {
			return false
		}
	}
	return true
}

func pathsEqual(a, b []string) bool {
	return len(a) == len(b) && isPrefixOf(a, b)
}

// exitSteps returns the exit-phase steps for a transition leaving src.
// When dstValid is false, every state up to and including the top level
// is exited (a "final" transition at the top level, bound for terminal).
func exitSteps(idx *Index, src string, dst string, dstValid bool) []Step {
	if dstValid && src == dst {
		entry := idx.get(src)
		return []Step{actionsStep(entry.spec.Exit()), stateStep(src)}
	}
	srcPath, _ := pathOf(src)
	var dstPath []string
	if dstValid {
		dstPath, _ = pathOf(dst)
	}
	path := append([]string(nil), srcPath...)
	var steps []Step
	for !isPrefixOf(path, dstPath) {
		pointer, _ := pointerOf(path)
		path = path[:len(path)-1]
		entry := idx.get(pointer)
		steps = append(steps, actionsStep(entry.spec.Exit()), stateStep(pointer))
	}
	return steps
}

// enterSteps returns the enter-phase steps for a transition arriving at
// dst. When srcValid is false, this is the FSM's initial transition:
// every state from the top down to dst is entered.
func enterSteps(idx *Index, src string, srcValid bool, dst string) []Step {
	if srcValid && src == dst {
		entry := idx.get(dst)
		return []Step{stateStep(dst), actionsStep(entry.spec.Enter())}
	}
	var srcPath []string
	if srcValid {
		srcPath, _ = pathOf(src)
	}
	dstPath, _ := pathOf(dst)
	path := append([]string(nil), srcPath...)
	for !isPrefixOf(path, dstPath) {
		path = path[:len(path)-1]
	}
	var steps []Step
	if pathsEqual(path, dstPath) {
		pointer, _ := pointerOf(path)
		steps = append(steps, stateStep(pointer))
		return steps
	}
	for !pathsEqual(path, dstPath) {
		path = append(path, dstPath[len(path)])
		pointer, _ := pointerOf(path)
		entry := idx.get(pointer)
		steps = append(steps, stateStep(pointer), actionsStep(entry.spec.Enter()))
	}
	return steps
}

// planInitial produces the step list that enters the FSM from nothing
// into the deepest initial descendant of the root-declared initial state.
func planInitial(idx *Index, rootInitial string) ([]Step, error) {
	rootPointer, err := pointerOf([]string{rootInitial})
	if err != nil {
		return nil, err
	}
	if !idx.Has(rootPointer) {
		return nil, &BadState{Kind: "initial state", Of: "FSM", Value: rootInitial}
	}
	dst, err := initialOf(idx, rootPointer)
	if err != nil {
		return nil, err
	}
	return enterSteps(idx, "", false, dst), nil
}

// planOneTransition computes the step list (and, for a history-tagged
// transition, the composite target before diving into its initial
// sub-state) for transition t, declared in the state at context, firing
// while the FSM is in state src.
func planOneTransition(idx *Index, t TransitionSpec, context string, src string) ([]Step, string, error) {
	next := t.Next()
	if next == "" {
		// internal transition: never leave the current state
		return []Step{actionsStep(t.Actions())}, "", nil
	}
	resolved, err := resolve(next, context)
	if err != nil {
		return nil, "", err
	}
	if resolved == terminal {
		steps := exitSteps(idx, src, "", false)
		steps = append(steps, terminalStateStep())
		steps = append(steps, actionsStep(t.Actions()))
		return steps, "", nil
	}
	historyTarget := ""
	if t.History() != HistoryNone {
		historyTarget = resolved
	}
	dst, err := initialOf(idx, resolved)
	if err != nil {
		return nil, "", err
	}
	steps := exitSteps(idx, src, dst, true)
	steps = append(steps, actionsStep(t.Actions()))
	steps = append(steps, enterSteps(idx, src, true, dst)...)
	return steps, historyTarget, nil
}

// planTransitions computes every alternative way event is handled while
// the FSM is in state src: nearest-ancestor transitions first, most
// specific first within a state, truncating the list at the first
// unconditional match.
func planTransitions(idx *Index, event string, src string) ([]Alternative, error) {
	path, err := pathOf(src)
	if err != nil {
		return nil, err
	}
	var result []Alternative
	for len(path) > 0 {
		context, err := pointerOf(path)
		if err != nil {
			return nil, err
		}
		entry := idx.get(context)
		if entry == nil {
			return nil, &BadPointer{Pointer: context, Reason: "not an indexed state"}
		}
		for _, t := range entry.spec.Transitions() {
			if t.Event() != event {
				continue
			}
			steps, historyTarget, err := planOneTransition(idx, t, context, src)
			if err != nil {
				return nil, err
			}
			name, polarity := t.Condition()
			result = append(result, Alternative{
				Condition:     name,
				Polarity:      polarity,
				Steps:         steps,
				History:       t.History(),
				HistoryTarget: historyTarget,
			})
			if polarity == PolarityNone {
				return result, nil
			}
		}
		path = path[:len(path)-1]
	}
	return result, nil
}
