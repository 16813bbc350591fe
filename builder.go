package hfsmc

import (
	"fmt"
	"log"
	"strings"
)

// Plan is the language-neutral artifact a [Builder] produces: the
// flattened, sorted sets an emitter needs, plus the initial transition and
// every (event, source-state) transition plan.
type Plan struct {
	// States is every indexed absolute state pointer, sorted.
	States []string
	// Events, Conditions, Actions are every name of that kind used
	// anywhere in the FSM, sorted.
	Events     []string
	Conditions []string
	Actions    []string
	// InitialState is the deepest initial descendant of the FSM's
	// declared root initial state.
	InitialState string
	// Initial is the step list entering the FSM from nothing.
	Initial []Step

	byEventBySrc map[string]map[string][]Alternative
	idx          *Index
}

// InitialOf returns the deepest initial descendant of pointer, the same
// operation the planner itself uses to dive into composite states. It is
// exposed for emitters that need to resolve a state's effective entry
// point independently of any one transition's plan.
func (p *Plan) InitialOf(pointer string) (string, error) {
	return initialOf(p.idx, pointer)
}

// Transitions returns the planned alternatives for event observed in
// state src, or nil if src never handles event. The returned slice is the
// same one stored in the plan; callers must not mutate it.
func (p *Plan) Transitions(event, src string) []Alternative {
	bySrc, ok := p.byEventBySrc[event]
	if !ok {
		return nil
	}
	return bySrc[src]
}

// Builder orchestrates a single compilation: index the spec, check its
// integrity, then plan the initial transition and every (event, state)
// pair. A Builder holds no state between calls to Build - each call
// starts clean, per the planning contract's re-entrancy requirement.
type Builder struct {
	// Logger receives a trace of each compilation phase when non-nil.
	// It defaults to nil (no diagnostics).
	Logger *log.Logger
}

// NewBuilder returns a Builder with diagnostics disabled.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) logf(format string, args ...any) {
	if b.Logger != nil {
		b.Logger.Printf(format, args...)
	}
}

// Build indexes, checks, and plans spec, returning the resulting Plan or
// the first error encountered.
func (b *Builder) Build(spec Spec) (*Plan, error) {
	idx, err := buildIndex(spec)
	if err != nil {
		return nil, err
	}
	b.logf("indexed %d state(s), %d event(s), %d condition(s), %d action(s)",
		len(idx.Pointers()), len(idx.Events()), len(idx.Conditions()), len(idx.Actions()))

	if err := checkIntegrity(spec, idx); err != nil {
		return nil, err
	}
	b.logf("integrity check passed")

	rootPointer, err := pointerOf([]string{spec.Initial()})
	if err != nil {
		return nil, err
	}
	initialState, err := initialOf(idx, rootPointer)
	if err != nil {
		return nil, err
	}
	initialSteps, err := planInitial(idx, spec.Initial())
	if err != nil {
		return nil, err
	}
	b.logf("initial transition plans to %s", initialState)

	plan := &Plan{
		States:       idx.SortedPointers(),
		Events:       idx.Events(),
		Conditions:   idx.Conditions(),
		Actions:      idx.Actions(),
		InitialState: initialState,
		Initial:      initialSteps,
		byEventBySrc: map[string]map[string][]Alternative{},
		idx:          idx,
	}
	for _, event := range plan.Events {
		bySrc := map[string][]Alternative{}
		for _, src := range plan.States {
			alts, err := planTransitions(idx, event, src)
			if err != nil {
				return nil, err
			}
			if len(alts) > 0 {
				bySrc[src] = alts
			}
		}
		if len(bySrc) > 0 {
			plan.byEventBySrc[event] = bySrc
		}
	}
	b.logf("planned %d event(s) across %d state(s)", len(plan.Events), len(plan.States))
	return plan, nil
}

// PointerToPath splits an absolute state pointer into its component
// names. It is exposed for emitters that need to render a pointer in a
// target language's own addressing scheme.
func PointerToPath(pointer string) ([]string, error) {
	return pathOf(pointer)
}

// PathToPointer joins a path of state names into a canonical absolute
// state pointer.
func PathToPointer(path []string) (string, error) {
	return pointerOf(path)
}

// StateName returns the last segment of an absolute state pointer, the
// name an emitter would typically use for a generated identifier.
func StateName(pointer string) (string, error) {
	path, err := pathOf(pointer)
	if err != nil {
		return "", err
	}
	return path[len(path)-1], nil
}

// String renders a Step for debugging; it is not part of the emitter
// contract, which consumes Step's fields directly.
func (s Step) String() string {
	if s.Kind == ActionsStep {
		return fmt.Sprintf("actions(%s)", strings.Join(s.Actions, ";"))
	}
	if s.Terminal {
		return "state(terminal)"
	}
	return fmt.Sprintf("state(%s)", s.State)
}
