package hfsmc

// memSpec, memState and memTransition are minimal, literal-constructible
// implementations of Spec, StateSpec and TransitionSpec used throughout
// this package's tests. Production loaders (specyaml, specjson) implement
// the same three interfaces over decoded documents instead.

type memSpec struct {
	name    string
	initial string
	states  []StateSpec
}

func (s *memSpec) Name() string        { return s.name }
func (s *memSpec) Initial() string     { return s.initial }
func (s *memSpec) States() []StateSpec { return s.states }

type memState struct {
	name        string
	initial     string
	enter, exit []string
	children    []StateSpec
	transitions []TransitionSpec
}

func (s *memState) Name() string                 { return s.name }
func (s *memState) Initial() string               { return s.initial }
func (s *memState) Enter() []string               { return s.enter }
func (s *memState) Exit() []string                { return s.exit }
func (s *memState) Children() []StateSpec         { return s.children }
func (s *memState) Transitions() []TransitionSpec { return s.transitions }

type memTransition struct {
	event    string
	cond     string
	polarity Polarity
	actions  []string
	next     string
	history  History
}

func (t *memTransition) Event() string { return t.event }
func (t *memTransition) Condition() (string, Polarity) {
	return t.cond, t.polarity
}
func (t *memTransition) Actions() []string { return t.actions }
func (t *memTransition) Next() string      { return t.next }
func (t *memTransition) History() History  { return t.history }
