// Package specyaml loads an [hfsmc.Spec] from YAML, the default input
// format for the hfsmc command line tool.
package specyaml

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mbrt/hfsmc"
)

// Load decodes a single YAML document from r into an [hfsmc.Spec].
func Load(r io.Reader) (hfsmc.Spec, error) {
	var d doc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("specyaml: %w", err)
	}
	return &d, nil
}

// LoadFile opens path and decodes it as an [hfsmc.Spec].
func LoadFile(path string) (hfsmc.Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// doc is the top-level YAML document shape. Its fields carry an "FSM"
// prefix so they don't collide with the Spec method names it implements.
type doc struct {
	FSMName    string      `yaml:"name"`
	FSMInitial string      `yaml:"initial"`
	FSMStates  []*stateDoc `yaml:"states"`
}

func (d *doc) Name() string    { return d.FSMName }
func (d *doc) Initial() string { return d.FSMInitial }
func (d *doc) States() []hfsmc.StateSpec {
	out := make([]hfsmc.StateSpec, len(d.FSMStates))
	for i, s := range d.FSMStates {
		out[i] = s
	}
	return out
}

type stateDoc struct {
	StateName        string           `yaml:"name"`
	StateInitial     string           `yaml:"initial"`
	StateEnter       []string         `yaml:"enter"`
	StateExit        []string         `yaml:"exit"`
	StateChildren    []*stateDoc      `yaml:"children"`
	StateTransitions []*transitionDoc `yaml:"transitions"`
}

func (s *stateDoc) Name() string    { return s.StateName }
func (s *stateDoc) Initial() string { return s.StateInitial }
func (s *stateDoc) Enter() []string { return s.StateEnter }
func (s *stateDoc) Exit() []string  { return s.StateExit }
func (s *stateDoc) Children() []hfsmc.StateSpec {
	out := make([]hfsmc.StateSpec, len(s.StateChildren))
	for i, c := range s.StateChildren {
		out[i] = c
	}
	return out
}
func (s *stateDoc) Transitions() []hfsmc.TransitionSpec {
	out := make([]hfsmc.TransitionSpec, len(s.StateTransitions))
	for i, t := range s.StateTransitions {
		out[i] = t
	}
	return out
}

type conditionDoc struct {
	Name     string `yaml:"name"`
	Polarity string `yaml:"polarity"`
}

type transitionDoc struct {
	TransEvent     string        `yaml:"event"`
	TransCondition *conditionDoc `yaml:"condition"`
	TransActions   []string      `yaml:"actions"`
	TransNext      string        `yaml:"next"`
	TransHistory   string        `yaml:"history"`
}

func (t *transitionDoc) Event() string { return t.TransEvent }
func (t *transitionDoc) Condition() (string, hfsmc.Polarity) {
	if t.TransCondition == nil {
		return "", hfsmc.PolarityNone
	}
	return t.TransCondition.Name, parsePolarity(t.TransCondition.Polarity)
}
func (t *transitionDoc) Actions() []string      { return t.TransActions }
func (t *transitionDoc) Next() string           { return t.TransNext }
func (t *transitionDoc) History() hfsmc.History { return parseHistory(t.TransHistory) }

func parsePolarity(s string) hfsmc.Polarity {
	switch s {
	case "falsy":
		return hfsmc.PolarityFalsy
	default:
		return hfsmc.PolarityTruthy
	}
}

func parseHistory(s string) hfsmc.History {
	switch s {
	case "shallow":
		return hfsmc.HistoryShallow
	case "deep":
		return hfsmc.HistoryDeep
	default:
		return hfsmc.HistoryNone
	}
}
