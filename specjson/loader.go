// Package specjson loads an [hfsmc.Spec] from JSON without an
// intermediate unmarshal into a whole-document tree: it walks the
// document with jsonparser's key-path and array callbacks, the same
// style jsonparser itself is built around.
package specjson

import (
	"fmt"
	"io"
	"os"

	"github.com/buger/jsonparser"

	"github.com/mbrt/hfsmc"
)

// Load decodes a single JSON document from r into an [hfsmc.Spec].
func Load(r io.Reader) (hfsmc.Spec, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

// LoadFile reads path and decodes it as an [hfsmc.Spec].
func LoadFile(path string) (hfsmc.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

func parse(data []byte) (hfsmc.Spec, error) {
	name, _ := jsonparser.GetString(data, "name")
	initial, err := jsonparser.GetString(data, "initial")
	if err != nil {
		return nil, fmt.Errorf("specjson: reading \"initial\": %w", err)
	}
	states, err := parseStates(data, "states")
	if err != nil {
		return nil, err
	}
	return &jsonSpec{name: name, initial: initial, states: states}, nil
}

type jsonSpec struct {
	name, initial string
	states        []hfsmc.StateSpec
}

func (s *jsonSpec) Name() string              { return s.name }
func (s *jsonSpec) Initial() string           { return s.initial }
func (s *jsonSpec) States() []hfsmc.StateSpec { return s.states }

type jsonState struct {
	name, initial string
	enter, exit   []string
	children      []hfsmc.StateSpec
	transitions   []hfsmc.TransitionSpec
}

func (s *jsonState) Name() string                       { return s.name }
func (s *jsonState) Initial() string                     { return s.initial }
func (s *jsonState) Enter() []string                     { return s.enter }
func (s *jsonState) Exit() []string                      { return s.exit }
func (s *jsonState) Children() []hfsmc.StateSpec         { return s.children }
func (s *jsonState) Transitions() []hfsmc.TransitionSpec { return s.transitions }

type jsonTransition struct {
	event, condName string
	polarity        hfsmc.Polarity
	actions         []string
	next            string
	history         hfsmc.History
}

func (t *jsonTransition) Event() string { return t.event }
func (t *jsonTransition) Condition() (string, hfsmc.Polarity) {
	return t.condName, t.polarity
}
func (t *jsonTransition) Actions() []string      { return t.actions }
func (t *jsonTransition) Next() string           { return t.next }
func (t *jsonTransition) History() hfsmc.History { return t.history }

func parseState(data []byte) (hfsmc.StateSpec, error) {
	name, err := jsonparser.GetString(data, "name")
	if err != nil {
		return nil, fmt.Errorf("specjson: state missing \"name\": %w", err)
	}
	initial, _ := jsonparser.GetString(data, "initial")
	enter, err := parseStrings(data, "enter")
	if err != nil {
		return nil, err
	}
	exit, err := parseStrings(data, "exit")
	if err != nil {
		return nil, err
	}
	children, err := parseStates(data, "children")
	if err != nil {
		return nil, err
	}
	transitions, err := parseTransitions(data, "transitions")
	if err != nil {
		return nil, err
	}
	return &jsonState{
		name: name, initial: initial,
		enter: enter, exit: exit,
		children: children, transitions: transitions,
	}, nil
}

func parseStates(data []byte, keys ...string) ([]hfsmc.StateSpec, error) {
	var states []hfsmc.StateSpec
	var walkErr error
	_, err := jsonparser.ArrayEach(data, func(value []byte, _ jsonparser.ValueType, _ int, iterErr error) {
		if walkErr != nil {
			return
		}
		if iterErr != nil {
			walkErr = iterErr
			return
		}
		st, err := parseState(value)
		if err != nil {
			walkErr = err
			return
		}
		states = append(states, st)
	}, keys...)
	if err != nil && err != jsonparser.KeyPathNotFoundError {
		return nil, fmt.Errorf("specjson: %w", err)
	}
	return states, walkErr
}

func parseStrings(data []byte, keys ...string) ([]string, error) {
	var out []string
	var walkErr error
	_, err := jsonparser.ArrayEach(data, func(value []byte, _ jsonparser.ValueType, _ int, iterErr error) {
		if walkErr != nil {
			return
		}
		if iterErr != nil {
			walkErr = iterErr
			return
		}
		s, err := jsonparser.ParseString(value)
		if err != nil {
			walkErr = err
			return
		}
		out = append(out, s)
	}, keys...)
	if err != nil && err != jsonparser.KeyPathNotFoundError {
		return nil, fmt.Errorf("specjson: %w", err)
	}
	return out, walkErr
}

func parseTransitions(data []byte, keys ...string) ([]hfsmc.TransitionSpec, error) {
	var out []hfsmc.TransitionSpec
	var walkErr error
	_, err := jsonparser.ArrayEach(data, func(value []byte, _ jsonparser.ValueType, _ int, iterErr error) {
		if walkErr != nil {
			return
		}
		if iterErr != nil {
			walkErr = iterErr
			return
		}
		t, err := parseTransition(value)
		if err != nil {
			walkErr = err
			return
		}
		out = append(out, t)
	}, keys...)
	if err != nil && err != jsonparser.KeyPathNotFoundError {
		return nil, fmt.Errorf("specjson: %w", err)
	}
	return out, walkErr
}

func parseTransition(data []byte) (hfsmc.TransitionSpec, error) {
	event, err := jsonparser.GetString(data, "event")
	if err != nil {
		return nil, fmt.Errorf("specjson: transition missing \"event\": %w", err)
	}
	next, _ := jsonparser.GetString(data, "next")
	actions, err := parseStrings(data, "actions")
	if err != nil {
		return nil, err
	}

	condName := ""
	polarity := hfsmc.PolarityNone
	if condRaw, dataType, _, err := jsonparser.Get(data, "condition"); err == nil && dataType == jsonparser.Object {
		condName, _ = jsonparser.GetString(condRaw, "name")
		p, _ := jsonparser.GetString(condRaw, "polarity")
		if p == "falsy" {
			polarity = hfsmc.PolarityFalsy
		} else {
			polarity = hfsmc.PolarityTruthy
		}
	}

	historyStr, _ := jsonparser.GetString(data, "history")
	return &jsonTransition{
		event: event, condName: condName, polarity: polarity,
		actions: actions, next: next, history: parseHistory(historyStr),
	}, nil
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
