// Package plantuml renders a compiled [hfsmc.Plan] as a PlantUML state
// diagram, in the style of dragomit/hsm's DiagramBuilder but driven
// entirely by the plan rather than a live state machine object graph.
package plantuml

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mbrt/hfsmc"
)

type edge struct {
	srcAlias, dstAlias string
	history            hfsmc.History
}

// Emit renders plan as a complete PlantUML document.
func Emit(plan *hfsmc.Plan) (string, error) {
	aliases := make(map[string]string, len(plan.States))
	for i, pointer := range plan.States {
		aliases[pointer] = fmt.Sprintf("st%d", i)
	}

	e := &emitter{plan: plan, aliases: aliases}

	var top strings.Builder
	top.WriteString("@startuml\n\n")
	for _, pointer := range plan.Children("") {
		if err := e.dumpState(&top, 0, pointer); err != nil {
			return "", err
		}
	}
	top.WriteString(e.trans.String())
	top.WriteString("\n@enduml\n")
	return top.String(), nil
}

type emitter struct {
	plan    *hfsmc.Plan
	aliases map[string]string
	trans   strings.Builder
}

func (e *emitter) dumpState(bld *strings.Builder, indent int, pointer string) error {
	prefix := strings.Repeat("   ", indent)
	name, err := hfsmc.StateName(pointer)
	if err != nil {
		return err
	}
	alias := e.aliases[pointer]
	fmt.Fprintf(bld, "%sstate %q as %s", prefix, name, alias)

	children := e.plan.Children(pointer)
	if len(children) > 0 {
		bld.WriteString(" {\n")
		for _, child := range children {
			if err := e.dumpState(bld, indent+1, child); err != nil {
				return err
			}
		}
		bld.WriteString(prefix)
		bld.WriteString("}")
	}
	bld.WriteString("\n")

	for _, action := range e.plan.EnterActions(pointer) {
		fmt.Fprintf(bld, "%s%s : entry / %s\n", prefix, alias, action)
	}
	for _, action := range e.plan.ExitActions(pointer) {
		fmt.Fprintf(bld, "%s%s : exit / %s\n", prefix, alias, action)
	}
	if initial, ok := e.plan.InitialChild(pointer); ok {
		fmt.Fprintf(bld, "%s[*] --> %s\n", prefix, e.aliases[initial])
	}

	if err := e.dumpTransitions(bld, prefix, pointer, alias); err != nil {
		return err
	}
	return nil
}

func (e *emitter) dumpTransitions(bld *strings.Builder, prefix, srcPointer, srcAlias string) error {
	labels := map[edge][]string{}
	for _, event := range e.plan.Events {
		for _, alt := range e.plan.Transitions(event, srcPointer) {
			dstPointer, terminal, internal := destinationOf(alt.Steps)
			label := eventLabel(event, alt)
			if internal {
				fmt.Fprintf(bld, "%s%s : %s\n", prefix, srcAlias, label)
				continue
			}
			dstAlias := "[*]"
			if !terminal {
				var ok bool
				dstAlias, ok = e.aliases[dstPointer]
				if !ok {
					return fmt.Errorf("plantuml: transition target %s not in plan", dstPointer)
				}
			}
			key := edge{srcAlias: srcAlias, dstAlias: dstAlias, history: alt.History}
			labels[key] = append(labels[key], label)
		}
	}

	keys := make([]edge, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].dstAlias != keys[j].dstAlias {
			return keys[i].dstAlias < keys[j].dstAlias
		}
		return strings.Join(labels[keys[i]], ",") < strings.Join(labels[keys[j]], ",")
	})
	for _, k := range keys {
		fmt.Fprintf(&e.trans, "%s --> %s%s : %s\n", k.srcAlias, k.dstAlias, historySuffix(k.history), strings.Join(labels[k], "\\n"))
	}
	return nil
}

func historySuffix(h hfsmc.History) string {
	switch h {
	case hfsmc.HistoryShallow:
		return "[H]"
	case hfsmc.HistoryDeep:
		return "[H*]"
	default:
		return ""
	}
}

func eventLabel(event string, alt hfsmc.Alternative) string {
	if alt.Polarity == hfsmc.PolarityNone {
		return event
	}
	if alt.Polarity == hfsmc.PolarityFalsy {
		return fmt.Sprintf("%s [!%s]", event, alt.Condition)
	}
	return fmt.Sprintf("%s [%s]", event, alt.Condition)
}

// destinationOf scans steps for the last state change: its absolute
// pointer and whether it is the terminal state. internal is true if
// steps never leaves the current state at all.
func destinationOf(steps []hfsmc.Step) (pointer string, terminal bool, internal bool) {
	for i := len(steps) - 1; i >= 0; i-- {
		if steps[i].Kind == hfsmc.StateStep {
			return steps[i].State, steps[i].Terminal, false
		}
	}
	return "", false, true
}
