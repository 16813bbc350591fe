// Command hfsmc compiles a declarative hierarchical state machine
// description into a language-neutral transition plan and hands it to
// an emitter chosen by -target.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mbrt/hfsmc"
	"github.com/mbrt/hfsmc/emit/plantuml"
	"github.com/mbrt/hfsmc/specjson"
	"github.com/mbrt/hfsmc/specyaml"
)

// Unimplemented reports that -target names an emitter this build does
// not register. It belongs to the CLI, not the planning core: the core
// knows nothing about emitters at all.
type Unimplemented struct {
	Target string
}

func (e *Unimplemented) Error() string {
	return fmt.Sprintf("unimplemented target %q", e.Target)
}

var emitters = map[string]func(*hfsmc.Plan) (string, error){
	"plantuml": plantuml.Emit,
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("hfsmc", flag.ContinueOnError)
	fs.SetOutput(stderr)

	target := fs.String("target", "plantuml", "emitter to run on the compiled plan")
	prefix := fs.String("prefix", "", "identifier prefix for generated output (default: the spec's own name)")
	format := fs.String("format", "", "input format when reading from stdin: yaml or json (default: yaml; a FILE's format is inferred from its extension)")
	verbose := fs.Bool("verbose", false, "trace indexing, checking and planning phases to stderr")
	schema := fs.String("schema", "", "accepted for interface parity; schema validation is out of scope and this flag is a no-op")
	absoluteStatePointer := fs.String("absolute-state-pointer", `^/([A-Za-z_][A-Za-z0-9_]*)(/[A-Za-z_][A-Za-z0-9_]*)*$`, "override the absolute state pointer grammar")
	relativeStatePointer := fs.String("relative-state-pointer", `^(\.\.?(/\.\.?)*|final)(/[A-Za-z_][A-Za-z0-9_]*)*$|^[A-Za-z_][A-Za-z0-9_]*$`, "override the relative state pointer grammar")
	stateName := fs.String("state-name", `^[A-Za-z_][A-Za-z0-9_]*$`, "override the state name grammar")
	eventName := fs.String("event-name", `^[A-Za-z_][A-Za-z0-9_]*$`, "override the event name grammar")
	conditionName := fs.String("condition-name", `^[A-Za-z_][A-Za-z0-9_]*$`, "override the condition name grammar")
	actionName := fs.String("action-name", `^[A-Za-z_][A-Za-z0-9_]*$`, "override the action name grammar")
	if err := fs.Parse(args); err != nil {
		return err
	}
	_ = schema

	if fs.NArg() != 1 {
		return fmt.Errorf("hfsmc: expected exactly one argument (FILE or -), got %d", fs.NArg())
	}
	path := fs.Arg(0)

	spec, err := loadSpec(path, *format)
	if err != nil {
		return err
	}

	grammars := nameGrammars{
		state:     mustCompile(*stateName),
		event:     mustCompile(*eventName),
		condition: mustCompile(*conditionName),
		action:    mustCompile(*actionName),
	}
	ptrGrammars := pointerGrammars{
		absolute: mustCompile(*absoluteStatePointer),
		relative: mustCompile(*relativeStatePointer),
	}
	if err := checkNames(spec, grammars); err != nil {
		return err
	}
	if err := checkPointers(spec, ptrGrammars); err != nil {
		return err
	}

	name := *prefix
	if name == "" {
		name = spec.Name()
	}
	if name == "" {
		return &hfsmc.MissingPrefix{}
	}

	var logger *log.Logger
	if *verbose {
		logger = log.New(stderr, "[hfsmc] ", 0)
		logger.Printf("using prefix %q", name)
	}
	builder := &hfsmc.Builder{Logger: logger}
	plan, err := builder.Build(spec)
	if err != nil {
		return err
	}

	emit, ok := emitters[*target]
	if !ok {
		return &Unimplemented{Target: *target}
	}
	out, err := emit(plan)
	if err != nil {
		return err
	}

	_, err = io.WriteString(stdout, out)
	return err
}

func loadSpec(path, format string) (hfsmc.Spec, error) {
	if path == "-" {
		switch format {
		case "json":
			return specjson.Load(os.Stdin)
		case "yaml", "":
			return specyaml.Load(os.Stdin)
		default:
			return nil, fmt.Errorf("hfsmc: unknown -format %q", format)
		}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return specjson.LoadFile(path)
	case ".yaml", ".yml":
		return specyaml.LoadFile(path)
	default:
		return nil, fmt.Errorf("hfsmc: cannot infer format from %q, pass -format when reading from stdin or use a .yaml/.yml/.json extension", path)
	}
}

type nameGrammars struct {
	state, event, condition, action *regexp.Regexp
}

type pointerGrammars struct {
	absolute, relative *regexp.Regexp
}

// checkPointers validates every declared transition target against the
// absolute or relative pointer grammar, whichever applies. Internal
// transitions (an empty Next) and the distinguished "final" pointer are
// exempt: "final" is a keyword, not a pointer.
func checkPointers(spec hfsmc.Spec, g pointerGrammars) error {
	var walk func(states []hfsmc.StateSpec) error
	walk = func(states []hfsmc.StateSpec) error {
		for _, st := range states {
			for _, t := range st.Transitions() {
				next := t.Next()
				if next == "" || next == "final" {
					continue
				}
				if strings.HasPrefix(next, "/") {
					if !g.absolute.MatchString(next) {
						return fmt.Errorf("hfsmc: transition target %q does not match the absolute state pointer grammar", next)
					}
					continue
				}
				if !g.relative.MatchString(next) {
					return fmt.Errorf("hfsmc: transition target %q does not match the relative state pointer grammar", next)
				}
			}
			if err := walk(st.Children()); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(spec.States())
}

func mustCompile(pattern string) *regexp.Regexp {
	re, err := regexp.Compile(pattern)
	if err != nil {
		log.Fatalf("hfsmc: invalid grammar override %q: %v", pattern, err)
	}
	return re
}

// checkNames walks spec validating every declared name against its
// corresponding grammar, before the spec ever reaches the planning core.
func checkNames(spec hfsmc.Spec, g nameGrammars) error {
	var walk func(states []hfsmc.StateSpec) error
	walk = func(states []hfsmc.StateSpec) error {
		for _, st := range states {
			if !g.state.MatchString(st.Name()) {
				return fmt.Errorf("hfsmc: state name %q does not match the state name grammar", st.Name())
			}
			for _, t := range st.Transitions() {
				if !g.event.MatchString(t.Event()) {
					return fmt.Errorf("hfsmc: event name %q does not match the event name grammar", t.Event())
				}
				if name, polarity := t.Condition(); polarity != hfsmc.PolarityNone && !g.condition.MatchString(name) {
					return fmt.Errorf("hfsmc: condition name %q does not match the condition name grammar", name)
				}
				for _, a := range t.Actions() {
					if !g.action.MatchString(a) {
						return fmt.Errorf("hfsmc: action name %q does not match the action name grammar", a)
					}
				}
			}
			for _, a := range append(append([]string{}, st.Enter()...), st.Exit()...) {
				if !g.action.MatchString(a) {
					return fmt.Errorf("hfsmc: action name %q does not match the action name grammar", a)
				}
			}
			if err := walk(st.Children()); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(spec.States())
}
