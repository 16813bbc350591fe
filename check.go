package hfsmc

import "fmt"

// checkIntegrity validates an already-built Index against spec: the
// root's declared initial state, every state's declared nested initial,
// and every transition's resolved target.
func checkIntegrity(spec Spec, idx *Index) error {
	rootPointer, err := pointerOf([]string{spec.Initial()})
	if err != nil {
		return err
	}
	if !idx.Has(rootPointer) {
		return &BadState{Kind: "initial state", Of: "FSM", Value: spec.Initial()}
	}

	for _, pointer := range idx.Pointers() {
		entry := idx.get(pointer)
		if name := entry.spec.Initial(); name != "" {
			nested := pointer + "/" + name
			if !idx.Has(nested) {
				return &BadState{Kind: "nested initial state", Of: quoteState(pointer), Value: name}
			}
		}
		for _, t := range entry.spec.Transitions() {
			if t.Next() == "" {
				continue // internal: no target to check
			}
			resolved, err := resolve(t.Next(), pointer)
			if err != nil {
				return &BadState{Kind: "next state", Of: quoteTransitionFrom(pointer), Value: t.Next()}
			}
			if resolved == terminal {
				continue
			}
			if _, err := initialOf(idx, resolved); err != nil {
				return &BadState{Kind: "next state", Of: quoteTransitionFrom(pointer), Value: t.Next()}
			}
		}
	}
	return nil
}

func quoteState(pointer string) string { return fmt.Sprintf("state %q", pointer) }
func quoteTransitionFrom(pointer string) string {
	return fmt.Sprintf("transition from state %q", pointer)
}
