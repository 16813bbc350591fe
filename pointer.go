package hfsmc

import "strings"

// terminal is the distinguished pointer value meaning "outside the state
// machine entirely" - the destination of a transition whose target is
// final at the top level.
const terminal = ""

// pathOf splits an absolute state pointer into its component names.
//
// A valid absolute pointer begins with "/" and has at least one non-empty
// segment after it, e.g. "/a/b/c". pathOf returns BadPointer for anything
// else, including relative pointers, bare names, and the empty string.
func pathOf(pointer string) ([]string, error) {
	if pointer == "" || pointer[0] != '/' {
		return nil, &BadPointer{Pointer: pointer, Reason: "must begin with \"/\""}
	}
	segments := strings.Split(pointer, "/")[1:]
	for _, seg := range segments {
		if seg == "" {
			return nil, &BadPointer{Pointer: pointer, Reason: "empty segment"}
		}
	}
	if len(segments) == 0 {
		return nil, &BadPointer{Pointer: pointer, Reason: "must name at least one state"}
	}
	return segments, nil
}

// pointerOf joins a path of state names into a canonical absolute state
// pointer "/n1/n2/.../nk". It returns BadPath if path is empty or if its
// first segment begins with ".".
func pointerOf(path []string) (string, error) {
	if len(path) == 0 || strings.HasPrefix(path[0], ".") {
		return "", &BadPath{Path: append([]string(nil), path...)}
	}
	return "/" + strings.Join(path, "/"), nil
}

// resolve computes the destination of a transition's "next" specification,
// relative to context (the absolute pointer of the state the transition
// was declared in, or - for a target string beginning with "/" - ignored
// entirely).
//
// next is one of:
//   - "final": destination is the parent of context, or terminal if
//     context is a top-level state;
//   - a string beginning with "/": an absolute pointer, returned after a
//     structural check;
//   - a string beginning with ".": a relative pointer, resolved segment by
//     segment against context ("." is a no-op, ".." pops, anything else
//     pushes; popping past the root is absorbed, not an error);
//   - anything else: a sibling name, substituted for the last segment of
//     context.
//
// Internal transitions (next == "") are handled by the caller and never
// reach resolve.
func resolve(next string, context string) (string, error) {
	if next == "final" {
		path, err := pathOf(context)
		if err != nil {
			return "", err
		}
		if len(path) <= 1 {
			return terminal, nil
		}
		pointer, err := pointerOf(path[:len(path)-1])
		if err != nil {
			return "", err
		}
		return pointer, nil
	}
	if strings.HasPrefix(next, "/") {
		if _, err := pathOf(next); err != nil {
			return "", err
		}
		return next, nil
	}
	path, err := pathOf(context)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(next, ".") {
		for _, elem := range strings.Split(next, "/") {
			switch elem {
			case ".":
			case "..":
				if len(path) > 0 {
					path = path[:len(path)-1]
				}
			default:
				path = append(path, elem)
			}
		}
		return pointerOf(path)
	}
	// bare name: sibling of context
	if len(path) == 0 {
		return "", &BadPointer{Pointer: next, Reason: "no context to resolve a sibling name against"}
	}
	path[len(path)-1] = next
	return pointerOf(path)
}
