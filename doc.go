// Package hfsmc implements the language-independent analysis and
// transition-planning core of a hierarchical finite-state-machine (HFSM)
// compiler.
//
// Given a [Spec] describing a tree of nested states, hfsmc flattens it into
// an addressable [Index], checks its integrity, and computes a [Plan]: the
// ordered sequence of steps - exit actions, state changes, transition
// actions, entry actions - that implement every (event, source state) pair
// according to HFSM semantics (lowest-common-ancestor computation, nested
// entry into initial sub-states, internal vs. external transitions,
// condition polarity, and transition inheritance up the ancestor chain).
//
// hfsmc does not execute state machines, define schemas, or emit source
// code. [Builder] exposes the plan through a small, stable API; concrete
// emitters (such as the PlantUML renderer in sub-package emit/plantuml)
// consume that API to produce target-language text.
package hfsmc
