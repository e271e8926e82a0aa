// Package peg implements an ordered-choice backtracking parser driven by a
// declarative rule set.
//
// A Grammar maps rule names to combinator expressions. Compiling it against
// a Structure (per-rule reducers) yields a Parser that matches rune streams,
// reduces every rule match bottom-up, and reports unparseable input as a
// *SyntaxError carrying line and column.
package peg
