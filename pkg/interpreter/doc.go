// Package interpreter runs raptor programs.
//
// A run is bounded twice: the program's AST size is checked against
// Limits.Code before anything executes, and every evaluation step counts
// against Limits.Compute. Both limits, and every runtime failure, are
// reported as *Error values whose Err field wraps one of the package's
// sentinel errors.
package interpreter
