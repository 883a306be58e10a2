// Package domain contains the value types shared by the solver and the
// service layer: words, feedback codes, per-guess feedback tables and the
// errors raised when input does not satisfy their invariants.
package domain
