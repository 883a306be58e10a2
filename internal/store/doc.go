// Package store provides the persisted feedback table sources consumed by
// the solver's feedback cache. A store maps a guess word to a table of
// secret -> feedback entries. Stores are read-only, possibly partial and
// possibly absent from the solver's point of view; the writers exist for the
// offline precompute tooling.
package store
