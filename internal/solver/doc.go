// Package solver implements the word-game solving core: the feedback oracle,
// the two-tier feedback cache in front of it, candidate filtering, and the
// expected-information-gain ranker that picks the next guesses.
//
// Everything here is synchronous and free of side effects apart from the
// feedback cache's lazy, load-once population of per-guess tables.
package solver
