// Package service contains the use cases the HTTP layer calls into. It turns
// a guess history into ranked suggestions by combining the candidate filter
// and the entropy ranker, and keeps validation of solver inputs in one place.
package service
