// Package generator builds random, roughly planar graphs on an integer grid.
//
// Generation runs in two phases. Placement samples node cells inside a
// square bound, keeping a moat of empty cells around every node and growing
// the bound when it gets crowded. Edge construction then visits nodes in
// insertion order and connects each to a random subset of its valid
// candidates, where validity covers degree, distance, duplicates, nodes in
// the way and per-edge crossing limits.
package generator

import "errors"

var (
	// ErrPlacementExhausted is returned when a node cannot be placed even
	// after the bound has grown the maximum number of times.
	ErrPlacementExhausted = errors.New("generator: placement exhausted")

	// ErrInvalidParams wraps validation failures.
	ErrInvalidParams = errors.New("generator: invalid parameters")
)
