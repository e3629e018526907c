// Package plan implements the spatial planning engine: the domain model
// (rooms, constraints, spaces, layouts), the constraint validator, and the
// greedy placement optimizer.
//
// # Model
//
// A [Space] is a bounded rectangular area together with an ordered list of
// [Room] placement requests and an ordered list of [Constraint] values. The
// optimizer transforms a space into a [Layout]: the subset of rooms it could
// place, each carrying a position, plus a quality score and the violation
// messages produced by a full validation pass.
//
// Rooms are value-like. Placement never mutates a request room; it produces a
// positioned copy via [Room.WithPosition], so the unplaced template and any
// number of trial placements can coexist.
//
// # Engine
//
// The engine is pure and synchronous. [Generate] and [ValidateLayout] hold no
// state between calls and perform no I/O, so independent calls may run
// concurrently as long as the inputs are not mutated mid-call. Placement
// failure is not an error: rooms that fit nowhere are omitted from the result
// and surface only through a reduced placement rate and score.
package plan
