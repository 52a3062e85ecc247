// Package harness runs declarative simulation scenarios.
//
// A scenario is a YAML file naming a structure variant, a capacity, a
// step list (inserts, removals, fills, auto-play, reconfiguration) with
// expected outcomes, and assertions over the final state and log.
//
// Scenarios execute against a fully deterministic session: zero step
// delay, sequential element IDs, a mock wall clock, and a fixed random
// seed. The collected trace (every phase highlight and log entry, in
// order) can be compared against golden files, which serve as the
// source of truth for expected engine behavior.
package harness
