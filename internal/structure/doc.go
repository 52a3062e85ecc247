// Package structure implements the simulated data-structure variants:
// stack, linear queue, circular queue, and priority queue.
//
// All four variants share the Structure interface. Each mutating
// operation returns a Trace describing the phases it executed
// (overflow-check, compare, insert, ...) so that a presentation layer
// can highlight the "currently executing step" exactly as the
// operation unfolded.
//
// DESIGN CONSTRAINTS:
//
// Capacity is fixed per instance (4-16). Changing capacity means
// constructing a new instance.
//
// The linear queue deliberately never compacts: once rear reaches
// capacity-1 no further insertion is accepted, even when slots before
// front have been vacated. This limitation is the teaching point the
// variant exists to demonstrate; do not "fix" it.
//
// The priority queue uses a stable linear insertion scan, not a heap.
// Every comparison it performs appears in the Trace, which is the whole
// point - a heap would change the observable comparison order.
package structure
