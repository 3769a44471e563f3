// Package sim provides the discrete-event engine for the CSMA channel
// simulator.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - node.go: per-station backoff/collision state and the shared Channel
//   - engine.go: the per-tick arbitration step (idle, transmit, collide)
//   - simulator.go: world state ownership and the tick loop
//
// # Architecture
//
// A Simulator owns all mutable state for one run: the Channel, the Node
// slice, and the Metrics counters. Ticks are processed strictly
// sequentially; each tick first snapshots the set of ready nodes, then
// applies all mutations for that tick. Nothing is shared between
// Simulator values, so independent runs (e.g. parameter sweeps) can live
// side by side in one process.
//
// Backoff values come from a deterministic formula rather than a real
// RNG, so two runs with the same Config produce identical tick-by-tick
// state and identical final utilization.
package sim
