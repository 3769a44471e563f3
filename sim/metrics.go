// Tracks run-wide channel statistics for final reporting.

package sim

import (
	"fmt"
	"io"
)

// Metrics aggregates per-tick outcomes over one run. Only the
// utilization rate is part of the simulator's file output; the remaining
// counters exist for console reporting and debugging.
type Metrics struct {
	SuccessfulTicks  int // ticks during which exactly one node held the channel
	IdleTicks        int // ticks with no ready node and an idle channel
	CollisionTicks   int // ticks on which two or more nodes collided
	CompletedPackets int // transmissions that ran to completion
	DroppedPackets   int // packets abandoned after exceeding the retry limit
}

// Utilization returns the fraction of ticks that carried a successful
// transmission, in [0, 1].
func (m *Metrics) Utilization(totalTicks int) float64 {
	return float64(m.SuccessfulTicks) / float64(totalTicks)
}

// WriteUtilization writes the utilization rate with two decimal places,
// the simulator's single-number result format.
func (m *Metrics) WriteUtilization(w io.Writer, totalTicks int) error {
	_, err := fmt.Fprintf(w, "%.2f\n", m.Utilization(totalTicks))
	return err
}

// Print displays aggregated metrics at the end of the simulation.
func (m *Metrics) Print(totalTicks int) {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Successful ticks     : %d (T = %d)\n", m.SuccessfulTicks, totalTicks)
	fmt.Printf("Idle ticks           : %d\n", m.IdleTicks)
	fmt.Printf("Collision ticks      : %d\n", m.CollisionTicks)
	fmt.Printf("Completed packets    : %d\n", m.CompletedPackets)
	fmt.Printf("Dropped packets      : %d\n", m.DroppedPackets)
	fmt.Printf("Channel utilization  : %.2f\n", m.Utilization(totalTicks))
}
