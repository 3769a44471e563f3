// sim/simulator.go
package sim

import (
	"github.com/sirupsen/logrus"
)

// Simulator is the world state of one run: the shared channel, every
// contending node, and the outcome counters. Each run owns its own
// Simulator; nothing persists between runs, so independent simulations
// can execute side by side in one process.
type Simulator struct {
	Config
	Channel Channel
	Nodes   []Node
	Metrics *Metrics
}

// NewSimulator builds the initial world for cfg: channel idle, every
// node at collision count zero with window R[0] and a deterministic
// initial backoff drawn at ticks=0. cfg must have passed Validate.
func NewSimulator(cfg Config) *Simulator {
	s := &Simulator{
		Config:  cfg,
		Channel: Channel{},
		Nodes:   make([]Node, cfg.NodeCount),
		Metrics: &Metrics{},
	}
	for i := range s.Nodes {
		s.Nodes[i] = Node{
			ID:      i,
			Window:  cfg.Windows[0],
			Backoff: GenerateBackoff(i, 0, cfg.Windows[0]),
		}
	}
	return s
}

// Run drives the arbitration engine for the configured number of ticks
// and returns the final utilization rate. Ticks are strictly sequential;
// all mutations for a tick are applied before the next begins.
func (s *Simulator) Run() float64 {
	logrus.Infof("Starting simulation: %d nodes, packet length %d, %d ticks",
		s.NodeCount, s.PacketLength, s.TotalTicks)

	for tick := 0; tick < s.TotalTicks; tick++ {
		s.traceNodes(tick)
		s.Tick(tick)
	}

	util := s.Metrics.Utilization(s.TotalTicks)
	logrus.Infof("Simulation ended: %d successful ticks, utilization %.2f",
		s.Metrics.SuccessfulTicks, util)
	return util
}

// traceNodes logs the per-node backoff state at the start of a tick.
func (s *Simulator) traceNodes(tick int) {
	if !logrus.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	for i := range s.Nodes {
		logrus.Debugf("[tick %04d] node %d backoff %d", tick, s.Nodes[i].ID, s.Nodes[i].Backoff)
	}
}
