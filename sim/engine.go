package sim

import "github.com/sirupsen/logrus"

// Tick advances the world by one tick. The decision order is fixed:
// an occupied channel is serviced first; otherwise the ready set decides
// between an idle countdown, a single transmission start, and a
// collision. tick is the 0-based index of the tick being processed.
func (s *Simulator) Tick(tick int) {
	if s.Channel.Occupied {
		s.transmit(tick)
		return
	}

	// Snapshot the ready set before touching any backoff, so every node's
	// readiness is judged as of the tick's start. Mutating mid-scan would
	// let later nodes observe already-updated state and miss collisions.
	ready := s.readyNodeIDs()

	switch len(ready) {
	case 0:
		logrus.Debugf("[tick %04d] channel idle", tick)
		s.Metrics.IdleTicks++
		// Only nodes at zero would transmit, and those were collected
		// above, so no backoff can go negative here.
		for i := range s.Nodes {
			s.Nodes[i].Backoff--
		}

	case 1:
		id := ready[0]
		s.Channel.Occupied = true
		s.Channel.ActiveNodeID = id
		s.Nodes[id].TicksRemaining = s.PacketLength
		// The new transmitter is serviced within its starting tick, so a
		// packet of length 1 starts and completes in the same tick.
		s.transmit(tick)

	default:
		logrus.Debugf("[tick %04d] collision between nodes %v", tick, ready)
		s.Metrics.CollisionTicks++
		for _, id := range ready {
			s.collide(&s.Nodes[id], tick)
		}
	}
}

// transmit services the active node for one occupied-channel tick. Every
// such tick counts toward utilization, regardless of how many ticks of
// the packet remain.
func (s *Simulator) transmit(tick int) {
	node := &s.Nodes[s.Channel.ActiveNodeID]
	logrus.Debugf("[tick %04d] channel occupied by node %d", tick, node.ID)

	node.TicksRemaining--
	if node.TicksRemaining == 0 {
		node.CollisionCount = 0
		node.Window = s.Windows[0]
		node.Backoff = GenerateBackoff(node.ID, tick+1, node.Window)
		s.Channel.Occupied = false
		s.Metrics.CompletedPackets++
		logrus.Debugf("[tick %04d] node %d finished transmitting, new backoff %d",
			tick, node.ID, node.Backoff)
	}

	s.Metrics.SuccessfulTicks++
}

// collide charges one collision to a ready node. Exceeding the retry
// limit drops the packet silently: the node resets as if it had
// succeeded, and only the DroppedPackets counter records the loss.
func (s *Simulator) collide(node *Node, tick int) {
	node.CollisionCount++

	if node.CollisionCount > s.MaxAttempts {
		node.CollisionCount = 0
		node.Window = s.Windows[0]
		node.Backoff = GenerateBackoff(node.ID, tick+1, node.Window)
		s.Metrics.DroppedPackets++
		logrus.Debugf("[tick %04d] node %d dropped its packet", tick, node.ID)
		return
	}

	node.Window = s.Windows[node.CollisionCount]
	node.Backoff = GenerateBackoff(node.ID, tick+1, node.Window)
}

// readyNodeIDs returns the IDs of all nodes whose backoff has expired,
// in ascending ID order.
func (s *Simulator) readyNodeIDs() []int {
	var ready []int
	for i := range s.Nodes {
		if s.Nodes[i].ready() {
			ready = append(ready, s.Nodes[i].ID)
		}
	}
	return ready
}
