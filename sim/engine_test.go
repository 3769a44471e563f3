package sim

import "testing"

func TestTick_SingleReadyNodeTransmitsAlone(t *testing.T) {
	// GIVEN two nodes whose initial backoffs differ: with R[0]=2,
	// node 0 starts at backoff 0 and node 1 at backoff 1
	s := NewSimulator(Config{NodeCount: 2, PacketLength: 2, MaxAttempts: 1, Windows: []int{2, 4}, TotalTicks: 10})
	if s.Nodes[0].Backoff != 0 || s.Nodes[1].Backoff != 1 {
		t.Fatalf("initial backoffs: got (%d, %d), want (0, 1)", s.Nodes[0].Backoff, s.Nodes[1].Backoff)
	}

	// WHEN the first tick is processed
	s.Tick(0)

	// THEN node 0 holds the channel with no collision
	if !s.Channel.Occupied {
		t.Error("channel should be occupied after a lone ready node transmits")
	}
	if s.Channel.ActiveNodeID != 0 {
		t.Errorf("active node: got %d, want 0", s.Channel.ActiveNodeID)
	}
	if s.Metrics.SuccessfulTicks != 1 {
		t.Errorf("successful ticks: got %d, want 1", s.Metrics.SuccessfulTicks)
	}
	if s.Metrics.CollisionTicks != 0 {
		t.Errorf("collision ticks: got %d, want 0", s.Metrics.CollisionTicks)
	}
}

func TestTick_CollisionBacksOffAllReadyNodes(t *testing.T) {
	// GIVEN three nodes with R[0]=2: nodes 0 and 2 start ready, node 1
	// starts at backoff 1
	s := NewSimulator(Config{NodeCount: 3, PacketLength: 2, MaxAttempts: 1, Windows: []int{2, 4}, TotalTicks: 10})

	// WHEN the collision tick is processed
	s.Tick(0)

	// THEN the channel stays idle and the tick counts as no success
	if s.Channel.Occupied {
		t.Error("channel must stay idle on a collision tick")
	}
	if s.Metrics.SuccessfulTicks != 0 {
		t.Errorf("successful ticks: got %d, want 0", s.Metrics.SuccessfulTicks)
	}
	if s.Metrics.CollisionTicks != 1 {
		t.Errorf("collision ticks: got %d, want 1", s.Metrics.CollisionTicks)
	}

	// AND both colliders moved to window R[1] with a fresh backoff
	for _, id := range []int{0, 2} {
		n := s.Nodes[id]
		if n.CollisionCount != 1 {
			t.Errorf("node %d collision count: got %d, want 1", id, n.CollisionCount)
		}
		if n.Window != 4 {
			t.Errorf("node %d window: got %d, want 4", id, n.Window)
		}
		if want := GenerateBackoff(id, 1, 4); n.Backoff != want {
			t.Errorf("node %d backoff: got %d, want %d", id, n.Backoff, want)
		}
	}

	// AND the bystander is untouched
	if s.Nodes[1].Backoff != 1 || s.Nodes[1].CollisionCount != 0 {
		t.Errorf("node 1 changed on a collision it did not join: backoff %d, collisions %d",
			s.Nodes[1].Backoff, s.Nodes[1].CollisionCount)
	}
}

func TestTick_ExceedingRetryLimitDropsPacket(t *testing.T) {
	// GIVEN two nodes forced to collide every tick: all windows are 1,
	// so both are always ready, and M=1 allows a single retry
	s := NewSimulator(Config{NodeCount: 2, PacketLength: 1, MaxAttempts: 1, Windows: []int{1, 1}, TotalTicks: 10})

	// WHEN the first collision charges one attempt each
	s.Tick(0)
	if s.Nodes[0].CollisionCount != 1 || s.Nodes[1].CollisionCount != 1 {
		t.Fatalf("after first collision: counts (%d, %d), want (1, 1)",
			s.Nodes[0].CollisionCount, s.Nodes[1].CollisionCount)
	}

	// AND the second collision exceeds the limit
	s.Tick(1)

	// THEN both packets are dropped and both nodes reset silently
	if s.Metrics.DroppedPackets != 2 {
		t.Errorf("dropped packets: got %d, want 2", s.Metrics.DroppedPackets)
	}
	for id := range s.Nodes {
		n := s.Nodes[id]
		if n.CollisionCount != 0 {
			t.Errorf("node %d collision count after drop: got %d, want 0", id, n.CollisionCount)
		}
		if n.Window != 1 {
			t.Errorf("node %d window after drop: got %d, want R[0]=1", id, n.Window)
		}
	}
	if s.Metrics.SuccessfulTicks != 0 {
		t.Errorf("successful ticks: got %d, want 0", s.Metrics.SuccessfulTicks)
	}
}

func TestTick_IdleTickDecrementsAllBackoffs(t *testing.T) {
	// GIVEN three nodes, none of them ready
	s := NewSimulator(Config{NodeCount: 3, PacketLength: 1, MaxAttempts: 0, Windows: []int{5}, TotalTicks: 10})
	// Shift every node off zero so the tick is idle.
	for i := range s.Nodes {
		s.Nodes[i].Backoff = i + 1
	}

	// WHEN an idle tick is processed
	s.Tick(0)

	// THEN every backoff dropped by exactly one
	for i := range s.Nodes {
		if s.Nodes[i].Backoff != i {
			t.Errorf("node %d backoff: got %d, want %d", i, s.Nodes[i].Backoff, i)
		}
	}
	if s.Metrics.IdleTicks != 1 {
		t.Errorf("idle ticks: got %d, want 1", s.Metrics.IdleTicks)
	}
}

func TestTick_PacketOfLengthOneCompletesInItsStartingTick(t *testing.T) {
	// GIVEN a lone node with packet length 1
	s := NewSimulator(Config{NodeCount: 1, PacketLength: 1, MaxAttempts: 0, Windows: []int{4}, TotalTicks: 10})

	// WHEN its starting tick is processed
	s.Tick(0)

	// THEN the transmission started and completed within the same tick
	if s.Channel.Occupied {
		t.Error("channel should be idle again after a length-1 packet")
	}
	if s.Metrics.SuccessfulTicks != 1 {
		t.Errorf("successful ticks: got %d, want 1", s.Metrics.SuccessfulTicks)
	}
	if s.Metrics.CompletedPackets != 1 {
		t.Errorf("completed packets: got %d, want 1", s.Metrics.CompletedPackets)
	}
	// AND the node drew its next backoff at ticks+1
	if want := GenerateBackoff(0, 1, 4); s.Nodes[0].Backoff != want {
		t.Errorf("post-completion backoff: got %d, want %d", s.Nodes[0].Backoff, want)
	}
}

func TestTick_CompletionResetsWindowAndCollisionCount(t *testing.T) {
	// GIVEN a transmitting node that previously collided
	s := NewSimulator(Config{NodeCount: 1, PacketLength: 2, MaxAttempts: 2, Windows: []int{2, 4, 8}, TotalTicks: 10})
	s.Nodes[0].CollisionCount = 2
	s.Nodes[0].Window = 8
	s.Nodes[0].TicksRemaining = 1
	s.Channel.Occupied = true
	s.Channel.ActiveNodeID = 0

	// WHEN its final transmission tick is processed
	s.Tick(5)

	// THEN collision state is cleared and the window returns to R[0]
	if s.Nodes[0].CollisionCount != 0 {
		t.Errorf("collision count: got %d, want 0", s.Nodes[0].CollisionCount)
	}
	if s.Nodes[0].Window != 2 {
		t.Errorf("window: got %d, want 2", s.Nodes[0].Window)
	}
	if want := GenerateBackoff(0, 6, 2); s.Nodes[0].Backoff != want {
		t.Errorf("backoff: got %d, want %d", s.Nodes[0].Backoff, want)
	}
	if s.Channel.Occupied {
		t.Error("channel should be released on completion")
	}
}
